package tool

import "strings"

type code struct {
	value string
	label string
}

var languageCodes = []code{
	{"KorService2", "한국어"},
	{"EngService2", "영어"},
	{"JpnService2", "일본어"},
	{"ChsService2", "중국어 간체"},
	{"ChtService2", "중국어 번체"},
}

var contentTypeCodes = []code{
	{"12", "관광지"},
	{"14", "문화시설"},
	{"15", "축제공연행사"},
	{"25", "여행코스"},
	{"28", "레포츠"},
	{"32", "숙박"},
	{"38", "쇼핑"},
	{"39", "음식점"},
}

var foreignContentTypeCodes = []code{
	{"75", "레포츠"},
	{"76", "관광지"},
	{"77", "교통"},
	{"78", "문화시설"},
	{"79", "쇼핑"},
	{"80", "숙박"},
	{"82", "음식점"},
	{"85", "축제공연행사"},
}

// Area codes plus a few commonly requested sigungu pairs.
var areaCodes = []code{
	{"1", "서울"},
	{"1,24", "서울 중구"},
	{"2", "인천"},
	{"3", "대전"},
	{"4", "대구"},
	{"5", "광주"},
	{"6", "부산"},
	{"6,10", "부산 사하구"},
	{"7", "울산"},
	{"8", "세종"},
	{"31", "경기"},
	{"32", "강원"},
	{"33", "충북"},
	{"34", "충남"},
	{"35", "경북"},
	{"36", "경남"},
	{"37", "전북"},
	{"38", "전남"},
	{"39", "제주"},
}

func describeCodes(codes []code) string {
	parts := make([]string, 0, len(codes))
	for _, c := range codes {
		parts = append(parts, c.value+"="+c.label)
	}
	return strings.Join(parts, ", ")
}
