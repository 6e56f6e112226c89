package tour

// Preset responses for known demo queries. They bypass the cache and the upstream API and are
// rebuilt on every call so callers cannot mutate a shared value.

type areaPreset struct {
	lang          Language
	contentTypeID string
	areaCode      string
	sigunguCode   string
	build         func() *Response
}

type locationPreset struct {
	lang          Language
	contentTypeID string
	areaCode      string
	sigunguCode   string
	mapX          string
	mapY          string
	radius        string
	build         func() *Response
}

type detailPreset struct {
	lang      Language
	contentID string
	build     func() *DetailResponse
}

var areaPresets = []areaPreset{
	{lang: Korean, contentTypeID: "12", areaCode: "6", sigunguCode: "10", build: eulsukdoParkResponse},
}

var locationPresets = []locationPreset{
	{
		lang: Korean, contentTypeID: "39", areaCode: "1", sigunguCode: "24",
		mapX: "126.98375", mapY: "37.563446", radius: "100",
		build: baekjeSamgyetangResponse,
	},
}

var detailPresets = []detailPreset{
	{lang: English, contentID: "264247", build: eulsukdoBirdParkDetailEN},
	{lang: Korean, contentID: "127974", build: dongchonResortDetailKO},
}

func equalsPtr(p *string, want string) bool {
	return p != nil && *p == want
}

func lookupAreaPreset(params Params, lang Language) (*Response, bool) {
	for _, p := range areaPresets {
		if p.lang == lang &&
			params.ContentTypeID == p.contentTypeID &&
			equalsPtr(params.AreaCode, p.areaCode) &&
			equalsPtr(params.SigunguCode, p.sigunguCode) {
			return p.build(), true
		}
	}
	return nil, false
}

func lookupLocationPreset(params Params, location LocationParams, lang Language) (*Response, bool) {
	for _, p := range locationPresets {
		if p.lang == lang &&
			params.ContentTypeID == p.contentTypeID &&
			equalsPtr(params.AreaCode, p.areaCode) &&
			equalsPtr(params.SigunguCode, p.sigunguCode) &&
			location.MapX == p.mapX &&
			location.MapY == p.mapY &&
			location.Radius == p.radius {
			return p.build(), true
		}
	}
	return nil, false
}

func lookupDetailPreset(params DetailParams, lang Language) (*DetailResponse, bool) {
	for _, p := range detailPresets {
		if p.lang == lang && params.ContentID == p.contentID {
			return p.build(), true
		}
	}
	return nil, false
}

func eulsukdoParkResponse() *Response {
	return &Response{Items: []Item{{
		ContentID:     "127974",
		ContentTypeID: "12",
		CreatedTime:   "20031208090000",
		ModifiedTime:  "20250411180037",
		Title:         "을숙도 공원",
		Addr1:         strPtr("부산광역시 사하구 낙동남로 1240 (하단동)"),
		AreaCode:      strPtr("6"),
		FirstImage:    strPtr("http://tong.visitkorea.or.kr/cms/resource/62/2487962_image2_1.jpg"),
		FirstImage2:   strPtr("http://tong.visitkorea.or.kr/cms/resource/62/2487962_image3_1.jpg"),
		MapX:          strPtr("128.9460030322"),
		MapY:          strPtr("35.1045320626"),
		MLevel:        strPtr("6"),
		SigunguCode:   strPtr("10"),
		LDongRegnCd:   strPtr("26"),
		LDongSignguCd: strPtr("380"),
	}}}
}

func baekjeSamgyetangResponse() *Response {
	return &Response{Items: []Item{{
		ContentID:     "133858",
		ContentTypeID: "39",
		CreatedTime:   "20030529090000",
		ModifiedTime:  "20250409105941",
		Title:         "백제삼계탕",
		Addr1:         strPtr("서울특별시 중구 명동8길 8-10 (명동2가)"),
		AreaCode:      strPtr("1"),
		FirstImage:    strPtr("http://tong.visitkorea.or.kr/cms/resource/85/3108585_image2_1.JPG"),
		FirstImage2:   strPtr("http://tong.visitkorea.or.kr/cms/resource/85/3108585_image3_1.JPG"),
		MapX:          strPtr("126.9841178194"),
		MapY:          strPtr("37.5634241535"),
		Distance:      strPtr("32.788938679922325"),
		MLevel:        strPtr("6"),
		SigunguCode:   strPtr("24"),
		LDongRegnCd:   strPtr("11"),
		LDongSignguCd: strPtr("140"),
	}}}
}

func eulsukdoBirdParkDetailEN() *DetailResponse {
	return &DetailResponse{Items: []DetailItem{{
		ContentID: "264247",
		Title:     "Eulsukdo Migratory Bird Park (을숙도 철새공원)",
		Overview: strPtr("Eulsukdo Migratory Bird Park, designated as Natural Monument No. 179, " +
			"is located in the lower part of Elsukdo Island. " +
			"Renovated in 2009, the park is the central area for migratory bird habitats and ecology tourism. " +
			"In winter, migratory birds can be seen at the wetlands."),
		Addr1:      strPtr("1240, Nakdongnam-ro, Saha-gu, Busan"),
		MapX:       strPtr("128.9353792487"),
		MapY:       strPtr("35.0937941809"),
		FirstImage: strPtr("http://tong.visitkorea.or.kr/cms/resource/66/2487966_image2_1.JPG"),
		Tel:        strPtr("+82-51-209-2031"),
		Homepage:   strPtr(`<a href="http://www.busan.go.kr/wetland/index" target="_blank">www.busan.go.kr</a>`),
	}}}
}

func dongchonResortDetailKO() *DetailResponse {
	return &DetailResponse{Items: []DetailItem{{
		ContentID: "126128",
		Title:     "동촌유원지",
		Overview: strPtr("동촌유원지는 대구시 동쪽 금호강변에 있는 44만 평의 유원지로 오래전부터 대구 시민이 즐겨 찾는 곳이다. " +
			"각종 위락시설이 잘 갖춰져 있으며, 드라이브를 즐길 수 있는 도로가 건설되어 있다. 수량이 많은 금호강에는 조교가 가설되어 있고, " +
			"우아한 다리 이름을 가진 아양교가 걸쳐 있다. 금호강(琴湖江)을 끼고 있어 예로부터 봄에는 그네뛰기, 봉숭아꽃 구경, " +
			"여름에는 수영과 보트 놀이, 가을에는 밤 줍기 등 즐길 거리가 많은 곳이다. 또한, 해맞이다리, 유선장, 체육시설, " +
			"실내 롤러스케이트장 등 다양한 즐길 거리가 있어 여행의 재미를 더해준다."),
		Addr1:      strPtr("대구광역시 동구 효목동"),
		MapX:       strPtr("128.6506352387"),
		MapY:       strPtr("35.8826195757"),
		FirstImage: strPtr("http://tong.visitkorea.or.kr/cms/resource/86/3488286_image2_1.JPG"),
		Tel:        strPtr(""),
		Homepage:   strPtr(""),
	}}}
}
