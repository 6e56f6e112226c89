package tool

import (
	"context"

	"github.com/neexbeast/tourguide/internal/tour"
)

// Tool names as exposed to the assistant.
const (
	AreaBasedToolName     = "getAreaBasedTourInfo"
	LocationBasedToolName = "getLocationBasedTourInfo"
	DetailToolName        = "getTourDetailInfo"
)

// Messages returned when a tool cannot produce a result.
const (
	AreaBasedFailMessage     = "지역기반 관광정보 조회를 가져올 수 없습니다."
	LocationBasedFailMessage = "위치기반 관광정보 조회를 가져올 수 없습니다."
	DetailFailMessage        = "관광정보 상세조회를 가져올 수 없습니다."
)

// Myeongdong, Seoul.
const (
	defaultMapX   = "126.98375"
	defaultMapY   = "37.563446"
	defaultRadius = "100"
)

var (
	languageProperty = Property{
		Type:        "string",
		Description: "STEP 1: 사용자 메시지의 언어를 파악하여 해당하는 서비스 코드를 선택하세요. 사용 가능한 언어 코드: " + describeCodes(languageCodes),
	}
	contentTypeProperty = Property{
		Type: "string",
		Description: "STEP 2: languageCode에 따라 관광 타입 코드를 선택하세요. " +
			"IF languageCode == 'KorService2' THEN 한국어 코드: " + describeCodes(contentTypeCodes) + ". " +
			"ELSE (EngService2, JpnService2, ChsService2, ChtService2) THEN 외국어 코드: " + describeCodes(foreignContentTypeCodes),
	}
	areaProperty = Property{
		Type:        "string",
		Description: "STEP 3: 지역 코드를 쉼표(,)로 구분해 전달하세요 (예: 6,10). 사용 가능한 지역 코드: " + describeCodes(areaCodes),
	}
)

type areaArgs struct {
	LanguageCode       string `json:"languageCode"`
	ContentTypeID      string `json:"contentTypeId" validate:"required"`
	AreaAndSigunguCode string `json:"areaAndSigunguCode"`
}

// AreaBasedTool wraps areaBasedList2.
type AreaBasedTool struct {
	svc TourService
	run *runner
}

func (t *AreaBasedTool) Definition() Definition {
	return Definition{
		Name:        AreaBasedToolName,
		Description: "areaBasedList2 : 지역기반 관광정보 조회, 특정 지역의 관광 정보 조회",
		Parameters: Schema{
			Type: "object",
			Properties: map[string]Property{
				"languageCode":       languageProperty,
				"contentTypeId":      contentTypeProperty,
				"areaAndSigunguCode": areaProperty,
			},
			Required: []string{"languageCode", "contentTypeId", "areaAndSigunguCode"},
		},
	}
}

func (t *AreaBasedTool) Call(ctx context.Context, args string) string {
	var a areaArgs
	return t.run.run(ctx, AreaBasedToolName, AreaBasedFailMessage, args, &a, func(ctx context.Context) (any, bool) {
		params := t.svc.ParseParams(a.ContentTypeID, a.AreaAndSigunguCode)
		resp := t.svc.FetchAreaBased(ctx, params, a.LanguageCode)
		return resp, resp != nil && len(resp.Items) > 0
	})
}

type locationArgs struct {
	LanguageCode       string `json:"languageCode"`
	ContentTypeID      string `json:"contentTypeId" validate:"required"`
	AreaAndSigunguCode string `json:"areaAndSigunguCode"`
	MapX               string `json:"mapX"`
	MapY               string `json:"mapY"`
	Radius             string `json:"radius"`
}

// location fills Myeongdong defaults. Values are forwarded as given; upstream decides what a
// malformed coordinate or radius means.
func (a *locationArgs) location() tour.LocationParams {
	loc := tour.LocationParams{MapX: a.MapX, MapY: a.MapY, Radius: a.Radius}
	if loc.MapX == "" {
		loc.MapX = defaultMapX
	}
	if loc.MapY == "" {
		loc.MapY = defaultMapY
	}
	if loc.Radius == "" {
		loc.Radius = defaultRadius
	}
	return loc
}

// LocationBasedTool wraps locationBasedList2. Missing coordinates default to Myeongdong.
type LocationBasedTool struct {
	svc TourService
	run *runner
}

func (t *LocationBasedTool) Definition() Definition {
	return Definition{
		Name:        LocationBasedToolName,
		Description: "locationBasedList2 : 위치기반 관광정보 조회, 특정 위치 기반의 관광 정보 조회",
		Parameters: Schema{
			Type: "object",
			Properties: map[string]Property{
				"languageCode":       languageProperty,
				"contentTypeId":      contentTypeProperty,
				"areaAndSigunguCode": areaProperty,
				"mapX":               {Type: "string", Description: "WGS84 경도 좌표", Default: defaultMapX},
				"mapY":               {Type: "string", Description: "WGS84 위도 좌표", Default: defaultMapY},
				"radius":             {Type: "string", Description: "검색 반경(미터 단위)", Default: defaultRadius},
			},
			Required: []string{"languageCode", "contentTypeId", "areaAndSigunguCode", "mapX", "mapY", "radius"},
		},
	}
}

func (t *LocationBasedTool) Call(ctx context.Context, args string) string {
	var a locationArgs
	return t.run.run(ctx, LocationBasedToolName, LocationBasedFailMessage, args, &a, func(ctx context.Context) (any, bool) {
		params := t.svc.ParseParams(a.ContentTypeID, a.AreaAndSigunguCode)
		resp := t.svc.FetchLocationBased(ctx, params, a.location(), a.LanguageCode)
		return resp, resp != nil && len(resp.Items) > 0
	})
}

type detailArgs struct {
	LanguageCode string `json:"languageCode"`
	ContentID    string `json:"contentId" validate:"required"`
}

// DetailTool wraps detailCommon2.
type DetailTool struct {
	svc TourService
	run *runner
}

func (t *DetailTool) Definition() Definition {
	return Definition{
		Name:        DetailToolName,
		Description: "detailCommon2 : 관광정보 상세조회, 특정 관광 정보의 상세 정보 조회",
		Parameters: Schema{
			Type: "object",
			Properties: map[string]Property{
				"languageCode": languageProperty,
				"contentId": {
					Type: "string",
					Description: "STEP 2: 조회할 관광정보의 콘텐츠 ID. 이전 Tool 호출 결과(" + AreaBasedToolName +
						" 또는 " + LocationBasedToolName + ")에서 받은 contentId를 사용하세요.",
				},
			},
			Required: []string{"languageCode", "contentId"},
		},
	}
}

func (t *DetailTool) Call(ctx context.Context, args string) string {
	var a detailArgs
	return t.run.run(ctx, DetailToolName, DetailFailMessage, args, &a, func(ctx context.Context) (any, bool) {
		resp := t.svc.FetchDetail(ctx, tour.DetailParams{ContentID: a.ContentID}, a.LanguageCode)
		return resp, resp != nil && len(resp.Items) > 0
	})
}
