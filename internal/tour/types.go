package tour

// Params identifies an area-based lookup: content type plus the area/sigungu pair.
// AreaCode and SigunguCode are nil when the caller did not supply them.
type Params struct {
	ContentTypeID string  `json:"contentTypeId"`
	AreaCode      *string `json:"areaCode"`
	SigunguCode   *string `json:"sigunguCode"`
}

// LocationParams carries WGS84 coordinates and a radius in meters as opaque strings.
type LocationParams struct {
	MapX   string `json:"mapX"`
	MapY   string `json:"mapY"`
	Radius string `json:"radius"`
}

// DetailParams identifies a single point of interest.
type DetailParams struct {
	ContentID string `json:"contentId"`
}

// Item is a single entry of an areaBasedList2 or locationBasedList2 response.
type Item struct {
	ContentID     string  `json:"contentId"`
	ContentTypeID string  `json:"contentTypeId"`
	CreatedTime   string  `json:"createdTime"`
	ModifiedTime  string  `json:"modifiedTime"`
	Title         string  `json:"title"`
	Addr1         *string `json:"addr1"`
	AreaCode      *string `json:"areaCode"`
	FirstImage    *string `json:"firstimage"`
	FirstImage2   *string `json:"firstimage2"`
	MapX          *string `json:"mapX"`
	MapY          *string `json:"mapY"`
	Distance      *string `json:"distance"`
	MLevel        *string `json:"mlevel"`
	SigunguCode   *string `json:"sigunguCode"`
	LDongRegnCd   *string `json:"lDongRegnCd"`
	LDongSignguCd *string `json:"lDongSignguCd"`
}

// DetailItem is a single entry of a detailCommon2 response.
type DetailItem struct {
	ContentID  string  `json:"contentId"`
	Title      string  `json:"title"`
	Overview   *string `json:"overview"`
	Addr1      *string `json:"addr1"`
	MapX       *string `json:"mapX"`
	MapY       *string `json:"mapY"`
	FirstImage *string `json:"firstImage"`
	Tel        *string `json:"tel"`
	Homepage   *string `json:"homepage"`
}

// Response is the ordered result of a list lookup. An empty Items slice is a valid result.
type Response struct {
	Items []Item `json:"items"`
}

// DetailResponse is the ordered result of a detail lookup.
type DetailResponse struct {
	Items []DetailItem `json:"items"`
}

func emptyResponse() *Response {
	return &Response{Items: []Item{}}
}

func emptyDetailResponse() *DetailResponse {
	return &DetailResponse{Items: []DetailItem{}}
}

func strPtr(s string) *string {
	return &s
}
