package tour

import "strings"

// areaCodeSeparator splits "area,sigungu". Hyphens are not separators.
const areaCodeSeparator = ","

// ParseParams builds Params from a content type and a combined "area,sigungu" code.
// A missing sigungu token yields a nil SigunguCode; an empty token yields "".
func ParseParams(contentTypeID, areaAndSigunguCode string) Params {
	codes := strings.Split(areaAndSigunguCode, areaCodeSeparator)

	params := Params{ContentTypeID: contentTypeID}
	if len(codes) > 0 {
		params.AreaCode = strPtr(strings.TrimSpace(codes[0]))
	}
	if len(codes) > 1 {
		params.SigunguCode = strPtr(strings.TrimSpace(codes[1]))
	}
	return params
}
