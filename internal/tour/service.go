package tour

import (
	"context"
	"log/slog"
)

// Service resolves language hints and dispatches to the caching cores.
type Service struct {
	area     areaBasedFetcher
	location locationBasedFetcher
	detail   detailFetcher
	log      *slog.Logger
}

// NewService constructs a Service over the three cores.
func NewService(area areaBasedFetcher, location locationBasedFetcher, detail detailFetcher, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{area: area, location: location, detail: detail, log: log}
}

// ParseParams splits the combined area code; see ParseParams.
func (s *Service) ParseParams(contentTypeID, areaAndSigunguCode string) Params {
	return ParseParams(contentTypeID, areaAndSigunguCode)
}

// FetchAreaBased resolves languageHint and returns area-based tours.
func (s *Service) FetchAreaBased(ctx context.Context, params Params, languageHint string) *Response {
	lang := ResolveLanguage(languageHint)
	resp := s.area.FetchAreaBased(ctx, params, lang)
	s.logListOutcome("area_based", resp, lang,
		"content_type_id", params.ContentTypeID,
		"area_code", keyPart(params.AreaCode),
		"sigungu_code", keyPart(params.SigunguCode),
	)
	return resp
}

// FetchLocationBased resolves languageHint and returns tours around a coordinate.
func (s *Service) FetchLocationBased(ctx context.Context, params Params, location LocationParams, languageHint string) *Response {
	lang := ResolveLanguage(languageHint)
	resp := s.location.FetchLocationBased(ctx, params, location, lang)
	s.logListOutcome("location_based", resp, lang,
		"content_type_id", params.ContentTypeID,
		"map_x", location.MapX,
		"map_y", location.MapY,
		"radius", location.Radius,
	)
	return resp
}

// FetchDetail resolves languageHint and returns the common detail of one content.
func (s *Service) FetchDetail(ctx context.Context, params DetailParams, languageHint string) *DetailResponse {
	lang := ResolveLanguage(languageHint)
	resp := s.detail.FetchDetail(ctx, params, lang)
	if resp == nil || len(resp.Items) == 0 {
		s.log.Info("tour_detail_not_found", "content_id", params.ContentID, "language", lang.Segment())
	} else {
		s.log.Info("tour_detail_found", "content_id", params.ContentID, "language", lang.Segment())
	}
	return resp
}

func (s *Service) logListOutcome(kind string, resp *Response, lang Language, attrs ...any) {
	attrs = append(attrs, "kind", kind, "language", lang.Segment())
	if resp == nil || len(resp.Items) == 0 {
		s.log.Info("tour_info_not_found", attrs...)
		return
	}
	s.log.Info("tour_info_found", append(attrs, "count", len(resp.Items))...)
}
