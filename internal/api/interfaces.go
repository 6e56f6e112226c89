package api

import (
	"context"

	"github.com/neexbeast/tourguide/internal/tool"
	"github.com/neexbeast/tourguide/internal/tour"
)

// TourService defines the tour lookups needed by handlers.
type TourService interface {
	ParseParams(contentTypeID, areaAndSigunguCode string) tour.Params
	FetchAreaBased(ctx context.Context, params tour.Params, languageHint string) *tour.Response
	FetchLocationBased(ctx context.Context, params tour.Params, location tour.LocationParams, languageHint string) *tour.Response
	FetchDetail(ctx context.Context, params tour.DetailParams, languageHint string) *tour.DetailResponse
}

// ToolInvoker defines the assistant tool surface needed by handlers.
type ToolInvoker interface {
	Definitions() []tool.Definition
	Invoke(ctx context.Context, name, args string) (string, error)
}

// CacheEvictor flushes every tour cache namespace on demand.
type CacheEvictor interface {
	EvictNow(ctx context.Context) error
}

// Pinger reports backend connectivity for the health check.
type Pinger interface {
	Ping(ctx context.Context) error
}
