package tour

import (
	"context"
	"log/slog"
	"strings"

	"golang.org/x/sync/singleflight"
)

// Cache namespaces, one per upstream operation.
const (
	NamespaceAreaBased     = "tourAreaBased"
	NamespaceLocationBased = "tourLocationBased"
	NamespaceDetail        = "tourDetail"
)

// Namespaces lists every cache namespace owned by the cores.
func Namespaces() []string {
	return []string{NamespaceAreaBased, NamespaceLocationBased, NamespaceDetail}
}

// Store is the cache abstraction the cores read through. Get reports false on a miss.
type Store interface {
	Get(ctx context.Context, namespace, key string, dst any) (bool, error)
	Set(ctx context.Context, namespace, key string, value any) error
}

type areaBasedFetcher interface {
	FetchAreaBased(ctx context.Context, params Params, lang Language) *Response
}

type locationBasedFetcher interface {
	FetchLocationBased(ctx context.Context, params Params, location LocationParams, lang Language) *Response
}

type detailFetcher interface {
	FetchDetail(ctx context.Context, params DetailParams, lang Language) *DetailResponse
}

// CoreOption customizes a caching core.
type CoreOption func(*coreOptions)

type coreOptions struct {
	log      *slog.Logger
	observer Observer
}

// WithCoreLogger sets the logger for cache failures.
func WithCoreLogger(log *slog.Logger) CoreOption {
	return func(o *coreOptions) { o.log = log }
}

// WithCoreObserver sets the metrics sink.
func WithCoreObserver(obs Observer) CoreOption {
	return func(o *coreOptions) { o.observer = obs }
}

func buildCoreOptions(opts []CoreOption) coreOptions {
	o := coreOptions{log: slog.Default(), observer: noopObserver{}}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// cachedLoader computes a value at most once per key: concurrent misses for the same key
// share one fetch, and non-nil results are written to the store. A lookup counts as a miss
// only when an upstream fetch produced the value.
type cachedLoader[T any] struct {
	namespace string
	store     Store
	group     singleflight.Group
	log       *slog.Logger
	observer  Observer
}

func newCachedLoader[T any](namespace string, store Store, o coreOptions) *cachedLoader[T] {
	return &cachedLoader[T]{namespace: namespace, store: store, log: o.log, observer: o.observer}
}

func (l *cachedLoader[T]) lookup(ctx context.Context, key string) (*T, bool) {
	var cached T
	ok, err := l.store.Get(ctx, l.namespace, key, &cached)
	if err != nil {
		l.log.Warn("tour_cache_get_failed", "namespace", l.namespace, "key", key, "err", err)
		return nil, false
	}
	if !ok {
		return nil, false
	}
	return &cached, true
}

type flightResult[T any] struct {
	value   *T
	fetched bool
}

// load returns the cached value for key or fetches it. The shared fetch runs detached from
// the caller's cancellation so one abandoned request cannot cache an empty result for everyone.
func (l *cachedLoader[T]) load(ctx context.Context, key string, fetch func(context.Context) *T) *T {
	if cached, ok := l.lookup(ctx, key); ok {
		l.observer.CacheLookup(l.namespace, true)
		return cached
	}

	fetchCtx := context.WithoutCancel(ctx)
	v, _, _ := l.group.Do(key, func() (any, error) {
		// Another flight may have filled the entry between our miss and this call.
		if cached, ok := l.lookup(fetchCtx, key); ok {
			return flightResult[T]{value: cached}, nil
		}

		result := fetch(fetchCtx)
		if result == nil {
			return flightResult[T]{fetched: true}, nil
		}
		if err := l.store.Set(fetchCtx, l.namespace, key, result); err != nil {
			l.log.Warn("tour_cache_set_failed", "namespace", l.namespace, "key", key, "err", err)
		}
		return flightResult[T]{value: result, fetched: true}, nil
	})

	res, _ := v.(flightResult[T])
	l.observer.CacheLookup(l.namespace, !res.fetched)
	return res.value
}

func keyPart(p *string) string {
	if p == nil {
		return "null"
	}
	return *p
}

func joinKey(parts ...string) string {
	return strings.Join(parts, "_")
}

// AreaBasedCore serves areaBasedList2 lookups through presets and the cache.
type AreaBasedCore struct {
	client   areaBasedFetcher
	loader   *cachedLoader[Response]
	observer Observer
}

// NewAreaBasedCore constructs an AreaBasedCore.
func NewAreaBasedCore(client areaBasedFetcher, store Store, opts ...CoreOption) *AreaBasedCore {
	o := buildCoreOptions(opts)
	return &AreaBasedCore{
		client:   client,
		loader:   newCachedLoader[Response](NamespaceAreaBased, store, o),
		observer: o.observer,
	}
}

// AreaBasedKey is the cache key for an area-based lookup.
func AreaBasedKey(params Params, lang Language) string {
	return joinKey(params.ContentTypeID, keyPart(params.AreaCode), keyPart(params.SigunguCode), lang.Segment())
}

// FetchAreaBased returns the preset for known queries, otherwise the cached or fetched response.
func (c *AreaBasedCore) FetchAreaBased(ctx context.Context, params Params, lang Language) *Response {
	if preset, ok := lookupAreaPreset(params, lang); ok {
		c.observer.PresetServed(NamespaceAreaBased)
		return preset
	}

	return c.loader.load(ctx, AreaBasedKey(params, lang), func(ctx context.Context) *Response {
		return c.client.FetchAreaBased(ctx, params, lang)
	})
}

// LocationBasedCore serves locationBasedList2 lookups through presets and the cache.
type LocationBasedCore struct {
	client   locationBasedFetcher
	loader   *cachedLoader[Response]
	observer Observer
}

// NewLocationBasedCore constructs a LocationBasedCore.
func NewLocationBasedCore(client locationBasedFetcher, store Store, opts ...CoreOption) *LocationBasedCore {
	o := buildCoreOptions(opts)
	return &LocationBasedCore{
		client:   client,
		loader:   newCachedLoader[Response](NamespaceLocationBased, store, o),
		observer: o.observer,
	}
}

// LocationBasedKey is the cache key for a location-based lookup.
func LocationBasedKey(params Params, location LocationParams, lang Language) string {
	return joinKey(
		params.ContentTypeID, keyPart(params.AreaCode), keyPart(params.SigunguCode),
		location.MapX, location.MapY, location.Radius,
		lang.Segment(),
	)
}

// FetchLocationBased returns the preset for known queries, otherwise the cached or fetched response.
func (c *LocationBasedCore) FetchLocationBased(ctx context.Context, params Params, location LocationParams, lang Language) *Response {
	if preset, ok := lookupLocationPreset(params, location, lang); ok {
		c.observer.PresetServed(NamespaceLocationBased)
		return preset
	}

	return c.loader.load(ctx, LocationBasedKey(params, location, lang), func(ctx context.Context) *Response {
		return c.client.FetchLocationBased(ctx, params, location, lang)
	})
}

// DetailCore serves detailCommon2 lookups through presets and the cache.
type DetailCore struct {
	client   detailFetcher
	loader   *cachedLoader[DetailResponse]
	observer Observer
}

// NewDetailCore constructs a DetailCore.
func NewDetailCore(client detailFetcher, store Store, opts ...CoreOption) *DetailCore {
	o := buildCoreOptions(opts)
	return &DetailCore{
		client:   client,
		loader:   newCachedLoader[DetailResponse](NamespaceDetail, store, o),
		observer: o.observer,
	}
}

// DetailKey is the cache key for a detail lookup.
func DetailKey(params DetailParams, lang Language) string {
	return joinKey(params.ContentID, lang.Segment())
}

// FetchDetail returns the preset for known queries, otherwise the cached or fetched response.
func (c *DetailCore) FetchDetail(ctx context.Context, params DetailParams, lang Language) *DetailResponse {
	if preset, ok := lookupDetailPreset(params, lang); ok {
		c.observer.PresetServed(NamespaceDetail)
		return preset
	}

	return c.loader.load(ctx, DetailKey(params, lang), func(ctx context.Context) *DetailResponse {
		return c.client.FetchDetail(ctx, params, lang)
	})
}
