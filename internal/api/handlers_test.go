package api_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neexbeast/tourguide/internal/api"
	"github.com/neexbeast/tourguide/internal/tool"
	"github.com/neexbeast/tourguide/internal/tour"
)

// ---- mock implementations ----

type mockTours struct {
	areaFn     func(ctx context.Context, params tour.Params, hint string) *tour.Response
	locationFn func(ctx context.Context, params tour.Params, loc tour.LocationParams, hint string) *tour.Response
	detailFn   func(ctx context.Context, params tour.DetailParams, hint string) *tour.DetailResponse
}

func (m *mockTours) ParseParams(contentTypeID, areaAndSigunguCode string) tour.Params {
	return tour.ParseParams(contentTypeID, areaAndSigunguCode)
}
func (m *mockTours) FetchAreaBased(ctx context.Context, params tour.Params, hint string) *tour.Response {
	return m.areaFn(ctx, params, hint)
}
func (m *mockTours) FetchLocationBased(ctx context.Context, params tour.Params, loc tour.LocationParams, hint string) *tour.Response {
	return m.locationFn(ctx, params, loc, hint)
}
func (m *mockTours) FetchDetail(ctx context.Context, params tour.DetailParams, hint string) *tour.DetailResponse {
	return m.detailFn(ctx, params, hint)
}

type mockTools struct {
	invokeFn func(ctx context.Context, name, args string) (string, error)
}

func (m *mockTools) Definitions() []tool.Definition {
	return []tool.Definition{{Name: tool.AreaBasedToolName}, {Name: tool.DetailToolName}}
}
func (m *mockTools) Invoke(ctx context.Context, name, args string) (string, error) {
	return m.invokeFn(ctx, name, args)
}

type mockEvictor struct {
	calls int
	err   error
}

func (m *mockEvictor) EvictNow(context.Context) error {
	m.calls++
	return m.err
}

type mockPinger struct{ err error }

func (m *mockPinger) Ping(_ context.Context) error { return m.err }

// ---- helpers ----

const testToken = "secret-token"

type deps struct {
	tours   *mockTours
	tools   *mockTools
	evictor *mockEvictor
	cache   *mockPinger
}

func newDeps() *deps {
	return &deps{
		tours: &mockTours{
			areaFn: func(context.Context, tour.Params, string) *tour.Response {
				return &tour.Response{Items: []tour.Item{}}
			},
			locationFn: func(context.Context, tour.Params, tour.LocationParams, string) *tour.Response {
				return &tour.Response{Items: []tour.Item{}}
			},
			detailFn: func(context.Context, tour.DetailParams, string) *tour.DetailResponse {
				return &tour.DetailResponse{Items: []tour.DetailItem{}}
			},
		},
		tools: &mockTools{
			invokeFn: func(context.Context, string, string) (string, error) { return tool.NotFoundMessage, nil },
		},
		evictor: &mockEvictor{},
		cache:   &mockPinger{},
	}
}

func (d *deps) router() http.Handler {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	handlers := api.NewHandlers(d.tours, d.tools, d.evictor, log)
	metrics := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "# metrics\n")
	})
	return api.NewRouter(handlers, testToken, d.cache, metrics, log)
}

func do(t *testing.T, h http.Handler, method, target, body string, authed bool) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if authed {
		req.Header.Set("Authorization", "Bearer "+testToken)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

// ---- GET /api/v1/tours/area ----

func TestGetAreaBased_Success(t *testing.T) {
	d := newDeps()
	var gotParams tour.Params
	var gotHint string
	d.tours.areaFn = func(_ context.Context, params tour.Params, hint string) *tour.Response {
		gotParams, gotHint = params, hint
		return &tour.Response{Items: []tour.Item{{ContentID: "127974", Title: "을숙도 공원"}}}
	}

	w := do(t, d.router(), http.MethodGet, "/api/v1/tours/area?lang=ko&contentTypeId=12&areaCode=6,10", "", true)

	require.Equal(t, http.StatusOK, w.Code)
	var got tour.Response
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	require.Len(t, got.Items, 1)
	assert.Equal(t, "을숙도 공원", got.Items[0].Title)
	assert.Equal(t, "ko", gotHint)
	require.NotNil(t, gotParams.SigunguCode)
	assert.Equal(t, "10", *gotParams.SigunguCode)
}

func TestGetAreaBased_NilResultIsEmptyList(t *testing.T) {
	d := newDeps()
	d.tours.areaFn = func(context.Context, tour.Params, string) *tour.Response { return nil }

	w := do(t, d.router(), http.MethodGet, "/api/v1/tours/area?contentTypeId=12", "", true)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"items":[]}`, w.Body.String())
}

func TestGetAreaBased_MissingContentType(t *testing.T) {
	d := newDeps()
	d.tours.areaFn = func(context.Context, tour.Params, string) *tour.Response {
		t.Fatal("service should not be called")
		return nil
	}

	w := do(t, d.router(), http.MethodGet, "/api/v1/tours/area?areaCode=1", "", true)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "ContentTypeID")
}

// ---- GET /api/v1/tours/location ----

func TestGetLocationBased_Success(t *testing.T) {
	d := newDeps()
	var got tour.LocationParams
	d.tours.locationFn = func(_ context.Context, _ tour.Params, loc tour.LocationParams, _ string) *tour.Response {
		got = loc
		return &tour.Response{Items: []tour.Item{{ContentID: "133858", Title: "백제삼계탕"}}}
	}

	w := do(t, d.router(), http.MethodGet,
		"/api/v1/tours/location?contentTypeId=39&areaCode=1,24&mapX=126.98375&mapY=37.563446&radius=100", "", true)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "백제삼계탕")
	assert.Equal(t, tour.LocationParams{MapX: "126.98375", MapY: "37.563446", Radius: "100"}, got)
}

func TestGetLocationBased_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"missing coordinates", "contentTypeId=39"},
		{"non numeric radius", "contentTypeId=39&mapX=1&mapY=2&radius=near"},
		{"missing content type", "mapX=1&mapY=2&radius=3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, newDeps().router(), http.MethodGet, "/api/v1/tours/location?"+tt.query, "", true)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

// ---- GET /api/v1/tours/{contentId} ----

func TestGetDetail_Success(t *testing.T) {
	d := newDeps()
	d.tours.detailFn = func(_ context.Context, params tour.DetailParams, hint string) *tour.DetailResponse {
		assert.Equal(t, "264247", params.ContentID)
		assert.Equal(t, "en", hint)
		return &tour.DetailResponse{Items: []tour.DetailItem{{ContentID: "264247", Title: "Eulsukdo Migratory Bird Park"}}}
	}

	w := do(t, d.router(), http.MethodGet, "/api/v1/tours/264247?lang=en", "", true)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Eulsukdo Migratory Bird Park")
}

func TestGetDetail_NonNumericID(t *testing.T) {
	w := do(t, newDeps().router(), http.MethodGet, "/api/v1/tours/abc", "", true)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// ---- tools ----

func TestListTools(t *testing.T) {
	w := do(t, newDeps().router(), http.MethodGet, "/api/v1/tools", "", true)

	require.Equal(t, http.StatusOK, w.Code)
	var defs []tool.Definition
	require.NoError(t, json.NewDecoder(w.Body).Decode(&defs))
	require.Len(t, defs, 2)
	assert.Equal(t, tool.AreaBasedToolName, defs[0].Name)
}

func TestInvokeTool_Success(t *testing.T) {
	d := newDeps()
	var gotName, gotArgs string
	d.tools.invokeFn = func(_ context.Context, name, args string) (string, error) {
		gotName, gotArgs = name, args
		return `{"items":[]}`, nil
	}

	w := do(t, d.router(), http.MethodPost, "/api/v1/tools/getTourDetailInfo", `{"contentId":"1"}`, true)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"result":"{\"items\":[]}"}`, w.Body.String())
	assert.Equal(t, "getTourDetailInfo", gotName)
	assert.Equal(t, `{"contentId":"1"}`, gotArgs)
}

func TestInvokeTool_EmptyBody(t *testing.T) {
	d := newDeps()
	var gotArgs string
	d.tools.invokeFn = func(_ context.Context, _, args string) (string, error) {
		gotArgs = args
		return tool.DetailFailMessage, nil
	}

	w := do(t, d.router(), http.MethodPost, "/api/v1/tools/getTourDetailInfo", "", true)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "{}", gotArgs)
}

func TestInvokeTool_Unknown(t *testing.T) {
	d := newDeps()
	d.tools.invokeFn = func(_ context.Context, name, _ string) (string, error) {
		return "", fmt.Errorf("%w: %s", tool.ErrUnknownTool, name)
	}

	w := do(t, d.router(), http.MethodPost, "/api/v1/tools/getWeather", "{}", true)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestInvokeTool_InternalError(t *testing.T) {
	d := newDeps()
	d.tools.invokeFn = func(context.Context, string, string) (string, error) {
		return "", fmt.Errorf("boom")
	}

	w := do(t, d.router(), http.MethodPost, "/api/v1/tools/getTourDetailInfo", "{}", true)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

// ---- POST /api/v1/cache/evict ----

func TestEvictCache(t *testing.T) {
	d := newDeps()
	w := do(t, d.router(), http.MethodPost, "/api/v1/cache/evict", "", true)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, d.evictor.calls)
}

func TestEvictCache_Error(t *testing.T) {
	d := newDeps()
	d.evictor.err = fmt.Errorf("redis down")

	w := do(t, d.router(), http.MethodPost, "/api/v1/cache/evict", "", true)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

// ---- auth ----

func TestBearerAuth(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		wantError  string
		wantHeader string
	}{
		{"no header", "", "missing bearer token", `Bearer realm="tourguide"`},
		{"token without scheme", testToken, "missing bearer token", `Bearer realm="tourguide"`},
		{"empty bearer", "Bearer ", "missing bearer token", `Bearer realm="tourguide"`},
		{"wrong token", "Bearer wrong", "invalid bearer token", `Bearer realm="tourguide", error="invalid_token"`},
	}

	h := newDeps().router()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/tours/area?contentTypeId=12", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, tt.wantHeader, rec.Header().Get("WWW-Authenticate"))
			assert.JSONEq(t, `{"error":"`+tt.wantError+`"}`, rec.Body.String())
		})
	}
}

func TestBearerAuth_ValidToken(t *testing.T) {
	w := do(t, newDeps().router(), http.MethodGet, "/api/v1/tours/area?contentTypeId=12", "", true)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("WWW-Authenticate"))
}

// ---- health and metrics ----

func TestHealth_OK(t *testing.T) {
	w := do(t, newDeps().router(), http.MethodGet, "/api/v1/health", "", false)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","cache":"ok"}`, w.Body.String())
}

func TestHealth_Degraded(t *testing.T) {
	d := newDeps()
	d.cache.err = fmt.Errorf("connection refused")

	w := do(t, d.router(), http.MethodGet, "/api/v1/health", "", false)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.JSONEq(t, `{"status":"degraded","cache":"error"}`, w.Body.String())
}

func TestMetricsUnauthenticated(t *testing.T) {
	w := do(t, newDeps().router(), http.MethodGet, "/metrics", "", false)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "# metrics")
}
