package api

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"
	"github.com/go-playground/validator/v10"

	"github.com/neexbeast/tourguide/internal/tool"
	"github.com/neexbeast/tourguide/internal/tour"
)

const maxToolArgsBytes = 64 << 10

var validate = validator.New()

// Handlers holds the dependencies for all HTTP handlers.
type Handlers struct {
	tours   TourService
	tools   ToolInvoker
	evictor CacheEvictor
	log     *slog.Logger
}

// NewHandlers constructs Handlers with all required dependencies.
func NewHandlers(tours TourService, tools ToolInvoker, evictor CacheEvictor, log *slog.Logger) *Handlers {
	return &Handlers{
		tours:   tours,
		tools:   tools,
		evictor: evictor,
		log:     log,
	}
}

// writeJSON encodes v as JSON and writes it with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// validationMessage flattens validator errors into "field: tag" pairs.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fe.Field()+": "+fe.Tag())
	}
	return "invalid query: " + strings.Join(parts, ", ")
}

type areaQuery struct {
	Lang          string
	ContentTypeID string `validate:"required"`
	AreaCode      string
}

type locationQuery struct {
	ContentTypeID string `validate:"required"`
	MapX          string `validate:"required,numeric"`
	MapY          string `validate:"required,numeric"`
	Radius        string `validate:"required,numeric"`
}

func parseAreaQuery(r *http.Request) areaQuery {
	q := r.URL.Query()
	return areaQuery{
		Lang:          q.Get("lang"),
		ContentTypeID: strings.TrimSpace(q.Get("contentTypeId")),
		AreaCode:      q.Get("areaCode"),
	}
}

func orEmpty(resp *tour.Response) *tour.Response {
	if resp == nil {
		return &tour.Response{Items: []tour.Item{}}
	}
	return resp
}

// GetAreaBased handles GET /api/v1/tours/area.
func (h *Handlers) GetAreaBased(w http.ResponseWriter, r *http.Request) {
	q := parseAreaQuery(r)
	if err := validate.Struct(q); err != nil {
		writeError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	params := h.tours.ParseParams(q.ContentTypeID, q.AreaCode)
	writeJSON(w, http.StatusOK, orEmpty(h.tours.FetchAreaBased(r.Context(), params, q.Lang)))
}

// GetLocationBased handles GET /api/v1/tours/location.
func (h *Handlers) GetLocationBased(w http.ResponseWriter, r *http.Request) {
	area := parseAreaQuery(r)
	query := r.URL.Query()
	q := locationQuery{
		ContentTypeID: area.ContentTypeID,
		MapX:          strings.TrimSpace(query.Get("mapX")),
		MapY:          strings.TrimSpace(query.Get("mapY")),
		Radius:        strings.TrimSpace(query.Get("radius")),
	}
	if err := validate.Struct(q); err != nil {
		writeError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	params := h.tours.ParseParams(area.ContentTypeID, area.AreaCode)
	location := tour.LocationParams{MapX: q.MapX, MapY: q.MapY, Radius: q.Radius}
	writeJSON(w, http.StatusOK, orEmpty(h.tours.FetchLocationBased(r.Context(), params, location, area.Lang)))
}

// GetDetail handles GET /api/v1/tours/{contentId}.
func (h *Handlers) GetDetail(w http.ResponseWriter, r *http.Request) {
	contentID := chi.URLParam(r, "contentId")
	if err := validate.Var(contentID, "required,numeric"); err != nil {
		writeError(w, http.StatusBadRequest, "invalid contentId")
		return
	}

	resp := h.tours.FetchDetail(r.Context(), tour.DetailParams{ContentID: contentID}, r.URL.Query().Get("lang"))
	if resp == nil {
		resp = &tour.DetailResponse{Items: []tour.DetailItem{}}
	}
	writeJSON(w, http.StatusOK, resp)
}

// ListTools handles GET /api/v1/tools.
func (h *Handlers) ListTools(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.tools.Definitions())
}

// InvokeTool handles POST /api/v1/tools/{name}. The body is the raw JSON arguments object.
func (h *Handlers) InvokeTool(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	body, err := io.ReadAll(io.LimitReader(r.Body, maxToolArgsBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read body")
		return
	}
	args := strings.TrimSpace(string(body))
	if args == "" {
		args = "{}"
	}

	result, err := h.tools.Invoke(r.Context(), name, args)
	if err != nil {
		if errors.Is(err, tool.ErrUnknownTool) {
			writeError(w, http.StatusNotFound, "unknown tool: "+name)
			return
		}
		h.log.Error("tool_invoke_failed", "tool", name, "err", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"result": result})
}

// EvictCache handles POST /api/v1/cache/evict.
func (h *Handlers) EvictCache(w http.ResponseWriter, r *http.Request) {
	if err := h.evictor.EvictNow(r.Context()); err != nil {
		h.log.Error("manual_cache_eviction_failed", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to evict cache")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "evicted"})
}

// HealthHandlerFunc returns an http.HandlerFunc that checks cache backend connectivity.
// Returns 200 when the backend answers, 503 otherwise.
func HealthHandlerFunc(cache Pinger, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		if err := cache.Ping(ctx); err != nil {
			log.Error("health_check_cache_ping_failed", "err", err)
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "degraded",
				"cache":  "error",
			})
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{
			"status": "ok",
			"cache":  "ok",
		})
	}
}
