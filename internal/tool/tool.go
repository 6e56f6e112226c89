// Package tool exposes the tour service as assistant-callable tools. A tool call never
// fails: every error is folded into a fixed Korean message the assistant can relay.
package tool

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	json "github.com/goccy/go-json"
	"github.com/go-playground/validator/v10"

	"github.com/neexbeast/tourguide/internal/tour"
)

// NotFoundMessage is returned when a lookup produced no items.
const NotFoundMessage = "조회된 관광정보가 없습니다."

// ErrUnknownTool is returned by Registry.Invoke for unregistered names.
var ErrUnknownTool = errors.New("unknown tool")

var validate = validator.New()

// Property describes one argument in a tool's JSON schema.
type Property struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Default     string `json:"default,omitempty"`
}

// Schema is the JSON schema of a tool's arguments object.
type Schema struct {
	Type       string              `json:"type"`
	Properties map[string]Property `json:"properties"`
	Required   []string            `json:"required"`
}

// Definition is what an assistant sees when choosing a tool.
type Definition struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Parameters  Schema `json:"parameters"`
}

// Tool is a single callable operation.
type Tool interface {
	Definition() Definition
	Call(ctx context.Context, args string) string
}

// TourService is the subset of tour.Service the tools call.
type TourService interface {
	ParseParams(contentTypeID, areaAndSigunguCode string) tour.Params
	FetchAreaBased(ctx context.Context, params tour.Params, languageHint string) *tour.Response
	FetchLocationBased(ctx context.Context, params tour.Params, location tour.LocationParams, languageHint string) *tour.Response
	FetchDetail(ctx context.Context, params tour.DetailParams, languageHint string) *tour.DetailResponse
}

// Recorder receives per-call outcomes.
type Recorder interface {
	ToolCall(tool string, ok bool, seconds float64)
}

// Option customizes the tools built by NewTourTools.
type Option func(*runner)

// WithLogger sets the logger.
func WithLogger(log *slog.Logger) Option {
	return func(r *runner) { r.log = log }
}

// WithRecorder reports every call to rec.
func WithRecorder(rec Recorder) Option {
	return func(r *runner) { r.recorder = rec }
}

// runner holds what every tool shares: logging, metrics, and the fail-soft envelope.
type runner struct {
	log      *slog.Logger
	recorder Recorder
}

func newRunner(opts []Option) *runner {
	r := &runner{log: slog.Default()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// run decodes args into dst, validates them, and calls fn. Any failure, including a panic,
// yields failMsg.
func (r *runner) run(ctx context.Context, name, failMsg, args string, dst any, fn func(context.Context) (any, bool)) (out string) {
	start := time.Now()
	ok := false
	defer func() {
		if rec := recover(); rec != nil {
			r.log.Error("tool_panic", "tool", name, "recover", fmt.Sprint(rec))
			out, ok = failMsg, false
		}
		if r.recorder != nil {
			r.recorder.ToolCall(name, ok, time.Since(start).Seconds())
		}
	}()

	r.log.Debug("tool_called", "tool", name, "args", args)

	if err := json.Unmarshal([]byte(args), dst); err != nil {
		r.log.Warn("tool_bad_args", "tool", name, "err", err)
		return failMsg
	}
	if err := validate.Struct(dst); err != nil {
		r.log.Warn("tool_invalid_args", "tool", name, "err", err)
		return failMsg
	}

	resp, found := fn(ctx)
	if !found {
		ok = true
		return NotFoundMessage
	}

	b, err := json.Marshal(resp)
	if err != nil {
		r.log.Error("tool_marshal_failed", "tool", name, "err", err)
		return failMsg
	}

	ok = true
	r.log.Debug("tool_result", "tool", name, "result", preview(b))
	return string(b)
}

func preview(b []byte) string {
	const limit = 100
	r := []rune(string(b))
	if len(r) <= limit {
		return string(r)
	}
	return string(r[:limit]) + "..."
}

// Registry dispatches calls by tool name.
type Registry struct {
	tools map[string]Tool
	order []string
}

// NewRegistry registers tools in order. A later tool with a duplicate name replaces the earlier one.
func NewRegistry(tools ...Tool) *Registry {
	r := &Registry{tools: make(map[string]Tool, len(tools))}
	for _, t := range tools {
		name := t.Definition().Name
		if _, exists := r.tools[name]; !exists {
			r.order = append(r.order, name)
		}
		r.tools[name] = t
	}
	return r
}

// NewTourTools builds the three tour tools over svc.
func NewTourTools(svc TourService, opts ...Option) *Registry {
	run := newRunner(opts)
	return NewRegistry(
		&AreaBasedTool{svc: svc, run: run},
		&LocationBasedTool{svc: svc, run: run},
		&DetailTool{svc: svc, run: run},
	)
}

// Definitions lists every registered tool in registration order.
func (r *Registry) Definitions() []Definition {
	defs := make([]Definition, 0, len(r.order))
	for _, name := range r.order {
		defs = append(defs, r.tools[name].Definition())
	}
	return defs
}

// Invoke calls the named tool with raw JSON args.
func (r *Registry) Invoke(ctx context.Context, name, args string) (string, error) {
	t, ok := r.tools[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}
	return t.Call(ctx, args), nil
}
