package tour

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultHTTPTimeout = 10 * time.Second
	defaultMobileApp   = "KoreaTravelGuide"
	maxBodyBytes       = 4 << 20

	opAreaBased     = "areaBasedList2"
	opLocationBased = "locationBasedList2"
	opDetail        = "detailCommon2"
)

// Upstream call outcomes reported to the Observer.
const (
	OutcomeOK          = "ok"
	OutcomeEmpty       = "empty"
	OutcomeTransport   = "transport_error"
	OutcomeHTTPStatus  = "http_error"
	OutcomeResultCode  = "result_code"
	OutcomeInvalidJSON = "invalid_json"
)

// ClientConfig holds the externally supplied upstream settings.
type ClientConfig struct {
	BaseURL    string
	ServiceKey string
	MobileApp  string
	Timeout    time.Duration
}

// ClientOption customizes a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.client = hc }
}

// WithLogger sets the logger used for failure reporting.
func WithLogger(log *slog.Logger) ClientOption {
	return func(c *Client) { c.log = log }
}

// WithObserver sets the metrics sink.
func WithObserver(o Observer) ClientOption {
	return func(c *Client) { c.observer = o }
}

// Client calls the Korea Tourism Organization open API. It never returns errors: every
// upstream failure is logged and collapsed into an empty response.
type Client struct {
	baseURL    string
	serviceKey string
	mobileApp  string
	client     *http.Client
	log        *slog.Logger
	observer   Observer
}

// NewClient constructs a Client for the given base URL and service key.
func NewClient(cfg ClientConfig, opts ...ClientOption) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	mobileApp := cfg.MobileApp
	if mobileApp == "" {
		mobileApp = defaultMobileApp
	}

	c := &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		serviceKey: cfg.ServiceKey,
		mobileApp:  mobileApp,
		client:     &http.Client{Timeout: timeout},
		log:        slog.Default(),
		observer:   noopObserver{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchAreaBased calls areaBasedList2.
func (c *Client) FetchAreaBased(ctx context.Context, params Params, lang Language) *Response {
	query := url.Values{}
	setParams(query, params)

	body, ok := c.get(ctx, lang, opAreaBased, query)
	if !ok {
		return emptyResponse()
	}
	return c.parseList(body, opAreaBased)
}

// FetchLocationBased calls locationBasedList2.
func (c *Client) FetchLocationBased(ctx context.Context, params Params, location LocationParams, lang Language) *Response {
	query := url.Values{}
	query.Set("mapX", location.MapX)
	query.Set("mapY", location.MapY)
	query.Set("radius", location.Radius)
	setParams(query, params)

	body, ok := c.get(ctx, lang, opLocationBased, query)
	if !ok {
		return emptyResponse()
	}
	return c.parseList(body, opLocationBased)
}

// FetchDetail calls detailCommon2.
func (c *Client) FetchDetail(ctx context.Context, params DetailParams, lang Language) *DetailResponse {
	query := url.Values{}
	query.Set("contentId", params.ContentID)

	body, ok := c.get(ctx, lang, opDetail, query)
	if !ok {
		return emptyDetailResponse()
	}
	return c.parseDetail(body, opDetail)
}

func setParams(query url.Values, params Params) {
	query.Set("contentTypeId", params.ContentTypeID)
	if params.AreaCode != nil {
		query.Set("areaCode", *params.AreaCode)
	}
	if params.SigunguCode != nil {
		query.Set("sigunguCode", *params.SigunguCode)
	}
}

// buildURL returns {base}/{segment}/{operation} with the fixed and endpoint query parameters.
func (c *Client) buildURL(lang Language, operation string, query url.Values) string {
	q := url.Values{}
	q.Set("serviceKey", c.serviceKey)
	q.Set("MobileOS", "WEB")
	q.Set("MobileApp", c.mobileApp)
	q.Set("_type", "json")
	for k, vs := range query {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	return fmt.Sprintf("%s/%s/%s?%s", c.baseURL, url.PathEscape(lang.Segment()), operation, q.Encode())
}

// get performs one GET without retry. ok is false on any transport-level failure.
func (c *Client) get(ctx context.Context, lang Language, operation string, query url.Values) ([]byte, bool) {
	endpoint := c.buildURL(lang, operation, query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		c.log.Error("tour_api_request_build_failed", "operation", operation, "err", err)
		c.observer.UpstreamCall(operation, OutcomeTransport)
		return nil, false
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.log.Error("tour_api_request_failed", "operation", operation, "language", lang.Segment(), "err", err)
		c.observer.UpstreamCall(operation, OutcomeTransport)
		return nil, false
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		c.log.Error("tour_api_read_failed", "operation", operation, "err", err)
		c.observer.UpstreamCall(operation, OutcomeTransport)
		return nil, false
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.log.Error("tour_api_http_failed", "operation", operation, "status", resp.StatusCode)
		c.observer.UpstreamCall(operation, OutcomeHTTPStatus)
		return nil, false
	}

	if len(bytes.TrimSpace(body)) == 0 {
		c.observer.UpstreamCall(operation, OutcomeEmpty)
		return nil, false
	}

	return body, true
}
