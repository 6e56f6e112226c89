package tour_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neexbeast/tourguide/internal/tour"
)

func TestService_ResolvesLanguageHint(t *testing.T) {
	upstream := newMockUpstream()
	var seen []tour.Language
	upstream.areaFn = func(_ tour.Params, lang tour.Language) *tour.Response {
		seen = append(seen, lang)
		return simpleResponse("1", "t")
	}
	svc := tour.NewService(upstream, upstream, upstream, slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx := context.Background()

	svc.FetchAreaBased(ctx, svc.ParseParams("12", "1"), "EngService2")
	svc.FetchAreaBased(ctx, svc.ParseParams("12", "1"), "일본어")
	svc.FetchAreaBased(ctx, svc.ParseParams("12", "1"), "")

	assert.Equal(t, []tour.Language{tour.English, tour.Japanese, tour.Korean}, seen)
}

func TestService_FetchLocationBasedAndDetail(t *testing.T) {
	upstream := newMockUpstream()
	upstream.locFn = func(_ tour.Params, _ tour.LocationParams, _ tour.Language) *tour.Response {
		return &tour.Response{Items: []tour.Item{}}
	}
	svc := tour.NewService(upstream, upstream, upstream, nil)
	ctx := context.Background()

	loc := svc.FetchLocationBased(ctx, svc.ParseParams("39", "1,24"),
		tour.LocationParams{MapX: "1", MapY: "2", Radius: "3"}, "zh-tw")
	require.NotNil(t, loc)
	assert.Empty(t, loc.Items)
	assert.Equal(t, 1, upstream.locCalls["39_1_24_1_2_3_ChtService2"])

	detail := svc.FetchDetail(ctx, tour.DetailParams{ContentID: "99"}, "chs")
	require.Len(t, detail.Items, 1)
	assert.Equal(t, 1, upstream.detailCalls["99_ChsService2"])
}
