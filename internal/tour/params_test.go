package tour_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neexbeast/tourguide/internal/tour"
)

func TestParseParams_AreaAndSigungu(t *testing.T) {
	p := tour.ParseParams("12", "6,10")

	assert.Equal(t, "12", p.ContentTypeID)
	require.NotNil(t, p.AreaCode)
	assert.Equal(t, "6", *p.AreaCode)
	require.NotNil(t, p.SigunguCode)
	assert.Equal(t, "10", *p.SigunguCode)
}

func TestParseParams_AreaOnly(t *testing.T) {
	p := tour.ParseParams("15", "7")

	assert.Equal(t, "15", p.ContentTypeID)
	require.NotNil(t, p.AreaCode)
	assert.Equal(t, "7", *p.AreaCode)
	assert.Nil(t, p.SigunguCode, "missing sigungu must be nil, not empty")
}

func TestParseParams_EmptyInput(t *testing.T) {
	p := tour.ParseParams("25", "")

	assert.Equal(t, "25", p.ContentTypeID)
	require.NotNil(t, p.AreaCode)
	assert.Equal(t, "", *p.AreaCode)
	assert.Nil(t, p.SigunguCode)
}

func TestParseParams_TrimsTokens(t *testing.T) {
	p := tour.ParseParams("39", " 1 ,  24 ")

	require.NotNil(t, p.AreaCode)
	require.NotNil(t, p.SigunguCode)
	assert.Equal(t, "1", *p.AreaCode)
	assert.Equal(t, "24", *p.SigunguCode)
}

func TestParseParams_EmptyTokenIsEmptyString(t *testing.T) {
	p := tour.ParseParams("12", ",5")

	require.NotNil(t, p.AreaCode)
	assert.Equal(t, "", *p.AreaCode)
	require.NotNil(t, p.SigunguCode)
	assert.Equal(t, "5", *p.SigunguCode)

	trailing := tour.ParseParams("12", "6,")
	require.NotNil(t, trailing.SigunguCode)
	assert.Equal(t, "", *trailing.SigunguCode)
}

func TestParseParams_HyphenIsNotASeparator(t *testing.T) {
	p := tour.ParseParams("12", "6-10")

	require.NotNil(t, p.AreaCode)
	assert.Equal(t, "6-10", *p.AreaCode)
	assert.Nil(t, p.SigunguCode)
}
