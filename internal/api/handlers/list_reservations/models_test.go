package list_reservations

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQuery(t *testing.T) {
	req, err := ParseQuery("rooms", url.Values{
		"from":             {"2025-01-06"},
		"to":               {"2025-01-12"},
		"resourceId":       {"room-a"},
		"includeCancelled": {"true"},
	})
	require.NoError(t, err)

	assert.Equal(t, "rooms", req.Domain)
	require.NotNil(t, req.From)
	assert.Equal(t, time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC), *req.From)
	require.NotNil(t, req.To)
	assert.Equal(t, time.Date(2025, 1, 12, 0, 0, 0, 0, time.UTC), *req.To)
	require.NotNil(t, req.ResourceID)
	assert.Equal(t, "room-a", *req.ResourceID)
	assert.True(t, req.IncludeCancelled)
}

func TestParseQuery_Empty(t *testing.T) {
	req, err := ParseQuery("rooms", url.Values{})
	require.NoError(t, err)
	assert.Nil(t, req.From)
	assert.Nil(t, req.To)
	assert.Nil(t, req.ResourceID)
	assert.False(t, req.IncludeCancelled)
}

func TestParseQuery_Invalid(t *testing.T) {
	for _, q := range []url.Values{
		{"from": {"06.01.2025"}},
		{"to": {"tomorrow"}},
		{"includeCancelled": {"maybe"}},
	} {
		_, err := ParseQuery("rooms", q)
		assert.Error(t, err, "query %v", q)
	}
}
