package discovery

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQueryDefaults(t *testing.T) {
	q, err := ParseQuery(url.Values{})
	require.NoError(t, err)

	assert.Equal(t, SortByDate, q.SortBy)
	assert.Equal(t, DefaultPage, q.Page)
	assert.Equal(t, DefaultLimit, q.Limit)
	assert.Empty(t, q.Search)
	assert.Empty(t, q.Category)
	assert.Empty(t, q.Organizer)
	assert.Nil(t, q.StartDate)
	assert.Nil(t, q.EndDate)
	assert.False(t, q.Availability)
}

func TestParseQueryAllFields(t *testing.T) {
	values := url.Values{
		"search":       {"jazz"},
		"category":     {"arts"},
		"startDate":    {"2025-12-01"},
		"endDate":      {"2025-12-10"},
		"organizer":    {"music club"},
		"availability": {"true"},
		"sortBy":       {"popularity"},
		"page":         {"3"},
		"limit":        {"50"},
	}

	q, err := ParseQuery(values)
	require.NoError(t, err)

	assert.Equal(t, "jazz", q.Search)
	assert.Equal(t, "arts", q.Category)
	assert.Equal(t, "music club", q.Organizer)
	require.NotNil(t, q.StartDate)
	require.NotNil(t, q.EndDate)
	assert.Equal(t, time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC), *q.StartDate)
	assert.Equal(t, time.Date(2025, 12, 10, 0, 0, 0, 0, time.UTC), *q.EndDate)
	assert.True(t, q.Availability)
	assert.Equal(t, SortByPopularity, q.SortBy)
	assert.Equal(t, 3, q.Page)
	assert.Equal(t, 50, q.Limit)
}

func TestParseQueryRejectsMalformedParameters(t *testing.T) {
	tests := []struct {
		name   string
		values url.Values
	}{
		{"malformed startDate", url.Values{"startDate": {"12/01/2025"}}},
		{"malformed endDate", url.Values{"endDate": {"tomorrow"}}},
		{"non-boolean availability", url.Values{"availability": {"yes please"}}},
		{"unknown sortBy", url.Values{"sortBy": {"price"}}},
		{"non-integer page", url.Values{"page": {"first"}}},
		{"non-integer limit", url.Values{"limit": {"many"}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseQuery(tc.values)
			require.Error(t, err)

			var verr *ValidationError
			assert.ErrorAs(t, err, &verr)
		})
	}
}

func TestParseQueryClampsPageAndLimit(t *testing.T) {
	tests := []struct {
		name      string
		values    url.Values
		wantPage  int
		wantLimit int
	}{
		{"zero page", url.Values{"page": {"0"}}, 1, DefaultLimit},
		{"negative page", url.Values{"page": {"-5"}}, 1, DefaultLimit},
		{"zero limit", url.Values{"limit": {"0"}}, 1, 1},
		{"oversized limit", url.Values{"limit": {"500"}}, 1, MaxLimit},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			q, err := ParseQuery(tc.values)
			require.NoError(t, err)
			assert.Equal(t, tc.wantPage, q.Page)
			assert.Equal(t, tc.wantLimit, q.Limit)
		})
	}
}
