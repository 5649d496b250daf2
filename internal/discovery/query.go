package discovery

import (
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Pagination bounds. Out-of-range page/limit values are clamped, not
// rejected; everything else malformed is a ValidationError.
const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)

const dateLayout = "2006-01-02"

// SortKey selects the total order imposed on a filtered result set.
type SortKey string

const (
	SortByDate       SortKey = "date"
	SortByTitle      SortKey = "title"
	SortByPopularity SortKey = "popularity"
)

// Query is the typed form of a discovery request. Every recognized option
// is an explicit field; zero values mean "no constraint on that dimension".
type Query struct {
	Search       string
	Category     string // category slug, resolved to an id before filtering
	StartDate    *time.Time
	EndDate      *time.Time
	Organizer    string
	Availability bool
	SortBy       SortKey
	Page         int
	Limit        int
}

// ParseQuery builds a Query from raw URL parameters, validating each
// recognized option. Malformed dates, non-integer page/limit, non-boolean
// availability, and unknown sortBy values fail with a ValidationError.
func ParseQuery(values url.Values) (Query, error) {
	q := Query{
		Search:    strings.TrimSpace(values.Get("search")),
		Category:  strings.TrimSpace(values.Get("category")),
		Organizer: strings.TrimSpace(values.Get("organizer")),
		SortBy:    SortByDate,
		Page:      DefaultPage,
		Limit:     DefaultLimit,
	}

	if raw := values.Get("startDate"); raw != "" {
		t, err := time.Parse(dateLayout, raw)
		if err != nil {
			return Query{}, validationErrorf("startDate must be a YYYY-MM-DD date, got %q", raw)
		}
		q.StartDate = &t
	}
	if raw := values.Get("endDate"); raw != "" {
		t, err := time.Parse(dateLayout, raw)
		if err != nil {
			return Query{}, validationErrorf("endDate must be a YYYY-MM-DD date, got %q", raw)
		}
		q.EndDate = &t
	}

	if raw := values.Get("availability"); raw != "" {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return Query{}, validationErrorf("availability must be a boolean, got %q", raw)
		}
		q.Availability = b
	}

	if raw := values.Get("sortBy"); raw != "" {
		switch SortKey(raw) {
		case SortByDate, SortByTitle, SortByPopularity:
			q.SortBy = SortKey(raw)
		default:
			return Query{}, validationErrorf("sortBy must be one of date, title, popularity; got %q", raw)
		}
	}

	if raw := values.Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return Query{}, validationErrorf("page must be an integer, got %q", raw)
		}
		q.Page = n
	}
	if raw := values.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return Query{}, validationErrorf("limit must be an integer, got %q", raw)
		}
		q.Limit = n
	}

	q.clamp()
	return q, nil
}

func (q *Query) clamp() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = 1
	}
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}
}
