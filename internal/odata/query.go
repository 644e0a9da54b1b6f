// Package odata builds OData query strings from typed optional parameters.
package odata

import (
	"net/url"
	"strconv"
)

// Query carries the optional OData system query options a caller may set.
// Zero-valued fields are omitted from the encoded query string.
type Query struct {
	Select  string
	Filter  string
	OrderBy string
	Expand  string
	Apply   string
	Top     int
}

// IsZero reports whether no option is set.
func (q Query) IsZero() bool {
	return q == Query{}
}

// Values returns the query options as url.Values, containing only the
// options that are set.
func (q Query) Values() url.Values {
	v := url.Values{}
	if q.Select != "" {
		v.Set("$select", q.Select)
	}
	if q.Filter != "" {
		v.Set("$filter", q.Filter)
	}
	if q.OrderBy != "" {
		v.Set("$orderby", q.OrderBy)
	}
	if q.Expand != "" {
		v.Set("$expand", q.Expand)
	}
	if q.Apply != "" {
		v.Set("$apply", q.Apply)
	}
	if q.Top > 0 {
		v.Set("$top", strconv.Itoa(q.Top))
	}
	return v
}

// Encode returns the percent-encoded query string, without a leading "?".
// Returns the empty string when no option is set.
func (q Query) Encode() string {
	return q.Values().Encode()
}
