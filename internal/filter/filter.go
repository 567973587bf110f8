// Package filter implements conjunctive exact-match filtering over in-memory
// collections, plus the city table and selection state the feed pages use.
package filter

import (
	"regexp"
	"sort"
	"strings"
)

// Dimension names one filterable attribute.
type Dimension string

const (
	City            Dimension = "city"
	University      Dimension = "university"
	Locality        Dimension = "locality"
	Price           Dimension = "price"
	RoomType        Dimension = "roomType"
	Gender          Dimension = "gender"
	Food            Dimension = "food"
	Term            Dimension = "term"
	GraduationYear  Dimension = "graduationYear"
	ListingCity     Dimension = "listingCity"
	ListingLocality Dimension = "listingLocality"
	Status          Dimension = "status"
)

// AllStatuses is the status filter value that matches every application.
const AllStatuses = "all"

// Set maps dimensions to required values. A missing or empty value leaves
// the dimension unconstrained.
type Set map[Dimension]string

// Active returns the dimensions that constrain a query, in name order.
// A status of AllStatuses does not constrain.
func (s Set) Active() []Dimension {
	var dims []Dimension
	for d, v := range s {
		if v == "" || (d == Status && v == AllStatuses) {
			continue
		}
		dims = append(dims, d)
	}
	sort.Slice(dims, func(i, j int) bool { return dims[i] < dims[j] })
	return dims
}

// Apply returns the items whose fields match every set dimension, in their
// original order. fields reports an item's value per dimension; a dimension
// the item does not report never matches a set value.
func Apply[T any](items []T, set Set, fields func(T) map[Dimension]string) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if Matches(set, fields(item)) {
			out = append(out, item)
		}
	}
	return out
}

// Matches reports whether values satisfy every set dimension.
func Matches(set Set, values map[Dimension]string) bool {
	for dim, want := range set {
		if want == "" {
			continue
		}
		if dim == Status && want == AllStatuses {
			continue
		}
		if values[dim] != want {
			return false
		}
	}
	return true
}

var whitespace = regexp.MustCompile(`\s+`)

// Slug lowercases s and replaces each whitespace run with a hyphen, so
// "Back Bay" becomes "back-bay".
func Slug(s string) string {
	return whitespace.ReplaceAllString(strings.ToLower(s), "-")
}
