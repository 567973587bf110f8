package catalog

import (
	"strings"

	"github.com/notepid/roomielink/internal/filter"
	"github.com/notepid/roomielink/internal/model"
)

var priceLabels = map[string]string{
	"under-500": "Under $500",
	"500-700":   "$500-700",
	"700-800":   "$700-800",
	"800-1200":  "$800-1200",
	"1200-plus": "$1200+",
}

var roomTypeLabels = map[string]string{
	"private": "Private Room",
	"shared":  "Shared Room",
}

var genderLabels = map[string]string{
	"male":   "Male Only",
	"female": "Female Only",
	"mixed":  "Any Gender",
}

var foodLabels = map[string]string{
	"vegetarian":     "Vegetarian",
	"non-vegetarian": "Non-Vegetarian",
}

func label(table map[string]string, value string) string {
	if l, ok := table[value]; ok {
		return l
	}
	return value
}

// postTags derives display tags from the structured fields, then appends
// the author's own tags, skipping blanks and duplicates.
func postTags(f PostFields) []string {
	tags := []string{
		label(priceLabels, f.Price),
		label(roomTypeLabels, f.RoomType),
		label(genderLabels, f.Gender),
		label(foodLabels, f.Food),
	}
	if f.Term != "" {
		tags = append(tags, f.Term)
	}
	switch f.GraduationYear {
	case "":
	case "grad":
		tags = append(tags, "Graduate")
	default:
		tags = append(tags, "Class of "+f.GraduationYear)
	}
	tags = append(tags, f.Tags...)

	seen := make(map[string]bool, len(tags))
	out := tags[:0]
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

// PostDimensions reports a post's filterable values.
func PostDimensions(p model.Post) map[filter.Dimension]string {
	return map[filter.Dimension]string{
		filter.City:           p.City,
		filter.University:     p.University,
		filter.Locality:       filter.Slug(p.Locality),
		filter.Price:          p.Price,
		filter.RoomType:       p.RoomType,
		filter.Gender:         p.Gender,
		filter.Food:           p.Food,
		filter.Term:           p.Term,
		filter.GraduationYear: p.GraduationYear,
	}
}

// ListingDimensions reports a listing's filterable values.
func ListingDimensions(l model.Listing) map[filter.Dimension]string {
	return map[filter.Dimension]string{
		filter.ListingCity:     l.City,
		filter.ListingLocality: filter.Slug(l.Locality),
		filter.Price:           l.PriceRange,
		filter.Status:          string(l.Status),
	}
}

// ApplicationDimensions reports an application's filterable values.
func ApplicationDimensions(a model.Application) map[filter.Dimension]string {
	return map[filter.Dimension]string{
		filter.Status: string(a.Status),
	}
}
