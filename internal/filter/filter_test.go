package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type room struct {
	id       int
	city     string
	locality string
	price    string
	gender   string
}

func roomFields(r room) map[Dimension]string {
	return map[Dimension]string{
		City:     r.city,
		Locality: Slug(r.locality),
		Price:    r.price,
		Gender:   r.gender,
	}
}

var rooms = []room{
	{1, "boston", "Back Bay", "1200-plus", "female"},
	{2, "boston", "Fenway", "800-1000", "any"},
	{3, "newyork", "SoHo", "1200-plus", "female"},
	{4, "boston", "back-bay", "800-1000", "male"},
}

func ids(rs []room) []int {
	out := make([]int, len(rs))
	for i, r := range rs {
		out[i] = r.id
	}
	return out
}

func TestApply(t *testing.T) {
	tcases := []struct {
		name string
		set  Set
		want []int
	}{
		{"empty set keeps everything", Set{}, []int{1, 2, 3, 4}},
		{"blank value is unset", Set{City: "", Price: ""}, []int{1, 2, 3, 4}},
		{"single dimension", Set{City: "boston"}, []int{1, 2, 4}},
		{"conjunction", Set{City: "boston", Price: "1200-plus"}, []int{1}},
		{"locality matches slug", Set{Locality: "back-bay"}, []int{1, 4}},
		{"no match", Set{City: "chicago"}, []int{}},
		{"unreported dimension", Set{Food: "vegan"}, []int{}},
	}
	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ids(Apply(rooms, tc.set, roomFields)))
		})
	}
}

func TestApplyIdempotent(t *testing.T) {
	set := Set{City: "boston", Gender: "female"}
	once := Apply(rooms, set, roomFields)
	assert.Equal(t, once, Apply(once, set, roomFields))
}

func TestApplyComposes(t *testing.T) {
	tcases := []struct {
		name   string
		first  Set
		second Set
		want   []int
	}{
		{
			name:   "city then price and gender",
			first:  Set{City: "boston"},
			second: Set{Price: "1200-plus", Gender: "female"},
			want:   []int{1},
		},
		{
			name:   "locality then price",
			first:  Set{Locality: "back-bay"},
			second: Set{Price: "800-1000"},
			want:   []int{4},
		},
		{
			name:   "gender then city with no match",
			first:  Set{Gender: "female"},
			second: Set{City: "chicago"},
			want:   []int{},
		},
	}

	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			merged := Set{}
			for d, v := range tc.first {
				merged[d] = v
			}
			for d, v := range tc.second {
				require.NotContains(t, merged, d, "sets must not share a dimension")
				merged[d] = v
			}

			chained := Apply(Apply(rooms, tc.first, roomFields), tc.second, roomFields)
			assert.Equal(t, Apply(rooms, merged, roomFields), chained)
			assert.Equal(t, tc.want, ids(chained))
		})
	}
}

func TestSetActive(t *testing.T) {
	set := Set{University: "mit", City: "boston", Gender: "", Status: AllStatuses}
	assert.Equal(t, []Dimension{City, University}, set.Active())
	assert.Empty(t, Set{}.Active())
	assert.Equal(t, []Dimension{Status}, Set{Status: "pending"}.Active())
}

func TestStatusAll(t *testing.T) {
	assert.True(t, Matches(Set{Status: AllStatuses}, map[Dimension]string{Status: "pending"}))
	assert.False(t, Matches(Set{Status: "approved"}, map[Dimension]string{Status: "pending"}))

	s := NewState()
	s.SetStatus("rejected")
	assert.Equal(t, Set{Status: "rejected"}, s.Applications())
	s.SetStatus(AllStatuses)
	assert.Empty(t, s.Applications())
}

func TestSlug(t *testing.T) {
	assert.Equal(t, "back-bay", Slug("Back Bay"))
	assert.Equal(t, "upper-east-side", Slug("Upper  East\tSide"))
	assert.Equal(t, "haight-ashbury", Slug("Haight-Ashbury"))
	assert.Equal(t, "soma", Slug("SOMA"))
}

func TestSetCityCascade(t *testing.T) {
	s := NewState()
	s.SetCity("boston")
	s.Set(University, "mit")
	s.Set(Locality, "Back Bay")
	s.Set(Price, "1200-plus")
	assert.Equal(t, Set{City: "boston", University: "mit", Locality: "back-bay", Price: "1200-plus"}, s.Roommates())

	choices := s.SetCity("newyork")
	assert.Equal(t, Set{City: "newyork", Price: "1200-plus"}, s.Roommates())
	require.NotEmpty(t, choices.Universities)
	assert.Equal(t, "nyu", choices.Universities[0].Value)
	assert.Contains(t, choices.Localities, Option{Value: "upper-east-side", Name: "Upper East Side"})

	assert.Empty(t, s.SetCity("atlantis").Universities)
}

func TestListingCascadeAndClear(t *testing.T) {
	s := NewState()
	s.SetCity("boston")
	locs := s.SetListingCity("boston")
	require.NotEmpty(t, locs)
	s.SetListingLocality("Back Bay")
	assert.Equal(t, Set{ListingCity: "boston", ListingLocality: "back-bay"}, s.Listings())

	s.SetListingCity("chicago")
	assert.Equal(t, Set{ListingCity: "chicago"}, s.Listings())

	s.ClearListing()
	assert.Empty(t, s.Listings())
	assert.Equal(t, Set{City: "boston"}, s.Roommates(), "clearing listings leaves roommate filters")

	s.Clear()
	assert.Empty(t, s.Roommates())
}

func TestCityTable(t *testing.T) {
	require.Len(t, Cities, len(CityOrder))
	for _, c := range CityOrder {
		info, ok := Cities[c]
		require.True(t, ok, c)
		assert.NotEmpty(t, info.Universities, c)
		assert.NotEmpty(t, info.Localities, c)
	}
}
