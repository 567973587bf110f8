package filter

// Option is one selectable value with its display label.
type Option struct {
	Value string
	Name  string
}

// CityInfo lists the universities and localities offered for a city.
type CityInfo struct {
	Name         string
	Universities []Option
	Localities   []string
}

// LocalityOptions returns the city's localities as slug/label pairs.
func (c CityInfo) LocalityOptions() []Option {
	opts := make([]Option, len(c.Localities))
	for i, l := range c.Localities {
		opts[i] = Option{Value: Slug(l), Name: l}
	}
	return opts
}

// CityOrder is the display order of Cities.
var CityOrder = []string{"boston", "newyork", "sanfrancisco", "losangeles", "chicago", "philadelphia"}

// Cities is the static city table keyed by city value.
var Cities = map[string]CityInfo{
	"boston": {
		Name: "Boston",
		Universities: []Option{
			{"harvard", "Harvard University"},
			{"mit", "MIT"},
			{"bu", "Boston University"},
			{"northeastern", "Northeastern University"},
			{"emerson", "Emerson College"},
			{"suffolk", "Suffolk University"},
		},
		Localities: []string{
			"Back Bay", "North End", "Cambridge", "Somerville", "Allston",
			"Brighton", "Fenway", "South End", "Beacon Hill", "Mission Hill",
			"Jamaica Plain", "Charlestown", "East Boston",
		},
	},
	"newyork": {
		Name: "New York",
		Universities: []Option{
			{"nyu", "New York University"},
			{"columbia", "Columbia University"},
			{"fordham", "Fordham University"},
			{"pace", "Pace University"},
			{"newschool", "The New School"},
		},
		Localities: []string{
			"Manhattan", "Brooklyn", "Queens", "Bronx", "East Village",
			"SoHo", "Williamsburg", "Greenwich Village", "Upper East Side",
			"Upper West Side", "Midtown", "Lower East Side", "Chelsea",
		},
	},
	"sanfrancisco": {
		Name: "San Francisco",
		Universities: []Option{
			{"stanford", "Stanford University"},
			{"berkeley", "UC Berkeley"},
			{"ucsf", "UCSF"},
			{"sfsu", "San Francisco State University"},
		},
		Localities: []string{
			"Mission", "Castro", "SOMA", "Nob Hill", "Pacific Heights",
			"Haight-Ashbury", "Richmond", "Sunset", "Marina", "Presidio",
			"Financial District", "Chinatown",
		},
	},
	"losangeles": {
		Name: "Los Angeles",
		Universities: []Option{
			{"ucla", "UCLA"},
			{"usc", "USC"},
			{"caltech", "Caltech"},
			{"lmu", "Loyola Marymount University"},
		},
		Localities: []string{
			"Westwood", "Hollywood", "Beverly Hills", "Santa Monica",
			"Venice", "Downtown LA", "Koreatown", "Silver Lake",
			"West Hollywood", "Culver City", "Pasadena",
		},
	},
	"chicago": {
		Name: "Chicago",
		Universities: []Option{
			{"uchicago", "University of Chicago"},
			{"northwestern", "Northwestern University"},
			{"depaul", "DePaul University"},
			{"uic", "University of Illinois Chicago"},
		},
		Localities: []string{
			"Lincoln Park", "Wicker Park", "River North", "Logan Square",
			"Lakeview", "Hyde Park", "Bucktown", "Old Town",
			"West Loop", "Gold Coast", "Pilsen",
		},
	},
	"philadelphia": {
		Name: "Philadelphia",
		Universities: []Option{
			{"upenn", "University of Pennsylvania"},
			{"temple", "Temple University"},
			{"drexel", "Drexel University"},
			{"villanova", "Villanova University"},
		},
		Localities: []string{
			"Center City", "University City", "Northern Liberties",
			"Fishtown", "Society Hill", "Queen Village", "Rittenhouse Square",
			"Graduate Hospital", "Old City", "Fairmount",
		},
	},
}
