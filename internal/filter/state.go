package filter

// Choices are the dependent options offered after a city is chosen.
type Choices struct {
	Universities []Option
	Localities   []Option
}

// State is the filter selection of one feed page. Choosing a city clears
// the selections that depend on it.
type State struct {
	roommates Set
	listings  Set
	status    string
}

// NewState returns a state with nothing selected.
func NewState() *State {
	return &State{roommates: Set{}, listings: Set{}}
}

// SetCity selects the roommate city, resets university and locality, and
// returns the options valid for the new city. An unknown or empty city
// yields no options.
func (s *State) SetCity(city string) Choices {
	s.roommates[City] = city
	delete(s.roommates, University)
	delete(s.roommates, Locality)

	info, ok := Cities[city]
	if !ok {
		return Choices{}
	}
	return Choices{
		Universities: append([]Option(nil), info.Universities...),
		Localities:   info.LocalityOptions(),
	}
}

// Set selects value for a roommate dimension other than city. Localities
// are normalized to slugs.
func (s *State) Set(dim Dimension, value string) {
	if dim == City {
		s.SetCity(value)
		return
	}
	if dim == Locality {
		value = Slug(value)
	}
	s.roommates[dim] = value
}

// SetListingCity selects the listing city and resets the listing locality.
func (s *State) SetListingCity(city string) []Option {
	s.listings[ListingCity] = city
	delete(s.listings, ListingLocality)
	info, ok := Cities[city]
	if !ok {
		return nil
	}
	return info.LocalityOptions()
}

// SetListingLocality selects the listing locality.
func (s *State) SetListingLocality(locality string) {
	s.listings[ListingLocality] = Slug(locality)
}

// SetStatus selects the application status; AllStatuses or "" clears it.
func (s *State) SetStatus(status string) {
	if status == AllStatuses {
		status = ""
	}
	s.status = status
}

// Clear resets every roommate selection.
func (s *State) Clear() {
	s.roommates = Set{}
}

// ClearListing resets the listing selections.
func (s *State) ClearListing() {
	s.listings = Set{}
}

// Roommates returns a copy of the roommate selection.
func (s *State) Roommates() Set {
	return copySet(s.roommates)
}

// Listings returns a copy of the listing selection.
func (s *State) Listings() Set {
	return copySet(s.listings)
}

// Applications returns the application status selection.
func (s *State) Applications() Set {
	if s.status == "" {
		return Set{}
	}
	return Set{Status: s.status}
}

func copySet(in Set) Set {
	out := make(Set, len(in))
	for k, v := range in {
		if v != "" {
			out[k] = v
		}
	}
	return out
}
