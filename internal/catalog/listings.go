package catalog

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/notepid/roomielink/internal/filter"
	"github.com/notepid/roomielink/internal/model"
	"github.com/notepid/roomielink/internal/user"
	"github.com/notepid/roomielink/internal/validate"
)

// ListingFields are the landlord-supplied fields of a new listing.
type ListingFields struct {
	Title      string
	Price      string
	Address    string
	City       string
	Locality   string
	PriceRange string
	Bedrooms   int
	Bathrooms  float64
	SquareFeet int
	Tags       []string
}

// details formats the bedroom, bathroom and area triple shown on cards.
func details(bedrooms int, bathrooms float64, sqft int) []string {
	return []string{
		fmt.Sprintf("%d BR", bedrooms),
		strconv.FormatFloat(bathrooms, 'f', -1, 64) + " BA",
		fmt.Sprintf("%d sq ft", sqft),
	}
}

// ListVisibleListings returns the session landlord's listings followed by
// the demo listings.
func (c *Catalog) ListVisibleListings(sess *user.Session) ([]model.Listing, error) {
	u, err := c.users.RequirePartition(sess, user.Landlords)
	if err != nil {
		return nil, err
	}

	out := cloneListings(u.Listings)
	c.mu.Lock()
	out = append(out, cloneListings(c.managedListings)...)
	c.mu.Unlock()
	return out, nil
}

// BrowseListings returns what students see on the listings tab: every
// landlord's active live listings followed by the demo listings.
func (c *Catalog) BrowseListings(sess *user.Session) ([]model.Listing, error) {
	if _, err := c.users.Require(sess); err != nil {
		return nil, err
	}
	landlords, err := c.users.List(user.Landlords)
	if err != nil {
		return nil, err
	}

	var out []model.Listing
	for _, l := range landlords {
		for _, listing := range l.Listings {
			if listing.Status == model.ListingActive {
				out = append(out, listing.Clone())
			}
		}
	}
	c.mu.Lock()
	out = append(out, cloneListings(c.browseListings)...)
	c.mu.Unlock()
	return out, nil
}

// CreateListing validates f and prepends a new active listing to the
// session landlord's record.
func (c *Catalog) CreateListing(sess *user.Session, f ListingFields) (*model.Listing, error) {
	u, err := c.users.RequirePartition(sess, user.Landlords)
	if err != nil {
		return nil, err
	}

	if err := validate.Required(
		validate.F("title", f.Title),
		validate.F("price", f.Price),
		validate.F("address", f.Address),
		validate.F("city", f.City),
	); err != nil {
		return nil, err
	}
	if f.Bedrooms < 0 || f.Bathrooms < 0 || f.SquareFeet < 0 {
		return nil, &validate.Error{Field: "details", Reason: "cannot be negative"}
	}
	for _, t := range f.Tags {
		if err := validate.String(t, "tags", validate.MaxTagLen); err != nil {
			return nil, err
		}
	}

	id, err := c.nextID(listingSeqKey)
	if err != nil {
		return nil, err
	}

	now := c.now()
	landlord := u.Company
	if landlord == "" {
		landlord = u.Name
	}
	l := model.Listing{
		ID:         id,
		Owner:      u.Username,
		Landlord:   landlord,
		Title:      strings.TrimSpace(f.Title),
		Price:      strings.TrimSpace(f.Price),
		Address:    strings.TrimSpace(f.Address),
		City:       f.City,
		Locality:   filter.Slug(strings.TrimSpace(f.Locality)),
		PriceRange: f.PriceRange,
		Bedrooms:   f.Bedrooms,
		Bathrooms:  f.Bathrooms,
		SquareFeet: f.SquareFeet,
		Details:    details(f.Bedrooms, f.Bathrooms, f.SquareFeet),
		Status:     model.ListingActive,
		Tags:       append([]string{}, f.Tags...),
		DatePosted: now.Format("2006-01-02"),
		CreatedAt:  now,
	}

	u.Listings = append([]model.Listing{l}, u.Listings...)
	if err := c.users.UpdateUser(sess, u); err != nil {
		return nil, fmt.Errorf("create listing: %w", err)
	}

	if c.debug {
		log.Printf("catalog: %s created listing %d", u.Username, l.ID)
	}
	return &l, nil
}

// DeleteListing removes an owned listing from the landlord's record, or a
// demo listing for the lifetime of this Catalog. Unknown ids are ignored.
func (c *Catalog) DeleteListing(sess *user.Session, id int64) error {
	u, err := c.users.RequirePartition(sess, user.Landlords)
	if err != nil {
		return err
	}

	for i, l := range u.Listings {
		if l.ID == id {
			u.Listings = append(u.Listings[:i], u.Listings[i+1:]...)
			if err := c.users.UpdateUser(sess, u); err != nil {
				return fmt.Errorf("delete listing %d: %w", id, err)
			}
			if c.debug {
				log.Printf("catalog: %s deleted listing %d", u.Username, id)
			}
			return nil
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for i, l := range c.managedListings {
		if l.ID == id {
			c.managedListings = append(c.managedListings[:i], c.managedListings[i+1:]...)
			if c.debug {
				log.Printf("catalog: hid demo listing %d", id)
			}
			return nil
		}
	}
	return nil
}

// SetListingStatus changes the status of an owned or demo listing.
func (c *Catalog) SetListingStatus(sess *user.Session, id int64, status model.ListingStatus) error {
	if !status.Valid() {
		return &validate.Error{Field: "status", Reason: fmt.Sprintf("unknown status %q", status)}
	}
	u, err := c.users.RequirePartition(sess, user.Landlords)
	if err != nil {
		return err
	}

	for i := range u.Listings {
		if u.Listings[i].ID == id {
			u.Listings[i].Status = status
			if err := c.users.UpdateUser(sess, u); err != nil {
				return fmt.Errorf("update listing %d: %w", id, err)
			}
			return nil
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.managedListings {
		if c.managedListings[i].ID == id {
			c.managedListings[i].Status = status
			return nil
		}
	}
	return fmt.Errorf("listing %d: %w", id, ErrNotFound)
}
