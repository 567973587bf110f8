// Package catalog stores roommate posts, landlord listings and rental
// applications, merged with the built-in demo dataset for display.
package catalog

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/notepid/roomielink/internal/model"
	"github.com/notepid/roomielink/internal/storage"
	"github.com/notepid/roomielink/internal/user"
)

// LiveIDBase is the first id handed out to user-created records. Demo
// records use ids below it.
const LiveIDBase = 1000

const (
	postsKey           = "posts"
	postSeqKey         = "seq/posts"
	listingSeqKey      = "seq/listings"
	applicationsSeqKey = "seq/applications"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrForbidden         = errors.New("not the owner")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// Options configures a Catalog.
type Options struct {
	Debug bool
}

// Catalog is the post, listing and application store. Demo records live in
// memory for the lifetime of the Catalog; deleting or reviewing them is
// never persisted, so a new Catalog starts from the full demo set again.
type Catalog struct {
	store *storage.Store
	users *user.Directory
	debug bool
	now   func() time.Time

	mu               sync.Mutex
	demoPosts        []model.Post
	browseListings   []model.Listing
	managedListings  []model.Listing
	demoApplications []model.Application
}

// New creates a catalog over store with a fresh copy of the demo dataset.
func New(store *storage.Store, users *user.Directory, opts Options) *Catalog {
	now := time.Now()
	return &Catalog{
		store:            store,
		users:            users,
		debug:            opts.Debug,
		now:              time.Now,
		demoPosts:        demoPosts(now),
		browseListings:   cloneListings(browseListings),
		managedListings:  cloneListings(managedListings),
		demoApplications: append([]model.Application(nil), sampleApplications...),
	}
}

// nextID advances the persisted sequence under key and returns the new id.
func (c *Catalog) nextID(key string) (int64, error) {
	var last int64
	etag, err := c.store.Read(key, &last)
	if errors.Is(err, storage.ErrNotFound) {
		last = LiveIDBase - 1
	} else if err != nil {
		return 0, fmt.Errorf("read sequence %s: %w", key, err)
	}

	next := last + 1
	if _, err := c.store.Write(key, next, etag); err != nil {
		return 0, fmt.Errorf("advance sequence %s: %w", key, err)
	}
	return next, nil
}

// Stats are the landlord dashboard counters.
type Stats struct {
	ActiveListings    int
	TotalApplications int
	UnreadMessages    int
}

// Stats computes the dashboard counters for the session landlord. Unread
// messages are owned by the conversation store and passed in.
func (c *Catalog) Stats(sess *user.Session, unread int) (Stats, error) {
	listings, err := c.ListVisibleListings(sess)
	if err != nil {
		return Stats{}, err
	}
	apps, err := c.Applications(sess)
	if err != nil {
		return Stats{}, err
	}

	st := Stats{TotalApplications: len(apps), UnreadMessages: unread}
	for _, l := range listings {
		if l.Status == model.ListingActive {
			st.ActiveListings++
		}
	}
	return st, nil
}
