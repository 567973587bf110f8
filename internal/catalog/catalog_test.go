package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/notepid/roomielink/internal/filter"
	"github.com/notepid/roomielink/internal/model"
	"github.com/notepid/roomielink/internal/storage"
	"github.com/notepid/roomielink/internal/testutil"
	"github.com/notepid/roomielink/internal/user"
	"github.com/notepid/roomielink/internal/validate"
)

type fixture struct {
	store   *storage.Store
	users   *user.Directory
	catalog *Catalog
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := testutil.NewStore(t)
	users := user.NewDirectory(store, user.Options{BcryptCost: bcrypt.MinCost, MinPassword: 6})
	require.NoError(t, users.Initialize())
	return &fixture{store: store, users: users, catalog: New(store, users, Options{})}
}

func (f *fixture) student(t *testing.T, username, name string) *user.Session {
	t.Helper()
	sess := user.NewSession()
	_, err := f.users.CreateAccount(sess, user.Students, username, "secret1", username+"@x.edu", user.Profile{Name: name, University: "mit"})
	require.NoError(t, err)
	return sess
}

func (f *fixture) landlord(t *testing.T, username, name string) *user.Session {
	t.Helper()
	sess := user.NewSession()
	_, err := f.users.CreateAccount(sess, user.Landlords, username, "secret1", username+"@x.com", user.Profile{Name: name, Company: name + " Rentals"})
	require.NoError(t, err)
	return sess
}

func backBayPost() PostFields {
	return PostFields{
		Content:    "Looking for a quiet roommate",
		City:       "boston",
		University: "mit",
		Locality:   "Back Bay",
		Price:      "1200-plus",
		RoomType:   "private",
		Gender:     "female",
		Food:       "vegetarian",
		Tags:       []string{"Quiet"},
	}
}

func TestCreatePostLocalityNormalized(t *testing.T) {
	f := newFixture(t)
	sess := f.student(t, "alice", "Alice Kim")

	p, err := f.catalog.CreatePost(sess, backBayPost())
	require.NoError(t, err)
	assert.Equal(t, "back-bay", p.Locality)
	assert.GreaterOrEqual(t, p.ID, int64(LiveIDBase))
	assert.Equal(t, model.Author{Username: "alice", Name: "Alice Kim", Avatar: "AK", University: "MIT"}, p.Author)
	assert.Equal(t, []string{"$1200+", "Private Room", "Female Only", "Vegetarian", "Quiet"}, p.Tags)

	mine, err := f.catalog.MyPosts(sess)
	require.NoError(t, err)
	require.Len(t, mine, 1)

	hit := filter.Apply(mine, filter.Set{filter.Locality: "back-bay"}, PostDimensions)
	assert.Len(t, hit, 1)
	miss := filter.Apply(mine, filter.Set{filter.Locality: "Back Bay"}, PostDimensions)
	assert.Empty(t, miss)
}

func TestCreatePostRequiredOrder(t *testing.T) {
	f := newFixture(t)
	sess := f.student(t, "alice", "Alice Kim")

	_, err := f.catalog.CreatePost(sess, PostFields{})
	assert.Equal(t, "content", validate.FieldOf(err))

	fields := backBayPost()
	fields.RoomType = ""
	fields.Food = ""
	_, err = f.catalog.CreatePost(sess, fields)
	assert.Equal(t, "roomType", validate.FieldOf(err))

	mine, err := f.catalog.MyPosts(sess)
	require.NoError(t, err)
	assert.Empty(t, mine)
}

func TestFeedOrder(t *testing.T) {
	f := newFixture(t)
	alice := f.student(t, "alice", "Alice Kim")
	bob := f.student(t, "bob", "Bob Lee")

	first, err := f.catalog.CreatePost(alice, backBayPost())
	require.NoError(t, err)
	second, err := f.catalog.CreatePost(bob, backBayPost())
	require.NoError(t, err)

	feed, err := f.catalog.ListVisiblePosts(alice)
	require.NoError(t, err)
	require.Len(t, feed, len(samplePosts)+2)
	assert.Equal(t, int64(1), feed[0].ID, "demo posts come first")
	assert.Equal(t, second.ID, feed[len(feed)-2].ID, "live posts are newest first")
	assert.Equal(t, first.ID, feed[len(feed)-1].ID)

	mine, err := f.catalog.MyPosts(bob)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, second.ID, mine[0].ID)
}

func TestDeletePost(t *testing.T) {
	f := newFixture(t)
	alice := f.student(t, "alice", "Alice Kim")
	bob := f.student(t, "bob", "Bob Lee")

	p, err := f.catalog.CreatePost(alice, backBayPost())
	require.NoError(t, err)

	assert.ErrorIs(t, f.catalog.DeletePost(bob, p.ID), ErrForbidden)
	assert.ErrorIs(t, f.catalog.DeletePost(alice, 4), ErrForbidden, "demo posts have no author")

	require.NoError(t, f.catalog.DeletePost(alice, p.ID))
	require.NoError(t, f.catalog.DeletePost(alice, p.ID), "deletion is idempotent")
	require.NoError(t, f.catalog.DeletePost(alice, 424242))

	feed, err := f.catalog.ListVisiblePosts(alice)
	require.NoError(t, err)
	assert.Len(t, feed, len(samplePosts))
	mine, err := f.catalog.MyPosts(alice)
	require.NoError(t, err)
	assert.Empty(t, mine, "feed and my posts cannot disagree")
}

func TestRequiresSession(t *testing.T) {
	f := newFixture(t)
	_, err := f.catalog.ListVisiblePosts(user.NewSession())
	assert.ErrorIs(t, err, user.ErrNotLoggedIn)

	sess := f.student(t, "alice", "Alice Kim")
	_, err = f.catalog.ListVisibleListings(sess)
	assert.ErrorIs(t, err, user.ErrWrongPartition)
	_, err = f.catalog.CreateListing(sess, ListingFields{Title: "x", Price: "x", Address: "x", City: "boston"})
	assert.ErrorIs(t, err, user.ErrWrongPartition)
}

func TestCreateListing(t *testing.T) {
	f := newFixture(t)
	sess := f.landlord(t, "lee", "Lee Park")

	_, err := f.catalog.CreateListing(sess, ListingFields{Title: "Loft", Price: "$900/month"})
	assert.Equal(t, "address", validate.FieldOf(err))

	l, err := f.catalog.CreateListing(sess, ListingFields{
		Title: "Sunny Loft", Price: "$900/month", Address: "1 Main St", City: "boston",
		Locality: "North End", Bedrooms: 2, Bathrooms: 1.5, SquareFeet: 800,
	})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, l.ID, int64(LiveIDBase))
	assert.Equal(t, []string{"2 BR", "1.5 BA", "800 sq ft"}, l.Details)
	assert.Equal(t, "north-end", l.Locality)
	assert.Equal(t, "Lee Park Rentals", l.Landlord)
	assert.Equal(t, model.ListingActive, l.Status)

	next, err := f.catalog.CreateListing(sess, ListingFields{Title: "Studio", Price: "$700", Address: "2 Main St", City: "boston"})
	require.NoError(t, err)
	assert.Equal(t, l.ID+1, next.ID)

	listings, err := f.catalog.ListVisibleListings(sess)
	require.NoError(t, err)
	require.Len(t, listings, 2+len(managedListings))
	assert.Equal(t, next.ID, listings[0].ID, "owned listings first, newest first")
	assert.Equal(t, l.ID, listings[1].ID)
	assert.Equal(t, int64(1), listings[2].ID)
}

func TestDeleteDemoListingRestoredOnReload(t *testing.T) {
	f := newFixture(t)
	sess := f.landlord(t, "lee", "Lee Park")

	require.NoError(t, f.catalog.DeleteListing(sess, 3))
	listings, err := f.catalog.ListVisibleListings(sess)
	require.NoError(t, err)
	assert.Len(t, listings, len(managedListings)-1)
	for _, l := range listings {
		assert.NotEqual(t, int64(3), l.ID)
	}

	reloaded := New(f.store, f.users, Options{})
	listings, err = reloaded.ListVisibleListings(sess)
	require.NoError(t, err)
	assert.Len(t, listings, len(managedListings))

	require.NoError(t, f.catalog.DeleteListing(sess, 999), "unknown ids are ignored")
}

func TestDeleteOwnedListingPersists(t *testing.T) {
	f := newFixture(t)
	sess := f.landlord(t, "lee", "Lee Park")
	l, err := f.catalog.CreateListing(sess, ListingFields{Title: "Loft", Price: "$900", Address: "1 Main St", City: "boston"})
	require.NoError(t, err)

	require.NoError(t, f.catalog.DeleteListing(sess, l.ID))

	stored, err := f.users.Get(user.Landlords, "lee")
	require.NoError(t, err)
	assert.Empty(t, stored.Listings)
}

func TestSetListingStatus(t *testing.T) {
	f := newFixture(t)
	sess := f.landlord(t, "lee", "Lee Park")
	l, err := f.catalog.CreateListing(sess, ListingFields{Title: "Loft", Price: "$900", Address: "1 Main St", City: "boston"})
	require.NoError(t, err)

	require.NoError(t, f.catalog.SetListingStatus(sess, l.ID, model.ListingPending))
	stored, err := f.users.Get(user.Landlords, "lee")
	require.NoError(t, err)
	assert.Equal(t, model.ListingPending, stored.Listings[0].Status)

	require.NoError(t, f.catalog.SetListingStatus(sess, 1, model.ListingInactive))
	assert.Error(t, f.catalog.SetListingStatus(sess, l.ID, "sold"))
	assert.ErrorIs(t, f.catalog.SetListingStatus(sess, 999, model.ListingActive), ErrNotFound)
}

func TestBrowseListings(t *testing.T) {
	f := newFixture(t)
	lee := f.landlord(t, "lee", "Lee Park")
	l, err := f.catalog.CreateListing(lee, ListingFields{Title: "Loft", Price: "$900", Address: "1 Main St", City: "boston", Locality: "Fenway"})
	require.NoError(t, err)
	hidden, err := f.catalog.CreateListing(lee, ListingFields{Title: "Hidden", Price: "$900", Address: "2 Main St", City: "boston"})
	require.NoError(t, err)
	require.NoError(t, f.catalog.SetListingStatus(lee, hidden.ID, model.ListingInactive))

	alice := f.student(t, "alice", "Alice Kim")
	listings, err := f.catalog.BrowseListings(alice)
	require.NoError(t, err)
	require.Len(t, listings, 1+len(browseListings))
	assert.Equal(t, l.ID, listings[0].ID)

	fenway := filter.Apply(listings, filter.Set{filter.ListingCity: "boston", filter.ListingLocality: "fenway"}, ListingDimensions)
	assert.Len(t, fenway, 2)
}

func TestApplyAndReview(t *testing.T) {
	f := newFixture(t)
	lee := f.landlord(t, "lee", "Lee Park")
	l, err := f.catalog.CreateListing(lee, ListingFields{Title: "Loft", Price: "$900", Address: "1 Main St", City: "boston"})
	require.NoError(t, err)

	alice := f.student(t, "alice", "Alice Kim")
	_, err = f.catalog.Apply(alice, 1, ApplicationFields{Message: "hi"})
	assert.ErrorIs(t, err, ErrNotFound, "demo listings take no applications")

	app, err := f.catalog.Apply(alice, l.ID, ApplicationFields{Message: "I'd love to rent this", Budget: "$900"})
	require.NoError(t, err)
	assert.Equal(t, "Alice Kim", app.Applicant.Name)
	assert.Equal(t, "Loft", app.PropertyTitle)

	apps, err := f.catalog.Applications(lee)
	require.NoError(t, err)
	require.Len(t, apps, 1+len(sampleApplications))
	assert.Equal(t, app.ID, apps[0].ID)

	listings, err := f.catalog.ListVisibleListings(lee)
	require.NoError(t, err)
	assert.Equal(t, 1, listings[0].Applications)

	approved, err := f.catalog.Approve(lee, app.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ApplicationApproved, approved.Status)
	_, err = f.catalog.Reject(lee, app.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition, "approved is terminal")

	stored, err := f.users.Get(user.Landlords, "lee")
	require.NoError(t, err)
	assert.Equal(t, model.ApplicationApproved, stored.Applications[0].Status)
}

func TestReviewDemoApplications(t *testing.T) {
	f := newFixture(t)
	sess := f.landlord(t, "lee", "Lee Park")

	rejected, err := f.catalog.Reject(sess, 1)
	require.NoError(t, err)
	assert.Equal(t, model.ApplicationRejected, rejected.Status)

	_, err = f.catalog.Approve(sess, 2)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	_, err = f.catalog.Approve(sess, 99)
	assert.ErrorIs(t, err, ErrNotFound)

	apps, err := f.catalog.Applications(sess)
	require.NoError(t, err)
	pending := filter.Apply(apps, filter.Set{filter.Status: "pending"}, ApplicationDimensions)
	assert.Len(t, pending, 2)
	all := filter.Apply(apps, filter.Set{filter.Status: filter.AllStatuses}, ApplicationDimensions)
	assert.Len(t, all, len(sampleApplications))
}

func TestStats(t *testing.T) {
	f := newFixture(t)
	sess := f.landlord(t, "lee", "Lee Park")

	st, err := f.catalog.Stats(sess, 2)
	require.NoError(t, err)
	assert.Equal(t, Stats{ActiveListings: 3, TotalApplications: 5, UnreadMessages: 2}, st)

	_, err = f.catalog.CreateListing(sess, ListingFields{Title: "Loft", Price: "$900", Address: "1 Main St", City: "boston"})
	require.NoError(t, err)
	st, err = f.catalog.Stats(sess, 0)
	require.NoError(t, err)
	assert.Equal(t, 4, st.ActiveListings)
}

func TestRemovePostByOperator(t *testing.T) {
	f := newFixture(t)
	alice := f.student(t, "alice", "Alice Kim")
	p, err := f.catalog.CreatePost(alice, backBayPost())
	require.NoError(t, err)

	live, err := f.catalog.LivePosts()
	require.NoError(t, err)
	require.Len(t, live, 1, "demo posts are not stored")

	ok, err := f.catalog.RemovePost(p.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = f.catalog.RemovePost(p.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	mine, err := f.catalog.MyPosts(alice)
	require.NoError(t, err)
	assert.Empty(t, mine)
}
