package user

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/notepid/roomielink/internal/model"
	"github.com/notepid/roomielink/internal/storage"
	"github.com/notepid/roomielink/internal/validate"
)

const (
	usersKey   = "users"
	pointerKey = "currentUser"
)

var (
	ErrDuplicateUsername = errors.New("username already exists")
	ErrDuplicateEmail    = errors.New("email already registered")
	ErrUserNotFound      = errors.New("user not found")
	ErrInvalidCredential = errors.New("invalid password")
	ErrNotLoggedIn       = errors.New("not logged in")
	ErrWrongPartition    = errors.New("wrong user type for this operation")
)

// document is the persisted user directory.
type document struct {
	Students  map[string]*User `json:"students"`
	Landlords map[string]*User `json:"landlords"`
}

func (d *document) partition(p Partition) map[string]*User {
	if p == Landlords {
		return d.Landlords
	}
	return d.Students
}

// pointer is the persisted session reference.
type pointer struct {
	Partition Partition `json:"partition"`
	Username  string    `json:"username"`
}

// Profile carries the registration fields beyond credentials.
type Profile struct {
	Name       string
	University string // student university slug
	Company    string // landlord company
}

// Options configures a Directory.
type Options struct {
	BcryptCost  int
	MinPassword int
	Debug       bool
}

// Directory manages the two user partitions stored under "users".
type Directory struct {
	store       *storage.Store
	cost        int
	minPassword int
	debug       bool
	now         func() time.Time
}

// NewDirectory creates a user directory over store.
func NewDirectory(store *storage.Store, opts Options) *Directory {
	return &Directory{
		store:       store,
		cost:        opts.BcryptCost,
		minPassword: opts.MinPassword,
		debug:       opts.Debug,
		now:         time.Now,
	}
}

func (d *Directory) load() (*document, storage.ETag, error) {
	var doc document
	etag, err := d.store.Read(usersKey, &doc)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return nil, storage.NoETag, fmt.Errorf("load users: %w", err)
	}
	if doc.Students == nil {
		doc.Students = make(map[string]*User)
	}
	if doc.Landlords == nil {
		doc.Landlords = make(map[string]*User)
	}
	return &doc, etag, nil
}

func (d *Directory) save(doc *document, etag storage.ETag) error {
	if _, err := d.store.Write(usersKey, doc, etag); err != nil {
		return fmt.Errorf("save users: %w", err)
	}
	return nil
}

// Initialize ensures the directory document exists with both partitions.
// It is safe to call on every start.
func (d *Directory) Initialize() error {
	var doc document
	etag, err := d.store.Read(usersKey, &doc)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("initialize users: %w", err)
	}
	if err == nil && doc.Students != nil && doc.Landlords != nil {
		return nil
	}

	if doc.Students == nil {
		doc.Students = make(map[string]*User)
	}
	if doc.Landlords == nil {
		doc.Landlords = make(map[string]*User)
	}
	if err := d.save(&doc, etag); err != nil {
		return err
	}
	if d.debug {
		log.Printf("user: directory initialized (%d students, %d landlords)", len(doc.Students), len(doc.Landlords))
	}
	return nil
}

// CreateAccount registers a user in partition and logs them in. A nil sess
// creates the account without touching the current session.
func (d *Directory) CreateAccount(sess *Session, partition Partition, username, password, email string, profile Profile) (*User, error) {
	if !partition.Valid() {
		return nil, &validate.Error{Field: "userType", Reason: fmt.Sprintf("unknown user type %q", partition)}
	}

	fields := []validate.Field{
		validate.F("name", profile.Name),
		validate.F("email", email),
		validate.F("username", username),
		validate.F("password", password),
	}
	if partition == Students {
		fields = append(fields, validate.F("university", profile.University))
	} else {
		fields = append(fields, validate.F("company", profile.Company))
	}
	if err := validate.Required(fields...); err != nil {
		return nil, err
	}
	if err := validate.Email(email); err != nil {
		return nil, err
	}
	if err := validate.Password(password, d.minPassword); err != nil {
		return nil, err
	}
	if err := validate.Username(username); err != nil {
		return nil, err
	}
	if err := validate.String(profile.Name, "name", validate.MaxNameLen); err != nil {
		return nil, err
	}

	doc, etag, err := d.load()
	if err != nil {
		return nil, err
	}
	users := doc.partition(partition)
	if _, exists := users[username]; exists {
		return nil, fmt.Errorf("create %s: %w", username, ErrDuplicateUsername)
	}
	for _, u := range users {
		if u.Email == email {
			return nil, fmt.Errorf("create %s: %w", username, ErrDuplicateEmail)
		}
	}

	hash, err := HashPassword(password, d.cost)
	if err != nil {
		return nil, err
	}

	now := d.now()
	u := &User{
		Username:    username,
		Password:    hash,
		Email:       email,
		Name:        strings.TrimSpace(profile.Name),
		UserType:    partition.UserType(),
		Initials:    Initials(profile.Name),
		SavedPosts:  []int64{},
		Preferences: map[string]string{},
		CreatedAt:   now,
		LastLogin:   now,
		Revision:    1,
	}
	if partition == Students {
		u.University = profile.University
		u.UniversityName = UniversityName(profile.University)
	} else {
		u.Company = strings.TrimSpace(profile.Company)
		u.Listings = []model.Listing{}
		u.Applications = []model.Application{}
	}

	users[username] = u
	if err := d.save(doc, etag); err != nil {
		return nil, err
	}
	if sess != nil {
		if err := d.login(sess, u); err != nil {
			return nil, err
		}
	}

	log.Printf("user: registered %s %s", partition.UserType(), username)
	return u.Clone(), nil
}

// Authenticate checks credentials within partition, records the login time
// and binds the user to sess.
func (d *Directory) Authenticate(sess *Session, partition Partition, username, password string) (*User, error) {
	doc, etag, err := d.load()
	if err != nil {
		return nil, err
	}
	u, ok := doc.partition(partition)[username]
	if !ok {
		return nil, fmt.Errorf("login %s: %w", username, ErrUserNotFound)
	}
	if !CheckPassword(password, u.Password) {
		return nil, fmt.Errorf("login %s: %w", username, ErrInvalidCredential)
	}

	u.LastLogin = d.now()
	u.Revision++
	if err := d.save(doc, etag); err != nil {
		return nil, err
	}
	if err := d.login(sess, u); err != nil {
		return nil, err
	}

	if d.debug {
		log.Printf("user: %s logged in as %s", username, partition.UserType())
	}
	return u.Clone(), nil
}

func (d *Directory) login(sess *Session, u *User) error {
	p := pointer{Partition: u.Partition(), Username: u.Username}
	if _, err := d.store.Write(pointerKey, p, storage.AnyETag); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	sess.set(u)
	return nil
}

// CurrentUser returns the session user, hydrating it from the persisted
// pointer when the session has no cached record. It returns nil when no
// one is logged in or the pointer names a user that no longer exists.
func (d *Directory) CurrentUser(sess *Session) *User {
	if u := sess.cached(); u != nil {
		return u
	}

	var p pointer
	if !d.store.Get(pointerKey, &p) {
		return nil
	}
	u, err := d.Get(p.Partition, p.Username)
	if err != nil {
		if d.debug {
			log.Printf("user: stale session pointer %s/%s: %v", p.Partition, p.Username, err)
		}
		return nil
	}
	sess.set(u)
	return u
}

// Require returns the session user re-read from the directory, so that
// read-modify-write callers start from the latest stored record rather than
// the session cache. It returns ErrNotLoggedIn when there is no session.
func (d *Directory) Require(sess *Session) (*User, error) {
	u := d.CurrentUser(sess)
	if u == nil {
		return nil, ErrNotLoggedIn
	}
	fresh, err := d.Get(u.Partition(), u.Username)
	if errors.Is(err, ErrUserNotFound) {
		sess.clear()
		return nil, ErrNotLoggedIn
	}
	if err != nil {
		return nil, err
	}
	sess.set(fresh)
	return fresh, nil
}

// RequirePartition is Require restricted to one partition.
func (d *Directory) RequirePartition(sess *Session, partition Partition) (*User, error) {
	u, err := d.Require(sess)
	if err != nil {
		return nil, err
	}
	if u.Partition() != partition {
		return nil, fmt.Errorf("%s account: %w", u.UserType, ErrWrongPartition)
	}
	return u, nil
}

// UpdateUser overwrites the stored record for u and refreshes the session
// cache. u must carry the revision it was read at; if the record has been
// written since, nothing is stored and the error wraps
// storage.ErrConcurrentModification. On success u.Revision is advanced.
func (d *Directory) UpdateUser(sess *Session, u *User) error {
	doc, etag, err := d.load()
	if err != nil {
		return err
	}
	users := doc.partition(u.Partition())
	stored, ok := users[u.Username]
	if !ok {
		return fmt.Errorf("update %s: %w", u.Username, ErrUserNotFound)
	}
	if stored.Revision != u.Revision {
		return fmt.Errorf("update %s at revision %d, stored %d: %w",
			u.Username, u.Revision, stored.Revision, storage.ErrConcurrentModification)
	}

	next := u.Clone()
	next.Revision++
	users[u.Username] = next
	if err := d.save(doc, etag); err != nil {
		return err
	}
	u.Revision = next.Revision
	if sess != nil {
		sess.refresh(u)
	}
	return nil
}

// UpdateProfile changes a user's display name and email.
func (d *Directory) UpdateProfile(partition Partition, username, name, email string) (*User, error) {
	if err := validate.Required(validate.F("name", name), validate.F("email", email)); err != nil {
		return nil, err
	}
	if err := validate.Email(email); err != nil {
		return nil, err
	}
	if err := validate.String(name, "name", validate.MaxNameLen); err != nil {
		return nil, err
	}

	doc, etag, err := d.load()
	if err != nil {
		return nil, err
	}
	users := doc.partition(partition)
	u, ok := users[username]
	if !ok {
		return nil, fmt.Errorf("update %s: %w", username, ErrUserNotFound)
	}
	for _, other := range users {
		if other.Username != username && other.Email == email {
			return nil, fmt.Errorf("update %s: %w", username, ErrDuplicateEmail)
		}
	}

	u.Name = strings.TrimSpace(name)
	u.Initials = Initials(name)
	u.Email = email
	u.Revision++
	if err := d.save(doc, etag); err != nil {
		return nil, err
	}
	return u.Clone(), nil
}

// ResetPassword replaces a user's password hash.
func (d *Directory) ResetPassword(partition Partition, username, password string) error {
	if err := validate.Password(password, d.minPassword); err != nil {
		return err
	}
	hash, err := HashPassword(password, d.cost)
	if err != nil {
		return err
	}

	doc, etag, err := d.load()
	if err != nil {
		return err
	}
	u, ok := doc.partition(partition)[username]
	if !ok {
		return fmt.Errorf("reset password %s: %w", username, ErrUserNotFound)
	}
	u.Password = hash
	u.Revision++
	if err := d.save(doc, etag); err != nil {
		return err
	}
	log.Printf("user: password reset for %s %s", partition.UserType(), username)
	return nil
}

// Logout clears the cached user and the persisted pointer. The directory
// itself is untouched.
func (d *Directory) Logout(sess *Session) {
	sess.clear()
	d.store.Remove(pointerKey)
}

// Get returns a copy of one user record.
func (d *Directory) Get(partition Partition, username string) (*User, error) {
	doc, _, err := d.load()
	if err != nil {
		return nil, err
	}
	u, ok := doc.partition(partition)[username]
	if !ok {
		return nil, fmt.Errorf("%s/%s: %w", partition, username, ErrUserNotFound)
	}
	return u.Clone(), nil
}

// List returns copies of every user in partition ordered by username.
func (d *Directory) List(partition Partition) ([]*User, error) {
	doc, _, err := d.load()
	if err != nil {
		return nil, err
	}
	users := doc.partition(partition)
	out := make([]*User, 0, len(users))
	for _, u := range users {
		out = append(out, u.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}
