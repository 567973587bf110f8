// Package landing remembers which side of the site a visitor picked.
package landing

import (
	"fmt"
	"time"

	"github.com/notepid/roomielink/internal/storage"
	"github.com/notepid/roomielink/internal/user"
)

const (
	userTypeKey  = "userType"
	lastVisitKey = "lastVisit"
	selectedKey  = "selectionTimestamp"
)

// ReturnWindow is how recent the last visit must be to count as returning.
const ReturnWindow = 7 * 24 * time.Hour

// Preferences stores the landing page choices.
type Preferences struct {
	store *storage.Store
}

// New creates landing preferences over store.
func New(store *storage.Store) *Preferences {
	return &Preferences{store: store}
}

// ChooseUserType records the visitor's choice and when it was made.
func (p *Preferences) ChooseUserType(partition user.Partition, now time.Time) error {
	if !partition.Valid() {
		return fmt.Errorf("unknown user type %q", partition)
	}
	if _, err := p.store.Write(userTypeKey, partition.UserType(), storage.AnyETag); err != nil {
		return fmt.Errorf("choose user type: %w", err)
	}
	if _, err := p.store.Write(selectedKey, now.UTC(), storage.AnyETag); err != nil {
		return fmt.Errorf("choose user type: %w", err)
	}
	return nil
}

// CheckReturning reports the previously chosen user type when the last
// visit was less than ReturnWindow before now. It always records now as
// the last visit.
func (p *Preferences) CheckReturning(now time.Time) (user.Partition, bool) {
	var (
		kind string
		last time.Time
	)
	hasType := p.store.Get(userTypeKey, &kind)
	hasVisit := p.store.Get(lastVisitKey, &last)
	p.store.Set(lastVisitKey, now.UTC())

	if !hasType || !hasVisit {
		return "", false
	}
	partition, ok := user.ParsePartition(kind)
	if !ok || now.Sub(last) >= ReturnWindow {
		return "", false
	}
	return partition, true
}
