// Package saved tracks the posts a student has bookmarked.
package saved

import (
	"fmt"
	"log"

	"github.com/notepid/roomielink/internal/model"
	"github.com/notepid/roomielink/internal/user"
)

// Tracker manages the saved-post set on the student record.
type Tracker struct {
	users *user.Directory
	debug bool
}

// New creates a tracker that persists through users.
func New(users *user.Directory, debug bool) *Tracker {
	return &Tracker{users: users, debug: debug}
}

func contains(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// Save adds postID to the session student's saved set. It reports false
// without writing if the post was already saved.
func (t *Tracker) Save(sess *user.Session, postID int64) (bool, error) {
	u, err := t.users.RequirePartition(sess, user.Students)
	if err != nil {
		return false, err
	}
	if contains(u.SavedPosts, postID) {
		return false, nil
	}

	u.SavedPosts = append(u.SavedPosts, postID)
	if err := t.users.UpdateUser(sess, u); err != nil {
		return false, fmt.Errorf("save post %d: %w", postID, err)
	}
	if t.debug {
		log.Printf("saved: %s saved post %d", u.Username, postID)
	}
	return true, nil
}

// Unsave removes postID from the saved set. It reports false without
// writing if the post was not saved.
func (t *Tracker) Unsave(sess *user.Session, postID int64) (bool, error) {
	u, err := t.users.RequirePartition(sess, user.Students)
	if err != nil {
		return false, err
	}
	if !contains(u.SavedPosts, postID) {
		return false, nil
	}

	kept := make([]int64, 0, len(u.SavedPosts)-1)
	for _, id := range u.SavedPosts {
		if id != postID {
			kept = append(kept, id)
		}
	}
	u.SavedPosts = kept
	if err := t.users.UpdateUser(sess, u); err != nil {
		return false, fmt.Errorf("unsave post %d: %w", postID, err)
	}
	if t.debug {
		log.Printf("saved: %s unsaved post %d", u.Username, postID)
	}
	return true, nil
}

// IsSaved reports whether postID is in the session user's saved set. It is
// false when nobody is logged in.
func (t *Tracker) IsSaved(sess *user.Session, postID int64) bool {
	u := t.users.CurrentUser(sess)
	return u != nil && contains(u.SavedPosts, postID)
}

// SavedPosts returns the posts of feed that are saved, in feed order.
func (t *Tracker) SavedPosts(sess *user.Session, feed []model.Post) []model.Post {
	u := t.users.CurrentUser(sess)
	if u == nil {
		return nil
	}
	var out []model.Post
	for _, p := range feed {
		if contains(u.SavedPosts, p.ID) {
			out = append(out, p)
		}
	}
	return out
}

// Count returns the size of the saved set.
func (t *Tracker) Count(sess *user.Session) int {
	u := t.users.CurrentUser(sess)
	if u == nil {
		return 0
	}
	return len(u.SavedPosts)
}
