package catalog

import (
	"fmt"
	"log"

	"github.com/notepid/roomielink/internal/model"
)

// LivePosts returns every stored post, newest first, without a session.
// It is meant for operators.
func (c *Catalog) LivePosts() ([]model.Post, error) {
	live, _, err := c.loadPosts()
	return live, err
}

// RemovePost deletes a stored post regardless of author and reports whether
// it existed.
func (c *Catalog) RemovePost(id int64) (bool, error) {
	live, etag, err := c.loadPosts()
	if err != nil {
		return false, err
	}
	for i, p := range live {
		if p.ID != id {
			continue
		}
		live = append(live[:i], live[i+1:]...)
		if _, err := c.store.Write(postsKey, live, etag); err != nil {
			return false, fmt.Errorf("remove post %d: %w", id, err)
		}
		log.Printf("catalog: post %d removed by operator", id)
		return true, nil
	}
	return false, nil
}
