package catalog

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/notepid/roomielink/internal/filter"
	"github.com/notepid/roomielink/internal/model"
	"github.com/notepid/roomielink/internal/storage"
	"github.com/notepid/roomielink/internal/user"
	"github.com/notepid/roomielink/internal/validate"
)

// PostFields are the author-supplied fields of a new post.
type PostFields struct {
	Content        string
	City           string
	University     string
	Locality       string
	Price          string
	RoomType       string
	Gender         string
	Food           string
	Term           string
	GraduationYear string
	Tags           []string
}

// loadPosts reads the live post store, newest first.
func (c *Catalog) loadPosts() ([]model.Post, storage.ETag, error) {
	var posts []model.Post
	etag, err := c.store.Read(postsKey, &posts)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return nil, storage.NoETag, fmt.Errorf("load posts: %w", err)
	}
	return posts, etag, nil
}

// ListVisiblePosts returns the feed: demo posts followed by every user's
// live posts, newest first.
func (c *Catalog) ListVisiblePosts(sess *user.Session) ([]model.Post, error) {
	if _, err := c.users.Require(sess); err != nil {
		return nil, err
	}
	live, _, err := c.loadPosts()
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	feed := make([]model.Post, 0, len(c.demoPosts)+len(live))
	for _, p := range c.demoPosts {
		feed = append(feed, p.Clone())
	}
	c.mu.Unlock()

	return append(feed, live...), nil
}

// MyPosts returns the live posts authored by the session user.
func (c *Catalog) MyPosts(sess *user.Session) ([]model.Post, error) {
	u, err := c.users.Require(sess)
	if err != nil {
		return nil, err
	}
	live, _, err := c.loadPosts()
	if err != nil {
		return nil, err
	}

	var mine []model.Post
	for _, p := range live {
		if p.Author.Username == u.Username {
			mine = append(mine, p)
		}
	}
	return mine, nil
}

// CreatePost validates f and prepends a new post by the session student.
func (c *Catalog) CreatePost(sess *user.Session, f PostFields) (*model.Post, error) {
	u, err := c.users.RequirePartition(sess, user.Students)
	if err != nil {
		return nil, err
	}

	if err := validate.Required(
		validate.F("content", f.Content),
		validate.F("city", f.City),
		validate.F("university", f.University),
		validate.F("locality", f.Locality),
		validate.F("price", f.Price),
		validate.F("roomType", f.RoomType),
		validate.F("gender", f.Gender),
		validate.F("food", f.Food),
	); err != nil {
		return nil, err
	}
	if err := validate.String(f.Content, "content", validate.MaxPostLen); err != nil {
		return nil, err
	}
	for _, t := range f.Tags {
		if err := validate.String(t, "tags", validate.MaxTagLen); err != nil {
			return nil, err
		}
	}

	id, err := c.nextID(postSeqKey)
	if err != nil {
		return nil, err
	}

	p := model.Post{
		ID: id,
		Author: model.Author{
			Username:   u.Username,
			Name:       u.Name,
			Avatar:     u.Initials,
			University: u.UniversityName,
		},
		Content:        strings.TrimSpace(validate.Sanitize(f.Content)),
		Tags:           postTags(f),
		City:           f.City,
		University:     f.University,
		Locality:       filter.Slug(strings.TrimSpace(f.Locality)),
		Price:          f.Price,
		RoomType:       f.RoomType,
		Gender:         f.Gender,
		Food:           f.Food,
		Term:           f.Term,
		GraduationYear: f.GraduationYear,
		Timestamp:      "Just now",
		CreatedAt:      c.now(),
	}

	live, etag, err := c.loadPosts()
	if err != nil {
		return nil, err
	}
	live = append([]model.Post{p}, live...)
	if _, err := c.store.Write(postsKey, live, etag); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	if c.debug {
		log.Printf("catalog: %s created post %d", u.Username, p.ID)
	}
	return &p, nil
}

// DeletePost removes a live post authored by the session user. Deleting an
// id that does not exist is a no-op.
func (c *Catalog) DeletePost(sess *user.Session, id int64) error {
	u, err := c.users.Require(sess)
	if err != nil {
		return err
	}

	live, etag, err := c.loadPosts()
	if err != nil {
		return err
	}
	idx := -1
	for i, p := range live {
		if p.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		if c.isDemoPost(id) {
			return fmt.Errorf("delete post %d: %w", id, ErrForbidden)
		}
		return nil
	}
	if live[idx].Author.Username != u.Username {
		return fmt.Errorf("delete post %d: %w", id, ErrForbidden)
	}

	live = append(live[:idx], live[idx+1:]...)
	if _, err := c.store.Write(postsKey, live, etag); err != nil {
		return fmt.Errorf("delete post %d: %w", id, err)
	}

	if c.debug {
		log.Printf("catalog: %s deleted post %d", u.Username, id)
	}
	return nil
}

func (c *Catalog) isDemoPost(id int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, p := range c.demoPosts {
		if p.ID == id {
			return true
		}
	}
	return false
}
