// Package model holds the records shared by the catalog, the user directory
// and the conversation store.
//
// Author and Applicant are snapshots copied at creation time, not
// references: renaming a user does not rewrite the posts or applications
// that carry their old snapshot.
package model

import "time"

// Author is the denormalized author snapshot embedded in a Post.
type Author struct {
	Username   string `json:"username,omitempty"`
	Name       string `json:"name"`
	Avatar     string `json:"avatar"`
	University string `json:"university"`
}

// Post is a roommate-seeking ad.
type Post struct {
	ID             int64     `json:"id"`
	Author         Author    `json:"user"`
	Content        string    `json:"content"`
	Tags           []string  `json:"tags"`
	City           string    `json:"city"`
	University     string    `json:"university"`
	Locality       string    `json:"locality"`
	Price          string    `json:"price"`
	RoomType       string    `json:"roomType"`
	Gender         string    `json:"gender"`
	Food           string    `json:"food"`
	Term           string    `json:"term,omitempty"`
	GraduationYear string    `json:"graduationYear,omitempty"`
	Timestamp      string    `json:"timestamp,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Clone returns a deep copy of p.
func (p Post) Clone() Post {
	p.Tags = append([]string(nil), p.Tags...)
	return p
}
