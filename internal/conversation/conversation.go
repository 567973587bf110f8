// Package conversation keeps each user's message threads and simulates the
// other side's replies.
package conversation

import (
	"time"

	"github.com/notepid/roomielink/internal/filter"
)

// Kind is the context a conversation was started from.
type Kind string

const (
	Roommate    Kind = "roommate"
	Listing     Kind = "listing"
	Application Kind = "application"
	Inquiry     Kind = "inquiry"
)

// Contact identifies the other side of a conversation. ID is the stable
// key; Name is only displayed.
type Contact struct {
	ID            string
	Name          string
	Kind          Kind
	PropertyTitle string
}

// ContactFor builds a contact for a user. Demo authors have no username, so
// they are keyed by their slugged display name instead.
func ContactFor(kind Kind, username, name string) Contact {
	id := username
	if id == "" {
		id = "demo:" + filter.Slug(name)
	}
	return Contact{ID: id, Name: name, Kind: kind}
}

// Entry is one message in a thread.
type Entry struct {
	ID        string    `json:"id"`
	Sender    string    `json:"sender"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Incoming  bool      `json:"incoming"`
}

// Conversation is a thread with one contact.
type Conversation struct {
	ID            string    `json:"id"`
	ContactID     string    `json:"contactId"`
	ContactName   string    `json:"contact"`
	Kind          Kind      `json:"type"`
	PropertyTitle string    `json:"propertyTitle,omitempty"`
	LastMessage   string    `json:"lastMessage"`
	LastTimestamp time.Time `json:"timestamp"`
	Unread        bool      `json:"unread"`
	History       []Entry   `json:"chatHistory"`
}

func (c Conversation) clone() Conversation {
	c.History = append([]Entry(nil), c.History...)
	return c
}
