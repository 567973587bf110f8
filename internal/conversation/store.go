package conversation

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/notepid/roomielink/internal/storage"
	"github.com/notepid/roomielink/internal/validate"
)

// ErrNotFound is returned when no conversation exists for a contact.
var ErrNotFound = errors.New("conversation not found")

// Replier produces greetings and simulated replies. Greeting returns the
// opening line and an optional acknowledgement from the contact.
type Replier interface {
	Greeting(kind, contact, title string) (opener, ack string, err error)
	Reply(kind, contact, text string) (string, error)
}

// Options configures a Store.
type Options struct {
	// Partition and Username identify the owner; together they form the
	// storage key.
	Partition string
	Username  string
	// DisplayName is recorded as the sender of outgoing messages.
	DisplayName string
	Replier     Replier
	ReplyDelay  time.Duration
	Debug       bool
	// OnReply, if set, is called after a simulated reply is stored.
	OnReply func(Conversation)
}

type pendingReply struct {
	timer *time.Timer
	seq   uint64
}

// Store is one owner's conversation list, most recently active first.
// Lookups go by contact id; no record exists until the first send.
type Store struct {
	store   *storage.Store
	key     string
	self    string
	replier Replier
	delay   time.Duration
	debug   bool
	onReply func(Conversation)
	now     func() time.Time

	mu      sync.Mutex
	pending map[string]pendingReply
	seq     uint64
	closed  bool
}

// Key returns the storage key of an owner's conversation list.
func Key(partition, username string) string {
	return fmt.Sprintf("conversations/%s/%s", partition, username)
}

// New creates the conversation store of one owner.
func New(store *storage.Store, opts Options) *Store {
	self := opts.DisplayName
	if self == "" {
		self = opts.Username
	}
	return &Store{
		store:   store,
		key:     Key(opts.Partition, opts.Username),
		self:    self,
		replier: opts.Replier,
		delay:   opts.ReplyDelay,
		debug:   opts.Debug,
		onReply: opts.OnReply,
		now:     time.Now,
		pending: make(map[string]pendingReply),
	}
}

func (s *Store) load() ([]Conversation, storage.ETag, error) {
	var list []Conversation
	etag, err := s.store.Read(s.key, &list)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return nil, storage.NoETag, fmt.Errorf("load conversations: %w", err)
	}
	return list, etag, nil
}

func (s *Store) save(list []Conversation, etag storage.ETag) error {
	if _, err := s.store.Write(s.key, list, etag); err != nil {
		return fmt.Errorf("save conversations: %w", err)
	}
	return nil
}

func indexOf(list []Conversation, contactID string) int {
	for i, c := range list {
		if c.ContactID == contactID {
			return i
		}
	}
	return -1
}

// moveToFront moves list[i] to index 0, keeping the order of the rest.
func moveToFront(list []Conversation, i int) []Conversation {
	if i <= 0 {
		return list
	}
	c := list[i]
	copy(list[1:i+1], list[:i])
	list[0] = c
	return list
}

// List returns every conversation, most recently active first.
func (s *Store) List() ([]Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list, _, err := s.load()
	return list, err
}

// Open returns the conversation with contactID without creating or
// modifying anything.
func (s *Store) Open(contactID string) (*Conversation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list, _, err := s.load()
	if err != nil {
		log.Printf("conversation: open %s: %v", contactID, err)
		return nil, false
	}
	i := indexOf(list, contactID)
	if i < 0 {
		return nil, false
	}
	c := list[i].clone()
	return &c, true
}

// MarkRead clears the unread flag of a conversation.
func (s *Store) MarkRead(contactID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	list, etag, err := s.load()
	if err != nil {
		return err
	}
	i := indexOf(list, contactID)
	if i < 0 {
		return fmt.Errorf("mark read %s: %w", contactID, ErrNotFound)
	}
	if !list[i].Unread {
		return nil
	}
	list[i].Unread = false
	return s.save(list, etag)
}

// Send appends an outgoing message to the conversation with contact,
// creating it with a greeting first if none exists, and schedules the
// contact's simulated reply.
func (s *Store) Send(contact Contact, text string) (*Conversation, error) {
	if err := validate.Required(validate.F("contact", contact.ID)); err != nil {
		return nil, err
	}
	if err := validate.Message(text); err != nil {
		return nil, err
	}
	text = validate.Sanitize(text)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, fmt.Errorf("conversation store closed")
	}

	list, etag, err := s.load()
	if err != nil {
		return nil, err
	}

	now := s.now()
	i := indexOf(list, contact.ID)
	if i < 0 {
		c, err := s.start(contact, now)
		if err != nil {
			return nil, err
		}
		list = append([]Conversation{c}, list...)
		i = 0
	}

	c := &list[i]
	c.History = append(c.History, Entry{ID: uuid.NewString(), Sender: s.self, Message: text, Timestamp: now})
	c.LastMessage = text
	c.LastTimestamp = now
	c.Unread = false
	list = moveToFront(list, i)

	if err := s.save(list, etag); err != nil {
		return nil, err
	}

	out := list[0].clone()
	s.scheduleReply(out, text)
	if s.debug {
		log.Printf("conversation: %s -> %s (%d messages)", s.self, contact.ID, len(out.History))
	}
	return &out, nil
}

// start builds a new conversation seeded with the scripted greeting.
func (s *Store) start(contact Contact, now time.Time) (Conversation, error) {
	kind := contact.Kind
	if kind == "" {
		kind = Inquiry
	}
	c := Conversation{
		ID:            uuid.NewString(),
		ContactID:     contact.ID,
		ContactName:   contact.Name,
		Kind:          kind,
		PropertyTitle: contact.PropertyTitle,
	}
	if s.replier == nil {
		return c, nil
	}

	opener, ack, err := s.replier.Greeting(string(kind), contact.Name, contact.PropertyTitle)
	if err != nil {
		return Conversation{}, fmt.Errorf("greeting for %s: %w", contact.ID, err)
	}
	if opener != "" {
		c.History = append(c.History, Entry{ID: uuid.NewString(), Sender: s.self, Message: opener, Timestamp: now})
	}
	if ack != "" {
		c.History = append(c.History, Entry{ID: uuid.NewString(), Sender: contact.Name, Message: ack, Timestamp: now, Incoming: true})
	}
	return c, nil
}

// Receive appends an incoming message and marks the conversation unread.
func (s *Store) Receive(contactID, text string) (*Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.receive(contactID, text)
}

func (s *Store) receive(contactID, text string) (*Conversation, error) {
	list, etag, err := s.load()
	if err != nil {
		return nil, err
	}
	i := indexOf(list, contactID)
	if i < 0 {
		return nil, fmt.Errorf("receive from %s: %w", contactID, ErrNotFound)
	}

	now := s.now()
	c := &list[i]
	c.History = append(c.History, Entry{ID: uuid.NewString(), Sender: c.ContactName, Message: text, Timestamp: now, Incoming: true})
	c.LastMessage = text
	c.LastTimestamp = now
	c.Unread = true
	list = moveToFront(list, i)

	if err := s.save(list, etag); err != nil {
		return nil, err
	}
	out := list[0].clone()
	return &out, nil
}

// Delete removes the conversation with contactID and cancels its pending
// reply. Deleting an absent conversation is not an error.
func (s *Store) Delete(contactID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelReply(contactID)

	list, etag, err := s.load()
	if err != nil {
		return err
	}
	i := indexOf(list, contactID)
	if i < 0 {
		return nil
	}
	list = append(list[:i], list[i+1:]...)
	if err := s.save(list, etag); err != nil {
		return err
	}
	if s.debug {
		log.Printf("conversation: deleted %s", contactID)
	}
	return nil
}

// UnreadCount counts the conversations with unread messages.
func (s *Store) UnreadCount() (int, error) {
	list, err := s.List()
	if err != nil {
		return 0, err
	}
	n := 0
	for _, c := range list {
		if c.Unread {
			n++
		}
	}
	return n, nil
}

// Pending reports whether a reply is scheduled for contactID.
func (s *Store) Pending(contactID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.pending[contactID]
	return ok
}

// Close cancels every pending reply. Later sends fail.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id := range s.pending {
		s.cancelReply(id)
	}
	s.closed = true
}

// scheduleReply replaces any pending reply for the contact. Caller holds mu.
func (s *Store) scheduleReply(c Conversation, text string) {
	if s.replier == nil || s.delay <= 0 {
		return
	}
	s.cancelReply(c.ContactID)

	s.seq++
	seq := s.seq
	contactID, kind, name := c.ContactID, string(c.Kind), c.ContactName
	timer := time.AfterFunc(s.delay, func() {
		s.deliver(contactID, seq, kind, name, text)
	})
	s.pending[contactID] = pendingReply{timer: timer, seq: seq}
}

// cancelReply stops the pending reply for contactID. Caller holds mu.
func (s *Store) cancelReply(contactID string) {
	if p, ok := s.pending[contactID]; ok {
		p.timer.Stop()
		delete(s.pending, contactID)
	}
}

func (s *Store) deliver(contactID string, seq uint64, kind, name, text string) {
	s.mu.Lock()
	p, ok := s.pending[contactID]
	if s.closed || !ok || p.seq != seq {
		s.mu.Unlock()
		return
	}
	delete(s.pending, contactID)

	reply, err := s.replier.Reply(kind, name, text)
	if err != nil || reply == "" {
		s.mu.Unlock()
		if err != nil {
			log.Printf("conversation: reply from %s: %v", contactID, err)
		}
		return
	}

	c, err := s.receive(contactID, reply)
	s.mu.Unlock()
	if err != nil {
		log.Printf("conversation: store reply from %s: %v", contactID, err)
		return
	}
	if s.onReply != nil {
		s.onReply(*c)
	}
}
