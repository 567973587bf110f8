package user

import (
	"strings"
	"time"
	"unicode"

	"github.com/notepid/roomielink/internal/model"
)

// Partition is one of the two disjoint user directories.
type Partition string

const (
	Students  Partition = "students"
	Landlords Partition = "landlords"
)

// Valid reports whether p names a known partition.
func (p Partition) Valid() bool {
	return p == Students || p == Landlords
}

// UserType returns the singular role name stored on records.
func (p Partition) UserType() string {
	if p == Landlords {
		return "landlord"
	}
	return "student"
}

// ParsePartition accepts either the partition or the role name.
func ParsePartition(s string) (Partition, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "student", "students":
		return Students, true
	case "landlord", "landlords":
		return Landlords, true
	}
	return "", false
}

// User is a student or landlord account record.
type User struct {
	Username       string              `json:"username"`
	Password       string              `json:"password"`
	Email          string              `json:"email"`
	Name           string              `json:"name"`
	UserType       string              `json:"userType"`
	Initials       string              `json:"initials"`
	University     string              `json:"university,omitempty"`
	UniversityName string              `json:"universityName,omitempty"`
	Company        string              `json:"company,omitempty"`
	SavedPosts     []int64             `json:"savedPosts"`
	Listings       []model.Listing     `json:"listings"`
	Applications   []model.Application `json:"applications"`
	Preferences    map[string]string   `json:"preferences"`
	CreatedAt      time.Time           `json:"createdAt"`
	LastLogin      time.Time           `json:"lastLogin"`
	// Revision counts stored writes of this record. UpdateUser refuses a
	// copy whose revision is no longer current.
	Revision int64 `json:"revision"`
}

// Partition returns the directory the user belongs to.
func (u *User) Partition() Partition {
	if u.UserType == "landlord" {
		return Landlords
	}
	return Students
}

// FirstName returns the first token of the display name.
func (u *User) FirstName() string {
	if f := strings.Fields(u.Name); len(f) > 0 {
		return f[0]
	}
	return u.Username
}

// Affiliation returns the university display name for students and the
// company for landlords.
func (u *User) Affiliation() string {
	if u.Partition() == Landlords {
		return u.Company
	}
	return u.UniversityName
}

// Clone returns a deep copy so callers can mutate it without touching the
// cached session user.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	c.SavedPosts = append([]int64(nil), u.SavedPosts...)
	if u.Listings != nil {
		c.Listings = make([]model.Listing, len(u.Listings))
		for i, l := range u.Listings {
			c.Listings[i] = l.Clone()
		}
	}
	c.Applications = append([]model.Application(nil), u.Applications...)
	if u.Preferences != nil {
		c.Preferences = make(map[string]string, len(u.Preferences))
		for k, v := range u.Preferences {
			c.Preferences[k] = v
		}
	}
	return &c
}

// Initials returns the uppercased first letters of up to two name tokens.
func Initials(name string) string {
	var b strings.Builder
	n := 0
	for _, tok := range strings.Fields(name) {
		if n == 2 {
			break
		}
		r := []rune(tok)[0]
		b.WriteRune(unicode.ToUpper(r))
		n++
	}
	return b.String()
}

// universityNames maps registration slugs to display names.
var universityNames = map[string]string{
	"northeastern": "Northeastern University",
	"harvard":      "Harvard University",
	"mit":          "MIT",
	"bu":           "Boston University",
	"emerson":      "Emerson College",
	"suffolk":      "Suffolk University",
	"nyu":          "NYU",
	"columbia":     "Columbia University",
	"stanford":     "Stanford University",
	"berkeley":     "UC Berkeley",
}

// UniversityName returns the display name for a university slug, or the
// slug itself when it is not in the table.
func UniversityName(slug string) string {
	if name, ok := universityNames[slug]; ok {
		return name
	}
	return slug
}
