package catalog

import (
	"fmt"
	"log"
	"strings"

	"github.com/notepid/roomielink/internal/model"
	"github.com/notepid/roomielink/internal/user"
	"github.com/notepid/roomielink/internal/validate"
)

// ApplicationFields are the student-supplied fields of an application.
type ApplicationFields struct {
	Message    string
	Budget     string
	MoveInDate string
	Year       string
}

// Applications returns the session landlord's applications followed by the
// demo applications.
func (c *Catalog) Applications(sess *user.Session) ([]model.Application, error) {
	u, err := c.users.RequirePartition(sess, user.Landlords)
	if err != nil {
		return nil, err
	}
	out := append([]model.Application{}, u.Applications...)
	c.mu.Lock()
	out = append(out, c.demoApplications...)
	c.mu.Unlock()
	return out, nil
}

// Apply files an application from the session student against a live
// listing. The application is stored on the owning landlord's record with a
// snapshot of the student and the property.
func (c *Catalog) Apply(sess *user.Session, listingID int64, f ApplicationFields) (*model.Application, error) {
	student, err := c.users.RequirePartition(sess, user.Students)
	if err != nil {
		return nil, err
	}
	if err := validate.Required(validate.F("message", f.Message)); err != nil {
		return nil, err
	}
	if err := validate.Message(f.Message); err != nil {
		return nil, err
	}

	landlords, err := c.users.List(user.Landlords)
	if err != nil {
		return nil, err
	}
	var (
		owner   *user.User
		listing *model.Listing
	)
	for _, l := range landlords {
		for i := range l.Listings {
			if l.Listings[i].ID == listingID {
				owner, listing = l, &l.Listings[i]
			}
		}
	}
	if listing == nil {
		return nil, fmt.Errorf("listing %d: %w", listingID, ErrNotFound)
	}
	if listing.Status != model.ListingActive {
		return nil, fmt.Errorf("listing %d is %s: %w", listingID, listing.Status, ErrInvalidTransition)
	}

	id, err := c.nextID(applicationsSeqKey)
	if err != nil {
		return nil, err
	}
	year := f.Year
	if year == "" {
		year = "Student"
	}
	app := model.Application{
		ID: id,
		Applicant: model.Applicant{
			Name:       student.Name,
			Avatar:     student.Initials,
			University: student.UniversityName,
			Year:       year,
		},
		PropertyTitle:   listing.Title,
		PropertyAddress: listing.Address,
		Message:         strings.TrimSpace(validate.Sanitize(f.Message)),
		Status:          model.ApplicationPending,
		AppliedDate:     c.now().Format("2006-01-02"),
		Budget:          f.Budget,
		MoveInDate:      f.MoveInDate,
	}

	listing.Applications++
	owner.Applications = append([]model.Application{app}, owner.Applications...)
	if err := c.users.UpdateUser(nil, owner); err != nil {
		return nil, fmt.Errorf("apply to listing %d: %w", listingID, err)
	}

	if c.debug {
		log.Printf("catalog: %s applied to listing %d", student.Username, listingID)
	}
	return &app, nil
}

// Approve moves a pending application to approved.
func (c *Catalog) Approve(sess *user.Session, id int64) (*model.Application, error) {
	return c.review(sess, id, model.ApplicationApproved)
}

// Reject moves a pending application to rejected.
func (c *Catalog) Reject(sess *user.Session, id int64) (*model.Application, error) {
	return c.review(sess, id, model.ApplicationRejected)
}

func (c *Catalog) review(sess *user.Session, id int64, to model.ApplicationStatus) (*model.Application, error) {
	u, err := c.users.RequirePartition(sess, user.Landlords)
	if err != nil {
		return nil, err
	}

	for i := range u.Applications {
		app := &u.Applications[i]
		if app.ID != id {
			continue
		}
		if app.Status.Terminal() {
			return nil, fmt.Errorf("application %d is %s: %w", id, app.Status, ErrInvalidTransition)
		}
		app.Status = to
		if err := c.users.UpdateUser(sess, u); err != nil {
			return nil, fmt.Errorf("review application %d: %w", id, err)
		}
		out := *app
		return &out, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.demoApplications {
		app := &c.demoApplications[i]
		if app.ID != id {
			continue
		}
		if app.Status.Terminal() {
			return nil, fmt.Errorf("application %d is %s: %w", id, app.Status, ErrInvalidTransition)
		}
		app.Status = to
		out := *app
		return &out, nil
	}
	return nil, fmt.Errorf("application %d: %w", id, ErrNotFound)
}
