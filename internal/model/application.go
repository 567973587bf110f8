package model

// ApplicationStatus is the review state of a rental application.
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationApproved ApplicationStatus = "approved"
	ApplicationRejected ApplicationStatus = "rejected"
)

// Terminal reports whether no further transition is allowed.
func (s ApplicationStatus) Terminal() bool {
	return s == ApplicationApproved || s == ApplicationRejected
}

// Applicant is the denormalized applicant snapshot embedded in an Application.
type Applicant struct {
	Name       string `json:"name"`
	Avatar     string `json:"avatar"`
	University string `json:"university"`
	Year       string `json:"year"`
}

// Application is a student's application to a landlord's property. The
// property is identified by its title and address at the time of applying,
// not by listing id.
type Application struct {
	ID              int64             `json:"id"`
	Applicant       Applicant         `json:"applicant"`
	PropertyTitle   string            `json:"propertyTitle"`
	PropertyAddress string            `json:"propertyAddress"`
	Message         string            `json:"message"`
	Status          ApplicationStatus `json:"status"`
	AppliedDate     string            `json:"appliedDate"`
	Budget          string            `json:"budget"`
	MoveInDate      string            `json:"moveInDate"`
}
