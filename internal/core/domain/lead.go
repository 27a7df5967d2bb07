package domain

import "time"

// LeadStatus represents where a lead sits in the sales pipeline.
type LeadStatus string

const (
	StatusNew       LeadStatus = "new"
	StatusContacted LeadStatus = "contacted"
	StatusConverted LeadStatus = "converted"
)

// DefaultLeadSource is stored when a submission does not name its origin.
const DefaultLeadSource = "website"

// IsValid reports whether s is one of the enumerated pipeline states.
// Any valid status may follow any other; there is no transition table.
func (s LeadStatus) IsValid() bool {
	switch s {
	case StatusNew, StatusContacted, StatusConverted:
		return true
	}
	return false
}

// Note is an append-only annotation owned by a Lead.
type Note struct {
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// Lead is the aggregate root for a contact-form submission.
// Notes are ordered newest first.
type Lead struct {
	ID        string     `json:"_id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Message   string     `json:"message"`
	Source    string     `json:"source"`
	Status    LeadStatus `json:"status"`
	Notes     []Note     `json:"notes"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}
