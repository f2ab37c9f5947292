package models

import "github.com/google/uuid"

// Education is an education_details row joined with its institution and the
// names of its linked skills.
type Education struct {
	ID                uuid.UUID `json:"education_id"`
	UserID            uuid.UUID `json:"user_id"`
	InstitutionID     uuid.UUID `json:"institution_id"`
	InstitutionName   string    `json:"institution_name"`
	InstitutionBranch string    `json:"institution_branch"`
	Degree            string    `json:"degree"`
	School            *string   `json:"school,omitempty"`
	StartDate         *Date     `json:"start_date,omitempty"`
	EndDate           *Date     `json:"end_date,omitempty"`
	Grade             *string   `json:"grade,omitempty"`
	Description       *string   `json:"description,omitempty"`
	Skills            []string  `json:"skills"`
}

// EducationChanges holds the column values of an update. Nil fields keep
// their current value.
type EducationChanges struct {
	Degree      *string
	School      *string
	StartDate   *Date
	EndDate     *Date
	Grade       *string
	Description *string
}
