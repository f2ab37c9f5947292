package models

import "github.com/google/uuid"

// Experience is an experience_details row joined with its company and the
// names of its linked skills.
type Experience struct {
	ID            uuid.UUID `json:"experience_id"`
	UserID        uuid.UUID `json:"user_id"`
	CompanyID     uuid.UUID `json:"company_id"`
	CompanyName   string    `json:"company_name"`
	CompanyBranch string    `json:"company_branch"`
	JobRole       string    `json:"job_role"`
	JobType       *string   `json:"job_type,omitempty"`
	StartDate     Date      `json:"start_date"`
	EndDate       *Date     `json:"end_date,omitempty"`
	Description   *string   `json:"description,omitempty"`
	Skills        []string  `json:"skills"`
}

type ExperienceChanges struct {
	JobRole     *string
	JobType     *string
	StartDate   *Date
	EndDate     *Date
	Description *string
}
