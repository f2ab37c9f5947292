package models

import "github.com/google/uuid"

// Institution, Company and Skill are shared reference rows. They are created
// on first use, deduplicated by their natural key and never deleted.

type Institution struct {
	ID     uuid.UUID `json:"institution_id"`
	Name   string    `json:"name"`
	Branch string    `json:"branch"`
}

type Company struct {
	ID     uuid.UUID `json:"company_id"`
	Name   string    `json:"name"`
	Branch string    `json:"branch"`
}

type Skill struct {
	ID   uuid.UUID `json:"skill_id"`
	Name string    `json:"skill_name"`
}
