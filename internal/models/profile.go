package models

// Profile is everything shown on a user's page.
type Profile struct {
	User       UserDetails  `json:"user"`
	Education  []Education  `json:"education_details"`
	Skills     []Skill      `json:"skills"`
	Experience []Experience `json:"experience_details"`
	Posts      []Post       `json:"posts"`
}
