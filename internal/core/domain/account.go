package domain

import "time"

// Account models a login principal. Admins authenticate by username,
// doctors and patients by email; Identifier holds whichever applies.
// For doctor and patient accounts SubjectID links to the Doctor or
// Patient record the account belongs to.
type Account struct {
	ID           string    `json:"id"`
	Identifier   string    `json:"identifier"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	SubjectID    string    `json:"subject_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
