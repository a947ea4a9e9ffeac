package domain

import "time"

// Patient is a clinic patient record.
type Patient struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
