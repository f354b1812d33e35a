package entity

import "time"

// User is one row of the org directory keyed by email.
type User struct {
	ID            int64     `db:"id" json:"id"`
	Email         string    `db:"email" json:"email"`
	Department    string    `db:"department" json:"department"`
	Division      string    `db:"division" json:"division"`
	Subdepartment string    `db:"subdepartment" json:"subdepartment"`
	IsManager     bool      `db:"is_manager" json:"is_manager"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}
