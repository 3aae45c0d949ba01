package models

import "time"

type Student struct {
	ID         int64      `db:"id" json:"id"`
	FirstName  string     `db:"first_name" json:"first_name"`
	LastName   string     `db:"last_name" json:"last_name"`
	FiscalCode string     `db:"fiscal_code" json:"fiscal_code"`
	Email      string     `db:"email" json:"email"`
	Phone      string     `db:"phone" json:"phone"`
	BirthDate  *time.Time `db:"birth_date" json:"birth_date"`
	BirthPlace string     `db:"birth_place" json:"birth_place"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at" json:"updated_at"`
}

// FullName is the display label used in duplicate reports.
func (s Student) FullName() string {
	return s.FirstName + " " + s.LastName
}
