package models

import "time"

// CourseEdition is a scheduled run of a course. ListPrice is stored in
// integer minor units (euro cents), like every price in the system.
type CourseEdition struct {
	ID          int64      `db:"id" json:"id"`
	Code        string     `db:"code" json:"code"`
	CourseTitle string     `db:"course_title" json:"course_title"`
	ListPrice   int64      `db:"list_price" json:"list_price"`
	StartDate   *time.Time `db:"start_date" json:"start_date"`
	EndDate     *time.Time `db:"end_date" json:"end_date"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
}

// Registration links a student to a course edition. Price in minor units.
type Registration struct {
	ID               int64      `db:"id" json:"id"`
	StudentID        int64      `db:"student_id" json:"student_id"`
	EditionID        int64      `db:"edition_id" json:"edition_id"`
	RegistrationDate *time.Time `db:"registration_date" json:"registration_date"`
	Price            int64      `db:"price" json:"price"`
	Notes            string     `db:"notes" json:"notes"`
	CreatedAt        time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time  `db:"updated_at" json:"updated_at"`
}
