package models

import "time"

// SemesterType enumerates the three semesters of an academic year.
type SemesterType string

const (
	SemesterFall   SemesterType = "fall"
	SemesterSpring SemesterType = "spring"
	SemesterSummer SemesterType = "summer"
)

// SeasonRank orders semester types within an academic year (fall < spring < summer).
func (t SemesterType) SeasonRank() int {
	switch t {
	case SemesterFall:
		return 0
	case SemesterSpring:
		return 1
	default:
		return 2
	}
}

// AcademicYear spans e.g. 2024-2025.
type AcademicYear struct {
	ID        string `db:"id"`
	StartYear int    `db:"start_year"`
	EndYear   int    `db:"end_year"`
	Name      string `db:"name"`
}

// Semester models one term of an academic year with its registration window.
type Semester struct {
	ID                string       `db:"id"`
	AcademicYearID    string       `db:"academic_year_id"`
	Type              SemesterType `db:"type"`
	StartYear         int          `db:"-"`
	StartDate         time.Time    `db:"start_date"`
	EndDate           time.Time    `db:"end_date"`
	RegistrationStart time.Time    `db:"registration_start"`
	RegistrationEnd   time.Time    `db:"registration_end"`
}
