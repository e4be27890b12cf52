package models

// Faculty is the top-level academic unit.
type Faculty struct {
	ID   string `db:"id"`
	Code string `db:"code"`
	Name string `db:"name"`
}

// Department belongs to exactly one faculty.
type Department struct {
	ID        string `db:"id"`
	FacultyID string `db:"faculty_id"`
	Code      string `db:"code"`
	Name      string `db:"name"`
}

// TrainingSystem labels a cohort pathway (regular, advanced, ...).
type TrainingSystem struct {
	ID   string `db:"id"`
	Code string `db:"code"`
	Name string `db:"name"`
}

// Curriculum is the per-cohort program of a department.
type Curriculum struct {
	ID           string `db:"id"`
	DepartmentID string `db:"department_id"`
	AppliedYear  int    `db:"applied_year"`
	Version      string `db:"version"`
	Name         string `db:"name"`
}

// CurriculumDetail pins a subject into a (year, semester) bin of a curriculum.
type CurriculumDetail struct {
	ID            string `db:"id"`
	CurriculumID  string `db:"curriculum_id"`
	SubjectID     string `db:"subject_id"`
	YearIndex     int    `db:"year_index"`
	SemesterIndex int    `db:"semester_index"`
}

// Subject is a unit of study, either general or department-scoped.
type Subject struct {
	ID            string `db:"id"`
	Code          string `db:"code"`
	Name          string `db:"name"`
	Credits       int    `db:"credits"`
	TheoryHours   int    `db:"theory_hours"`
	PracticeHours int    `db:"practice_hours"`
	IsGeneral     bool   `db:"is_general"`
	DepartmentID  string `db:"department_id"`
}

// Class is a cohort of students following one curriculum.
type Class struct {
	ID               string `db:"id"`
	Code             string `db:"code"`
	DepartmentID     string `db:"department_id"`
	CurriculumID     string `db:"curriculum_id"`
	TrainingSystemID string `db:"training_system_id"`
	StartYearID      string `db:"start_academic_year_id"`
	EndYearID        string `db:"end_academic_year_id"`
	StartYear        int    `db:"-"`
	AdvisorID        string `db:"advisor_id"`
}
