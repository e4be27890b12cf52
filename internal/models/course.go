package models

import "time"

// Course offers a subject in a specific semester.
type Course struct {
	ID           string `db:"id"`
	SubjectID    string `db:"subject_id"`
	SemesterID   string `db:"semester_id"`
	FeePerCredit int64  `db:"fee_per_credit"`
}

// GradeSubmissionStatus tracks the instructor grade workflow of a section.
type GradeSubmissionStatus string

const (
	GradeSubmissionDraft    GradeSubmissionStatus = "draft"
	GradeSubmissionPending  GradeSubmissionStatus = "pending"
	GradeSubmissionApproved GradeSubmissionStatus = "approved"
)

// CourseClass is an offered section of a course with a fixed weekly slot.
type CourseClass struct {
	ID            string    `db:"id"`
	CourseID      string    `db:"course_id"`
	InstructorID  string    `db:"instructor_id"`
	RoomID        string    `db:"room_id"`
	Code          string    `db:"code"`
	DateStart     time.Time `db:"date_start"`
	DateEnd       time.Time `db:"date_end"`
	MaxStudents   int       `db:"max_students"`
	EnrolledCount int       `db:"enrolled_count"`
	// Two weekdays per section; time.Weekday with Monday=1.
	Days        [2]time.Weekday `db:"-"`
	StartPeriod int             `db:"start_period"`
	EndPeriod   int             `db:"end_period"`
	// Fallback marks a section placed after exhausting conflict-free attempts.
	Fallback bool `db:"-"`

	GradeSubmissionStatus GradeSubmissionStatus `db:"grade_submission_status"`
	GradeSubmittedAt      *time.Time            `db:"grade_submitted_at"`
	GradeApprovedAt       *time.Time            `db:"grade_approved_at"`
	GradeApproverID       string                `db:"grade_approver_id"`
	GradeSubmitNote       string                `db:"grade_submit_note"`
	GradeApprovalNote     string                `db:"grade_approval_note"`
}

// EnrollmentStatus enumerates states of a student enrollment.
type EnrollmentStatus string

const (
	EnrollmentRegistered EnrollmentStatus = "registered"
	EnrollmentCompleted  EnrollmentStatus = "completed"
	EnrollmentCancelled  EnrollmentStatus = "cancelled"
)

// StudentEnrollment records a student sitting a section. (StudentID, CourseClassID) is a key.
type StudentEnrollment struct {
	ID            string           `db:"id"`
	StudentID     string           `db:"student_id"`
	CourseClassID string           `db:"course_class_id"`
	EnrolledAt    time.Time        `db:"enrolled_at"`
	Status        EnrollmentStatus `db:"status"`
	Attendance    *float64         `db:"attendance_score"`
	Midterm       *float64         `db:"midterm_score"`
	Final         *float64         `db:"final_score"`
}
