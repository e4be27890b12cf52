package models

import "time"

// ExamFormat enumerates delivery formats of an exam.
type ExamFormat string

const (
	ExamFormatMultipleChoice ExamFormat = "multiple_choice"
	ExamFormatEssay          ExamFormat = "essay"
	ExamFormatPractical      ExamFormat = "practical"
	ExamFormatOral           ExamFormat = "oral"
	ExamFormatMixed          ExamFormat = "mixed"
)

// ExamType distinguishes midterm and final exams.
type ExamType string

const (
	ExamTypeMidterm ExamType = "midterm"
	ExamTypeFinal   ExamType = "final"
)

// Exam is defined once per course.
type Exam struct {
	ID                 string     `db:"id"`
	CourseID           string     `db:"course_id"`
	Format             ExamFormat `db:"format"`
	Type               ExamType   `db:"type"`
	NumExamCodesNeeded int        `db:"num_exam_codes_needed"`
	Note               string     `db:"note"`
}

// ExamEntryStatus tracks the review state of a submitted exam variant.
type ExamEntryStatus string

const (
	ExamEntryApproved ExamEntryStatus = "approved"
	ExamEntryPending  ExamEntryStatus = "pending"
	ExamEntryRejected ExamEntryStatus = "rejected"
)

// ExamEntry is an instructor-submitted exam variant; picked entries carry a letter code.
type ExamEntry struct {
	ID           string          `db:"id"`
	ExamID       string          `db:"exam_id"`
	InstructorID string          `db:"instructor_id"`
	Status       ExamEntryStatus `db:"status"`
	SubmittedAt  time.Time       `db:"submitted_at"`
	EntryCode    string          `db:"entry_code"`
	IsPicked     bool            `db:"is_picked"`
}

// ExamClass schedules a section's exam sitting into a room and start time.
type ExamClass struct {
	ID            string    `db:"id"`
	ExamID        string    `db:"exam_id"`
	CourseClassID string    `db:"course_class_id"`
	RoomID        string    `db:"room_id"`
	StartTime     time.Time `db:"start_time"`
	// Fallback marks a sitting placed after exhausting conflict-free attempts.
	Fallback bool `db:"-"`
}
