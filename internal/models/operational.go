package models

import "time"

// NotificationType enumerates broadcast categories.
type NotificationType string

const (
	NotificationTypeImportant NotificationType = "important"
	NotificationTypeSchedule  NotificationType = "schedule"
	NotificationTypeTuition   NotificationType = "tuition"
	NotificationTypeEvent     NotificationType = "event"
)

// NotificationTarget enumerates audience selectors.
type NotificationTarget string

const (
	TargetAll            NotificationTarget = "all"
	TargetAllStudents    NotificationTarget = "all_students"
	TargetAllInstructors NotificationTarget = "all_instructors"
	TargetClass          NotificationTarget = "class"
	TargetFaculty        NotificationTarget = "faculty"
	TargetInstructor     NotificationTarget = "instructor"
	TargetStudent        NotificationTarget = "student"
)

// NotificationStatus enumerates delivery states.
type NotificationStatus string

const (
	NotificationPending   NotificationStatus = "pending"
	NotificationSent      NotificationStatus = "sent"
	NotificationCancelled NotificationStatus = "cancelled"
)

// NotificationSchedule is a scheduled broadcast.
type NotificationSchedule struct {
	ID            string             `db:"id"`
	Title         string             `db:"title"`
	Content       string             `db:"content"`
	Type          NotificationType   `db:"type"`
	TargetType    NotificationTarget `db:"target_type"`
	TargetID      string             `db:"target_id"`
	ScheduledDate time.Time          `db:"scheduled_date"`
	VisibleFrom   time.Time          `db:"visible_from"`
	CreatedAt     time.Time          `db:"created_at"`
	Status        NotificationStatus `db:"status"`
	IsDeleted     bool               `db:"is_deleted"`
}

// NotificationUserRead marks a notification read by one account.
type NotificationUserRead struct {
	NotificationID string    `db:"notification_id"`
	AccountID      string    `db:"account_id"`
	ReadAt         time.Time `db:"read_at"`
}

// DocumentType enumerates course material categories.
type DocumentType string

const (
	DocumentExercise  DocumentType = "Bài tập"
	DocumentReference DocumentType = "Tài liệu"
	DocumentSlide     DocumentType = "Slide"
	DocumentLab       DocumentType = "Bài LAB"
)

// Document is a course material uploaded to a section.
type Document struct {
	ID            string       `db:"id"`
	CourseClassID string       `db:"course_class_id"`
	Type          DocumentType `db:"type"`
	Title         string       `db:"title"`
	FileURL       string       `db:"file_url"`
	UploadedAt    time.Time    `db:"uploaded_at"`
}

// ScheduleChange records a one-off session move for a section.
type ScheduleChange struct {
	ID            string    `db:"id"`
	CourseClassID string    `db:"course_class_id"`
	OldDate       time.Time `db:"old_date"`
	NewDate       time.Time `db:"new_date"`
	Reason        string    `db:"reason"`
}

// Note is a free-form note attached to an account.
type Note struct {
	ID        string    `db:"id"`
	AccountID string    `db:"account_id"`
	Title     string    `db:"title"`
	Content   string    `db:"content"`
	CreatedAt time.Time `db:"created_at"`
}

// Regulation is an institutional policy document.
type Regulation struct {
	ID          string    `db:"id"`
	Title       string    `db:"title"`
	Content     string    `db:"content"`
	FileURL     string    `db:"file_url"`
	EffectiveAt time.Time `db:"effective_at"`
}

// ThemeConfiguration stores UI preferences for an account.
type ThemeConfiguration struct {
	ID        string `db:"id"`
	AccountID string `db:"account_id"`
	Theme     string `db:"theme"`
	Language  string `db:"language"`
}
