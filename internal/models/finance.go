package models

import "time"

// PaymentEnrollment is a tuition payment header covering one student-semester.
type PaymentEnrollment struct {
	ID             string    `db:"id"`
	StudentID      string    `db:"student_id"`
	SemesterID     string    `db:"semester_id"`
	Amount         int64     `db:"amount"`
	TransactionRef string    `db:"transaction_ref"`
	PaidAt         time.Time `db:"paid_at"`
}

// PaymentEnrollmentDetail lines a payment header up with one enrollment.
type PaymentEnrollmentDetail struct {
	ID                  string `db:"id"`
	PaymentEnrollmentID string `db:"payment_enrollment_id"`
	StudentEnrollmentID string `db:"student_enrollment_id"`
	Amount              int64  `db:"amount"`
}

// StudentHealthInsurance covers one student for one academic year.
type StudentHealthInsurance struct {
	ID                string `db:"id"`
	StudentID         string `db:"student_id"`
	AcademicYearID    string `db:"academic_year_id"`
	PolicyNumber      string `db:"policy_number"`
	ShouldHavePayment bool   `db:"should_have_payment"`
}
