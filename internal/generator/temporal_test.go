package generator

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/edu-fixtures/internal/models"
)

func newTemporalGenerator() *Generator {
	return &Generator{
		cfg: &Config{
			Fixed: FixedAccounts{
				Student: FixedAccount{ID: "fixed-student"},
				Admin:   FixedAccount{ID: "fixed-admin"},
			},
		},
		rng:   rand.New(rand.NewSource(7)),
		today: time.Date(2025, 11, 15, 0, 0, 0, 0, time.UTC),
	}
}

func semesterAt(year int, semType models.SemesterType) *models.Semester {
	start, end := semesterAnchor(year, semType)
	return &models.Semester{
		Type:      semType,
		StartYear: year,
		StartDate: start,
		EndDate:   end,
	}
}

func TestClassifySemester(t *testing.T) {
	cases := []struct {
		year    int
		semType models.SemesterType
		want    coursePhase
	}{
		{2021, models.SemesterFall, phasePast},
		{2024, models.SemesterSummer, phasePast},
		{2025, models.SemesterSpring, phasePast},
		{2025, models.SemesterFall, phaseCurrent},
		{2025, models.SemesterSummer, phaseFuture},
		{2026, models.SemesterFall, phaseFuture},
	}
	for _, tc := range cases {
		got := classifySemester(semesterAt(tc.year, tc.semType))
		assert.Equal(t, tc.want, got, "%d %s", tc.year, tc.semType)
	}
}

func TestEnrollmentStatePast(t *testing.T) {
	g := newTemporalGenerator()
	sem := semesterAt(2023, models.SemesterFall)

	for i := 0; i < 50; i++ {
		enr := models.StudentEnrollment{StudentID: "someone"}
		g.applyEnrollmentState(&enr, sem)

		assert.Equal(t, models.EnrollmentCompleted, enr.Status)
		require.NotNil(t, enr.Attendance)
		require.NotNil(t, enr.Midterm)
		require.NotNil(t, enr.Final)
		assert.GreaterOrEqual(t, *enr.Attendance, 7.0)
		assert.LessOrEqual(t, *enr.Attendance, 10.0)
		assert.GreaterOrEqual(t, *enr.Midterm, 5.0)
		assert.LessOrEqual(t, *enr.Midterm, 9.5)
		assert.GreaterOrEqual(t, *enr.Final, 5.0)
		assert.LessOrEqual(t, *enr.Final, 9.5)
	}
}

func TestEnrollmentStatePastFixedStudent(t *testing.T) {
	g := newTemporalGenerator()
	enr := models.StudentEnrollment{StudentID: "fixed-student"}
	g.applyEnrollmentState(&enr, semesterAt(2023, models.SemesterSpring))

	require.NotNil(t, enr.Final)
	assert.Equal(t, 9.0, *enr.Attendance)
	assert.Equal(t, 8.5, *enr.Midterm)
	assert.Equal(t, 8.0, *enr.Final)
}

func TestEnrollmentStateCurrent(t *testing.T) {
	g := newTemporalGenerator()
	sem := semesterAt(2025, models.SemesterFall)

	sawPartial := false
	for i := 0; i < 100; i++ {
		enr := models.StudentEnrollment{StudentID: "someone"}
		g.applyEnrollmentState(&enr, sem)

		assert.Equal(t, models.EnrollmentRegistered, enr.Status)
		assert.Nil(t, enr.Final, "final grades never land mid-term")
		if enr.Midterm != nil {
			require.NotNil(t, enr.Attendance, "midterm implies attendance")
		}
		if enr.Attendance != nil {
			sawPartial = true
		}
	}
	assert.True(t, sawPartial, "most live enrollments carry partial grades")
}

func TestGradeSubmissionPast(t *testing.T) {
	g := newTemporalGenerator()
	sem := semesterAt(2022, models.SemesterFall)

	for i := 0; i < 20; i++ {
		var section models.CourseClass
		g.applyGradeSubmission(&section, sem)

		assert.Equal(t, models.GradeSubmissionApproved, section.GradeSubmissionStatus)
		require.NotNil(t, section.GradeSubmittedAt)
		require.NotNil(t, section.GradeApprovedAt)
		assert.True(t, section.GradeSubmittedAt.Before(sem.EndDate))
		assert.True(t, section.GradeApprovedAt.After(*section.GradeSubmittedAt))
		assert.Equal(t, "fixed-admin", section.GradeApproverID)
	}
}

func TestGradeSubmissionCurrent(t *testing.T) {
	g := newTemporalGenerator()
	sem := semesterAt(2025, models.SemesterFall)

	seen := map[models.GradeSubmissionStatus]int{}
	for i := 0; i < 200; i++ {
		var section models.CourseClass
		g.applyGradeSubmission(&section, sem)
		seen[section.GradeSubmissionStatus]++

		switch section.GradeSubmissionStatus {
		case models.GradeSubmissionDraft:
			assert.Nil(t, section.GradeSubmittedAt)
			assert.Nil(t, section.GradeApprovedAt)
		case models.GradeSubmissionPending:
			require.NotNil(t, section.GradeSubmittedAt)
			assert.Nil(t, section.GradeApprovedAt)
		case models.GradeSubmissionApproved:
			require.NotNil(t, section.GradeSubmittedAt)
			require.NotNil(t, section.GradeApprovedAt)
		}
	}
	assert.NotZero(t, seen[models.GradeSubmissionDraft])
	assert.NotZero(t, seen[models.GradeSubmissionPending])
	assert.NotZero(t, seen[models.GradeSubmissionApproved])
}

func TestGradeSubmissionFuture(t *testing.T) {
	g := newTemporalGenerator()
	var section models.CourseClass
	g.applyGradeSubmission(&section, semesterAt(2026, models.SemesterFall))

	assert.Equal(t, models.GradeSubmissionDraft, section.GradeSubmissionStatus)
	assert.Nil(t, section.GradeSubmittedAt)
}
