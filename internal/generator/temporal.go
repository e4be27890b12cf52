package generator

import (
	"github.com/noah-isme/edu-fixtures/internal/models"
)

// coursePhase classifies a semester relative to the pinned reference term.
type coursePhase int

const (
	phasePast coursePhase = iota
	phaseCurrent
	phaseFuture
)

func classifySemester(sem *models.Semester) coursePhase {
	switch {
	case sem.StartYear < pinnedFallYear:
		return phasePast
	case sem.StartYear == pinnedFallYear && sem.Type == models.SemesterSpring:
		return phasePast
	case sem.StartYear == pinnedFallYear && sem.Type == models.SemesterFall:
		return phaseCurrent
	default:
		return phaseFuture
	}
}

// currentScoreProfile weights how far into the term a live enrollment is.
var currentScoreProfile = []weightedChoice[int]{
	{Value: 2, Weight: 0.60}, // attendance + midterm recorded
	{Value: 1, Weight: 0.25}, // attendance only
	{Value: 0, Weight: 0.15}, // nothing graded yet
}

// applyEnrollmentState fills status and scores according to where the
// semester sits on the timeline. Past terms are fully graded and completed,
// the live term is partially graded and still registered.
func (g *Generator) applyEnrollmentState(enr *models.StudentEnrollment, sem *models.Semester) {
	switch classifySemester(sem) {
	case phasePast:
		enr.Status = models.EnrollmentCompleted
		if g.isFixedStudent(enr.StudentID) {
			enr.Attendance = ptrFloat(9.0)
			enr.Midterm = ptrFloat(8.5)
			enr.Final = ptrFloat(8.0)
			return
		}
		enr.Attendance = ptrFloat(uniformFloat(g.rng, 7.0, 10.0))
		enr.Midterm = ptrFloat(uniformFloat(g.rng, 5.0, 9.5))
		enr.Final = ptrFloat(uniformFloat(g.rng, 5.0, 9.5))
	case phaseCurrent:
		enr.Status = models.EnrollmentRegistered
		graded := pickWeighted(g.rng, currentScoreProfile)
		if g.isFixedStudent(enr.StudentID) {
			graded = 2
		}
		if graded >= 1 {
			enr.Attendance = ptrFloat(uniformFloat(g.rng, 7.0, 10.0))
		}
		if graded >= 2 {
			enr.Midterm = ptrFloat(uniformFloat(g.rng, 5.0, 9.5))
		}
	default:
		enr.Status = models.EnrollmentRegistered
	}
}

var currentSubmissionStates = []weightedChoice[models.GradeSubmissionStatus]{
	{Value: models.GradeSubmissionDraft, Weight: 0.40},
	{Value: models.GradeSubmissionPending, Weight: 0.30},
	{Value: models.GradeSubmissionApproved, Weight: 0.30},
}

// applyGradeSubmission advances the section's grade workflow to the point
// its semester has reached. Finished terms are always approved.
func (g *Generator) applyGradeSubmission(section *models.CourseClass, sem *models.Semester) {
	switch classifySemester(sem) {
	case phasePast:
		submitted := daysBefore(sem.EndDate, 2+g.rng.Intn(4))
		approved := submitted.AddDate(0, 0, 1+g.rng.Intn(3))
		section.GradeSubmissionStatus = models.GradeSubmissionApproved
		section.GradeSubmittedAt = &submitted
		section.GradeApprovedAt = &approved
		section.GradeApproverID = g.cfg.Fixed.Admin.ID
		section.GradeSubmitNote = "Đã nhập đủ điểm"
		section.GradeApprovalNote = "Đã duyệt"
	case phaseCurrent:
		section.GradeSubmissionStatus = pickWeighted(g.rng, currentSubmissionStates)
		if section.GradeSubmissionStatus == models.GradeSubmissionDraft {
			return
		}
		submitted := daysBefore(g.today, 1+g.rng.Intn(10))
		section.GradeSubmittedAt = &submitted
		section.GradeSubmitNote = "Đã nhập đủ điểm"
		if section.GradeSubmissionStatus == models.GradeSubmissionApproved {
			approved := submitted.AddDate(0, 0, 1+g.rng.Intn(3))
			section.GradeApprovedAt = &approved
			section.GradeApproverID = g.cfg.Fixed.Admin.ID
			section.GradeApprovalNote = "Đã duyệt"
		}
	default:
		section.GradeSubmissionStatus = models.GradeSubmissionDraft
	}
}

func ptrFloat(v float64) *float64 {
	return &v
}
