package generator

import (
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/edu-fixtures/internal/media"
	"github.com/noah-isme/edu-fixtures/internal/models"
	"github.com/noah-isme/edu-fixtures/internal/spec"
	"github.com/noah-isme/edu-fixtures/internal/sqlout"
	"github.com/noah-isme/edu-fixtures/pkg/config"
)

var testToday = time.Date(2025, 11, 15, 0, 0, 0, 0, time.UTC)

func newTestPipeline(t *testing.T, seed int64) (*Generator, *sqlout.Sink) {
	t.Helper()

	store, err := spec.Load("testdata/universe.spec")
	require.NoError(t, err)
	require.Empty(t, store.Warnings())

	cfg, err := BuildConfig(store, config.VolumesConfig{
		StudentsPerClass:      10,
		GeneralNotifications:  30,
		TargetedNotifications: 5,
		PaymentRate:           0.10,
		InsertChunkSize:       1000,
	})
	require.NoError(t, err)

	dir := t.TempDir()
	for _, sub := range []string{"profile_pics", "course_docs/pdf", "course_docs/images", "course_docs/excel"} {
		require.NoError(t, os.MkdirAll(filepath.Join(dir, sub), 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, sub, "sample.dat"), []byte("x"), 0o644))
	}
	catalog, err := media.Scan(dir, "https://cdn.test", "edu-media", rand.New(rand.NewSource(seed)))
	require.NoError(t, err)

	sink := sqlout.NewSink(1000)
	return New(cfg, catalog, sink, seed, testToday, zap.NewNop()), sink
}

func runTestPipeline(t *testing.T, seed int64) (*World, *Generator, *sqlout.Sink) {
	t.Helper()
	gen, sink := newTestPipeline(t, seed)
	require.NoError(t, gen.Run())
	return gen.World(), gen, sink
}

func (w *World) semesterOfSection(section *models.CourseClass) *models.Semester {
	return w.SemesterOfCourse(w.CourseByID(section.CourseID))
}

func TestPipelineProducesScript(t *testing.T) {
	world, _, sink := runTestPipeline(t, 42)

	assert.NotEmpty(t, world.Students)
	assert.NotEmpty(t, world.CourseClasses)
	assert.NotEmpty(t, world.Enrollments)
	assert.NotEmpty(t, world.Exams)
	assert.NotEmpty(t, world.Payments)

	out := sink.Render()
	assert.True(t, strings.HasPrefix(out, "USE EduManagement;\nGO\n"))
	assert.Contains(t, out, "INSERT INTO student_enrollments")
}

// Identifiers and placements come from the seeded rng, so two runs with the
// same seed reproduce the same universe. Password hashes are exempt: bcrypt
// salts from crypto/rand.
func TestPipelineIsDeterministic(t *testing.T) {
	first, _, _ := runTestPipeline(t, 42)
	second, _, _ := runTestPipeline(t, 42)

	collect := func(w *World) []string {
		var ids []string
		for _, s := range w.Students {
			ids = append(ids, s.ID)
		}
		for _, cc := range w.CourseClasses {
			ids = append(ids, cc.ID+"@"+cc.RoomID)
		}
		for _, e := range w.Enrollments {
			ids = append(ids, e.ID+"@"+e.CourseClassID)
		}
		for _, p := range w.Payments {
			ids = append(ids, p.ID+"@"+p.TransactionRef)
		}
		return ids
	}
	assert.Equal(t, collect(first), collect(second))
}

func TestEnrollmentPairUniqueness(t *testing.T) {
	world, _, _ := runTestPipeline(t, 42)

	seen := make(map[[2]string]bool)
	for _, e := range world.Enrollments {
		key := [2]string{e.StudentID, e.CourseClassID}
		assert.False(t, seen[key], "duplicate enrollment %v", key)
		seen[key] = true
	}
}

func TestSectionCapacityAndCounts(t *testing.T) {
	world, _, _ := runTestPipeline(t, 42)

	perSection := make(map[string]int)
	for _, e := range world.Enrollments {
		perSection[e.CourseClassID]++
	}
	for _, section := range world.CourseClasses {
		assert.LessOrEqual(t, section.EnrolledCount, section.MaxStudents)
		assert.Equal(t, perSection[section.ID], section.EnrolledCount,
			"section %s counter must match its enrollment rows", section.ID)
	}
}

func TestStudentSchedulesDoNotOverlap(t *testing.T) {
	world, _, _ := runTestPipeline(t, 42)

	sectionByID := make(map[string]*models.CourseClass)
	for i := range world.CourseClasses {
		sectionByID[world.CourseClasses[i].ID] = &world.CourseClasses[i]
	}

	type slot struct {
		Semester string
		Day      time.Weekday
		Period   int
	}
	taken := make(map[string]map[slot]string)
	for _, e := range world.Enrollments {
		section := sectionByID[e.CourseClassID]
		require.NotNil(t, section, "enrollment references a pruned section")
		sem := world.semesterOfSection(section)

		if taken[e.StudentID] == nil {
			taken[e.StudentID] = make(map[slot]string)
		}
		for _, day := range section.Days {
			for p := section.StartPeriod; p <= section.EndPeriod; p++ {
				key := slot{Semester: sem.ID, Day: day, Period: p}
				prev, clash := taken[e.StudentID][key]
				assert.False(t, clash,
					"student %s double-booked in sections %s and %s", e.StudentID, prev, section.ID)
				taken[e.StudentID][key] = section.ID
			}
		}
	}
}

func TestRoomSlotsUniqueOutsideFallback(t *testing.T) {
	world, _, _ := runTestPipeline(t, 42)

	taken := make(map[roomSlotKey]string)
	for _, section := range world.CourseClasses {
		if section.Fallback {
			continue
		}
		for _, day := range section.Days {
			for p := section.StartPeriod; p <= section.EndPeriod; p++ {
				key := roomSlotKey{RoomID: section.RoomID, Day: day, Period: p}
				prev, clash := taken[key]
				assert.False(t, clash, "room slot shared by %s and %s", prev, section.ID)
				taken[key] = section.ID
			}
		}
	}
}

func TestExamSittingsUniqueOutsideFallback(t *testing.T) {
	world, _, _ := runTestPipeline(t, 42)

	taken := make(map[examSlotKey]bool)
	for _, sitting := range world.ExamClasses {
		if sitting.Fallback {
			continue
		}
		key := examSlotKey{RoomID: sitting.RoomID, Start: sitting.StartTime}
		assert.False(t, taken[key], "exam room double-booked at %s", sitting.StartTime)
		taken[key] = true

		day := sitting.StartTime.Weekday()
		assert.NotEqual(t, time.Saturday, day)
		assert.NotEqual(t, time.Sunday, day)
	}
}

// Every exam picks min(needed, approved) entries, all approved, each with a
// distinct letter code from the A, B, C… prefix.
func TestExamCodesPickedFromApprovedEntries(t *testing.T) {
	world, _, _ := runTestPipeline(t, 42)

	entriesByExam := make(map[string][]models.ExamEntry)
	for _, e := range world.ExamEntries {
		entriesByExam[e.ExamID] = append(entriesByExam[e.ExamID], e)
	}
	for _, exam := range world.Exams {
		var approvedCount int
		var picked []models.ExamEntry
		for _, e := range entriesByExam[exam.ID] {
			if e.Status == models.ExamEntryApproved {
				approvedCount++
			}
			if e.IsPicked {
				picked = append(picked, e)
			}
		}
		want := exam.NumExamCodesNeeded
		if want > approvedCount {
			want = approvedCount
		}
		require.Len(t, picked, want, "exam %s", exam.ID)

		codes := make(map[string]bool)
		for _, e := range picked {
			assert.Equal(t, models.ExamEntryApproved, e.Status)
			require.NotEmpty(t, e.EntryCode)
			codes[e.EntryCode] = true
		}
		for p := 0; p < want; p++ {
			assert.True(t, codes[string(entryCodeLetters[p])],
				"exam %s missing code %c", exam.ID, entryCodeLetters[p])
		}
	}
}

func TestNotificationScheduleSpan(t *testing.T) {
	world, _, _ := runTestPipeline(t, 42)
	require.NotEmpty(t, world.Notifications)

	lo := testToday.AddDate(0, 0, -365)
	hi := testToday.AddDate(0, 0, 7)
	for _, n := range world.Notifications {
		assert.False(t, n.ScheduledDate.Before(lo), "notification %s scheduled too far back", n.ID)
		assert.False(t, n.ScheduledDate.After(hi), "notification %s scheduled too far ahead", n.ID)
		if n.ScheduledDate.Before(testToday) {
			assert.Contains(t, []models.NotificationStatus{models.NotificationSent, models.NotificationCancelled}, n.Status)
		} else {
			assert.Equal(t, models.NotificationPending, n.Status)
		}
	}
}

func TestCurriculumScopes(t *testing.T) {
	world, _, _ := runTestPipeline(t, 42)

	var generalIDs []string
	deptOf := make(map[string]string)
	for _, s := range world.Subjects {
		if s.IsGeneral {
			generalIDs = append(generalIDs, s.ID)
		} else {
			deptOf[s.ID] = s.DepartmentID
		}
	}

	subjectsOf := world.CurriculumSubjects()
	for _, cu := range world.Curricula {
		for _, id := range generalIDs {
			assert.True(t, subjectsOf[cu.ID][id], "curriculum %s misses a general subject", cu.Name)
		}
		for subjectID := range subjectsOf[cu.ID] {
			if dept, scoped := deptOf[subjectID]; scoped {
				assert.Equal(t, cu.DepartmentID, dept,
					"curriculum %s carries a subject scoped to another department", cu.Name)
			}
		}
	}
}

func TestTemporalGradesOnEnrollments(t *testing.T) {
	world, _, _ := runTestPipeline(t, 42)

	sectionByID := make(map[string]*models.CourseClass)
	for i := range world.CourseClasses {
		sectionByID[world.CourseClasses[i].ID] = &world.CourseClasses[i]
	}

	for _, e := range world.Enrollments {
		sem := world.semesterOfSection(sectionByID[e.CourseClassID])
		switch classifySemester(sem) {
		case phasePast:
			assert.Equal(t, models.EnrollmentCompleted, e.Status)
			assert.NotNil(t, e.Final)
		case phaseCurrent:
			assert.Equal(t, models.EnrollmentRegistered, e.Status)
			assert.Nil(t, e.Final)
		default:
			t.Fatalf("enrollment %s landed in a future semester", e.ID)
		}
	}
}

func TestPaymentIdentityAndPastCoverage(t *testing.T) {
	world, _, _ := runTestPipeline(t, 42)

	sumByPayment := make(map[string]int64)
	covered := make(map[string]bool)
	for _, d := range world.PaymentDetails {
		sumByPayment[d.PaymentEnrollmentID] += d.Amount
		covered[d.StudentEnrollmentID] = true
	}
	for _, p := range world.Payments {
		assert.Equal(t, p.Amount, sumByPayment[p.ID], "payment %s amount must equal its lines", p.ID)
	}

	sectionByID := make(map[string]*models.CourseClass)
	for i := range world.CourseClasses {
		sectionByID[world.CourseClasses[i].ID] = &world.CourseClasses[i]
	}
	for _, e := range world.Enrollments {
		sem := world.semesterOfSection(sectionByID[e.CourseClassID])
		if classifySemester(sem) == phasePast {
			assert.True(t, covered[e.ID], "past enrollment %s left unpaid", e.ID)
		}
	}
}

func TestCleanupPrunesEmptySections(t *testing.T) {
	world, _, _ := runTestPipeline(t, 42)

	for i := range world.CourseClasses {
		section := &world.CourseClasses[i]
		if section.EnrolledCount > 0 {
			continue
		}
		sem := world.semesterOfSection(section)
		assert.Equal(t, pinnedFallYear, sem.StartYear,
			"empty section %s outside the registration term survived cleanup", section.ID)
		assert.Equal(t, models.SemesterFall, sem.Type)
	}
}

func TestInsuranceWindows(t *testing.T) {
	world, _, _ := runTestPipeline(t, 42)
	require.NotEmpty(t, world.Insurances)

	yearByID := make(map[string]*models.AcademicYear)
	for i := range world.AcademicYears {
		yearByID[world.AcademicYears[i].ID] = &world.AcademicYears[i]
	}
	for _, ins := range world.Insurances {
		ay := yearByID[ins.AcademicYearID]
		require.NotNil(t, ay)
		assert.LessOrEqual(t, ay.StartYear, pinnedFallYear)
		assert.Equal(t, ay.EndYear <= pinnedFallYear-1, ins.ShouldHavePayment)
	}
}
