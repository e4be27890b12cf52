package generator

import (
	"math/rand"

	"github.com/google/uuid"

	"github.com/noah-isme/edu-fixtures/internal/models"
)

// World is the in-memory catalog of every generated entity, threaded
// through the phase pipeline. Later phases read what earlier phases
// produced; no phase reaches forward.
type World struct {
	Roles           []models.Role
	Permissions     []models.Permission
	RolePermissions []models.RolePermission

	Persons     []models.Person
	Accounts    []models.Account
	Instructors []models.Instructor
	Admins      []models.Admin
	Students    []models.Student

	Faculties       []models.Faculty
	Departments     []models.Department
	TrainingSystems []models.TrainingSystem
	Curricula       []models.Curriculum
	CurriculumDets  []models.CurriculumDetail
	Subjects        []models.Subject
	Classes         []models.Class

	AcademicYears []models.AcademicYear
	Semesters     []models.Semester

	Buildings       []models.Building
	Rooms           []models.Room
	RoomAmenities   []models.RoomAmenity
	AmenityMappings []models.RoomAmenityMapping

	Courses       []models.Course
	CourseClasses []models.CourseClass
	Enrollments   []models.StudentEnrollment

	Exams       []models.Exam
	ExamEntries []models.ExamEntry
	ExamClasses []models.ExamClass

	Payments       []models.PaymentEnrollment
	PaymentDetails []models.PaymentEnrollmentDetail
	Insurances     []models.StudentHealthInsurance

	Notifications []models.NotificationSchedule
	Reads         []models.NotificationUserRead
	Documents     []models.Document
	Changes       []models.ScheduleChange
	Notes         []models.Note
	Regulations   []models.Regulation
	Themes        []models.ThemeConfiguration
}

// NewWorld returns an empty catalog.
func NewWorld() *World {
	return &World{}
}

// SemesterByID resolves a semester from the catalog.
func (w *World) SemesterByID(id string) *models.Semester {
	for i := range w.Semesters {
		if w.Semesters[i].ID == id {
			return &w.Semesters[i]
		}
	}
	return nil
}

// SubjectByID resolves a subject from the catalog.
func (w *World) SubjectByID(id string) *models.Subject {
	for i := range w.Subjects {
		if w.Subjects[i].ID == id {
			return &w.Subjects[i]
		}
	}
	return nil
}

// CourseByID resolves a course from the catalog.
func (w *World) CourseByID(id string) *models.Course {
	for i := range w.Courses {
		if w.Courses[i].ID == id {
			return &w.Courses[i]
		}
	}
	return nil
}

// SemesterOfCourse resolves the semester a course runs in.
func (w *World) SemesterOfCourse(c *models.Course) *models.Semester {
	return w.SemesterByID(c.SemesterID)
}

// CurriculumSubjects maps curriculum id to the set of subject ids it contains.
func (w *World) CurriculumSubjects() map[string]map[string]bool {
	result := make(map[string]map[string]bool)
	for _, det := range w.CurriculumDets {
		if result[det.CurriculumID] == nil {
			result[det.CurriculumID] = make(map[string]bool)
		}
		result[det.CurriculumID][det.SubjectID] = true
	}
	return result
}

// StudentsByClass groups student indices by class id.
func (w *World) StudentsByClass() map[string][]int {
	result := make(map[string][]int)
	for i, st := range w.Students {
		result[st.ClassID] = append(result[st.ClassID], i)
	}
	return result
}

// IdFactory issues identifiers. Fresh ids are UUIDs drawn from the seeded
// generator rng so identical seeds reproduce identical scripts; fixed test
// accounts keep the literal ids given in the spec file.
type IdFactory struct {
	rng *rand.Rand
}

// NewIdFactory builds an id factory over the generator rng.
func NewIdFactory(rng *rand.Rand) *IdFactory {
	return &IdFactory{rng: rng}
}

// Next returns a fresh UUID string.
func (f *IdFactory) Next() string {
	var b [16]byte
	f.rng.Read(b[:]) //nolint:errcheck // rand.Rand.Read never fails
	b[6] = (b[6] & 0x0f) | 0x40
	b[8] = (b[8] & 0x3f) | 0x80
	id, err := uuid.FromBytes(b[:])
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
