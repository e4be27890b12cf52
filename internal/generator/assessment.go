package generator

import (
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/edu-fixtures/internal/models"
)

const examPlacementAttempts = 20

// examSlotKey identifies one occupied (room, start time) exam sitting.
type examSlotKey struct {
	RoomID string
	Start  time.Time
}

var examFormats = []models.ExamFormat{
	models.ExamFormatMultipleChoice,
	models.ExamFormatEssay,
	models.ExamFormatPractical,
	models.ExamFormatOral,
	models.ExamFormatMixed,
}

var examEntryStatusWeights = []weightedChoice[models.ExamEntryStatus]{
	{Value: models.ExamEntryApproved, Weight: 0.80},
	{Value: models.ExamEntryPending, Weight: 0.15},
	{Value: models.ExamEntryRejected, Weight: 0.05},
}

// examStartHours are the wall-clock hours exam sittings begin at.
var examStartHours = [4]int{7, 9, 13, 15}

// entryCodeLetters maps picked entry order to the printed variant code.
const entryCodeLetters = "ABCDEFGHIJ"

// examNote joins up to three note templates, empty 20% of the time.
func (g *Generator) examNote() string {
	if len(g.cfg.NoteTemplates) == 0 || !chance(g.rng, 0.80) {
		return ""
	}
	n := 1 + g.rng.Intn(3)
	var parts []string
	for _, idx := range sampleIndices(g.rng, len(g.cfg.NoteTemplates), n) {
		parts = append(parts, g.cfg.NoteTemplates[idx])
	}
	return strings.Join(parts, "; ")
}

// examRooms prefers dedicated exam rooms, then lecture halls, then anything.
func (g *Generator) examRooms() []models.Room {
	var rooms []models.Room
	for _, r := range g.world.Rooms {
		if r.Type == models.RoomTypeExam || r.Type == models.RoomTypeLectureHall {
			rooms = append(rooms, r)
		}
	}
	if len(rooms) == 0 {
		rooms = g.world.Rooms
	}
	return rooms
}

// examDays lists the weekdays in the last two weeks of the semester.
func examDays(sem *models.Semester) []time.Time {
	var days []time.Time
	for i := 0; i < 14; i++ {
		day := daysBefore(sem.EndDate, i)
		if day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
			continue
		}
		days = append(days, day)
	}
	return days
}

// placeExamSitting samples (room, start) from the exam-week weekdays and
// the four fixed slot hours until conflict-free or the budget runs out.
func (g *Generator) placeExamSitting(sem *models.Semester, rooms []models.Room) (string, time.Time, bool) {
	days := examDays(sem)
	sample := func() (string, time.Time) {
		room := rooms[g.rng.Intn(len(rooms))]
		day := days[g.rng.Intn(len(days))]
		start := atClock(day, examStartHours[g.rng.Intn(len(examStartHours))], 0)
		return room.ID, start
	}

	for attempt := 0; attempt < examPlacementAttempts; attempt++ {
		roomID, start := sample()
		key := examSlotKey{RoomID: roomID, Start: start}
		if _, taken := g.examUsage[key]; taken {
			continue
		}
		g.examUsage[key] = roomID
		return roomID, start, false
	}
	roomID, start := sample()
	g.examUsage[examSlotKey{RoomID: roomID, Start: start}] = roomID
	return roomID, start, true
}

// buildAssessments defines one exam per course, collects instructor-submitted
// variants, picks the printed codes, and schedules per-section sittings.
func (g *Generator) buildAssessments() error {
	rooms := g.examRooms()

	sectionsByCourse := make(map[string][]int)
	for i, cc := range g.world.CourseClasses {
		sectionsByCourse[cc.CourseID] = append(sectionsByCourse[cc.CourseID], i)
	}

	for ci := range g.world.Courses {
		course := &g.world.Courses[ci]
		sem := g.world.SemesterOfCourse(course)

		examType := models.ExamTypeFinal
		if chance(g.rng, 0.25) {
			examType = models.ExamTypeMidterm
		}
		exam := models.Exam{
			ID:                 g.ids.Next(),
			CourseID:           course.ID,
			Format:             examFormats[g.rng.Intn(len(examFormats))],
			Type:               examType,
			NumExamCodesNeeded: 2 + g.rng.Intn(3),
			Note:               g.examNote(),
		}
		g.world.Exams = append(g.world.Exams, exam)

		// Each section's instructor may submit a variant of the exam.
		var approvedIdxs []int
		for _, si := range sectionsByCourse[course.ID] {
			if !chance(g.rng, 0.60) {
				continue
			}
			section := &g.world.CourseClasses[si]
			entry := models.ExamEntry{
				ID:           g.ids.Next(),
				ExamID:       exam.ID,
				InstructorID: section.InstructorID,
				Status:       pickWeighted(g.rng, examEntryStatusWeights),
				SubmittedAt:  randomTimeBetween(g.rng, sem.StartDate, daysBefore(sem.EndDate, 21)),
			}
			g.world.ExamEntries = append(g.world.ExamEntries, entry)
			if entry.Status == models.ExamEntryApproved {
				approvedIdxs = append(approvedIdxs, len(g.world.ExamEntries)-1)
			}
		}

		picked := exam.NumExamCodesNeeded
		if picked > len(approvedIdxs) {
			picked = len(approvedIdxs)
		}
		for p, idx := range sampleIndices(g.rng, len(approvedIdxs), picked) {
			entry := &g.world.ExamEntries[approvedIdxs[idx]]
			entry.IsPicked = true
			entry.EntryCode = string(entryCodeLetters[p])
		}

		for _, si := range sectionsByCourse[course.ID] {
			section := &g.world.CourseClasses[si]
			roomID, start, fallback := g.placeExamSitting(sem, rooms)
			sitting := models.ExamClass{
				ID:            g.ids.Next(),
				ExamID:        exam.ID,
				CourseClassID: section.ID,
				RoomID:        roomID,
				StartTime:     start,
				Fallback:      fallback,
			}
			if fallback {
				g.fallbackExams = append(g.fallbackExams, sitting.ID)
				g.sink.Warningf("no conflict-free exam slot for section %s after %d attempts, committed with conflicts", section.ID, examPlacementAttempts)
			}
			g.world.ExamClasses = append(g.world.ExamClasses, sitting)
		}
	}

	g.logger.Info("assessments generated",
		zap.Int("exams", len(g.world.Exams)),
		zap.Int("entries", len(g.world.ExamEntries)),
		zap.Int("sittings", len(g.world.ExamClasses)),
		zap.Int("fallbacks", len(g.fallbackExams)))

	return g.emitAssessments()
}

func (g *Generator) emitAssessments() error {
	examRows := make([][]any, 0, len(g.world.Exams))
	for _, e := range g.world.Exams {
		examRows = append(examRows, []any{
			e.ID, e.CourseID, string(e.Format), string(e.Type), e.NumExamCodesNeeded, e.Note,
		})
	}
	if err := g.sink.Insert("exams",
		[]string{"id", "course_id", "format", "type", "num_exam_codes_needed", "note"}, examRows); err != nil {
		return err
	}

	entryRows := make([][]any, 0, len(g.world.ExamEntries))
	for _, e := range g.world.ExamEntries {
		entryRows = append(entryRows, []any{
			e.ID, e.ExamID, e.InstructorID, string(e.Status), e.SubmittedAt, nullable(e.EntryCode), e.IsPicked,
		})
	}
	if len(entryRows) > 0 {
		if err := g.sink.Insert("exam_entries",
			[]string{"id", "exam_id", "instructor_id", "status", "submitted_at", "entry_code", "is_picked"}, entryRows); err != nil {
			return err
		}
	}

	sittingRows := make([][]any, 0, len(g.world.ExamClasses))
	for _, s := range g.world.ExamClasses {
		sittingRows = append(sittingRows, []any{s.ID, s.ExamID, s.CourseClassID, s.RoomID, s.StartTime})
	}
	if len(sittingRows) == 0 {
		return nil
	}
	return g.sink.Insert("exam_classes",
		[]string{"id", "exam_id", "course_class_id", "room_id", "start_time"}, sittingRows)
}
