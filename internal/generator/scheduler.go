package generator

import (
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/edu-fixtures/internal/models"
)

const (
	maxSectionStudents = 50
	placementAttempts  = 100
)

// dayPairs is the fixed set of weekly day pairs a section can occupy.
var dayPairs = [8][2]time.Weekday{
	{time.Monday, time.Wednesday},
	{time.Tuesday, time.Thursday},
	{time.Monday, time.Thursday},
	{time.Tuesday, time.Friday},
	{time.Wednesday, time.Friday},
	{time.Monday, time.Tuesday},
	{time.Wednesday, time.Thursday},
	{time.Thursday, time.Friday},
}

// periodBlocks is the fixed set of daily period blocks.
var periodBlocks = [4][2]int{{1, 3}, {4, 6}, {7, 9}, {10, 12}}

// roomSlotKey identifies one occupied (room, day, period) triple.
type roomSlotKey struct {
	RoomID string
	Day    time.Weekday
	Period int
}

// enrollPairKey enforces (student, section) uniqueness.
type enrollPairKey struct {
	StudentID string
	SectionID string
}

// busyBlock is one weekly occupied window in a student's semester schedule.
type busyBlock struct {
	Day   time.Weekday
	Start int
	End   int
}

func (b busyBlock) overlaps(day time.Weekday, start, end int) bool {
	if b.Day != day {
		return false
	}
	return !(end < b.Start || start > b.End)
}

// teachingRooms returns the rooms sections may be placed into.
func (g *Generator) teachingRooms() []models.Room {
	var rooms []models.Room
	for _, r := range g.world.Rooms {
		switch r.Type {
		case models.RoomTypeClassroom, models.RoomTypeLectureHall, models.RoomTypeComputerLab, models.RoomTypeLaboratory:
			rooms = append(rooms, r)
		}
	}
	if len(rooms) == 0 {
		rooms = g.world.Rooms
	}
	return rooms
}

// eligibleClassesForCourse lists classes whose curriculum carries the
// course's subject and whose cohort started no later than the course runs.
func (g *Generator) eligibleClassesForCourse(course *models.Course, curriculumSubjects map[string]map[string]bool) []string {
	sem := g.world.SemesterOfCourse(course)
	var classIDs []string
	for _, class := range g.world.Classes {
		if class.StartYear > sem.StartYear {
			continue
		}
		if curriculumSubjects[class.CurriculumID][course.SubjectID] {
			classIDs = append(classIDs, class.ID)
		}
	}
	return classIDs
}

// placeSection samples (room, day pair, period block) until conflict-free or
// the attempt budget runs out, then falls back to an unchecked commit.
func (g *Generator) placeSection(sectionID string, rooms []models.Room) (string, [2]time.Weekday, [2]int, bool) {
	for attempt := 0; attempt < placementAttempts; attempt++ {
		room := rooms[g.rng.Intn(len(rooms))]
		pair := dayPairs[g.rng.Intn(len(dayPairs))]
		block := periodBlocks[g.rng.Intn(len(periodBlocks))]

		if g.slotTaken(room.ID, pair, block) {
			continue
		}
		g.claimSlots(sectionID, room.ID, pair, block)
		return room.ID, pair, block, false
	}

	// Fallback: commit without the conflict check.
	room := rooms[g.rng.Intn(len(rooms))]
	pair := dayPairs[g.rng.Intn(len(dayPairs))]
	block := periodBlocks[g.rng.Intn(len(periodBlocks))]
	g.claimSlots(sectionID, room.ID, pair, block)
	return room.ID, pair, block, true
}

func (g *Generator) slotTaken(roomID string, pair [2]time.Weekday, block [2]int) bool {
	for _, day := range pair {
		for p := block[0]; p <= block[1]; p++ {
			if _, taken := g.roomUsage[roomSlotKey{RoomID: roomID, Day: day, Period: p}]; taken {
				return true
			}
		}
	}
	return false
}

func (g *Generator) claimSlots(sectionID, roomID string, pair [2]time.Weekday, block [2]int) {
	for _, day := range pair {
		for p := block[0]; p <= block[1]; p++ {
			g.roomUsage[roomSlotKey{RoomID: roomID, Day: day, Period: p}] = sectionID
		}
	}
}

// pickSectionInstructor applies the fixed-instructor bias for the pinned
// fall semester, otherwise draws uniformly.
func (g *Generator) pickSectionInstructor(sem *models.Semester) string {
	if sem.StartYear == pinnedFallYear && sem.Type == models.SemesterFall && chance(g.rng, 0.30) {
		return g.cfg.Fixed.Instructor.ID
	}
	return g.world.Instructors[g.rng.Intn(len(g.world.Instructors))].ID
}

// buildOfferings sizes and places the sections of every course.
func (g *Generator) buildOfferings() error {
	rooms := g.teachingRooms()
	curriculumSubjects := g.world.CurriculumSubjects()
	studentsByClass := g.world.StudentsByClass()

	for i := range g.world.Courses {
		course := &g.world.Courses[i]
		sem := g.world.SemesterOfCourse(course)

		eligible := 0
		for _, classID := range g.eligibleClassesForCourse(course, curriculumSubjects) {
			eligible += len(studentsByClass[classID])
		}
		numSections := (eligible + maxSectionStudents - 1) / maxSectionStudents

		for s := 0; s < numSections; s++ {
			sectionID := g.ids.Next()
			roomID, pair, block, fallback := g.placeSection(sectionID, rooms)
			if fallback {
				g.fallbackSections = append(g.fallbackSections, sectionID)
				g.sink.Warningf("no conflict-free slot for section %s after %d attempts, committed with conflicts", sectionID, placementAttempts)
				g.logger.Warn("section placed on fallback path",
					zap.String("section", sectionID), zap.String("course", course.ID))
			}

			section := models.CourseClass{
				ID:                    sectionID,
				CourseID:              course.ID,
				InstructorID:          g.pickSectionInstructor(sem),
				RoomID:                roomID,
				Code:                  fmt.Sprintf("CC-%04d", len(g.world.CourseClasses)+1),
				DateStart:             sem.StartDate,
				DateEnd:               sem.EndDate,
				MaxStudents:           maxSectionStudents,
				Days:                  pair,
				StartPeriod:           block[0],
				EndPeriod:             block[1],
				Fallback:              fallback,
				GradeSubmissionStatus: models.GradeSubmissionDraft,
			}
			g.applyGradeSubmission(&section, sem)
			g.world.CourseClasses = append(g.world.CourseClasses, section)
		}
	}

	g.logger.Info("sections placed",
		zap.Int("sections", len(g.world.CourseClasses)),
		zap.Int("fallbacks", len(g.fallbackSections)))
	return nil
}

// courseIsFuture drops offerings students cannot register for yet.
func courseIsFuture(sem *models.Semester) bool {
	if sem.StartYear > pinnedFallYear {
		return true
	}
	return sem.StartYear == pinnedFallYear && sem.Type == models.SemesterSummer
}

// buildEnrollments walks every student through their eligible courses and
// assigns the first section that keeps their semester schedule conflict-free.
func (g *Generator) buildEnrollments() error {
	curriculumSubjects := g.world.CurriculumSubjects()

	classByID := make(map[string]*models.Class)
	for i := range g.world.Classes {
		classByID[g.world.Classes[i].ID] = &g.world.Classes[i]
	}
	sectionsByCourse := make(map[string][]int)
	for i, cc := range g.world.CourseClasses {
		sectionsByCourse[cc.CourseID] = append(sectionsByCourse[cc.CourseID], i)
	}

	for si := range g.world.Students {
		student := &g.world.Students[si]
		class := classByID[student.ClassID]
		if class == nil {
			continue
		}

		courses := g.eligibleCoursesForStudent(class, curriculumSubjects)
		for _, ci := range courses {
			course := &g.world.Courses[ci]
			sem := g.world.SemesterOfCourse(course)
			if g.assignStudentToCourse(student, course, sem, sectionsByCourse[course.ID]) {
				continue
			}
			g.slotMisses++
			if g.isFixedStudent(student.ID) {
				g.logger.Info("test student skipped course: no conflict-free slot",
					zap.String("course", course.ID),
					zap.String("semester", string(sem.Type)),
					zap.Int("year", sem.StartYear))
			}
		}
	}

	g.logger.Info("enrollments generated",
		zap.Int("enrollments", len(g.world.Enrollments)),
		zap.Int("slot_misses", g.slotMisses))

	return g.emitSections()
}

// eligibleCoursesForStudent returns course indices ordered by
// (startYear, fall < spring < summer).
func (g *Generator) eligibleCoursesForStudent(class *models.Class, curriculumSubjects map[string]map[string]bool) []int {
	var courses []int
	for i := range g.world.Courses {
		course := &g.world.Courses[i]
		sem := g.world.SemesterOfCourse(course)
		if courseIsFuture(sem) {
			continue
		}
		if class.StartYear > sem.StartYear {
			continue
		}
		if !curriculumSubjects[class.CurriculumID][course.SubjectID] {
			continue
		}
		courses = append(courses, i)
	}
	sort.SliceStable(courses, func(a, b int) bool {
		semA := g.world.SemesterOfCourse(&g.world.Courses[courses[a]])
		semB := g.world.SemesterOfCourse(&g.world.Courses[courses[b]])
		if semA.StartYear != semB.StartYear {
			return semA.StartYear < semB.StartYear
		}
		return semA.Type.SeasonRank() < semB.Type.SeasonRank()
	})
	return courses
}

// assignStudentToCourse tries each section in order and commits the first
// that passes dedupe, schedule and capacity checks.
func (g *Generator) assignStudentToCourse(student *models.Student, course *models.Course, sem *models.Semester, sectionIdxs []int) bool {
	for _, idx := range sectionIdxs {
		section := &g.world.CourseClasses[idx]
		if g.enrolledPairs[enrollPairKey{StudentID: student.ID, SectionID: section.ID}] {
			continue
		}
		if section.EnrolledCount >= section.MaxStudents {
			continue
		}
		if g.studentHasConflict(student.ID, sem.ID, section) {
			continue
		}

		g.enrolledPairs[enrollPairKey{StudentID: student.ID, SectionID: section.ID}] = true
		section.EnrolledCount++
		g.recordStudentBusy(student.ID, sem.ID, section)

		enrollment := models.StudentEnrollment{
			ID:            g.ids.Next(),
			StudentID:     student.ID,
			CourseClassID: section.ID,
			EnrolledAt:    g.enrollmentDate(sem),
		}
		g.applyEnrollmentState(&enrollment, sem)
		g.world.Enrollments = append(g.world.Enrollments, enrollment)
		return true
	}
	return false
}

func (g *Generator) studentHasConflict(studentID, semesterID string, section *models.CourseClass) bool {
	for _, block := range g.studentBusy[studentID][semesterID] {
		for _, day := range section.Days {
			if block.overlaps(day, section.StartPeriod, section.EndPeriod) {
				return true
			}
		}
	}
	return false
}

func (g *Generator) recordStudentBusy(studentID, semesterID string, section *models.CourseClass) {
	if g.studentBusy[studentID] == nil {
		g.studentBusy[studentID] = make(map[string][]busyBlock)
	}
	for _, day := range section.Days {
		g.studentBusy[studentID][semesterID] = append(g.studentBusy[studentID][semesterID], busyBlock{
			Day:   day,
			Start: section.StartPeriod,
			End:   section.EndPeriod,
		})
	}
}

// enrollmentDate samples a registration instant inside the semester window.
func (g *Generator) enrollmentDate(sem *models.Semester) time.Time {
	to := sem.RegistrationEnd
	if to.After(g.today) {
		to = g.today
	}
	if to.Before(sem.RegistrationStart) {
		return sem.RegistrationStart
	}
	return randomTimeBetween(g.rng, sem.RegistrationStart, to)
}

// emitSections writes the section rows (enrolled counts now final) followed
// by the enrollment rows that reference them.
func (g *Generator) emitSections() error {
	sectionRows := make([][]any, 0, len(g.world.CourseClasses))
	for _, cc := range g.world.CourseClasses {
		sectionRows = append(sectionRows, []any{
			cc.ID, cc.CourseID, cc.InstructorID, cc.RoomID, cc.Code,
			cc.DateStart, cc.DateEnd, cc.MaxStudents, cc.EnrolledCount,
			int(cc.Days[0]), int(cc.Days[1]), cc.StartPeriod, cc.EndPeriod,
			string(cc.GradeSubmissionStatus), cc.GradeSubmittedAt, cc.GradeApprovedAt,
			nullable(cc.GradeApproverID), cc.GradeSubmitNote, cc.GradeApprovalNote,
		})
	}
	if err := g.sink.Insert("course_classes",
		[]string{"id", "course_id", "instructor_id", "room_id", "code",
			"date_start", "date_end", "max_students", "enrolled_count",
			"day_of_week_1", "day_of_week_2", "start_period", "end_period",
			"grade_submission_status", "grade_submitted_at", "grade_approved_at",
			"grade_approver_id", "grade_submit_note", "grade_approval_note"},
		sectionRows); err != nil {
		return err
	}

	enrollmentRows := make([][]any, 0, len(g.world.Enrollments))
	for _, e := range g.world.Enrollments {
		enrollmentRows = append(enrollmentRows, []any{
			e.ID, e.StudentID, e.CourseClassID, e.EnrolledAt,
			string(e.Status), e.Attendance, e.Midterm, e.Final,
		})
	}
	return g.sink.Insert("student_enrollments",
		[]string{"id", "student_id", "course_class_id", "enrolled_at", "status", "attendance_score", "midterm_score", "final_score"},
		enrollmentRows)
}

// nullable renders empty strings as NULL-bound values.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
