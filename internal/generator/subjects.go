package generator

import (
	"fmt"

	"github.com/noah-isme/edu-fixtures/internal/models"
	appErrors "github.com/noah-isme/edu-fixtures/pkg/errors"
)

// buildSubjects emits general and department-scoped subjects.
func (g *Generator) buildSubjects() error {
	for _, s := range g.cfg.Subjects {
		subject := models.Subject{
			ID:            g.ids.Next(),
			Code:          s.Code,
			Name:          s.Name,
			Credits:       s.Credits,
			TheoryHours:   s.TheoryHours,
			PracticeHours: s.PracticeHours,
		}
		if s.Scope == "general" {
			subject.IsGeneral = true
		} else {
			dept := g.departmentByCode(s.Scope)
			if dept == nil {
				return appErrors.Clone(appErrors.ErrPrecondition, fmt.Sprintf("subject %s references unknown department %s", s.Code, s.Scope))
			}
			subject.DepartmentID = dept.ID
		}
		g.world.Subjects = append(g.world.Subjects, subject)
	}

	rows := make([][]any, 0, len(g.world.Subjects))
	for _, s := range g.world.Subjects {
		var deptID any
		if s.DepartmentID != "" {
			deptID = s.DepartmentID
		}
		rows = append(rows, []any{s.ID, s.Code, s.Name, s.Credits, s.TheoryHours, s.PracticeHours, s.IsGeneral, deptID})
	}
	return g.sink.Insert("subjects",
		[]string{"id", "code", "name", "credits", "theory_hours", "practice_hours", "is_general", "department_id"},
		rows)
}

// buildCourses samples which subjects are offered in each semester.
func (g *Generator) buildCourses() error {
	if len(g.world.Subjects) == 0 {
		return appErrors.Clone(appErrors.ErrPrecondition, "no subjects available before course sampling")
	}
	for i := range g.world.Semesters {
		sem := &g.world.Semesters[i]
		rate := g.cfg.OfferingRateMain
		if sem.Type == models.SemesterSummer {
			rate = g.cfg.OfferingRateSummer
		}
		count := int(rate * float64(len(g.world.Subjects)))
		if count == 0 {
			count = 1
		}
		for _, idx := range sampleIndices(g.rng, len(g.world.Subjects), count) {
			g.world.Courses = append(g.world.Courses, models.Course{
				ID:           g.ids.Next(),
				SubjectID:    g.world.Subjects[idx].ID,
				SemesterID:   sem.ID,
				FeePerCredit: g.cfg.FeePerCredit,
			})
		}
	}

	rows := make([][]any, 0, len(g.world.Courses))
	for _, c := range g.world.Courses {
		rows = append(rows, []any{c.ID, c.SubjectID, c.SemesterID, c.FeePerCredit})
	}
	return g.sink.Insert("courses",
		[]string{"id", "subject_id", "semester_id", "fee_per_credit"}, rows)
}
