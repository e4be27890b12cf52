package generator

import (
	"fmt"

	"github.com/noah-isme/edu-fixtures/internal/models"
	appErrors "github.com/noah-isme/edu-fixtures/pkg/errors"
)

// yearShareWeights is the curriculum distribution across study years 1..4.
var yearShareWeights = [4]float64{0.30, 0.25, 0.25, 0.20}

// yearCounts splits n subjects over the four study years by cumulative
// rounding of the 30/25/25/20 shares.
func yearCounts(n int) [4]int {
	var counts [4]int
	cum := 0.0
	assigned := 0
	for i, w := range yearShareWeights {
		cum += w * float64(n)
		target := int(cum + 0.5)
		counts[i] = target - assigned
		assigned = target
	}
	counts[3] += n - assigned
	return counts
}

// buildPrograms emits curricula, curriculum details and cohort classes.
func (g *Generator) buildPrograms() error {
	if len(g.world.Subjects) == 0 {
		return appErrors.Clone(appErrors.ErrPrecondition, "no subjects available before curriculum details")
	}

	var general []models.Subject
	byDept := make(map[string][]models.Subject)
	for _, s := range g.world.Subjects {
		if s.IsGeneral {
			general = append(general, s)
		} else {
			byDept[s.DepartmentID] = append(byDept[s.DepartmentID], s)
		}
	}

	curriculumByKey := make(map[string]string)
	for _, dept := range g.world.Departments {
		for year := g.cfg.FirstYear; year < g.cfg.LastYear; year++ {
			curriculum := models.Curriculum{
				ID:           g.ids.Next(),
				DepartmentID: dept.ID,
				AppliedYear:  year,
				Version:      fmt.Sprintf("v%d.0", year-g.cfg.FirstYear+1),
				Name:         fmt.Sprintf("%s-%d", dept.Code, year),
			}
			g.world.Curricula = append(g.world.Curricula, curriculum)
			curriculumByKey[fmt.Sprintf("%s-%d", dept.Code, year)] = curriculum.ID

			subjects := append(append([]models.Subject{}, general...), byDept[dept.ID]...)
			counts := yearCounts(len(subjects))
			cursor := 0
			for yearIdx := 1; yearIdx <= 4; yearIdx++ {
				perYear := counts[yearIdx-1]
				firstHalf := (perYear + 1) / 2
				for j := 0; j < perYear; j++ {
					semesterIdx := 1
					if j >= firstHalf {
						semesterIdx = 2
					}
					g.world.CurriculumDets = append(g.world.CurriculumDets, models.CurriculumDetail{
						ID:            g.ids.Next(),
						CurriculumID:  curriculum.ID,
						SubjectID:     subjects[cursor].ID,
						YearIndex:     yearIdx,
						SemesterIndex: semesterIdx,
					})
					cursor++
				}
			}
		}
	}

	instructorsByDept := make(map[string][]models.Instructor)
	for _, in := range g.world.Instructors {
		instructorsByDept[in.DepartmentID] = append(instructorsByDept[in.DepartmentID], in)
	}

	for _, c := range g.cfg.Classes {
		dept := g.departmentByCode(c.DepartmentCode)
		if dept == nil {
			return appErrors.Clone(appErrors.ErrConfig, fmt.Sprintf("class %s references unknown department %s", c.Code, c.DepartmentCode))
		}
		curriculumID, ok := curriculumByKey[fmt.Sprintf("%s-%d", c.DepartmentCode, c.StartYear)]
		if !ok {
			return appErrors.Clone(appErrors.ErrConfig, fmt.Sprintf("class %s starts in %d, outside the curriculum year range", c.Code, c.StartYear))
		}
		var systemID string
		for _, ts := range g.world.TrainingSystems {
			if ts.Code == c.TrainingSystemCode {
				systemID = ts.ID
			}
		}
		if systemID == "" {
			return appErrors.Clone(appErrors.ErrConfig, fmt.Sprintf("class %s references unknown training system %s", c.Code, c.TrainingSystemCode))
		}

		startAY := g.academicYearByStart(c.StartYear)
		if startAY == nil {
			return appErrors.Clone(appErrors.ErrConfig, fmt.Sprintf("class %s start year %d has no academic year", c.Code, c.StartYear))
		}
		endAY := g.academicYearByStart(c.StartYear + 3)
		if endAY == nil {
			endAY = &g.world.AcademicYears[len(g.world.AcademicYears)-1]
		}

		advisors := instructorsByDept[dept.ID]
		if len(advisors) == 0 {
			return appErrors.Clone(appErrors.ErrPrecondition, fmt.Sprintf("no instructors in department %s for class %s", dept.Code, c.Code))
		}
		advisor := advisors[g.rng.Intn(len(advisors))]

		g.world.Classes = append(g.world.Classes, models.Class{
			ID:               g.ids.Next(),
			Code:             c.Code,
			DepartmentID:     dept.ID,
			CurriculumID:     curriculumID,
			TrainingSystemID: systemID,
			StartYearID:      startAY.ID,
			EndYearID:        endAY.ID,
			StartYear:        c.StartYear,
			AdvisorID:        advisor.ID,
		})
	}

	curriculumRows := make([][]any, 0, len(g.world.Curricula))
	for _, cu := range g.world.Curricula {
		curriculumRows = append(curriculumRows, []any{cu.ID, cu.DepartmentID, cu.AppliedYear, cu.Version, cu.Name})
	}
	if err := g.sink.Insert("curriculums",
		[]string{"id", "department_id", "applied_year", "version", "name"}, curriculumRows); err != nil {
		return err
	}

	detailRows := make([][]any, 0, len(g.world.CurriculumDets))
	for _, det := range g.world.CurriculumDets {
		detailRows = append(detailRows, []any{det.ID, det.CurriculumID, det.SubjectID, det.YearIndex, det.SemesterIndex})
	}
	if err := g.sink.Insert("curriculum_details",
		[]string{"id", "curriculum_id", "subject_id", "year_index", "semester_index"}, detailRows); err != nil {
		return err
	}

	classRows := make([][]any, 0, len(g.world.Classes))
	for _, cl := range g.world.Classes {
		classRows = append(classRows, []any{
			cl.ID, cl.Code, cl.DepartmentID, cl.CurriculumID, cl.TrainingSystemID,
			cl.StartYearID, cl.EndYearID, cl.AdvisorID,
		})
	}
	return g.sink.Insert("classes",
		[]string{"id", "code", "department_id", "curriculum_id", "training_system_id", "start_academic_year_id", "end_academic_year_id", "advisor_id"},
		classRows)
}
