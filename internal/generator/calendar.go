package generator

import (
	"fmt"
	"time"

	"github.com/noah-isme/edu-fixtures/internal/models"
)

// Hard calendar pins. The fall 2025 registration window must always contain
// the reference date so downstream registration flows are testable.
var (
	fall2025Anchor   = time.Date(2025, 11, 24, 0, 0, 0, 0, time.UTC)
	fall2025RegStart = time.Date(2025, 11, 8, 0, 0, 0, 0, time.UTC)
	summer2024End    = time.Date(2025, 11, 20, 0, 0, 0, 0, time.UTC)
)

const pinnedFallYear = 2025

// mondayOnOrAfter snaps forward to Monday.
func mondayOnOrAfter(t time.Time) time.Time {
	for t.Weekday() != time.Monday {
		t = t.AddDate(0, 0, 1)
	}
	return t
}

// sundayOnOrAfter snaps forward to Sunday.
func sundayOnOrAfter(t time.Time) time.Time {
	for t.Weekday() != time.Sunday {
		t = t.AddDate(0, 0, 1)
	}
	return t
}

// mondayOnOrBefore snaps backward to Monday.
func mondayOnOrBefore(t time.Time) time.Time {
	for t.Weekday() != time.Monday {
		t = t.AddDate(0, 0, -1)
	}
	return t
}

// semesterAnchor returns the nominal (pre-snap) start and end of a semester.
func semesterAnchor(startYear int, semType models.SemesterType) (time.Time, time.Time) {
	switch semType {
	case models.SemesterFall:
		return time.Date(startYear, 9, 1, 0, 0, 0, 0, time.UTC),
			time.Date(startYear, 12, 20, 0, 0, 0, 0, time.UTC)
	case models.SemesterSpring:
		return time.Date(startYear+1, 1, 15, 0, 0, 0, 0, time.UTC),
			time.Date(startYear+1, 5, 15, 0, 0, 0, 0, time.UTC)
	default:
		return time.Date(startYear+1, 6, 1, 0, 0, 0, 0, time.UTC),
			time.Date(startYear+1, 8, 15, 0, 0, 0, 0, time.UTC)
	}
}

// registrationWindow derives the default window for a semester start.
func registrationWindow(start time.Time) (time.Time, time.Time) {
	regEnd := start.AddDate(0, 0, -1)
	regStart := mondayOnOrBefore(start.AddDate(0, 0, -12))
	if regEnd.Sub(regStart) < 7*24*time.Hour {
		regStart = regStart.AddDate(0, 0, -7)
	}
	return regStart, regEnd
}

// buildSemester derives one semester with snapped dates and its window.
func buildSemester(yearID string, startYear int, semType models.SemesterType, today time.Time) models.Semester {
	anchorStart, anchorEnd := semesterAnchor(startYear, semType)

	start := mondayOnOrAfter(anchorStart)
	end := sundayOnOrAfter(anchorEnd)

	if startYear == pinnedFallYear && semType == models.SemesterFall {
		return buildPinnedFall(yearID, startYear, today)
	}
	if startYear == pinnedFallYear-1 && semType == models.SemesterSummer {
		end = sundayOnOrAfter(summer2024End)
	}

	regStart, regEnd := registrationWindow(start)
	return models.Semester{
		AcademicYearID:    yearID,
		Type:              semType,
		StartYear:         startYear,
		StartDate:         start,
		EndDate:           end,
		RegistrationStart: regStart,
		RegistrationEnd:   regEnd,
	}
}

// buildPinnedFall derives the pinned fall semester, stretching the
// registration window so that it always contains today.
func buildPinnedFall(yearID string, startYear int, today time.Time) models.Semester {
	start := mondayOnOrAfter(fall2025Anchor)
	regStart := fall2025RegStart
	regEnd := start.AddDate(0, 0, -1)

	if today.Before(regStart) {
		regStart = today
	}
	if today.After(regEnd) {
		regEnd = today
		start = mondayOnOrAfter(regEnd.AddDate(0, 0, 1))
	}
	end := sundayOnOrAfter(start.AddDate(0, 0, 15*7))

	return models.Semester{
		AcademicYearID:    yearID,
		Type:              models.SemesterFall,
		StartYear:         startYear,
		StartDate:         start,
		EndDate:           end,
		RegistrationStart: regStart,
		RegistrationEnd:   regEnd,
	}
}

// buildCalendar emits academic years and their three semesters each.
func (g *Generator) buildCalendar() error {
	for year := g.cfg.FirstYear; year < g.cfg.LastYear; year++ {
		ay := models.AcademicYear{
			ID:        g.ids.Next(),
			StartYear: year,
			EndYear:   year + 1,
			Name:      fmt.Sprintf("%d-%d", year, year+1),
		}
		g.world.AcademicYears = append(g.world.AcademicYears, ay)

		for _, semesterType := range []models.SemesterType{models.SemesterFall, models.SemesterSpring, models.SemesterSummer} {
			sem := buildSemester(ay.ID, year, semesterType, g.today)
			sem.ID = g.ids.Next()
			g.world.Semesters = append(g.world.Semesters, sem)
		}
	}

	yearRows := make([][]any, 0, len(g.world.AcademicYears))
	for _, ay := range g.world.AcademicYears {
		yearRows = append(yearRows, []any{ay.ID, ay.StartYear, ay.EndYear, ay.Name})
	}
	if err := g.sink.Insert("academic_years", []string{"id", "start_year", "end_year", "name"}, yearRows); err != nil {
		return err
	}

	semRows := make([][]any, 0, len(g.world.Semesters))
	for _, sem := range g.world.Semesters {
		semRows = append(semRows, []any{
			sem.ID, sem.AcademicYearID, string(sem.Type),
			sem.StartDate, sem.EndDate, sem.RegistrationStart, sem.RegistrationEnd,
		})
	}
	return g.sink.Insert("semesters",
		[]string{"id", "academic_year_id", "type", "start_date", "end_date", "registration_start", "registration_end"},
		semRows)
}
