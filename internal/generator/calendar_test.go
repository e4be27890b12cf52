package generator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/edu-fixtures/internal/models"
)

func TestWeekdaySnapping(t *testing.T) {
	// 2024-09-01 is a Sunday.
	sunday := time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2024, 9, 2, 0, 0, 0, 0, time.UTC), mondayOnOrAfter(sunday))
	assert.Equal(t, sunday, sundayOnOrAfter(sunday))
	assert.Equal(t, time.Date(2024, 8, 26, 0, 0, 0, 0, time.UTC), mondayOnOrBefore(sunday))

	monday := time.Date(2024, 9, 2, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, monday, mondayOnOrAfter(monday))
	assert.Equal(t, monday, mondayOnOrBefore(monday))
}

func TestBuildSemesterSnapsAndWindow(t *testing.T) {
	today := time.Date(2025, 11, 15, 0, 0, 0, 0, time.UTC)

	for _, semType := range []models.SemesterType{models.SemesterFall, models.SemesterSpring, models.SemesterSummer} {
		for year := 2021; year <= 2023; year++ {
			sem := buildSemester("ay", year, semType, today)

			assert.Equal(t, time.Monday, sem.StartDate.Weekday(), "%s %d start", semType, year)
			assert.Equal(t, time.Sunday, sem.EndDate.Weekday(), "%s %d end", semType, year)
			assert.Equal(t, sem.StartDate.AddDate(0, 0, -1), sem.RegistrationEnd, "%s %d reg end", semType, year)
			assert.Equal(t, time.Monday, sem.RegistrationStart.Weekday(), "%s %d reg start", semType, year)
			assert.GreaterOrEqual(t,
				sem.RegistrationEnd.Sub(sem.RegistrationStart), 7*24*time.Hour,
				"%s %d window width", semType, year)
		}
	}
}

func TestBuildSemesterSummerPin(t *testing.T) {
	today := time.Date(2025, 11, 15, 0, 0, 0, 0, time.UTC)
	sem := buildSemester("ay", 2024, models.SemesterSummer, today)

	// 2025-11-20 is a Thursday; snapped forward to Sunday 2025-11-23.
	assert.Equal(t, time.Date(2025, 11, 23, 0, 0, 0, 0, time.UTC), sem.EndDate)
}

func TestPinnedFallContainsToday(t *testing.T) {
	cases := []struct {
		name  string
		today time.Time
	}{
		{"inside the window", time.Date(2025, 11, 15, 0, 0, 0, 0, time.UTC)},
		{"before the window", time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)},
		{"after the window", time.Date(2025, 12, 10, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sem := buildSemester("ay", 2025, models.SemesterFall, tc.today)

			require.Equal(t, models.SemesterFall, sem.Type)
			assert.False(t, tc.today.Before(sem.RegistrationStart), "regStart <= today")
			assert.False(t, tc.today.After(sem.RegistrationEnd), "today <= regEnd")
			assert.Equal(t, time.Monday, sem.StartDate.Weekday())
			assert.Equal(t, time.Sunday, sem.EndDate.Weekday())
			assert.True(t, sem.RegistrationEnd.Before(sem.StartDate))
		})
	}
}

func TestPinnedFallNominalDates(t *testing.T) {
	today := time.Date(2025, 11, 15, 0, 0, 0, 0, time.UTC)
	sem := buildSemester("ay", 2025, models.SemesterFall, today)

	assert.Equal(t, time.Date(2025, 11, 24, 0, 0, 0, 0, time.UTC), sem.StartDate)
	assert.Equal(t, time.Date(2025, 11, 8, 0, 0, 0, 0, time.UTC), sem.RegistrationStart)
	assert.Equal(t, time.Date(2025, 11, 23, 0, 0, 0, 0, time.UTC), sem.RegistrationEnd)
}
