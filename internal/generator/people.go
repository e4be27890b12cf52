package generator

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/edu-fixtures/internal/media"
	"github.com/noah-isme/edu-fixtures/internal/models"
	appErrors "github.com/noah-isme/edu-fixtures/pkg/errors"
)

var studentStatusWeights = []weightedChoice[models.StudentStatus]{
	{Value: models.StudentStatusActive, Weight: 0.80},
	{Value: models.StudentStatusGraduated, Weight: 0.10},
	{Value: models.StudentStatusSuspended, Weight: 0.05},
	{Value: models.StudentStatusDroppedOut, Weight: 0.03},
	{Value: models.StudentStatusInactive, Weight: 0.02},
}

var instructorDegrees = []string{"ThS.", "TS.", "PGS.TS.", "GS.TS."}

// newPerson synthesises a person with a unique email.
func (g *Generator) newPerson(minBirthYear, maxBirthYear int) models.Person {
	gender := models.GenderMale
	if chance(g.rng, 0.5) {
		gender = models.GenderFemale
	}

	pools := g.cfg.Names
	last := pools.Last[g.rng.Intn(len(pools.Last))]
	var first string
	if gender == models.GenderMale {
		first = pools.Male[g.rng.Intn(len(pools.Male))]
	} else {
		first = pools.Female[g.rng.Intn(len(pools.Female))]
	}
	middle := pools.Middle[string(gender)][g.rng.Intn(len(pools.Middle[string(gender)]))]

	birthYear := minBirthYear + g.rng.Intn(maxBirthYear-minBirthYear+1)
	dob := time.Date(birthYear, time.Month(1+g.rng.Intn(12)), 1+g.rng.Intn(28), 0, 0, 0, 0, time.UTC)

	base := emailLocalPart(first, last)
	g.emailSeq[base]++
	email := fmt.Sprintf("%s%d@edu.example.vn", base, g.emailSeq[base])

	return models.Person{
		ID:              g.ids.Next(),
		FirstName:       first,
		LastName:        strings.TrimSpace(last + " " + middle),
		DateOfBirth:     dob,
		Gender:          gender,
		Email:           email,
		PhoneNumber:     fmt.Sprintf("09%08d", g.rng.Intn(100000000)),
		CitizenID:       fmt.Sprintf("%012d", g.rng.Int63n(1000000000000)),
		Address:         fmt.Sprintf("%d đường số %d, TP.HCM", 1+g.rng.Intn(400), 1+g.rng.Intn(30)),
		ProfileImageURL: g.media.PickURL(media.ProfilePics),
	}
}

func emailLocalPart(first, last string) string {
	fold := func(s string) string {
		s = strings.ToLower(s)
		replacer := strings.NewReplacer(
			"á", "a", "à", "a", "ả", "a", "ã", "a", "ạ", "a", "ă", "a", "â", "a",
			"é", "e", "è", "e", "ẻ", "e", "ẽ", "e", "ẹ", "e", "ê", "e",
			"í", "i", "ì", "i", "ỉ", "i", "ĩ", "i", "ị", "i",
			"ó", "o", "ò", "o", "ỏ", "o", "õ", "o", "ọ", "o", "ô", "o", "ơ", "o",
			"ú", "u", "ù", "u", "ủ", "u", "ũ", "u", "ụ", "u", "ư", "u",
			"ý", "y", "ỳ", "y", "ỷ", "y", "ỹ", "y", "ỵ", "y",
			"đ", "d", " ", "",
		)
		return replacer.Replace(s)
	}
	return fold(first) + "." + fold(strings.Fields(last)[0])
}

// newAccount attaches credentials to a person.
func (g *Generator) newAccount(person *models.Person, username string, tag models.RoleTag) (models.Account, error) {
	role := g.roleByName(string(tag))
	if role == nil {
		return models.Account{}, appErrors.Clone(appErrors.ErrPrecondition, fmt.Sprintf("role %s not built before accounts", tag))
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(g.cfg.Fixed.Password), bcrypt.MinCost)
	if err != nil {
		return models.Account{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Severity, "bcrypt failed")
	}
	return models.Account{
		ID:           g.ids.Next(),
		PersonID:     person.ID,
		Username:     username,
		PasswordHash: string(hash),
		RoleID:       role.ID,
		RoleTag:      tag,
	}, nil
}

// buildStaff emits the fixed test accounts plus regular instructors and admins.
// The fixed student's person and account are created here; the student record
// itself lands with the cohorts once classes exist.
func (g *Generator) buildStaff() error {
	fixed := []struct {
		account FixedAccount
		tag     models.RoleTag
	}{
		{g.cfg.Fixed.Student, models.RoleTagStudent},
		{g.cfg.Fixed.Instructor, models.RoleTagInstructor},
		{g.cfg.Fixed.Admin, models.RoleTagAdmin},
	}
	for _, fx := range fixed {
		person := g.newPerson(1985, 2004)
		person.ID = fx.account.ID
		person.Email = fx.account.Email
		names := strings.Fields(fx.account.FullName)
		if len(names) > 1 {
			person.FirstName = names[len(names)-1]
			person.LastName = strings.Join(names[:len(names)-1], " ")
		}
		g.world.Persons = append(g.world.Persons, person)

		account, err := g.newAccount(&person, fx.account.Username, fx.tag)
		if err != nil {
			return err
		}
		g.world.Accounts = append(g.world.Accounts, account)

		switch fx.tag {
		case models.RoleTagInstructor:
			g.world.Instructors = append(g.world.Instructors, models.Instructor{
				ID:           fx.account.ID,
				PersonID:     person.ID,
				DepartmentID: g.world.Departments[0].ID,
				Degree:       "TS.",
			})
		case models.RoleTagAdmin:
			g.world.Admins = append(g.world.Admins, models.Admin{ID: fx.account.ID, PersonID: person.ID})
		}
	}

	for _, dept := range g.world.Departments {
		for i := 0; i < g.cfg.InstructorsPerDepartment; i++ {
			person := g.newPerson(1970, 1995)
			g.world.Persons = append(g.world.Persons, person)
			account, err := g.newAccount(&person, strings.Split(person.Email, "@")[0], models.RoleTagInstructor)
			if err != nil {
				return err
			}
			g.world.Accounts = append(g.world.Accounts, account)
			g.world.Instructors = append(g.world.Instructors, models.Instructor{
				ID:           g.ids.Next(),
				PersonID:     person.ID,
				DepartmentID: dept.ID,
				Degree:       instructorDegrees[g.rng.Intn(len(instructorDegrees))],
			})
		}
	}

	// Staff rows land now so classes can reference advisors; student rows
	// follow after the cohorts exist.
	g.emittedPersons = len(g.world.Persons)
	g.emittedAccounts = len(g.world.Accounts)
	if err := g.emitPersons(g.world.Persons); err != nil {
		return err
	}
	if err := g.emitAccounts(g.world.Accounts); err != nil {
		return err
	}

	instructorRows := make([][]any, 0, len(g.world.Instructors))
	for _, in := range g.world.Instructors {
		instructorRows = append(instructorRows, []any{in.ID, in.PersonID, in.DepartmentID, in.Degree})
	}
	if err := g.sink.Insert("instructors",
		[]string{"id", "person_id", "department_id", "degree"}, instructorRows); err != nil {
		return err
	}

	adminRows := make([][]any, 0, len(g.world.Admins))
	for _, ad := range g.world.Admins {
		adminRows = append(adminRows, []any{ad.ID, ad.PersonID})
	}
	return g.sink.Insert("admins", []string{"id", "person_id"}, adminRows)
}

// buildStudents fills every class with students and emits all person-family rows.
func (g *Generator) buildStudents() error {
	if len(g.world.Classes) == 0 {
		return appErrors.Clone(appErrors.ErrPrecondition, "no classes built before students")
	}

	for classIdx := range g.world.Classes {
		class := &g.world.Classes[classIdx]
		for i := 0; i < g.cfg.StudentsPerClass; i++ {
			person := g.newPerson(class.StartYear-20, class.StartYear-17)
			g.world.Persons = append(g.world.Persons, person)
			account, err := g.newAccount(&person, strings.Split(person.Email, "@")[0], models.RoleTagStudent)
			if err != nil {
				return err
			}
			g.world.Accounts = append(g.world.Accounts, account)
			g.world.Students = append(g.world.Students, models.Student{
				ID:       g.ids.Next(),
				PersonID: person.ID,
				Code:     fmt.Sprintf("%d%04d", class.StartYear%100, len(g.world.Students)+1),
				ClassID:  class.ID,
				Status:   pickWeighted(g.rng, studentStatusWeights),
			})
		}
	}

	// The fixed test student joins the first class deterministically active.
	g.world.Students = append(g.world.Students, models.Student{
		ID:       g.cfg.Fixed.Student.ID,
		PersonID: g.cfg.Fixed.Student.ID,
		Code:     "TEST0001",
		ClassID:  g.world.Classes[0].ID,
		Status:   models.StudentStatusActive,
	})

	if err := g.emitPersons(g.world.Persons[g.emittedPersons:]); err != nil {
		return err
	}
	if err := g.emitAccounts(g.world.Accounts[g.emittedAccounts:]); err != nil {
		return err
	}
	g.emittedPersons = len(g.world.Persons)
	g.emittedAccounts = len(g.world.Accounts)

	studentRows := make([][]any, 0, len(g.world.Students))
	for _, st := range g.world.Students {
		studentRows = append(studentRows, []any{st.ID, st.PersonID, st.Code, st.ClassID, string(st.Status)})
	}
	return g.sink.Insert("students",
		[]string{"id", "person_id", "code", "class_id", "status"}, studentRows)
}

func (g *Generator) emitPersons(persons []models.Person) error {
	rows := make([][]any, 0, len(persons))
	for _, p := range persons {
		rows = append(rows, []any{
			p.ID, p.FirstName, p.LastName, p.DateOfBirth, string(p.Gender),
			p.Email, p.PhoneNumber, p.CitizenID, p.Address, p.ProfileImageURL,
		})
	}
	return g.sink.Insert("persons",
		[]string{"id", "first_name", "last_name", "date_of_birth", "gender", "email", "phone_number", "citizen_id", "address", "profile_image_url"},
		rows)
}

func (g *Generator) emitAccounts(accounts []models.Account) error {
	rows := make([][]any, 0, len(accounts))
	for _, a := range accounts {
		rows = append(rows, []any{a.ID, a.PersonID, a.Username, a.PasswordHash, a.RoleID, string(a.RoleTag)})
	}
	return g.sink.Insert("accounts",
		[]string{"id", "person_id", "username", "password_hash", "role_id", "role_tag"}, rows)
}
