package generator

import (
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/edu-fixtures/internal/spec"
	appConfig "github.com/noah-isme/edu-fixtures/pkg/config"
	appErrors "github.com/noah-isme/edu-fixtures/pkg/errors"
)

// FacultySpec describes one faculty record of the spec file.
type FacultySpec struct {
	Code string `validate:"required"`
	Name string `validate:"required"`
}

// DepartmentSpec describes one department record.
type DepartmentSpec struct {
	FacultyCode string `validate:"required"`
	Code        string `validate:"required"`
	Name        string `validate:"required"`
}

// TrainingSystemSpec describes one training system record.
type TrainingSystemSpec struct {
	Code string `validate:"required"`
	Name string `validate:"required"`
}

// SubjectSpec describes one subject record. Scope is either "general" or a
// department code.
type SubjectSpec struct {
	Code          string `validate:"required"`
	Name          string `validate:"required"`
	Credits       int    `validate:"gt=0"`
	TheoryHours   int    `validate:"gte=0"`
	PracticeHours int    `validate:"gte=0"`
	Scope         string `validate:"required"`
}

// ClassSpec describes one cohort class record.
type ClassSpec struct {
	Code               string `validate:"required"`
	DepartmentCode     string `validate:"required"`
	TrainingSystemCode string `validate:"required"`
	StartYear          int    `validate:"gt=2000"`
}

// BuildingSpec describes one building record.
type BuildingSpec struct {
	Code  string `validate:"required"`
	Name  string `validate:"required"`
	Rooms int    `validate:"gt=0"`
}

// RegulationSpec describes one regulation record.
type RegulationSpec struct {
	Title   string `validate:"required"`
	Content string `validate:"required"`
}

// FixedAccount is a test account with a predictable id from the spec file.
type FixedAccount struct {
	ID       string `validate:"required,uuid"`
	Username string `validate:"required"`
	FullName string `validate:"required"`
	Email    string `validate:"required,email"`
}

// FixedAccounts bundles the three test accounts.
type FixedAccounts struct {
	Student    FixedAccount `validate:"required"`
	Instructor FixedAccount `validate:"required"`
	Admin      FixedAccount `validate:"required"`
	Password   string       `validate:"required"`
}

// Config is the validated universe description a run generates from.
type Config struct {
	FirstYear int `validate:"gte=2000"`
	LastYear  int `validate:"gtefield=FirstYear"`

	Faculties       []FacultySpec        `validate:"min=1,dive"`
	Departments     []DepartmentSpec     `validate:"min=1,dive"`
	TrainingSystems []TrainingSystemSpec `validate:"min=1,dive"`
	Subjects        []SubjectSpec        `validate:"min=1,dive"`
	Classes         []ClassSpec          `validate:"min=1,dive"`
	Buildings       []BuildingSpec       `validate:"min=1,dive"`
	Regulations     []RegulationSpec     `validate:"dive"`
	NoteTemplates   []string

	Names namePools
	Fixed FixedAccounts

	OfferingRateMain   float64 `validate:"gte=0,lte=1"`
	OfferingRateSummer float64 `validate:"gte=0,lte=1"`
	PaymentRate        float64 `validate:"gte=0,lte=1"`
	FeePerCredit       int64   `validate:"gt=0"`

	StudentsPerClass         int `validate:"gt=0"`
	InstructorsPerDepartment int `validate:"gt=0"`
	GeneralNotifications     int `validate:"gte=0"`
	TargetedNotifications    int `validate:"gte=0"`
	InsertChunkSize          int `validate:"gt=0"`
}

// BuildConfig assembles and validates the generator config from the parsed
// spec file plus environment volume knobs.
func BuildConfig(store *spec.Store, vols appConfig.VolumesConfig) (*Config, error) {
	cfg := &Config{
		Names:                    defaultNamePools(),
		OfferingRateMain:         0.7,
		OfferingRateSummer:       0.3,
		PaymentRate:              vols.PaymentRate,
		FeePerCredit:             600000,
		StudentsPerClass:         vols.StudentsPerClass,
		InstructorsPerDepartment: 5,
		GeneralNotifications:     vols.GeneralNotifications,
		TargetedNotifications:    vols.TargetedNotifications,
		InsertChunkSize:          vols.InsertChunkSize,
	}

	if err := parseYears(store, cfg); err != nil {
		return nil, err
	}
	if err := parseOrg(store, cfg); err != nil {
		return nil, err
	}
	if err := parseSubjects(store, cfg); err != nil {
		return nil, err
	}
	if err := parseClasses(store, cfg); err != nil {
		return nil, err
	}
	if err := parseBuildings(store, cfg); err != nil {
		return nil, err
	}
	if err := parseAccounts(store, cfg); err != nil {
		return nil, err
	}
	parseNames(store, cfg)
	if err := parseRegulations(store, cfg); err != nil {
		return nil, err
	}
	parseVolumes(store, cfg)

	if err := validator.New().Struct(cfg); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrConfig.Code, appErrors.ErrConfig.Severity, "spec file validation failed")
	}
	return cfg, nil
}

func parseYears(store *spec.Store, cfg *Config) error {
	section := store.Config("academic_years")
	if section == nil {
		return appErrors.Clone(appErrors.ErrConfig, "spec section [academic_years] with first/last keys is required")
	}
	first, err1 := strconv.Atoi(section["first"])
	last, err2 := strconv.Atoi(section["last"])
	if err1 != nil || err2 != nil {
		return appErrors.Clone(appErrors.ErrConfig, "academic_years first/last must be integers")
	}
	cfg.FirstYear = first
	cfg.LastYear = last
	return nil
}

func parseOrg(store *spec.Store, cfg *Config) error {
	faculties, err := store.RequireSection("faculties")
	if err != nil {
		return err
	}
	for _, rec := range faculties {
		cfg.Faculties = append(cfg.Faculties, FacultySpec{Code: rec.Field(0), Name: rec.Field(1)})
	}

	departments, err := store.RequireSection("departments")
	if err != nil {
		return err
	}
	for _, rec := range departments {
		cfg.Departments = append(cfg.Departments, DepartmentSpec{
			FacultyCode: rec.Field(0),
			Code:        rec.Field(1),
			Name:        rec.Field(2),
		})
	}

	systems, err := store.RequireSection("training_systems")
	if err != nil {
		return err
	}
	for _, rec := range systems {
		cfg.TrainingSystems = append(cfg.TrainingSystems, TrainingSystemSpec{Code: rec.Field(0), Name: rec.Field(1)})
	}
	return nil
}

func parseSubjects(store *spec.Store, cfg *Config) error {
	records, err := store.RequireSection("subjects")
	if err != nil {
		return err
	}
	for _, rec := range records {
		if rec.Field(5) == "" {
			return appErrors.Clone(appErrors.ErrPrecondition, fmt.Sprintf("subject %s is missing its general/department scope", rec.Field(0)))
		}
		credits, _ := strconv.Atoi(rec.Field(2))
		theory, _ := strconv.Atoi(rec.Field(3))
		practice, _ := strconv.Atoi(rec.Field(4))
		cfg.Subjects = append(cfg.Subjects, SubjectSpec{
			Code:          rec.Field(0),
			Name:          rec.Field(1),
			Credits:       credits,
			TheoryHours:   theory,
			PracticeHours: practice,
			Scope:         rec.Field(5),
		})
	}
	return nil
}

func parseClasses(store *spec.Store, cfg *Config) error {
	records, err := store.RequireSection("classes")
	if err != nil {
		return err
	}
	for _, rec := range records {
		year, _ := strconv.Atoi(rec.Field(3))
		cfg.Classes = append(cfg.Classes, ClassSpec{
			Code:               rec.Field(0),
			DepartmentCode:     rec.Field(1),
			TrainingSystemCode: rec.Field(2),
			StartYear:          year,
		})
	}
	return nil
}

func parseBuildings(store *spec.Store, cfg *Config) error {
	records, err := store.RequireSection("buildings")
	if err != nil {
		return err
	}
	for _, rec := range records {
		rooms, _ := strconv.Atoi(rec.Field(2))
		if rooms == 0 {
			rooms = 20
		}
		cfg.Buildings = append(cfg.Buildings, BuildingSpec{
			Code:  rec.Field(0),
			Name:  rec.Field(1),
			Rooms: rooms,
		})
	}
	return nil
}

func parseAccounts(store *spec.Store, cfg *Config) error {
	records, err := store.RequireSection("accounts")
	if err != nil {
		return appErrors.Clone(appErrors.ErrConfig, "spec section [accounts] with the fixed test accounts is required")
	}
	for _, rec := range records {
		account := FixedAccount{
			ID:       rec.Field(1),
			Username: rec.Field(2),
			FullName: rec.Field(3),
			Email:    rec.Field(4),
		}
		switch rec.Field(0) {
		case "student":
			cfg.Fixed.Student = account
		case "instructor":
			cfg.Fixed.Instructor = account
		case "admin":
			cfg.Fixed.Admin = account
		}
	}
	section := store.Config("accounts")
	if section != nil {
		cfg.Fixed.Password = section["password"]
	}
	if cfg.Fixed.Password == "" {
		cfg.Fixed.Password = "ChangeMe123!"
	}
	if cfg.Fixed.Student.ID == "" || cfg.Fixed.Instructor.ID == "" || cfg.Fixed.Admin.ID == "" {
		return appErrors.Clone(appErrors.ErrConfig, "spec [accounts] must define student, instructor and admin test accounts")
	}
	return nil
}

func parseNames(store *spec.Store, cfg *Config) {
	records := store.Records("names")
	if len(records) == 0 {
		return
	}
	pools := namePools{Middle: defaultMiddleParticles}
	for _, rec := range records {
		switch rec.Field(0) {
		case "last":
			pools.Last = append(pools.Last, rec.Field(1))
		case "male":
			pools.Male = append(pools.Male, rec.Field(1))
		case "female":
			pools.Female = append(pools.Female, rec.Field(1))
		}
	}
	if len(pools.Last) > 0 && len(pools.Male) > 0 && len(pools.Female) > 0 {
		cfg.Names = pools
	}
}

func parseRegulations(store *spec.Store, cfg *Config) error {
	for _, rec := range store.Records("regulations") {
		if len(rec) < 2 || rec.Field(0) == "" || rec.Field(1) == "" {
			return appErrors.Clone(appErrors.ErrConfig, "invalid regulation line: title and content are required")
		}
		cfg.Regulations = append(cfg.Regulations, RegulationSpec{Title: rec.Field(0), Content: rec.Field(1)})
	}
	for _, rec := range store.Records("exam_notes") {
		note := rec.Field(1)
		if note == "" {
			note = rec.Field(0)
		}
		cfg.NoteTemplates = append(cfg.NoteTemplates, note)
	}
	if len(cfg.NoteTemplates) == 0 {
		cfg.NoteTemplates = []string{
			"Sinh viên được sử dụng tài liệu",
			"Không sử dụng điện thoại trong phòng thi",
			"Mang theo thẻ sinh viên",
		}
	}
	return nil
}

func parseVolumes(store *spec.Store, cfg *Config) {
	section := store.Config("volumes")
	if section == nil {
		return
	}
	if v, err := strconv.Atoi(section["students_per_class"]); err == nil && v > 0 {
		cfg.StudentsPerClass = v
	}
	if v, err := strconv.Atoi(section["instructors_per_department"]); err == nil && v > 0 {
		cfg.InstructorsPerDepartment = v
	}
	if v, err := strconv.Atoi(section["general_notifications"]); err == nil && v >= 0 {
		cfg.GeneralNotifications = v
	}
	if v, err := strconv.Atoi(section["targeted_notifications"]); err == nil && v >= 0 {
		cfg.TargetedNotifications = v
	}
	if v, err := strconv.ParseFloat(section["payment_rate"], 64); err == nil && v >= 0 && v <= 1 {
		cfg.PaymentRate = v
	}
	if v, err := strconv.ParseFloat(section["offering_rate_main"], 64); err == nil && v > 0 && v <= 1 {
		cfg.OfferingRateMain = v
	}
	if v, err := strconv.ParseFloat(section["offering_rate_summer"], 64); err == nil && v > 0 && v <= 1 {
		cfg.OfferingRateSummer = v
	}
}
