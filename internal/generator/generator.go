// Package generator implements the phased fixture pipeline that turns a
// universe spec into an ordered SQL population script.
package generator

import (
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/edu-fixtures/internal/media"
	"github.com/noah-isme/edu-fixtures/internal/models"
	"github.com/noah-isme/edu-fixtures/internal/sqlout"
)

// Generator drives the phase pipeline over a shared in-memory catalog.
type Generator struct {
	cfg    *Config
	media  *media.Catalog
	sink   *sqlout.Sink
	rng    *rand.Rand
	ids    *IdFactory
	logger *zap.Logger
	today  time.Time
	world  *World

	// Shared mutable scheduling state, all process-local.
	roomUsage     map[roomSlotKey]string
	examUsage     map[examSlotKey]string
	studentBusy   map[string]map[string][]busyBlock
	enrolledPairs map[enrollPairKey]bool

	fallbackSections []string
	fallbackExams    []string
	slotMisses       int

	emailSeq        map[string]int
	emittedPersons  int
	emittedAccounts int
}

// New wires a generator over the validated config and collaborators.
func New(cfg *Config, catalog *media.Catalog, sink *sqlout.Sink, seed int64, today time.Time, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	rng := rand.New(rand.NewSource(seed))
	return &Generator{
		cfg:           cfg,
		media:         catalog,
		sink:          sink,
		rng:           rng,
		ids:           NewIdFactory(rng),
		logger:        logger,
		today:         atClock(today, 0, 0),
		world:         NewWorld(),
		roomUsage:     make(map[roomSlotKey]string),
		examUsage:     make(map[examSlotKey]string),
		studentBusy:   make(map[string]map[string][]busyBlock),
		enrolledPairs: make(map[enrollPairKey]bool),
		emailSeq:      make(map[string]int),
	}
}

// World exposes the catalog, mainly for invariant tests.
func (g *Generator) World() *World {
	return g.world
}

// FallbackSections lists sections committed without the conflict check.
func (g *Generator) FallbackSections() []string {
	return g.fallbackSections
}

// phase is one step of the generation contract. The order is part of the
// output contract: emitting inserts in any other order breaks the target
// schema's foreign keys.
type phase struct {
	name string
	run  func() error
}

func (g *Generator) phases() []phase {
	return []phase{
		{"roles", g.buildRoles},
		{"org", g.buildOrg},
		{"calendar", g.buildCalendar},
		{"staff", g.buildStaff},
		{"infrastructure", g.buildInfrastructure},
		{"subjects", g.buildSubjects},
		{"programs", g.buildPrograms},
		{"students", g.buildStudents},
		{"courses", g.buildCourses},
		{"offerings", g.buildOfferings},
		{"enrollments", g.buildEnrollments},
		{"assessments", g.buildAssessments},
		{"financial", g.buildFinancial},
		{"operational", g.buildOperational},
		{"regulations", g.buildRegulations},
		{"cleanup", g.runCleanup},
		{"payment-fix", g.runPaymentFix},
		{"conflict-fix", g.runConflictFix},
	}
}

// Run executes every phase in order, stopping at the first fatal error.
func (g *Generator) Run() error {
	for _, warning := range g.media.Warnings() {
		g.sink.Warningf("%s", warning)
	}
	for _, p := range g.phases() {
		started := time.Now()
		g.sink.Comment("phase: " + p.name)
		if err := p.run(); err != nil {
			g.logger.Error("phase failed", zap.String("phase", p.name), zap.Error(err))
			return err
		}
		g.logger.Info("phase complete",
			zap.String("phase", p.name),
			zap.Duration("elapsed", time.Since(started)))
	}
	g.logger.Info("generation complete",
		zap.Int("persons", len(g.world.Persons)),
		zap.Int("courses", len(g.world.Courses)),
		zap.Int("sections", len(g.world.CourseClasses)),
		zap.Int("enrollments", len(g.world.Enrollments)),
		zap.Int("warnings", g.sink.WarningCount()))
	return nil
}

// isFixedStudent reports whether the student is the deterministic test student.
func (g *Generator) isFixedStudent(studentID string) bool {
	return studentID == g.cfg.Fixed.Student.ID
}

func (g *Generator) departmentByCode(code string) *models.Department {
	for i := range g.world.Departments {
		if g.world.Departments[i].Code == code {
			return &g.world.Departments[i]
		}
	}
	return nil
}

func (g *Generator) academicYearByStart(year int) *models.AcademicYear {
	for i := range g.world.AcademicYears {
		if g.world.AcademicYears[i].StartYear == year {
			return &g.world.AcademicYears[i]
		}
	}
	return nil
}
