package generator

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/noah-isme/edu-fixtures/internal/models"
)

// enrollmentFee resolves the tuition charge of one enrollment from the
// subject's credit count and the course's per-credit fee.
func (g *Generator) enrollmentFee(enr *models.StudentEnrollment) int64 {
	section := g.sectionByID(enr.CourseClassID)
	if section == nil {
		return 0
	}
	course := g.world.CourseByID(section.CourseID)
	subject := g.world.SubjectByID(course.SubjectID)
	return int64(subject.Credits) * course.FeePerCredit
}

func (g *Generator) sectionByID(id string) *models.CourseClass {
	for i := range g.world.CourseClasses {
		if g.world.CourseClasses[i].ID == id {
			return &g.world.CourseClasses[i]
		}
	}
	return nil
}

// paymentGroupKey buckets enrollments per student per semester.
type paymentGroupKey struct {
	StudentID  string
	SemesterID string
}

// paymentGroups buckets enrollment indices by (student, semester), with a
// deterministic iteration order.
func (g *Generator) paymentGroups() ([]paymentGroupKey, map[paymentGroupKey][]int) {
	groups := make(map[paymentGroupKey][]int)
	var order []paymentGroupKey
	for i := range g.world.Enrollments {
		enr := &g.world.Enrollments[i]
		section := g.sectionByID(enr.CourseClassID)
		if section == nil {
			continue
		}
		course := g.world.CourseByID(section.CourseID)
		key := paymentGroupKey{StudentID: enr.StudentID, SemesterID: course.SemesterID}
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], i)
	}
	sort.SliceStable(order, func(a, b int) bool {
		if order[a].StudentID != order[b].StudentID {
			return order[a].StudentID < order[b].StudentID
		}
		return order[a].SemesterID < order[b].SemesterID
	})
	return order, groups
}

// recordPayment books one payment header plus its per-enrollment lines.
func (g *Generator) recordPayment(key paymentGroupKey, enrollIdxs []int) {
	sem := g.world.SemesterByID(key.SemesterID)

	var total int64
	fees := make([]int64, len(enrollIdxs))
	for i, ei := range enrollIdxs {
		fees[i] = g.enrollmentFee(&g.world.Enrollments[ei])
		total += fees[i]
	}

	paidTo := sem.EndDate
	if paidTo.After(g.today) {
		paidTo = g.today
	}
	payment := models.PaymentEnrollment{
		ID:             g.ids.Next(),
		StudentID:      key.StudentID,
		SemesterID:     key.SemesterID,
		Amount:         total,
		TransactionRef: fmt.Sprintf("TXN-%08d", g.rng.Intn(100000000)),
		PaidAt:         randomTimeBetween(g.rng, sem.RegistrationStart, paidTo),
	}
	g.world.Payments = append(g.world.Payments, payment)

	for i, ei := range enrollIdxs {
		g.world.PaymentDetails = append(g.world.PaymentDetails, models.PaymentEnrollmentDetail{
			ID:                  g.ids.Next(),
			PaymentEnrollmentID: payment.ID,
			StudentEnrollmentID: g.world.Enrollments[ei].ID,
			Amount:              fees[i],
		})
	}
}

// buildFinancial books tuition payments for a sampled share of
// student-semester groups and issues health insurance policies.
func (g *Generator) buildFinancial() error {
	order, groups := g.paymentGroups()
	for _, key := range order {
		if !chance(g.rng, g.cfg.PaymentRate) {
			continue
		}
		g.recordPayment(key, groups[key])
	}

	classByID := make(map[string]*models.Class)
	for i := range g.world.Classes {
		classByID[g.world.Classes[i].ID] = &g.world.Classes[i]
	}
	for _, student := range g.world.Students {
		class := classByID[student.ClassID]
		if class == nil {
			continue
		}
		for _, ay := range g.world.AcademicYears {
			if ay.StartYear > pinnedFallYear {
				continue
			}
			if ay.StartYear < class.StartYear || ay.StartYear > class.StartYear+3 {
				continue
			}
			g.world.Insurances = append(g.world.Insurances, models.StudentHealthInsurance{
				ID:                g.ids.Next(),
				StudentID:         student.ID,
				AcademicYearID:    ay.ID,
				PolicyNumber:      fmt.Sprintf("BH-%d-%06d", ay.StartYear, g.rng.Intn(1000000)),
				ShouldHavePayment: ay.EndYear <= pinnedFallYear-1,
			})
		}
	}

	g.logger.Info("financial records generated",
		zap.Int("payments", len(g.world.Payments)),
		zap.Int("payment_lines", len(g.world.PaymentDetails)),
		zap.Int("insurances", len(g.world.Insurances)))

	return g.emitFinancial(0, 0)
}

// emitFinancial writes payment rows starting at the given offsets, so the
// later past-coverage pass can append only its new rows.
func (g *Generator) emitFinancial(paymentFrom, detailFrom int) error {
	paymentRows := make([][]any, 0, len(g.world.Payments)-paymentFrom)
	for _, p := range g.world.Payments[paymentFrom:] {
		paymentRows = append(paymentRows, []any{
			p.ID, p.StudentID, p.SemesterID, p.Amount, p.TransactionRef, p.PaidAt,
		})
	}
	if len(paymentRows) > 0 {
		if err := g.sink.Insert("payment_enrollments",
			[]string{"id", "student_id", "semester_id", "amount", "transaction_ref", "paid_at"}, paymentRows); err != nil {
			return err
		}
	}

	detailRows := make([][]any, 0, len(g.world.PaymentDetails)-detailFrom)
	for _, d := range g.world.PaymentDetails[detailFrom:] {
		detailRows = append(detailRows, []any{d.ID, d.PaymentEnrollmentID, d.StudentEnrollmentID, d.Amount})
	}
	if len(detailRows) > 0 {
		if err := g.sink.Insert("payment_enrollment_details",
			[]string{"id", "payment_enrollment_id", "student_enrollment_id", "amount"}, detailRows); err != nil {
			return err
		}
	}

	if paymentFrom > 0 {
		return nil
	}
	insuranceRows := make([][]any, 0, len(g.world.Insurances))
	for _, ins := range g.world.Insurances {
		insuranceRows = append(insuranceRows, []any{
			ins.ID, ins.StudentID, ins.AcademicYearID, ins.PolicyNumber, ins.ShouldHavePayment,
		})
	}
	if len(insuranceRows) == 0 {
		return nil
	}
	return g.sink.Insert("student_health_insurances",
		[]string{"id", "student_id", "academic_year_id", "policy_number", "should_have_payment"}, insuranceRows)
}
