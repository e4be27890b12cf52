package generator

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/edu-fixtures/internal/models"
)

// runCleanup removes sections nobody enrolled in, except in the live
// registration term where empty sections are the point. The rows were
// already written, so the pruning is emitted as DELETEs in child-first order.
func (g *Generator) runCleanup() error {
	doomed := make(map[string]bool)
	for _, section := range g.world.CourseClasses {
		if section.EnrolledCount > 0 {
			continue
		}
		course := g.world.CourseByID(section.CourseID)
		sem := g.world.SemesterOfCourse(course)
		if sem.StartYear == pinnedFallYear && sem.Type == models.SemesterFall {
			continue
		}
		doomed[section.ID] = true
	}
	if len(doomed) == 0 {
		g.sink.Comment("cleanup: nothing to prune")
		return nil
	}

	ids := make([]string, 0, len(doomed))
	for _, section := range g.world.CourseClasses {
		if doomed[section.ID] {
			ids = append(ids, section.ID)
		}
	}

	g.sink.Comment(fmt.Sprintf("cleanup: pruning %d empty sections outside the registration term", len(ids)))
	for _, chunk := range chunkIDs(ids, 50) {
		in := quoteIDList(chunk)
		g.sink.Raw("DELETE FROM exam_classes WHERE course_class_id IN (" + in + ");")
		g.sink.Raw("DELETE FROM documents WHERE course_class_id IN (" + in + ");")
		g.sink.Raw("DELETE FROM schedule_changes WHERE course_class_id IN (" + in + ");")
		g.sink.Raw("DELETE FROM course_classes WHERE id IN (" + in + ");")
	}

	// Keep the catalog consistent with the emitted script.
	g.world.CourseClasses = filterSections(g.world.CourseClasses, doomed)
	g.world.ExamClasses = filterExamClasses(g.world.ExamClasses, doomed)
	g.world.Documents = filterDocuments(g.world.Documents, doomed)
	g.world.Changes = filterChanges(g.world.Changes, doomed)

	g.logger.Info("empty sections pruned", zap.Int("sections", len(ids)))
	return nil
}

func chunkIDs(ids []string, size int) [][]string {
	var chunks [][]string
	for len(ids) > size {
		chunks = append(chunks, ids[:size])
		ids = ids[size:]
	}
	return append(chunks, ids)
}

func quoteIDList(ids []string) string {
	quoted := make([]string, len(ids))
	for i, id := range ids {
		quoted[i] = "N'" + strings.ReplaceAll(id, "'", "''") + "'"
	}
	return strings.Join(quoted, ", ")
}

func filterSections(in []models.CourseClass, doomed map[string]bool) []models.CourseClass {
	out := in[:0]
	for _, s := range in {
		if !doomed[s.ID] {
			out = append(out, s)
		}
	}
	return out
}

func filterExamClasses(in []models.ExamClass, doomed map[string]bool) []models.ExamClass {
	out := in[:0]
	for _, e := range in {
		if !doomed[e.CourseClassID] {
			out = append(out, e)
		}
	}
	return out
}

func filterDocuments(in []models.Document, doomed map[string]bool) []models.Document {
	out := in[:0]
	for _, d := range in {
		if !doomed[d.CourseClassID] {
			out = append(out, d)
		}
	}
	return out
}

func filterChanges(in []models.ScheduleChange, doomed map[string]bool) []models.ScheduleChange {
	out := in[:0]
	for _, c := range in {
		if !doomed[c.CourseClassID] {
			out = append(out, c)
		}
	}
	return out
}

// runPaymentFix settles every finished-term enrollment the sampled payment
// pass left unpaid, so no student carries historical debt into the live term.
func (g *Generator) runPaymentFix() error {
	covered := make(map[string]bool)
	for _, d := range g.world.PaymentDetails {
		covered[d.StudentEnrollmentID] = true
	}

	paymentFrom := len(g.world.Payments)
	detailFrom := len(g.world.PaymentDetails)

	order, groups := g.paymentGroups()
	settled := 0
	for _, key := range order {
		sem := g.world.SemesterByID(key.SemesterID)
		if classifySemester(sem) != phasePast {
			continue
		}
		var unpaid []int
		for _, ei := range groups[key] {
			if !covered[g.world.Enrollments[ei].ID] {
				unpaid = append(unpaid, ei)
			}
		}
		if len(unpaid) == 0 {
			continue
		}
		g.recordPayment(key, unpaid)
		settled += len(unpaid)
	}

	if settled == 0 {
		g.sink.Comment("payment coverage: all finished terms already settled")
		return nil
	}
	g.sink.Comment(fmt.Sprintf("payment coverage: settling %d enrollments from finished terms", settled))
	g.logger.Info("historical payments settled",
		zap.Int("enrollments", settled),
		zap.Int("payments", len(g.world.Payments)-paymentFrom))
	return g.emitFinancial(paymentFrom, detailFrom)
}

// runConflictFix reports the placements that went through the fallback path
// so an operator can review the committed double bookings.
func (g *Generator) runConflictFix() error {
	if len(g.fallbackSections) == 0 && len(g.fallbackExams) == 0 {
		g.sink.Comment("schedule check: no double bookings committed")
		return nil
	}
	g.sink.Warningf("schedule check: %d sections and %d exam sittings were committed with potential double bookings",
		len(g.fallbackSections), len(g.fallbackExams))
	for _, id := range g.fallbackSections {
		g.sink.Comment("double-booked section: " + id)
	}
	for _, id := range g.fallbackExams {
		g.sink.Comment("double-booked exam sitting: " + id)
	}
	return nil
}
