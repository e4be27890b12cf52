package generator

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/edu-fixtures/internal/media"
	"github.com/noah-isme/edu-fixtures/internal/models"
)

var notificationTypeWeights = []weightedChoice[models.NotificationType]{
	{Value: models.NotificationTypeSchedule, Weight: 0.35},
	{Value: models.NotificationTypeEvent, Weight: 0.30},
	{Value: models.NotificationTypeTuition, Weight: 0.20},
	{Value: models.NotificationTypeImportant, Weight: 0.15},
}

var broadcastTargetWeights = []weightedChoice[models.NotificationTarget]{
	{Value: models.TargetAll, Weight: 0.15},
	{Value: models.TargetAllStudents, Weight: 0.30},
	{Value: models.TargetAllInstructors, Weight: 0.15},
	{Value: models.TargetClass, Weight: 0.20},
	{Value: models.TargetFaculty, Weight: 0.15},
	{Value: models.TargetInstructor, Weight: 0.05},
}

var notificationTitles = map[models.NotificationType][]string{
	models.NotificationTypeImportant: {
		"Thông báo khẩn từ phòng đào tạo",
		"Cập nhật quy định học vụ",
	},
	models.NotificationTypeSchedule: {
		"Thay đổi lịch học",
		"Thông báo lịch thi",
		"Lịch nghỉ lễ",
	},
	models.NotificationTypeTuition: {
		"Nhắc nhở đóng học phí",
		"Thông báo hạn nộp học phí",
	},
	models.NotificationTypeEvent: {
		"Sự kiện hướng nghiệp",
		"Hội thảo chuyên đề",
		"Ngày hội việc làm",
	},
}

var scheduleChangeReasons = []string{
	"Giảng viên bận công tác",
	"Phòng học đang bảo trì",
	"Nghỉ lễ theo lịch nhà trường",
	"Hội thảo chiếm phòng",
}

var personalNoteTemplates = []string{
	"Ôn tập chương 3 trước buổi học tới",
	"Nộp bài tập lớn trước thứ sáu",
	"Hỏi giảng viên về lịch thi lại",
	"Đăng ký học phần bổ sung",
	"In tài liệu cho buổi thực hành",
}

// newNotification fills the shared date math and status logic of one
// notification: created before it becomes visible, visible before it fires,
// and its status derived from where the fire date sits against today.
func (g *Generator) newNotification(target models.NotificationTarget, targetID string) models.NotificationSchedule {
	nType := pickWeighted(g.rng, notificationTypeWeights)
	titles := notificationTitles[nType]
	title := titles[g.rng.Intn(len(titles))]

	scheduled := randomTimeBetween(g.rng, g.today.AddDate(0, 0, -365), g.today.AddDate(0, 0, 7))
	visible := atClock(scheduled.AddDate(0, 0, -g.rng.Intn(3)), g.rng.Intn(24), g.rng.Intn(60))
	created := visible.AddDate(0, 0, -(1 + g.rng.Intn(5)))

	status := models.NotificationPending
	if scheduled.Before(g.today) {
		status = models.NotificationSent
		if chance(g.rng, 0.10) {
			status = models.NotificationCancelled
		}
	}

	return models.NotificationSchedule{
		ID:            g.ids.Next(),
		Title:         title,
		Content:       title + ". Xem chi tiết trên cổng thông tin.",
		Type:          nType,
		TargetType:    target,
		TargetID:      targetID,
		ScheduledDate: scheduled,
		VisibleFrom:   visible,
		CreatedAt:     created,
		Status:        status,
		IsDeleted:     chance(g.rng, 0.03),
	}
}

// audienceID samples a concrete target for audience kinds that need one.
func (g *Generator) audienceID(target models.NotificationTarget) string {
	switch target {
	case models.TargetClass:
		return g.world.Classes[g.rng.Intn(len(g.world.Classes))].ID
	case models.TargetFaculty:
		return g.world.Faculties[g.rng.Intn(len(g.world.Faculties))].ID
	case models.TargetInstructor:
		return g.world.Instructors[g.rng.Intn(len(g.world.Instructors))].ID
	case models.TargetStudent:
		return g.world.Students[g.rng.Intn(len(g.world.Students))].ID
	default:
		return ""
	}
}

// fixedAccountIDs resolves the account rows of the three test users.
func (g *Generator) fixedAccountIDs() []string {
	fixedPersons := map[string]bool{
		g.cfg.Fixed.Student.ID:    true,
		g.cfg.Fixed.Instructor.ID: true,
		g.cfg.Fixed.Admin.ID:      true,
	}
	var ids []string
	for _, acc := range g.world.Accounts {
		if fixedPersons[acc.PersonID] {
			ids = append(ids, acc.ID)
		}
	}
	return ids
}

var documentTypeWeights = []weightedChoice[models.DocumentType]{
	{Value: models.DocumentReference, Weight: 0.35},
	{Value: models.DocumentSlide, Weight: 0.30},
	{Value: models.DocumentExercise, Weight: 0.25},
	{Value: models.DocumentLab, Weight: 0.10},
}

var documentMedia = map[models.DocumentType]string{
	models.DocumentReference: media.CourseDocPDF,
	models.DocumentSlide:     media.CourseDocPDF,
	models.DocumentExercise:  media.CourseDocXls,
	models.DocumentLab:       media.CourseDocImg,
}

// documentUploadWindow biases when a material lands in the term: slides and
// references front-load, exercises spread out, labs arrive late.
func documentUploadWindow(docType models.DocumentType) (float64, float64) {
	switch docType {
	case models.DocumentSlide, models.DocumentReference:
		return 0.0, 0.3
	case models.DocumentLab:
		return 0.4, 0.9
	default:
		return 0.1, 0.9
	}
}

// buildOperational emits notifications and reads, course materials, schedule
// changes, personal notes and theme rows.
func (g *Generator) buildOperational() error {
	for i := 0; i < g.cfg.GeneralNotifications; i++ {
		target := pickWeighted(g.rng, broadcastTargetWeights)
		g.world.Notifications = append(g.world.Notifications,
			g.newNotification(target, g.audienceID(target)))
	}
	// The test users each get a personal stream so their inboxes are
	// populated regardless of broadcast sampling.
	for i := 0; i < g.cfg.TargetedNotifications; i++ {
		g.world.Notifications = append(g.world.Notifications,
			g.newNotification(models.TargetStudent, g.cfg.Fixed.Student.ID))
		g.world.Notifications = append(g.world.Notifications,
			g.newNotification(models.TargetInstructor, g.cfg.Fixed.Instructor.ID))
	}

	readerIDs := g.fixedAccountIDs()
	for _, n := range g.world.Notifications {
		if n.Status != models.NotificationSent || n.IsDeleted {
			continue
		}
		for _, accountID := range readerIDs {
			if !chance(g.rng, 0.20) {
				continue
			}
			g.world.Reads = append(g.world.Reads, models.NotificationUserRead{
				NotificationID: n.ID,
				AccountID:      accountID,
				ReadAt:         randomTimeBetween(g.rng, g.today.AddDate(0, 0, -30), g.today),
			})
		}
	}

	g.buildDocuments()
	g.buildScheduleChanges()
	g.buildNotesAndThemes(readerIDs)

	g.logger.Info("operational records generated",
		zap.Int("notifications", len(g.world.Notifications)),
		zap.Int("reads", len(g.world.Reads)),
		zap.Int("documents", len(g.world.Documents)),
		zap.Int("schedule_changes", len(g.world.Changes)))

	return g.emitOperational()
}

func (g *Generator) buildDocuments() {
	for _, section := range g.world.CourseClasses {
		if section.DateStart.After(g.today) {
			continue
		}
		termEnd := section.DateEnd
		if termEnd.After(g.today) {
			termEnd = g.today
		}
		termLen := termEnd.Sub(section.DateStart)

		count := 2 + g.rng.Intn(4)
		for i := 0; i < count; i++ {
			docType := pickWeighted(g.rng, documentTypeWeights)
			lo, hi := documentUploadWindow(docType)
			offset := time.Duration((lo + g.rng.Float64()*(hi-lo)) * float64(termLen))
			// Business hours mostly, with an evening tail.
			hour := 8 + g.rng.Intn(10)
			if chance(g.rng, 0.20) {
				hour = 18 + g.rng.Intn(4)
			}
			g.world.Documents = append(g.world.Documents, models.Document{
				ID:            g.ids.Next(),
				CourseClassID: section.ID,
				Type:          docType,
				Title:         fmt.Sprintf("%s %d - %s", docType, i+1, section.Code),
				FileURL:       g.media.PickURL(documentMedia[docType]),
				UploadedAt:    atClock(section.DateStart.Add(offset), hour, g.rng.Intn(60)),
			})
		}
	}
}

func (g *Generator) buildScheduleChanges() {
	for _, section := range g.world.CourseClasses {
		if section.DateStart.After(g.today) || !chance(g.rng, 0.10) {
			continue
		}
		termEnd := section.DateEnd
		if termEnd.After(g.today) {
			termEnd = g.today
		}
		oldDate := randomTimeBetween(g.rng, section.DateStart, termEnd)
		g.world.Changes = append(g.world.Changes, models.ScheduleChange{
			ID:            g.ids.Next(),
			CourseClassID: section.ID,
			OldDate:       oldDate,
			NewDate:       oldDate.AddDate(0, 0, 2+g.rng.Intn(6)),
			Reason:        scheduleChangeReasons[g.rng.Intn(len(scheduleChangeReasons))],
		})
	}
}

func (g *Generator) buildNotesAndThemes(accountIDs []string) {
	themes := []string{"light", "dark"}
	languages := []string{"vi", "en"}
	for _, accountID := range accountIDs {
		count := 2 + g.rng.Intn(3)
		for _, idx := range sampleIndices(g.rng, len(personalNoteTemplates), count) {
			g.world.Notes = append(g.world.Notes, models.Note{
				ID:        g.ids.Next(),
				AccountID: accountID,
				Title:     fmt.Sprintf("Ghi chú %d", idx+1),
				Content:   personalNoteTemplates[idx],
				CreatedAt: randomTimeBetween(g.rng, g.today.AddDate(0, 0, -60), g.today),
			})
		}
		g.world.Themes = append(g.world.Themes, models.ThemeConfiguration{
			ID:        g.ids.Next(),
			AccountID: accountID,
			Theme:     themes[g.rng.Intn(len(themes))],
			Language:  languages[g.rng.Intn(len(languages))],
		})
	}
}

func (g *Generator) emitOperational() error {
	notificationRows := make([][]any, 0, len(g.world.Notifications))
	for _, n := range g.world.Notifications {
		notificationRows = append(notificationRows, []any{
			n.ID, n.Title, n.Content, string(n.Type), string(n.TargetType), nullable(n.TargetID),
			n.ScheduledDate, n.VisibleFrom, n.CreatedAt, string(n.Status), n.IsDeleted,
		})
	}
	if err := g.sink.Insert("notification_schedules",
		[]string{"id", "title", "content", "type", "target_type", "target_id",
			"scheduled_date", "visible_from", "created_at", "status", "is_deleted"},
		notificationRows); err != nil {
		return err
	}

	if len(g.world.Reads) > 0 {
		readRows := make([][]any, 0, len(g.world.Reads))
		for _, r := range g.world.Reads {
			readRows = append(readRows, []any{r.NotificationID, r.AccountID, r.ReadAt})
		}
		if err := g.sink.Insert("notification_user_reads",
			[]string{"notification_id", "account_id", "read_at"}, readRows); err != nil {
			return err
		}
	}

	documentRows := make([][]any, 0, len(g.world.Documents))
	for _, d := range g.world.Documents {
		documentRows = append(documentRows, []any{d.ID, d.CourseClassID, string(d.Type), d.Title, d.FileURL, d.UploadedAt})
	}
	if err := g.sink.Insert("documents",
		[]string{"id", "course_class_id", "type", "title", "file_url", "uploaded_at"}, documentRows); err != nil {
		return err
	}

	if len(g.world.Changes) > 0 {
		changeRows := make([][]any, 0, len(g.world.Changes))
		for _, c := range g.world.Changes {
			changeRows = append(changeRows, []any{c.ID, c.CourseClassID, c.OldDate, c.NewDate, c.Reason})
		}
		if err := g.sink.Insert("schedule_changes",
			[]string{"id", "course_class_id", "old_date", "new_date", "reason"}, changeRows); err != nil {
			return err
		}
	}

	noteRows := make([][]any, 0, len(g.world.Notes))
	for _, n := range g.world.Notes {
		noteRows = append(noteRows, []any{n.ID, n.AccountID, n.Title, n.Content, n.CreatedAt})
	}
	if err := g.sink.Insert("notes",
		[]string{"id", "account_id", "title", "content", "created_at"}, noteRows); err != nil {
		return err
	}

	themeRows := make([][]any, 0, len(g.world.Themes))
	for _, t := range g.world.Themes {
		themeRows = append(themeRows, []any{t.ID, t.AccountID, t.Theme, t.Language})
	}
	return g.sink.Insert("theme_configurations",
		[]string{"id", "account_id", "theme", "language"}, themeRows)
}

// buildRegulations emits the institutional policy documents from the spec file.
func (g *Generator) buildRegulations() error {
	if len(g.cfg.Regulations) == 0 {
		return nil
	}
	for _, r := range g.cfg.Regulations {
		g.world.Regulations = append(g.world.Regulations, models.Regulation{
			ID:          g.ids.Next(),
			Title:       r.Title,
			Content:     r.Content,
			FileURL:     g.media.PickURL(media.Regulations),
			EffectiveAt: randomTimeBetween(g.rng, g.today.AddDate(-2, 0, 0), g.today),
		})
	}

	rows := make([][]any, 0, len(g.world.Regulations))
	for _, r := range g.world.Regulations {
		rows = append(rows, []any{r.ID, r.Title, r.Content, nullable(r.FileURL), r.EffectiveAt})
	}
	return g.sink.Insert("regulations",
		[]string{"id", "title", "content", "file_url", "effective_at"}, rows)
}
