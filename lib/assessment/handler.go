package assessmenthandler

import (
	"context"
	"strings"
	"time"

	"candidate-flow-backend/db"
	applicationstore "candidate-flow-backend/lib/application/store"
	answerstore "candidate-flow-backend/lib/assessment/answer-store"
	submissionbackup "candidate-flow-backend/lib/assessment/backup"
	assessmentstore "candidate-flow-backend/lib/assessment/store"
	"candidate-flow-backend/lib/availability"
	pipelinestore "candidate-flow-backend/lib/pipeline/store"
	"candidate-flow-backend/lib/utils/lock"
	"candidate-flow-backend/models"
	assessmentapimodels "candidate-flow-backend/models/api/assessment"
	dbmodels "candidate-flow-backend/models/db"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	// ErrApplicationNotFound - заявка или тест отсутствуют
	ErrApplicationNotFound = errors.New("заявка не найдена")
	// ErrNoActiveAssessment - текущий этап заявки не test
	ErrNoActiveAssessment = errors.New("по заявке нет активного теста")
	// ErrWindowNotOpen - окно теста еще не открылось
	ErrWindowNotOpen = errors.New("тест еще не открыт")
	// ErrWindowExpired - окно теста уже закрылось
	ErrWindowExpired = errors.New("время прохождения теста истекло")
	// ErrNotCompleted - оценка непройденного теста невозможна
	ErrNotCompleted = errors.New("тест еще не пройден кандидатом")
	// ErrSubmitBusy - не удалось получить блокировку по заявке за отведенное время
	ErrSubmitBusy = errors.New("отправка по заявке уже обрабатывается, повторите позже")
)

const completionNote = "Ответы по тесту получены"
const reviewerNotePrefix = "Комментарий проверяющего: "
const submitLockWait = 5 * time.Second

type Provider interface {
	Upsert(req assessmentapimodels.CreateRequest) (id string, err error)
	GetView(applicationID string, now time.Time) (assessmentapimodels.AssessmentView, error)
	CandidateComplete(ctx context.Context, applicationID, candidateID string, answers []assessmentapimodels.AnswerItem) (completedAt time.Time, err error)
	ReviewerEvaluate(applicationID, reviewerID string, score float64, isQualified bool, notes string) error
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

// Upsert - создание/обновление теста вакансии вместе с вопросами
func (i impl) Upsert(req assessmentapimodels.CreateRequest) (id string, err error) {
	if err = req.Validate(); err != nil {
		return "", err
	}
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		store := assessmentstore.NewInstance(tx)
		rec := dbmodels.Assessment{
			OpeningID:       req.OpeningID,
			Name:            req.Name,
			OpensAt:         req.OpensAt,
			ClosesAt:        req.ClosesAt,
			DurationMinutes: req.DurationMinutes,
		}
		id, err = store.Save(rec)
		if err != nil {
			return errors.Wrap(err, "ошибка сохранения теста")
		}
		// вопросы заменяются целиком, иначе повторное сохранение теста
		// оставило бы кандидатам строки предыдущей версии
		err = store.ReplaceQuestions(id, buildQuestionRows(id, req.Questions))
		if err != nil {
			return errors.Wrap(err, "ошибка сохранения вопросов теста")
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

// GetView - представление теста для кандидата: окно пересчитывается от "сейчас"
// на каждом чтении, вопросы отдаются только в открытом окне.
func (i impl) GetView(applicationID string, now time.Time) (assessmentapimodels.AssessmentView, error) {
	result := assessmentapimodels.AssessmentView{}
	rec, active, err := i.findAssessment(db.DB, applicationID)
	if err != nil {
		return result, err
	}

	st := availability.Evaluate(windowOf(*rec), now)
	result.ID = rec.ID
	result.Name = rec.Name
	result.Window = windowView(*rec, st)
	result.CompletedAt = active.CompletedAt

	if st.IsAvailable && active.CompletedAt == nil {
		store := assessmentstore.NewInstance(db.DB)
		questions, err := store.ListQuestions(rec.ID)
		if err != nil {
			return result, errors.Wrap(err, "ошибка получения вопросов теста")
		}
		result.Questions = make([]assessmentapimodels.QuestionView, 0, len(questions))
		for _, question := range questions {
			result.Questions = append(result.Questions, assessmentapimodels.ConvertQuestion(question))
		}
	}
	return result, nil
}

// CandidateComplete - идемпотентное завершение теста кандидатом.
// Сериализация по заявке: блокировка в процессе + условная запись
// completed_at (set-if-null) в хранилище, эффективную запись выполняет
// ровно один запрос, остальные получают ранее зафиксированный результат.
// Операция не пишет score/reviewed_by/reviewed_at/is_qualified/processed_at -
// эти поля принадлежат только пути проверяющего.
func (i impl) CandidateComplete(ctx context.Context, applicationID, candidateID string, answers []assessmentapimodels.AnswerItem) (completedAt time.Time, err error) {
	logger := log.
		WithField("application_id", applicationID).
		WithField("candidate_id", candidateID)

	effective := false
	locked, err := lock.WithDelay(ctx, "assessment-submit-"+applicationID, submitLockWait, func() error {
		completedAt, effective, err = i.candidateCompleteLocked(applicationID, candidateID, answers)
		return err
	})
	if err != nil {
		return time.Time{}, err
	}
	if !locked {
		return time.Time{}, ErrSubmitBusy
	}
	if !effective {
		// повторная отправка: результат уже зафиксирован, новый артефакт не нужен
		return completedAt, nil
	}

	// резервная копия сырых ответов - артефакт восстановления вне основной БД,
	// ее отказ не отменяет уже зафиксированное завершение
	backupErr := submissionbackup.Instance.SaveSubmission(ctx, candidateID, applicationID, completedAt,
		map[string]interface{}{
			"application_id": applicationID,
			"candidate_id":   candidateID,
			"completed_at":   completedAt,
			"answers":        answers,
		})
	if backupErr != nil {
		logger.WithError(backupErr).Error("ошибка записи резервной копии ответов, завершение теста сохранено")
	}
	return completedAt, nil
}

func (i impl) candidateCompleteLocked(applicationID, candidateID string, answers []assessmentapimodels.AnswerItem) (completedAt time.Time, effective bool, err error) {
	now := time.Now()
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		rec, active, err := i.findAssessment(tx, applicationID)
		if err != nil {
			return err
		}
		prior, err := submitDecision(active, availability.Evaluate(windowOf(*rec), now))
		if err != nil {
			return err
		}
		if prior != nil {
			completedAt = *prior
			return nil
		}

		historyStore := pipelinestore.NewInstance(tx)
		updated, err := historyStore.SetCompleted(active.ID, now, completionNote)
		if err != nil {
			return errors.Wrap(err, "ошибка фиксации завершения теста")
		}
		if !updated {
			// гонку выиграл параллельный запрос, читаем его результат
			current, err := historyStore.GetActive(applicationID)
			if err != nil {
				return errors.Wrap(err, "ошибка чтения записи после гонки отправок")
			}
			completedAt, err = raceWinnerCompletion(current)
			return err
		}
		completedAt = now
		effective = true

		aStore := answerstore.NewInstance(tx)
		rows := buildAnswerRows(applicationID, candidateID, answers, now)
		err = aStore.ReplaceForApplication(applicationID, rows)
		if err != nil {
			return errors.Wrap(err, "ошибка сохранения ответов")
		}
		return nil
	})
	if err != nil {
		return time.Time{}, false, err
	}
	return completedAt, effective, nil
}

// ReviewerEvaluate - оценка проверяющим: только после завершения кандидатом,
// факт кандидата (completed_at) не перезаписывается никогда.
func (i impl) ReviewerEvaluate(applicationID, reviewerID string, score float64, isQualified bool, notes string) error {
	now := time.Now()
	return db.DB.Transaction(func(tx *gorm.DB) error {
		historyStore := pipelinestore.NewInstance(tx)
		active, err := historyStore.GetActive(applicationID)
		if err != nil {
			return errors.Wrap(err, "ошибка получения активной записи")
		}
		if err = evaluateGuard(active); err != nil {
			return err
		}
		if isRepeatEvaluation(active, reviewerID, score, isQualified, notes) {
			return nil
		}
		updMap := evaluationUpdates(active, reviewerID, score, isQualified, notes, now)
		err = historyStore.UpdateActive(applicationID, updMap)
		if err != nil {
			return errors.Wrap(err, "ошибка сохранения оценки")
		}
		log.
			WithField("application_id", applicationID).
			WithField("reviewer_id", reviewerID).
			WithField("score", score).
			Info("сохранена оценка теста")
		return nil
	})
}

func (i impl) findAssessment(tx *gorm.DB, applicationID string) (*dbmodels.Assessment, *dbmodels.HistoryEntry, error) {
	historyStore := pipelinestore.NewInstance(tx)
	active, err := historyStore.GetActive(applicationID)
	if err != nil {
		return nil, nil, errors.Wrap(err, "ошибка получения активной записи")
	}
	if active == nil {
		return nil, nil, ErrApplicationNotFound
	}
	if active.Status == nil || active.Status.StageTag != models.StageTest {
		return nil, nil, ErrNoActiveAssessment
	}

	appStore := applicationstore.NewInstance(tx)
	app, err := appStore.GetByID(applicationID)
	if err != nil {
		return nil, nil, errors.Wrap(err, "ошибка получения заявки")
	}
	if app == nil {
		return nil, nil, ErrApplicationNotFound
	}

	store := assessmentstore.NewInstance(tx)
	rec, err := store.GetByOpeningID(app.OpeningID)
	if err != nil {
		return nil, nil, errors.Wrap(err, "ошибка получения теста")
	}
	if rec == nil {
		return nil, nil, ErrNoActiveAssessment
	}
	return rec, active, nil
}

func windowOf(rec dbmodels.Assessment) availability.Window {
	return availability.Window{
		OpensAt:         rec.OpensAt,
		ClosesAt:        rec.ClosesAt,
		DurationMinutes: rec.DurationMinutes,
	}
}

func windowView(rec dbmodels.Assessment, st availability.State) assessmentapimodels.AssessmentWindowView {
	return assessmentapimodels.AssessmentWindowView{
		OpensAt:         rec.OpensAt,
		ClosesAt:        rec.ClosesAt,
		DurationMinutes: rec.DurationMinutes,
		IsAvailable:     st.IsAvailable,
		IsUpcoming:      st.IsUpcoming,
		IsExpired:       st.IsExpired,
		TimeUntilStart:  st.TimeUntilStart,
		TimeUntilEnd:    st.TimeUntilEnd,
	}
}

// submitDecision - исход отправки по активной записи: зафиксированное ранее
// завершение возвращается как есть даже после закрытия окна (повторная отправка
// идемпотентна и не может "протухнуть"), окно проверяется только для первой записи
func submitDecision(active *dbmodels.HistoryEntry, st availability.State) (prior *time.Time, err error) {
	if active.CompletedAt != nil {
		return active.CompletedAt, nil
	}
	return nil, submitGuard(st)
}

// raceWinnerCompletion - после проигранной условной записи у активной записи
// обязан быть completed_at параллельного победителя
func raceWinnerCompletion(current *dbmodels.HistoryEntry) (time.Time, error) {
	if current == nil || current.CompletedAt == nil {
		return time.Time{}, errors.New("завершение теста не зафиксировано")
	}
	return *current.CompletedAt, nil
}

func submitGuard(st availability.State) error {
	if st.IsUpcoming {
		return ErrWindowNotOpen
	}
	if st.IsExpired {
		return ErrWindowExpired
	}
	return nil
}

func evaluateGuard(active *dbmodels.HistoryEntry) error {
	if active == nil {
		return ErrApplicationNotFound
	}
	if active.Status == nil || active.Status.StageTag != models.StageTest {
		return ErrNoActiveAssessment
	}
	if active.CompletedAt == nil {
		return ErrNotCompleted
	}
	return nil
}

func buildQuestionRows(assessmentID string, questions []assessmentapimodels.QuestionRequest) []dbmodels.AssessmentQuestion {
	rows := make([]dbmodels.AssessmentQuestion, 0, len(questions))
	for _, question := range questions {
		choices := dbmodels.QuestionChoices{}
		for _, text := range question.Choices {
			choices.Choices = append(choices.Choices, dbmodels.QuestionChoice{
				ID:   uuid.NewString(),
				Text: text,
			})
		}
		rows = append(rows, dbmodels.AssessmentQuestion{
			AssessmentID: assessmentID,
			QuestionText: question.Text,
			Choices:      choices,
		})
	}
	return rows
}

// buildAnswerRows - ровно одна строка на вопрос, последняя версия ответа побеждает
func buildAnswerRows(applicationID, candidateID string, answers []assessmentapimodels.AnswerItem, now time.Time) []dbmodels.AssessmentAnswer {
	byQuestion := make(map[string]string, len(answers))
	order := make([]string, 0, len(answers))
	for _, item := range answers {
		if _, ok := byQuestion[item.QuestionID]; !ok {
			order = append(order, item.QuestionID)
		}
		byQuestion[item.QuestionID] = item.ChoiceID
	}
	rows := make([]dbmodels.AssessmentAnswer, 0, len(order))
	for _, questionID := range order {
		rows = append(rows, dbmodels.AssessmentAnswer{
			ApplicationID: applicationID,
			CandidateID:   candidateID,
			QuestionID:    questionID,
			ChoiceID:      byQuestion[questionID],
			AnsweredAt:    now,
		})
	}
	return rows
}

func isRepeatEvaluation(active *dbmodels.HistoryEntry, reviewerID string, score float64, isQualified bool, notes string) bool {
	if active.ReviewedBy == nil || *active.ReviewedBy != reviewerID {
		return false
	}
	if active.Score == nil || *active.Score != score {
		return false
	}
	if active.IsQualified == nil || *active.IsQualified != isQualified {
		return false
	}
	if active.Notes == nil {
		return false
	}
	return *active.Notes == mergeReviewerNotes(active.Notes, notes)
}

// evaluationUpdates - поля пути проверяющего; completed_at и processed_at
// сюда не попадают ни при каких входных данных
func evaluationUpdates(active *dbmodels.HistoryEntry, reviewerID string, score float64, isQualified bool, notes string, now time.Time) map[string]interface{} {
	return map[string]interface{}{
		"score":        score,
		"is_qualified": isQualified,
		"reviewed_by":  reviewerID,
		"reviewed_at":  now,
		"notes":        mergeReviewerNotes(active.Notes, notes),
	}
}

// mergeReviewerNotes - заметка кандидатского завершения сохраняется первой строкой,
// строка проверяющего помечена префиксом и заменяется при повторной оценке
func mergeReviewerNotes(existing *string, reviewerNote string) string {
	kept := []string{}
	if existing != nil {
		for _, line := range strings.Split(*existing, "\n") {
			if strings.HasPrefix(line, reviewerNotePrefix) {
				continue
			}
			kept = append(kept, line)
		}
	}
	if reviewerNote != "" {
		kept = append(kept, reviewerNotePrefix+reviewerNote)
	}
	return strings.Join(kept, "\n")
}
