package assessmenthandler

import (
	"testing"
	"time"

	"candidate-flow-backend/lib/availability"
	"candidate-flow-backend/models"
	assessmentapimodels "candidate-flow-backend/models/api/assessment"
	dbmodels "candidate-flow-backend/models/db"

	"github.com/stretchr/testify/require"
)

func TestSubmitGuard(t *testing.T) {
	t0 := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	window := availability.Window{OpensAt: t0, ClosesAt: t0.Add(2 * time.Hour)}

	t.Run(`upcoming window is rejected`, func(t *testing.T) {
		err := submitGuard(availability.Evaluate(window, t0.Add(-time.Minute)))
		require.ErrorIs(t, err, ErrWindowNotOpen)
	})

	t.Run(`open window is allowed`, func(t *testing.T) {
		err := submitGuard(availability.Evaluate(window, t0.Add(time.Minute)))
		require.Nil(t, err)
	})

	t.Run(`expired window is rejected`, func(t *testing.T) {
		err := submitGuard(availability.Evaluate(window, t0.Add(3*time.Hour)))
		require.ErrorIs(t, err, ErrWindowExpired)
	})
}

func TestSubmitDecision(t *testing.T) {
	t0 := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	window := availability.Window{OpensAt: t0, ClosesAt: t0.Add(2 * time.Hour)}
	completed := t0.Add(30 * time.Minute)

	t.Run(`first submission in open window proceeds`, func(t *testing.T) {
		prior, err := submitDecision(&dbmodels.HistoryEntry{}, availability.Evaluate(window, t0.Add(time.Minute)))
		require.Nil(t, err)
		require.Nil(t, prior)
	})

	t.Run(`resubmission returns stored result`, func(t *testing.T) {
		active := &dbmodels.HistoryEntry{CompletedAt: &completed}
		prior, err := submitDecision(active, availability.Evaluate(window, t0.Add(time.Hour)))
		require.Nil(t, err)
		require.NotNil(t, prior)
		require.Equal(t, completed, *prior)
	})

	t.Run(`resubmission after window closed still returns stored result`, func(t *testing.T) {
		active := &dbmodels.HistoryEntry{CompletedAt: &completed}
		prior, err := submitDecision(active, availability.Evaluate(window, t0.Add(3*time.Hour)))
		require.Nil(t, err)
		require.NotNil(t, prior)
		require.Equal(t, completed, *prior)
	})

	t.Run(`first submission outside window is rejected`, func(t *testing.T) {
		_, err := submitDecision(&dbmodels.HistoryEntry{}, availability.Evaluate(window, t0.Add(-time.Minute)))
		require.ErrorIs(t, err, ErrWindowNotOpen)

		_, err = submitDecision(&dbmodels.HistoryEntry{}, availability.Evaluate(window, t0.Add(3*time.Hour)))
		require.ErrorIs(t, err, ErrWindowExpired)
	})
}

func TestRaceWinnerCompletion(t *testing.T) {
	completed := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)

	t.Run(`winner result is returned`, func(t *testing.T) {
		at, err := raceWinnerCompletion(&dbmodels.HistoryEntry{CompletedAt: &completed})
		require.Nil(t, err)
		require.Equal(t, completed, at)
	})

	t.Run(`missing completion is an error`, func(t *testing.T) {
		_, err := raceWinnerCompletion(nil)
		require.Error(t, err)

		_, err = raceWinnerCompletion(&dbmodels.HistoryEntry{})
		require.Error(t, err)
	})
}

func TestEvaluateGuard(t *testing.T) {
	completed := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)

	t.Run(`missing entry check`, func(t *testing.T) {
		require.ErrorIs(t, evaluateGuard(nil), ErrApplicationNotFound)
	})

	t.Run(`wrong stage check`, func(t *testing.T) {
		rec := &dbmodels.HistoryEntry{
			Status:      &dbmodels.Status{StageTag: models.StageInterviewHR},
			CompletedAt: &completed,
		}
		require.ErrorIs(t, evaluateGuard(rec), ErrNoActiveAssessment)
	})

	t.Run(`unattempted assessment check`, func(t *testing.T) {
		rec := &dbmodels.HistoryEntry{
			Status: &dbmodels.Status{StageTag: models.StageTest},
		}
		require.ErrorIs(t, evaluateGuard(rec), ErrNotCompleted)
	})

	t.Run(`completed assessment check`, func(t *testing.T) {
		rec := &dbmodels.HistoryEntry{
			Status:      &dbmodels.Status{StageTag: models.StageTest},
			CompletedAt: &completed,
		}
		require.Nil(t, evaluateGuard(rec))
	})
}

func TestBuildAnswerRows(t *testing.T) {
	now := time.Now()

	t.Run(`one row per question check`, func(t *testing.T) {
		rows := buildAnswerRows("app-1", "cand-1", []assessmentapimodels.AnswerItem{
			{QuestionID: "q1", ChoiceID: "a"},
			{QuestionID: "q2", ChoiceID: "b"},
			{QuestionID: "q1", ChoiceID: "c"}, // кандидат передумал
		}, now)
		require.Len(t, rows, 2)
		require.Equal(t, "q1", rows[0].QuestionID)
		require.Equal(t, "c", rows[0].ChoiceID)
		require.Equal(t, "q2", rows[1].QuestionID)
		require.Equal(t, "b", rows[1].ChoiceID)
		for _, row := range rows {
			require.Equal(t, "app-1", row.ApplicationID)
			require.Equal(t, "cand-1", row.CandidateID)
			require.Equal(t, now, row.AnsweredAt)
		}
	})

	t.Run(`empty submission check`, func(t *testing.T) {
		rows := buildAnswerRows("app-1", "cand-1", nil, now)
		require.Len(t, rows, 0)
	})
}

func TestBuildQuestionRows(t *testing.T) {
	t.Run(`rows are rebuilt for the assessment`, func(t *testing.T) {
		rows := buildQuestionRows("assessment-1", []assessmentapimodels.QuestionRequest{
			{Text: "Вопрос 1", Choices: []string{"да", "нет"}},
			{Text: "Вопрос 2", Choices: []string{"a", "b", "c"}},
		})
		require.Len(t, rows, 2)
		for _, row := range rows {
			require.Equal(t, "assessment-1", row.AssessmentID)
			require.Empty(t, row.ID) // идентификатор присваивает БД при вставке
		}
		require.Equal(t, "Вопрос 1", rows[0].QuestionText)
		require.Len(t, rows[0].Choices.Choices, 2)
		require.Len(t, rows[1].Choices.Choices, 3)
		require.Equal(t, "c", rows[1].Choices.Choices[2].Text)
		require.NotEmpty(t, rows[0].Choices.Choices[0].ID)
		require.NotEqual(t, rows[0].Choices.Choices[0].ID, rows[0].Choices.Choices[1].ID)
	})

	t.Run(`empty question list`, func(t *testing.T) {
		require.Len(t, buildQuestionRows("assessment-1", nil), 0)
	})
}

func TestWriteSeparation(t *testing.T) {
	completed := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)

	t.Run(`evaluation never touches candidate fields`, func(t *testing.T) {
		note := completionNote
		active := &dbmodels.HistoryEntry{
			Status:      &dbmodels.Status{StageTag: models.StageTest},
			CompletedAt: &completed,
			Notes:       &note,
		}
		updMap := evaluationUpdates(active, "reviewer-1", 80, true, "хороший результат", time.Now())
		require.NotContains(t, updMap, "completed_at")
		require.NotContains(t, updMap, "processed_at")
		require.Contains(t, updMap, "score")
		require.Contains(t, updMap, "is_qualified")
		require.Contains(t, updMap, "reviewed_by")
		require.Contains(t, updMap, "reviewed_at")
	})

	t.Run(`candidate note survives evaluation`, func(t *testing.T) {
		note := completionNote
		active := &dbmodels.HistoryEntry{Notes: &note}
		updMap := evaluationUpdates(active, "reviewer-1", 80, true, "хороший результат", time.Now())
		merged, ok := updMap["notes"].(string)
		require.True(t, ok)
		require.Equal(t, completionNote+"\n"+reviewerNotePrefix+"хороший результат", merged)
	})
}

func TestMergeReviewerNotes(t *testing.T) {
	t.Run(`second evaluation replaces reviewer line only`, func(t *testing.T) {
		first := mergeReviewerNotes(strPtr(completionNote), "слабо")
		second := mergeReviewerNotes(&first, "пересмотрено: норма")
		require.Equal(t, completionNote+"\n"+reviewerNotePrefix+"пересмотрено: норма", second)
	})

	t.Run(`empty reviewer note keeps candidate note`, func(t *testing.T) {
		merged := mergeReviewerNotes(strPtr(completionNote), "")
		require.Equal(t, completionNote, merged)
	})

	t.Run(`no candidate note`, func(t *testing.T) {
		merged := mergeReviewerNotes(nil, "ок")
		require.Equal(t, reviewerNotePrefix+"ок", merged)
	})
}

func TestIsRepeatEvaluation(t *testing.T) {
	completed := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	reviewer := "reviewer-1"
	score := 80.0
	qualified := true

	makeEntry := func() *dbmodels.HistoryEntry {
		notes := mergeReviewerNotes(strPtr(completionNote), "ок")
		return &dbmodels.HistoryEntry{
			Status:      &dbmodels.Status{StageTag: models.StageTest},
			CompletedAt: &completed,
			ReviewedBy:  &reviewer,
			Score:       &score,
			IsQualified: &qualified,
			Notes:       &notes,
		}
	}

	t.Run(`identical resubmission is no-op`, func(t *testing.T) {
		require.True(t, isRepeatEvaluation(makeEntry(), "reviewer-1", 80, true, "ок"))
	})

	t.Run(`different reviewer overwrites`, func(t *testing.T) {
		require.False(t, isRepeatEvaluation(makeEntry(), "reviewer-2", 80, true, "ок"))
	})

	t.Run(`changed score overwrites`, func(t *testing.T) {
		require.False(t, isRepeatEvaluation(makeEntry(), "reviewer-1", 75, true, "ок"))
	})

	t.Run(`unreviewed entry is not a repeat`, func(t *testing.T) {
		rec := makeEntry()
		rec.ReviewedBy = nil
		require.False(t, isRepeatEvaluation(rec, "reviewer-1", 80, true, "ок"))
	})
}

func strPtr(s string) *string {
	return &s
}
