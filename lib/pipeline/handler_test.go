package pipelinehandler

import (
	"testing"

	"candidate-flow-backend/models"
	dbmodels "candidate-flow-backend/models/db"

	"github.com/stretchr/testify/require"
)

func entryWithStage(tag models.StageTag) *dbmodels.HistoryEntry {
	return &dbmodels.HistoryEntry{
		IsActive: true,
		Status:   &dbmodels.Status{StageTag: tag},
	}
}

func TestEnterGuard(t *testing.T) {
	t.Run(`first entry check`, func(t *testing.T) {
		require.Nil(t, enterGuard(nil, 0))
	})

	t.Run(`regular advancement check`, func(t *testing.T) {
		for _, tag := range []models.StageTag{models.StageAdministration, models.StageTest, models.StageInterviewHR, models.StageInterviewUser, models.StageMedicalCheckup} {
			require.Nil(t, enterGuard(entryWithStage(tag), 1))
		}
	})

	t.Run(`terminal state check`, func(t *testing.T) {
		err := enterGuard(entryWithStage(models.StageHired), 1)
		require.ErrorIs(t, err, ErrTerminalState)

		err = enterGuard(entryWithStage(models.StageRejected), 1)
		require.ErrorIs(t, err, ErrTerminalState)
	})

	t.Run(`ledger conflict check`, func(t *testing.T) {
		err := enterGuard(entryWithStage(models.StageTest), 2)
		require.ErrorIs(t, err, ErrLedgerConflict)
	})
}
