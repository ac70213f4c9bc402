package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStageTag(t *testing.T) {
	t.Run(`order of stages check`, func(t *testing.T) {
		require.True(t, StageAdministration.Order() < StageTest.Order())
		require.True(t, StageTest.Order() < StageInterviewHR.Order())
		require.True(t, StageInterviewHR.Order() < StageInterviewUser.Order())
		require.True(t, StageInterviewUser.Order() < StageMedicalCheckup.Order())
		require.True(t, StageMedicalCheckup.Order() < StageHired.Order())
		require.Equal(t, StageHired.Order(), StageRejected.Order())
	})

	t.Run(`terminal stages check`, func(t *testing.T) {
		require.True(t, StageHired.IsTerminal())
		require.True(t, StageRejected.IsTerminal())
		for _, tag := range []StageTag{StageAdministration, StageTest, StageInterviewHR, StageInterviewUser, StageMedicalCheckup} {
			require.False(t, tag.IsTerminal())
		}
	})

	t.Run(`validity check`, func(t *testing.T) {
		for _, tag := range StageTags() {
			require.True(t, tag.IsValid())
		}
		require.False(t, StageTag("psikotes").IsValid())
		require.False(t, StageTag("").IsValid())
	})
}
