package statuscatalogprovider

import (
	"testing"

	"candidate-flow-backend/models"
	dbmodels "candidate-flow-backend/models/db"

	"github.com/stretchr/testify/require"
)

type stubStore struct {
	byID map[string]*dbmodels.Status
}

func (s stubStore) Create(rec dbmodels.Status) (string, error) { return "", nil }

func (s stubStore) Update(id string, updMap map[string]interface{}) error { return nil }

func (s stubStore) List(activeOnly bool) ([]dbmodels.Status, error) { return nil, nil }
func (s stubStore) FirstByStage(tag models.StageTag) (*dbmodels.Status, error) {
	return nil, nil
}
func (s stubStore) Count() (int64, error) { return int64(len(s.byID)), nil }
func (s stubStore) GetByID(id string) (*dbmodels.Status, error) {
	return s.byID[id], nil
}

func TestStageOf(t *testing.T) {
	handler := impl{
		store: stubStore{
			byID: map[string]*dbmodels.Status{
				"status-test": {StageTag: models.StageTest},
			},
		},
	}

	t.Run(`known status resolves to its stage`, func(t *testing.T) {
		tag, err := handler.StageOf("status-test")
		require.Nil(t, err)
		require.Equal(t, models.StageTest, tag)
	})

	t.Run(`unknown status is an error`, func(t *testing.T) {
		_, err := handler.StageOf("status-missing")
		require.Error(t, err)
		require.Contains(t, err.Error(), "неизвестный статус")
	})
}
