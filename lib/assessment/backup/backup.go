package submissionbackup

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	s3client "candidate-flow-backend/s3"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Резервная копия сырых ответов кандидата в S3.
// Артефакт восстановления, независимый от основной БД: ошибка записи
// не должна ронять фиксацию завершения теста - вызывающий только логирует ее.

type Provider interface {
	SaveSubmission(ctx context.Context, candidateID, applicationID string, takenAt time.Time, payload interface{}) error
}

var Instance Provider

func NewHandler(client s3client.Provider) {
	Instance = impl{
		client: client,
	}
}

type impl struct {
	client s3client.Provider
}

func (i impl) SaveSubmission(ctx context.Context, candidateID, applicationID string, takenAt time.Time, payload interface{}) error {
	if i.client == nil {
		return errors.New("клиент S3 не инициализирован")
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrap(err, "ошибка сериализации ответов для резервной копии")
	}
	objectName := fmt.Sprintf("submissions/%v/%v/%v-%v.json",
		candidateID, applicationID, takenAt.UTC().Unix(), uuid.NewString())
	err = i.client.Put(ctx, objectName, data, "application/json")
	if err != nil {
		return errors.Wrap(err, "ошибка записи резервной копии ответов в S3")
	}
	return nil
}
