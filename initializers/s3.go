package initializers

import (
	"context"

	submissionbackup "candidate-flow-backend/lib/assessment/backup"
	s3client "candidate-flow-backend/s3"

	log "github.com/sirupsen/logrus"
)

func InitS3(ctx context.Context) {
	client, err := s3client.NewClient()
	if err != nil {
		log.WithError(err).Error("Ошибка инициализации клиента S3, резервные копии ответов недоступны")
		submissionbackup.NewHandler(nil)
		return
	}

	err = client.EnsureBucket(ctx)
	if err != nil {
		log.WithError(err).Error("S3 соединение не удалось - бакет недоступен")
	}

	submissionbackup.NewHandler(client)
	log.Info("S3 клиент успешно инициализирован")
}
