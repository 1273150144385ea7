package initializers

import (
	"context"

	"mock-interview-backend/config"
	filestorage "mock-interview-backend/lib/file-storage"
	s3client "mock-interview-backend/s3"

	log "github.com/sirupsen/logrus"
)

// InitS3 без S3 сервис работает, но не хранит документы и записи ответов
func InitS3(ctx context.Context) {
	if config.Conf.S3.AccessKeyID == "" {
		log.Warn("S3 не настроен, файлы сохраняться не будут")
		return
	}
	minioClient, err := s3client.NewClient()
	if err != nil {
		log.WithError(err).Error("Ошибка инициализации клиента S3")
		return
	}
	if err = s3client.MakeBucket(ctx, minioClient, config.Conf.S3.BucketName); err != nil {
		log.WithError(err).Error("S3 соединение не удалось")
		return
	}
	s3client.Client = minioClient
	filestorage.NewHandler(minioClient, config.Conf.S3.BucketName)
	log.Info("S3 клиент успешно инициализирован")
}
