package filestorage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Provider interface {
	UploadObject(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
	GetObject(ctx context.Context, key string) (body []byte, contentType string, err error)
	Exists(ctx context.Context, key string) (bool, error)
}

var Instance Provider

func NewHandler(s3client *minio.Client, bucketName string) {
	Instance = &impl{
		s3client:   s3client,
		bucketName: bucketName,
	}
}

type impl struct {
	s3client   *minio.Client
	bucketName string
}

func (i impl) UploadObject(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	_, err := i.s3client.PutObject(ctx, i.bucketName, key, reader, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return errors.Wrapf(err, "ошибка загрузки файла %s в S3", key)
	}
	log.WithField("key", key).Debug("файл загружен в S3")
	return nil
}

func (i impl) GetObject(ctx context.Context, key string) ([]byte, string, error) {
	obj, err := i.s3client.GetObject(ctx, i.bucketName, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, "", errors.Wrapf(err, "ошибка получения файла %s из S3", key)
	}
	defer obj.Close()
	info, err := obj.Stat()
	if err != nil {
		return nil, "", errors.Wrapf(err, "ошибка получения информации о файле %s", key)
	}
	body, err := io.ReadAll(obj)
	if err != nil {
		return nil, "", errors.Wrapf(err, "ошибка чтения файла %s", key)
	}
	return body, info.ContentType, nil
}

func (i impl) Exists(ctx context.Context, key string) (bool, error) {
	_, err := i.s3client.StatObject(ctx, i.bucketName, key, minio.StatObjectOptions{})
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return false, nil
		}
		return false, errors.Wrapf(err, "ошибка проверки наличия файла %s", key)
	}
	return true, nil
}

func DocumentKey(sessionID, kind, fileName string) string {
	return fmt.Sprintf("sessions/%s/documents/%s%s", sessionID, kind, strings.ToLower(filepath.Ext(fileName)))
}

func AnswerAudioKey(sessionID string, questionIndex int, fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	if ext == "" {
		ext = ".wav"
	}
	return fmt.Sprintf("sessions/%s/answers/%d%s", sessionID, questionIndex, ext)
}

func QuestionAudioKey(sessionID string, questionIndex int) string {
	return fmt.Sprintf("sessions/%s/questions/%d.mp3", sessionID, questionIndex)
}
