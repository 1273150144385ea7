package initializers

import (
	"context"
	"time"

	"mock-interview-backend/config"
	"mock-interview-backend/fiberlog"
	xlsexport "mock-interview-backend/lib/export/xls"
	gpthandler "mock-interview-backend/lib/gpt"
	"mock-interview-backend/lib/interview"
	cleanupworker "mock-interview-backend/lib/interview/cleanup-worker"
	"mock-interview-backend/lib/speech"
	connectionhub "mock-interview-backend/lib/ws/hub/connection-hub"

	log "github.com/sirupsen/logrus"
)

var LoggerConfig *fiberlog.Config

func InitAllServices(ctx context.Context) {
	LoggerConfig = InitLogger()
	config.InitConfig()
	InitDBConnection()
	InitS3(ctx)
	InitSmtp()
	connectionhub.Init()
	gpthandler.NewHandler()
	speech.NewHandler()
	xlsexport.NewHandler()
	interview.NewHandler()
	restoreSessions()
	go initWorkers(ctx)
}

func restoreSessions() {
	loaded, err := interview.Instance.LoadActive()
	if err != nil {
		log.WithError(err).Error("ошибка восстановления незавершенных интервью")
		return
	}
	log.Infof("восстановлено незавершенных интервью: %d", loaded)
}

// запускаем с задержкой, чтобы не нагружать старт
func initWorkers(ctx context.Context) {
	if makeTimeGap(ctx) {
		// Задача выгрузки из памяти неактивных сессий интервью
		cleanupworker.StartWorker(ctx)
	}
}

func makeTimeGap(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(time.Second * 10):
		return true
	}
}
