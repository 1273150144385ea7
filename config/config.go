package config

import (
	"time"

	"github.com/gotify/configor"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

var Conf *Configuration

type Configuration struct {
	App struct {
		ListenAddr string `default:"" env:"APP_HOST"`
		Port       int    `default:"8080"  env:"APP_PORT"`
		BodyLimit  int    `default:"52428800" env:"APP_BODY_LIMIT"` // байт
		// адрес для уведомлений об ошибках 5xx, пусто - не отправлять
		ErrNotifyURL string `default:"" env:"APP_ERR_NOTIFY_URL"`
	}
	Database struct {
		Host           string `default:"127.0.0.1" env:"DB_HOST"`
		Port           string `default:"5432" env:"DB_PORT"`
		Name           string `default:"mock-interview" env:"DB_NAME"`
		User           string `default:"postgres" env:"DB_USER"`
		Password       string `default:"postgres" env:"DB_PASSWORD"`
		MigrateOnStart *bool  `default:"true" env:"DB_MIGRATE_ON_START"`
		DebugMode      *bool  `default:"false" env:"DB_DEBUG_MODE"`
	}
	S3 struct {
		Endpoint        string `default:"127.0.0.1:9000" env:"S3_ENDPOINT"`
		AccessKeyID     string `default:"" env:"S3_ACCESS_KEY_ID"`
		SecretAccessKey string `default:"" env:"S3_SECRET_ACCESS_KEY"`
		BucketName      string `default:"mock-interview" env:"S3_BUCKET_NAME"`
		UseSSL          *bool  `default:"false" env:"S3_USE_SSL"`
	}
	Smtp struct {
		User       string `default:"" env:"SMTP_USER"`
		Password   string `default:"" env:"SMTP_PASSWORD"`
		Host       string `default:"" env:"SMTP_HOST"`
		Port       string `default:"" env:"SMTP_PORT"`
		TLSEnabled *bool  `default:"true" env:"SMTP_TLS_ENABLED"`
	}
	Auth struct {
		JWTSecret string `default:"" env:"JWT_SECRET"`
	}
	AI struct {
		Provider  string `default:"yandexgpt" env:"AI_PROVIDER"` // yandexgpt | openai
		YandexGPT struct {
			IAMToken  string        `default:"" env:"YANDEX_GPT_IAM_TOKEN"`
			CatalogID string        `default:"" env:"YANDEX_GPT_CATALOG_ID"`
			Timeout   time.Duration `default:"60s" env:"YANDEX_GPT_TIMEOUT"`
			Attempts  int           `default:"2" env:"YANDEX_GPT_ATTEMPTS"`
		}
		OpenAI struct {
			APIKey          string  `default:"" env:"OPENAI_API_KEY"`
			BaseURL         string  `default:"" env:"OPENAI_BASE_URL"`
			ChatModel       string  `default:"gpt-4o" env:"OPENAI_CHAT_MODEL"`
			Temperature     float64 `default:"0.7" env:"OPENAI_TEMPERATURE"`
			TranscribeModel string  `default:"whisper-1" env:"OPENAI_TRANSCRIBE_MODEL"`
			SpeechModel     string  `default:"tts-1" env:"OPENAI_SPEECH_MODEL"`
			Voice           string  `default:"alloy" env:"OPENAI_VOICE"`
		}
	}
	Interview struct {
		QuestionCount   int           `default:"5" env:"INTERVIEW_QUESTION_COUNT"`
		MaxQuestions    int           `default:"15" env:"INTERVIEW_MAX_QUESTIONS"`
		SessionTTL      time.Duration `default:"24h" env:"INTERVIEW_SESSION_TTL"`
		CleanupInterval time.Duration `default:"1h" env:"INTERVIEW_CLEANUP_INTERVAL"`
		AnswerLockWait  time.Duration `default:"30s" env:"INTERVIEW_ANSWER_LOCK_WAIT"`
	}
	Export struct {
		FontDir string `default:"" env:"EXPORT_FONT_DIR"` // каталог с Arial.ttf, без него используется встроенный шрифт
	}
}

func configFiles() []string {
	return []string{"config.yml"}
}

func InitConfig() {
	if Conf != nil {
		return
	}
	if err := godotenv.Load(); err != nil {
		log.Info(".env файл не найден, используются переменные окружения")
	}
	conf := new(Configuration)
	err := configor.New(&configor.Config{}).Load(conf, configFiles()...)
	if err != nil {
		panic(err)
	}
	Conf = conf
}
