package config

import (
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host    string `yaml:"host"`
		Port    int    `yaml:"port"`
		Env     string `yaml:"env"`
		BaseURL string `yaml:"base_url"` // для ссылок в письмах (reset, invite)
	} `yaml:"server"`

	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`

	JWT struct {
		Secret string `yaml:"secret"`
		TTL    int    `yaml:"ttl"` // минуты
	} `yaml:"jwt"`

	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUsername string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
		FromName     string `yaml:"from_name"`
		Enabled      bool   `yaml:"enabled"`
	} `yaml:"email"`

	Storage struct {
		BasePath string `yaml:"base_path"` // корень локального хранилища
		BaseURL  string `yaml:"base_url"`  // публичный префикс /api/v1/files
	} `yaml:"storage"`

	Upload struct {
		MaxProofSize int64 `yaml:"max_proof_size"` // байты, лимит на чек оплаты
	} `yaml:"upload"`

	Checkout struct {
		WebhookURL string `yaml:"webhook_url"` // внешний checkout endpoint
		TimeoutSec int    `yaml:"timeout_sec"`
	} `yaml:"checkout"`

	Admin struct {
		Email    string `yaml:"email"` // первый супер-админ, создается при старте
		Password string `yaml:"password"`
	} `yaml:"admin"`
}

var AppConfig *Config

// LoadConfig загружает конфигурацию: из env (режим теста) или из config.yaml
func LoadConfig() {
	var cfg Config

	dbURL := os.Getenv("DATABASE_URL")

	if dbURL == "" {
		configPath := os.Getenv("CONFIG_PATH")
		if configPath == "" {
			configPath = "config/config.yaml"
		}

		f, err := os.Open(configPath)
		if err != nil {
			log.Fatalf("Failed to open config file at %s: %v", configPath, err)
		}
		defer f.Close()

		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(&cfg); err != nil {
			log.Fatalf("Failed to parse config file at %s: %v", configPath, err)
		}

		applyDefaults(&cfg)
		AppConfig = &cfg
		return
	}

	// Режим теста: конфигурация из переменных окружения
	cfg.Database.DSN = dbURL
	cfg.Server.Env = os.Getenv("SERVER_ENV")
	cfg.Server.Port, _ = strconv.Atoi(os.Getenv("SERVER_PORT"))
	cfg.Server.BaseURL = "http://localhost:4000"
	cfg.JWT.Secret = os.Getenv("JWT_SECRET")
	cfg.JWT.TTL = 60

	cfg.Email.SMTPHost = "smtp.test.com"
	cfg.Email.SMTPPort = 587
	cfg.Email.FromEmail = "noreply@coachdeck.test"
	cfg.Email.FromName = "CoachDeck"
	cfg.Email.Enabled = false

	cfg.Storage.BasePath = "./uploads"
	cfg.Storage.BaseURL = "/api/v1/files"

	cfg.Checkout.WebhookURL = os.Getenv("CHECKOUT_WEBHOOK_URL")

	applyDefaults(&cfg)
	AppConfig = &cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 4000
	}
	if cfg.JWT.TTL == 0 {
		cfg.JWT.TTL = 24 * 60
	}
	if cfg.Upload.MaxProofSize == 0 {
		cfg.Upload.MaxProofSize = 10 * 1024 * 1024 // 10MB
	}
	if cfg.Checkout.TimeoutSec == 0 {
		cfg.Checkout.TimeoutSec = 15
	}
	if cfg.Storage.BasePath == "" {
		cfg.Storage.BasePath = "./uploads"
	}
	if cfg.Storage.BaseURL == "" {
		cfg.Storage.BaseURL = "/api/v1/files"
	}
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}
