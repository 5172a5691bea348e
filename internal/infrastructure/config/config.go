package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

const (
	envProduction = "production"
	// minProductionBcryptCost is the lowest BCRYPT_COST accepted with ENV=production.
	minProductionBcryptCost = 12
)

type Config struct {
	Port       string `env:"PORT,        default=8080"`
	Env        string `env:"ENV,         default=development"`
	JWTSecret  string `env:"JWT_SECRET,  required"`
	LogLevel   string `env:"LOG_LEVEL,   default=info"`
	BcryptCost int    `env:"BCRYPT_COST, default=12"`

	Mongo   MongoConfig
	Redis   RedisConfig
	Storage StorageConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=menu_admin"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// StorageConfig selects and configures the image host.
type StorageConfig struct {
	Provider      string `env:"STORAGE_PROVIDER,       default=minio"`
	PublicBaseURL string `env:"STORAGE_PUBLIC_BASE_URL"`
	DefaultFolder string `env:"STORAGE_DEFAULT_FOLDER, default=menu-global"`
	Workers       int    `env:"IMAGE_WORKERS,          default=4"`

	Minio MinioConfig
	GCS   GCSConfig
}

type MinioConfig struct {
	Endpoint  string `env:"MINIO_ENDPOINT,   default=localhost:9000"`
	AccessKey string `env:"MINIO_ACCESS_KEY"`
	SecretKey string `env:"MINIO_SECRET_KEY"`
	Bucket    string `env:"MINIO_BUCKET,     default=menu-images"`
	UseSSL    bool   `env:"MINIO_USE_SSL,    default=false"`
}

type GCSConfig struct {
	Bucket          string `env:"GCS_BUCKET"`
	ProjectID       string `env:"GCS_PROJECT_ID"`
	CredentialsFile string `env:"GCS_CREDENTIALS_FILE"`
}

// IsProduction reports whether the process runs with ENV=production.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, envProduction)
}

// Load reads configuration from environment variables using go-envconfig.
// In development a local .env file is loaded first when present. A missing
// JWT_SECRET is an error: the process must not start without a signing secret.
func Load(ctx context.Context) (*Config, error) {
	if env := os.Getenv("ENV"); env == "" || strings.EqualFold(env, "development") {
		_ = godotenv.Load()
	}
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	if strings.TrimSpace(cfg.JWTSecret) == "" {
		return nil, fmt.Errorf("load configuration: JWT_SECRET must not be blank")
	}
	if cfg.IsProduction() && cfg.BcryptCost < minProductionBcryptCost {
		return nil, fmt.Errorf("load configuration: BCRYPT_COST must be at least %d in production, got %d",
			minProductionBcryptCost, cfg.BcryptCost)
	}
	return &cfg, nil
}
