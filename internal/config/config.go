package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server      ServerConfig
	DB          DBConfig
	JWT         JWTConfig
	S3          S3Config
	Log         LogConfig
	Registry    RegistryConfig
	Resolver    ResolverConfig
	Retriever   RetrieverConfig
	Extractor   ExtractorConfig
	Synthesizer SynthesizerConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings for the report audit log.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// JWTConfig holds bearer-token validation settings for the API.
type JWTConfig struct {
	Secret string `mapstructure:"secret"`
	Issuer string `mapstructure:"issuer"`
}

// S3Config holds report archive storage settings.
type S3Config struct {
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// RegistryConfig holds patient registration source settings.
type RegistryConfig struct {
	BaseURL     string `mapstructure:"base_url"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
}

// ResolverConfig holds asset reference discovery settings.
type ResolverConfig struct {
	HostMarkers []string `mapstructure:"host_markers"`
}

// RetrieverConfig holds asset download settings.
type RetrieverConfig struct {
	TimeoutSecs   int    `mapstructure:"timeout_secs"`
	Concurrency   int    `mapstructure:"concurrency"`
	ScratchDir    string `mapstructure:"scratch_dir"`
	MaxAssetMB    int64  `mapstructure:"max_asset_mb"`
	MaxFileSizeMB int64  `mapstructure:"max_file_size_mb"`
}

// ExtractorConfig holds text extraction settings.
type ExtractorConfig struct {
	Concurrency  int    `mapstructure:"concurrency"`
	TesseractBin string `mapstructure:"tesseract_bin"`
	OCREnabled   bool   `mapstructure:"ocr_enabled"`
}

// SynthesizerConfig holds generative-model service settings.
type SynthesizerConfig struct {
	Provider        string  `mapstructure:"provider"`
	APIKey          string  `mapstructure:"api_key"`
	DefaultModel    string  `mapstructure:"default_model"`
	TimeoutSecs     int     `mapstructure:"timeout_secs"`
	Temperature     float32 `mapstructure:"temperature"`
	Stage1MaxTokens int     `mapstructure:"stage1_max_tokens"`
	Stage2MaxTokens int     `mapstructure:"stage2_max_tokens"`
}

// Load reads configuration from environment variables with the MEDGEN_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("MEDGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "medgen")
	v.SetDefault("db.password", "medgen_secret")
	v.SetDefault("db.name", "medgen_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.issuer", "medgen")

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "medgen-reports")
	v.SetDefault("s3.endpoint", "")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// Registry defaults
	v.SetDefault("registry.base_url", "http://localhost:9000")
	v.SetDefault("registry.timeout_secs", 30)

	// Resolver defaults
	v.SetDefault("resolver.host_markers", "cloudinary.com")

	// Retriever defaults
	v.SetDefault("retriever.timeout_secs", 60)
	v.SetDefault("retriever.concurrency", 4)
	v.SetDefault("retriever.scratch_dir", "")
	v.SetDefault("retriever.max_asset_mb", 25)
	v.SetDefault("retriever.max_file_size_mb", 50)

	// Extractor defaults
	v.SetDefault("extractor.concurrency", 4)
	v.SetDefault("extractor.tesseract_bin", "tesseract")
	v.SetDefault("extractor.ocr_enabled", true)

	// Synthesizer defaults
	v.SetDefault("synthesizer.provider", "openai")
	v.SetDefault("synthesizer.api_key", "")
	v.SetDefault("synthesizer.default_model", "gpt-4o")
	v.SetDefault("synthesizer.timeout_secs", 120)
	v.SetDefault("synthesizer.temperature", 0.2)
	v.SetDefault("synthesizer.stage1_max_tokens", 4000)
	v.SetDefault("synthesizer.stage2_max_tokens", 8000)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                   "MEDGEN_SERVER_PORT",
		"server.read_timeout":           "MEDGEN_SERVER_READ_TIMEOUT",
		"server.write_timeout":          "MEDGEN_SERVER_WRITE_TIMEOUT",
		"server.environment":            "MEDGEN_SERVER_ENVIRONMENT",
		"db.host":                       "MEDGEN_DB_HOST",
		"db.port":                       "MEDGEN_DB_PORT",
		"db.user":                       "MEDGEN_DB_USER",
		"db.password":                   "MEDGEN_DB_PASSWORD",
		"db.name":                       "MEDGEN_DB_NAME",
		"db.sslmode":                    "MEDGEN_DB_SSLMODE",
		"db.max_open":                   "MEDGEN_DB_MAX_OPEN",
		"db.max_idle":                   "MEDGEN_DB_MAX_IDLE",
		"jwt.secret":                    "MEDGEN_JWT_SECRET",
		"jwt.issuer":                    "MEDGEN_JWT_ISSUER",
		"s3.region":                     "MEDGEN_S3_REGION",
		"s3.bucket":                     "MEDGEN_S3_BUCKET",
		"s3.endpoint":                   "MEDGEN_S3_ENDPOINT",
		"s3.access_key":                 "MEDGEN_S3_ACCESS_KEY",
		"s3.secret_key":                 "MEDGEN_S3_SECRET_KEY",
		"log.level":                     "MEDGEN_LOG_LEVEL",
		"log.format":                    "MEDGEN_LOG_FORMAT",
		"registry.base_url":             "MEDGEN_REGISTRY_BASE_URL",
		"registry.timeout_secs":         "MEDGEN_REGISTRY_TIMEOUT_SECS",
		"resolver.host_markers":         "MEDGEN_RESOLVER_HOST_MARKERS",
		"retriever.timeout_secs":        "MEDGEN_RETRIEVER_TIMEOUT_SECS",
		"retriever.concurrency":         "MEDGEN_RETRIEVER_CONCURRENCY",
		"retriever.scratch_dir":         "MEDGEN_RETRIEVER_SCRATCH_DIR",
		"retriever.max_asset_mb":        "MEDGEN_RETRIEVER_MAX_ASSET_MB",
		"retriever.max_file_size_mb":    "MEDGEN_RETRIEVER_MAX_FILE_SIZE_MB",
		"extractor.concurrency":         "MEDGEN_EXTRACTOR_CONCURRENCY",
		"extractor.tesseract_bin":       "MEDGEN_EXTRACTOR_TESSERACT_BIN",
		"extractor.ocr_enabled":         "MEDGEN_EXTRACTOR_OCR_ENABLED",
		"synthesizer.provider":          "MEDGEN_SYNTHESIZER_PROVIDER",
		"synthesizer.api_key":           "MEDGEN_SYNTHESIZER_API_KEY",
		"synthesizer.default_model":     "MEDGEN_SYNTHESIZER_DEFAULT_MODEL",
		"synthesizer.timeout_secs":      "MEDGEN_SYNTHESIZER_TIMEOUT_SECS",
		"synthesizer.temperature":       "MEDGEN_SYNTHESIZER_TEMPERATURE",
		"synthesizer.stage1_max_tokens": "MEDGEN_SYNTHESIZER_STAGE1_MAX_TOKENS",
		"synthesizer.stage2_max_tokens": "MEDGEN_SYNTHESIZER_STAGE2_MAX_TOKENS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if MEDGEN_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("MEDGEN_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.JWT = JWTConfig{
		Secret: v.GetString("jwt.secret"),
		Issuer: v.GetString("jwt.issuer"),
	}
	cfg.S3 = S3Config{
		Region:    v.GetString("s3.region"),
		Bucket:    v.GetString("s3.bucket"),
		Endpoint:  v.GetString("s3.endpoint"),
		AccessKey: v.GetString("s3.access_key"),
		SecretKey: v.GetString("s3.secret_key"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.Registry = RegistryConfig{
		BaseURL:     v.GetString("registry.base_url"),
		TimeoutSecs: v.GetInt("registry.timeout_secs"),
	}
	var hostMarkers []string
	for _, m := range strings.Split(v.GetString("resolver.host_markers"), ",") {
		m = strings.TrimSpace(m)
		if m != "" {
			hostMarkers = append(hostMarkers, m)
		}
	}
	cfg.Resolver = ResolverConfig{
		HostMarkers: hostMarkers,
	}
	cfg.Retriever = RetrieverConfig{
		TimeoutSecs:   v.GetInt("retriever.timeout_secs"),
		Concurrency:   v.GetInt("retriever.concurrency"),
		ScratchDir:    v.GetString("retriever.scratch_dir"),
		MaxAssetMB:    v.GetInt64("retriever.max_asset_mb"),
		MaxFileSizeMB: v.GetInt64("retriever.max_file_size_mb"),
	}
	cfg.Extractor = ExtractorConfig{
		Concurrency:  v.GetInt("extractor.concurrency"),
		TesseractBin: v.GetString("extractor.tesseract_bin"),
		OCREnabled:   v.GetBool("extractor.ocr_enabled"),
	}
	cfg.Synthesizer = SynthesizerConfig{
		Provider:        v.GetString("synthesizer.provider"),
		APIKey:          v.GetString("synthesizer.api_key"),
		DefaultModel:    v.GetString("synthesizer.default_model"),
		TimeoutSecs:     v.GetInt("synthesizer.timeout_secs"),
		Temperature:     float32(v.GetFloat64("synthesizer.temperature")),
		Stage1MaxTokens: v.GetInt("synthesizer.stage1_max_tokens"),
		Stage2MaxTokens: v.GetInt("synthesizer.stage2_max_tokens"),
	}

	return cfg, nil
}
