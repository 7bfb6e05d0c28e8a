package config

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Log       LogConfig
	CORS      CORSConfig
	Upload    UploadConfig
	Records   RecordsConfig
	Extractor ExtractorConfig
	Mapper    MapperConfig
	Matcher   MatcherConfig
	Browser   BrowserConfig
	Form      FormConfig
	Artifacts ArtifactsConfig
	Email     EmailConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// UploadConfig holds document upload limits.
type UploadConfig struct {
	MaxFileSizeMB int64 `mapstructure:"max_file_size_mb"`
	MaxDocuments  int   `mapstructure:"max_documents"`
}

// RecordsConfig holds settings for the in-memory record store.
type RecordsConfig struct {
	TTL             time.Duration `mapstructure:"ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
}

// ProviderConfig holds settings for a single LLM provider. The poll fields
// only apply to providers that upload files for remote processing (Gemini).
type ProviderConfig struct {
	Provider         string `mapstructure:"provider"`
	APIKey           string `mapstructure:"api_key"`
	DefaultModel     string `mapstructure:"default_model"`
	MaxRetries       int    `mapstructure:"max_retries"`
	TimeoutSecs      int    `mapstructure:"timeout_secs"`
	PollIntervalSecs int    `mapstructure:"poll_interval_secs"`
	PollMaxAttempts  int    `mapstructure:"poll_max_attempts"`
}

// ExtractorConfig holds LLM document extractor settings with multi-provider
// support.
type ExtractorConfig struct {
	// Mode selects how providers combine: "single" falls back through the
	// chain on errors, "dual" runs primary and secondary together and
	// merges their records.
	Mode string `mapstructure:"mode"`

	// Legacy flat fields (backwards-compatible)
	Provider     string `mapstructure:"provider"`
	APIKey       string `mapstructure:"api_key"`
	DefaultModel string `mapstructure:"default_model"`
	MaxRetries   int    `mapstructure:"max_retries"`
	TimeoutSecs  int    `mapstructure:"timeout_secs"`

	// Remote file processing poll loop (Gemini Files API)
	PollIntervalSecs int `mapstructure:"poll_interval_secs"`
	PollMaxAttempts  int `mapstructure:"poll_max_attempts"`

	// Multi-provider fields
	Primary   ProviderConfig `mapstructure:"primary"`
	Secondary ProviderConfig `mapstructure:"secondary"`
	Tertiary  ProviderConfig `mapstructure:"tertiary"`
}

// PrimaryConfig returns the primary extractor provider config, falling back to
// legacy flat fields.
func (e *ExtractorConfig) PrimaryConfig() *ProviderConfig {
	if e.Primary.Provider != "" {
		return &e.Primary
	}
	return &ProviderConfig{
		Provider:         e.Provider,
		APIKey:           e.APIKey,
		DefaultModel:     e.DefaultModel,
		MaxRetries:       e.MaxRetries,
		TimeoutSecs:      e.TimeoutSecs,
		PollIntervalSecs: e.PollIntervalSecs,
		PollMaxAttempts:  e.PollMaxAttempts,
	}
}

// SecondaryConfig returns the secondary extractor provider config, or nil if
// not configured.
func (e *ExtractorConfig) SecondaryConfig() *ProviderConfig {
	if e.Secondary.Provider != "" {
		return &e.Secondary
	}
	return nil
}

// TertiaryConfig returns the tertiary extractor provider config, or nil if not
// configured.
func (e *ExtractorConfig) TertiaryConfig() *ProviderConfig {
	if e.Tertiary.Provider != "" {
		return &e.Tertiary
	}
	return nil
}

// MapperConfig holds settings for the model-assisted field mapper.
type MapperConfig struct {
	// Legacy flat fields (backwards-compatible)
	Provider     string `mapstructure:"provider"`
	APIKey       string `mapstructure:"api_key"`
	DefaultModel string `mapstructure:"default_model"`
	MaxRetries   int    `mapstructure:"max_retries"`
	TimeoutSecs  int    `mapstructure:"timeout_secs"`

	// MarkupLimit caps how many bytes of page HTML go into the prompt.
	MarkupLimit int `mapstructure:"markup_limit"`

	Primary   ProviderConfig `mapstructure:"primary"`
	Secondary ProviderConfig `mapstructure:"secondary"`
}

// PrimaryConfig returns the primary mapper provider config, falling back to
// legacy flat fields.
func (m *MapperConfig) PrimaryConfig() *ProviderConfig {
	if m.Primary.Provider != "" {
		return &m.Primary
	}
	return &ProviderConfig{
		Provider:     m.Provider,
		APIKey:       m.APIKey,
		DefaultModel: m.DefaultModel,
		MaxRetries:   m.MaxRetries,
		TimeoutSecs:  m.TimeoutSecs,
	}
}

// SecondaryConfig returns the secondary mapper provider config, or nil if not
// configured.
func (m *MapperConfig) SecondaryConfig() *ProviderConfig {
	if m.Secondary.Provider != "" {
		return &m.Secondary
	}
	return nil
}

// MatcherConfig holds deterministic matcher settings.
type MatcherConfig struct {
	// Inspector picks the markup presence check: "substring" or "dom".
	Inspector string `mapstructure:"inspector"`
}

// BrowserConfig holds remote browser session settings (Browserbase).
type BrowserConfig struct {
	// Provider picks the session backend: "browserbase" or "local".
	Provider          string        `mapstructure:"provider"`
	APIKey            string        `mapstructure:"api_key"`
	ProjectID         string        `mapstructure:"project_id"`
	APIEndpoint       string        `mapstructure:"api_endpoint"`
	ConnectTimeout    time.Duration `mapstructure:"connect_timeout"`
	NavigationTimeout time.Duration `mapstructure:"navigation_timeout"`
	OperationTimeout  time.Duration `mapstructure:"operation_timeout"`
	SettleDelay       time.Duration `mapstructure:"settle_delay"`
	PostFillDelay     time.Duration `mapstructure:"post_fill_delay"`
}

// FormConfig holds target form settings.
type FormConfig struct {
	DefaultURL string `mapstructure:"default_url"`
}

// ArtifactS3Config holds AWS S3 settings for the artifact store.
type ArtifactS3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// ArtifactsConfig holds settings for where run artifacts are written.
type ArtifactsConfig struct {
	Backend  string           `mapstructure:"backend"`
	LocalDir string           `mapstructure:"local_dir"`
	S3       ArtifactS3Config `mapstructure:"s3"`
}

// EmailConfig holds run-summary email delivery settings.
type EmailConfig struct {
	Provider    string `mapstructure:"provider"`
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
	ToAddress   string `mapstructure:"to_address"`
}

// Load reads configuration from environment variables with the FORMPILOT_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("FORMPILOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "300s")
	v.SetDefault("server.environment", "development")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Upload defaults
	v.SetDefault("upload.max_file_size_mb", 20)
	v.SetDefault("upload.max_documents", 4)

	// Record store defaults
	v.SetDefault("records.ttl", "24h")
	v.SetDefault("records.cleanup_interval", "1h")

	// Extractor defaults (legacy flat)
	v.SetDefault("extractor.mode", "single")
	v.SetDefault("extractor.provider", "gemini")
	v.SetDefault("extractor.api_key", "")
	v.SetDefault("extractor.default_model", "gemini-3-flash-preview")
	v.SetDefault("extractor.max_retries", 2)
	v.SetDefault("extractor.timeout_secs", 120)
	v.SetDefault("extractor.poll_interval_secs", 2)
	v.SetDefault("extractor.poll_max_attempts", 30)

	// Extractor primary/secondary/tertiary defaults
	v.SetDefault("extractor.primary.provider", "")
	v.SetDefault("extractor.primary.api_key", "")
	v.SetDefault("extractor.primary.default_model", "")
	v.SetDefault("extractor.primary.max_retries", 2)
	v.SetDefault("extractor.primary.timeout_secs", 120)
	v.SetDefault("extractor.primary.poll_interval_secs", 2)
	v.SetDefault("extractor.primary.poll_max_attempts", 30)
	v.SetDefault("extractor.secondary.provider", "")
	v.SetDefault("extractor.secondary.api_key", "")
	v.SetDefault("extractor.secondary.default_model", "")
	v.SetDefault("extractor.secondary.max_retries", 2)
	v.SetDefault("extractor.secondary.timeout_secs", 120)
	v.SetDefault("extractor.secondary.poll_interval_secs", 2)
	v.SetDefault("extractor.secondary.poll_max_attempts", 30)
	v.SetDefault("extractor.tertiary.provider", "")
	v.SetDefault("extractor.tertiary.api_key", "")
	v.SetDefault("extractor.tertiary.default_model", "")
	v.SetDefault("extractor.tertiary.max_retries", 2)
	v.SetDefault("extractor.tertiary.timeout_secs", 120)
	v.SetDefault("extractor.tertiary.poll_interval_secs", 2)
	v.SetDefault("extractor.tertiary.poll_max_attempts", 30)

	// Mapper defaults (legacy flat)
	v.SetDefault("mapper.provider", "gemini")
	v.SetDefault("mapper.api_key", "")
	v.SetDefault("mapper.default_model", "gemini-3-flash-preview")
	v.SetDefault("mapper.max_retries", 1)
	v.SetDefault("mapper.timeout_secs", 60)
	v.SetDefault("mapper.markup_limit", 20000)
	v.SetDefault("mapper.primary.provider", "")
	v.SetDefault("mapper.primary.api_key", "")
	v.SetDefault("mapper.primary.default_model", "")
	v.SetDefault("mapper.primary.max_retries", 1)
	v.SetDefault("mapper.primary.timeout_secs", 60)
	v.SetDefault("mapper.secondary.provider", "")
	v.SetDefault("mapper.secondary.api_key", "")
	v.SetDefault("mapper.secondary.default_model", "")
	v.SetDefault("mapper.secondary.max_retries", 1)
	v.SetDefault("mapper.secondary.timeout_secs", 60)

	// Matcher defaults
	v.SetDefault("matcher.inspector", "substring")

	// Browser defaults
	v.SetDefault("browser.provider", "browserbase")
	v.SetDefault("browser.api_key", "")
	v.SetDefault("browser.project_id", "")
	v.SetDefault("browser.api_endpoint", "https://api.browserbase.com")
	v.SetDefault("browser.connect_timeout", "30s")
	v.SetDefault("browser.navigation_timeout", "30s")
	v.SetDefault("browser.operation_timeout", "5s")
	v.SetDefault("browser.settle_delay", "2s")
	v.SetDefault("browser.post_fill_delay", "1s")

	// Form defaults
	v.SetDefault("form.default_url", "https://mendrika-alma.github.io/form-submission/")

	// Artifact store defaults
	v.SetDefault("artifacts.backend", "local")
	v.SetDefault("artifacts.local_dir", "/tmp/formpilot")
	v.SetDefault("artifacts.s3.region", "us-east-1")
	v.SetDefault("artifacts.s3.bucket", "formpilot-artifacts")
	v.SetDefault("artifacts.s3.endpoint", "")
	v.SetDefault("artifacts.s3.presign_expiry", 3600)

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "us-east-1")
	v.SetDefault("email.from_address", "noreply@formpilot.local")
	v.SetDefault("email.from_name", "FormPilot")
	v.SetDefault("email.to_address", "")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":          "FORMPILOT_SERVER_PORT",
		"server.read_timeout":  "FORMPILOT_SERVER_READ_TIMEOUT",
		"server.write_timeout": "FORMPILOT_SERVER_WRITE_TIMEOUT",
		"server.environment":   "FORMPILOT_SERVER_ENVIRONMENT",
		"log.level":            "FORMPILOT_LOG_LEVEL",
		"log.format":           "FORMPILOT_LOG_FORMAT",
		"cors.allowed_origins": "FORMPILOT_CORS_ALLOWED_ORIGINS",

		"upload.max_file_size_mb": "FORMPILOT_UPLOAD_MAX_FILE_SIZE_MB",
		"upload.max_documents":    "FORMPILOT_UPLOAD_MAX_DOCUMENTS",

		"records.ttl":              "FORMPILOT_RECORDS_TTL",
		"records.cleanup_interval": "FORMPILOT_RECORDS_CLEANUP_INTERVAL",

		"extractor.mode":               "FORMPILOT_EXTRACTOR_MODE",
		"extractor.provider":           "FORMPILOT_EXTRACTOR_PROVIDER",
		"extractor.api_key":            "FORMPILOT_EXTRACTOR_API_KEY",
		"extractor.default_model":      "FORMPILOT_EXTRACTOR_DEFAULT_MODEL",
		"extractor.max_retries":        "FORMPILOT_EXTRACTOR_MAX_RETRIES",
		"extractor.timeout_secs":       "FORMPILOT_EXTRACTOR_TIMEOUT_SECS",
		"extractor.poll_interval_secs": "FORMPILOT_EXTRACTOR_POLL_INTERVAL_SECS",
		"extractor.poll_max_attempts":  "FORMPILOT_EXTRACTOR_POLL_MAX_ATTEMPTS",

		"extractor.primary.provider":           "FORMPILOT_EXTRACTOR_PRIMARY_PROVIDER",
		"extractor.primary.api_key":            "FORMPILOT_EXTRACTOR_PRIMARY_API_KEY",
		"extractor.primary.default_model":      "FORMPILOT_EXTRACTOR_PRIMARY_DEFAULT_MODEL",
		"extractor.primary.max_retries":        "FORMPILOT_EXTRACTOR_PRIMARY_MAX_RETRIES",
		"extractor.primary.timeout_secs":       "FORMPILOT_EXTRACTOR_PRIMARY_TIMEOUT_SECS",
		"extractor.primary.poll_interval_secs": "FORMPILOT_EXTRACTOR_PRIMARY_POLL_INTERVAL_SECS",
		"extractor.primary.poll_max_attempts":  "FORMPILOT_EXTRACTOR_PRIMARY_POLL_MAX_ATTEMPTS",

		"extractor.secondary.provider":           "FORMPILOT_EXTRACTOR_SECONDARY_PROVIDER",
		"extractor.secondary.api_key":            "FORMPILOT_EXTRACTOR_SECONDARY_API_KEY",
		"extractor.secondary.default_model":      "FORMPILOT_EXTRACTOR_SECONDARY_DEFAULT_MODEL",
		"extractor.secondary.max_retries":        "FORMPILOT_EXTRACTOR_SECONDARY_MAX_RETRIES",
		"extractor.secondary.timeout_secs":       "FORMPILOT_EXTRACTOR_SECONDARY_TIMEOUT_SECS",
		"extractor.secondary.poll_interval_secs": "FORMPILOT_EXTRACTOR_SECONDARY_POLL_INTERVAL_SECS",
		"extractor.secondary.poll_max_attempts":  "FORMPILOT_EXTRACTOR_SECONDARY_POLL_MAX_ATTEMPTS",

		"extractor.tertiary.provider":           "FORMPILOT_EXTRACTOR_TERTIARY_PROVIDER",
		"extractor.tertiary.api_key":            "FORMPILOT_EXTRACTOR_TERTIARY_API_KEY",
		"extractor.tertiary.default_model":      "FORMPILOT_EXTRACTOR_TERTIARY_DEFAULT_MODEL",
		"extractor.tertiary.max_retries":        "FORMPILOT_EXTRACTOR_TERTIARY_MAX_RETRIES",
		"extractor.tertiary.timeout_secs":       "FORMPILOT_EXTRACTOR_TERTIARY_TIMEOUT_SECS",
		"extractor.tertiary.poll_interval_secs": "FORMPILOT_EXTRACTOR_TERTIARY_POLL_INTERVAL_SECS",
		"extractor.tertiary.poll_max_attempts":  "FORMPILOT_EXTRACTOR_TERTIARY_POLL_MAX_ATTEMPTS",

		"mapper.provider":                 "FORMPILOT_MAPPER_PROVIDER",
		"mapper.api_key":                  "FORMPILOT_MAPPER_API_KEY",
		"mapper.default_model":            "FORMPILOT_MAPPER_DEFAULT_MODEL",
		"mapper.max_retries":              "FORMPILOT_MAPPER_MAX_RETRIES",
		"mapper.timeout_secs":             "FORMPILOT_MAPPER_TIMEOUT_SECS",
		"mapper.markup_limit":             "FORMPILOT_MAPPER_MARKUP_LIMIT",
		"mapper.primary.provider":         "FORMPILOT_MAPPER_PRIMARY_PROVIDER",
		"mapper.primary.api_key":          "FORMPILOT_MAPPER_PRIMARY_API_KEY",
		"mapper.primary.default_model":    "FORMPILOT_MAPPER_PRIMARY_DEFAULT_MODEL",
		"mapper.primary.max_retries":      "FORMPILOT_MAPPER_PRIMARY_MAX_RETRIES",
		"mapper.primary.timeout_secs":     "FORMPILOT_MAPPER_PRIMARY_TIMEOUT_SECS",
		"mapper.secondary.provider":       "FORMPILOT_MAPPER_SECONDARY_PROVIDER",
		"mapper.secondary.api_key":        "FORMPILOT_MAPPER_SECONDARY_API_KEY",
		"mapper.secondary.default_model":  "FORMPILOT_MAPPER_SECONDARY_DEFAULT_MODEL",
		"mapper.secondary.max_retries":    "FORMPILOT_MAPPER_SECONDARY_MAX_RETRIES",
		"mapper.secondary.timeout_secs":   "FORMPILOT_MAPPER_SECONDARY_TIMEOUT_SECS",

		"matcher.inspector": "FORMPILOT_MATCHER_INSPECTOR",

		"browser.provider":           "FORMPILOT_BROWSER_PROVIDER",
		"browser.api_key":            "FORMPILOT_BROWSER_API_KEY",
		"browser.project_id":         "FORMPILOT_BROWSER_PROJECT_ID",
		"browser.api_endpoint":       "FORMPILOT_BROWSER_API_ENDPOINT",
		"browser.connect_timeout":    "FORMPILOT_BROWSER_CONNECT_TIMEOUT",
		"browser.navigation_timeout": "FORMPILOT_BROWSER_NAVIGATION_TIMEOUT",
		"browser.operation_timeout":  "FORMPILOT_BROWSER_OPERATION_TIMEOUT",
		"browser.settle_delay":       "FORMPILOT_BROWSER_SETTLE_DELAY",
		"browser.post_fill_delay":    "FORMPILOT_BROWSER_POST_FILL_DELAY",

		"form.default_url": "FORMPILOT_FORM_DEFAULT_URL",

		"artifacts.backend":           "FORMPILOT_ARTIFACTS_BACKEND",
		"artifacts.local_dir":         "FORMPILOT_ARTIFACTS_LOCAL_DIR",
		"artifacts.s3.region":         "FORMPILOT_ARTIFACTS_S3_REGION",
		"artifacts.s3.bucket":         "FORMPILOT_ARTIFACTS_S3_BUCKET",
		"artifacts.s3.endpoint":       "FORMPILOT_ARTIFACTS_S3_ENDPOINT",
		"artifacts.s3.access_key":     "FORMPILOT_ARTIFACTS_S3_ACCESS_KEY",
		"artifacts.s3.secret_key":     "FORMPILOT_ARTIFACTS_S3_SECRET_KEY",
		"artifacts.s3.presign_expiry": "FORMPILOT_ARTIFACTS_S3_PRESIGN_EXPIRY",

		"email.provider":     "FORMPILOT_EMAIL_PROVIDER",
		"email.region":       "FORMPILOT_EMAIL_REGION",
		"email.from_address": "FORMPILOT_EMAIL_FROM_ADDRESS",
		"email.from_name":    "FORMPILOT_EMAIL_FROM_NAME",
		"email.to_address":   "FORMPILOT_EMAIL_TO_ADDRESS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if FORMPILOT_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("FORMPILOT_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}

	cfg.Upload = UploadConfig{
		MaxFileSizeMB: v.GetInt64("upload.max_file_size_mb"),
		MaxDocuments:  v.GetInt("upload.max_documents"),
	}
	cfg.Records = RecordsConfig{
		TTL:             v.GetDuration("records.ttl"),
		CleanupInterval: v.GetDuration("records.cleanup_interval"),
	}

	cfg.Extractor = ExtractorConfig{
		Mode:             v.GetString("extractor.mode"),
		Provider:         v.GetString("extractor.provider"),
		APIKey:           v.GetString("extractor.api_key"),
		DefaultModel:     v.GetString("extractor.default_model"),
		MaxRetries:       v.GetInt("extractor.max_retries"),
		TimeoutSecs:      v.GetInt("extractor.timeout_secs"),
		PollIntervalSecs: v.GetInt("extractor.poll_interval_secs"),
		PollMaxAttempts:  v.GetInt("extractor.poll_max_attempts"),
		Primary: ProviderConfig{
			Provider:         v.GetString("extractor.primary.provider"),
			APIKey:           v.GetString("extractor.primary.api_key"),
			DefaultModel:     v.GetString("extractor.primary.default_model"),
			MaxRetries:       v.GetInt("extractor.primary.max_retries"),
			TimeoutSecs:      v.GetInt("extractor.primary.timeout_secs"),
			PollIntervalSecs: v.GetInt("extractor.primary.poll_interval_secs"),
			PollMaxAttempts:  v.GetInt("extractor.primary.poll_max_attempts"),
		},
		Secondary: ProviderConfig{
			Provider:         v.GetString("extractor.secondary.provider"),
			APIKey:           v.GetString("extractor.secondary.api_key"),
			DefaultModel:     v.GetString("extractor.secondary.default_model"),
			MaxRetries:       v.GetInt("extractor.secondary.max_retries"),
			TimeoutSecs:      v.GetInt("extractor.secondary.timeout_secs"),
			PollIntervalSecs: v.GetInt("extractor.secondary.poll_interval_secs"),
			PollMaxAttempts:  v.GetInt("extractor.secondary.poll_max_attempts"),
		},
		Tertiary: ProviderConfig{
			Provider:         v.GetString("extractor.tertiary.provider"),
			APIKey:           v.GetString("extractor.tertiary.api_key"),
			DefaultModel:     v.GetString("extractor.tertiary.default_model"),
			MaxRetries:       v.GetInt("extractor.tertiary.max_retries"),
			TimeoutSecs:      v.GetInt("extractor.tertiary.timeout_secs"),
			PollIntervalSecs: v.GetInt("extractor.tertiary.poll_interval_secs"),
			PollMaxAttempts:  v.GetInt("extractor.tertiary.poll_max_attempts"),
		},
	}

	cfg.Mapper = MapperConfig{
		Provider:     v.GetString("mapper.provider"),
		APIKey:       v.GetString("mapper.api_key"),
		DefaultModel: v.GetString("mapper.default_model"),
		MaxRetries:   v.GetInt("mapper.max_retries"),
		TimeoutSecs:  v.GetInt("mapper.timeout_secs"),
		MarkupLimit:  v.GetInt("mapper.markup_limit"),
		Primary: ProviderConfig{
			Provider:     v.GetString("mapper.primary.provider"),
			APIKey:       v.GetString("mapper.primary.api_key"),
			DefaultModel: v.GetString("mapper.primary.default_model"),
			MaxRetries:   v.GetInt("mapper.primary.max_retries"),
			TimeoutSecs:  v.GetInt("mapper.primary.timeout_secs"),
		},
		Secondary: ProviderConfig{
			Provider:     v.GetString("mapper.secondary.provider"),
			APIKey:       v.GetString("mapper.secondary.api_key"),
			DefaultModel: v.GetString("mapper.secondary.default_model"),
			MaxRetries:   v.GetInt("mapper.secondary.max_retries"),
			TimeoutSecs:  v.GetInt("mapper.secondary.timeout_secs"),
		},
	}

	cfg.Matcher = MatcherConfig{
		Inspector: v.GetString("matcher.inspector"),
	}

	cfg.Browser = BrowserConfig{
		Provider:          v.GetString("browser.provider"),
		APIKey:            v.GetString("browser.api_key"),
		ProjectID:         v.GetString("browser.project_id"),
		APIEndpoint:       v.GetString("browser.api_endpoint"),
		ConnectTimeout:    v.GetDuration("browser.connect_timeout"),
		NavigationTimeout: v.GetDuration("browser.navigation_timeout"),
		OperationTimeout:  v.GetDuration("browser.operation_timeout"),
		SettleDelay:       v.GetDuration("browser.settle_delay"),
		PostFillDelay:     v.GetDuration("browser.post_fill_delay"),
	}

	cfg.Form = FormConfig{
		DefaultURL: v.GetString("form.default_url"),
	}

	cfg.Artifacts = ArtifactsConfig{
		Backend:  v.GetString("artifacts.backend"),
		LocalDir: v.GetString("artifacts.local_dir"),
		S3: ArtifactS3Config{
			Region:        v.GetString("artifacts.s3.region"),
			Bucket:        v.GetString("artifacts.s3.bucket"),
			Endpoint:      v.GetString("artifacts.s3.endpoint"),
			AccessKey:     v.GetString("artifacts.s3.access_key"),
			SecretKey:     v.GetString("artifacts.s3.secret_key"),
			PresignExpiry: v.GetInt64("artifacts.s3.presign_expiry"),
		},
	}

	cfg.Email = EmailConfig{
		Provider:    v.GetString("email.provider"),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
		ToAddress:   v.GetString("email.to_address"),
	}

	return cfg, nil
}
