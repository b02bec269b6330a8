package config

import (
	"fmt"
	"strings"
	"time"

	"spam-shield/pkg/utils"
)

// Storage backends understood by the repository factories
const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
	BackendMongo    = "mongo"
)

// SMS providers
const (
	SMSProviderNoOp     = "noop"
	SMSProviderTwilio   = "twilio"
	SMSProviderFast2SMS = "fast2sms"
)

var (
	DefaultSpamKeywords = []string{
		"win", "free", "offer", "click", "link", "urgent",
		"prize", "lottery", "claim", "cash", "reward",
	}
	DefaultTrustedMarkers = []string{
		"-SBI", "-HDFC", "-ICICI", "-AXIS", "-KOTAK", "-PAYTM", "-AMAZON", "-GOVT",
	}
)

// DatabaseConfig holds postgres connection settings
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// RedisConfig holds redis connection settings
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// MongoConfig holds mongo connection settings
type MongoConfig struct {
	URI      string
	Database string
}

// OTPConfig holds the verification timings
type OTPConfig struct {
	Length          int
	Expiry          time.Duration
	ResendCooldown  time.Duration
	DeliveryTimeout time.Duration
}

// SMSConfig selects and configures the SMS vendor
type SMSConfig struct {
	Provider         string
	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioFromNumber string
	Fast2SMSAPIKey   string
	Fast2SMSBaseURL  string
}

// LookupConfig configures the number metadata lookup
type LookupConfig struct {
	NumlookupAPIKey  string
	NumlookupBaseURL string
	Timeout          time.Duration
	CacheTTL         time.Duration
}

// ClassifierConfig configures message classification
type ClassifierConfig struct {
	URL            string
	Timeout        time.Duration
	SpamKeywords   []string
	TrustedMarkers []string
}

// Config is the full service configuration
type Config struct {
	Env            string
	Port           string
	GinMode        string
	LogLevel       string
	LogFormat      string
	StoreBackend   string
	SessionBackend string
	SessionTTL     time.Duration
	DataDir        string
	DefaultRegion  string

	Database   DatabaseConfig
	Redis      RedisConfig
	Mongo      MongoConfig
	OTP        OTPConfig
	SMS        SMSConfig
	Lookup     LookupConfig
	Classifier ClassifierConfig
}

// Load reads the configuration from environment variables.
// Call godotenv.Load before this to pick up a .env file.
func Load() (*Config, error) {
	cfg := &Config{
		Env:            utils.GetEnvironment(),
		Port:           utils.GetEnv("PORT", "8080"),
		GinMode:        utils.GetEnv("GIN_MODE", "release"),
		LogLevel:       utils.GetEnv("LOG_LEVEL", "info"),
		LogFormat:      utils.GetEnv("LOG_FORMAT", "console"),
		StoreBackend:   strings.ToLower(utils.GetEnv("STORE_BACKEND", BackendMemory)),
		SessionBackend: strings.ToLower(utils.GetEnv("SESSION_BACKEND", BackendMemory)),
		SessionTTL:     utils.GetEnvDuration("SESSION_TTL", 24*time.Hour),
		DataDir:        utils.GetEnv("DATA_DIR", "data"),
		DefaultRegion:  utils.GetEnv("DEFAULT_REGION", "IN"),
		Database: DatabaseConfig{
			Host:     utils.GetEnv("DB_HOST", "localhost"),
			Port:     utils.GetEnv("DB_PORT", "5432"),
			User:     utils.GetEnv("DB_USER", "postgres"),
			Password: utils.GetEnv("DB_PASSWORD", "postgres"),
			DBName:   utils.GetEnv("DB_NAME", "spam_shield"),
			SSLMode:  utils.GetEnv("DB_SSL_MODE", "disable"),
		},
		Redis: RedisConfig{
			Addr:     utils.GetEnv("REDIS_ADDR", "localhost:6379"),
			Password: utils.GetEnv("REDIS_PASSWORD", ""),
			DB:       utils.GetEnvInt("REDIS_DB", 0),
		},
		Mongo: MongoConfig{
			URI:      utils.GetEnv("MONGO_URI", "mongodb://localhost:27017"),
			Database: utils.GetEnv("MONGO_DATABASE", "spam_shield"),
		},
		OTP: OTPConfig{
			Length:          6,
			Expiry:          utils.GetEnvDuration("OTP_EXPIRY", 120*time.Second),
			ResendCooldown:  utils.GetEnvDuration("OTP_RESEND_COOLDOWN", 60*time.Second),
			DeliveryTimeout: utils.GetEnvDuration("SMS_TIMEOUT", 12*time.Second),
		},
		SMS: SMSConfig{
			Provider:         strings.ToLower(utils.GetEnv("SMS_PROVIDER", SMSProviderNoOp)),
			TwilioAccountSID: utils.GetEnv("TWILIO_ACCOUNT_SID", ""),
			TwilioAuthToken:  utils.GetEnv("TWILIO_AUTH_TOKEN", ""),
			TwilioFromNumber: utils.GetEnv("TWILIO_FROM_NUMBER", ""),
			Fast2SMSAPIKey:   utils.GetEnv("FAST2SMS_API_KEY", ""),
			Fast2SMSBaseURL:  utils.GetEnv("FAST2SMS_BASE_URL", "https://www.fast2sms.com"),
		},
		Lookup: LookupConfig{
			NumlookupAPIKey:  utils.GetEnv("NUMLOOKUP_API_KEY", ""),
			NumlookupBaseURL: utils.GetEnv("NUMLOOKUP_BASE_URL", "https://api.numlookupapi.com"),
			Timeout:          utils.GetEnvDuration("LOOKUP_TIMEOUT", 8*time.Second),
			CacheTTL:         utils.GetEnvDuration("LOOKUP_CACHE_TTL", time.Hour),
		},
		Classifier: ClassifierConfig{
			URL:            utils.GetEnv("CLASSIFIER_URL", ""),
			Timeout:        utils.GetEnvDuration("CLASSIFIER_TIMEOUT", 5*time.Second),
			SpamKeywords:   utils.GetEnvList("SPAM_KEYWORDS", DefaultSpamKeywords),
			TrustedMarkers: utils.GetEnvList("TRUSTED_MARKERS", DefaultTrustedMarkers),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks backend names and provider credentials
func (c *Config) Validate() error {
	switch c.StoreBackend {
	case BackendMemory, BackendFile, BackendPostgres, BackendRedis, BackendMongo:
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend)
	}

	switch c.SessionBackend {
	case BackendMemory, BackendRedis:
	default:
		return fmt.Errorf("unknown SESSION_BACKEND %q", c.SessionBackend)
	}

	switch c.SMS.Provider {
	case SMSProviderNoOp:
		if c.Env == "prod" {
			return fmt.Errorf("SMS_PROVIDER=noop is not allowed in production")
		}
	case SMSProviderTwilio:
		if c.SMS.TwilioAccountSID == "" || c.SMS.TwilioAuthToken == "" || c.SMS.TwilioFromNumber == "" {
			return fmt.Errorf("twilio credentials not configured")
		}
	case SMSProviderFast2SMS:
		if c.SMS.Fast2SMSAPIKey == "" {
			return fmt.Errorf("FAST2SMS_API_KEY not configured")
		}
	default:
		return fmt.Errorf("unknown SMS_PROVIDER %q", c.SMS.Provider)
	}

	if c.OTP.Expiry <= 0 || c.OTP.ResendCooldown <= 0 || c.OTP.DeliveryTimeout <= 0 {
		return fmt.Errorf("OTP timings must be positive")
	}
	return nil
}

// UsesRedis reports whether any component needs a redis connection
func (c *Config) UsesRedis() bool {
	return c.StoreBackend == BackendRedis || c.SessionBackend == BackendRedis
}
