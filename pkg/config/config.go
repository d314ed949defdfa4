package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "fixnest"

	AppEnvDev  = "development"
	AppEnvProd = "production"

	EnvAppEnv     = "FIXNEST_APP_ENV"
	EnvPort       = "FIXNEST_APP_PORT"
	EnvDBDSN      = "FIXNEST_DB_DSN"
	EnvDBHost     = "FIXNEST_DB_HOST"
	EnvDBUser     = "FIXNEST_DB_USER"
	EnvDBName     = "FIXNEST_DB_NAME"
	EnvRedisURL   = "FIXNEST_REDIS_URL"
	EnvJWTSecret  = "FIXNEST_JWT_SECRET"
	EnvJWTIssuer  = "FIXNEST_JWT_ISSUER"
	EnvJWTExpMins = "FIXNEST_JWT_EXPIRATION_MINUTES"
	EnvGCSBucket  = "FIXNEST_GCS_BUCKET_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Password     PasswordConfig
	Cart         CartConfig
	Booking      BookingConfig
	SMTP         SMTPConfig
	GCP          GCPConfig
	GCS          GCSConfig
	Media        MediaConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"FIXNEST_APP_ENV" required:"true"`
	Port         string `envconfig:"FIXNEST_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"FIXNEST_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"FIXNEST_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"FIXNEST_DB_DSN"`
	Driver string `envconfig:"FIXNEST_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"FIXNEST_DB_HOST"`
	LegacyPort     int    `envconfig:"FIXNEST_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"FIXNEST_DB_USER"`
	LegacyPassword string `envconfig:"FIXNEST_DB_PASSWORD"`
	LegacyName     string `envconfig:"FIXNEST_DB_NAME"`
	LegacySSLMode  string `envconfig:"FIXNEST_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"FIXNEST_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"FIXNEST_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"FIXNEST_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"FIXNEST_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"FIXNEST_REDIS_URL" required:"true"`
	Address      string        `envconfig:"FIXNEST_REDIS_ADDR"`
	Password     string        `envconfig:"FIXNEST_REDIS_PASSWORD"`
	DB           int           `envconfig:"FIXNEST_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"FIXNEST_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"FIXNEST_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"FIXNEST_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"FIXNEST_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"FIXNEST_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"FIXNEST_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"FIXNEST_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"FIXNEST_JWT_EXPIRATION_MINUTES" required:"true"`
	SessionTTLMinutes int    `envconfig:"FIXNEST_ADMIN_SESSION_TTL_MINUTES" default:"720"`
}

// SessionTTL returns the admin session TTL configured in minutes.
func (j JWTConfig) SessionTTL() time.Duration {
	if j.SessionTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.SessionTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"FIXNEST_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"FIXNEST_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"FIXNEST_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"FIXNEST_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"FIXNEST_ARGON_KEY_LEN" default:"32"`
}

// CartConfig governs the visitor cart/wizard session kept in Redis.
type CartConfig struct {
	SessionTTL time.Duration `envconfig:"FIXNEST_CART_SESSION_TTL" default:"72h"`
	SubmitLock time.Duration `envconfig:"FIXNEST_BOOKING_SUBMIT_LOCK" default:"30s"`
}

type BookingConfig struct {
	RetentionDays int `envconfig:"FIXNEST_BOOKING_RETENTION_DAYS" default:"365"`
}

type SMTPConfig struct {
	Host        string `envconfig:"FIXNEST_SMTP_HOST"`
	Port        int    `envconfig:"FIXNEST_SMTP_PORT" default:"587"`
	Username    string `envconfig:"FIXNEST_SMTP_USERNAME"`
	Password    string `envconfig:"FIXNEST_SMTP_PASSWORD"`
	FromAddress string `envconfig:"FIXNEST_SMTP_FROM"`
	OpsAddress  string `envconfig:"FIXNEST_SMTP_OPS_INBOX"`
}

// Enabled reports whether outbound email is configured at all.
func (s SMTPConfig) Enabled() bool {
	return s.Host != "" && s.FromAddress != ""
}

type GCPConfig struct {
	ProjectID              string `envconfig:"FIXNEST_GCP_PROJECT_ID"`
	CredentialsJSON        string `envconfig:"FIXNEST_GCP_CREDENTIALS_JSON"`
	ApplicationCredentials string `envconfig:"FIXNEST_GOOGLE_APPLICATION_CREDENTIALS"`
}

type GCSConfig struct {
	BucketName string `envconfig:"FIXNEST_GCS_BUCKET_NAME"`
	PublicBase string `envconfig:"FIXNEST_GCS_PUBLIC_BASE" default:"https://storage.googleapis.com"`
}

type MediaConfig struct {
	MaxUploadBytes int64 `envconfig:"FIXNEST_MEDIA_MAX_UPLOAD_BYTES" default:"1048576"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"FIXNEST_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
