package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is applied by envconfig when processing the environment.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvDBDSN  = "CARDAPIOZAP_DB_DSN"
	EnvDBHost = "CARDAPIOZAP_DB_HOST"
	EnvDBUser = "CARDAPIOZAP_DB_USER"
	EnvDBName = "CARDAPIOZAP_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Password     PasswordConfig
	Cart         CartConfig
	WhatsApp     WhatsAppConfig
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
	Env          string `envconfig:"CARDAPIOZAP_APP_ENV" required:"true"`
	Port         string `envconfig:"CARDAPIOZAP_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"CARDAPIOZAP_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"CARDAPIOZAP_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"CARDAPIOZAP_DB_DSN"`
	Driver string `envconfig:"CARDAPIOZAP_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"CARDAPIOZAP_DB_HOST"`
	LegacyPort     int    `envconfig:"CARDAPIOZAP_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"CARDAPIOZAP_DB_USER"`
	LegacyPassword string `envconfig:"CARDAPIOZAP_DB_PASSWORD"`
	LegacyName     string `envconfig:"CARDAPIOZAP_DB_NAME"`
	LegacySSLMode  string `envconfig:"CARDAPIOZAP_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"CARDAPIOZAP_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"CARDAPIOZAP_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"CARDAPIOZAP_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"CARDAPIOZAP_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"CARDAPIOZAP_REDIS_URL" required:"true"`
	Address      string        `envconfig:"CARDAPIOZAP_REDIS_ADDR"`
	Password     string        `envconfig:"CARDAPIOZAP_REDIS_PASSWORD"`
	DB           int           `envconfig:"CARDAPIOZAP_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"CARDAPIOZAP_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"CARDAPIOZAP_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"CARDAPIOZAP_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"CARDAPIOZAP_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"CARDAPIOZAP_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"CARDAPIOZAP_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"CARDAPIOZAP_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"CARDAPIOZAP_JWT_EXPIRATION_MINUTES" default:"120"`
}

// Expiration returns the access token TTL.
func (j JWTConfig) Expiration() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"CARDAPIOZAP_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"CARDAPIOZAP_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"CARDAPIOZAP_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"CARDAPIOZAP_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"CARDAPIOZAP_ARGON_KEY_LEN" default:"32"`
}

type CartConfig struct {
	TTL           time.Duration `envconfig:"CARDAPIOZAP_CART_TTL" default:"72h"`
	SessionHeader string        `envconfig:"CARDAPIOZAP_CART_SESSION_HEADER" default:"X-Cart-Session"`
}

type WhatsAppConfig struct {
	LinkBase string `envconfig:"CARDAPIOZAP_WHATSAPP_LINK_BASE" default:"https://wa.me"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"CARDAPIOZAP_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"CARDAPIOZAP_AUTO_MIGRATE" default:"false"`
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
