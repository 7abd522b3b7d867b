package config

import (
	"errors"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	DriverMongoDB = "mongodb"
	DriverMemory  = "memory"
)

type Config struct {
	ServicePort       string        `envconfig:"SERVICE_PORT" default:"8080"`
	MetricsPort       string        `envconfig:"METRICS_PORT" default:"9090"`
	LogLevel          string        `envconfig:"LOG_LEVEL" default:"info"`
	DBDriver          string        `envconfig:"DB_DRIVER" default:"mongodb"`
	CookieSecure      bool          `envconfig:"COOKIE_SECURE" default:"false"`
	ClientOrigin      string        `envconfig:"CLIENT_ORIGIN" default:"http://localhost:5173"`
	ReconcileInterval time.Duration `envconfig:"ROSTER_RECONCILE_INTERVAL" default:"10m"`
	MongoDBConfig     MongoDBConfig `envconfig:"MONGO"`
	JWTConfig         JWTConfig     `envconfig:"JWT"`
	Argon2Config      Argon2Config  `envconfig:"ARGON2"`
	KafkaConfig       KafkaConfig   `envconfig:"BROKER"`
	RedisConfig       RedisConfig   `envconfig:"REDIS"`
	LoginThrottle     LoginThrottle `envconfig:"LOGIN"`
	SMTPConfig        SMTPConfig    `envconfig:"SMTP"`
	TracingConfig     TracingConfig `envconfig:"COLLECTOR"`
}

type MongoDBConfig struct {
	URI          string `envconfig:"URI" default:"mongodb://localhost:27017"`
	DBName       string `envconfig:"DB_NAME" default:"employee_management"`
	Transactions bool   `envconfig:"TRANSACTIONS" default:"false"`
}

type JWTConfig struct {
	AccessSecret  string        `envconfig:"ACCESS_SECRET"`
	AccessTTL     time.Duration `envconfig:"ACCESS_TTL" default:"15m"`
	RefreshSecret string        `envconfig:"REFRESH_SECRET"`
	RefreshTTL    time.Duration `envconfig:"REFRESH_TTL" default:"168h"`
}

type Argon2Config struct {
	MemoryKiB   uint32 `envconfig:"MEMORY_KIB" default:"65536"`
	Iterations  uint32 `envconfig:"ITERATIONS" default:"3"`
	Parallelism uint8  `envconfig:"PARALLELISM" default:"2"`
}

type KafkaConfig struct {
	BrokerAddress string `envconfig:"ADDRESS"`
	BrokerTopic   string `envconfig:"TOPIC" default:"notifications"`
	GroupID       string `envconfig:"GROUP_ID" default:"employee-management-service"`
}

type RedisConfig struct {
	Addr string `envconfig:"ADDR"`
}

type LoginThrottle struct {
	MaxAttempts int           `envconfig:"MAX_ATTEMPTS" default:"5"`
	Window      time.Duration `envconfig:"WINDOW" default:"15m"`
}

type SMTPConfig struct {
	Host     string `envconfig:"HOST"`
	Port     int    `envconfig:"PORT" default:"587"`
	Username string `envconfig:"USERNAME"`
	Password string `envconfig:"PASSWORD"`
	Sender   string `envconfig:"SENDER" default:"no-reply@employee-management.local"`
}

type TracingConfig struct {
	CollectorHost string `envconfig:"HOST"`
}

func CreateNewConfig() (*Config, error) {
	godotenv.Load(".env")

	var conf Config
	if err := envconfig.Process("", &conf); err != nil {
		return nil, err
	}

	if err := conf.Validate(); err != nil {
		return nil, err
	}

	return &conf, nil
}

func (c *Config) Validate() error {
	if c.JWTConfig.AccessSecret == "" || c.JWTConfig.RefreshSecret == "" {
		return errors.New("JWT_ACCESS_SECRET and JWT_REFRESH_SECRET must be provided")
	}
	if c.JWTConfig.AccessSecret == c.JWTConfig.RefreshSecret {
		return errors.New("access and refresh tokens must be signed with different secrets")
	}
	if c.JWTConfig.AccessTTL <= 0 || c.JWTConfig.RefreshTTL <= 0 {
		return errors.New("token lifetimes must be positive")
	}
	if c.DBDriver != DriverMongoDB && c.DBDriver != DriverMemory {
		return errors.New("DB_DRIVER must be mongodb or memory")
	}
	return nil
}
