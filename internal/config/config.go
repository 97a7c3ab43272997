package config

import (
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/sirupsen/logrus"
)

const (
	EnvProduction  = "production"
	EnvDevelopment = "development"
	EnvTest        = "test"
)

type Config struct {
	Environment string `env:"APP_ENV" envDefault:"development"`
	HTTPPort    string `env:"HTTP_PORT" envDefault:"8080"`

	DBType     string `env:"DBType" envDefault:"sqlite"`
	DSNURL     string `env:"DSN_URL" envDefault:""`
	DBUser     string `env:"DBUser" envDefault:""`
	DBPassword string `env:"DBPassword" envDefault:""`
	DBAddr     string `env:"DBAddr" envDefault:""`
	DBName     string `env:"DBName" envDefault:"accounts"`
	DBPath     string `env:"DBPath" envDefault:"datas/accounts.db"`
	DBPort     string `env:"DBPort" envDefault:"3306"`

	JWTSecret            string `env:"JWT_SECRET" envDefault:"dev-secret-change-me"`
	JWTIssuer            string `env:"JWT_ISSUER" envDefault:"accounts-app"`
	JWTExpirationMinutes int    `env:"JWT_EXPIRATION_MINUTES" envDefault:"129600"` // 90 days

	BcryptCost           int `env:"BCRYPT_COST" envDefault:"10"`
	ResetTokenTTLMinutes int `env:"RESET_TOKEN_TTL_MINUTES" envDefault:"10"`

	SMTPHost      string `env:"SMTP_HOST" envDefault:""`
	SMTPPort      int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUser      string `env:"SMTP_USER" envDefault:""`
	SMTPPassword  string `env:"SMTP_PASSWORD" envDefault:""`
	EmailFrom     string `env:"EMAIL_FROM" envDefault:"no-reply@accounts.local"`
	EmailFromName string `env:"EMAIL_FROM_NAME" envDefault:"Accounts"`
}

func ParseConfig() (Config, error) {
	var Conf Config
	err := env.Parse(&Conf)
	if err != nil {
		logrus.WithError(err).Error("env.Parse error")
		return Config{}, err
	}
	logrus.Debugf("%#v\n", Conf)
	return Conf, nil
}

// IsProduction reports whether the service runs in production mode.
func (c Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

// IsTest reports whether the service runs under the test environment.
func (c Config) IsTest() bool {
	return c.Environment == EnvTest
}

// JWTExpiry returns the configured token lifetime as a duration.
func (c Config) JWTExpiry() time.Duration {
	return time.Duration(c.JWTExpirationMinutes) * time.Minute
}

// ResetTokenTTL returns the configured reset-token lifetime as a duration.
func (c Config) ResetTokenTTL() time.Duration {
	return time.Duration(c.ResetTokenTTLMinutes) * time.Minute
}
