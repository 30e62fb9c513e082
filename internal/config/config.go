package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env"
	"github.com/spf13/pflag"
)

type Arguments struct {
	ListenAddr    string        `env:"SERVER_ADDRESS" envDefault:"localhost:8080"`
	LogLevel      string        `env:"LOG_LEVEL" envDefault:"info"`
	DatabaseDSN   string        `env:"DATABASE_DSN" envDefault:""`
	JWTSecret     string        `env:"JWT_SECRET" envDefault:"secret"`
	AdminLogin    string        `env:"ADMIN_LOGIN" envDefault:"admin"`
	AdminPassword string        `env:"ADMIN_PASSWORD" envDefault:""`
	MailerAddr    string        `env:"MAILER_ADDRESS" envDefault:"http://localhost:8090"`
	PaymentAddr   string        `env:"PAYMENT_ADDRESS" envDefault:"http://localhost:8091"`
	SweepInterval time.Duration `env:"SWEEP_INTERVAL" envDefault:"30m"`
}

// ServerConfig модель настроек сервера
type ServerConfig struct {
	ListenAddr  string
	LogLevel    string
	JWTSecret   string
	DatabaseDSN string
	// стартовая учётная запись администратора, заводится при запуске.
	// Пустой пароль - учётная запись не создаётся.
	AdminLogin    string
	AdminPassword string
}

// JobsConfig модель настроек фоновой обработки напоминаний
type JobsConfig struct {
	SweepInterval time.Duration
	BatchSize     int
}

// ExternalConfig модель настроек внешних сервисов (почтовый шлюз, платёжный шлюз)
type ExternalConfig struct {
	MailerAddr  string
	PaymentAddr string
}

// Config модель настроек сервиса
type Config struct {
	Server   ServerConfig
	Jobs     JobsConfig
	External ExternalConfig
}

func NewConfig() Config {

	var args Arguments
	if err := env.Parse(&args); err != nil {
		panic(fmt.Sprintf("Failed to parse enviroment var: %s", err.Error()))
	}

	var (
		server   = pflag.StringP("server", "a", args.ListenAddr, "Server listen address in a form host:port.")
		logLevel = pflag.StringP("log_level", "l", args.LogLevel, "Log level.")
		DSN      = pflag.StringP("dsn", "d", args.DatabaseDSN, "Database DSN")
		secret   = pflag.StringP("secret", "s", args.JWTSecret, "Secret to JWT")
		login    = pflag.StringP("admin_login", "u", args.AdminLogin, "Bootstrap admin login.")
		password = pflag.StringP("admin_password", "w", args.AdminPassword, "Bootstrap admin password.")
		mailer   = pflag.StringP("mailer", "m", args.MailerAddr, "Mailer service address in a form host:port.")
		payment  = pflag.StringP("payment", "p", args.PaymentAddr, "Payment gateway address in a form host:port.")
		sweep    = pflag.DurationP("sweep", "i", args.SweepInterval, "Reminder sweep interval.")
	)
	pflag.Parse()

	return Config{
		Server: ServerConfig{
			ListenAddr:    *server,
			LogLevel:      *logLevel,
			DatabaseDSN:   *DSN,
			JWTSecret:     *secret,
			AdminLogin:    *login,
			AdminPassword: *password,
		},
		Jobs: JobsConfig{
			SweepInterval: *sweep,
			BatchSize:     100,
		},
		External: ExternalConfig{
			MailerAddr:  *mailer,
			PaymentAddr: *payment,
		},
	}
}

func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			ListenAddr:    "localhost:8080",
			LogLevel:      "info",
			DatabaseDSN:   "",
			JWTSecret:     "secret",
			AdminLogin:    "admin",
			AdminPassword: "",
		},
		Jobs: JobsConfig{
			SweepInterval: 30 * time.Minute,
			BatchSize:     100,
		},
		External: ExternalConfig{
			MailerAddr:  "http://localhost:8090",
			PaymentAddr: "http://localhost:8091",
		},
	}
}
