package config

import "time"

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer
	Database    Database `envPrefix:"DB_"`
	Session     Session  `envPrefix:"SESSION_"`
	Cache       Cache    `envPrefix:"CACHE_"`
}

type Environment struct {
	Name string `env:"ENVIRONMENT" envDefault:"development"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type HTTPServer struct {
	Host         string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port         string `env:"HTTP_PORT" envDefault:"8080"`
	TemplatesDir string `env:"HTTP_TEMPLATES_DIR" envDefault:"web/templates"`
}

type Database struct {
	Driver string `env:"DRIVER" envDefault:"sqlite"` // sqlite | mysql
	DSN    string `env:"DSN" envDefault:"webshop.db"`
}

type Session struct {
	Lifetime time.Duration `env:"LIFETIME" envDefault:"24h"`
}

type Cache struct {
	// TTL of the per-user cart badge count.
	CartCountTTL time.Duration `env:"CART_COUNT_TTL" envDefault:"30s"`
}
