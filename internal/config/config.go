package config

import "time"

type PostgresConfig struct {
	DSN             string        `env:"PG_DSN"`
	MaxOpenConns    int           `env:"PG_MAX_OPEN_CONNS"    default:"16"`
	MaxIdleConns    int           `env:"PG_MAX_IDLE_CONNS"    default:"8"`
	ConnMaxIdleTime time.Duration `env:"PG_CONN_MAX_IDLE_TIME" default:"5m"`
	ConnMaxLifetime time.Duration `env:"PG_CONN_MAX_LIFETIME"  default:"30m"`
}

type CatalogConfig struct {
	BaseURL string        `env:"CATALOG_BASE_URL" default:"https://www.dnd5eapi.co"`
	Timeout time.Duration `env:"CATALOG_TIMEOUT"  default:"10s"`
}
