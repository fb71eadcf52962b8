package config

import (
	"time"
)

type DB struct {
	// Driver is either "postgres" or "sqlite".
	Driver string `envconfig:"DRIVER" default:"postgres"`
	Url    string `envconfig:"URL"`
}

type Jwt struct {
	Secret string        `envconfig:"SECRET" required:"true"`
	Expiry time.Duration `envconfig:"EXPIRY" default:"168h"`
}

type Auth struct {
	Jwt *Jwt `envconfig:"JWT"`
}

// Redis configures the session cache. An empty URL selects the in-memory cache.
type Redis struct {
	URL        string        `envconfig:"URL"`
	KeyPrefix  string        `envconfig:"KEY_PREFIX" default:"fintrack:session:"`
	SessionTTL time.Duration `envconfig:"SESSION_TTL" default:"5m"`
}

type RateLimit struct {
	MaxRequests int           `envconfig:"MAX_REQUESTS" default:"100"`
	Window      time.Duration `envconfig:"WINDOW" default:"1m"`
}

type Cors struct {
	AllowOrigins string `envconfig:"ALLOW_ORIGINS" default:"*"`
}

type Log struct {
	Level      int    `envconfig:"LEVEL" default:"0"`
	Format     string `envconfig:"FORMAT" default:"json"`
	TimeFormat string `envconfig:"TIME_FORMAT" default:"2006-01-02 15:04:05"`
	Prefix     string `envconfig:"PREFIX" default:"[fintrack]"`
}

type Server struct {
	Scheme string `envconfig:"SCHEME" default:"http"`
	Host   string `envconfig:"HOST" default:"localhost"`
	Port   int    `envconfig:"PORT" default:"3000"`
}

type App struct {
	Env       string     `envconfig:"APP_ENV" default:"development"`
	Server    *Server    `envconfig:"SERVER"`
	Log       *Log       `envconfig:"LOG"`
	DB        *DB        `envconfig:"DATABASE"`
	Auth      *Auth      `envconfig:"AUTH"`
	Redis     *Redis     `envconfig:"REDIS"`
	RateLimit *RateLimit `envconfig:"RATE_LIMIT"`
	Cors      *Cors      `envconfig:"CORS"`
}
