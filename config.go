package recipefinder

import "time"

type UpstreamConfig struct {
	BaseURL           string        `env:"MEALDB_BASE_URL,default=https://www.themealdb.com/api/json/v1/1"`
	Timeout           time.Duration `env:"MEALDB_TIMEOUT,default=20s"`
	EnrichConcurrency int           `env:"MEALDB_ENRICH_CONCURRENCY,default=8"`
}

// StorageConfig selects where the favorites and theme slots live.
// Backend is one of "file", "s3", "redis", "sqlite" or "memory".
type StorageConfig struct {
	Backend       string        `env:"STORAGE_BACKEND,default=file"`
	FavoritesPath string        `env:"FAVORITES_PATH,default=artifacts/favorites.json"`
	ThemePath     string        `env:"THEME_PATH,default=artifacts/darkMode.json"`
	S3Bucket      string        `env:"STORAGE_S3_BUCKET"`
	FavoritesKey  string        `env:"FAVORITES_KEY,default=favorites"`
	ThemeKey      string        `env:"THEME_KEY,default=darkMode"`
	RedisAddress  string        `env:"REDIS_ADDRESS,default=localhost:6379"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	RedisDB       int           `env:"REDIS_DB,default=0"`
	SQLitePath    string        `env:"SQLITE_PATH,default=artifacts/recipefinder.db"`
	WatchInterval time.Duration `env:"FAVORITES_WATCH_INTERVAL,default=0s"`
}

type ServerConfig struct {
	ListenAddr     string `env:"LISTEN_ADDR,default=:8080"`
	AllowedOrigins string `env:"CORS_ALLOWED_ORIGINS,default=*"`
	CallLogPath    string `env:"CALL_LOG_PATH"`
	EnableOtel     bool   `env:"ENABLE_OTEL,default=false"`

	// Favorites activity is posted to Slack when a webhook is configured.
	SlackWebhookURL string `env:"SLACK_WEBHOOK_URL"`
	SlackChannel    string `env:"SLACK_CHANNEL,default=#recipes"`
}
