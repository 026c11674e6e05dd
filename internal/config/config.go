package config

import (
	"os"
	"strconv"
	"time"
)

// Mode はバックエンド実装の選択肢を表す
type Mode string

const (
	// ModeMemory はインメモリ実装（開発・テスト用）
	ModeMemory Mode = "memory"
	// ModePostgres はPostgreSQL実装（本番用）
	ModePostgres Mode = "postgres"
	// ModeRedis はRedis実装（ロック・キャッシュ用）
	ModeRedis Mode = "redis"
	// ModeNone は機能を無効化する（キャッシュ用）
	ModeNone Mode = "none"
)

// Config はアプリケーション設定を表す
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Backend  BackendConfig
	Lock     LockConfig
}

// ServerConfig はサーバー設定
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// DatabaseConfig はデータベース設定
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// RedisConfig はRedis設定
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// BackendConfig は機能単位のバックエンド選択
// 起動時に一度だけ解決され、ビジネスロジックはモードを参照しない
type BackendConfig struct {
	// Bookings は予約リポジトリの実装（memory | postgres）
	Bookings Mode
	// Blocks はブロック期間リポジトリの実装（memory | postgres）
	Blocks Mode
	// Boats はボートリポジトリの実装（memory | postgres）
	Boats Mode
	// Locking はボート単位ロックの実装（memory | redis）
	Locking Mode
	// Cache は空き状況キャッシュの実装（none | redis）
	Cache Mode
}

// LockConfig はボート単位ロックの調整値
type LockConfig struct {
	TTL        time.Duration
	MaxRetries int
	RetryDelay time.Duration
}

// Load は環境変数から設定を読み込む
func Load() *Config {
	defaultMode := Mode(getEnv("BACKEND_MODE", string(ModeMemory)))
	return &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "8080"),
			ReadTimeout:  getDurationEnv("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout: getDurationEnv("SERVER_WRITE_TIMEOUT", 30*time.Second),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "sailingloc"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getIntEnv("REDIS_DB", 0),
		},
		Backend: BackendConfig{
			Bookings: Mode(getEnv("BACKEND_BOOKINGS", string(defaultMode))),
			Blocks:   Mode(getEnv("BACKEND_BLOCKS", string(defaultMode))),
			Boats:    Mode(getEnv("BACKEND_BOATS", string(defaultMode))),
			Locking:  Mode(getEnv("BACKEND_LOCKING", defaultLocking(defaultMode))),
			Cache:    Mode(getEnv("BACKEND_CACHE", string(ModeNone))),
		},
		Lock: LockConfig{
			TTL:        getDurationEnv("LOCK_TTL", 10*time.Second),
			MaxRetries: getIntEnv("LOCK_MAX_RETRIES", 3),
			RetryDelay: getDurationEnv("LOCK_RETRY_DELAY", 100*time.Millisecond),
		},
	}
}

// defaultLocking はデフォルトモードに応じたロック実装を返す
// インメモリバックエンドではプロセス内ロック、それ以外は分散ロック
func defaultLocking(m Mode) string {
	if m == ModeMemory {
		return string(ModeMemory)
	}
	return string(ModeRedis)
}

// UsesPostgres はいずれかの機能がPostgreSQLを必要とするかを返す
func (c *BackendConfig) UsesPostgres() bool {
	return c.Bookings == ModePostgres || c.Blocks == ModePostgres || c.Boats == ModePostgres
}

// UsesRedis はいずれかの機能がRedisを必要とするかを返す
func (c *BackendConfig) UsesRedis() bool {
	return c.Locking == ModeRedis || c.Cache == ModeRedis
}

// DSN はPostgreSQL接続文字列を返す
func (c *DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" port=" + c.Port +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.DBName +
		" sslmode=" + c.SSLMode
}

// Addr はRedis接続アドレスを返す
func (c *RedisConfig) Addr() string {
	return c.Host + ":" + c.Port
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
