package backend

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	goredis "github.com/redis/go-redis/v9"

	"github.com/khalilousrhihF2I/sailingloc-booking-engine/internal/config"
	"github.com/khalilousrhihF2I/sailingloc-booking-engine/internal/domain/block"
	"github.com/khalilousrhihF2I/sailingloc-booking-engine/internal/domain/boat"
	"github.com/khalilousrhihF2I/sailingloc-booking-engine/internal/domain/booking"
	"github.com/khalilousrhihF2I/sailingloc-booking-engine/internal/domain/transaction"
	"github.com/khalilousrhihF2I/sailingloc-booking-engine/internal/infrastructure/memory"
	"github.com/khalilousrhihF2I/sailingloc-booking-engine/internal/infrastructure/postgres"
	redisinfra "github.com/khalilousrhihF2I/sailingloc-booking-engine/internal/infrastructure/redis"
	"github.com/khalilousrhihF2I/sailingloc-booking-engine/internal/lock"
	"github.com/khalilousrhihF2I/sailingloc-booking-engine/internal/pkg/logger"
)

// ErrBackendUnavailable は設定されたバックエンドが解決できない場合のエラー
var ErrBackendUnavailable = errors.New("バックエンドが利用できません")

// Backend は起動時に解決されたバックエンド実装の集合
// ビジネスロジックはこの構造体経由でのみ実装に触れる
type Backend struct {
	Bookings  booking.Repository
	Blocks    block.Repository
	Boats     boat.Repository
	TxManager transaction.Manager
	Locks     lock.Manager
	// Cache はキャッシュが無効（none）の場合nil
	Cache *redisinfra.AvailabilityCache

	db          *sqlx.DB
	redisClient *goredis.Client
}

// Build は設定に従ってバックエンド実装を一度だけ解決する
// 不明なモードや接続失敗は ErrBackendUnavailable を返す
func Build(ctx context.Context, cfg *config.Config) (*Backend, error) {
	b := &Backend{}

	if cfg.Backend.UsesPostgres() {
		db, err := postgres.NewConnection(&cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
		}
		b.db = db
	}

	if cfg.Backend.UsesRedis() {
		client := redisinfra.NewClient(&cfg.Redis)
		if err := redisinfra.Ping(ctx, client); err != nil {
			b.Close()
			return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
		}
		b.redisClient = client
	}

	if err := b.resolveRepositories(cfg); err != nil {
		b.Close()
		return nil, err
	}
	if err := b.resolveLocking(cfg); err != nil {
		b.Close()
		return nil, err
	}
	if err := b.resolveCache(cfg); err != nil {
		b.Close()
		return nil, err
	}

	logger.Info(fmt.Sprintf("バックエンド解決完了: bookings=%s blocks=%s boats=%s locking=%s cache=%s",
		cfg.Backend.Bookings, cfg.Backend.Blocks, cfg.Backend.Boats, cfg.Backend.Locking, cfg.Backend.Cache))
	return b, nil
}

func (b *Backend) resolveRepositories(cfg *config.Config) error {
	switch cfg.Backend.Bookings {
	case config.ModeMemory:
		b.Bookings = memory.NewBookingRepository()
		b.TxManager = memory.NewTxManager()
	case config.ModePostgres:
		b.Bookings = postgres.NewBookingRepository(b.db)
		b.TxManager = postgres.NewTxManager(b.db)
	default:
		return fmt.Errorf("%w: 不明な予約バックエンド %q", ErrBackendUnavailable, cfg.Backend.Bookings)
	}

	switch cfg.Backend.Blocks {
	case config.ModeMemory:
		b.Blocks = memory.NewBlockRepository()
	case config.ModePostgres:
		b.Blocks = postgres.NewBlockRepository(b.db)
	default:
		return fmt.Errorf("%w: 不明なブロックバックエンド %q", ErrBackendUnavailable, cfg.Backend.Blocks)
	}

	switch cfg.Backend.Boats {
	case config.ModeMemory:
		b.Boats = memory.NewBoatRepository()
	case config.ModePostgres:
		b.Boats = postgres.NewBoatRepository(b.db)
	default:
		return fmt.Errorf("%w: 不明なボートバックエンド %q", ErrBackendUnavailable, cfg.Backend.Boats)
	}
	return nil
}

func (b *Backend) resolveLocking(cfg *config.Config) error {
	switch cfg.Backend.Locking {
	case config.ModeMemory:
		b.Locks = memory.NewKeyedLocker()
	case config.ModeRedis:
		b.Locks = redisinfra.NewLockManager(b.redisClient)
	default:
		return fmt.Errorf("%w: 不明なロックバックエンド %q", ErrBackendUnavailable, cfg.Backend.Locking)
	}
	return nil
}

func (b *Backend) resolveCache(cfg *config.Config) error {
	switch cfg.Backend.Cache {
	case config.ModeNone:
		b.Cache = nil
	case config.ModeRedis:
		b.Cache = redisinfra.NewAvailabilityCache(b.redisClient)
	default:
		return fmt.Errorf("%w: 不明なキャッシュバックエンド %q", ErrBackendUnavailable, cfg.Backend.Cache)
	}
	return nil
}

// Migrate はPostgreSQL使用時にマイグレーションを適用する
func (b *Backend) Migrate(migrationsPath string) error {
	if b.db == nil {
		return nil
	}
	return postgres.RunMigrations(b.db.DB, migrationsPath)
}

// Close は保持している接続を閉じる
func (b *Backend) Close() {
	if b.db != nil {
		if err := b.db.Close(); err != nil {
			logger.Error("データベース切断エラー: " + err.Error())
		}
	}
	if b.redisClient != nil {
		if err := b.redisClient.Close(); err != nil {
			logger.Error("Redis切断エラー: " + err.Error())
		}
	}
}
