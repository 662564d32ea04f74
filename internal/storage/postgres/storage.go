package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/polkiloo/restaurant/internal/domain/errors"
	"github.com/polkiloo/restaurant/internal/domain/repository"
)

const uniqueViolation = "23505"

type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type pgxPool interface {
	querier
	BeginTx(ctx context.Context, opts pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (pgxPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

var runMigrations = migrate

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   pgxPool
	tx     pgx.Tx
	logger *slog.Logger
}

var _ repository.Factory = (*Storage)(nil)

type userRepository struct{ storage *Storage }
type tableRepository struct{ storage *Storage }
type catalogRepository struct{ storage *Storage }
type orderRepository struct{ storage *Storage }
type paymentRepository struct{ storage *Storage }
type reservationRepository struct{ storage *Storage }
type reviewRepository struct{ storage *Storage }
type statsRepository struct{ storage *Storage }

// New connects to PostgreSQL and brings the schema up to date.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	if err := runMigrations(ctx, cfg, logger); err != nil {
		pool.Close()
		return nil, err
	}

	return &Storage{pool: pool, logger: logger}, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *Storage) db() querier {
	if s.tx != nil {
		return s.tx
	}
	return s.pool
}

func (s *Storage) Users() repository.UserRepository               { return &userRepository{storage: s} }
func (s *Storage) Tables() repository.TableRepository             { return &tableRepository{storage: s} }
func (s *Storage) Catalog() repository.CatalogRepository          { return &catalogRepository{storage: s} }
func (s *Storage) Orders() repository.OrderRepository             { return &orderRepository{storage: s} }
func (s *Storage) Payments() repository.PaymentRepository         { return &paymentRepository{storage: s} }
func (s *Storage) Reservations() repository.ReservationRepository { return &reservationRepository{storage: s} }
func (s *Storage) Reviews() repository.ReviewRepository           { return &reviewRepository{storage: s} }
func (s *Storage) Stats() repository.StatsRepository              { return &statsRepository{storage: s} }

// WithinTransaction executes fn with repositories bound to one transaction.
// Nested calls reuse the outer transaction.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(repository.Factory) error) (err error) {
	if s.tx != nil {
		return fn(s)
	}

	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
				s.logger.Error("rollback failed", slog.Any("error", rbErr))
			}
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(&Storage{pool: s.pool, tx: tx, logger: s.logger})
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

// Logger returns storage logger.
func (s *Storage) Logger() *slog.Logger {
	return s.logger
}

func mapRowError(err error, entity string, id int64) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return domainErrors.NotFound(entity, id)
	}
	return mapWriteError(err)
}

func mapWriteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return domainErrors.ErrAlreadyExists
	}
	return err
}

func expectAffected(tag pgconn.CommandTag, entity string, id int64) error {
	if tag.RowsAffected() == 0 {
		return domainErrors.NotFound(entity, id)
	}
	return nil
}

func collect[T any](rows pgx.Rows, scan func(pgx.Rows) (T, error)) ([]T, error) {
	defer rows.Close()

	var result []T
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func paginate(b sq.SelectBuilder, limit, offset int) sq.SelectBuilder {
	if limit > 0 {
		b = b.Limit(uint64(limit))
	}
	if offset > 0 {
		b = b.Offset(uint64(offset))
	}
	return b
}
