package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrUniqueViolation wraps PostgreSQL error 23505 raised while committing.
var ErrUniqueViolation = errors.New("unique constraint violated")

const uniqueViolationCode = "23505"

// UnitOfWork commits the request's ChangeSet inside one pgx transaction.
type UnitOfWork struct {
	pool *pgxpool.Pool
}

// NewUnitOfWork tạo unit of work dùng chung pool với repositories
func NewUnitOfWork(pool *pgxpool.Pool) *UnitOfWork {
	return &UnitOfWork{pool: pool}
}

// SaveChanges commit toàn bộ change đã stage trong context.
// Trả về tổng số rows bị ảnh hưởng.
func (u *UnitOfWork) SaveChanges(ctx context.Context) (int, error) {
	cs := ChangeSetFromContext(ctx)
	if cs.Len() == 0 {
		return 0, nil
	}

	affected, err := WithTransactionResult(ctx, u.pool, func(tx pgx.Tx) (int, error) {
		return cs.Apply(ContextWithTx(ctx, tx))
	})
	// Apply không chạy nếu Begin lỗi
	cs.Discard()
	if err != nil {
		return 0, translateError(err)
	}
	return affected, nil
}

func translateError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		return fmt.Errorf("%w (%s): %v", ErrUniqueViolation, pgErr.ConstraintName, err)
	}
	return err
}
