package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Astemirdum/library-lending/library/internal/model"
)

// LendingTx is the set of statements the lending engine issues inside one transaction.
// Decrement and MarkReturned are single guarded UPDATE ... RETURNING statements; a false
// flag means the guard did not match and nothing was written.
type LendingTx interface {
	DecrementAvailable(ctx context.Context, bookID uuid.UUID) (model.Book, bool, error)
	RestockBook(ctx context.Context, bookID uuid.UUID) error
	InsertBorrowing(ctx context.Context, userID, bookID uuid.UUID, borrowedAt time.Time) (uuid.UUID, error)
	MarkReturned(ctx context.Context, borrowingID, userID uuid.UUID, returnedAt time.Time) (model.Borrowing, bool, error)

	GetBook(ctx context.Context, id uuid.UUID) (model.Book, error)
	GetUser(ctx context.Context, id uuid.UUID) (model.User, error)
	GetBorrowing(ctx context.Context, id uuid.UUID) (model.Borrowing, error)
}

type Lending interface {
	RunInTx(ctx context.Context, fn func(tx LendingTx) error) error
}

type Catalog interface {
	CreateBook(ctx context.Context, req model.CreateBookRequest) (model.Book, error)
	GetBook(ctx context.Context, id uuid.UUID) (model.Book, error)
	ListBooks(ctx context.Context, q string, page, limit int) ([]model.Book, int, error)
	UpdateBook(ctx context.Context, id uuid.UUID, req model.UpdateBookRequest) (model.Book, error)
	Availability(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]int, error)
}

type Users interface {
	CreateUser(ctx context.Context, email, passwordHash string, role model.Role) (model.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (model.User, error)
	GetUserByEmail(ctx context.Context, email string) (model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	UpdateUserRole(ctx context.Context, id uuid.UUID, role model.Role) (model.User, error)
}

type repository struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewRepository(db *sqlx.DB, log *zap.Logger) (*repository, error) {
	if db == nil {
		return nil, errors.New("nil db")
	}
	return &repository{
		db:  db,
		log: log.Named("repo"),
	}, nil
}

const (
	usersTableName      = `users`
	booksTableName      = `books`
	borrowingsTableName = `borrowings`
)

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var bookColumns = []string{
	"id", "title", "author", "isbn", "publication_year",
	"total_quantity", "available_quantity", "cover_url", "created_at", "updated_at",
}

// RunInTx commits when fn returns nil and rolls back on error or panic.
func (r *repository) RunInTx(ctx context.Context, fn func(tx LendingTx) error) (err error) {
	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return errors.Wrap(err, "BeginTxx")
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				r.log.Error("tx.Rollback", zap.Error(rbErr))
			}
			return
		}
		err = errors.Wrap(tx.Commit(), "tx.Commit")
	}()

	return fn(&lendingTx{tx: tx, log: r.log})
}

func getBook(ctx context.Context, q sqlx.QueryerContext, id uuid.UUID) (model.Book, error) {
	query, args, err := qb.Select(bookColumns...).
		From(booksTableName).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return model.Book{}, err
	}
	var book model.Book
	if err := sqlx.GetContext(ctx, q, &book, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Book{}, ErrNotFound
		}
		return model.Book{}, errors.Wrap(err, "getBook")
	}
	return book, nil
}

func getUser(ctx context.Context, q sqlx.QueryerContext, where sq.Eq) (model.User, error) {
	query, args, err := qb.Select("id", "email", "password_hash", "role", "created_at", "updated_at").
		From(usersTableName).
		Where(where).
		ToSql()
	if err != nil {
		return model.User{}, err
	}
	var user model.User
	if err := sqlx.GetContext(ctx, q, &user, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, ErrNotFound
		}
		return model.User{}, errors.Wrap(err, "getUser")
	}
	return user, nil
}

// ErrNotFound is returned by lookups that matched no row. Services turn it into a domain message.
var ErrNotFound = errors.New("not found")

// ErrUniqueViolation carries the violated constraint name.
type ErrUniqueViolation struct {
	Constraint string
}

func (e *ErrUniqueViolation) Error() string {
	return fmt.Sprintf("unique violation: %s", e.Constraint)
}

func mapPgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return &ErrUniqueViolation{Constraint: pgErr.ConstraintName}
	}
	return err
}
