package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Astemirdum/library-lending/library/internal/model"
)

type lendingTx struct {
	tx  *sqlx.Tx
	log *zap.Logger
}

// DecrementAvailable takes one copy in a single guarded statement. Two concurrent callers
// can never both see the last copy: the second one blocks on the row lock and re-checks
// the guard against the committed value.
func (t *lendingTx) DecrementAvailable(ctx context.Context, bookID uuid.UUID) (model.Book, bool, error) {
	q := fmt.Sprintf(`update %s
	set available_quantity = available_quantity - 1, updated_at = now()
	where id = $1 and available_quantity > 0
	returning %s`, booksTableName, strings.Join(bookColumns, ", "))

	var book model.Book
	if err := t.tx.GetContext(ctx, &book, q, bookID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Book{}, false, nil
		}
		return model.Book{}, false, errors.Wrap(err, "DecrementAvailable")
	}
	return book, true, nil
}

// RestockBook gives one copy back, clamped to the total in the same statement.
func (t *lendingTx) RestockBook(ctx context.Context, bookID uuid.UUID) error {
	q := fmt.Sprintf(`update %s
	set available_quantity = least(total_quantity, available_quantity + 1), updated_at = now()
	where id = $1`, booksTableName)

	if _, err := t.tx.ExecContext(ctx, q, bookID); err != nil {
		return errors.Wrap(err, "RestockBook")
	}
	return nil
}

func (t *lendingTx) InsertBorrowing(ctx context.Context, userID, bookID uuid.UUID, borrowedAt time.Time) (uuid.UUID, error) {
	query, args, err := qb.Insert(borrowingsTableName).
		Columns("id", "user_id", "book_id", "borrowed_at").
		Values(uuid.New(), userID, bookID, borrowedAt.UTC()).
		Suffix("returning id").
		ToSql()
	if err != nil {
		return uuid.Nil, err
	}
	var id uuid.UUID
	if err := t.tx.GetContext(ctx, &id, query, args...); err != nil {
		t.log.Error("InsertBorrowing", zap.String("q", query), zap.Any("args", args))
		return uuid.Nil, errors.Wrap(err, "InsertBorrowing")
	}
	return id, nil
}

// MarkReturned closes an active borrowing owned by userID. The row is returned without relations.
func (t *lendingTx) MarkReturned(ctx context.Context, borrowingID, userID uuid.UUID, returnedAt time.Time) (model.Borrowing, bool, error) {
	q := fmt.Sprintf(`update %s
	set returned_at = $3, updated_at = now()
	where id = $1 and returned_at is null and user_id = $2
	returning id, user_id, book_id, borrowed_at, returned_at`, borrowingsTableName)

	var b model.Borrowing
	if err := t.tx.GetContext(ctx, &b, q, borrowingID, userID, returnedAt.UTC()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Borrowing{}, false, nil
		}
		return model.Borrowing{}, false, errors.Wrap(err, "MarkReturned")
	}
	return b, true, nil
}

func (t *lendingTx) GetBook(ctx context.Context, id uuid.UUID) (model.Book, error) {
	return getBook(ctx, t.tx, id)
}

func (t *lendingTx) GetUser(ctx context.Context, id uuid.UUID) (model.User, error) {
	return getUser(ctx, t.tx, sq.Eq{"id": id})
}

// GetBorrowing loads a borrowing with its user and book.
func (t *lendingTx) GetBorrowing(ctx context.Context, id uuid.UUID) (model.Borrowing, error) {
	query, args, err := borrowingSelect().
		Where(sq.Eq{"br.id": id}).
		ToSql()
	if err != nil {
		return model.Borrowing{}, err
	}
	var b model.Borrowing
	if err := t.tx.GetContext(ctx, &b, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Borrowing{}, ErrNotFound
		}
		return model.Borrowing{}, errors.Wrap(err, "GetBorrowing")
	}
	return b, nil
}

func borrowingSelect() sq.SelectBuilder {
	return qb.Select(
		"br.id", "br.user_id", "br.book_id", "br.borrowed_at", "br.returned_at",
		`u.id as "user.id"`, `u.email as "user.email"`, `u.role as "user.role"`,
		`b.id as "book.id"`, `b.title as "book.title"`, `b.author as "book.author"`,
		`b.isbn as "book.isbn"`, `b.publication_year as "book.publication_year"`,
		`b.total_quantity as "book.total_quantity"`, `b.available_quantity as "book.available_quantity"`,
		`b.cover_url as "book.cover_url"`,
		`b.created_at as "book.created_at"`, `b.updated_at as "book.updated_at"`,
	).
		From(borrowingsTableName + " br").
		Join(usersTableName + " u on u.id = br.user_id").
		Join(booksTableName + " b on b.id = br.book_id")
}
