package repository

import (
	"context"
	"database/sql"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Astemirdum/library-lending/library/internal/model"
)

// ErrCapacityBelowBorrowed is returned when a new total would leave fewer copies than are lent out.
var ErrCapacityBelowBorrowed = errors.New("total below borrowed")

func (r *repository) CreateBook(ctx context.Context, req model.CreateBookRequest) (model.Book, error) {
	available := req.TotalQuantity
	if req.AvailableQuantity != nil {
		available = *req.AvailableQuantity
	}
	query, args, err := qb.Insert(booksTableName).
		Columns("id", "title", "author", "isbn", "publication_year", "total_quantity", "available_quantity", "cover_url").
		Values(uuid.New(), req.Title, req.Author, req.ISBN, req.PublicationYear, req.TotalQuantity, available, req.CoverURL).
		Suffix("returning " + strings.Join(bookColumns, ", ")).
		ToSql()
	if err != nil {
		return model.Book{}, err
	}
	var book model.Book
	if err := r.db.GetContext(ctx, &book, query, args...); err != nil {
		r.log.Error("CreateBook", zap.String("q", query), zap.Error(err))
		return model.Book{}, mapPgError(err)
	}
	return book, nil
}

func (r *repository) GetBook(ctx context.Context, id uuid.UUID) (model.Book, error) {
	return getBook(ctx, r.db, id)
}

func (r *repository) ListBooks(ctx context.Context, q string, page, limit int) ([]model.Book, int, error) {
	var where sq.Sqlizer = sq.Expr("true")
	if q != "" {
		pattern := "%" + q + "%"
		where = sq.Or{sq.ILike{"title": pattern}, sq.ILike{"author": pattern}}
	}

	query, args, err := qb.Select(bookColumns...).
		From(booksTableName).
		Where(where).
		OrderBy("created_at desc", "id").
		Limit(uint64(limit)).
		Offset(uint64((page - 1) * limit)).
		ToSql()
	if err != nil {
		return nil, 0, err
	}
	r.log.Debug("ListBooks", zap.String("query", query), zap.Any("args", args))

	books := make([]model.Book, 0, limit)
	if err := r.db.SelectContext(ctx, &books, query, args...); err != nil {
		return nil, 0, errors.Wrap(err, "ListBooks")
	}

	countQuery, countArgs, err := qb.Select("count(*)").From(booksTableName).Where(where).ToSql()
	if err != nil {
		return nil, 0, err
	}
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, countArgs...); err != nil {
		return nil, 0, errors.Wrap(err, "CountBooks")
	}
	return books, total, nil
}

// UpdateBook applies catalog edits in one statement. A capacity change moves
// available_quantity by the same delta, so the copies currently lent out stay accounted for;
// the guard rejects a total smaller than the number of lent copies.
func (r *repository) UpdateBook(ctx context.Context, id uuid.UUID, req model.UpdateBookRequest) (model.Book, error) {
	q := qb.Update(booksTableName).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id}).
		Suffix("returning " + strings.Join(bookColumns, ", "))

	if req.Title != nil {
		q = q.Set("title", *req.Title)
	}
	if req.Author != nil {
		q = q.Set("author", *req.Author)
	}
	if req.ISBN != nil {
		q = q.Set("isbn", *req.ISBN)
	}
	if req.PublicationYear != nil {
		q = q.Set("publication_year", *req.PublicationYear)
	}
	if req.CoverURL != nil {
		q = q.Set("cover_url", *req.CoverURL)
	}
	if req.TotalQuantity != nil {
		total := *req.TotalQuantity
		q = q.Set("total_quantity", total).
			Set("available_quantity", sq.Expr("available_quantity + (?::int - total_quantity)", total)).
			Where(sq.Expr("?::int >= total_quantity - available_quantity", total))
	}

	query, args, err := q.ToSql()
	if err != nil {
		return model.Book{}, err
	}
	var book model.Book
	if err := r.db.GetContext(ctx, &book, query, args...); err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return model.Book{}, mapPgError(err)
		}
		if _, getErr := getBook(ctx, r.db, id); getErr != nil {
			return model.Book{}, getErr
		}
		return model.Book{}, ErrCapacityBelowBorrowed
	}
	return book, nil
}

// Availability reads the live available_quantity of the given books.
func (r *repository) Availability(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]int, error) {
	res := make(map[uuid.UUID]int, len(ids))
	if len(ids) == 0 {
		return res, nil
	}
	query, args, err := qb.Select("id", "available_quantity").
		From(booksTableName).
		Where(sq.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "Availability")
	}
	defer rows.Close()
	for rows.Next() {
		var (
			id        uuid.UUID
			available int
		)
		if err := rows.Scan(&id, &available); err != nil {
			return nil, err
		}
		res[id] = available
	}
	return res, rows.Err()
}
