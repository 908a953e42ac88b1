package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/Astemirdum/library-lending/library/internal/model"
)

// Reports runs read-only queries on a separate pgx pool. Nothing here takes part in lending transactions.
type Reports interface {
	HistoryForBook(ctx context.Context, bookID uuid.UUID, limit, offset int) ([]model.Borrowing, error)
	CountHistory(ctx context.Context, bookID uuid.UUID) (int, error)
	MostBorrowed(ctx context.Context, limit int) ([]model.MostBorrowed, error)
	ActiveBorrowings(ctx context.Context, userID, bookID uuid.UUID) ([]model.Borrowing, error)
}

type reportsRepository struct {
	db  *pgxpool.Pool
	log *zap.Logger
}

func NewReportsRepository(db *pgxpool.Pool, log *zap.Logger) *reportsRepository {
	return &reportsRepository{
		db:  db,
		log: log.Named("reports_repo"),
	}
}

type borrowingRow struct {
	ID                    uuid.UUID  `db:"id"`
	BorrowedAt            time.Time  `db:"borrowed_at"`
	ReturnedAt            *time.Time `db:"returned_at"`
	UserID                uuid.UUID  `db:"user_id"`
	UserEmail             string     `db:"user_email"`
	UserRole              string     `db:"user_role"`
	BookID                uuid.UUID  `db:"book_id"`
	BookTitle             string     `db:"book_title"`
	BookAuthor            string     `db:"book_author"`
	BookISBN              string     `db:"book_isbn"`
	BookPublicationYear   int        `db:"book_publication_year"`
	BookTotalQuantity     int        `db:"book_total_quantity"`
	BookAvailableQuantity int        `db:"book_available_quantity"`
	BookCoverURL          *string    `db:"book_cover_url"`
	BookCreatedAt         time.Time  `db:"book_created_at"`
	BookUpdatedAt         time.Time  `db:"book_updated_at"`
}

func (r borrowingRow) toModel() model.Borrowing {
	return model.Borrowing{
		ID:         r.ID,
		UserID:     r.UserID,
		BookID:     r.BookID,
		BorrowedAt: r.BorrowedAt,
		ReturnedAt: r.ReturnedAt,
		User: model.UserRef{
			ID:    r.UserID,
			Email: r.UserEmail,
			Role:  model.Role(r.UserRole),
		},
		Book: model.Book{
			ID:                r.BookID,
			Title:             r.BookTitle,
			Author:            r.BookAuthor,
			ISBN:              r.BookISBN,
			PublicationYear:   r.BookPublicationYear,
			TotalQuantity:     r.BookTotalQuantity,
			AvailableQuantity: r.BookAvailableQuantity,
			CoverURL:          r.BookCoverURL,
			CreatedAt:         r.BookCreatedAt,
			UpdatedAt:         r.BookUpdatedAt,
		},
	}
}

const borrowingRowSelect = `
	select br.id, br.borrowed_at, br.returned_at,
	       u.id as user_id, u.email as user_email, u.role::text as user_role,
	       b.id as book_id, b.title as book_title, b.author as book_author, b.isbn as book_isbn,
	       b.publication_year as book_publication_year, b.total_quantity as book_total_quantity,
	       b.available_quantity as book_available_quantity, b.cover_url as book_cover_url,
	       b.created_at as book_created_at, b.updated_at as book_updated_at
	from borrowings br
	join users u on u.id = br.user_id
	join books b on b.id = br.book_id`

func (r *reportsRepository) collectBorrowings(ctx context.Context, q string, args pgx.NamedArgs) ([]model.Borrowing, error) {
	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, err
	}
	items, err := pgx.CollectRows(rows, pgx.RowToStructByName[borrowingRow])
	if err != nil {
		return nil, fmt.Errorf("pgx.CollectRows: %w", err)
	}
	res := make([]model.Borrowing, 0, len(items))
	for _, it := range items {
		res = append(res, it.toModel())
	}
	return res, nil
}

func (r *reportsRepository) HistoryForBook(ctx context.Context, bookID uuid.UUID, limit, offset int) ([]model.Borrowing, error) {
	q := borrowingRowSelect + `
	where br.book_id = @book_id
	order by br.borrowed_at desc, br.id
	limit @limit offset @offset`
	return r.collectBorrowings(ctx, q, pgx.NamedArgs{
		"book_id": bookID,
		"limit":   limit,
		"offset":  offset,
	})
}

func (r *reportsRepository) CountHistory(ctx context.Context, bookID uuid.UUID) (int, error) {
	var total int
	err := r.db.QueryRow(ctx, `select count(*) from borrowings where book_id = $1`, bookID).Scan(&total)
	return total, err
}

// MostBorrowed orders by count and then by book id, so ties have a stable order.
func (r *reportsRepository) MostBorrowed(ctx context.Context, limit int) ([]model.MostBorrowed, error) {
	const q = `
	select b.id as book_id, b.title, count(br.id)::int as borrow_count
	from borrowings br
	join books b on b.id = br.book_id
	group by b.id, b.title
	order by borrow_count desc, b.id
	limit @limit`
	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"limit": limit})
	if err != nil {
		return nil, err
	}
	items, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.MostBorrowed])
	if err != nil {
		return nil, fmt.Errorf("pgx.CollectRows: %w", err)
	}
	return items, nil
}

func (r *reportsRepository) ActiveBorrowings(ctx context.Context, userID, bookID uuid.UUID) ([]model.Borrowing, error) {
	q := borrowingRowSelect + `
	where br.user_id = @user_id and br.book_id = @book_id and br.returned_at is null
	order by br.borrowed_at asc, br.id`
	return r.collectBorrowings(ctx, q, pgx.NamedArgs{
		"user_id": userID,
		"book_id": bookID,
	})
}
