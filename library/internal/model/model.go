package model

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleAdmin     Role = "admin"
	RoleLibrarian Role = "librarian"
	RoleMember    Role = "member"
)

type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         Role      `json:"role" db:"role"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// UserRef is the part of a user embedded into a borrowing.
type UserRef struct {
	ID    uuid.UUID `json:"id" db:"id"`
	Email string    `json:"email" db:"email"`
	Role  Role      `json:"role" db:"role"`
}

type Book struct {
	ID                uuid.UUID `json:"id" db:"id"`
	Title             string    `json:"title" db:"title"`
	Author            string    `json:"author" db:"author"`
	ISBN              string    `json:"isbn" db:"isbn"`
	PublicationYear   int       `json:"publicationYear" db:"publication_year"`
	TotalQuantity     int       `json:"totalQuantity" db:"total_quantity"`
	AvailableQuantity int       `json:"availableQuantity" db:"available_quantity"`
	CoverURL          *string   `json:"coverUrl,omitempty" db:"cover_url"`
	CreatedAt         time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt         time.Time `json:"updatedAt" db:"updated_at"`
}

// Borrowing is active while ReturnedAt is nil.
type Borrowing struct {
	ID         uuid.UUID  `json:"id" db:"id"`
	UserID     uuid.UUID  `json:"-" db:"user_id"`
	BookID     uuid.UUID  `json:"-" db:"book_id"`
	BorrowedAt time.Time  `json:"borrowedAt" db:"borrowed_at"`
	ReturnedAt *time.Time `json:"returnedAt" db:"returned_at"`
	User       UserRef    `json:"user" db:"user"`
	Book       Book       `json:"book" db:"book"`
}

func (b Borrowing) Active() bool {
	return b.ReturnedAt == nil
}

type Paging struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

type BorrowingList struct {
	Data   []Borrowing `json:"data"`
	Paging `json:",inline"`
}

type BookList struct {
	Data   []Book `json:"data"`
	Paging `json:",inline"`
}

type MostBorrowed struct {
	BookID      uuid.UUID `json:"bookId" db:"book_id"`
	Title       string    `json:"title" db:"title"`
	BorrowCount int       `json:"borrowCount" db:"borrow_count"`
}

type EventType string

const (
	EventBorrowed EventType = "borrowed"
	EventReturned EventType = "returned"
)

// BorrowingEvent is published after a borrow or return has been committed.
type BorrowingEvent struct {
	Type        EventType `json:"type"`
	BorrowingID uuid.UUID `json:"borrowingId"`
	BookID      uuid.UUID `json:"bookId"`
	UserID      uuid.UUID `json:"userId"`
	At          time.Time `json:"at"`
}
