package model

import (
	"github.com/google/uuid"
)

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

type BorrowRequest struct {
	BookID uuid.UUID `json:"bookId" validate:"required"`
}

type ReturnRequest struct {
	BorrowingID uuid.UUID `json:"borrowingId" validate:"required"`
}

type CreateBookRequest struct {
	Title             string `json:"title" validate:"required,max=500"`
	Author            string `json:"author" validate:"required,max=300"`
	ISBN              string `json:"isbn" validate:"required,max=20"`
	PublicationYear   int    `json:"publicationYear" validate:"required,min=1,max=2500"`
	TotalQuantity     int    `json:"totalQuantity" validate:"min=0,max=10000"`
	AvailableQuantity *int   `json:"availableQuantity,omitempty" validate:"omitempty,min=0,max=10000"`

	// CoverURL is set from an uploaded cover, never from the request body.
	CoverURL *string `json:"-"`
}

type UpdateBookRequest struct {
	Title           *string `json:"title,omitempty" validate:"omitempty,min=1,max=500"`
	Author          *string `json:"author,omitempty" validate:"omitempty,min=1,max=300"`
	ISBN            *string `json:"isbn,omitempty" validate:"omitempty,min=1,max=20"`
	PublicationYear *int    `json:"publicationYear,omitempty" validate:"omitempty,min=1,max=2500"`
	TotalQuantity   *int    `json:"totalQuantity,omitempty" validate:"omitempty,min=0,max=10000"`
	CoverURL        *string `json:"-"`
}

type SearchBooksRequest struct {
	Query string `query:"q" validate:"max=200"`
	Page  int    `query:"page"`
	Limit int    `query:"limit"`
}

type CreateUserRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6,max=128"`
	Role     Role   `json:"role,omitempty" validate:"omitempty,oneof=admin librarian member"`
}

type UpdateUserRequest struct {
	Role Role `json:"role" validate:"required,oneof=admin librarian member"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	AccessToken string `json:"accessToken"`
	ExpiresIn   int64  `json:"expiresIn"`
}
