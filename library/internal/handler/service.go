package handler

import (
	"context"

	"github.com/google/uuid"

	"github.com/Astemirdum/library-lending/library/internal/model"
	"github.com/Astemirdum/library-lending/library/internal/service"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

type LibraryService interface {
	Borrow(ctx context.Context, userID, bookID uuid.UUID) (model.Borrowing, error)
	Return(ctx context.Context, userID, borrowingID uuid.UUID) (model.Borrowing, error)

	HistoryForBook(ctx context.Context, bookID uuid.UUID, page, limit int) (model.BorrowingList, error)
	MostBorrowed(ctx context.Context, limit int) ([]model.MostBorrowed, error)
	ActiveBorrowingsFor(ctx context.Context, userID, bookID uuid.UUID) ([]model.Borrowing, error)

	CreateBook(ctx context.Context, req model.CreateBookRequest) (model.Book, error)
	GetBook(ctx context.Context, id uuid.UUID) (model.Book, error)
	ListBooks(ctx context.Context, req model.SearchBooksRequest) (model.BookList, error)
	UpdateBook(ctx context.Context, id uuid.UUID, req model.UpdateBookRequest) (model.Book, error)

	CreateUser(ctx context.Context, req model.CreateUserRequest) (model.User, error)
	Register(ctx context.Context, req model.CreateUserRequest) (model.User, error)
	Login(ctx context.Context, req model.LoginRequest) (model.LoginResponse, error)
	FindUserByID(ctx context.Context, id uuid.UUID) (model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	UpdateUserRole(ctx context.Context, id uuid.UUID, req model.UpdateUserRequest) (model.User, error)
}

var _ LibraryService = (*service.Service)(nil)
