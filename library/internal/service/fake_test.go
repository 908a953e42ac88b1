package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Astemirdum/library-lending/library/internal/model"
	"github.com/Astemirdum/library-lending/library/internal/repository"
)

// memStore serializes transactions under one mutex and rolls back by restoring a snapshot.
type memStore struct {
	mu         sync.Mutex
	books      map[uuid.UUID]model.Book
	users      map[uuid.UUID]model.User
	borrowings map[uuid.UUID]model.Borrowing

	missReturnGuard bool
	hideBorrowings  bool
}

func newMemStore() *memStore {
	return &memStore{
		books:      make(map[uuid.UUID]model.Book),
		users:      make(map[uuid.UUID]model.User),
		borrowings: make(map[uuid.UUID]model.Borrowing),
	}
}

func (s *memStore) addBook(total, available int) model.Book {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := model.Book{
		ID:                uuid.New(),
		Title:             "Dune",
		Author:            "Frank Herbert",
		ISBN:              uuid.NewString()[:13],
		PublicationYear:   1965,
		TotalQuantity:     total,
		AvailableQuantity: available,
	}
	s.books[b.ID] = b
	return b
}

func (s *memStore) addUser() model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := model.User{ID: uuid.New(), Email: uuid.NewString() + "@example.com", Role: model.RoleMember}
	s.users[u.ID] = u
	return u
}

func (s *memStore) book(id uuid.UUID) model.Book {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.books[id]
}

func (s *memStore) setAvailable(id uuid.UUID, available int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := s.books[id]
	b.AvailableQuantity = available
	s.books[id] = b
}

func (s *memStore) activeFor(bookID uuid.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, b := range s.borrowings {
		if b.BookID == bookID && b.Active() {
			n++
		}
	}
	return n
}

func (s *memStore) RunInTx(_ context.Context, fn func(tx repository.LendingTx) error) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	books := make(map[uuid.UUID]model.Book, len(s.books))
	for k, v := range s.books {
		books[k] = v
	}
	borrowings := make(map[uuid.UUID]model.Borrowing, len(s.borrowings))
	for k, v := range s.borrowings {
		borrowings[k] = v
	}
	defer func() {
		if err != nil {
			s.books = books
			s.borrowings = borrowings
		}
	}()
	return fn(memTx{s})
}

type memTx struct {
	s *memStore
}

func (t memTx) DecrementAvailable(_ context.Context, bookID uuid.UUID) (model.Book, bool, error) {
	b, ok := t.s.books[bookID]
	if !ok || b.AvailableQuantity <= 0 {
		return model.Book{}, false, nil
	}
	b.AvailableQuantity--
	t.s.books[bookID] = b
	return b, true, nil
}

func (t memTx) RestockBook(_ context.Context, bookID uuid.UUID) error {
	b, ok := t.s.books[bookID]
	if !ok {
		return nil
	}
	if b.AvailableQuantity+1 <= b.TotalQuantity {
		b.AvailableQuantity++
	}
	t.s.books[bookID] = b
	return nil
}

func (t memTx) InsertBorrowing(_ context.Context, userID, bookID uuid.UUID, borrowedAt time.Time) (uuid.UUID, error) {
	id := uuid.New()
	t.s.borrowings[id] = model.Borrowing{ID: id, UserID: userID, BookID: bookID, BorrowedAt: borrowedAt}
	return id, nil
}

func (t memTx) MarkReturned(_ context.Context, borrowingID, userID uuid.UUID, returnedAt time.Time) (model.Borrowing, bool, error) {
	b, ok := t.s.borrowings[borrowingID]
	if t.s.missReturnGuard || !ok || !b.Active() || b.UserID != userID {
		return model.Borrowing{}, false, nil
	}
	at := returnedAt
	b.ReturnedAt = &at
	t.s.borrowings[borrowingID] = b
	return b, true, nil
}

func (t memTx) GetBook(_ context.Context, id uuid.UUID) (model.Book, error) {
	b, ok := t.s.books[id]
	if !ok {
		return model.Book{}, repository.ErrNotFound
	}
	return b, nil
}

func (t memTx) GetUser(_ context.Context, id uuid.UUID) (model.User, error) {
	u, ok := t.s.users[id]
	if !ok {
		return model.User{}, repository.ErrNotFound
	}
	return u, nil
}

func (t memTx) GetBorrowing(_ context.Context, id uuid.UUID) (model.Borrowing, error) {
	b, ok := t.s.borrowings[id]
	if !ok || t.s.hideBorrowings {
		return model.Borrowing{}, repository.ErrNotFound
	}
	u := t.s.users[b.UserID]
	b.User = model.UserRef{ID: u.ID, Email: u.Email, Role: u.Role}
	b.Book = t.s.books[b.BookID]
	return b, nil
}

type recordingEnqueuer struct {
	mu     sync.Mutex
	events []model.BorrowingEvent
	err    error
}

func (e *recordingEnqueuer) Enqueue(_, _ string, v any) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.err != nil {
		return e.err
	}
	e.events = append(e.events, v.(model.BorrowingEvent))
	return nil
}

func (e *recordingEnqueuer) recorded() []model.BorrowingEvent {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]model.BorrowingEvent(nil), e.events...)
}

type memCache struct {
	mu   sync.Mutex
	data map[string]string
}

func newMemCache() *memCache {
	return &memCache{data: make(map[string]string)}
}

func (c *memCache) Get(_ context.Context, key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	return v, ok
}

func (c *memCache) Set(_ context.Context, key, value string, _ time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
}

func (c *memCache) InvalidatePrefix(_ context.Context, prefixes ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.data {
		for _, p := range prefixes {
			if len(k) >= len(p) && k[:len(p)] == p {
				delete(c.data, k)
			}
		}
	}
}
