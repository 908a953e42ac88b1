package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/Astemirdum/library-lending/library/internal/errs"
	"github.com/Astemirdum/library-lending/library/internal/model"
	"github.com/Astemirdum/library-lending/library/internal/repository"
	"github.com/Astemirdum/library-lending/pkg/kafka"
)

const tracerName = "github.com/Astemirdum/library-lending/library/internal/service"

// Lending moves copies between the shelf and borrowers. It keeps no locks of its own:
// every state change is one guarded UPDATE, and each operation runs in one transaction.
type Lending struct {
	store    repository.Lending
	enqueuer kafka.Enqueuer
	log      *zap.Logger
	tracer   trace.Tracer
	now      func() time.Time
}

func NewLending(store repository.Lending, enqueuer kafka.Enqueuer, log *zap.Logger) *Lending {
	if enqueuer == nil {
		enqueuer = kafka.NewEnqueuer(nil)
	}
	return &Lending{
		store:    store,
		enqueuer: enqueuer,
		log:      log.Named("lending"),
		tracer:   otel.Tracer(tracerName),
		now:      time.Now,
	}
}

func (s *Lending) Borrow(ctx context.Context, userID, bookID uuid.UUID) (model.Borrowing, error) {
	ctx, span := s.tracer.Start(ctx, "lending.Borrow", trace.WithAttributes(
		attribute.String("user.id", userID.String()),
		attribute.String("book.id", bookID.String()),
	))
	defer span.End()

	var borrowing model.Borrowing
	err := s.store.RunInTx(ctx, func(tx repository.LendingTx) error {
		book, ok, err := tx.DecrementAvailable(ctx, bookID)
		if err != nil {
			return err
		}
		if !ok {
			return s.diagnoseBorrow(ctx, tx, bookID)
		}

		if _, err := tx.GetUser(ctx, userID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return errs.ErrUserNotFound
			}
			return err
		}

		id, err := tx.InsertBorrowing(ctx, userID, book.ID, s.now())
		if err != nil {
			return err
		}
		borrowing, err = tx.GetBorrowing(ctx, id)
		if errors.Is(err, repository.ErrNotFound) {
			return s.invariant("Borrowing not found after insert", id)
		}
		return err
	})
	if err != nil {
		s.fail(span, err)
		return model.Borrowing{}, err
	}

	s.publish(ctx, model.EventBorrowed, borrowing)
	return borrowing, nil
}

// diagnoseBorrow explains a guard miss. The read may be stale; it only picks the message.
func (s *Lending) diagnoseBorrow(ctx context.Context, tx repository.LendingTx, bookID uuid.UUID) error {
	if _, err := tx.GetBook(ctx, bookID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return errs.ErrBookNotFound
		}
		return err
	}
	return errs.ErrNoCopiesAvailable
}

func (s *Lending) Return(ctx context.Context, userID, borrowingID uuid.UUID) (model.Borrowing, error) {
	ctx, span := s.tracer.Start(ctx, "lending.Return", trace.WithAttributes(
		attribute.String("user.id", userID.String()),
		attribute.String("borrowing.id", borrowingID.String()),
	))
	defer span.End()

	var borrowing model.Borrowing
	err := s.store.RunInTx(ctx, func(tx repository.LendingTx) error {
		updated, ok, err := tx.MarkReturned(ctx, borrowingID, userID, s.now())
		if err != nil {
			return err
		}
		if !ok {
			return s.diagnoseReturn(ctx, tx, borrowingID, userID)
		}

		if err := tx.RestockBook(ctx, updated.BookID); err != nil {
			return err
		}

		borrowing, err = tx.GetBorrowing(ctx, updated.ID)
		if errors.Is(err, repository.ErrNotFound) {
			return s.invariant("Borrowing not found after update", updated.ID)
		}
		return err
	})
	if err != nil {
		s.fail(span, err)
		return model.Borrowing{}, err
	}

	s.publish(ctx, model.EventReturned, borrowing)
	return borrowing, nil
}

func (s *Lending) diagnoseReturn(ctx context.Context, tx repository.LendingTx, borrowingID, userID uuid.UUID) error {
	b, err := tx.GetBorrowing(ctx, borrowingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return errs.ErrBorrowingNotFound
		}
		return err
	}
	switch {
	case !b.Active():
		return errs.ErrAlreadyReturned
	case b.UserID != userID:
		return errs.ErrNotOwner
	}
	// the guard missed an active borrowing of this user: the row changed between the two statements
	s.log.Error("return guard missed without a known cause",
		zap.Stringer("borrowing_id", borrowingID),
		zap.Stringer("user_id", userID),
	)
	return errs.ErrUnableToReturn
}

func (s *Lending) invariant(msg string, id uuid.UUID) error {
	s.log.DPanic("invariant violation", zap.String("reason", msg), zap.Stringer("borrowing_id", id))
	return fmt.Errorf("%w: %s", errs.ErrInvariant, msg)
}

func (s *Lending) fail(span trace.Span, err error) {
	var bErr *errs.Error
	if errors.As(err, &bErr) {
		span.SetAttributes(attribute.String("lending.outcome", bErr.Kind.String()))
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// publish runs after commit. A lost event only delays report cache invalidation, so errors are logged.
func (s *Lending) publish(ctx context.Context, typ model.EventType, b model.Borrowing) {
	ev := model.BorrowingEvent{
		Type:        typ,
		BorrowingID: b.ID,
		BookID:      b.BookID,
		UserID:      b.UserID,
		At:          s.now().UTC(),
	}
	if err := s.enqueuer.Enqueue(kafka.BorrowingTopic, b.BookID.String(), ev); err != nil {
		s.log.Warn("publish borrowing event",
			zap.String("type", string(typ)),
			zap.Stringer("borrowing_id", b.ID),
			zap.Error(err),
		)
	}
	trace.SpanFromContext(ctx).AddEvent("borrowing." + string(typ))
}
