package repository

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/Astemirdum/library-lending/library/internal/model"
)

const userReturning = "returning id, email, password_hash, role, created_at, updated_at"

func (r *repository) CreateUser(ctx context.Context, email, passwordHash string, role model.Role) (model.User, error) {
	query, args, err := qb.Insert(usersTableName).
		Columns("id", "email", "password_hash", "role").
		Values(uuid.New(), email, passwordHash, sq.Expr("?::user_role", string(role))).
		Suffix(userReturning).
		ToSql()
	if err != nil {
		return model.User{}, err
	}
	var user model.User
	if err := r.db.GetContext(ctx, &user, query, args...); err != nil {
		return model.User{}, mapPgError(err)
	}
	return user, nil
}

func (r *repository) GetUser(ctx context.Context, id uuid.UUID) (model.User, error) {
	return getUser(ctx, r.db, sq.Eq{"id": id})
}

func (r *repository) GetUserByEmail(ctx context.Context, email string) (model.User, error) {
	return getUser(ctx, r.db, sq.Eq{"email": email})
}

func (r *repository) ListUsers(ctx context.Context) ([]model.User, error) {
	query, args, err := qb.Select("id", "email", "password_hash", "role", "created_at", "updated_at").
		From(usersTableName).
		OrderBy("created_at desc").
		ToSql()
	if err != nil {
		return nil, err
	}
	users := make([]model.User, 0)
	if err := r.db.SelectContext(ctx, &users, query, args...); err != nil {
		return nil, errors.Wrap(err, "ListUsers")
	}
	return users, nil
}

func (r *repository) UpdateUserRole(ctx context.Context, id uuid.UUID, role model.Role) (model.User, error) {
	query, args, err := qb.Update(usersTableName).
		Set("role", sq.Expr("?::user_role", string(role))).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id}).
		Suffix(userReturning).
		ToSql()
	if err != nil {
		return model.User{}, err
	}
	var user model.User
	if err := r.db.GetContext(ctx, &user, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, ErrNotFound
		}
		return model.User{}, errors.Wrap(err, "UpdateUserRole")
	}
	return user, nil
}
