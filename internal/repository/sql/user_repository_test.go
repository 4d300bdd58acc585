package sql

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shop-backend/internal/model"
	"shop-backend/internal/repository"
)

func userColumns() []string {
	return []string{"id", "username", "email", "password", "created_at", "updated_at"}
}

func TestUserRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewUserRepository(db)
	ctx := context.Background()

	t.Run("successful creation", func(t *testing.T) {
		user := &model.User{
			Username: "shopper",
			Email:    "a@b.c",
			Password: "$2a$10$hash",
		}

		mock.ExpectPrepare("INSERT INTO users").
			ExpectExec().
			WithArgs(sqlmock.AnyArg(), user.Username, user.Email, user.Password, sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(1, 1))

		result, err := repo.Create(ctx, user)
		require.NoError(t, err)

		createdUser := result.(*model.User)
		assert.NotEqual(t, uuid.Nil, createdUser.ID)
		assert.False(t, createdUser.CreatedAt.IsZero())

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate email", func(t *testing.T) {
		user := &model.User{
			Username: "shopper",
			Email:    "a@b.c",
			Password: "$2a$10$hash",
		}

		mock.ExpectPrepare("INSERT INTO users").
			ExpectExec().
			WithArgs(sqlmock.AnyArg(), user.Username, user.Email, user.Password, sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnError(&pq.Error{Code: pqUniqueViolationErrCode, Detail: "Key (email)=(a@b.c) already exists."})

		_, err := repo.Create(ctx, user)
		require.Error(t, err)

		var uniqueErr *repository.UniqueConstraintError
		assert.ErrorAs(t, err, &uniqueErr)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("wrong resource type", func(t *testing.T) {
		_, err := repo.Create(ctx, &model.Product{})
		assert.ErrorIs(t, err, repository.ErrInvalidType)
	})
}

func TestUserRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewUserRepository(db)
	ctx := context.Background()

	t.Run("filter by email", func(t *testing.T) {
		query := repository.NewQuery().With(repository.EmailField, "a@b.c")
		query.Limit = 1

		now := time.Now()
		rows := sqlmock.NewRows(userColumns()).
			AddRow(uuid.New(), "shopper", "a@b.c", "$2a$10$hash", now, now)

		mock.ExpectPrepare("SELECT \\* FROM users WHERE 1=1 AND email = \\$1 ORDER BY created_at DESC, id DESC LIMIT").
			ExpectQuery().
			WithArgs("a@b.c", 1).
			WillReturnRows(rows)

		result, err := repo.List(ctx, *query)
		require.NoError(t, err)
		require.Len(t, result, 1)
		assert.Equal(t, "a@b.c", result[0].(*model.User).Email)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no match yields empty result", func(t *testing.T) {
		query := repository.NewQuery().With(repository.EmailField, "nobody@b.c")
		query.Limit = 1

		mock.ExpectPrepare("SELECT \\* FROM users WHERE 1=1 AND email = \\$1 ORDER BY created_at DESC, id DESC LIMIT").
			ExpectQuery().
			WithArgs("nobody@b.c", 1).
			WillReturnRows(sqlmock.NewRows(userColumns()))

		result, err := repo.List(ctx, *query)
		require.NoError(t, err)
		assert.Empty(t, result)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewUserRepository(db)
	ctx := context.Background()

	t.Run("successful find", func(t *testing.T) {
		id := uuid.New()
		now := time.Now()

		rows := sqlmock.NewRows(userColumns()).
			AddRow(id, "shopper", "a@b.c", "$2a$10$hash", now, now)

		mock.ExpectPrepare("SELECT \\* FROM users WHERE id = \\$1").
			ExpectQuery().
			WithArgs(id).
			WillReturnRows(rows)

		result, err := repo.FindByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, id, result.(*model.User).ID)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("user not found", func(t *testing.T) {
		id := uuid.New()

		mock.ExpectPrepare("SELECT \\* FROM users WHERE id = \\$1").
			ExpectQuery().
			WithArgs(id).
			WillReturnError(sql.ErrNoRows)

		_, err := repo.FindByID(ctx, id)
		assert.ErrorIs(t, err, repository.ErrNotFound)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_Update(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewUserRepository(db)

	_, err = repo.Update(context.Background(), &model.User{})
	assert.Error(t, err, "user records are immutable")
}

func TestUserRepository_DeleteByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewUserRepository(db)
	ctx := context.Background()

	id := uuid.New()

	mock.ExpectPrepare("DELETE FROM users WHERE id").
		ExpectExec().
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.DeleteByID(ctx, id))
	assert.NoError(t, mock.ExpectationsWereMet())
}
