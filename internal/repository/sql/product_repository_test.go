package sql

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shop-backend/internal/model"
	"shop-backend/internal/repository"
)

func productColumns() []string {
	return []string{"id", "name", "description", "price", "category", "image", "created_at", "updated_at"}
}

func TestProductRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewProductRepository(db)
	ctx := context.Background()

	t.Run("successful creation", func(t *testing.T) {
		product := &model.Product{
			Name:        "Pen",
			Description: "Blue ink",
			Price:       1.5,
			Category:    "stationery",
			Image:       "/uploads/1700000000.png",
		}

		mock.ExpectPrepare("INSERT INTO products").
			ExpectExec().
			WithArgs(sqlmock.AnyArg(), product.Name, product.Description, product.Price,
				product.Category, product.Image, sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(1, 1))

		result, err := repo.Create(ctx, product)
		require.NoError(t, err)
		require.NotNil(t, result)

		createdProduct := result.(*model.Product)
		assert.NotEqual(t, uuid.Nil, createdProduct.ID)
		assert.False(t, createdProduct.CreatedAt.IsZero())

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("wrong resource type", func(t *testing.T) {
		_, err := repo.Create(ctx, &model.User{})
		assert.ErrorIs(t, err, repository.ErrInvalidType)
	})
}

func TestProductRepository_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewProductRepository(db)
	ctx := context.Background()

	t.Run("successful find", func(t *testing.T) {
		id := uuid.New()
		now := time.Now()

		rows := sqlmock.NewRows(productColumns()).
			AddRow(id, "Pen", "Blue ink", 1.5, "stationery", "/uploads/1.png", now, now)

		mock.ExpectPrepare("SELECT \\* FROM products WHERE id = \\$1").
			ExpectQuery().
			WithArgs(id).
			WillReturnRows(rows)

		result, err := repo.FindByID(ctx, id)
		require.NoError(t, err)

		foundProduct := result.(*model.Product)
		assert.Equal(t, id, foundProduct.ID)
		assert.Equal(t, 1.5, foundProduct.Price)
		assert.Equal(t, "/uploads/1.png", foundProduct.Image)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("product not found", func(t *testing.T) {
		id := uuid.New()

		mock.ExpectPrepare("SELECT \\* FROM products WHERE id = \\$1").
			ExpectQuery().
			WithArgs(id).
			WillReturnError(sql.ErrNoRows)

		result, err := repo.FindByID(ctx, id)
		require.Error(t, err)
		assert.Nil(t, result)
		assert.ErrorIs(t, err, repository.ErrNotFound)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestProductRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewProductRepository(db)
	ctx := context.Background()

	t.Run("unbounded list returns the whole catalog newest first", func(t *testing.T) {
		query := repository.NewQuery()

		now := time.Now()
		rows := sqlmock.NewRows(productColumns()).
			AddRow(uuid.New(), "Notebook", "", 4.0, "", "", now, now).
			AddRow(uuid.New(), "Pen", "Blue ink", 1.5, "stationery", "", now.Add(-time.Minute), now)

		mock.ExpectPrepare("SELECT \\* FROM products WHERE 1=1 ORDER BY created_at DESC, id DESC$").
			ExpectQuery().
			WillReturnRows(rows)

		result, err := repo.List(ctx, *query)
		require.NoError(t, err)
		assert.Len(t, result, 2)
		assert.Equal(t, "Notebook", result[0].(*model.Product).Name)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("list with limit and pagination cursor", func(t *testing.T) {
		query := repository.NewQuery()
		query.Limit = 10
		lastCreatedAt := time.Now().Add(-1 * time.Hour)
		lastID := uuid.New()
		query.Paginator = &repository.Paginator{
			LastID:        lastID,
			LastCreatedAt: lastCreatedAt,
		}

		now := time.Now()
		rows := sqlmock.NewRows(productColumns()).
			AddRow(uuid.New(), "Pen", "Blue ink", 1.5, "stationery", "", now, now)

		mock.ExpectPrepare("SELECT \\* FROM products WHERE 1=1 AND \\(created_at, id\\) < \\(\\$1, \\$2\\) ORDER BY created_at DESC, id DESC LIMIT").
			ExpectQuery().
			WithArgs(lastCreatedAt, lastID, 10).
			WillReturnRows(rows)

		result, err := repo.List(ctx, *query)
		require.NoError(t, err)
		assert.Len(t, result, 1)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("list filtered by category", func(t *testing.T) {
		query := repository.NewQuery().With(repository.CategoryField, "stationery")

		now := time.Now()
		rows := sqlmock.NewRows(productColumns()).
			AddRow(uuid.New(), "Pen", "Blue ink", 1.5, "stationery", "", now, now)

		mock.ExpectPrepare("SELECT \\* FROM products WHERE 1=1 AND category = \\$1 ORDER BY created_at DESC, id DESC$").
			ExpectQuery().
			WithArgs("stationery").
			WillReturnRows(rows)

		result, err := repo.List(ctx, *query)
		require.NoError(t, err)
		assert.Len(t, result, 1)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestProductRepository_Update(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewProductRepository(db)
	ctx := context.Background()

	product := &model.Product{
		ID:          uuid.New(),
		Name:        "Pen",
		Description: "Black ink",
		Price:       2.0,
		Category:    "stationery",
		Image:       "/uploads/2.png",
		UpdatedAt:   time.Now(),
	}

	t.Run("successful update", func(t *testing.T) {
		mock.ExpectPrepare("UPDATE products SET").
			ExpectExec().
			WithArgs(product.ID, product.Name, product.Description, product.Price,
				product.Category, product.Image, product.UpdatedAt).
			WillReturnResult(sqlmock.NewResult(0, 1))

		result, err := repo.Update(ctx, product)
		require.NoError(t, err)
		assert.Equal(t, product, result)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("product not found", func(t *testing.T) {
		mock.ExpectPrepare("UPDATE products SET").
			ExpectExec().
			WithArgs(product.ID, product.Name, product.Description, product.Price,
				product.Category, product.Image, product.UpdatedAt).
			WillReturnResult(sqlmock.NewResult(0, 0))

		_, err := repo.Update(ctx, product)
		assert.ErrorIs(t, err, repository.ErrNotFound)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestProductRepository_DeleteByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewProductRepository(db)
	ctx := context.Background()

	t.Run("successful delete", func(t *testing.T) {
		id := uuid.New()

		mock.ExpectPrepare("DELETE FROM products WHERE id").
			ExpectExec().
			WithArgs(id).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.DeleteByID(ctx, id)
		require.NoError(t, err)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("product not found", func(t *testing.T) {
		id := uuid.New()

		mock.ExpectPrepare("DELETE FROM products WHERE id").
			ExpectExec().
			WithArgs(id).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.DeleteByID(ctx, id)
		assert.ErrorIs(t, err, repository.ErrNotFound)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
