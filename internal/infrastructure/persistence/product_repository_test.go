package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/salonops/backend/internal/domain/catalog"
	"github.com/salonops/backend/internal/domain/shared"
	"github.com/salonops/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	return db, mock
}

func mockProduct() *catalog.Product {
	now := time.Now()
	return &catalog.Product{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
			Version:    2,
		},
		Code:      "PRD-001",
		Name:      "Shampoo",
		UnitPrice: decimal.NewFromInt(100000),
		Quantity:  8,
		Reserved:  2,
		Status:    catalog.ItemableStatusActive,
	}
}

func TestGormProductRepository_SaveWithLock(t *testing.T) {
	ctx := context.Background()

	t.Run("matching version updates the row", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewGormProductRepository(db)
		product := mockProduct()

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "products" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.SaveWithLock(ctx, product)

		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("stale version is an optimistic lock failure", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewGormProductRepository(db)
		product := mockProduct()

		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "products" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		err := repo.SaveWithLock(ctx, product)

		assert.ErrorIs(t, err, shared.ErrOptimisticLock)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormProductRepository_FindByIDForUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("locks the row", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewGormProductRepository(db)
		id := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "version", "code", "name", "unit_price", "quantity", "reserved", "status"}).
			AddRow(id.String(), 1, "PRD-001", "Shampoo", "100000", 8, 2, "ACTIVE")
		mock.ExpectQuery(`SELECT .+ FROM "products" .+FOR UPDATE`).
			WillReturnRows(rows)

		product, err := repo.FindByIDForUpdate(ctx, id)

		require.NoError(t, err)
		assert.Equal(t, id, product.ID)
		assert.Equal(t, 8, product.Quantity)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing row maps to not found", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewGormProductRepository(db)

		mock.ExpectQuery(`SELECT .+ FROM "products"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.FindByIDForUpdate(ctx, uuid.New())

		assert.ErrorIs(t, err, shared.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

// Two actors load the same product revision and both try to reserve. The
// version guard must let exactly one reservation through and leave the
// counters accounting for every unit.
func TestGormProductRepository_ConcurrentReservation(t *testing.T) {
	ctx := context.Background()
	db := newScopeDB(t)
	repo := NewGormProductRepository(db)

	product, err := catalog.NewProduct("PRD-001", "Shampoo", valueobject.NewMoneyVNDFromInt(100000), 10)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, product))

	first, err := repo.FindByID(ctx, product.ID)
	require.NoError(t, err)
	second, err := repo.FindByID(ctx, product.ID)
	require.NoError(t, err)
	require.Equal(t, first.Version, second.Version)

	require.NoError(t, first.Reserve(4))
	require.NoError(t, repo.SaveWithLock(ctx, first))

	require.NoError(t, second.Reserve(3))
	err = repo.SaveWithLock(ctx, second)
	assert.ErrorIs(t, err, shared.ErrOptimisticLock)

	// Only the winning reservation is visible; no unit was created or lost
	current, err := repo.FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 6, current.Quantity)
	assert.Equal(t, 4, current.Reserved)
	assert.Equal(t, 10, current.Quantity+current.Reserved)
	assert.Equal(t, first.Version, current.Version)
}

func TestGormProductRepository_FindByID(t *testing.T) {
	ctx := context.Background()
	db, mock := newMockDB(t)
	repo := NewGormProductRepository(db)

	mock.ExpectQuery(`SELECT .+ FROM "products"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.FindByID(ctx, uuid.New())

	assert.ErrorIs(t, err, shared.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
