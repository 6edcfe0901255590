package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/restaurant/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockInventoryItemRepository creates a GormInventoryItemRepository with a mocked SQL connection
func newMockInventoryItemRepository(t *testing.T) (*GormInventoryItemRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormInventoryItemRepository(gormDB), mock, mockDB
}

func TestGormInventoryItemRepository_FindByID(t *testing.T) {
	t.Run("finds existing item", func(t *testing.T) {
		repo, mock, mockDB := newMockInventoryItemRepository(t)
		defer mockDB.Close()

		itemID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "name", "unit", "vat_percent"}).
			AddRow(itemID, "varza", "kg", decimal.NewFromInt(19))

		mock.ExpectQuery(`SELECT \* FROM "inventory_items" WHERE id = \$1`).
			WithArgs(itemID, 1).
			WillReturnRows(rows)

		item, err := repo.FindByID(context.Background(), itemID)

		assert.NoError(t, err)
		require.NotNil(t, item)
		assert.Equal(t, itemID, item.ID)
		assert.Equal(t, "varza", item.Name)
		assert.Equal(t, "kg", item.Unit)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps missing row to ErrNotFound", func(t *testing.T) {
		repo, mock, mockDB := newMockInventoryItemRepository(t)
		defer mockDB.Close()

		itemID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "inventory_items" WHERE id = \$1`).
			WithArgs(itemID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		item, err := repo.FindByID(context.Background(), itemID)

		assert.Error(t, err)
		assert.Nil(t, item)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormInventoryItemRepository_FindByIDs(t *testing.T) {
	t.Run("empty id list returns without querying", func(t *testing.T) {
		repo, mock, mockDB := newMockInventoryItemRepository(t)
		defer mockDB.Close()

		items, err := repo.FindByIDs(context.Background(), nil)

		assert.NoError(t, err)
		assert.Empty(t, items)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
