package repository_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/toyfront/storefront-gateway/models"
	"github.com/toyfront/storefront-gateway/repository"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	assert.NoError(t, err)
	return gormDB, mock
}

func TestAddressSave_UpsertsOnUserID(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormAddressRepository(gormDB)

	address := &models.SavedAddress{
		ID:         uuid.New(),
		UserID:     "user-1",
		FirstName:  "Ada",
		LastName:   "Lovelace",
		Street:     "12 Analytical Way",
		City:       "London",
		PostalCode: "N1 9GU",
		Country:    "GB",
	}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "saved_addresses"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(address.ID))
	mock.ExpectCommit()

	err := repo.Save(context.Background(), address)
	assert.NoError(t, err)
}

func TestAddressFindByUserID_Success(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormAddressRepository(gormDB)

	id := uuid.New()
	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "user_id", "first_name", "last_name", "email", "phone", "street", "city", "state", "postal_code", "country", "created_at", "updated_at"}).
		AddRow(id, "user-1", "Ada", "Lovelace", "ada@example.com", "", "12 Analytical Way", "London", "", "N1 9GU", "GB", now, now)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "saved_addresses"`)).
		WithArgs("user-1", 1).
		WillReturnRows(rows)

	address, err := repo.FindByUserID(context.Background(), "user-1")
	assert.NoError(t, err)
	assert.Equal(t, "London", address.City)
	assert.Equal(t, "GB", address.Country)
}

func TestAddressFindByUserID_NotFound(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormAddressRepository(gormDB)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "saved_addresses"`)).
		WithArgs("ghost", 1).
		WillReturnRows(sqlmock.NewRows([]string{}))

	address, err := repo.FindByUserID(context.Background(), "ghost")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.Nil(t, address)
}

func TestAddressDelete_Success(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormAddressRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "saved_addresses"`)).
		WithArgs("user-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Delete(context.Background(), "user-1")
	assert.NoError(t, err)
}
