package persistence_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/kylycht/coinboard/model"
	"github.com/kylycht/coinboard/storage/persistence"
)

func TestPersistence_Load(t *testing.T) {
	asserts := require.New(t)

	db, m, err := sqlmock.New()
	asserts.NoError(err)
	defer db.Close()

	m.ExpectQuery(`SELECT name, symbol, currency_type FROM currency WHERE is_available=true`).
		WillReturnRows(sqlmock.NewRows([]string{"name", "symbol", "currency_type"}).
			AddRow("Bitcoin", "BTC", "CRYPTO").
			AddRow("Euro", "EUR", "FIAT").
			AddRow("Indian Rupee", "INR", "FIAT"))

	fiats, cryptos, err := persistence.New(db).Load(context.Background())
	asserts.NoError(err)
	asserts.Len(fiats, 2)
	asserts.Len(cryptos, 1)
	asserts.Equal("BTC", cryptos[0].Symbol)
	asserts.Equal(model.Fiat, fiats[0].CurrencyType)
	asserts.NoError(m.ExpectationsWereMet())
}

func TestPersistence_LoadError(t *testing.T) {
	asserts := require.New(t)

	db, m, err := sqlmock.New()
	asserts.NoError(err)
	defer db.Close()

	m.ExpectQuery(`SELECT name, symbol, currency_type`).WillReturnError(context.DeadlineExceeded)

	_, _, err = persistence.New(db).Load(context.Background())
	asserts.ErrorIs(err, context.DeadlineExceeded)
}

func TestPersistence_Migrate(t *testing.T) {
	asserts := require.New(t)

	db, m, err := sqlmock.New()
	asserts.NoError(err)
	defer db.Close()

	m.ExpectExec(`CREATE TABLE IF NOT EXISTS currency`).WillReturnResult(sqlmock.NewResult(0, 0))

	asserts.NoError(persistence.New(db).Migrate(context.Background()))
	asserts.NoError(m.ExpectationsWereMet())
}

func TestPersistence_SkipsUnknownTypes(t *testing.T) {
	asserts := require.New(t)

	db, m, err := sqlmock.New()
	asserts.NoError(err)
	defer db.Close()

	m.ExpectQuery(`SELECT name, symbol, currency_type`).
		WillReturnRows(sqlmock.NewRows([]string{"name", "symbol", "currency_type"}).
			AddRow("Gold", "XAU", "COMMODITY").
			AddRow("US Dollar", "USD", "FIAT"))

	fiats, cryptos, err := persistence.New(db).Load(context.Background())
	asserts.NoError(err)
	asserts.Len(fiats, 1)
	asserts.Empty(cryptos)
}
