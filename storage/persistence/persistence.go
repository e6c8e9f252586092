// Package persistence is the postgres catalog of currencies
// the converter may offer when the rate source is down.
package persistence

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/kylycht/coinboard/model"
	"github.com/kylycht/coinboard/storage"
)

type Persistence struct {
	dbConn *sql.DB // underlying persistence connection
}

func New(dbConn *sql.DB) *Persistence {
	return &Persistence{
		dbConn: dbConn,
	}
}

var _ storage.Storage = (*Persistence)(nil)

// Migrate creates the currency table when it is missing.
func (p *Persistence) Migrate(ctx context.Context) error {
	migrateQuery := `CREATE TABLE IF NOT EXISTS currency (
				symbol        TEXT PRIMARY KEY,
				name          TEXT NOT NULL,
				currency_type TEXT NOT NULL CHECK (currency_type IN ('FIAT', 'CRYPTO')),
				is_available  BOOLEAN NOT NULL DEFAULT true
			)`

	if _, err := p.dbConn.ExecContext(ctx, migrateQuery); err != nil {
		return fmt.Errorf("unable to migrate currency table: %w", err)
	}

	return nil
}

// Load implements storage.Storage.
func (p *Persistence) Load(ctx context.Context) ([]model.Currency, []model.Currency, error) {
	loadQuery := `SELECT name, symbol, currency_type
				 FROM currency
				 WHERE is_available=true
				 ORDER BY symbol`

	var fiats, cryptos []model.Currency

	rows, err := p.dbConn.QueryContext(ctx, loadQuery)
	if err != nil {
		return nil, nil, fmt.Errorf("unable to load currencies: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		c := model.Currency{}

		if err := rows.Scan(&c.Name, &c.Symbol, &c.CurrencyType); err != nil {
			return nil, nil, err
		}

		switch c.CurrencyType {
		case model.Fiat:
			fiats = append(fiats, c)
		case model.Crypto:
			cryptos = append(cryptos, c)
		default:
			log.Warn().Str("symbol", c.Symbol).Str("type", string(c.CurrencyType)).Msg("skipping currency of unknown type")
		}
	}

	return fiats, cryptos, rows.Err()
}
