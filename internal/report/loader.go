// Package report builds the offline category treemap for a single agency.
package report

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/shopspring/decimal"

	"austender/internal/models"
)

const loadContractsQuery = `SELECT agency_name, category_name, value_aud FROM contracts`

// Open opens a database/sql handle using the pgx driver.
func Open(ctx context.Context, connString string) (*sql.DB, error) {
	db, err := sql.Open("pgx", connString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

// LoadContracts reads the whole contracts table. Rows with a NULL agency,
// category or value are skipped.
func LoadContracts(ctx context.Context, db *sql.DB) ([]models.ContractRecord, error) {
	rows, err := db.QueryContext(ctx, loadContractsQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query contracts: %w", err)
	}
	defer rows.Close()

	var records []models.ContractRecord
	for rows.Next() {
		var (
			agency, category sql.NullString
			value            decimal.NullDecimal
		)
		if err := rows.Scan(&agency, &category, &value); err != nil {
			return nil, fmt.Errorf("failed to scan contract: %w", err)
		}
		if !agency.Valid || !category.Valid || !value.Valid {
			continue
		}
		records = append(records, models.ContractRecord{
			Agency:   agency.String,
			Category: category.String,
			Value:    models.Amount{Decimal: value.Decimal},
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read contracts: %w", err)
	}

	return records, nil
}
