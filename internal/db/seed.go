package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"austender/internal/models"
)

// DevContracts is a small sample of contract rows for local development.
var DevContracts = []models.ContractRecord{
	{Agency: "Department of Defence", Category: "Aircraft", Value: models.MustAmount("125000000.00")},
	{Agency: "Department of Defence", Category: "Ammunition", Value: models.MustAmount("48250000.50")},
	{Agency: "Department of Defence", Category: "Management and Business Professionals", Value: models.MustAmount("17340210.75")},
	{Agency: "Department of Defence", Category: "Building and Construction", Value: models.MustAmount("66500000.00")},
	{Agency: "Department of Defence", Category: "Computer Services", Value: models.MustAmount("9800450.20")},
	{Agency: "Department of Defence", Category: "Medical Equipment", Value: models.MustAmount("2250000.00")},
	{Agency: "Department of Health", Category: "Medical Equipment", Value: models.MustAmount("31200000.00")},
	{Agency: "Department of Health", Category: "Computer Services", Value: models.MustAmount("5400000.00")},
	{Agency: "Services Australia", Category: "Computer Services", Value: models.MustAmount("72450000.10")},
	{Agency: "Services Australia", Category: "Management and Business Professionals", Value: models.MustAmount("11000000.00")},
	{Agency: "Australian Taxation Office", Category: "Computer Services", Value: models.MustAmount("19800000.00")},
}

// InsertContracts writes contract rows in a single batch.
func (d *DB) InsertContracts(ctx context.Context, records []models.ContractRecord) error {
	batch := &pgx.Batch{}
	for _, r := range records {
		batch.Queue(`
			INSERT INTO contracts (agency_name, category_name, value_aud)
			VALUES ($1, $2, $3)
		`, r.Agency, r.Category, r.Value.String())
	}

	results := d.Pool.SendBatch(ctx, batch)
	defer results.Close()

	for _, r := range records {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to insert contract %s/%s: %w", r.Agency, r.Category, err)
		}
	}

	return nil
}

// SeedDevContracts inserts DevContracts when the contracts table is empty.
// Returns the number of rows inserted.
func (d *DB) SeedDevContracts(ctx context.Context) (int, error) {
	var count int64
	if err := d.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM contracts`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count contracts: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	if err := d.InsertContracts(ctx, DevContracts); err != nil {
		return 0, err
	}
	return len(DevContracts), nil
}
