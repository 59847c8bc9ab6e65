package db

import (
	"context"
	"fmt"

	"austender/internal/models"
)

// NULL names are folded into '' before grouping so they form one group.
const departmentTotalsQuery = `
	SELECT COALESCE(agency_name, '') AS agency, COALESCE(SUM(value_aud), 0)::text AS total_spend
	FROM contracts
	GROUP BY COALESCE(agency_name, '')
	ORDER BY SUM(value_aud) DESC NULLS LAST
`

const topCategoriesQuery = `
	SELECT COALESCE(category_name, '') AS category, COALESCE(SUM(value_aud), 0)::text AS total_spending
	FROM contracts
	WHERE agency_name = $1
	GROUP BY COALESCE(category_name, '')
	ORDER BY SUM(value_aud) DESC NULLS LAST
	LIMIT $2
`

// DepartmentTotals returns total contract value per agency, largest first.
func (d *DB) DepartmentTotals(ctx context.Context) ([]models.DepartmentTotal, error) {
	totals := []models.DepartmentTotal{}

	err := d.withConn(ctx, func(ctx context.Context, conn querier) error {
		rows, err := conn.Query(ctx, departmentTotalsQuery)
		if err != nil {
			return fmt.Errorf("%w: department totals: %w", ErrQuery, err)
		}
		defer rows.Close()

		for rows.Next() {
			var (
				t     models.DepartmentTotal
				total string
			)
			if err := rows.Scan(&t.Name, &total); err != nil {
				return fmt.Errorf("%w: scan department total: %w", ErrQuery, err)
			}
			if t.TotalSpend, err = models.NewAmount(total); err != nil {
				return fmt.Errorf("%w: parse total for %q: %w", ErrQuery, t.Name, err)
			}
			totals = append(totals, t)
		}
		if err := rows.Err(); err != nil {
			return fmt.Errorf("%w: department totals: %w", ErrQuery, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return totals, nil
}

// TopCategories returns the five largest categories by contract value for the
// agency whose name matches department exactly. A nil department is bound as
// NULL and matches nothing; an unknown name yields an empty slice.
func (d *DB) TopCategories(ctx context.Context, department *string) ([]models.CategorySpend, error) {
	categories := []models.CategorySpend{}

	var agency any
	if department != nil {
		agency = *department
	}

	err := d.withConn(ctx, func(ctx context.Context, conn querier) error {
		rows, err := conn.Query(ctx, topCategoriesQuery, agency, models.TopCategoryLimit)
		if err != nil {
			return fmt.Errorf("%w: top categories: %w", ErrQuery, err)
		}
		defer rows.Close()

		for rows.Next() {
			var (
				c     models.CategorySpend
				total string
			)
			if err := rows.Scan(&c.Category, &total); err != nil {
				return fmt.Errorf("%w: scan category spend: %w", ErrQuery, err)
			}
			if c.Total, err = models.NewAmount(total); err != nil {
				return fmt.Errorf("%w: parse total for %q: %w", ErrQuery, c.Category, err)
			}
			categories = append(categories, c)
		}
		if err := rows.Err(); err != nil {
			return fmt.Errorf("%w: top categories: %w", ErrQuery, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return categories, nil
}
