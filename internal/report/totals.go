package report

import (
	"sort"

	"austender/internal/models"
)

// CategoryTotals keeps the records for agency, sums them per category and
// returns every category ordered by total, largest first. Equal totals are
// ordered by category name so the chart is stable between runs.
func CategoryTotals(records []models.ContractRecord, agency string) []models.CategorySpend {
	sums := make(map[string]models.Amount)
	for _, r := range records {
		if r.Agency != agency {
			continue
		}
		sums[r.Category] = sums[r.Category].Add(r.Value)
	}

	totals := make([]models.CategorySpend, 0, len(sums))
	for category, total := range sums {
		totals = append(totals, models.CategorySpend{Category: category, Total: total})
	}

	sort.Slice(totals, func(i, j int) bool {
		if c := totals[i].Total.Cmp(totals[j].Total.Decimal); c != 0 {
			return c > 0
		}
		return totals[i].Category < totals[j].Category
	})

	return totals
}

// Sum returns the sum of all category totals.
func Sum(totals []models.CategorySpend) models.Amount {
	var sum models.Amount
	for _, t := range totals {
		sum = sum.Add(t.Total)
	}
	return sum
}
