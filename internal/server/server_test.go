package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"austender/internal/config"
	"austender/internal/db"
	"austender/internal/models"
)

// memoryStore aggregates an in-memory contracts table the same way the SQL
// statements do.
type memoryStore struct {
	rows    []models.ContractRecord
	err     error
	pingErr error
}

func (m *memoryStore) DepartmentTotals(context.Context) ([]models.DepartmentTotal, error) {
	if m.err != nil {
		return nil, m.err
	}
	sums := map[string]models.Amount{}
	for _, r := range m.rows {
		sums[r.Agency] = sums[r.Agency].Add(r.Value)
	}
	totals := []models.DepartmentTotal{}
	for name, total := range sums {
		totals = append(totals, models.DepartmentTotal{Name: name, TotalSpend: total})
	}
	sort.Slice(totals, func(i, j int) bool {
		return totals[i].TotalSpend.GreaterThan(totals[j].TotalSpend.Decimal)
	})
	return totals, nil
}

func (m *memoryStore) TopCategories(_ context.Context, department *string) ([]models.CategorySpend, error) {
	if m.err != nil {
		return nil, m.err
	}
	sums := map[string]models.Amount{}
	for _, r := range m.rows {
		if department != nil && r.Agency == *department {
			sums[r.Category] = sums[r.Category].Add(r.Value)
		}
	}
	categories := []models.CategorySpend{}
	for name, total := range sums {
		categories = append(categories, models.CategorySpend{Category: name, Total: total})
	}
	sort.Slice(categories, func(i, j int) bool {
		return categories[i].Total.GreaterThan(categories[j].Total.Decimal)
	})
	if len(categories) > models.TopCategoryLimit {
		categories = categories[:models.TopCategoryLimit]
	}
	return categories, nil
}

func (m *memoryStore) Ping(context.Context) error { return m.pingErr }

func exampleRows() []models.ContractRecord {
	return []models.ContractRecord{
		{Agency: "AgencyA", Category: "Cat1", Value: models.MustAmount("100")},
		{Agency: "AgencyA", Category: "Cat2", Value: models.MustAmount("50")},
		{Agency: "AgencyB", Category: "Cat1", Value: models.MustAmount("30")},
	}
}

func newTestServer(t *testing.T, store Store) *Server {
	t.Helper()
	s, err := New(&config.Config{Env: "test", SiteTitle: "Contract Spending"})
	require.NoError(t, err)
	s.RegisterRoutes(store)
	return s
}

func get(t *testing.T, s *Server, target string) (*http.Response, string) {
	t.Helper()
	resp, err := s.App.Test(httptest.NewRequest(http.MethodGet, target, nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestDepartmentsEndpoint(t *testing.T) {
	s := newTestServer(t, &memoryStore{rows: exampleRows()})

	resp, body := get(t, s, "/departments")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "application/json")
	assert.JSONEq(t, `[{"name":"AgencyA","total_spend":150},{"name":"AgencyB","total_spend":30}]`, body)
}

func TestDataEndpoint(t *testing.T) {
	s := newTestServer(t, &memoryStore{rows: exampleRows()})

	tests := []struct {
		name     string
		target   string
		expected string
	}{
		{"known agency", "/data?department=AgencyA", `[{"category":"Cat1","total":100},{"category":"Cat2","total":50}]`},
		{"unknown agency", "/data?department=NonexistentAgency", `[]`},
		{"missing parameter", "/data", `[]`},
		{"case sensitive", "/data?department=agencya", `[]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := get(t, s, tt.target)
			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.JSONEq(t, tt.expected, body)
		})
	}
}

func TestDataEndpoint_AbsentVersusEmptyDepartment(t *testing.T) {
	rows := append(exampleRows(),
		models.ContractRecord{Agency: "", Category: "Unattributed", Value: models.MustAmount("12.34")},
	)
	s := newTestServer(t, &memoryStore{rows: rows})

	resp, body := get(t, s, "/data")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[]`, body)

	resp, body = get(t, s, "/data?department=")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[{"category":"Unattributed","total":12.34}]`, body)
}

func TestDataEndpoint_AtMostFiveDescending(t *testing.T) {
	var rows []models.ContractRecord
	for i := 1; i <= 8; i++ {
		rows = append(rows, models.ContractRecord{
			Agency:   "Department of Defence",
			Category: fmt.Sprintf("Category %d", i),
			Value:    models.MustAmount(fmt.Sprintf("%d.75", i*1000)),
		})
	}
	s := newTestServer(t, &memoryStore{rows: rows})

	_, body := get(t, s, "/data?department=Department%20of%20Defence")

	var got []models.CategorySpend
	require.NoError(t, json.Unmarshal([]byte(body), &got))
	require.Len(t, got, models.TopCategoryLimit)
	assert.Equal(t, "Category 8", got[0].Category)
	for i := 1; i < len(got); i++ {
		assert.False(t, got[i].Total.GreaterThan(got[i-1].Total.Decimal), "not descending at %d", i)
	}
}

func TestDepartmentsEndpoint_NoDuplicates(t *testing.T) {
	rows := append(exampleRows(),
		models.ContractRecord{Agency: "AgencyB", Category: "Cat3", Value: models.MustAmount("500")},
		models.ContractRecord{Agency: "AgencyC", Category: "Cat1", Value: models.MustAmount("1")},
	)
	s := newTestServer(t, &memoryStore{rows: rows})

	_, body := get(t, s, "/departments")

	var got []models.DepartmentTotal
	require.NoError(t, json.Unmarshal([]byte(body), &got))
	require.Len(t, got, 3)
	seen := map[string]bool{}
	for _, d := range got {
		assert.False(t, seen[d.Name], "duplicate agency %q", d.Name)
		seen[d.Name] = true
	}
	assert.Equal(t, "AgencyB", got[0].Name)
	assert.Equal(t, "530", got[0].TotalSpend.String())
}

func TestEndpoints_Idempotent(t *testing.T) {
	s := newTestServer(t, &memoryStore{rows: exampleRows()})

	for _, target := range []string{"/departments", "/data?department=AgencyA"} {
		_, first := get(t, s, target)
		_, second := get(t, s, target)
		assert.Equal(t, first, second, target)
	}
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "data store unavailable",
			err:            fmt.Errorf("%w: dial tcp: connection refused", db.ErrUnavailable),
			expectedStatus: http.StatusServiceUnavailable,
			expectedBody:   `{"error":"data store unavailable"}`,
		},
		{
			name:           "query failure",
			err:            fmt.Errorf("%w: relation \"contracts\" does not exist", db.ErrQuery),
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"internal server error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, &memoryStore{err: tt.err})

			for _, target := range []string{"/departments", "/data?department=AgencyA"} {
				resp, body := get(t, s, target)
				assert.Equal(t, tt.expectedStatus, resp.StatusCode, target)
				assert.JSONEq(t, tt.expectedBody, body, target)
			}
		})
	}
}

func TestUnknownRoute(t *testing.T) {
	s := newTestServer(t, &memoryStore{})

	resp, body := get(t, s, "/nope")

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, body, `"error"`)
}

func TestIndexPage(t *testing.T) {
	s := newTestServer(t, &memoryStore{})

	resp, body := get(t, s, "/")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	assert.True(t, strings.Contains(body, "<title>Contract Spending</title>"))
	assert.Contains(t, body, "/departments")
}

func TestReadiness(t *testing.T) {
	s := newTestServer(t, &memoryStore{pingErr: fmt.Errorf("down")})

	resp, _ := get(t, s, "/readyz")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}
