package models

// ContractRecord is one row of the contracts table. The table is owned
// outside this service and only ever read.
type ContractRecord struct {
	Agency   string
	Category string
	Value    Amount
}

// DepartmentTotal is the summed contract value for one agency.
type DepartmentTotal struct {
	Name       string `json:"name"`
	TotalSpend Amount `json:"total_spend"`
}

// CategorySpend is the summed contract value for one category within an agency.
type CategorySpend struct {
	Category string `json:"category"`
	Total    Amount `json:"total"`
}

// TopCategoryLimit caps how many categories are returned per agency.
const TopCategoryLimit = 5

// DefaultTreemapAgency is the agency charted when none is given.
const DefaultTreemapAgency = "Department of Defence"
