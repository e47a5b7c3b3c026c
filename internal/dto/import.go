package dto

// ImportResult reports the outcome of a CSV import. Malformed rows are
// skipped, never partially applied, and every skip carries a reason.
type ImportResult struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors,omitempty"`
}
