package domain

import "fmt"

// MaxUploadWarnings bounds the row warnings returned from one upload.
const MaxUploadWarnings = 10

// UploadSummary is the result of ingesting one workbook.
type UploadSummary struct {
	Success            bool     `json:"success"`
	Message            string   `json:"message"`
	BaseRatesUpdated   int      `json:"base_rates_updated"`
	BranchRatesUpdated int      `json:"branch_rates_updated"`
	Errors             []string `json:"errors"`
	Layout             string   `json:"layout"`
}

// Warnf records a row warning unless the bound is already reached.
func (s *UploadSummary) Warnf(format string, args ...any) {
	if len(s.Errors) >= MaxUploadWarnings {
		return
	}
	s.Errors = append(s.Errors, fmt.Sprintf(format, args...))
}
