package invest

import "fmt"

// Warning codes.
const (
	// WarnCPIFallback: no index value for a period, the latest known value was used.
	WarnCPIFallback = "CPI_FALLBACK"
	// WarnCPIMissing: no index value at all, the deposit was not adjusted.
	WarnCPIMissing = "CPI_MISSING"
	// WarnCPIFetchFailed: the remote CPI source failed, the static table was used.
	WarnCPIFetchFailed = "CPI_FETCH_FAILED"
	// WarnMonthlyUnavailable: monthly granularity was requested on an annual index.
	WarnMonthlyUnavailable = "CPI_MONTHLY_UNAVAILABLE"
	// WarnNegativeGain: the investment is worth less than the adjusted deposits.
	WarnNegativeGain = "NEGATIVE_REAL_GAIN"
)

// Warning is a non-fatal condition met during a calculation.
type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (w Warning) String() string { return w.Code + ": " + w.Message }

// Warnings is a list of warnings in the order they were raised.
type Warnings []Warning

// Add appends a warning.
func (ws *Warnings) Add(code, format string, args ...any) {
	*ws = append(*ws, Warning{Code: code, Message: fmt.Sprintf(format, args...)})
}

// Has reports whether a warning with that code was raised.
func (ws Warnings) Has(code string) bool {
	for _, w := range ws {
		if w.Code == code {
			return true
		}
	}
	return false
}
