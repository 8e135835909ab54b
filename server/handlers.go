package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/etnz/invest"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/goccy/go-json"
)

// maxBody bounds request bodies.
const maxBody = 1 << 20

// ErrorResponse is the body of every error.
type ErrorResponse struct {
	Error     string            `json:"error"`
	Details   string            `json:"details,omitempty"`
	Fields    map[string]string `json:"fields,omitempty"`
	RequestID string            `json:"request_id,omitempty"`
}

// ProjectionResponse is the body of a single projection.
type ProjectionResponse struct {
	Years  int           `json:"years"`
	Series invest.Series `json:"series"`
	Final  invest.Money  `json:"final"`
}

// IndexResponse is the body of the CPI index.
type IndexResponse struct {
	Name     string              `json:"name"`
	Range    invest.MonthRange   `json:"range"`
	Entries  []invest.IndexEntry `json:"entries"`
	Warnings invest.Warnings     `json:"warnings,omitempty"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) snapshot(w http.ResponseWriter, r *http.Request) {
	var raw invest.RawInput
	if !decode(w, r, &raw) {
		return
	}
	_, snap, err := s.calc.Analyze(r.Context(), raw)
	if err != nil {
		writeCalcError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, invest.NewReport(snap, nil))
}

func (s *Server) compare(w http.ResponseWriter, r *http.Request) {
	var raw invest.RawInput
	if !decode(w, r, &raw) {
		return
	}
	snap, res, err := s.calc.Compare(r.Context(), raw)
	if err != nil {
		writeCalcError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, invest.NewReport(snap, &res))
}

func (s *Server) project(w http.ResponseWriter, r *http.Request) {
	var raw invest.RawProjection
	if !decode(w, r, &raw) {
		return
	}
	if raw.Currency == "" {
		raw.Currency = s.calc.Currency
	}
	start, inv, years, err := invest.ParseProjection(raw)
	if err != nil {
		writeCalcError(w, r, err)
		return
	}
	series, err := inv.Project(start, years)
	if err != nil {
		writeCalcError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ProjectionResponse{Years: years, Series: series, Final: series.Final()})
}

// cpi serves the index used for a month range, given by the from and to
// query parameters. It defaults to the last ten years.
func (s *Server) cpi(w http.ResponseWriter, r *http.Request) {
	to := invest.PeriodOf(time.Now())
	if s.calc.Now != nil {
		to = invest.PeriodOf(s.calc.Now())
	}
	from := invest.Y(to.Year - 10)
	var errs []string
	q := r.URL.Query()
	if v := q.Get("from"); v != "" {
		p, err := invest.ParsePeriod(v)
		if err != nil {
			errs = append(errs, fmt.Sprintf("from: %v", err))
		}
		from = p
	}
	if v := q.Get("to"); v != "" {
		p, err := invest.ParsePeriod(v)
		if err != nil {
			errs = append(errs, fmt.Sprintf("to: %v", err))
		}
		to = p
	}
	if len(errs) > 0 {
		writeError(w, http.StatusBadRequest, "invalid query", errors.New(errs[0]))
		return
	}
	rng := invest.NewMonthRange(from, to)
	x, ws := s.calc.Index(r.Context(), rng)
	writeJSON(w, http.StatusOK, IndexResponse{Name: x.Name(), Range: rng, Entries: x.Entries(), Warnings: ws})
}

// decode reads the JSON body into v, or writes a 400.
func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBody))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return false
	}
	if err := json.Unmarshal(body, v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return false
	}
	return true
}

// writeCalcError maps a calculation error to its status: 400 with the field
// errors for invalid fields, 422 for inputs that cannot be computed and 500
// otherwise.
func writeCalcError(w http.ResponseWriter, r *http.Request, err error) {
	resp := ErrorResponse{RequestID: middleware.GetReqID(r.Context())}
	var verrs invest.ValidationErrors
	status := http.StatusInternalServerError
	switch {
	case errors.As(err, &verrs):
		status = http.StatusBadRequest
		resp.Error = "invalid input"
		resp.Fields = verrs.Fields()
	case errors.Is(err, invest.ErrInvalidInput):
		status = http.StatusUnprocessableEntity
		resp.Error = "cannot compute"
		resp.Details = err.Error()
	default:
		resp.Error = "calculation failed"
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
