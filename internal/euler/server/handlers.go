package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	mrwerror "github.com/msto63/mRW/foundation/core/error"
	"github.com/msto63/mRW/foundation/core/errors"
	"github.com/msto63/mRW/foundation/utils/timex"
	"github.com/msto63/mRW/internal/euler/service"
	"github.com/msto63/mRW/internal/euler/store"
)

// History paging bounds
const (
	DefaultHistoryLimit = 50
	MaxHistoryLimit     = 500
)

// CalculateRequest is the body of POST /api/v1/calculators/{name}. Field
// values may be strings, numbers or booleans. Arrays are flattened into
// indexed keys, so {"course": [{"credits": 3}]} becomes course.0.credits.
type CalculateRequest struct {
	Fields map[string]interface{} `json:"fields"`
}

// CalculatorsResponse lists the registered calculators
type CalculatorsResponse struct {
	Calculators []*service.Calculator `json:"calculators"`
	Total       int                   `json:"total"`
}

// HistoryResponse lists journaled calculations
type HistoryResponse struct {
	Entries []*store.Entry `json:"entries"`
	Total   int            `json:"total"`
	Limit   int            `json:"limit"`
	Offset  int            `json:"offset"`
}

// ErrorResponse is the JSON error body
type ErrorResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Field     string `json:"field,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())
	writeJSON(w, report.HTTPStatus(), report)
}

func (s *Server) handleListCalculators(w http.ResponseWriter, r *http.Request) {
	list := s.service.Calculators()
	if category := r.URL.Query().Get("category"); category != "" {
		filtered := list[:0:0]
		for _, c := range list {
			if strings.EqualFold(c.Category, category) {
				filtered = append(filtered, c)
			}
		}
		list = filtered
	}
	writeJSON(w, http.StatusOK, CalculatorsResponse{Calculators: list, Total: len(list)})
}

func (s *Server) handleDescribeCalculator(w http.ResponseWriter, r *http.Request) {
	calc, err := s.service.Describe(mux.Vars(r)["name"])
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, calc)
}

func (s *Server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	r.Body = http.MaxBytesReader(w, r.Body, s.config.MaxRequestSize)
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()

	var req CalculateRequest
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, mrwerror.CodeInvalidFormat.String(), "invalid request body: "+err.Error())
		return
	}

	fields, err := FlattenFields(req.Fields)
	if err != nil {
		writeError(w, http.StatusBadRequest, mrwerror.CodeInvalidFormat.String(), err.Error())
		return
	}

	out, err := s.service.Calculate(r.Context(), name, fields)
	s.observe(name, out)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := store.Filter{
		Calculator: q.Get("calculator"),
		Status:     store.Status(q.Get("status")),
		Limit:      DefaultHistoryLimit,
	}

	var err error
	if v := q.Get("limit"); v != "" {
		if filter.Limit, err = strconv.Atoi(v); err != nil || filter.Limit <= 0 {
			writeError(w, http.StatusBadRequest, mrwerror.CodeInvalidInput.String(), "limit must be a positive integer")
			return
		}
		if filter.Limit > MaxHistoryLimit {
			filter.Limit = MaxHistoryLimit
		}
	}
	if v := q.Get("offset"); v != "" {
		if filter.Offset, err = strconv.Atoi(v); err != nil || filter.Offset < 0 {
			writeError(w, http.StatusBadRequest, mrwerror.CodeInvalidInput.String(), "offset must be a non-negative integer")
			return
		}
	}
	if filter.Start, err = parseTimeParam(q.Get("since")); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	if filter.End, err = parseTimeParam(q.Get("until")); err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	entries, err := s.service.History(r.Context(), filter)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	if entries == nil {
		entries = []*store.Entry{}
	}

	writeJSON(w, http.StatusOK, HistoryResponse{
		Entries: entries,
		Total:   len(entries),
		Limit:   filter.Limit,
		Offset:  filter.Offset,
	})
}

func (s *Server) handleHistoryStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.service.HistoryStats(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleHistoryEntry(w http.ResponseWriter, r *http.Request) {
	entry, err := s.service.HistoryEntry(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

// observe records the calculation metrics of one outcome
func (s *Server) observe(name string, out *service.Outcome) {
	observeOutcome(s.metrics, name, out)
}

func observeOutcome(m *Metrics, name string, out *service.Outcome) {
	if out == nil {
		m.Calculations.WithLabelValues("unknown", "not_found").Inc()
		return
	}
	m.Calculations.WithLabelValues(name, string(out.Status)).Inc()
	m.CalculationDuration.WithLabelValues(name).Observe(out.Duration.Seconds())
}

// writeServiceError maps a structured error onto its HTTP status
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	code := mrwerror.GetCode(err)
	status := code.HTTPStatus()

	resp := ErrorResponse{
		Code:      code.String(),
		Message:   err.Error(),
		RequestID: requestID(r.Context()),
	}
	if field, ok := errors.ExtractDetails(err)["field"].(string); ok {
		resp.Field = field
	}

	if status >= http.StatusInternalServerError {
		s.logger.Error("Request failed", failureFields(r, err)...)
	}
	writeJSON(w, status, resp)
}

// failureFields adds the root cause and the origin of a structured error to
// the log fields of a failed request
func failureFields(r *http.Request, err error) []interface{} {
	fields := []interface{}{"path", r.URL.Path, "error", err}
	e, ok := mrwerror.As(err)
	if !ok {
		return fields
	}
	if root := e.RootCause(); root != error(e) {
		fields = append(fields, "root_cause", root.Error())
	}
	for _, f := range e.StackTrace() {
		if !strings.Contains(f.Function, "/foundation/core/") {
			fields = append(fields, "origin", fmt.Sprintf("%s:%d", f.Function, f.Line))
			break
		}
	}
	return fields
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Code: code, Message: message})
}

// FlattenFields converts JSON field values into the flat string form the
// calculator service reads
func FlattenFields(fields map[string]interface{}) (map[string]string, error) {
	out := make(map[string]string, len(fields))
	for key, value := range fields {
		if err := flatten(key, value, out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func flatten(key string, value interface{}, out map[string]string) error {
	switch v := value.(type) {
	case nil:
		out[key] = ""
	case string:
		out[key] = v
	case json.Number:
		out[key] = v.String()
	case float64:
		out[key] = strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		out[key] = strconv.FormatBool(v)
	case []interface{}:
		for i, item := range v {
			if err := flatten(key+"."+strconv.Itoa(i), item, out); err != nil {
				return err
			}
		}
	case map[string]interface{}:
		for k, item := range v {
			if err := flatten(key+"."+k, item, out); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("unsupported value for field %s", key)
	}
	return nil
}

func parseTimeParam(v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	return timex.ParseDate(v)
}
