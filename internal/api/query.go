package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/askdb/askdb/internal/fault"
	"github.com/askdb/askdb/internal/pipeline"
	"github.com/askdb/askdb/internal/sqlexec"
)

type queryRequest struct {
	UserQuery string `json:"user_query"`
}

type errorBody struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// ResponseEnvelope is the wire shape of every POST /query reply,
// success or failure.
type ResponseEnvelope struct {
	Success      bool          `json:"success"`
	NaturalQuery string        `json:"natural_query"`
	GeneratedSQL *string       `json:"generated_sql"`
	Results      []sqlexec.Row `json:"results"`
	RowCount     int           `json:"row_count"`
	Timestamp    string        `json:"timestamp"`
	Error        *errorBody    `json:"error"`
}

func handleQuery(deps Dependencies, w http.ResponseWriter, r *http.Request) {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	var req queryRequest
	if err := decoder.Decode(&req); err != nil {
		writeError(r.Context(), w, http.StatusBadRequest, "INVALID_REQUEST_BODY", "request body must be a JSON object with a user_query field", nil)
		return
	}
	if strings.TrimSpace(req.UserQuery) == "" {
		writeError(r.Context(), w, http.StatusBadRequest, "USER_QUERY_REQUIRED", "user_query must not be empty", nil)
		return
	}

	outcome := deps.Pipeline.Process(r.Context(), req.UserQuery)
	writeJSON(w, statusForOutcome(outcome), envelopeFromOutcome(outcome))
}

func envelopeFromOutcome(outcome pipeline.Outcome) ResponseEnvelope {
	envelope := ResponseEnvelope{
		Success:      outcome.Success(),
		NaturalQuery: outcome.NaturalQuery,
		Results:      []sqlexec.Row{},
		Timestamp:    outcome.Timestamp.UTC().Format(time.RFC3339),
	}
	if outcome.GeneratedSQL != "" {
		sql := outcome.GeneratedSQL
		envelope.GeneratedSQL = &sql
	}
	if outcome.Success() {
		envelope.Results = outcome.Result.Rows
		envelope.RowCount = outcome.Result.RowCount
		return envelope
	}
	envelope.Error = &errorBody{
		Kind:    string(fault.KindOf(outcome.Err)),
		Message: fault.MessageOf(outcome.Err),
	}
	return envelope
}

func statusForOutcome(outcome pipeline.Outcome) int {
	if outcome.Success() {
		return http.StatusOK
	}
	switch fault.KindOf(outcome.Err) {
	case fault.Generation, fault.Extraction, fault.MultiStatement,
		fault.WriteStatement, fault.UnsafeConstruct, fault.UnknownIdentifier:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
