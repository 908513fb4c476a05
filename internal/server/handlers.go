package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/quarkw/constfit/core"
	"github.com/quarkw/constfit/core/constants"
	"github.com/quarkw/constfit/internal/contract"
	"github.com/quarkw/constfit/schema"
)

// apiHandler holds common dependencies for the HTTP handlers.
type apiHandler struct {
	cfg *contract.Config
}

// errorBody is the JSON error envelope for single-item failures.
type errorBody struct {
	Kind    schema.ErrorKind `json:"kind"`
	Message string           `json:"message"`
}

func (h *apiHandler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSONResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *apiHandler) handleConstants(w http.ResponseWriter, _ *http.Request) {
	writeJSONResponse(w, http.StatusOK, constants.All())
}

// handleEvaluate evaluates one expression. Item-level failures come back as
// 422 with the error kind; malformed JSON is a 400.
func (h *apiHandler) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, schema.ParseError, "cannot read request body")
		return
	}

	var raw json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, schema.ParseError, "request body must be a JSON object")
		return
	}
	req := contract.MapItem(raw)

	result, err := core.EvaluateOne(h.cfg, &req)
	if err != nil {
		writeErrorResponse(w, http.StatusUnprocessableEntity, schema.KindOf(err), err.Error())
		return
	}

	writeJSONResponse(w, http.StatusOK, result)
}

// handleEvaluateBatch evaluates a batch payload. A payload that is not a
// JSON array is the single batch-fatal case and yields 400 with the
// input-shape result; item failures are reported inside a 200 response.
func (h *apiHandler) handleEvaluateBatch(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, schema.ParseError, "cannot read request body")
		return
	}

	items, mapErr := contract.MapBatchPayload(body)
	if mapErr != nil {
		writeJSONResponse(w, http.StatusBadRequest, schema.NewInputShapeResult(mapErr.Message))
		return
	}

	batch := core.EvaluateBatch(r.Context(), h.cfg, items)
	batch.Ranked = core.RankResults(batch.Ranked, h.cfg.ResultLimit)

	writeJSONResponse(w, http.StatusOK, batch)
}

func writeJSONResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeErrorResponse(w http.ResponseWriter, status int, kind schema.ErrorKind, message string) {
	writeJSONResponse(w, status, map[string]errorBody{
		"error": {Kind: kind, Message: message},
	})
}
