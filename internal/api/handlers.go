package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"gocopula/domain/core"
	"gocopula/domain/run"
	"gocopula/domain/sample"
	"gocopula/internal/errors"
	"gocopula/internal/report"
)

// variableDTO is one variable's samples on the wire
type variableDTO struct {
	Key     string    `json:"key"`
	Samples []float64 `json:"samples"`
}

// batchDTO is a sample batch on the wire
type batchDTO struct {
	Variables []variableDTO `json:"variables"`
}

// reorderRequest carries both input batches
type reorderRequest struct {
	Marginals     batchDTO `json:"marginals"`
	CopulaSamples batchDTO `json:"copula_samples"`
}

// reorderResponse returns the reordered batch plus its manifest
type reorderResponse struct {
	Output   batchDTO      `json:"output"`
	Manifest *run.Manifest `json:"manifest"`
}

// errorResponse is the uniform error body
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) handleReorder(w http.ResponseWriter, r *http.Request) {
	var req reorderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errors.CodeInvalidInput, "malformed JSON body: "+err.Error())
		return
	}

	marginals, err := dtoToBatch(req.Marginals)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	copulaSamples, err := dtoToBatch(req.CopulaSamples)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	result, err := s.service.Reorder(r.Context(), marginals, copulaSamples)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, reorderResponse{
		Output:   batchToDTO(result.Output),
		Manifest: result.Manifest,
	})
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	id := core.RunID(chi.URLParam(r, "runID"))
	manifest, err := s.service.GetRun(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, manifest)
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	runs, err := s.service.ListRuns(r.Context(), limit)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, runs)
}

func (s *Server) handleRunReport(w http.ResponseWriter, r *http.Request) {
	id := core.RunID(chi.URLParam(r, "runID"))
	manifest, err := s.service.GetRun(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(report.HTML(manifest))
}

func dtoToBatch(dto batchDTO) (*sample.Batch, error) {
	keys := make([]core.VariableKey, len(dto.Variables))
	columns := make([][]float64, len(dto.Variables))
	for i, v := range dto.Variables {
		keys[i] = core.VariableKey(v.Key)
		columns[i] = v.Samples
	}
	return sample.FromColumns(keys, columns)
}

func batchToDTO(b *sample.Batch) batchDTO {
	dto := batchDTO{Variables: make([]variableDTO, b.VariableCount())}
	for i, key := range b.Keys() {
		dto.Variables[i] = variableDTO{Key: key.String(), Samples: b.ColumnAt(i)}
	}
	return dto
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	// Marshal before writing headers so an encode failure can still become
	// a proper error response instead of a 200 with an empty body
	data, err := json.Marshal(body)
	if err != nil {
		status = http.StatusInternalServerError
		data, _ = json.Marshal(errorResponse{Code: errors.CodeInternalError, Message: "failed to encode response"})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(data)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

// writeDomainError maps domain errors to HTTP statuses via their codes
func writeDomainError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	status := http.StatusInternalServerError
	switch code {
	case errors.CodeShapeMismatch, errors.CodeInvalidInput:
		status = http.StatusBadRequest
	case errors.CodeNotFound:
		status = http.StatusNotFound
	case errors.CodeDatabaseError:
		status = http.StatusServiceUnavailable
	}
	writeError(w, status, code, err.Error())
}
