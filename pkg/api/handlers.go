package api

import (
	"encoding/json"
	"net/http"

	"github.com/vadim-stepanov/grid/pkg/buildinfo"
	"github.com/vadim-stepanov/grid/pkg/cache"
	"github.com/vadim-stepanov/grid/pkg/errors"
	"github.com/vadim-stepanov/grid/pkg/layout"
	"github.com/vadim-stepanov/grid/pkg/pipeline"
)

// =============================================================================
// Response Envelopes
// =============================================================================

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

type arrangeResponse struct {
	RequestID   string             `json:"request_id"`
	Arrangement layout.Arrangement `json:"arrangement"`
	Hash        string             `json:"hash"`
	Requested   int                `json:"requested"`
	Placed      int                `json:"placed"`
	CacheHit    bool               `json:"cache_hit"`
}

type layoutResponse struct {
	RequestID   string             `json:"request_id"`
	Layout      layout.Layout      `json:"layout"`
	Arrangement layout.Arrangement `json:"arrangement"`
	Hash        string             `json:"hash"`
	// Artifacts are base64-encoded per Go's JSON encoding of []byte.
	Artifacts map[string][]byte  `json:"artifacts,omitempty"`
	CacheInfo pipeline.CacheInfo `json:"cache_info"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:  "ok",
		Version: buildinfo.Version,
	})
}

func (s *Server) handleArrange(w http.ResponseWriter, r *http.Request) {
	opts, ok := s.decodeOptions(w, r)
	if !ok {
		return
	}

	spec, err := pipeline.ParseSpec(opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	arr, hit, err := s.runner.ArrangeWithCacheInfo(r.Context(), spec, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	hash := ""
	if data, err := layout.MarshalArrangement(arr); err == nil {
		hash = cache.Hash(data)
	}

	writeJSON(w, http.StatusOK, arrangeResponse{
		RequestID:   RequestID(r.Context()),
		Arrangement: arr,
		Hash:        hash,
		Requested:   len(spec.Preferences),
		Placed:      len(arr.Items),
		CacheHit:    hit,
	})
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	opts, ok := s.decodeOptions(w, r)
	if !ok {
		return
	}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, layoutResponse{
		RequestID:   RequestID(r.Context()),
		Layout:      result.Layout,
		Arrangement: result.Arrangement,
		Hash:        result.ArrangementHash,
		Artifacts:   result.Artifacts,
		CacheInfo:   result.CacheInfo,
	})
}

// =============================================================================
// Helpers
// =============================================================================

// decodeOptions parses the request body into pipeline options. The API
// only accepts inline specs; paths would read the server's filesystem.
func (s *Server) decodeOptions(w http.ResponseWriter, r *http.Request) (pipeline.Options, bool) {
	var opts pipeline.Options
	if err := json.NewDecoder(r.Body).Decode(&opts); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body"))
		return opts, false
	}
	if opts.SpecPath != "" {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "spec_path is not accepted over the API, inline the spec as spec_toml"))
		return opts, false
	}
	opts.Logger = s.logger
	return opts, true
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	status := statusForCode(code)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "error", err)
	} else {
		s.logger.Warn("request rejected", "path", r.URL.Path, "error", err)
	}
	writeJSON(w, status, errorResponse{Error: errorBody{
		Code:      string(code),
		Message:   errors.UserMessage(err),
		RequestID: RequestID(r.Context()),
	}})
}

// statusForCode maps machine-readable error codes to HTTP statuses:
// malformed inputs are 400s, valid inputs the layout rules reject are
// 422s, everything else is a 500.
func statusForCode(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput,
		errors.ErrCodeInvalidSpec,
		errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidFlow,
		errors.ErrCodeInvalidMode:
		return http.StatusBadRequest
	case errors.ErrCodeInvalidSpan,
		errors.ErrCodeOversizedSpan,
		errors.ErrCodeUnknownItem,
		errors.ErrCodeDegenerateTracks:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
