package server

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/matzehuels/rnalayout/pkg/buildinfo"
	"github.com/matzehuels/rnalayout/pkg/document"
	"github.com/matzehuels/rnalayout/pkg/errors"
	"github.com/matzehuels/rnalayout/pkg/observability"
	"github.com/matzehuels/rnalayout/pkg/pipeline"
	"github.com/matzehuels/rnalayout/pkg/rna"
)

// LayoutRequest is the body of POST /v1/layout.
type LayoutRequest struct {
	document.Molecule
	Options *pipeline.Options `json:"options,omitempty"`
}

// FilterRequest is the body of POST /v1/filter. Exactly one of the fields
// must be set.
type FilterRequest struct {
	Structure string `json:"structure,omitempty"`
	Pairs     []int  `json:"pairs,omitempty"`
}

// FilterResponse is the body returned by POST /v1/filter.
type FilterResponse struct {
	Structure string     `json:"structure"`
	Pairs     []int      `json:"pairs"`
	Removed   []rna.Pair `json:"removed"`
}

// ErrorResponse is the body of every error response.
type ErrorResponse struct {
	Error     ErrorBody `json:"error"`
	RequestID string    `json:"request_id,omitempty"`
}

// ErrorBody describes a failed request.
type ErrorBody struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, buildinfo.Get())
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	var req LayoutRequest
	if !s.decode(w, r, &req) {
		return
	}

	opts := s.cfg.Defaults
	if req.Options != nil {
		opts = mergeOptions(opts, *req.Options)
	}
	opts.Logger = s.logger

	res, err := s.runner.Layout(r.Context(), req.Molecule, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	cacheStatus := "miss"
	if res.CacheInfo.LayoutHit {
		cacheStatus = "hit"
	}
	w.Header().Set("X-Cache", cacheStatus)
	writeJSON(w, http.StatusOK, res.Layout)
}

func (s *Server) handleFilter(w http.ResponseWriter, r *http.Request) {
	var req FilterRequest
	if !s.decode(w, r, &req) {
		return
	}

	var (
		st  rna.Structure
		err error
	)
	switch {
	case req.Structure != "" && req.Pairs != nil:
		err = errors.New(errors.ErrCodeInvalidInput, "give either structure or pairs, not both")
	case req.Structure != "":
		st, err = rna.ParseDotBracket(req.Structure)
	case req.Pairs != nil:
		st, err = rna.New(req.Pairs)
	default:
		err = errors.New(errors.ErrCodeInvalidInput, "structure or pairs is required")
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	res, err := s.runner.Filter(r.Context(), st)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	removed := res.Removed
	if removed == nil {
		removed = []rna.Pair{}
	}
	writeJSON(w, http.StatusOK, FilterResponse{
		Structure: res.DotBracket(),
		Pairs:     res.Structure.Pairs(),
		Removed:   removed,
	})
}

// mergeOptions overlays the fields set in req on top of defaults. A request
// may lower the length limit but never raise it.
func mergeOptions(defaults, req pipeline.Options) pipeline.Options {
	out := defaults
	if out.MaxLength == 0 {
		out.MaxLength = pipeline.DefaultMaxLength
	}
	if req.PrimarySpacing != 0 {
		out.PrimarySpacing = req.PrimarySpacing
	}
	if req.PairSpacing != 0 {
		out.PairSpacing = req.PairSpacing
	}
	if req.MaxLength != 0 && req.MaxLength < out.MaxLength {
		out.MaxLength = req.MaxLength
	}
	out.Strict = defaults.Strict || req.Strict
	out.Refresh = req.Refresh
	return out
}

// decode reads a JSON body into v, writing an error response on failure.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	body := http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			s.writeStatus(w, r, http.StatusRequestEntityTooLarge,
				errors.New(errors.ErrCodeInvalidInput, "request body exceeds %d bytes", tooLarge.Limit))
			return false
		}
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode request"))
		return false
	}
	return true
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	s.writeStatus(w, r, statusFor(err), err)
}

func (s *Server) writeStatus(w http.ResponseWriter, r *http.Request, status int, err error) {
	observability.HTTP().OnError(r.Context(), r.Method, r.URL.Path, err)

	code := errors.GetCode(err)
	msg := errors.UserMessage(err)
	if code == "" || status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "id", RequestIDFromContext(r.Context()), "err", err)
		if code == "" {
			code = errors.ErrCodeInternal
			msg = "internal error"
		}
	}
	writeJSON(w, status, ErrorResponse{
		Error:     ErrorBody{Code: code, Message: msg},
		RequestID: RequestIDFromContext(r.Context()),
	})
}

// statusFor maps an error code to an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errors.ErrCodeNotFound):
		return http.StatusNotFound
	case errors.Is(err, errors.ErrCodeInvalidFormat):
		return http.StatusBadRequest
	case errors.IsInputError(err):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
