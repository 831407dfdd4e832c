package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	gochi "github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/rankdex/internal/domain"
	"github.com/kailas-cloud/rankdex/internal/domain/method"
	"github.com/kailas-cloud/rankdex/internal/logger"
	"github.com/kailas-cloud/rankdex/internal/version"
	evaluationuc "github.com/kailas-cloud/rankdex/internal/usecase/evaluation"
	healthuc "github.com/kailas-cloud/rankdex/internal/usecase/health"
)

const defaultMaxBodyBytes = 4 << 20

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server serves the rankdex HTTP API.
type Server struct {
	evaluations   *evaluationuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	maxBodyBytes  int64
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(evaluations *evaluationuc.Service, health *healthuc.Service, logger *zap.Logger) *Server {
	s := &Server{
		evaluations:  evaluations,
		health:       health,
		logger:       logger,
		maxBodyBytes: defaultMaxBodyBytes,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, ErrorCodeNotFound),
		sentinelHandler(domain.ErrTooLarge, http.StatusRequestEntityTooLarge, ErrorCodeTooLarge),
		sentinelHandler(domain.ErrEmptyInput, http.StatusBadRequest, ErrorCodeEmptyInput),
		sentinelHandler(domain.ErrMalformedMatrix, http.StatusBadRequest, ErrorCodeMalformedMatrix),
		sentinelHandler(domain.ErrDimensionMismatch, http.StatusBadRequest, ErrorCodeDimensionMismatch),
		sentinelHandler(domain.ErrInvalidParameter, http.StatusBadRequest, ErrorCodeInvalidParameter),
		sentinelHandler(domain.ErrUnknownMethod, http.StatusBadRequest, ErrorCodeUnknownMethod),
		sentinelHandler(domain.ErrDegenerateComputation,
			http.StatusUnprocessableEntity, ErrorCodeDegenerateComputation),
	}
	return s
}

// WithMaxBodyBytes caps request bodies.
func (s *Server) WithMaxBodyBytes(n int64) *Server {
	if n > 0 {
		s.maxBodyBytes = n
	}
	return s
}

// Routes mounts the API on r.
func (s *Server) Routes(r gochi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
	r.Route("/api/v1", func(r gochi.Router) {
		r.Post("/evaluations", s.CreateEvaluation)
		r.Get("/evaluations/{id}", s.GetEvaluation)
		r.Post("/pareto", s.ComputePareto)
		r.Get("/methods", s.ListMethods)
		r.Get("/methods/{method}", s.GetMethod)
	})
}

// CreateEvaluation handles POST /api/v1/evaluations.
func (s *Server) CreateEvaluation(w http.ResponseWriter, r *http.Request) {
	var req EvaluationRequest
	if !s.decode(w, r, &req) {
		return
	}

	evalReq, err := evaluationRequestFromDTO(req)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	e, err := s.evaluations.Evaluate(r.Context(), evalReq)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	w.Header().Set("Location", "/api/v1/evaluations/"+e.ID())
	writeJSON(w, http.StatusCreated, evaluationToDTO(e))
}

// GetEvaluation handles GET /api/v1/evaluations/{id}.
func (s *Server) GetEvaluation(w http.ResponseWriter, r *http.Request) {
	var id string
	err := runtime.BindStyledParameterWithOptions("simple", "id", gochi.URLParam(r, "id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Invalid format for parameter id: "+err.Error())
		return
	}

	e, err := s.evaluations.Get(r.Context(), id)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, evaluationToDTO(e))
}

// ComputePareto handles POST /api/v1/pareto.
func (s *Server) ComputePareto(w http.ResponseWriter, r *http.Request) {
	var req MatrixInput
	if !s.decode(w, r, &req) {
		return
	}

	m, err := req.toDomain()
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	front, err := s.evaluations.Pareto(r.Context(), m)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, ParetoResponse{Front: alternativesToDTO(front), Count: front.Len()})
}

// ListMethods handles GET /api/v1/methods.
func (s *Server) ListMethods(w http.ResponseWriter, r *http.Request) {
	var category *string
	err := runtime.BindQueryParameter("form", true, false, "category", r.URL.Query(), &category)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Invalid format for parameter category: "+err.Error())
		return
	}

	var c method.Category
	if category != nil {
		if c, err = method.ParseCategory(*category); err != nil {
			s.handleDomainError(w, r, err)
			return
		}
	}

	infos := s.evaluations.Methods(c)
	items := make([]MethodInfo, len(infos))
	for i, info := range infos {
		items[i] = methodInfoToDTO(info)
	}
	writeJSON(w, http.StatusOK, MethodListResponse{Items: items})
}

// GetMethod handles GET /api/v1/methods/{method}.
func (s *Server) GetMethod(w http.ResponseWriter, r *http.Request) {
	var name string
	err := runtime.BindStyledParameterWithOptions("simple", "method", gochi.URLParam(r, "method"), &name,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Invalid format for parameter method: "+err.Error())
		return
	}

	info, err := s.evaluations.Method(name)
	if err != nil {
		s.handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, methodInfoToDTO(info))
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, HealthResponse{
		Status:  string(report.Status),
		Checks:  checks,
		Version: version.Version,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// decode reads a JSON body into v, writing the error response on failure.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	body := http.MaxBytesReader(w, r.Body, s.maxBodyBytes)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, ErrorCodeTooLarge, "Request body too large")
			return false
		}
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// clientSentinels are the errors whose messages describe the caller's input.
var clientSentinels = []error{
	domain.ErrEmptyInput,
	domain.ErrMalformedMatrix,
	domain.ErrDimensionMismatch,
	domain.ErrInvalidParameter,
	domain.ErrDegenerateComputation,
	domain.ErrUnknownMethod,
	domain.ErrNotFound,
	domain.ErrTooLarge,
}

// safeDomainMessage returns the client-facing message of an error without exposing internals.
func safeDomainMessage(err error) string {
	for _, s := range clientSentinels {
		if errors.Is(err, s) {
			if errors.Is(err, domain.ErrNotFound) {
				return "evaluation not found"
			}
			return err.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		resp := ErrorResponse{Code: code, Message: msg}
		var me *domain.MethodError
		if errors.As(err, &me) {
			resp.Method = me.Method
		}
		writeJSON(w, status, resp)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromContext(r.Context())
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			log.Debug("domain error", zap.Error(err))
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, ErrorCodeInternalError, "internal error")
}
