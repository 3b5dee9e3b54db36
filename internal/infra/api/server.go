package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"cuisine-chat/internal/domain"
	"cuisine-chat/internal/domain/model"
	"cuisine-chat/internal/infra/logging"
	"cuisine-chat/internal/infra/metrics"
	"cuisine-chat/internal/infra/ratelimit"
	"cuisine-chat/internal/usecase"
)

const maxBodyBytes = 64 << 10

// Server exposes the single chat exchange plus health and metrics.
type Server struct {
	chatUC   usecase.ChatUseCase
	limiter  *ratelimit.Limiter
	origins  []string
	validate *validator.Validate
	log      *zerolog.Logger
}

func NewServer(chatUC usecase.ChatUseCase, limiter *ratelimit.Limiter, corsOrigins []string, logger *zerolog.Logger) *Server {
	return &Server{
		chatUC:   chatUC,
		limiter:  limiter,
		origins:  corsOrigins,
		validate: validator.New(),
		log:      logger,
	}
}

// Routes builds the chi router with the full middleware chain.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(TraceID(s.log))
	r.Use(RequestLog(s.log))
	r.Use(Recover(s.log))
	r.Use(CORS(s.origins))

	r.Route("/chat", func(r chi.Router) {
		r.Use(RateLimit(s.limiter, s.log))
		r.Post("/", s.handleChat)
	})

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	return r
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	l := logging.With(r.Context(), s.log)

	req, verr := s.decodeChatRequest(r)
	if verr != nil {
		metrics.IncChatRequest("validation_error")
		writeValidationError(w, verr)
		return
	}

	reply, err := s.chatUC.ProcessMessage(r.Context(), req.Message)
	if err != nil {
		metrics.IncChatRequest("service_unavailable")
		l.Warn().Err(err).Msg("chat exchange failed")
		writeError(w, http.StatusServiceUnavailable, domain.ErrServiceUnavailable.Error(), "Service Unavailable")
		return
	}

	metrics.IncChatRequest("ok")
	writeJSON(w, http.StatusOK, model.ChatResponse{Reply: reply})
}

// decodeChatRequest accepts only an object with exactly the field
// "message" holding a string of 1..2000 characters. The reasons mirror
// the copy clients already rely on.
func (s *Server) decodeChatRequest(r *http.Request) (*model.ChatRequest, *domain.ValidationError) {
	var raw map[string]json.RawMessage
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	if err := dec.Decode(&raw); err != nil {
		return nil, domain.NewValidationError("request body must be a JSON object")
	}

	var reasons []string
	for k := range raw {
		if k != "message" {
			reasons = append(reasons, fmt.Sprintf("property %s should not exist", k))
		}
	}
	sort.Strings(reasons)

	req := &model.ChatRequest{}
	if v, ok := raw["message"]; !ok {
		reasons = append(reasons, "Message cannot be empty", "message must be a string")
	} else if err := json.Unmarshal(v, &req.Message); err != nil {
		reasons = append(reasons, "message must be a string")
	} else if err := s.validate.Struct(req); err != nil {
		for _, fe := range err.(validator.ValidationErrors) {
			switch fe.Tag() {
			case "required":
				reasons = append(reasons, "Message cannot be empty")
			case "max":
				reasons = append(reasons, "message must be shorter than or equal to 2000 characters")
			}
		}
	}

	if len(reasons) > 0 {
		return nil, domain.NewValidationError(reasons...)
	}
	return req, nil
}

type errorBody struct {
	StatusCode int    `json:"statusCode"`
	Message    any    `json:"message"`
	Error      string `json:"error"`
}

func writeValidationError(w http.ResponseWriter, ve *domain.ValidationError) {
	writeJSON(w, http.StatusBadRequest, errorBody{
		StatusCode: http.StatusBadRequest,
		Message:    ve.Reasons,
		Error:      "Bad Request",
	})
}

func writeError(w http.ResponseWriter, status int, message, errText string) {
	writeJSON(w, status, errorBody{StatusCode: status, Message: message, Error: errText})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
