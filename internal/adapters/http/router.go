package httpadapter

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/okondratev/devdocs-qa/internal/core/domain"
	"github.com/okondratev/devdocs-qa/internal/core/ports"
	"github.com/okondratev/devdocs-qa/internal/observability/metrics"
)

type Router struct {
	answerer ports.QuestionAnswerer
	log      ports.AnswerLog
	queue    ports.MessageQueue
	metrics  *metrics.HTTPServerMetrics
	service  string
}

func NewRouter(
	answerer ports.QuestionAnswerer,
	answerLog ports.AnswerLog,
	queue ports.MessageQueue,
	serverMetrics *metrics.HTTPServerMetrics,
	service string,
) *Router {
	return &Router{
		answerer: answerer,
		log:      answerLog,
		queue:    queue,
		metrics:  serverMetrics,
		service:  service,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	mux.HandleFunc("/v1/qa/ask", rt.askQuestion)
	mux.HandleFunc("/v1/qa/submit", rt.submitQuestion)
	mux.HandleFunc("/v1/answers/", rt.getAnswerByID)
	if rt.metrics != nil {
		mux.Handle("/metrics", rt.metrics.Handler())
	}

	return withRequestID(withTelemetry(rt.metrics, rt.service, mux))
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (rt *Router) askQuestion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	question, ok := rt.decodeQuestion(w, r)
	if !ok {
		return
	}

	start := time.Now()
	result, err := rt.answerer.Process(r.Context(), question)
	if err != nil {
		writeError(w, err)
		return
	}

	if rt.metrics != nil {
		rt.metrics.RecordQuestion(
			rt.service,
			string(result.Status),
			len(result.SearchedDomains),
			len(result.Sources),
			time.Since(start),
		)
	}

	if rt.log != nil {
		if err := rt.log.Save(r.Context(), result); err != nil {
			slog.Error("answer_save_failed", "answer_id", result.ID, "error", err)
		}
	}

	writeJSON(w, http.StatusOK, result)
}

func (rt *Router) submitQuestion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}
	if rt.queue == nil {
		writeJSON(w, http.StatusNotImplemented, map[string]string{"error": "async intake is not configured"})
		return
	}

	question, ok := rt.decodeQuestion(w, r)
	if !ok {
		return
	}

	answerID := uuid.NewString()
	if err := rt.queue.PublishQuestionSubmitted(r.Context(), answerID, question); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]string{
		"answer_id": answerID,
		"status":    "accepted",
	})
}

func (rt *Router) getAnswerByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}
	if rt.log == nil {
		writeJSON(w, http.StatusNotImplemented, map[string]string{"error": "answer log is not configured"})
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/v1/answers/")
	if id == "" || strings.Contains(id, "/") {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "answer id is required"})
		return
	}

	result, err := rt.log.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (rt *Router) decodeQuestion(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req struct {
		Question string `json:"question"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return "", false
	}
	if _, err := domain.ValidateQuestion(req.Question); err != nil {
		writeError(w, err)
		return "", false
	}
	return req.Question, true
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
}
