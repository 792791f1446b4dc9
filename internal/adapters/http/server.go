package httpadapter

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"finsight/internal/domain"
	"finsight/internal/ports"
	analysissvc "finsight/internal/services/analysis"
	analyticssvc "finsight/internal/services/analytics"
	companysvc "finsight/internal/services/companies"
)

const (
	defaultSearchLimit = 100
	maxSearchLimit     = 500
)

type Server struct {
	companies ports.Companies
	analytics ports.Analytics
	analyzer  ports.Analyzer
}

func New(companies ports.Companies, analytics ports.Analytics, analyzer ports.Analyzer) *Server {
	return &Server{companies: companies, analytics: analytics, analyzer: analyzer}
}

func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/healthz", s.getHealthz)
	r.Route("/api/companies", func(r chi.Router) {
		r.Get("/search", s.getSearch)
		r.Get("/search/by-name", s.getSearchByName)
		r.Get("/search/by-okved", s.getSearchByOKVED)
		r.Get("/{inn}", s.getCompany)
		r.Get("/{inn}/analytics", s.getAnalytics)
		r.Get("/{inn}/forecast", s.getForecast)
		r.Get("/{inn}/analysis", s.getAnalysisStream)
		r.Post("/{inn}/refresh", s.postRefresh)
	})
	return r
}

func (s *Server) getHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type searchResponse struct {
	Companies []domain.CompanySummary `json:"companies"`
	Total     int                     `json:"total"`
}

func (s *Server) getSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.SearchFilter{
		Name:   strings.TrimSpace(q.Get("name")),
		OKVED:  strings.TrimSpace(q.Get("okved")),
		INN:    strings.TrimSpace(q.Get("inn")),
		Region: strings.TrimSpace(q.Get("region")),
	}
	if filter.Empty() {
		writeError(w, http.StatusBadRequest, "at least one search parameter is required")
		return
	}
	s.search(w, r, filter)
}

func (s *Server) getSearchByName(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if len([]rune(name)) < 2 {
		writeError(w, http.StatusBadRequest, "name must be at least 2 characters")
		return
	}
	s.search(w, r, domain.SearchFilter{Name: name})
}

func (s *Server) getSearchByOKVED(w http.ResponseWriter, r *http.Request) {
	okved := strings.TrimSpace(r.URL.Query().Get("okved"))
	if len(okved) < 2 {
		writeError(w, http.StatusBadRequest, "okved must be at least 2 characters")
		return
	}
	s.search(w, r, domain.SearchFilter{OKVED: okved})
}

func (s *Server) search(w http.ResponseWriter, r *http.Request, filter domain.SearchFilter) {
	summaries, total, err := s.companies.Search(r.Context(), filter, searchLimit(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if summaries == nil {
		summaries = []domain.CompanySummary{}
	}
	writeJSON(w, http.StatusOK, searchResponse{Companies: summaries, Total: total})
}

func (s *Server) getCompany(w http.ResponseWriter, r *http.Request) {
	detail, err := s.companies.Detail(r.Context(), chi.URLParam(r, "inn"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (s *Server) getAnalytics(w http.ResponseWriter, r *http.Request) {
	overview, err := s.analytics.Overview(r.Context(), chi.URLParam(r, "inn"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, overview)
}

func (s *Server) getForecast(w http.ResponseWriter, r *http.Request) {
	result, err := s.analytics.Forecast(r.Context(), chi.URLParam(r, "inn"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) postRefresh(w http.ResponseWriter, r *http.Request) {
	jobID, err := s.analytics.Refresh(r.Context(), chi.URLParam(r, "inn"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"job_id": jobID})
}

// getAnalysisStream serves the AI narrative over server-sent events.
func (s *Server) getAnalysisStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming not supported")
		return
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	err := s.analyzer.Stream(r.Context(), chi.URLParam(r, "inn"), func(chunk string) error {
		for _, line := range strings.Split(chunk, "\n") {
			if _, err := w.Write([]byte("data: " + line + "\n")); err != nil {
				return err
			}
		}
		if _, err := w.Write([]byte("\n")); err != nil {
			return err
		}
		flusher.Flush()
		return nil
	})
	if err != nil {
		// Headers are already out; surface the failure inside the stream.
		w.Write([]byte("event: error\ndata: " + err.Error() + "\n\n"))
		flusher.Flush()
		return
	}
	w.Write([]byte("event: done\ndata: \n\n"))
	flusher.Flush()
}

func searchLimit(r *http.Request) int {
	limit := defaultSearchLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			limit = v
		}
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}
	return limit
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, companysvc.ErrNotFound), errors.Is(err, analyticssvc.ErrNotFound):
		writeError(w, http.StatusNotFound, "company not found")
	case errors.Is(err, analyticssvc.ErrNoFinanceData):
		writeError(w, http.StatusNotFound, "financial data not found")
	case errors.Is(err, analyticssvc.ErrNotEnoughData):
		writeError(w, http.StatusUnprocessableEntity, "at least 2 years of reports are required")
	case errors.Is(err, analysissvc.ErrUnavailable):
		writeError(w, http.StatusServiceUnavailable, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
