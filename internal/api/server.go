package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/csaugo/analisevoc/internal/analysis"
	"github.com/csaugo/analisevoc/internal/models"
	"github.com/csaugo/analisevoc/internal/report"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// Server exposes the analysis service over HTTP
type Server struct {
	service *analysis.Service
}

// NewServer creates a new API server
func NewServer(service *analysis.Service) *Server {
	return &Server{service: service}
}

// Router builds the HTTP routes
func (s *Server) Router() *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/health", s.handleHealth).Methods("GET")
	router.HandleFunc("/api/analyze", s.handleAnalyze).Methods("POST")
	router.HandleFunc("/api/history", s.handleHistory).Methods("GET")
	router.HandleFunc("/api/analysis/{id}", s.handleGetAnalysis).Methods("GET")
	router.HandleFunc("/api/analysis/{id}", s.handleDeleteAnalysis).Methods("DELETE")
	router.HandleFunc("/api/analysis/{id}/report", s.handleReport).Methods("GET")

	return router
}

type analyzeRequest struct {
	CompanyName string `json:"companyName"`
	Platform    string `json:"platform"`
}

type analyzeResponse struct {
	Success bool `json:"success"`
	*analysis.RunResult
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Corpo da requisição inválido")
		return
	}
	if req.Platform == "" {
		req.Platform = string(models.PlatformTwitter)
	}

	result, err := s.service.Run(r.Context(), req.CompanyName, models.Platform(req.Platform))
	if err != nil {
		s.writeAnalyzeError(w, models.Platform(req.Platform), err)
		return
	}

	writeJSON(w, http.StatusOK, analyzeResponse{Success: true, RunResult: result})
}

func (s *Server) writeAnalyzeError(w http.ResponseWriter, platform models.Platform, err error) {
	switch {
	case errors.Is(err, analysis.ErrEmptyCompanyName):
		writeError(w, http.StatusBadRequest, "Nome da empresa é obrigatório")
	case errors.Is(err, analysis.ErrInvalidPlatform):
		writeError(w, http.StatusBadRequest, `Plataforma deve ser "twitter" ou "reddit"`)
	case errors.Is(err, analysis.ErrNoPosts):
		contentType := "tweets"
		if platform == models.PlatformReddit {
			contentType = "posts"
		}
		writeJSON(w, http.StatusNotFound, map[string]string{
			"error":      fmt.Sprintf("Nenhum %s encontrado para análise", contentType),
			"suggestion": "Tente novamente mais tarde ou verifique se o nome da empresa está correto",
		})
	default:
		logrus.Errorf("Analysis failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Erro interno do servidor")
	}
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	history, err := s.service.History()
	if err != nil {
		logrus.Errorf("Failed to load history: %v", err)
		writeError(w, http.StatusInternalServerError, "Erro interno do servidor")
		return
	}
	writeJSON(w, http.StatusOK, history)
}

func (s *Server) handleGetAnalysis(w http.ResponseWriter, r *http.Request) {
	record, ok := s.loadAnalysis(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (s *Server) handleDeleteAnalysis(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusNotFound, "Análise não encontrada")
		return
	}

	companyDeleted, err := s.service.Delete(id)
	if err != nil {
		if errors.Is(err, analysis.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Análise não encontrada")
			return
		}
		logrus.Errorf("Failed to delete analysis %s: %v", id, err)
		writeError(w, http.StatusInternalServerError, "Erro interno do servidor")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":           "Análise excluída com sucesso",
		"deletedAnalysisId": id.String(),
		"companyDeleted":    companyDeleted,
	})
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	record, ok := s.loadAnalysis(w, r)
	if !ok {
		return
	}

	html, err := report.Generate(record)
	if err != nil {
		logrus.Errorf("Failed to generate report for %s: %v", record.ID, err)
		writeError(w, http.StatusInternalServerError, "Erro interno do servidor")
		return
	}

	filename := report.Filename(record.Company.Name, time.Now())
	w.Header().Set("Content-Type", "text/html")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(html))
}

func (s *Server) loadAnalysis(w http.ResponseWriter, r *http.Request) (*models.Analysis, bool) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusNotFound, "Análise não encontrada")
		return nil, false
	}

	record, err := s.service.Get(id)
	if err != nil {
		if errors.Is(err, analysis.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Análise não encontrada")
			return nil, false
		}
		logrus.Errorf("Failed to load analysis %s: %v", id, err)
		writeError(w, http.StatusInternalServerError, "Erro interno do servidor")
		return nil, false
	}
	return record, true
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy","timestamp":"` + time.Now().Format(time.RFC3339) + `"}`))
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.Errorf("Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
