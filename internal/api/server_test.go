package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/csaugo/analisevoc/internal/analysis"
	"github.com/csaugo/analisevoc/internal/models"
	"github.com/csaugo/analisevoc/internal/sources"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type stubSource struct {
	platform models.Platform
	result   sources.Result
}

func (s *stubSource) Platform() models.Platform { return s.platform }
func (s *stubSource) IsEnabled() bool           { return true }

func (s *stubSource) Fetch(ctx context.Context, companyName string) sources.Result {
	return s.result
}

func setupServer(t *testing.T, result sources.Result) (*Server, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(models.AllModels()...))

	stub := &stubSource{platform: models.PlatformTwitter, result: result}
	service := analysis.NewService(db, []sources.Source{stub}, nil)
	return NewServer(service), db
}

func realResult(contents ...string) sources.Result {
	posts := make([]models.Post, 0, len(contents))
	for i, content := range contents {
		posts = append(posts, models.Post{
			ID:        fmt.Sprintf("real_%d", i),
			Content:   content,
			Author:    fmt.Sprintf("user_%d", i),
			Likes:     5,
			CreatedAt: time.Now(),
			Platform:  models.PlatformTwitter,
		})
	}
	return sources.Result{Posts: posts, IsRealData: true}
}

func postAnalyze(t *testing.T, server *Server, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("POST", "/api/analyze", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)
	return rec
}

func TestAnalyzeSuccess(t *testing.T) {
	server, _ := setupServer(t, realResult("Acme é ótima", "Acme lançou novidade"))

	rec := postAnalyze(t, server, `{"companyName":"Acme","platform":"twitter"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success     bool   `json:"success"`
		AnalysisID  string `json:"analysisId"`
		Message     string `json:"message"`
		DataSource  string `json:"dataSource"`
		TotalTweets int    `json:"totalTweets"`
		APIStatus   string `json:"apiStatus"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.AnalysisID)
	assert.Equal(t, "Análise concluída com dados reais da API do Twitter", resp.Message)
	assert.Equal(t, "real", resp.DataSource)
	assert.Equal(t, "active", resp.APIStatus)
	assert.Equal(t, 2, resp.TotalTweets)
}

func TestAnalyzeDefaultsToTwitter(t *testing.T) {
	server, _ := setupServer(t, realResult("Acme em alta"))

	rec := postAnalyze(t, server, `{"companyName":"Acme"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"platform":"twitter"`)
}

func TestAnalyzeMalformedBody(t *testing.T) {
	server, _ := setupServer(t, realResult("x"))

	rec := postAnalyze(t, server, `{"companyName":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Corpo da requisição inválido")
	assert.NotContains(t, rec.Body.String(), "Nome da empresa é obrigatório")
}

func TestAnalyzeMissingCompanyName(t *testing.T) {
	server, _ := setupServer(t, realResult("x"))

	rec := postAnalyze(t, server, `{"platform":"twitter"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Nome da empresa é obrigatório")
}

func TestAnalyzeInvalidPlatform(t *testing.T) {
	server, _ := setupServer(t, realResult("x"))

	rec := postAnalyze(t, server, `{"companyName":"Acme","platform":"linkedin"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `Plataforma deve ser \"twitter\" ou \"reddit\"`)
}

func TestAnalyzeNoPosts(t *testing.T) {
	server, _ := setupServer(t, sources.Result{})

	rec := postAnalyze(t, server, `{"companyName":"Acme","platform":"twitter"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Nenhum tweets encontrado para análise")
	assert.Contains(t, rec.Body.String(), "Tente novamente mais tarde ou verifique se o nome da empresa está correto")
}

func TestHistoryAndGetAnalysis(t *testing.T) {
	server, _ := setupServer(t, realResult("Acme é excelente"))

	rec := postAnalyze(t, server, `{"companyName":"Acme","platform":"twitter"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var created struct {
		AnalysisID string `json:"analysisId"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	histReq := httptest.NewRequest("GET", "/api/history", nil)
	histRec := httptest.NewRecorder()
	server.Router().ServeHTTP(histRec, histReq)
	require.Equal(t, http.StatusOK, histRec.Code)

	var history []models.Analysis
	require.NoError(t, json.Unmarshal(histRec.Body.Bytes(), &history))
	require.Len(t, history, 1)
	require.NotNil(t, history[0].Company)
	assert.Equal(t, "Acme", history[0].Company.Name)

	getReq := httptest.NewRequest("GET", "/api/analysis/"+created.AnalysisID, nil)
	getRec := httptest.NewRecorder()
	server.Router().ServeHTTP(getRec, getReq)
	require.Equal(t, http.StatusOK, getRec.Code)

	var record models.Analysis
	require.NoError(t, json.Unmarshal(getRec.Body.Bytes(), &record))
	assert.Equal(t, created.AnalysisID, record.ID.String())
	assert.NotEmpty(t, record.Mentions)
}

func TestGetAnalysisNotFound(t *testing.T) {
	server, _ := setupServer(t, realResult("x"))

	for _, id := range []string{uuid.NewString(), "not-a-uuid"} {
		req := httptest.NewRequest("GET", "/api/analysis/"+id, nil)
		rec := httptest.NewRecorder()
		server.Router().ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "Análise não encontrada")
	}
}

func TestDeleteAnalysis(t *testing.T) {
	server, db := setupServer(t, realResult("Acme fechou parceria"))

	rec := postAnalyze(t, server, `{"companyName":"Acme","platform":"twitter"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var created struct {
		AnalysisID string `json:"analysisId"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	delReq := httptest.NewRequest("DELETE", "/api/analysis/"+created.AnalysisID, nil)
	delRec := httptest.NewRecorder()
	server.Router().ServeHTTP(delRec, delReq)
	require.Equal(t, http.StatusOK, delRec.Code)

	var resp struct {
		Message           string `json:"message"`
		DeletedAnalysisID string `json:"deletedAnalysisId"`
		CompanyDeleted    bool   `json:"companyDeleted"`
	}
	require.NoError(t, json.Unmarshal(delRec.Body.Bytes(), &resp))
	assert.Equal(t, "Análise excluída com sucesso", resp.Message)
	assert.Equal(t, created.AnalysisID, resp.DeletedAnalysisID)
	assert.True(t, resp.CompanyDeleted)

	var analyses int64
	require.NoError(t, db.Model(&models.Analysis{}).Count(&analyses).Error)
	assert.Zero(t, analyses)
}

func TestReportDownload(t *testing.T) {
	server, _ := setupServer(t, realResult("Acme surpreendeu o mercado"))

	rec := postAnalyze(t, server, `{"companyName":"Acme","platform":"twitter"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var created struct {
		AnalysisID string `json:"analysisId"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	repReq := httptest.NewRequest("GET", "/api/analysis/"+created.AnalysisID+"/report", nil)
	repRec := httptest.NewRecorder()
	server.Router().ServeHTTP(repRec, repReq)
	require.Equal(t, http.StatusOK, repRec.Code)

	assert.Equal(t, "text/html", repRec.Header().Get("Content-Type"))
	assert.Contains(t, repRec.Header().Get("Content-Disposition"), "relatorio-voc-Acme-")
	assert.Contains(t, repRec.Body.String(), "Relatório de Análise Voz do Cliente")
	assert.Contains(t, repRec.Body.String(), "<h2>Acme</h2>")
}

func TestHealth(t *testing.T) {
	server, _ := setupServer(t, realResult("x"))

	req := httptest.NewRequest("GET", "/health", nil)
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"healthy"`)
}
