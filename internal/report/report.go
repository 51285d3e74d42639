package report

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/csaugo/analisevoc/internal/models"
)

// reportTemplate renders the downloadable analysis report. The layout
// mirrors the in-app summary: executive metrics, topics, competitor
// table and insights.
const reportTemplate = `
<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>Relatório Voz do Cliente - {{.CompanyName}}</title>
  <style>
    body { font-family: Arial, sans-serif; margin: 40px; color: #333; }
    .header { text-align: center; border-bottom: 2px solid #3b82f6; padding-bottom: 20px; margin-bottom: 30px; }
    .section { margin-bottom: 30px; }
    .metric { display: inline-block; margin: 10px 20px; text-align: center; }
    .metric-value { font-size: 24px; font-weight: bold; color: #3b82f6; }
    .metric-label { font-size: 12px; color: #666; }
    .positive { color: #10b981; }
    .negative { color: #ef4444; }
    .neutral { color: #6b7280; }
    table { width: 100%; border-collapse: collapse; margin: 20px 0; }
    th, td { padding: 12px; text-align: left; border-bottom: 1px solid #e5e7eb; }
    th { background-color: #f9fafb; font-weight: bold; }
    .insights { background-color: #f0f9ff; padding: 20px; border-radius: 8px; }
  </style>
</head>
<body>
  <div class="header">
    <h1>Relatório de Análise Voz do Cliente</h1>
    <h2>{{.CompanyName}}</h2>
    <p>Gerado em: {{.GeneratedAt.Format "02/01/2006"}}</p>
  </div>

  <div class="section">
    <h3>Resumo Executivo</h3>
    <div class="metric">
      <div class="metric-value">{{.Analysis.TotalTweets}}</div>
      <div class="metric-label">Total de Menções</div>
    </div>
    <div class="metric">
      <div class="metric-value positive">{{.Analysis.PositiveTweets}}</div>
      <div class="metric-label">Positivas</div>
    </div>
    <div class="metric">
      <div class="metric-value negative">{{.Analysis.NegativeTweets}}</div>
      <div class="metric-label">Negativas</div>
    </div>
    <div class="metric">
      <div class="metric-value neutral">{{.Analysis.NeutralTweets}}</div>
      <div class="metric-label">Neutras</div>
    </div>
    <div class="metric">
      <div class="metric-value">{{.Analysis.SentimentScore | percent}}</div>
      <div class="metric-label">Score de Sentimento</div>
    </div>
  </div>

  <div class="section">
    <h3>Principais Tópicos Mencionados</h3>
    <ul>
      {{range .Analysis.TopTopics}}<li>{{.}}</li>{{end}}
    </ul>
  </div>

  <div class="section">
    <h3>Comparação com Concorrentes</h3>
    <table>
      <thead>
        <tr>
          <th>Empresa</th>
          <th>Score de Sentimento</th>
          <th>Total de Menções</th>
        </tr>
      </thead>
      <tbody>
        {{range .Analysis.Competitors}}
        <tr>
          <td>{{.Name}}</td>
          <td>{{.SentimentScore | percent}}</td>
          <td>{{.TotalMentions}}</td>
        </tr>
        {{end}}
      </tbody>
    </table>
  </div>

  <div class="section">
    <h3>Insights e Recomendações</h3>
    <div class="insights">
      {{range .Analysis.Insights}}<p>• {{.}}</p>{{end}}
    </div>
  </div>
</body>
</html>
`

type reportData struct {
	CompanyName string
	GeneratedAt time.Time
	Analysis    *models.Analysis
}

// Generate builds the HTML report for an analysis. The analysis must
// have its Company association loaded.
func Generate(analysis *models.Analysis) (string, error) {
	if analysis.Company == nil {
		return "", fmt.Errorf("analysis %s has no company loaded", analysis.ID)
	}

	t := template.New("report").Funcs(template.FuncMap{
		"percent": func(v float64) string {
			return fmt.Sprintf("%.1f%%", v*100)
		},
	})

	t, err := t.Parse(reportTemplate)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	err = t.Execute(&buf, reportData{
		CompanyName: analysis.Company.Name,
		GeneratedAt: analysis.CreatedAt,
		Analysis:    analysis,
	})
	if err != nil {
		return "", err
	}

	return buf.String(), nil
}

// Filename builds the download name for a report generated now
func Filename(companyName string, now time.Time) string {
	return fmt.Sprintf("relatorio-voc-%s-%s.html", companyName, now.Format("2006-01-02"))
}
