package analysis

import (
	"fmt"

	"github.com/csaugo/analisevoc/internal/models"
)

// GenerateInsights turns aggregated metrics plus provenance into the
// ordered narrative shown to the user. Deterministic given its inputs;
// line order is part of the product contract: provenance, sentiment
// tier, engagement tier, comparison, volume, call to action, platform
// notes, closing lines.
func GenerateInsights(m Metrics, platform models.Platform, isRealData bool, errorMessage string) []string {
	var insights []string

	platformName := platform.DisplayName()
	timeFrame := "últimas 2 horas (Brasil + DF)"
	if platform == models.PlatformReddit {
		timeFrame = "últimas 24 horas"
	}

	if !isRealData {
		if errorMessage != "" {
			insights = append(insights, "ℹ️ "+errorMessage)
		} else {
			insights = append(insights, fmt.Sprintf("ℹ️ Dados simulados devido a limitações da API do %s", platformName))
		}
	} else {
		insights = append(insights, fmt.Sprintf("✅ Análise baseada em dados reais do %s das %s", platformName, timeFrame))
	}

	// Tier order matters: the >0.6 check runs before <0.4, and scores
	// between 0.4 and 0.6 produce no sentiment line at all
	switch {
	case m.SentimentScore > 0.7:
		insights = append(insights, fmt.Sprintf("🎉 Excelente! Sua marca tem uma percepção muito positiva no %s", platformName))
	case m.SentimentScore > 0.6:
		insights = append(insights, "👍 Boa percepção da marca, com predominância de comentários positivos")
	case m.SentimentScore < 0.4:
		insights = append(insights, "⚠️ Atenção: há oportunidades significativas de melhoria na percepção da marca")
	case m.SentimentScore < 0.3:
		insights = append(insights, "🚨 Crítico: a percepção da marca está predominantemente negativa")
	}

	switch {
	case m.EngagementRate > 0.08:
		insights = append(insights, "🔥 Excelente engajamento! Sua audiência está muito ativa")
	case m.EngagementRate > 0.05:
		insights = append(insights, "📈 Bom nível de engajamento, indicando conexão com o público")
	case m.EngagementRate < 0.02:
		insights = append(insights, "📊 Engajamento baixo - considere estratégias para aumentar a interação")
	}

	if m.NegativeTweets > m.PositiveTweets {
		insights = append(insights, "🎯 Priorize melhorar a experiência do cliente para reverter sentimentos negativos")
	} else if m.PositiveTweets > m.NegativeTweets*2 {
		insights = append(insights, "✨ Ótimo! Comentários positivos superam significativamente os negativos")
	}

	if isRealData {
		// Reddit runs lower volume than Twitter in the same window
		threshold, goodThreshold := 5, 8
		if platform == models.PlatformReddit {
			threshold, goodThreshold = 3, 5
		}
		if m.TotalTweets < threshold {
			insights = append(insights, fmt.Sprintf("📢 Poucas menções nas %s - considere horários de maior atividade", timeFrame))
		} else if m.TotalTweets >= goodThreshold {
			insights = append(insights, fmt.Sprintf("🌟 Boa atividade de menções nas %s", timeFrame))
		}
	} else {
		if m.TotalTweets < 10 {
			insights = append(insights, "📢 Volume baixo de menções - considere aumentar a presença digital")
		} else if m.TotalTweets > 20 {
			insights = append(insights, "🌟 Alto volume de menções indica boa visibilidade da marca")
		}
	}

	if isRealData {
		insights = append(insights, "📱 Dados atualizados em tempo real - monitore tendências emergentes")
	} else {
		insights = append(insights, fmt.Sprintf("📱 Configure a API do %s para análises em tempo real", platformName))
	}

	if platform == models.PlatformReddit {
		insights = append(insights, "💬 Reddit oferece discussões mais aprofundadas - analise os comentários para insights detalhados")
		if m.PositiveTweets > 0 {
			insights = append(insights, "🏆 Posts positivos no Reddit tendem a gerar mais engajamento orgânico")
		}
	} else {
		insights = append(insights, "🔄 Twitter permite resposta rápida - monitore menções para engajamento imediato")
	}

	if m.NegativeTweets > 0 {
		insights = append(insights, "💬 Responda proativamente aos comentários negativos para demonstrar cuidado")
	}

	if m.PositiveTweets > 0 {
		insights = append(insights, "🙏 Agradeça e interaja com comentários positivos para fortalecer relacionamentos")
	}

	return insights
}
