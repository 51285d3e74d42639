package sentiment

import (
	"testing"

	"github.com/csaugo/analisevoc/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestAnalyze_Deterministic(t *testing.T) {
	text := "Produto ótimo mas o suporte é péssimo e lento"
	first := Analyze(text)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Analyze(text))
	}
}

func TestAnalyze_EmptyInput(t *testing.T) {
	for _, text := range []string{"", "   ", "\t\n"} {
		result := Analyze(text)
		assert.Equal(t, models.SentimentNeutral, result.Sentiment)
		assert.Equal(t, 0.5, result.Confidence)
		assert.Zero(t, result.Score)
	}
}

func TestAnalyze_AllPositiveWords(t *testing.T) {
	result := Analyze("ótimo excelente fantástico")
	assert.Equal(t, models.SentimentPositive, result.Sentiment)
	assert.InDelta(t, 1.0, result.Score, 1e-9)
	assert.Equal(t, 1.0, result.Confidence, "confidence is clamped at 1")
}

func TestAnalyze_Negative(t *testing.T) {
	result := Analyze("péssimo atendimento, produto horrível e lento demais")
	assert.Equal(t, models.SentimentNegative, result.Sentiment)
	assert.Negative(t, result.Score)
	assert.Greater(t, result.Confidence, 0.0)
	assert.LessOrEqual(t, result.Confidence, 1.0)
}

func TestAnalyze_EnglishWords(t *testing.T) {
	assert.Equal(t, models.SentimentPositive, Analyze("great awesome perfect").Sentiment)
	assert.Equal(t, models.SentimentNegative, Analyze("terrible awful bug").Sentiment)
}

func TestAnalyze_NeutralBand(t *testing.T) {
	// One positive word diluted across many tokens keeps the net score
	// inside the +-0.05 neutral band
	result := Analyze("o produto bom chegou ontem pela manhã junto com a nota fiscal e o manual de instruções completo em três idiomas diferentes para todos os clientes")
	assert.Equal(t, models.SentimentNeutral, result.Sentiment)
	assert.Equal(t, 0.5, result.Confidence)
}

func TestAnalyze_ExactMatchOnly(t *testing.T) {
	// Substrings must not match: "bombando" contains "bom" but is not
	// in the word list
	result := Analyze("a loja esta bombando")
	assert.Equal(t, models.SentimentNeutral, result.Sentiment)
}

func TestAnalyze_ScoreNormalizedByLength(t *testing.T) {
	short := Analyze("ótimo")
	long := Analyze("ótimo produto que comprei na semana passada durante a promoção")
	assert.Greater(t, short.Score, long.Score)
}
