package sentiment

import (
	"strings"

	"github.com/csaugo/analisevoc/internal/models"
)

// Keyword lists cover common sentiment vocabulary in Portuguese and
// English. The classifier is an exact-match bag-of-words polarity
// scorer: no stemming, negation handling or intensity weighting.
var positiveWords = wordSet(
	"bom", "ótimo", "excelente", "maravilhoso", "fantástico", "incrível", "perfeito",
	"amor", "adoro", "gosto", "recomendo", "satisfeito", "feliz", "contente",
	"qualidade", "eficiente", "rápido", "fácil", "útil", "prático", "confiável",
	"good", "great", "excellent", "amazing", "fantastic", "incredible", "perfect",
	"love", "like", "recommend", "satisfied", "happy", "pleased", "awesome",
)

var negativeWords = wordSet(
	"ruim", "péssimo", "horrível", "terrível", "odioso", "detesto", "odeio",
	"problema", "defeito", "falha", "erro", "lento", "difícil", "complicado",
	"insatisfeito", "decepcionado", "frustrado", "irritado", "chateado",
	"bad", "terrible", "horrible", "awful", "hate", "dislike", "disappointed",
	"frustrated", "annoyed", "upset", "problem", "issue", "bug", "slow", "difficult",
)

func wordSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, word := range words {
		set[word] = struct{}{}
	}
	return set
}

// Analyze scores free text into positive, negative or neutral with a
// confidence value. Deterministic: identical input always yields the
// same result.
func Analyze(text string) models.SentimentResult {
	words := strings.Fields(strings.ToLower(text))

	positiveCount := 0
	negativeCount := 0
	for _, word := range words {
		if _, ok := positiveWords[word]; ok {
			positiveCount++
		}
		if _, ok := negativeWords[word]; ok {
			negativeCount++
		}
	}

	totalWords := len(words)
	if totalWords < 1 {
		totalWords = 1 // empty input stays neutral instead of dividing by zero
	}
	netScore := float64(positiveCount-negativeCount) / float64(totalWords)

	result := models.SentimentResult{Score: netScore}
	switch {
	case netScore > 0.05:
		result.Sentiment = models.SentimentPositive
		result.Confidence = clamp1(netScore * 10)
	case netScore < -0.05:
		result.Sentiment = models.SentimentNegative
		result.Confidence = clamp1(-netScore * 10)
	default:
		result.Sentiment = models.SentimentNeutral
		result.Confidence = 0.5
	}

	return result
}

func clamp1(v float64) float64 {
	if v > 1 {
		return 1
	}
	return v
}
