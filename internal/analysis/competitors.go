package analysis

import (
	"math/rand"

	"github.com/csaugo/analisevoc/internal/models"
)

// competitorCount is fixed: every analysis carries three comparison rows
const competitorCount = 3

var competitorPrefixes = []string{"Smart", "Quick", "Easy", "Fast", "Best", "Top", "Prime"}
var competitorSuffixes = []string{"Tech", "Pro", "Plus", "Digital", "Solutions", "Corp", "Group"}

// GenerateCompetitors synthesizes plausible competitor records. No real
// competitor lookup exists anywhere: this data is always fabricated, and
// name collisions across the three rows are possible and accepted.
func GenerateCompetitors(companyName string) []models.CompetitorData {
	competitors := make([]models.CompetitorData, 0, competitorCount)
	for i := 0; i < competitorCount; i++ {
		name := competitorPrefixes[rand.Intn(len(competitorPrefixes))] +
			competitorSuffixes[rand.Intn(len(competitorSuffixes))]

		competitors = append(competitors, models.CompetitorData{
			Name:           name,
			SentimentScore: 0.2 + rand.Float64()*0.6,
			TotalMentions:  rand.Intn(500) + 100,
			EngagementRate: 0.02 + rand.Float64()*0.1,
		})
	}
	return competitors
}
