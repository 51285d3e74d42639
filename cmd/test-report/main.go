package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/csaugo/analisevoc/internal/analysis"
	"github.com/csaugo/analisevoc/internal/fallback"
	"github.com/csaugo/analisevoc/internal/models"
	"github.com/csaugo/analisevoc/internal/report"
	"github.com/csaugo/analisevoc/internal/sentiment"
	"github.com/google/uuid"
)

// Generates a sample HTML report from simulated data so the template
// can be reviewed without a database or API credentials.
func main() {
	companyName := "Nubank"
	if len(os.Args) > 1 {
		companyName = os.Args[1]
	}

	fmt.Printf("📊 Generating sample report for %s...\n", companyName)

	posts := fallback.Generate(companyName, models.PlatformTwitter)

	classified := make([]analysis.ClassifiedPost, 0, len(posts))
	contents := make([]string, 0, len(posts))
	for _, post := range posts {
		verdict := sentiment.Analyze(post.Content)
		classified = append(classified, analysis.ClassifiedPost{
			Post:       post,
			Sentiment:  verdict.Sentiment,
			Score:      verdict.Score,
			Confidence: verdict.Confidence,
		})
		contents = append(contents, post.Content)
	}

	metrics := analysis.Aggregate(classified)

	record := &models.Analysis{
		ID:             uuid.New(),
		Company:        &models.Company{ID: uuid.New(), Name: companyName},
		Platform:       models.PlatformTwitter,
		TotalTweets:    metrics.TotalTweets,
		PositiveTweets: metrics.PositiveTweets,
		NegativeTweets: metrics.NegativeTweets,
		NeutralTweets:  metrics.NeutralTweets,
		SentimentScore: metrics.SentimentScore,
		EngagementRate: metrics.EngagementRate,
		ReachEstimate:  metrics.ReachEstimate,
		TopTopics:      sentiment.ExtractTopics(contents),
		Competitors:    analysis.GenerateCompetitors(companyName),
		Insights:       analysis.GenerateInsights(metrics, models.PlatformTwitter, false, ""),
		CreatedAt:      time.Now(),
	}

	html, err := report.Generate(record)
	if err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}

	dir := "test_output"
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}

	path := filepath.Join(dir, report.Filename(companyName, time.Now()))
	if err := os.WriteFile(path, []byte(html), 0644); err != nil {
		log.Fatalf("Failed to write report: %v", err)
	}

	fmt.Printf("✅ Report written to %s (%d posts, %d positive, %d negative)\n",
		path, metrics.TotalTweets, metrics.PositiveTweets, metrics.NegativeTweets)
}
