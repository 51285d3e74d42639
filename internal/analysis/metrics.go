package analysis

import (
	"github.com/csaugo/analisevoc/internal/models"
)

// ClassifiedPost is a post with its sentiment verdict attached
type ClassifiedPost struct {
	models.Post
	Sentiment  string
	Score      float64
	Confidence float64
}

// Metrics are the batch-level aggregates persisted on an Analysis
type Metrics struct {
	TotalTweets    int
	PositiveTweets int
	NegativeTweets int
	NeutralTweets  int
	SentimentScore float64
	EngagementRate float64
	ReachEstimate  int
}

// Aggregate combines classified posts into summary metrics. Callers must
// never pass an empty batch; the orchestrator rejects that upstream.
//
// SentimentScore is (positive-negative)/total + 0.5: a balanced batch
// sits at 0.5, an all-positive batch approaches 1.5 and an all-negative
// one -0.5. The value is intentionally not clamped to [0,1]; consumers
// rendering it as a percentage must tolerate values outside 0-100%.
func Aggregate(posts []ClassifiedPost) Metrics {
	m := Metrics{TotalTweets: len(posts)}

	totalEngagement := 0
	for _, post := range posts {
		switch post.Sentiment {
		case models.SentimentPositive:
			m.PositiveTweets++
		case models.SentimentNegative:
			m.NegativeTweets++
		default:
			m.NeutralTweets++
		}

		totalEngagement += post.Likes + post.Retweets + post.Replies
		// Retweets weighted 10x likes as a proxy for secondary reach
		m.ReachEstimate += post.Likes + post.Retweets*10
	}

	total := float64(m.TotalTweets)
	m.SentimentScore = float64(m.PositiveTweets-m.NegativeTweets)/total + 0.5
	m.EngagementRate = float64(totalEngagement) / total / 100

	return m
}
