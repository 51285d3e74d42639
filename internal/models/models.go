package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Platform identifies which social network a mention came from
type Platform string

const (
	PlatformTwitter Platform = "twitter"
	PlatformReddit  Platform = "reddit"
)

// Valid reports whether the platform is one of the supported values
func (p Platform) Valid() bool {
	return p == PlatformTwitter || p == PlatformReddit
}

// DisplayName returns the human-readable platform name used in insights
func (p Platform) DisplayName() string {
	if p == PlatformReddit {
		return "Reddit"
	}
	return "Twitter"
}

// Sentiment labels produced by the classifier
const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
)

// Post is one piece of platform content about the searched company,
// normalized to a common shape before classification. The ID prefix
// (real_, reddit_, fallback_<platform>_) preserves provenance.
type Post struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Author    string    `json:"author"`
	Likes     int       `json:"likes"`
	Retweets  int       `json:"retweets"`
	Replies   int       `json:"replies"`
	CreatedAt time.Time `json:"created_at"`
	Platform  Platform  `json:"platform"`
	Subreddit string    `json:"subreddit,omitempty"`
}

// SentimentResult is the classifier output for a single text
type SentimentResult struct {
	Sentiment  string  `json:"sentiment"`
	Score      float64 `json:"score"`
	Confidence float64 `json:"confidence"`
}

// CompetitorData is an always-synthetic comparison record
type CompetitorData struct {
	Name           string  `json:"name"`
	SentimentScore float64 `json:"sentimentScore"`
	TotalMentions  int     `json:"totalMentions"`
	EngagementRate float64 `json:"engagementRate"`
}

// Company is created on the first analysis of a new name and looked up
// by exact name afterwards
type Company struct {
	ID        uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	Name      string     `json:"name" gorm:"uniqueIndex;not null"`
	CreatedAt time.Time  `json:"created_at" gorm:"autoCreateTime"`
	Analyses  []Analysis `json:"analyses,omitempty" gorm:"foreignKey:CompanyID"`
}

func (c *Company) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// Analysis is the aggregate result of one analysis request. It is
// written once and never mutated. SentimentScore follows the original
// product formula and is not clamped to [0,1]; an all-positive batch
// approaches 1.5 and an all-negative batch -0.5.
type Analysis struct {
	ID             uuid.UUID        `json:"id" gorm:"type:uuid;primaryKey"`
	CompanyID      uuid.UUID        `json:"companyId" gorm:"type:uuid;index;not null"`
	Company        *Company         `json:"company,omitempty" gorm:"foreignKey:CompanyID"`
	Platform       Platform         `json:"platform"`
	TotalTweets    int              `json:"totalTweets"`
	PositiveTweets int              `json:"positiveTweets"`
	NegativeTweets int              `json:"negativeTweets"`
	NeutralTweets  int              `json:"neutralTweets"`
	SentimentScore float64          `json:"sentimentScore"`
	EngagementRate float64          `json:"engagementRate"`
	ReachEstimate  int              `json:"reachEstimate"`
	TopTopics      []string         `json:"topTopics" gorm:"serializer:json"`
	Competitors    []CompetitorData `json:"competitors" gorm:"serializer:json"`
	Insights       []string         `json:"insights" gorm:"serializer:json"`
	IsRealData     bool             `json:"isRealData"`
	CreatedAt      time.Time        `json:"createdAt" gorm:"autoCreateTime"`
	Mentions       []Mention        `json:"tweets,omitempty" gorm:"foreignKey:AnalysisID;constraint:OnDelete:CASCADE"`
}

func (a *Analysis) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// Mention is a classified post persisted as a child of an Analysis.
// MentionID carries the provenance-prefixed platform identifier.
type Mention struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	AnalysisID uuid.UUID `json:"analysisId" gorm:"type:uuid;index;not null"`
	MentionID  string    `json:"tweetId"`
	Content    string    `json:"content"`
	Author     string    `json:"author"`
	Sentiment  string    `json:"sentiment"`
	Score      float64   `json:"score"`
	Likes      int       `json:"likes"`
	Retweets   int       `json:"retweets"`
	Replies    int       `json:"replies"`
	Platform   Platform  `json:"platform"`
	Subreddit  string    `json:"subreddit,omitempty"`
	PostedAt   time.Time `json:"postedAt"`
	CreatedAt  time.Time `json:"createdAt" gorm:"autoCreateTime"`
}

func (m *Mention) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// AllModels returns every persisted model for migrations
func AllModels() []interface{} {
	return []interface{}{&Company{}, &Analysis{}, &Mention{}}
}
