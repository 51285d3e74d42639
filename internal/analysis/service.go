package analysis

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/csaugo/analisevoc/internal/models"
	"github.com/csaugo/analisevoc/internal/sentiment"
	"github.com/csaugo/analisevoc/internal/sources"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Validation and lookup errors surfaced to the HTTP layer. Upstream
// transient failures never appear here: the fetchers absorb them.
var (
	ErrEmptyCompanyName = errors.New("company name is required")
	ErrInvalidPlatform  = errors.New("platform must be twitter or reddit")
	ErrNoPosts          = errors.New("no posts found for analysis")
	ErrNotFound         = errors.New("analysis not found")
)

// historyLimit caps the history listing at the most recent analyses
const historyLimit = 50

// Notifier delivers a finished report out-of-band. Delivery is best
// effort; the analysis result never depends on it.
type Notifier interface {
	Enabled() bool
	SendAnalysisReport(analysis *models.Analysis, companyName string) error
}

// Service runs the full analysis pipeline: fetch, classify, aggregate,
// persist. One synchronous run per request.
type Service struct {
	db       *gorm.DB
	sources  map[models.Platform]sources.Source
	notifier Notifier
}

// NewService creates the analysis service. notifier may be nil.
func NewService(db *gorm.DB, srcs []sources.Source, notifier Notifier) *Service {
	byPlatform := make(map[models.Platform]sources.Source, len(srcs))
	for _, src := range srcs {
		byPlatform[src.Platform()] = src
	}
	return &Service{db: db, sources: byPlatform, notifier: notifier}
}

// RunResult is the provenance-annotated summary returned right after an
// analysis completes
type RunResult struct {
	AnalysisID   uuid.UUID `json:"analysisId"`
	Message      string    `json:"message"`
	Platform     string    `json:"platform"`
	DataSource   string    `json:"dataSource"`
	TotalTweets  int       `json:"totalTweets"`
	APIStatus    string    `json:"apiStatus"`
	ErrorMessage string    `json:"errorMessage,omitempty"`
}

// Run executes one analysis for the company on the given platform. Bad
// input is rejected before any external call or write. Every other
// failure mode either degrades to simulated data inside the fetcher or
// is a persistence error surfaced as-is.
func (s *Service) Run(ctx context.Context, companyName string, platform models.Platform) (*RunResult, error) {
	if companyName == "" {
		return nil, ErrEmptyCompanyName
	}
	if !platform.Valid() {
		return nil, ErrInvalidPlatform
	}

	source, ok := s.sources[platform]
	if !ok {
		return nil, ErrInvalidPlatform
	}

	logrus.Infof("Starting analysis for %q on %s", companyName, platform)

	result := source.Fetch(ctx, companyName)
	logrus.Infof("Fetched %d posts for %q (real: %v)", len(result.Posts), companyName, result.IsRealData)

	// The generator always yields posts, so this only fires if something
	// is broken badly enough that even the fallback came back empty
	if len(result.Posts) == 0 {
		return nil, ErrNoPosts
	}

	company, err := s.findOrCreateCompany(companyName)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve company: %w", err)
	}

	classified := make([]ClassifiedPost, 0, len(result.Posts))
	contents := make([]string, 0, len(result.Posts))
	for _, post := range result.Posts {
		verdict := sentiment.Analyze(post.Content)
		classified = append(classified, ClassifiedPost{
			Post:       post,
			Sentiment:  verdict.Sentiment,
			Score:      verdict.Score,
			Confidence: verdict.Confidence,
		})
		contents = append(contents, post.Content)
	}

	metrics := Aggregate(classified)
	topics := sentiment.ExtractTopics(contents)
	competitors := GenerateCompetitors(companyName)
	insights := GenerateInsights(metrics, platform, result.IsRealData, result.ErrorMessage)

	record := models.Analysis{
		CompanyID:      company.ID,
		Platform:       platform,
		TotalTweets:    metrics.TotalTweets,
		PositiveTweets: metrics.PositiveTweets,
		NegativeTweets: metrics.NegativeTweets,
		NeutralTweets:  metrics.NeutralTweets,
		SentimentScore: metrics.SentimentScore,
		EngagementRate: metrics.EngagementRate,
		ReachEstimate:  metrics.ReachEstimate,
		TopTopics:      topics,
		Competitors:    competitors,
		Insights:       insights,
		IsRealData:     result.IsRealData,
	}
	if err := s.db.Create(&record).Error; err != nil {
		return nil, fmt.Errorf("failed to persist analysis: %w", err)
	}

	if err := s.persistMentions(record.ID, classified); err != nil {
		return nil, fmt.Errorf("failed to persist mentions: %w", err)
	}

	logrus.Infof("Analysis %s completed: %d posts, platform %s, real data %v",
		record.ID, metrics.TotalTweets, platform, result.IsRealData)

	if s.notifier != nil && s.notifier.Enabled() {
		record.Company = company
		if err := s.notifier.SendAnalysisReport(&record, company.Name); err != nil {
			logrus.Errorf("Failed to send report email for analysis %s: %v", record.ID, err)
		}
	}

	return &RunResult{
		AnalysisID:   record.ID,
		Message:      runMessage(platform, result),
		Platform:     string(platform),
		DataSource:   dataSource(result.IsRealData),
		TotalTweets:  metrics.TotalTweets,
		APIStatus:    apiStatus(result.IsRealData),
		ErrorMessage: fallbackMessage(result),
	}, nil
}

// persistMentions writes mention rows concurrently; the writes are
// independent and unordered, but any single failure fails the whole
// analysis. Rows already written are not rolled back.
func (s *Service) persistMentions(analysisID uuid.UUID, classified []ClassifiedPost) error {
	var wg sync.WaitGroup
	errsChan := make(chan error, len(classified))

	for _, post := range classified {
		wg.Add(1)
		go func(p ClassifiedPost) {
			defer wg.Done()

			mention := models.Mention{
				AnalysisID: analysisID,
				MentionID:  p.ID,
				Content:    p.Content,
				Author:     p.Author,
				Sentiment:  p.Sentiment,
				Score:      p.Score,
				Likes:      p.Likes,
				Retweets:   p.Retweets,
				Replies:    p.Replies,
				Platform:   p.Platform,
				Subreddit:  p.Subreddit,
				PostedAt:   p.CreatedAt,
			}
			if err := s.db.Create(&mention).Error; err != nil {
				errsChan <- err
			}
		}(post)
	}

	wg.Wait()
	close(errsChan)

	for err := range errsChan {
		return err
	}
	return nil
}

func (s *Service) findOrCreateCompany(name string) (*models.Company, error) {
	var company models.Company
	err := s.db.Where("name = ?", name).First(&company).Error
	if err == nil {
		return &company, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	company = models.Company{Name: name}
	if err := s.db.Create(&company).Error; err != nil {
		return nil, err
	}
	return &company, nil
}

// Get loads one analysis with its company and mentions, newest first
func (s *Service) Get(id uuid.UUID) (*models.Analysis, error) {
	var record models.Analysis
	err := s.db.
		Preload("Company").
		Preload("Mentions", func(db *gorm.DB) *gorm.DB {
			return db.Order("posted_at DESC")
		}).
		First(&record, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// History returns the most recent analyses with their companies
func (s *Service) History() ([]models.Analysis, error) {
	var records []models.Analysis
	err := s.db.
		Preload("Company").
		Order("created_at DESC").
		Limit(historyLimit).
		Find(&records).Error
	return records, err
}

// Delete removes an analysis and its mentions. When the owning company
// has no analyses left, the company record goes too; the returned flag
// reports whether that happened.
func (s *Service) Delete(id uuid.UUID) (companyDeleted bool, err error) {
	var record models.Analysis
	if err := s.db.First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrNotFound
		}
		return false, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("analysis_id = ?", id).Delete(&models.Mention{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Analysis{}, "id = ?", id).Error; err != nil {
			return err
		}

		var remaining int64
		if err := tx.Model(&models.Analysis{}).Where("company_id = ?", record.CompanyID).Count(&remaining).Error; err != nil {
			return err
		}
		if remaining == 0 {
			if err := tx.Delete(&models.Company{}, "id = ?", record.CompanyID).Error; err != nil {
				return err
			}
			companyDeleted = true
		}
		return nil
	})
	if err != nil {
		return false, err
	}

	logrus.Infof("Deleted analysis %s (company deleted: %v)", id, companyDeleted)
	return companyDeleted, nil
}

func runMessage(platform models.Platform, result sources.Result) string {
	if result.IsRealData {
		return fmt.Sprintf("Análise concluída com dados reais da API do %s", platform.DisplayName())
	}
	if result.ErrorMessage != "" {
		return fmt.Sprintf("Análise concluída com dados simulados: %s", result.ErrorMessage)
	}
	return "Análise concluída com dados simulados"
}

func dataSource(isRealData bool) string {
	if isRealData {
		return "real"
	}
	return "simulated"
}

func apiStatus(isRealData bool) string {
	if isRealData {
		return "active"
	}
	return "fallback"
}

func fallbackMessage(result sources.Result) string {
	if result.IsRealData {
		return ""
	}
	return result.ErrorMessage
}
