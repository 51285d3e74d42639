package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/csaugo/analisevoc/internal/cache"
	"github.com/csaugo/analisevoc/internal/fallback"
	"github.com/csaugo/analisevoc/internal/models"
	"github.com/csaugo/analisevoc/internal/ratelimit"
	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
)

// TwitterSource fetches recent tweets about a company via the Twitter
// API v2 recent-search endpoint
type TwitterSource struct {
	bearerToken string
	language    string
	country     string
	client      *resty.Client
	cache       *cache.Cache
	limiter     *ratelimit.Limiter

	// BaseURL is overridable in tests
	BaseURL string
}

type twitterSearchResponse struct {
	Data []twitterTweet `json:"data"`
	Includes struct {
		Users []twitterUser `json:"users"`
	} `json:"includes"`
	Meta struct {
		ResultCount int `json:"result_count"`
	} `json:"meta"`
}

type twitterTweet struct {
	ID            string `json:"id"`
	Text          string `json:"text"`
	AuthorID      string `json:"author_id"`
	CreatedAt     string `json:"created_at"`
	PublicMetrics struct {
		LikeCount    int `json:"like_count"`
		RetweetCount int `json:"retweet_count"`
		ReplyCount   int `json:"reply_count"`
	} `json:"public_metrics"`
}

type twitterUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
}

// NewTwitterSource creates a Twitter fetcher. The cache and limiter are
// shared process-wide singletons injected by the caller.
func NewTwitterSource(bearerToken, language, country string, c *cache.Cache, limiter *ratelimit.Limiter) *TwitterSource {
	return &TwitterSource{
		bearerToken: bearerToken,
		language:    language,
		country:     country,
		client: resty.New().
			SetTimeout(requestTimeoutSeconds * time.Second).
			SetHeader("User-Agent", "VozDoCliente/1.0"),
		cache:   c,
		limiter: limiter,
		BaseURL: "https://api.twitter.com",
	}
}

func (s *TwitterSource) Platform() models.Platform {
	return models.PlatformTwitter
}

func (s *TwitterSource) IsEnabled() bool {
	return s.bearerToken != ""
}

// Fetch resolves to usable posts no matter what happens upstream. Every
// failure path falls back to simulated data plus a diagnostic message.
func (s *TwitterSource) Fetch(ctx context.Context, companyName string) Result {
	if entry, ok := s.cache.Get(models.PlatformTwitter, companyName); ok {
		logrus.Debugf("Cache hit for Twitter %q: %d posts", companyName, len(entry.Posts))
		return Result{Posts: entry.Posts, IsRealData: entry.IsRealData}
	}

	// A local rate-limit denial is not cached: the window may reopen
	// before the cache entry would expire
	if decision := s.limiter.Check(); !decision.Allowed {
		logrus.Infof("Local rate limit active for Twitter, retry in %ds", decision.RetryAfter)
		return Result{
			Posts:        fallback.Generate(companyName, models.PlatformTwitter),
			ErrorMessage: fmt.Sprintf("Limite temporário da API atingido. Tente novamente em %d segundos.", decision.RetryAfter),
		}
	}

	if !s.IsEnabled() {
		logrus.Info("Twitter bearer token not configured, using simulated data")
		return s.fallbackCached(companyName, "Configuração da API do Twitter não encontrada. Usando dados simulados.")
	}

	startTime := time.Now().Add(-2 * time.Hour).UTC().Format(time.RFC3339)
	query := fmt.Sprintf("%s lang:%s -is:retweet place_country:%s", companyName, s.language, s.country)

	reqCtx, cancel := context.WithTimeout(ctx, requestTimeoutSeconds*time.Second)
	defer cancel()

	s.limiter.Consume()
	resp, err := s.client.R().
		SetContext(reqCtx).
		SetHeader("Authorization", "Bearer "+s.bearerToken).
		SetQueryParams(map[string]string{
			"query":        query,
			"max_results":  "10",
			"start_time":   startTime,
			"tweet.fields": "created_at,public_metrics,author_id",
			"user.fields":  "username,name",
			"expansions":   "author_id",
		}).
		Get(s.BaseURL + "/2/tweets/search/recent")

	if err != nil {
		kind := classifyTransportError(err)
		logrus.Errorf("Twitter search failed for %q: %v", companyName, err)
		return s.fallbackCached(companyName, transportMessage(kind, "Twitter"))
	}

	if resp.StatusCode() == 429 {
		applied := s.limiter.SetRetryAfter(parseRetryAfter(resp.Header().Get("Retry-After")))
		logrus.Warnf("Twitter returned 429, retry after %ds", applied)
		return s.fallbackCached(companyName,
			fmt.Sprintf("Limite da API do Twitter atingido. Tente novamente em %d minutos.", (applied+59)/60))
	}

	if resp.StatusCode() != 200 {
		message := statusMessage(resp.StatusCode(), "Twitter")
		logrus.Errorf("Twitter API status %d: %s", resp.StatusCode(), message)
		return s.fallbackCached(companyName, message)
	}

	var searchResp twitterSearchResponse
	if err := json.Unmarshal(resp.Body(), &searchResp); err != nil {
		logrus.Errorf("Failed to parse Twitter response: %v", err)
		return s.fallbackCached(companyName, "Erro na API do Twitter")
	}

	if len(searchResp.Data) == 0 {
		logrus.Infof("No tweets found for %q in the last 2 hours", companyName)
		return s.fallbackCached(companyName, "Nenhum tweet encontrado nas últimas 2 horas. Mostrando dados simulados.")
	}

	posts := s.normalize(searchResp)
	logrus.Infof("Found %d real tweets for %q", len(posts), companyName)

	s.cache.Put(models.PlatformTwitter, companyName, posts, true)
	return Result{Posts: posts, IsRealData: true}
}

func (s *TwitterSource) fallbackCached(companyName, message string) Result {
	posts := fallback.Generate(companyName, models.PlatformTwitter)
	s.cache.Put(models.PlatformTwitter, companyName, posts, false)
	return Result{Posts: posts, ErrorMessage: message}
}

// normalize converts the API payload into platform-neutral posts. The
// real_ id prefix preserves provenance downstream.
func (s *TwitterSource) normalize(searchResp twitterSearchResponse) []models.Post {
	users := make(map[string]twitterUser, len(searchResp.Includes.Users))
	for _, user := range searchResp.Includes.Users {
		users[user.ID] = user
	}

	posts := make([]models.Post, 0, len(searchResp.Data))
	for i, tweet := range searchResp.Data {
		author := fmt.Sprintf("user_%d", i)
		if user, ok := users[tweet.AuthorID]; ok && user.Username != "" {
			author = user.Username
		}

		createdAt, err := time.Parse(time.RFC3339, tweet.CreatedAt)
		if err != nil {
			createdAt = time.Now()
		}

		posts = append(posts, models.Post{
			ID:        "real_" + tweet.ID,
			Content:   tweet.Text,
			Author:    author,
			Likes:     tweet.PublicMetrics.LikeCount,
			Retweets:  tweet.PublicMetrics.RetweetCount,
			Replies:   tweet.PublicMetrics.ReplyCount,
			CreatedAt: createdAt,
			Platform:  models.PlatformTwitter,
		})
	}
	return posts
}
