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

// maxContentLength truncates reddit title+body concatenation
const maxContentLength = 500

// RedditSource fetches recent posts about a company via the Reddit
// search API. Every real call re-authenticates with client credentials;
// tokens are deliberately not cached across calls.
type RedditSource struct {
	clientID     string
	clientSecret string
	userAgent    string
	client       *resty.Client
	cache        *cache.Cache
	limiter      *ratelimit.Limiter

	// AuthURL and APIURL are overridable in tests
	AuthURL string
	APIURL  string
}

type redditAuthResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

type redditSearchResponse struct {
	Data struct {
		Children []struct {
			Data redditPost `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type redditPost struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Selftext    string  `json:"selftext"`
	Author      string  `json:"author"`
	Subreddit   string  `json:"subreddit"`
	Ups         int     `json:"ups"`
	NumComments int     `json:"num_comments"`
	CreatedUTC  float64 `json:"created_utc"`
}

// NewRedditSource creates a Reddit fetcher. The cache and limiter are
// shared process-wide singletons injected by the caller.
func NewRedditSource(clientID, clientSecret, userAgent string, c *cache.Cache, limiter *ratelimit.Limiter) *RedditSource {
	return &RedditSource{
		clientID:     clientID,
		clientSecret: clientSecret,
		userAgent:    userAgent,
		client:       resty.New().SetTimeout(requestTimeoutSeconds * time.Second),
		cache:        c,
		limiter:      limiter,
		AuthURL:      "https://www.reddit.com",
		APIURL:       "https://oauth.reddit.com",
	}
}

func (s *RedditSource) Platform() models.Platform {
	return models.PlatformReddit
}

func (s *RedditSource) IsEnabled() bool {
	return s.clientID != "" && s.clientSecret != ""
}

// Fetch resolves to usable posts no matter what happens upstream,
// mirroring the Twitter source's degradation sequence.
func (s *RedditSource) Fetch(ctx context.Context, companyName string) Result {
	if entry, ok := s.cache.Get(models.PlatformReddit, companyName); ok {
		logrus.Debugf("Cache hit for Reddit %q: %d posts", companyName, len(entry.Posts))
		return Result{Posts: entry.Posts, IsRealData: entry.IsRealData}
	}

	if decision := s.limiter.Check(); !decision.Allowed {
		logrus.Infof("Local rate limit active for Reddit, retry in %ds", decision.RetryAfter)
		return Result{
			Posts:        fallback.Generate(companyName, models.PlatformReddit),
			ErrorMessage: fmt.Sprintf("Limite temporário da API do Reddit atingido. Tente novamente em %d segundos.", decision.RetryAfter),
		}
	}

	if !s.IsEnabled() {
		logrus.Info("Reddit credentials not configured, using simulated data")
		return s.fallbackCached(companyName, "Configuração da API do Reddit não encontrada. Usando dados simulados.")
	}

	accessToken, err := s.authenticate(ctx)
	if err != nil {
		kind := classifyTransportError(err)
		logrus.Errorf("Reddit authentication failed: %v", err)
		return s.fallbackCached(companyName, transportMessage(kind, "Reddit"))
	}

	reqCtx, cancel := context.WithTimeout(ctx, requestTimeoutSeconds*time.Second)
	defer cancel()

	s.limiter.Consume()
	resp, err := s.client.R().
		SetContext(reqCtx).
		SetHeader("Authorization", "Bearer "+accessToken).
		SetHeader("User-Agent", s.userAgent).
		SetQueryParams(map[string]string{
			"q":     companyName,
			"sort":  "new",
			"limit": "25",
			"t":     "day",
			"type":  "link,sr",
		}).
		Get(s.APIURL + "/search")

	if err != nil {
		kind := classifyTransportError(err)
		logrus.Errorf("Reddit search failed for %q: %v", companyName, err)
		return s.fallbackCached(companyName, transportMessage(kind, "Reddit"))
	}

	if resp.StatusCode() == 429 {
		applied := s.limiter.SetRetryAfter(parseRetryAfter(resp.Header().Get("Retry-After")))
		logrus.Warnf("Reddit returned 429, retry after %ds", applied)
		return s.fallbackCached(companyName,
			fmt.Sprintf("Limite da API do Reddit atingido. Tente novamente em %d minutos.", (applied+59)/60))
	}

	if resp.StatusCode() != 200 {
		message := statusMessage(resp.StatusCode(), "Reddit")
		logrus.Errorf("Reddit API status %d: %s", resp.StatusCode(), message)
		return s.fallbackCached(companyName, message)
	}

	var searchResp redditSearchResponse
	if err := json.Unmarshal(resp.Body(), &searchResp); err != nil {
		logrus.Errorf("Failed to parse Reddit response: %v", err)
		return s.fallbackCached(companyName, "Erro na API do Reddit")
	}

	if len(searchResp.Data.Children) == 0 {
		logrus.Infof("No reddit posts found for %q in the last 24 hours", companyName)
		return s.fallbackCached(companyName, "Nenhum post encontrado no Reddit nas últimas 24 horas. Mostrando dados simulados.")
	}

	posts := s.normalize(searchResp)
	logrus.Infof("Found %d real reddit posts for %q", len(posts), companyName)

	s.cache.Put(models.PlatformReddit, companyName, posts, true)
	return Result{Posts: posts, IsRealData: true}
}

// authenticate performs the client-credentials exchange. Called once per
// outbound search; the short-lived token is never reused.
func (s *RedditSource) authenticate(ctx context.Context) (string, error) {
	reqCtx, cancel := context.WithTimeout(ctx, requestTimeoutSeconds*time.Second)
	defer cancel()

	resp, err := s.client.R().
		SetContext(reqCtx).
		SetHeader("User-Agent", s.userAgent).
		SetBasicAuth(s.clientID, s.clientSecret).
		SetFormData(map[string]string{"grant_type": "client_credentials"}).
		Post(s.AuthURL + "/api/v1/access_token")

	if err != nil {
		return "", err
	}
	if resp.StatusCode() != 200 {
		return "", fmt.Errorf("reddit authentication returned status %d", resp.StatusCode())
	}

	var authResp redditAuthResponse
	if err := json.Unmarshal(resp.Body(), &authResp); err != nil {
		return "", fmt.Errorf("failed to parse reddit auth response: %w", err)
	}
	if authResp.AccessToken == "" {
		return "", fmt.Errorf("reddit auth response missing access token")
	}

	return authResp.AccessToken, nil
}

func (s *RedditSource) fallbackCached(companyName, message string) Result {
	posts := fallback.Generate(companyName, models.PlatformReddit)
	s.cache.Put(models.PlatformReddit, companyName, posts, false)
	return Result{Posts: posts, ErrorMessage: message}
}

// normalize converts reddit posts into platform-neutral posts: title and
// body are concatenated and capped, upvotes map to likes, and the
// retweet count stays zero since the platform has no equivalent.
func (s *RedditSource) normalize(searchResp redditSearchResponse) []models.Post {
	posts := make([]models.Post, 0, len(searchResp.Data.Children))
	for _, child := range searchResp.Data.Children {
		post := child.Data

		content := post.Title
		if post.Selftext != "" {
			content += " " + post.Selftext
		}
		if runes := []rune(content); len(runes) > maxContentLength {
			content = string(runes[:maxContentLength])
		}

		posts = append(posts, models.Post{
			ID:        "reddit_" + post.ID,
			Content:   content,
			Author:    post.Author,
			Likes:     post.Ups,
			Retweets:  0,
			Replies:   post.NumComments,
			CreatedAt: time.Unix(int64(post.CreatedUTC), 0),
			Platform:  models.PlatformReddit,
			Subreddit: post.Subreddit,
		})
	}
	return posts
}
