package main

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/csaugo/analisevoc/internal/cache"
	"github.com/csaugo/analisevoc/internal/config"
	"github.com/csaugo/analisevoc/internal/ratelimit"
	"github.com/csaugo/analisevoc/internal/sources"
	"github.com/joho/godotenv"
)

func main() {
	fmt.Println("🔍 Voz do Cliente - API Connectivity Test")
	fmt.Println("=========================================")

	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	companyName := "Nubank"
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	fmt.Println("\n📡 Testing API Sources...")
	fmt.Println(strings.Repeat("-", 40))

	searchCache := cache.New(cache.DefaultTTL, nil)

	testSource(ctx, "Twitter/X", sources.NewTwitterSource(
		cfg.TwitterBearerToken, cfg.SearchLanguage, cfg.SearchCountry,
		searchCache, ratelimit.NewTwitter(nil),
	), companyName)
	testSource(ctx, "Reddit", sources.NewRedditSource(
		cfg.RedditClientID, cfg.RedditClientSecret, cfg.RedditUserAgent,
		searchCache, ratelimit.NewReddit(nil),
	), companyName)

	fmt.Println("\n✅ API connectivity test completed!")
	fmt.Println("\n💡 Next steps:")
	fmt.Println("   • Configure missing API keys in .env file")
	fmt.Println("   • Run the server with: make run")
}

func testSource(ctx context.Context, name string, source sources.Source, companyName string) {
	fmt.Printf("🔸 Testing %s... ", name)

	if !source.IsEnabled() {
		fmt.Printf("⚠️  DISABLED (missing credentials, fallback data will be used)\n")
		return
	}

	result := source.Fetch(ctx, companyName)
	if !result.IsRealData {
		fmt.Printf("❌ FALLBACK: %s\n", result.ErrorMessage)
		return
	}

	fmt.Printf("✅ SUCCESS (%d posts found)\n", len(result.Posts))

	if len(result.Posts) > 0 {
		fmt.Printf("   📝 Sample: \"%s\"\n", result.Posts[0].Content)
	}
}
