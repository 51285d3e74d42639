package sources

import (
	"context"

	"github.com/csaugo/analisevoc/internal/models"
)

// Result is what every fetch resolves to. Failures never escape a
// source: each failure path degrades to simulated data, so downstream
// aggregation never branches on fetch success. ErrorMessage carries the
// user-facing explanation whenever IsRealData is false.
type Result struct {
	Posts        []models.Post
	IsRealData   bool
	ErrorMessage string
}

// Source is the contract for platform data fetchers
type Source interface {
	Platform() models.Platform
	IsEnabled() bool
	Fetch(ctx context.Context, companyName string) Result
}

// requestTimeout bounds every outbound platform call
const requestTimeoutSeconds = 10
