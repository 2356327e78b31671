// internal/adapter/source/twitter.go

package source

import (
	"context"
	"fmt"
	"net/http"
	"time"

	twitter "github.com/g8rswimmer/go-twitter/v2"
	"github.com/google/uuid"

	"mediawatch/internal/domain/monitor"
)

// bearerAuthorizer adds an app-only bearer token to Twitter API requests
type bearerAuthorizer struct {
	token string
}

func (a bearerAuthorizer) Add(req *http.Request) {
	req.Header.Add("Authorization", fmt.Sprintf("Bearer %s", a.token))
}

// Twitter fetches posts from the Twitter recent search API
type Twitter struct {
	client *twitter.Client
	query  string
}

// NewTwitter creates a Twitter source for the given search query
func NewTwitter(bearerToken, query string) *Twitter {
	return &Twitter{
		client: &twitter.Client{
			Authorizer: bearerAuthorizer{token: bearerToken},
			Client:     &http.Client{Timeout: 10 * time.Second},
			Host:       "https://api.twitter.com",
		},
		query: query,
	}
}

// Name returns the source name
func (t *Twitter) Name() string {
	return "twitter"
}

// Fetch returns up to limit recent tweets matching the configured query
func (t *Twitter) Fetch(ctx context.Context, limit int) ([]monitor.Post, error) {
	// The recent search endpoint accepts 10..100 results per page.
	if limit < 10 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	resp, err := t.client.TweetRecentSearch(ctx, t.query, twitter.TweetRecentSearchOpts{
		MaxResults: limit,
		TweetFields: []twitter.TweetField{
			twitter.TweetFieldCreatedAt,
			twitter.TweetFieldAuthorID,
			twitter.TweetFieldLanguage,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("twitter recent search: %w", err)
	}

	var posts []monitor.Post
	for _, tweet := range resp.Raw.Tweets {
		postedAt, err := time.Parse(time.RFC3339, tweet.CreatedAt)
		if err != nil {
			postedAt = time.Now().UTC()
		}

		posts = append(posts, monitor.Post{
			ID:       uuid.New().String(),
			Source:   "Twitter",
			Content:  tweet.Text,
			URL:      fmt.Sprintf("https://twitter.com/i/web/status/%s", tweet.ID),
			Author:   tweet.AuthorID,
			Language: tweet.Language,
			PostedAt: postedAt,
		})
	}

	return posts, nil
}
