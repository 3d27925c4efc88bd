// Package providers holds the external collaborators the stores consume:
// a content provider feeding widget data, an identity provider for the
// session lifecycle, and a database provider for profile and service rows.
// All are injected at construction so tests can substitute fakes.
package providers

import (
	"context"
	"time"
)

// Envelope is the uniform response wrapper every content call returns.
type Envelope[T any] struct {
	Data      T         `json:"data"`
	Status    int       `json:"status"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

type NewsItem struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Source      string    `json:"source"`
	URL         string    `json:"url"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	PublishedAt time.Time `json:"publishedAt"`
	Category    string    `json:"category,omitempty"`
}

type SocialAuthor struct {
	Name      string `json:"name"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

type SocialPost struct {
	ID        string       `json:"id"`
	Platform  string       `json:"platform"`
	Content   string       `json:"content"`
	Author    SocialAuthor `json:"author"`
	CreatedAt time.Time    `json:"createdAt"`
	Likes     int          `json:"likes"`
	Comments  int          `json:"comments"`
	Shares    int          `json:"shares"`
	MediaURLs []string     `json:"mediaUrls,omitempty"`
}

type RedditPost struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Subreddit    string    `json:"subreddit"`
	Author       string    `json:"author"`
	Content      string    `json:"content"`
	Upvotes      int       `json:"upvotes"`
	Downvotes    int       `json:"downvotes"`
	CommentCount int       `json:"commentCount"`
	CreatedAt    time.Time `json:"createdAt"`
	URL          string    `json:"url"`
	ImageURL     string    `json:"imageUrl,omitempty"`
}

type HeartRate struct {
	Current int `json:"current,omitempty"`
	Average int `json:"average,omitempty"`
	Min     int `json:"min,omitempty"`
	Max     int `json:"max,omitempty"`
}

type Sleep struct {
	Duration   float64 `json:"duration"`
	Quality    string  `json:"quality"`
	DeepSleep  float64 `json:"deepSleep,omitempty"`
	LightSleep float64 `json:"lightSleep,omitempty"`
	RemSleep   float64 `json:"remSleep,omitempty"`
}

type HealthData struct {
	Steps          int        `json:"steps"`
	CaloriesBurned int        `json:"caloriesBurned"`
	ActiveMinutes  int        `json:"activeMinutes"`
	HeartRate      *HeartRate `json:"heartRate,omitempty"`
	Sleep          *Sleep     `json:"sleep,omitempty"`
	LastUpdated    time.Time  `json:"lastUpdated"`
}

type StockQuote struct {
	Symbol        string    `json:"symbol"`
	Name          string    `json:"name"`
	Price         float64   `json:"price"`
	Change        float64   `json:"change"`
	ChangePercent float64   `json:"changePercent"`
	MarketCap     int64     `json:"marketCap,omitempty"`
	Volume        int64     `json:"volume,omitempty"`
	LastUpdated   time.Time `json:"lastUpdated"`
}

type EmailPreview struct {
	ID          string    `json:"id"`
	Sender      string    `json:"sender"`
	Subject     string    `json:"subject"`
	Preview     string    `json:"preview"`
	ReceivedAt  time.Time `json:"receivedAt"`
	IsRead      bool      `json:"isRead"`
	IsImportant bool      `json:"isImportant"`
}

type EmailSummary struct {
	UnreadCount    int            `json:"unreadCount"`
	ImportantCount int            `json:"importantCount"`
	RecentEmails   []EmailPreview `json:"recentEmails"`
}

// Content provides the data the widgets render.
type Content interface {
	GetNews(ctx context.Context, sources, categories []string, count int) (*Envelope[[]NewsItem], error)
	SearchNews(ctx context.Context, query string, count int) (*Envelope[[]NewsItem], error)
	GetSocialPosts(ctx context.Context, platforms []string, count int) (*Envelope[[]SocialPost], error)
	GetRedditPosts(ctx context.Context, subreddits []string, sort string, count int) (*Envelope[[]RedditPost], error)
	GetHealthData(ctx context.Context) (*Envelope[HealthData], error)
	GetStockQuotes(ctx context.Context, symbols []string) (*Envelope[[]StockQuote], error)
	GetEmailSummary(ctx context.Context) (*Envelope[EmailSummary], error)
}
