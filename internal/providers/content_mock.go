package providers

import (
	"context"
	"strings"
	"time"
)

// MockContent serves in-memory fixtures after an artificial delay, standing
// in for the real content API.
type MockContent struct {
	delay time.Duration
	now   func() time.Time
}

func NewMockContent(delay time.Duration) *MockContent {
	return &MockContent{delay: delay, now: time.Now}
}

// simulate blocks for the configured delay, honoring cancellation, then
// wraps data in the uniform envelope.
func simulate[T any](ctx context.Context, m *MockContent, data T) (*Envelope[T], error) {
	if m.delay > 0 {
		timer := time.NewTimer(m.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
	return &Envelope[T]{
		Data:      data,
		Status:    200,
		Message:   "Success",
		Timestamp: m.now().UTC(),
	}, nil
}

func newsFixtures(now time.Time) []NewsItem {
	return []NewsItem{
		{
			ID:          "news-1",
			Title:       "SpaceX Successfully Launches New Satellite Constellation",
			Description: "SpaceX has successfully launched 60 more Starlink satellites into orbit, expanding its growing constellation.",
			Source:      "TechCrunch",
			URL:         "https://techcrunch.com/spacex-launch",
			PublishedAt: now.Add(-3 * time.Hour),
			Category:    "Technology",
		},
		{
			ID:          "news-2",
			Title:       "Global Markets Rally on Economic Recovery Hopes",
			Description: "Stock markets around the world surged today as new economic data suggests a faster than expected recovery.",
			Source:      "Financial Times",
			URL:         "https://ft.com/markets-rally",
			PublishedAt: now.Add(-5 * time.Hour),
			Category:    "Finance",
		},
		{
			ID:          "news-3",
			Title:       "New Study Reveals Benefits of Mediterranean Diet",
			Description: "Researchers have found additional health benefits associated with following a Mediterranean diet, including improved cognitive function.",
			Source:      "Health Journal",
			URL:         "https://healthjournal.com/mediterranean-diet",
			PublishedAt: now.Add(-8 * time.Hour),
			Category:    "Health",
		},
		{
			ID:          "news-4",
			Title:       "Climate Summit Ends with New Global Commitments",
			Description: "World leaders have agreed to ambitious new targets for reducing carbon emissions following a week-long climate summit.",
			Source:      "BBC News",
			URL:         "https://bbc.com/climate-summit",
			PublishedAt: now.Add(-12 * time.Hour),
			Category:    "Environment",
		},
		{
			ID:          "news-5",
			Title:       "New AI Model Can Predict Protein Structures with Unprecedented Accuracy",
			Description: "Scientists have developed a new artificial intelligence system capable of predicting protein structures with remarkable precision.",
			Source:      "Science Daily",
			URL:         "https://sciencedaily.com/ai-protein",
			PublishedAt: now.Add(-18 * time.Hour),
			Category:    "Science",
		},
	}
}

func (m *MockContent) GetNews(ctx context.Context, sources, categories []string, count int) (*Envelope[[]NewsItem], error) {
	news := newsFixtures(m.now())

	if len(categories) > 0 {
		filtered := make([]NewsItem, 0, len(news))
		for _, item := range news {
			for _, cat := range categories {
				if strings.EqualFold(item.Category, cat) {
					filtered = append(filtered, item)
					break
				}
			}
		}
		if len(filtered) > 0 {
			news = filtered
		}
	}
	if count > 0 && count < len(news) {
		news = news[:count]
	}

	return simulate(ctx, m, news)
}

func (m *MockContent) SearchNews(ctx context.Context, query string, count int) (*Envelope[[]NewsItem], error) {
	matches := make([]NewsItem, 0)
	q := strings.ToLower(strings.TrimSpace(query))
	for _, item := range newsFixtures(m.now()) {
		if strings.Contains(strings.ToLower(item.Title), q) ||
			strings.Contains(strings.ToLower(item.Description), q) {
			matches = append(matches, item)
		}
	}
	if count > 0 && count < len(matches) {
		matches = matches[:count]
	}

	return simulate(ctx, m, matches)
}

func (m *MockContent) GetSocialPosts(ctx context.Context, platforms []string, count int) (*Envelope[[]SocialPost], error) {
	now := m.now()
	posts := []SocialPost{
		{
			ID:       "social-1",
			Platform: "twitter",
			Content:  "Just announced our new product line! Check out the link in bio for more details. #innovation #technology",
			Author: SocialAuthor{
				Name:     "Tech Innovations",
				Username: "@techinnovate",
			},
			CreatedAt: now.Add(-45 * time.Minute),
			Likes:     1243,
			Comments:  89,
			Shares:    356,
		},
		{
			ID:       "social-2",
			Platform: "instagram",
			Content:  "Beautiful sunset at the beach today! 🌅 #sunset #beach #summer",
			Author: SocialAuthor{
				Name:     "Travel Enthusiast",
				Username: "@travelbug",
			},
			CreatedAt: now.Add(-3 * time.Hour),
			Likes:     3567,
			Comments:  124,
			Shares:    45,
		},
		{
			ID:       "social-3",
			Platform: "facebook",
			Content:  "We're hiring! Join our team of passionate developers and help us build the future of technology.",
			Author: SocialAuthor{
				Name:     "Tech Company",
				Username: "techcompany",
			},
			CreatedAt: now.Add(-6 * time.Hour),
			Likes:     432,
			Comments:  67,
			Shares:    89,
		},
	}

	if len(platforms) > 0 {
		filtered := make([]SocialPost, 0, len(posts))
		for _, post := range posts {
			for _, p := range platforms {
				if strings.EqualFold(post.Platform, p) {
					filtered = append(filtered, post)
					break
				}
			}
		}
		posts = filtered
	}
	if count > 0 && count < len(posts) {
		posts = posts[:count]
	}

	return simulate(ctx, m, posts)
}

func (m *MockContent) GetRedditPosts(ctx context.Context, subreddits []string, sort string, count int) (*Envelope[[]RedditPost], error) {
	now := m.now()
	posts := []RedditPost{
		{
			ID:           "reddit-1",
			Title:        "I built a tool that automatically summarizes long articles using AI",
			Subreddit:    "programming",
			Author:       "coder123",
			Content:      "After months of work, I'm excited to share my new open-source tool that uses AI to summarize long articles.",
			Upvotes:      4567,
			Downvotes:    123,
			CommentCount: 342,
			CreatedAt:    now.Add(-5 * time.Hour),
			URL:          "https://reddit.com/r/programming/comments/123456",
		},
		{
			ID:           "reddit-2",
			Title:        "This is what the surface of Mars looks like in true color",
			Subreddit:    "space",
			Author:       "spacefan",
			Content:      "NASA recently released these new images from the Perseverance rover showing the Martian surface in true color.",
			Upvotes:      8901,
			Downvotes:    234,
			CommentCount: 567,
			CreatedAt:    now.Add(-8 * time.Hour),
			URL:          "https://reddit.com/r/space/comments/234567",
		},
		{
			ID:           "reddit-3",
			Title:        "What's your favorite productivity hack?",
			Subreddit:    "productivity",
			Author:       "efficiency_expert",
			Content:      "I've been trying to optimize my workflow and would love to hear what productivity hacks have made the biggest difference for you.",
			Upvotes:      2345,
			Downvotes:    78,
			CommentCount: 789,
			CreatedAt:    now.Add(-12 * time.Hour),
			URL:          "https://reddit.com/r/productivity/comments/345678",
		},
	}

	if len(subreddits) > 0 {
		filtered := make([]RedditPost, 0, len(posts))
		for _, post := range posts {
			for _, sub := range subreddits {
				if strings.EqualFold(post.Subreddit, sub) {
					filtered = append(filtered, post)
					break
				}
			}
		}
		posts = filtered
	}
	if count > 0 && count < len(posts) {
		posts = posts[:count]
	}

	return simulate(ctx, m, posts)
}

func (m *MockContent) GetHealthData(ctx context.Context) (*Envelope[HealthData], error) {
	data := HealthData{
		Steps:          8743,
		CaloriesBurned: 2156,
		ActiveMinutes:  78,
		HeartRate: &HeartRate{
			Current: 72,
			Average: 68,
			Min:     52,
			Max:     142,
		},
		Sleep: &Sleep{
			Duration:   7.5,
			Quality:    "good",
			DeepSleep:  1.8,
			LightSleep: 4.2,
			RemSleep:   1.5,
		},
		LastUpdated: m.now().Add(-30 * time.Minute),
	}
	return simulate(ctx, m, data)
}

func (m *MockContent) GetStockQuotes(ctx context.Context, symbols []string) (*Envelope[[]StockQuote], error) {
	now := m.now()
	quotes := []StockQuote{
		{Symbol: "AAPL", Name: "Apple Inc.", Price: 182.63, Change: 3.24, ChangePercent: 1.81,
			MarketCap: 2_870_000_000_000, Volume: 58_432_100, LastUpdated: now},
		{Symbol: "MSFT", Name: "Microsoft Corporation", Price: 338.11, Change: -1.45, ChangePercent: -0.43,
			MarketCap: 2_510_000_000_000, Volume: 21_345_600, LastUpdated: now},
		{Symbol: "GOOGL", Name: "Alphabet Inc.", Price: 131.86, Change: 2.17, ChangePercent: 1.67,
			MarketCap: 1_670_000_000_000, Volume: 19_876_500, LastUpdated: now},
		{Symbol: "AMZN", Name: "Amazon.com Inc.", Price: 178.75, Change: 4.32, ChangePercent: 2.48,
			MarketCap: 1_850_000_000_000, Volume: 32_145_600, LastUpdated: now},
		{Symbol: "TSLA", Name: "Tesla, Inc.", Price: 237.49, Change: -5.63, ChangePercent: -2.32,
			MarketCap: 754_000_000_000, Volume: 87_654_300, LastUpdated: now},
	}

	if len(symbols) > 0 {
		filtered := make([]StockQuote, 0, len(symbols))
		for _, quote := range quotes {
			for _, sym := range symbols {
				if strings.EqualFold(quote.Symbol, sym) {
					filtered = append(filtered, quote)
					break
				}
			}
		}
		quotes = filtered
	}

	return simulate(ctx, m, quotes)
}

func (m *MockContent) GetEmailSummary(ctx context.Context) (*Envelope[EmailSummary], error) {
	now := m.now()
	summary := EmailSummary{
		UnreadCount:    12,
		ImportantCount: 3,
		RecentEmails: []EmailPreview{
			{
				ID:          "email-1",
				Sender:      "Team Updates",
				Subject:     "Weekly Project Status Update",
				Preview:     "Here's a summary of this week's progress on the main project...",
				ReceivedAt:  now.Add(-35 * time.Minute),
				IsRead:      false,
				IsImportant: true,
			},
			{
				ID:          "email-2",
				Sender:      "Newsletter",
				Subject:     "Tech News Digest - Latest Updates",
				Preview:     "This week in tech: New product launches, industry trends, and more...",
				ReceivedAt:  now.Add(-2 * time.Hour),
				IsRead:      false,
				IsImportant: false,
			},
			{
				ID:          "email-3",
				Sender:      "Calendar",
				Subject:     "Reminder: Meeting Tomorrow at 10 AM",
				Preview:     "You have a scheduled meeting with the design team tomorrow at 10:00 AM...",
				ReceivedAt:  now.Add(-4 * time.Hour),
				IsRead:      true,
				IsImportant: true,
			},
		},
	}
	return simulate(ctx, m, summary)
}
