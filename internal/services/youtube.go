package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/pushp314/learnhub-backend/pkg/logger"
)

const defaultYouTubeBaseURL = "https://www.googleapis.com/youtube/v3"

type YouTubeSearchItem struct {
	VideoID      string
	Title        string
	Description  string
	ChannelID    string
	ChannelTitle string
	PublishedAt  string
	Thumbnail    string
}

type YouTubeVideoItem struct {
	ID        string
	Duration  string // ISO-8601, e.g. PT1H2M30S
	ViewCount string
}

// VideoSearcher is the slice of the YouTube client the course service depends on.
type VideoSearcher interface {
	Search(ctx context.Context, query string, maxResults int) []YouTubeSearchItem
	VideoDetails(ctx context.Context, videoIDs []string) []YouTubeVideoItem
}

// YouTubeClient wraps the two read-only YouTube Data API v3 calls this
// system needs. Every failure path logs and returns an empty slice: the
// import flow treats "no results" as a legitimate outcome, never an error.
type YouTubeClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

func NewYouTubeClient(apiKey string) *YouTubeClient {
	return &YouTubeClient{
		apiKey:  apiKey,
		baseURL: defaultYouTubeBaseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// NewYouTubeClientWithBaseURL points the client at a custom API endpoint (tests).
func NewYouTubeClientWithBaseURL(apiKey, baseURL string, httpClient *http.Client) *YouTubeClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &YouTubeClient{apiKey: apiKey, baseURL: baseURL, http: httpClient}
}

// Raw API response shapes
type searchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
		Snippet struct {
			Title        string `json:"title"`
			Description  string `json:"description"`
			ChannelID    string `json:"channelId"`
			ChannelTitle string `json:"channelTitle"`
			PublishedAt  string `json:"publishedAt"`
			Thumbnails   struct {
				High struct {
					URL string `json:"url"`
				} `json:"high"`
			} `json:"thumbnails"`
		} `json:"snippet"`
	} `json:"items"`
}

type videosResponse struct {
	Items []struct {
		ID             string `json:"id"`
		ContentDetails struct {
			Duration string `json:"duration"`
		} `json:"contentDetails"`
		Statistics struct {
			ViewCount string `json:"viewCount"`
		} `json:"statistics"`
	} `json:"items"`
}

func (c *YouTubeClient) get(ctx context.Context, path string, params url.Values, dest interface{}) error {
	params.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("youtube api returned status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(dest)
}

// Search queries YouTube for long-form tutorial videos matching the query.
// Costs 100 quota units per call.
func (c *YouTubeClient) Search(ctx context.Context, query string, maxResults int) []YouTubeSearchItem {
	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("q", query+" full course tutorial")
	params.Set("type", "video")
	params.Set("videoDuration", "long")
	params.Set("maxResults", strconv.Itoa(maxResults))

	var body searchResponse
	if err := c.get(ctx, "/search", params, &body); err != nil {
		logger.Error().Err(err).Str("query", query).Msg("YouTube search failed")
		return []YouTubeSearchItem{}
	}

	items := make([]YouTubeSearchItem, 0, len(body.Items))
	for _, it := range body.Items {
		items = append(items, YouTubeSearchItem{
			VideoID:      it.ID.VideoID,
			Title:        it.Snippet.Title,
			Description:  it.Snippet.Description,
			ChannelID:    it.Snippet.ChannelID,
			ChannelTitle: it.Snippet.ChannelTitle,
			PublishedAt:  it.Snippet.PublishedAt,
			Thumbnail:    it.Snippet.Thumbnails.High.URL,
		})
	}
	return items
}

// VideoDetails fetches duration and view count for a batch of video IDs in
// one call (1 quota unit). Empty input short-circuits without a network call.
func (c *YouTubeClient) VideoDetails(ctx context.Context, videoIDs []string) []YouTubeVideoItem {
	if len(videoIDs) == 0 {
		return []YouTubeVideoItem{}
	}

	params := url.Values{}
	params.Set("part", "contentDetails,statistics")
	params.Set("id", strings.Join(videoIDs, ","))

	var body videosResponse
	if err := c.get(ctx, "/videos", params, &body); err != nil {
		logger.Error().Err(err).Int("ids", len(videoIDs)).Msg("YouTube video details failed")
		return []YouTubeVideoItem{}
	}

	items := make([]YouTubeVideoItem, 0, len(body.Items))
	for _, it := range body.Items {
		items = append(items, YouTubeVideoItem{
			ID:        it.ID,
			Duration:  it.ContentDetails.Duration,
			ViewCount: it.Statistics.ViewCount,
		})
	}
	return items
}

var isoDuration = regexp.MustCompile(`PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?`)

// ParseDuration converts an ISO-8601 duration (PT1H2M30S) to seconds.
// Missing groups count as zero; a non-matching string yields zero.
func ParseDuration(iso string) int {
	match := isoDuration.FindStringSubmatch(iso)
	if match == nil {
		return 0
	}
	hours, _ := strconv.Atoi(match[1])
	minutes, _ := strconv.Atoi(match[2])
	seconds, _ := strconv.Atoi(match[3])
	return hours*3600 + minutes*60 + seconds
}
