package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDuration(t *testing.T) {
	cases := map[string]int{
		"PT1H2M30S": 3723,
		"PT4H":      14400,
		"PT15M":     900,
		"PT45S":     45,
		"PT1H30S":   3630,
		"PT":        0,
		"":          0,
		"garbage":   0,
		"P1DT2H":    0, // day-bearing durations are not handled
	}
	for iso, want := range cases {
		assert.Equal(t, want, ParseDuration(iso), "input: %q", iso)
	}
}

const searchBody = `{
  "items": [
    {
      "id": {"videoId": "vid-1"},
      "snippet": {
        "title": "Go Full Course",
        "description": "Learn Go",
        "channelId": "chan-1",
        "channelTitle": "GoSchool",
        "publishedAt": "2024-01-15T10:00:00Z",
        "thumbnails": {"high": {"url": "https://img.example/1.jpg"}}
      }
    },
    {
      "id": {"videoId": "vid-2"},
      "snippet": {
        "title": "Go Advanced",
        "channelId": "chan-2",
        "channelTitle": "DevAcademy",
        "publishedAt": "2024-02-01T10:00:00Z",
        "thumbnails": {"high": {"url": "https://img.example/2.jpg"}}
      }
    }
  ]
}`

const videosBody = `{
  "items": [
    {
      "id": "vid-1",
      "contentDetails": {"duration": "PT2H15M"},
      "statistics": {"viewCount": "123456"}
    }
  ]
}`

func TestYouTubeClient_Search(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		gotQuery = r.URL.Query().Get("q")
		assert.Equal(t, "video", r.URL.Query().Get("type"))
		assert.Equal(t, "long", r.URL.Query().Get("videoDuration"))
		assert.Equal(t, "10", r.URL.Query().Get("maxResults"))
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		w.Write([]byte(searchBody))
	}))
	defer srv.Close()

	client := NewYouTubeClientWithBaseURL("test-key", srv.URL, nil)
	items := client.Search(context.Background(), "golang", 10)

	assert.Equal(t, "golang full course tutorial", gotQuery)
	assert.Len(t, items, 2)
	assert.Equal(t, "vid-1", items[0].VideoID)
	assert.Equal(t, "Go Full Course", items[0].Title)
	assert.Equal(t, "chan-1", items[0].ChannelID)
	assert.Equal(t, "GoSchool", items[0].ChannelTitle)
	assert.Equal(t, "https://img.example/1.jpg", items[0].Thumbnail)
	assert.Equal(t, "vid-2", items[1].VideoID)
}

func TestYouTubeClient_SearchFailsSoft(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusForbidden)
	}))
	defer srv.Close()

	client := NewYouTubeClientWithBaseURL("test-key", srv.URL, nil)
	items := client.Search(context.Background(), "golang", 10)

	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestYouTubeClient_VideoDetails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/videos", r.URL.Path)
		assert.Equal(t, "vid-1,vid-2", r.URL.Query().Get("id"))
		assert.Equal(t, "contentDetails,statistics", r.URL.Query().Get("part"))
		w.Write([]byte(videosBody))
	}))
	defer srv.Close()

	client := NewYouTubeClientWithBaseURL("test-key", srv.URL, nil)
	items := client.VideoDetails(context.Background(), []string{"vid-1", "vid-2"})

	assert.Len(t, items, 1)
	assert.Equal(t, "vid-1", items[0].ID)
	assert.Equal(t, "PT2H15M", items[0].Duration)
	assert.Equal(t, "123456", items[0].ViewCount)
}

func TestYouTubeClient_VideoDetailsEmptyInput(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(videosBody))
	}))
	defer srv.Close()

	client := NewYouTubeClientWithBaseURL("test-key", srv.URL, nil)
	items := client.VideoDetails(context.Background(), nil)

	assert.Empty(t, items)
	assert.Zero(t, calls)
}
