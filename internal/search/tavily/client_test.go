package tavily

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Lry0305/insurtech-insight/internal/search"
)

func TestSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req apiRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "保险科技", req.Query)
		require.Equal(t, "news", req.Topic)

		json.NewEncoder(w).Encode(apiResponse{
			Results: []apiResult{
				{Title: "众安半年报", URL: "https://example.com/a", Content: "正文", PublishedDate: "2024-08-20"},
			},
		})
	}))
	defer srv.Close()

	c := NewClientWithBaseURL("test-key", srv.URL)
	resp, err := c.Search(context.Background(), &search.Request{Query: "保险科技", Topic: "news", MaxResults: 5})

	require.NoError(t, err)
	require.Len(t, resp.Results, 1)
	require.Equal(t, "众安半年报", resp.Results[0].Title)
	require.Equal(t, "2024-08-20", resp.Results[0].PublishedDate)
}

func TestSearchAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClientWithBaseURL("test-key", srv.URL)
	_, err := c.Search(context.Background(), &search.Request{Query: "数字保险"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "429")
}
