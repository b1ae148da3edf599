package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/patrickmn/go-cache"
)

const (
	youtubeSearchEndpoint = "https://www.googleapis.com/youtube/v3/search"
	youtubeWatchURLFormat = "https://www.youtube.com/watch?v=%s"

	videoCacheExpiration      = 30 * time.Minute
	videoCacheCleanupInterval = 1 * time.Hour
)

// VideoSearcher は動画検索サービスの契約です。マッチした動画 URL のリストを返し、
// いかなる失敗でもエラーは返さず空のリストを返します。
type VideoSearcher interface {
	SearchVideos(ctx context.Context, query string, maxResults int) []string
}

// HTTPDoer は HTTP リクエストを実行する最小の契約です。
// go-http-kit のクライアントがこれを満たします。
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// YouTubeSearcher は YouTube Data API v3 を用いた VideoSearcher の実装です。
// 同一クエリの結果はキャッシュし、バックエンドへの呼び出しを抑えます。
type YouTubeSearcher struct {
	client      HTTPDoer
	apiKey      string
	searchCache *cache.Cache
}

// NewYouTubeSearcher は依存関係を注入して初期化します。
func NewYouTubeSearcher(client HTTPDoer, apiKey string) (*YouTubeSearcher, error) {
	if client == nil {
		return nil, fmt.Errorf("client は必須です")
	}
	return &YouTubeSearcher{
		client:      client,
		apiKey:      apiKey,
		searchCache: cache.New(videoCacheExpiration, videoCacheCleanupInterval),
	}, nil
}

// youtubeSearchResponse は検索 API 応答のうち必要なフィールドだけを写し取ります。
type youtubeSearchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
	} `json:"items"`
}

// SearchVideos はクエリに一致する動画の視聴 URL を最大 maxResults 件返します。
// API キー未設定・通信失敗・応答不正のいずれの場合も警告ログを残して空のリストを返します。
func (s *YouTubeSearcher) SearchVideos(ctx context.Context, query string, maxResults int) []string {
	if s.apiKey == "" {
		slog.DebugContext(ctx, "YouTube APIキーが未設定のため動画検索をスキップします")
		return nil
	}
	if maxResults <= 0 {
		return nil
	}

	cacheKey := fmt.Sprintf("%s|%d", query, maxResults)
	if cached, ok := s.searchCache.Get(cacheKey); ok {
		return cached.([]string)
	}

	urls := s.search(ctx, query, maxResults)
	if urls != nil {
		s.searchCache.Set(cacheKey, urls, cache.DefaultExpiration)
	}
	return urls
}

func (s *YouTubeSearcher) search(ctx context.Context, query string, maxResults int) []string {
	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("type", "video")
	params.Set("q", query)
	params.Set("maxResults", strconv.Itoa(maxResults))
	params.Set("key", s.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, youtubeSearchEndpoint+"?"+params.Encode(), nil)
	if err != nil {
		slog.WarnContext(ctx, "動画検索リクエストの構築に失敗しました", "error", err)
		return nil
	}

	resp, err := s.client.Do(req)
	if err != nil {
		slog.WarnContext(ctx, "動画検索リクエストに失敗しました", "query", query, "error", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slog.WarnContext(ctx, "動画検索APIがエラーを返しました", "query", query, "status", resp.StatusCode)
		return nil
	}

	var parsed youtubeSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		slog.WarnContext(ctx, "動画検索応答の解析に失敗しました", "query", query, "error", err)
		return nil
	}

	urls := make([]string, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		if item.ID.VideoID == "" {
			continue
		}
		urls = append(urls, fmt.Sprintf(youtubeWatchURLFormat, item.ID.VideoID))
	}
	return urls
}
