package backend

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
	"testing"
)

type fakeDoer struct {
	calls  int
	status int
	body   string
	err    error
}

func (f *fakeDoer) Do(req *http.Request) (*http.Response, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &http.Response{
		StatusCode: f.status,
		Body:       io.NopCloser(strings.NewReader(f.body)),
	}, nil
}

func TestYouTubeSearcher_SearchVideos(t *testing.T) {
	ctx := context.Background()
	searchBody := `{"items": [{"id": {"videoId": "abc123"}}, {"id": {"videoId": "def456"}}]}`

	t.Run("検索結果から視聴URLのリストを組み立てるのだ", func(t *testing.T) {
		doer := &fakeDoer{status: http.StatusOK, body: searchBody}
		s, err := NewYouTubeSearcher(doer, "test-key")
		if err != nil {
			t.Fatalf("初期化に失敗したのだ: %v", err)
		}

		got := s.SearchVideos(ctx, "kubernetes pods", 2)
		want := []string{
			"https://www.youtube.com/watch?v=abc123",
			"https://www.youtube.com/watch?v=def456",
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("期待: %v, 実際: %v", want, got)
		}
	})

	t.Run("同一クエリの2回目はキャッシュから返るのだ", func(t *testing.T) {
		doer := &fakeDoer{status: http.StatusOK, body: searchBody}
		s, _ := NewYouTubeSearcher(doer, "test-key")

		first := s.SearchVideos(ctx, "kubernetes pods", 2)
		second := s.SearchVideos(ctx, "kubernetes pods", 2)
		if doer.calls != 1 {
			t.Errorf("バックエンド呼び出しは1回のはずなのだ: %d", doer.calls)
		}
		if !reflect.DeepEqual(first, second) {
			t.Error("キャッシュされた結果が一致しないのだ")
		}
	})

	t.Run("通信エラーでは空のリストを返すのだ", func(t *testing.T) {
		doer := &fakeDoer{err: fmt.Errorf("connection refused")}
		s, _ := NewYouTubeSearcher(doer, "test-key")
		if got := s.SearchVideos(ctx, "q", 1); len(got) != 0 {
			t.Errorf("空のリストが返るべきなのだ: %v", got)
		}
	})

	t.Run("APIエラー応答でも空のリストを返すのだ", func(t *testing.T) {
		doer := &fakeDoer{status: http.StatusForbidden, body: `{"error": {}}`}
		s, _ := NewYouTubeSearcher(doer, "test-key")
		if got := s.SearchVideos(ctx, "q", 1); len(got) != 0 {
			t.Errorf("空のリストが返るべきなのだ: %v", got)
		}
	})

	t.Run("APIキーが未設定なら呼び出さずに空のリストを返すのだ", func(t *testing.T) {
		doer := &fakeDoer{status: http.StatusOK, body: searchBody}
		s, _ := NewYouTubeSearcher(doer, "")
		if got := s.SearchVideos(ctx, "q", 1); got != nil {
			t.Errorf("nilが返るべきなのだ: %v", got)
		}
		if doer.calls != 0 {
			t.Error("バックエンドが呼ばれてはいけないのだ")
		}
	})
}
