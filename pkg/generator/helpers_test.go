package generator

import (
	"context"
	"encoding/json"
	"sync"

	"golang.org/x/time/rate"

	"github.com/shouni/go-course-kit/pkg/backend"
)

// fakeCompleter は、呼び出しごとの挙動を関数で差し替えられる決定論的スタブなのだ。
// 同時実行数の観測もできるようにしてあるのだ。
type fakeCompleter struct {
	mu         sync.Mutex
	calls      int
	inFlight   int
	maxInFlight int
	respond    func(systemPrompt, userPrompt string, out any) error
}

func (f *fakeCompleter) Complete(ctx context.Context, systemPrompt, userPrompt, schemaHint string, out any) error {
	f.mu.Lock()
	f.calls++
	f.inFlight++
	if f.inFlight > f.maxInFlight {
		f.maxInFlight = f.inFlight
	}
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.inFlight--
		f.mu.Unlock()
	}()

	return f.respond(systemPrompt, userPrompt, out)
}

// respondJSON は固定のJSONをデコードして返すヘルパーなのだ。
func respondJSON(payload string) func(string, string, any) error {
	return func(_, _ string, out any) error {
		return json.Unmarshal([]byte(payload), out)
	}
}

type fakeImageGen struct {
	url   string
	calls int
}

func (f *fakeImageGen) GenerateImage(ctx context.Context, prompt string) string {
	f.calls++
	return f.url
}

type fakeVideoSearcher struct {
	mu      sync.Mutex
	results map[string][]string
	queries []string
}

func (f *fakeVideoSearcher) SearchVideos(ctx context.Context, query string, maxResults int) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, query)
	return f.results[query]
}

func newTestComposer(completer backend.TextCompleter, img backend.ImageGenerator, video backend.VideoSearcher) *Composer {
	if img == nil {
		img = &fakeImageGen{}
	}
	if video == nil {
		video = &fakeVideoSearcher{}
	}
	c, err := NewComposer(completer, img, video, rate.NewLimiter(rate.Inf, 1))
	if err != nil {
		panic(err)
	}
	return c
}
