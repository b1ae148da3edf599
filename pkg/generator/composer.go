package generator

import (
	"fmt"

	"golang.org/x/time/rate"

	"github.com/shouni/go-course-kit/pkg/backend"
)

// Composer は、各ファンアウト工程が共有する生成バックエンドのアダプター群と
// レートリミッターを束ねます。ワークフロー実行中の可変状態は持ちません。
type Composer struct {
	Completer     backend.TextCompleter
	Thumbnailer   backend.ImageGenerator
	VideoSearcher backend.VideoSearcher
	RateLimiter   *rate.Limiter
}

// NewComposer は Composer の新しいインスタンスを初期化済みの状態で生成します。
// Thumbnailer と VideoSearcher は縮退可能な工程のためにのみ使われ、nil を許容しません。
func NewComposer(
	completer backend.TextCompleter,
	thumbnailer backend.ImageGenerator,
	videoSearcher backend.VideoSearcher,
	limiter *rate.Limiter,
) (*Composer, error) {
	if completer == nil {
		return nil, fmt.Errorf("completer は必須です")
	}
	if thumbnailer == nil {
		return nil, fmt.Errorf("thumbnailer は必須です")
	}
	if videoSearcher == nil {
		return nil, fmt.Errorf("videoSearcher は必須です")
	}
	if limiter == nil {
		limiter = rate.NewLimiter(rate.Inf, 1)
	}
	return &Composer{
		Completer:     completer,
		Thumbnailer:   thumbnailer,
		VideoSearcher: videoSearcher,
		RateLimiter:   limiter,
	}, nil
}
