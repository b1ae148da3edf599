package workflow

import (
	"fmt"

	"github.com/shouni/go-gemini-client/pkg/gemini"
	"github.com/shouni/go-http-kit/pkg/httpkit"
	"github.com/shouni/go-remote-io/pkg/remoteio"
	"golang.org/x/time/rate"

	"github.com/shouni/go-course-kit/pkg/backend"
	"github.com/shouni/go-course-kit/pkg/config"
	"github.com/shouni/go-course-kit/pkg/generator"
	"github.com/shouni/go-course-kit/pkg/runner"
)

// ManagerArgs は Manager の生成に必要な外部依存をまとめた引数です。
type ManagerArgs struct {
	Config     config.Config
	HTTPClient httpkit.ClientInterface
	AIClient   gemini.GenerativeModel
	Writer     remoteio.OutputWriter
}

// Manager は設定と外部クライアントから各ワークフローを組み立てるファクトリです。
// 組み立てたワークフロー間でアダプターとレートリミッターを共有します。
type Manager struct {
	cfg      config.Config
	composer *generator.Composer
}

// NewManager は外部依存を検証し、バックエンドアダプターを初期化して返します。
func NewManager(args ManagerArgs) (*Manager, error) {
	if args.HTTPClient == nil {
		return nil, fmt.Errorf("HTTPClient は必須です")
	}
	if args.AIClient == nil {
		return nil, fmt.Errorf("AIClient は必須です")
	}
	if args.Writer == nil {
		return nil, fmt.Errorf("Writer は必須です")
	}

	completer, err := backend.NewGeminiCompleter(args.AIClient, args.Config.GeminiModel)
	if err != nil {
		return nil, fmt.Errorf("テキスト補完アダプターの初期化に失敗しました: %w", err)
	}

	thumbnailer, err := backend.NewGeminiThumbnailer(
		args.HTTPClient, args.AIClient, args.Config.ImageModel, args.Writer, args.Config.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("サムネイルアダプターの初期化に失敗しました: %w", err)
	}

	searcher, err := backend.NewYouTubeSearcher(args.HTTPClient, args.Config.YouTubeAPIKey)
	if err != nil {
		return nil, fmt.Errorf("動画検索アダプターの初期化に失敗しました: %w", err)
	}

	limit := rate.Inf
	if args.Config.RateInterval > 0 {
		limit = rate.Every(args.Config.RateInterval)
	}

	composer, err := generator.NewComposer(completer, thumbnailer, searcher, rate.NewLimiter(limit, 1))
	if err != nil {
		return nil, fmt.Errorf("Composerの初期化に失敗しました: %w", err)
	}

	return &Manager{cfg: args.Config, composer: composer}, nil
}

// BuildCourseWorkflow はコース生成ワークフローを組み立てて返します。
func (m *Manager) BuildCourseWorkflow() (*CourseWorkflow, error) {
	return NewCourseWorkflow(
		runner.NewCourseOutlineRunner(m.composer.Completer),
		generator.NewChapterGenerator(m.composer),
		generator.NewThumbnailGenerator(m.composer),
		generator.NewVideoEnricher(m.composer, m.cfg.MaxVideoResults),
	)
}

// BuildQuizWorkflow はクイズ生成ワークフローを組み立てて返します。
func (m *Manager) BuildQuizWorkflow() (*QuizWorkflow, error) {
	return NewQuizWorkflow(
		runner.NewQuizOutlineRunner(m.composer.Completer),
		generator.NewQuestionGenerator(m.composer, m.cfg.ExcerptLimit),
		generator.NewQuestionValidator(m.composer),
	)
}
