package builder

import (
	"context"
	"fmt"

	"github.com/shouni/go-course-kit/pkg/publisher"
	"github.com/shouni/go-course-kit/pkg/workflow"

	"github.com/shouni/go-gemini-client/pkg/gemini"
	"github.com/shouni/go-text-format/pkg/builder"
	"google.golang.org/genai"
)

// BuildWorkflowManager はコース/クイズ両ワークフローのファクトリを構築します。
func BuildWorkflowManager(appCtx *AppContext) (*workflow.Manager, error) {
	manager, err := workflow.NewManager(workflow.ManagerArgs{
		Config:     appCtx.Config.EngineConfig(),
		HTTPClient: appCtx.httpClient,
		AIClient:   appCtx.aiClient,
		Writer:     appCtx.Writer,
	})
	if err != nil {
		return nil, fmt.Errorf("ワークフローマネージャの構築に失敗したのだ: %w", err)
	}
	return manager, nil
}

// BuildPublisher は成果物の保存と変換を行うパブリッシャーを構築します。
func BuildPublisher(appCtx *AppContext) (*publisher.CoursePublisher, error) {
	config := builder.BuilderConfig{
		EnableHardWraps: true,
		Mode:            "webtoon",
	}
	appBuilder, err := builder.NewBuilder(config)
	if err != nil {
		return nil, fmt.Errorf("アプリケーションビルダーの初期化に失敗しました: %w", err)
	}

	md2htmlRunner, err := appBuilder.BuildRunner()
	if err != nil {
		return nil, fmt.Errorf("MarkdownToHtmlRunnerの初期化に失敗しました: %w", err)
	}

	return publisher.NewCoursePublisher(appCtx.Writer, md2htmlRunner), nil
}

// InitializeAIClient は gemini クライアントを初期化します。
func InitializeAIClient(ctx context.Context, apiKey string) (gemini.GenerativeModel, error) {
	const defaultGeminiTemperature = float32(0.2)
	clientConfig := gemini.Config{
		APIKey:      apiKey,
		Temperature: genai.Ptr(defaultGeminiTemperature),
	}
	aiClient, err := gemini.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("AIクライアントの初期化に失敗しました: %w", err)
	}
	return aiClient, nil
}
