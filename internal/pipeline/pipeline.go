package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shouni/go-course-kit/internal/builder"
	"github.com/shouni/go-course-kit/internal/config"
	"github.com/shouni/go-course-kit/pkg/domain"
	"github.com/shouni/go-course-kit/pkg/publisher"

	"github.com/shouni/go-http-kit/pkg/httpkit"
	"github.com/shouni/go-remote-io/pkg/gcsfactory"
	"github.com/shouni/go-web-exact/v2/pkg/extract"
)

// ExecuteCourse は、トピック文字列からコース一式を生成して保存するのだ。
func ExecuteCourse(ctx context.Context, cfg *config.Config) error {
	appCtx, err := setupAppContext(ctx, cfg)
	if err != nil {
		return err
	}

	manager, err := builder.BuildWorkflowManager(appCtx)
	if err != nil {
		return err
	}
	courseWorkflow, err := manager.BuildCourseWorkflow()
	if err != nil {
		return fmt.Errorf("コースワークフローの構築に失敗したのだ: %w", err)
	}

	// --- Phase 1-4: Planning → Generation → Enrichment → Assembly ---
	course, err := courseWorkflow.Run(ctx, cfg.Options.Topic)
	if err != nil {
		return fmt.Errorf("コース生成に失敗したのだ: %w", err)
	}

	// --- Publish Phase (公開/保存) ---
	if err := runPublishCourse(ctx, appCtx, course); err != nil {
		return err
	}

	slog.Info("コース生成と公開処理が完了したのだ！", "title", course.Title)
	return nil
}

// ExecuteQuiz は、コースJSONまたはWebページを素材にクイズを生成して保存するのだ。
func ExecuteQuiz(ctx context.Context, cfg *config.Config) error {
	appCtx, err := setupAppContext(ctx, cfg)
	if err != nil {
		return err
	}

	input, err := loadQuizInput(ctx, appCtx)
	if err != nil {
		return err
	}

	manager, err := builder.BuildWorkflowManager(appCtx)
	if err != nil {
		return err
	}
	quizWorkflow, err := manager.BuildQuizWorkflow()
	if err != nil {
		return fmt.Errorf("クイズワークフローの構築に失敗したのだ: %w", err)
	}

	quiz, err := quizWorkflow.Run(ctx, input)
	if err != nil {
		return fmt.Errorf("クイズ生成に失敗したのだ: %w", err)
	}

	if err := runPublishQuiz(ctx, appCtx, quiz); err != nil {
		return err
	}

	slog.Info("クイズ生成と公開処理が完了したのだ！",
		"title", quiz.Title, "questions", len(quiz.Questions))
	return nil
}

// setupAppContext は、提供された設定と共有コンポーネントを使用して、アプリケーションコンテキストを初期化して返すのだ。
// 初期化中にエラーが発生した場合は、AppContext のポインタとエラーを返すのだ。
func setupAppContext(ctx context.Context, cfg *config.Config) (*builder.AppContext, error) {
	timeout := cfg.Options.HTTPTimeout
	if timeout <= 0 {
		timeout = config.DefaultHTTPTimeout
	}
	httpClient := httpkit.New(timeout)

	aiClient, err := builder.InitializeAIClient(ctx, cfg.GeminiAPIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create ai client: %w", err)
	}

	gcsFactory, err := gcsfactory.NewGCSClientFactory(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client factory: %w", err)
	}

	reader, err := gcsFactory.NewInputReader()
	if err != nil {
		return nil, err
	}
	writer, err := gcsFactory.NewOutputWriter()
	if err != nil {
		return nil, err
	}

	appCtx := builder.NewAppContext(cfg, httpClient, aiClient, reader, writer)
	return &appCtx, nil
}

// loadQuizInput はクイズの素材を組み立てるのだ。コースJSONが指定されていればそれを、
// なければWebページの本文抽出を使うのだ。
func loadQuizInput(ctx context.Context, appCtx *builder.AppContext) (domain.QuizGenerationInput, error) {
	opts := appCtx.Options

	difficulty := domain.Difficulty(strings.ToUpper(opts.Difficulty))
	if !difficulty.Valid() {
		return domain.QuizGenerationInput{}, fmt.Errorf("難易度 %q は EASY / MEDIUM / HARD のいずれかであるべきなのだ", opts.Difficulty)
	}

	input := domain.QuizGenerationInput{
		QuestionCount: opts.QuestionCount,
		Difficulty:    difficulty,
	}

	switch {
	case opts.CourseFile != "":
		course, err := readCourseFile(ctx, appCtx, opts.CourseFile)
		if err != nil {
			return domain.QuizGenerationInput{}, err
		}
		input.CourseTitle = course.Title
		input.CourseDescription = course.Description
		input.Materials = materialsFromCourse(course)

	case opts.SourceURL != "":
		extractor, err := extract.NewExtractor(appCtx.HTTPClient())
		if err != nil {
			return domain.QuizGenerationInput{}, fmt.Errorf("エクストラクタの初期化に失敗しました: %w", err)
		}
		text, _, err := extractor.FetchAndExtractText(ctx, opts.SourceURL)
		if err != nil {
			return domain.QuizGenerationInput{}, fmt.Errorf("Webページの本文抽出に失敗したのだ: %w", err)
		}
		input.CourseTitle = opts.SourceURL
		input.Materials = []domain.ChapterMaterial{{ChapterTitle: opts.SourceURL, LessonText: text}}

	default:
		return domain.QuizGenerationInput{}, fmt.Errorf("素材（--course-file または --source-url）を指定してほしいのだ")
	}

	return input, nil
}

// readCourseFile はコースJSONを読み込んでデコードするのだ（GCS等も対応！）。
func readCourseFile(ctx context.Context, appCtx *builder.AppContext, path string) (domain.GeneratedCourse, error) {
	rc, err := appCtx.Reader.Open(ctx, path)
	if err != nil {
		return domain.GeneratedCourse{}, fmt.Errorf("コースファイル '%s' の読み込みに失敗しました: %w", path, err)
	}
	defer rc.Close()

	var course domain.GeneratedCourse
	if err := json.NewDecoder(rc).Decode(&course); err != nil {
		return domain.GeneratedCourse{}, fmt.Errorf("コースファイル '%s' のデコードに失敗しました: %w", path, err)
	}
	return course, nil
}

// materialsFromCourse はチャプターごとにレッスン本文を連結して素材化するのだ。
func materialsFromCourse(course domain.GeneratedCourse) []domain.ChapterMaterial {
	materials := make([]domain.ChapterMaterial, 0, len(course.Chapters))
	for _, ch := range course.Chapters {
		var sb strings.Builder
		for _, lesson := range ch.Lessons {
			sb.WriteString(fmt.Sprintf("## %s\n\n", lesson.Title))
			sb.WriteString(lesson.Content)
			sb.WriteString("\n\n")
		}
		materials = append(materials, domain.ChapterMaterial{
			ChapterTitle: ch.Title,
			LessonText:   sb.String(),
		})
	}
	return materials
}

// runPublishCourse はパブリッシャーを使って最終成果物を保存するのだ
func runPublishCourse(ctx context.Context, appCtx *builder.AppContext, course domain.GeneratedCourse) error {
	slog.Info("公開処理を開始するのだ...")
	pub, err := builder.BuildPublisher(appCtx)
	if err != nil {
		return fmt.Errorf("Publisherの構築に失敗したのだ: %w", err)
	}

	result, err := pub.PublishCourse(ctx, course, publisher.Options{OutputDir: appCtx.Options.OutputDir})
	if err != nil {
		return fmt.Errorf("公開処理に失敗したのだ: %w", err)
	}
	slog.Info("コースを保存したのだ", "json", result.JSONPath, "markdown", result.MarkdownPath)
	return nil
}

func runPublishQuiz(ctx context.Context, appCtx *builder.AppContext, quiz domain.GeneratedQuiz) error {
	slog.Info("公開処理を開始するのだ...")
	pub, err := builder.BuildPublisher(appCtx)
	if err != nil {
		return fmt.Errorf("Publisherの構築に失敗したのだ: %w", err)
	}

	result, err := pub.PublishQuiz(ctx, quiz, publisher.Options{OutputDir: appCtx.Options.OutputDir})
	if err != nil {
		return fmt.Errorf("公開処理に失敗したのだ: %w", err)
	}
	slog.Info("クイズを保存したのだ", "json", result.JSONPath, "markdown", result.MarkdownPath)
	return nil
}
