package publisher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/shouni/go-remote-io/pkg/remoteio"
	"github.com/shouni/go-text-format/pkg/md2htmlrunner"

	"github.com/shouni/go-course-kit/pkg/asset"
	"github.com/shouni/go-course-kit/pkg/domain"
)

// Options はパブリッシュ動作を制御する設定項目です。
type Options struct {
	OutputDir string
}

// PublishResult はパブリッシュ処理の結果として生成されたファイルの情報を保持します。
type PublishResult struct {
	JSONPath     string // 構造化成果物の JSON のパス
	MarkdownPath string // 人間が読むための Markdown のパス
	HTMLPath     string // HTML 変換結果のパス（htmlRunner 未設定時は空）
}

const (
	jsonMimeType     = "application/json; charset=utf-8"
	markdownMimeType = "text/markdown; charset=utf-8"
	htmlMimeType     = "text/html; charset=utf-8"
)

// CoursePublisher は成果物の永続化とフォーマット変換を担います。
// JSON は下流システムへの受け渡し用、Markdown と HTML はレビュー用です。
type CoursePublisher struct {
	writer     remoteio.OutputWriter
	htmlRunner md2htmlrunner.Runner
}

// NewCoursePublisher creates and returns a new instance of CoursePublisher with the specified writer and HTML runner.
func NewCoursePublisher(writer remoteio.OutputWriter, htmlRunner md2htmlrunner.Runner) *CoursePublisher {
	return &CoursePublisher{
		writer:     writer,
		htmlRunner: htmlRunner,
	}
}

// PublishCourse はコース成果物を JSON・Markdown・HTML の3形式で書き出すのだ！
func (p *CoursePublisher) PublishCourse(ctx context.Context, course domain.GeneratedCourse, opts Options) (PublishResult, error) {
	content := p.buildCourseMarkdown(course)
	return p.publish(ctx, course.Title, course, content, asset.DefaultCourseJSON, asset.DefaultCourseMarkdown, opts)
}

// PublishQuiz はクイズ成果物を JSON・Markdown・HTML の3形式で書き出すのだ！
func (p *CoursePublisher) PublishQuiz(ctx context.Context, quiz domain.GeneratedQuiz, opts Options) (PublishResult, error) {
	content := p.buildQuizMarkdown(quiz)
	return p.publish(ctx, quiz.Title, quiz, content, asset.DefaultQuizJSON, asset.DefaultQuizMarkdown, opts)
}

// publish は成果物の書き出しの共通経路です。JSON → Markdown → HTML の順に書き、
// 途中で失敗した場合はそこまでの結果を添えてエラーを返します。
func (p *CoursePublisher) publish(
	ctx context.Context,
	title string,
	artifact any,
	markdownContent string,
	jsonName, markdownName string,
	opts Options,
) (PublishResult, error) {
	result := PublishResult{}

	jsonPath, err := asset.ResolveOutputPath(opts.OutputDir, jsonName)
	if err != nil {
		return result, fmt.Errorf("出力パスの解決に失敗しました: %w", err)
	}
	markdownPath, err := asset.ResolveOutputPath(opts.OutputDir, markdownName)
	if err != nil {
		return result, fmt.Errorf("出力パスの解決に失敗しました: %w", err)
	}

	payload, err := json.MarshalIndent(artifact, "", "  ")
	if err != nil {
		return result, fmt.Errorf("成果物のJSONエンコードに失敗しました: %w", err)
	}
	if err := p.writer.Write(ctx, jsonPath, bytes.NewReader(payload), jsonMimeType); err != nil {
		return result, fmt.Errorf("JSONファイルの書き込みに失敗しました: %w", err)
	}
	result.JSONPath = jsonPath

	if err := p.writer.Write(ctx, markdownPath, strings.NewReader(markdownContent), markdownMimeType); err != nil {
		return result, fmt.Errorf("markdownファイルの書き込みに失敗しました: %w", err)
	}
	result.MarkdownPath = markdownPath

	if p.htmlRunner != nil {
		slog.Info("Converting to HTML", "title", title)
		htmlBuffer, err := p.htmlRunner.Run(ctx, title, []byte(markdownContent))
		if err != nil {
			return result, fmt.Errorf("HTMLの変換に失敗しました: %w", err)
		}

		htmlPath := strings.TrimSuffix(markdownPath, filepath.Ext(markdownPath)) + ".html"
		if err := p.writer.Write(ctx, htmlPath, htmlBuffer, htmlMimeType); err != nil {
			return result, fmt.Errorf("HTMLファイルの書き込みに失敗しました: %w", err)
		}
		result.HTMLPath = htmlPath
	}

	return result, nil
}

// buildCourseMarkdown returns the Markdown content for the specified course.
func (p *CoursePublisher) buildCourseMarkdown(course domain.GeneratedCourse) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# %s\n\n", course.Title))
	if course.Description != "" {
		sb.WriteString(course.Description + "\n\n")
	}
	if course.Category != "" || course.Level != "" {
		sb.WriteString(fmt.Sprintf("- category: %s\n- level: %s\n\n", course.Category, course.Level))
	}
	if course.Thumbnail != "" {
		sb.WriteString(fmt.Sprintf("![thumbnail](%s)\n\n", course.Thumbnail))
	}

	for _, ch := range course.Chapters {
		sb.WriteString(fmt.Sprintf("## %d. %s\n\n", ch.Position, ch.Title))
		for _, lesson := range ch.Lessons {
			sb.WriteString(fmt.Sprintf("### %d.%d %s\n\n", ch.Position, lesson.Position, lesson.Title))
			if lesson.VideoURL != "" {
				sb.WriteString(fmt.Sprintf("動画: %s\n\n", lesson.VideoURL))
			}
			if lesson.Duration != nil {
				sb.WriteString(fmt.Sprintf("目安時間: %d分\n\n", *lesson.Duration))
			}
			sb.WriteString(strings.TrimSpace(lesson.Content))
			sb.WriteString("\n\n")
		}
	}
	return sb.String()
}

// buildQuizMarkdown returns the Markdown content for the specified quiz.
func (p *CoursePublisher) buildQuizMarkdown(quiz domain.GeneratedQuiz) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# %s\n\n", quiz.Title))
	if quiz.Description != "" {
		sb.WriteString(quiz.Description + "\n\n")
	}
	sb.WriteString(fmt.Sprintf("- 合格点: %d点\n", quiz.PassingScore))
	if quiz.TimeLimitMinutes > 0 {
		sb.WriteString(fmt.Sprintf("- 制限時間: %d分\n", quiz.TimeLimitMinutes))
	}
	sb.WriteString(fmt.Sprintf("- 問題数: %d問\n\n", len(quiz.Questions)))

	for i, q := range quiz.Questions {
		sb.WriteString(fmt.Sprintf("## Q%d. %s\n\n", i+1, q.Text))
		for j, opt := range q.Options {
			marker := " "
			if j == q.CorrectAnswerIndex {
				marker = "x"
			}
			sb.WriteString(fmt.Sprintf("- [%s] %s\n", marker, opt))
		}
		sb.WriteString(fmt.Sprintf("\n解説: %s\n", q.Explanation))
		sb.WriteString(fmt.Sprintf("（難易度: %s / トピック: %s）\n\n", q.Difficulty, q.Topic))
	}
	return sb.String()
}
