package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/shouni/go-course-kit/pkg/domain"
)

// captureWriter は書き込まれた内容をメモリに保持するスタブなのだ。
type captureWriter struct {
	files map[string]string
	mimes map[string]string
	err   error
}

func newCaptureWriter() *captureWriter {
	return &captureWriter{files: map[string]string{}, mimes: map[string]string{}}
}

func (w *captureWriter) Write(ctx context.Context, path string, data io.Reader, mimeType string) error {
	if w.err != nil {
		return w.err
	}
	content, err := io.ReadAll(data)
	if err != nil {
		return err
	}
	w.files[path] = string(content)
	w.mimes[path] = mimeType
	return nil
}

func publishedCourse() domain.GeneratedCourse {
	duration := 10
	return domain.GeneratedCourse{
		Title:       "Kubernetes入門",
		Description: "最初の一歩",
		Category:    "infrastructure",
		Level:       "beginner",
		Thumbnail:   "output/thumbnail.png",
		Chapters: []domain.Chapter{
			{
				Title:    "Pods",
				Position: 1,
				Lessons: []domain.Lesson{
					{
						Title:    "Lifecycle",
						Position: 1,
						VideoURL: "https://www.youtube.com/watch?v=abc",
						Duration: &duration,
						Content:  "# Podとは\n- 最小のデプロイ単位",
					},
				},
			},
		},
	}
}

func publishedQuiz() domain.GeneratedQuiz {
	return domain.GeneratedQuiz{
		Title:            "確認テスト",
		Description:      "章末チェック",
		PassingScore:     70,
		TimeLimitMinutes: 15,
		Questions: []domain.Question{
			{
				Text:               "Podの説明として正しいものは？",
				Options:            []string{"VMである", "最小のデプロイ単位である", "ノードである"},
				CorrectAnswerIndex: 1,
				Explanation:        "PodはKubernetesの最小のデプロイ単位です。",
				Difficulty:         domain.DifficultyEasy,
				Topic:              "Pods",
			},
		},
	}
}

func TestCoursePublisher_PublishCourse(t *testing.T) {
	ctx := context.Background()

	t.Run("JSONとMarkdownが出力ディレクトリに書き出されるのだ", func(t *testing.T) {
		writer := newCaptureWriter()
		p := NewCoursePublisher(writer, nil)

		result, err := p.PublishCourse(ctx, publishedCourse(), Options{OutputDir: "output"})
		if err != nil {
			t.Fatalf("想定外のエラーなのだ: %v", err)
		}
		if result.JSONPath == "" || result.MarkdownPath == "" {
			t.Fatalf("両形式のパスが返るべきなのだ: %+v", result)
		}
		if result.HTMLPath != "" {
			t.Error("htmlRunner未設定ならHTMLは書かれないのだ")
		}

		var decoded domain.GeneratedCourse
		if err := json.Unmarshal([]byte(writer.files[result.JSONPath]), &decoded); err != nil {
			t.Fatalf("JSONとして読み戻せるべきなのだ: %v", err)
		}
		if decoded.Title != "Kubernetes入門" || len(decoded.Chapters) != 1 {
			t.Errorf("JSONが成果物を保存すべきなのだ: %+v", decoded)
		}
		if got := writer.mimes[result.JSONPath]; !strings.HasPrefix(got, "application/json") {
			t.Errorf("JSONのMIMEタイプが正しくないのだ: %q", got)
		}
	})

	t.Run("Markdownにはチャプター階層と動画リンクが含まれるのだ", func(t *testing.T) {
		writer := newCaptureWriter()
		p := NewCoursePublisher(writer, nil)

		result, err := p.PublishCourse(ctx, publishedCourse(), Options{OutputDir: "output"})
		if err != nil {
			t.Fatal(err)
		}
		md := writer.files[result.MarkdownPath]
		for _, want := range []string{
			"# Kubernetes入門",
			"## 1. Pods",
			"### 1.1 Lifecycle",
			"https://www.youtube.com/watch?v=abc",
			"![thumbnail](output/thumbnail.png)",
		} {
			if !strings.Contains(md, want) {
				t.Errorf("Markdownに %q が含まれるべきなのだ", want)
			}
		}
	})

	t.Run("書き込み失敗はエラーとして伝播するのだ", func(t *testing.T) {
		writer := newCaptureWriter()
		writer.err = fmt.Errorf("disk full")
		p := NewCoursePublisher(writer, nil)

		if _, err := p.PublishCourse(ctx, publishedCourse(), Options{OutputDir: "output"}); err == nil {
			t.Fatal("エラーが返るべきなのだ")
		}
	})
}

func TestCoursePublisher_PublishQuiz(t *testing.T) {
	ctx := context.Background()

	t.Run("Markdownには正解マーカーと解説が含まれるのだ", func(t *testing.T) {
		writer := newCaptureWriter()
		p := NewCoursePublisher(writer, nil)

		result, err := p.PublishQuiz(ctx, publishedQuiz(), Options{OutputDir: "output"})
		if err != nil {
			t.Fatalf("想定外のエラーなのだ: %v", err)
		}
		md := writer.files[result.MarkdownPath]
		for _, want := range []string{
			"# 確認テスト",
			"## Q1. Podの説明として正しいものは？",
			"- [x] 最小のデプロイ単位である",
			"- [ ] VMである",
			"解説: PodはKubernetesの最小のデプロイ単位です。",
		} {
			if !strings.Contains(md, want) {
				t.Errorf("Markdownに %q が含まれるべきなのだ", want)
			}
		}
	})

	t.Run("JSONは読み戻すと同じクイズになるのだ", func(t *testing.T) {
		writer := newCaptureWriter()
		p := NewCoursePublisher(writer, nil)

		result, err := p.PublishQuiz(ctx, publishedQuiz(), Options{OutputDir: "output"})
		if err != nil {
			t.Fatal(err)
		}

		var decoded domain.GeneratedQuiz
		if err := json.Unmarshal([]byte(writer.files[result.JSONPath]), &decoded); err != nil {
			t.Fatalf("JSONとして読み戻せるべきなのだ: %v", err)
		}
		if decoded.PassingScore != 70 || len(decoded.Questions) != 1 {
			t.Errorf("JSONが成果物を保存すべきなのだ: %+v", decoded)
		}
	})
}
