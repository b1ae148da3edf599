package workflow

import (
	"context"

	"github.com/shouni/go-course-kit/pkg/domain"
)

// CoursePlanner はトピックからコース構成案を生成するプランナー工程の契約です。
type CoursePlanner interface {
	Run(ctx context.Context, topic string) (domain.CourseOutline, error)
}

// ChapterExpander は構成案の全チャプターをレッスン付きの完全なチャプターへ展開する契約です。
type ChapterExpander interface {
	Execute(ctx context.Context, outline domain.CourseOutline) ([]domain.Chapter, error)
}

// ThumbnailTask はサムネイル画像を生成し URL を返す契約です。
// 失敗時は空文字列に縮退し、エラーは返しません。
type ThumbnailTask interface {
	Execute(ctx context.Context, prompt string) string
}

// VideoTask は全レッスンに動画 URL を付与するエンリッチメント工程の契約です。
// 見つからないレッスンは無変更のまま残り、エラーは返しません。
type VideoTask interface {
	Execute(ctx context.Context, courseTitle string, chapters []domain.Chapter) []domain.Chapter
}

// QuizPlanner はコース素材からクイズ構成案を生成するプランナー工程の契約です。
type QuizPlanner interface {
	Run(ctx context.Context, input domain.QuizGenerationInput) (domain.QuizOutline, error)
}

// QuestionExpander は構成案の全トピックから問題群を生成する契約です。
type QuestionExpander interface {
	Execute(ctx context.Context, outline domain.QuizOutline, input domain.QuizGenerationInput) ([]domain.Question, error)
}

// QuestionFilter は生成済みの問題群を品質判定し、残す問題だけを返す契約です。
// この工程がエラーを返すことはありません。
type QuestionFilter interface {
	Execute(ctx context.Context, questions []domain.Question) []domain.Question
}
