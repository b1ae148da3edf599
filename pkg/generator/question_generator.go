package generator

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/shouni/go-course-kit/pkg/domain"
	"github.com/shouni/go-course-kit/pkg/prompts"
	"github.com/shouni/go-course-kit/pkg/task"
)

// questionInput は1トピック分の問題生成タスクへの入力です。
type questionInput struct {
	Topic      domain.TopicStub
	Difficulty domain.Difficulty
	Excerpt    string
}

// questionListResponse は問題リストの応答スキーマです。
// トップレベル配列を拒否するバックエンドがあるため、オブジェクトでラップされています。
type questionListResponse struct {
	Questions []domain.Question `json:"questions"`
}

// QuestionGenerator は、クイズ構成案の全トピックを並列で候補問題リストへ展開します。
// あるトピックの問題が欠けると要求問題数の契約が守れないため、1トピックの失敗は
// 縮退ではなくワークフロー全体の失敗として扱います。
type QuestionGenerator struct {
	composer     *Composer
	excerptLimit int
	generate     task.Task[questionInput, []domain.Question]
}

// NewQuestionGenerator は QuestionGenerator の新しいインスタンスを初期化します。
// excerptLimit はバックエンドへ渡すレッスン抜粋の最大バイト数です。
func NewQuestionGenerator(composer *Composer, excerptLimit int) *QuestionGenerator {
	g := &QuestionGenerator{composer: composer, excerptLimit: excerptLimit}
	g.generate = task.New("question_generate", g.generateQuestions)
	return g
}

// Execute は、並列処理を用いて全トピックの候補問題を生成し、
// トピックの並び順を保ったまま1つのリストへ平坦化して返します。
func (g *QuestionGenerator) Execute(ctx context.Context, outline domain.QuizOutline, input domain.QuizGenerationInput) ([]domain.Question, error) {
	slog.InfoContext(ctx, "Starting parallel question generation", "topics", len(outline.Topics))

	perTopic := make([][]domain.Question, len(outline.Topics))
	eg, egCtx := errgroup.WithContext(ctx)

	for i, topic := range outline.Topics {
		i, topic := i, topic
		eg.Go(func() error {
			if err := g.composer.RateLimiter.Wait(egCtx); err != nil {
				return err
			}

			logger := slog.With("topic", topic.Name, "target", topic.TargetQuestionCount)
			logger.Info("Starting question generation")

			startTime := time.Now()
			questions, err := g.generate.Invoke(egCtx, questionInput{
				Topic:      topic,
				Difficulty: input.Difficulty,
				Excerpt:    relevantExcerpt(input.Materials, topic.KeyPoints, g.excerptLimit),
			})
			if err != nil {
				return fmt.Errorf("topic %q question generation failed: %w", topic.Name, err)
			}

			logger.Info("Question generation completed",
				"count", len(questions), "duration", time.Since(startTime).Round(time.Millisecond))
			perTopic[i] = questions
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	var questions []domain.Question
	for _, qs := range perTopic {
		questions = append(questions, qs...)
	}
	return questions, nil
}

// generateQuestions は1トピック分の候補問題を生成し、各問題の構造契約を検査します。
// 目標数未満しか返らなかった場合は契約違反として失敗します。
func (g *QuestionGenerator) generateQuestions(ctx context.Context, in questionInput) ([]domain.Question, error) {
	systemPrompt, userPrompt, schemaHint := prompts.BuildQuestionPrompts(in.Topic, in.Difficulty, in.Excerpt)

	var resp questionListResponse
	if err := g.composer.Completer.Complete(ctx, systemPrompt, userPrompt, schemaHint, &resp); err != nil {
		return nil, err
	}

	if len(resp.Questions) < in.Topic.TargetQuestionCount {
		return nil, fmt.Errorf("生成された問題数 %d がトピック %q の目標 %d に届きません",
			len(resp.Questions), in.Topic.Name, in.Topic.TargetQuestionCount)
	}

	for i := range resp.Questions {
		resp.Questions[i].Topic = in.Topic.Name
		if err := resp.Questions[i].Validate(); err != nil {
			return nil, fmt.Errorf("トピック %q の問題 %d が契約を満たしません: %w", in.Topic.Name, i+1, err)
		}
	}
	return resp.Questions, nil
}

// relevantExcerpt は、キーポイントを含む段落を優先してレッスン素材から抜粋を組み立て、
// limit バイトに収めます。キーポイントに一致する段落がなければ素材全体を先頭から使います。
func relevantExcerpt(materials []domain.ChapterMaterial, keyPoints []string, limit int) string {
	var sb strings.Builder

	lowered := make([]string, 0, len(keyPoints))
	for _, point := range keyPoints {
		if trimmed := strings.TrimSpace(point); trimmed != "" {
			lowered = append(lowered, strings.ToLower(trimmed))
		}
	}

	appendParagraph := func(text string) bool {
		if limit > 0 && sb.Len()+len(text) > limit {
			remaining := limit - sb.Len()
			if remaining > 0 {
				sb.WriteString(text[:remaining])
			}
			return false
		}
		sb.WriteString(text)
		sb.WriteString("\n\n")
		return true
	}

	// 1周目: キーポイントを含む段落のみ
	if len(lowered) > 0 {
		for _, material := range materials {
			for _, paragraph := range strings.Split(material.LessonText, "\n\n") {
				loweredParagraph := strings.ToLower(paragraph)
				for _, point := range lowered {
					if strings.Contains(loweredParagraph, point) {
						if !appendParagraph(paragraph) {
							return sb.String()
						}
						break
					}
				}
			}
		}
	}

	// 2周目: 抜粋が空なら素材全体を先頭から詰める
	if sb.Len() == 0 {
		for _, material := range materials {
			if !appendParagraph(material.LessonText) {
				break
			}
		}
	}

	return strings.TrimSpace(sb.String())
}
