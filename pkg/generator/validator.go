package generator

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/shouni/go-course-kit/pkg/domain"
	"github.com/shouni/go-course-kit/pkg/prompts"
	"github.com/shouni/go-course-kit/pkg/task"
)

// ValidationBatchSize は同時に判定にかける問題数の上限です。
// バリデーターのバックエンドはパイプライン中で最も高価かつレート制限の厳しい呼び出しのため、
// ここだけ明示的な同時実行上限を設けます。
const ValidationBatchSize = 5

// QuestionValidator は、生成済みの全問題を固定サイズのバッチに分割し、
// バッチ内は並列・バッチ間は逐次で品質判定を行うフィルター工程です。
//
// 方針:
//   - 深刻度 HIGH と判定された問題は結果から除外します（FILTERED。エラーではなく正常系）。
//   - 判定バックエンド自体が失敗した問題はそのまま残します（FAIL-OPEN）。
//     壊れた品質ゲートが静かにクイズを縮めてはならないための、生成工程とは逆向きの
//     意図的な非対称です。
//   - 残す問題は一切変更しません。除外か素通しのみです。
type QuestionValidator struct {
	composer *Composer
	judge    task.Task[domain.Question, domain.ValidationVerdict]
}

// NewQuestionValidator は QuestionValidator の新しいインスタンスを初期化します。
func NewQuestionValidator(composer *Composer) *QuestionValidator {
	v := &QuestionValidator{composer: composer}
	v.judge = task.New("question_validate", v.judgeQuestion)
	return v
}

// Execute は全問題を判定し、残った問題を元の順序のまま返します。
// この工程がワークフローを失敗させることはありません。
func (v *QuestionValidator) Execute(ctx context.Context, questions []domain.Question) []domain.Question {
	slog.InfoContext(ctx, "Starting batched question validation",
		"questions", len(questions), "batch_size", ValidationBatchSize)

	keep := make([]bool, len(questions))
	for i := range keep {
		keep[i] = true
	}

	for start := 0; start < len(questions); start += ValidationBatchSize {
		end := start + ValidationBatchSize
		if end > len(questions) {
			end = len(questions)
		}

		// 判定失敗は FAIL-OPEN でローカルに吸収するため、eg.Go は常に nil を返します。
		// errgroup はバッチの合流のみに使います。
		eg, egCtx := errgroup.WithContext(ctx)
		for i := start; i < end; i++ {
			i := i
			eg.Go(func() error {
				logger := slog.With("question_index", i, "topic", questions[i].Topic)

				verdict, err := v.judge.Invoke(egCtx, questions[i])
				if err != nil {
					logger.Warn("品質判定バックエンドが失敗したため問題をそのまま残します", "error", err)
					return nil
				}

				if verdict.Severity == domain.SeverityHigh {
					keep[i] = false
					logger.Info("Question dropped by validator", "issues", verdict.Issues)
					return nil
				}

				if len(verdict.Issues) > 0 {
					logger.Info("Question passed with issues",
						"severity", verdict.Severity, "issues", verdict.Issues)
				}
				return nil
			})
		}
		_ = eg.Wait()
	}

	kept := make([]domain.Question, 0, len(questions))
	for i, q := range questions {
		if keep[i] {
			kept = append(kept, q)
		}
	}

	slog.InfoContext(ctx, "Question validation completed",
		"kept", len(kept), "dropped", len(questions)-len(kept))
	return kept
}

// judgeQuestion は1問の品質判定をバックエンドに依頼します。
func (v *QuestionValidator) judgeQuestion(ctx context.Context, q domain.Question) (domain.ValidationVerdict, error) {
	systemPrompt, userPrompt, schemaHint := prompts.BuildValidationPrompts(q)

	var verdict domain.ValidationVerdict
	if err := v.composer.Completer.Complete(ctx, systemPrompt, userPrompt, schemaHint, &verdict); err != nil {
		return domain.ValidationVerdict{}, err
	}
	return verdict, nil
}
