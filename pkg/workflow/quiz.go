package workflow

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shouni/go-course-kit/pkg/domain"
)

// QuizWorkflow は、コース素材から検証済みクイズを組み立てるオーケストレーターです。
//
// 失敗方針:
//   - プランナーと問題生成の失敗は致命的で、部分成果物は返しません。
//   - 品質判定は FILTERED / FAIL-OPEN のみで、この工程がワークフローを失敗させることはありません。
type QuizWorkflow struct {
	planner   QuizPlanner
	questions QuestionExpander
	filter    QuestionFilter
}

// NewQuizWorkflow は全工程を注入して初期化します。いずれかが nil の場合はエラーを返します。
func NewQuizWorkflow(planner QuizPlanner, questions QuestionExpander, filter QuestionFilter) (*QuizWorkflow, error) {
	if planner == nil || questions == nil || filter == nil {
		return nil, fmt.Errorf("QuizWorkflow の全工程が必須です")
	}
	return &QuizWorkflow{planner: planner, questions: questions, filter: filter}, nil
}

// quizState は工程間で受け渡す中間生成物です。
type quizState struct {
	input     domain.QuizGenerationInput
	outline   domain.QuizOutline
	questions []domain.Question
	result    domain.GeneratedQuiz
}

// Run はクイズ生成ワークフローを実行し、検証済みのクイズを返します。
func (w *QuizWorkflow) Run(ctx context.Context, input domain.QuizGenerationInput) (domain.GeneratedQuiz, error) {
	state := &quizState{input: input}

	phases := []phaseDescriptor[quizState]{
		{name: PhasePlanning, run: w.runPlanning},
		{name: PhaseQuestionGeneration, run: w.runQuestionGeneration},
		{name: PhaseValidation, run: w.runValidation},
		{name: PhaseAssembly, run: w.runAssembly},
	}

	if err := runPhases(ctx, phases, state); err != nil {
		return domain.GeneratedQuiz{}, err
	}

	slog.InfoContext(ctx, "Quiz workflow completed",
		"title", state.result.Title, "questions", len(state.result.Questions))
	return state.result, nil
}

func (w *QuizWorkflow) runPlanning(ctx context.Context, state *quizState) error {
	outline, err := w.planner.Run(ctx, state.input)
	if err != nil {
		return err
	}
	state.outline = outline
	return nil
}

func (w *QuizWorkflow) runQuestionGeneration(ctx context.Context, state *quizState) error {
	questions, err := w.questions.Execute(ctx, state.outline, state.input)
	if err != nil {
		return err
	}
	state.questions = questions
	return nil
}

func (w *QuizWorkflow) runValidation(ctx context.Context, state *quizState) error {
	state.questions = w.filter.Execute(ctx, state.questions)
	return nil
}

func (w *QuizWorkflow) runAssembly(_ context.Context, state *quizState) error {
	state.result = domain.GeneratedQuiz{
		Title:            state.outline.Title,
		Description:      state.outline.Description,
		PassingScore:     state.outline.PassingScore,
		TimeLimitMinutes: state.outline.TimeLimitMinutes,
		ShuffleQuestions: state.outline.ShuffleQuestions,
		ShuffleOptions:   state.outline.ShuffleOptions,
		Questions:        state.questions,
	}
	return nil
}
