package prompts

import (
	"fmt"
	"strings"

	"github.com/shouni/go-course-kit/pkg/domain"
)

const (
	quizOutlineSystemPrompt = `You are an expert assessment designer.
You break course material into coherent quiz topics and distribute questions
across them according to how much material each topic covers.`

	// QuizOutlineSchemaHint はクイズ構成案の期待スキーマです。
	QuizOutlineSchemaHint = `{
  "title": "string",
  "description": "string",
  "passing_score": 70,
  "time_limit_minutes": 20,
  "shuffle_questions": true,
  "shuffle_options": true,
  "topics": [
    {
      "name": "string",
      "target_question_count": 1,
      "key_points": ["string"]
    }
  ]
}`

	questionSystemPrompt = `You are an expert quiz writer.
Each question is multiple-choice with plausible distractors, exactly one
correct option, and a short explanation of why that option is correct.`

	// QuestionListSchemaHint は問題リストの期待スキーマです。
	// 一部のバックエンドはトップレベル配列のスキーマを拒否するため、
	// 配列は常にオブジェクトでラップします。
	QuestionListSchemaHint = `{
  "questions": [
    {
      "text": "string",
      "options": ["string (2 to 6 entries)"],
      "correct_answer_index": 0,
      "explanation": "string",
      "difficulty": "EASY | MEDIUM | HARD",
      "topic": "string"
    }
  ]
}`
)

// BuildQuizOutlinePrompts はコース素材からクイズ構成案を生成させるプロンプト一式を構築します。
func BuildQuizOutlinePrompts(input domain.QuizGenerationInput) (systemPrompt, userPrompt, schemaHint string) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Course: %q\n", input.CourseTitle))
	if input.CourseDescription != "" {
		sb.WriteString(fmt.Sprintf("Description: %s\n", input.CourseDescription))
	}
	sb.WriteString("\n### COURSE MATERIAL ###\n")
	for _, material := range input.Materials {
		sb.WriteString(fmt.Sprintf("\n## %s\n%s\n", material.ChapterTitle, material.LessonText))
	}
	sb.WriteString("\n### REQUIREMENTS ###\n")
	sb.WriteString(fmt.Sprintf("- Plan a quiz of exactly %d questions at %s difficulty.\n",
		input.QuestionCount, input.Difficulty))
	sb.WriteString(fmt.Sprintf("- The target_question_count values MUST sum to exactly %d.\n",
		input.QuestionCount))
	sb.WriteString("- key_points name the facts each topic's questions should test.\n")

	return quizOutlineSystemPrompt, sb.String(), QuizOutlineSchemaHint
}

// BuildQuestionPrompts は1トピック分の候補問題を生成させるプロンプト一式を構築します。
// excerpt にはトピックに関連するレッスン本文の抜粋を渡します。
func BuildQuestionPrompts(topic domain.TopicStub, difficulty domain.Difficulty, excerpt string) (systemPrompt, userPrompt, schemaHint string) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Topic: %q\n", topic.Name))
	if len(topic.KeyPoints) > 0 {
		sb.WriteString("Key points to cover:\n")
		for _, point := range topic.KeyPoints {
			sb.WriteString(fmt.Sprintf("- %s\n", point))
		}
	}
	if excerpt != "" {
		sb.WriteString("\n### SOURCE MATERIAL ###\n")
		sb.WriteString(excerpt)
		sb.WriteString("\n")
	}
	sb.WriteString("\n### REQUIREMENTS ###\n")
	sb.WriteString(fmt.Sprintf("- Write at least %d questions at %s difficulty.\n",
		topic.TargetQuestionCount, difficulty))
	sb.WriteString(fmt.Sprintf("- Between %d and %d options per question; correct_answer_index is 0-based.\n",
		domain.MinOptionsPerQuestion, domain.MaxOptionsPerQuestion))
	sb.WriteString(fmt.Sprintf("- Set topic to %q on every question.\n", topic.Name))

	return questionSystemPrompt, sb.String(), QuestionListSchemaHint
}
