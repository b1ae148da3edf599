package prompts

import (
	"fmt"
	"strings"

	"github.com/shouni/go-course-kit/pkg/domain"
)

const (
	validationSystemPrompt = `You are a strict quality reviewer for quiz questions.
You judge one question at a time and report concrete issues, not style preferences.`

	// ValidationSchemaHint は品質判定の期待スキーマです。
	ValidationSchemaHint = `{
  "is_valid": true,
  "issues": ["string"],
  "severity": "NONE | LOW | MEDIUM | HIGH"
}`
)

// BuildValidationPrompts は1問の品質判定を依頼するプロンプト一式を構築します。
// 判定観点は、問題文の明確さ、正解マークの正しさ、誤答選択肢のもっともらしさ、
// 曖昧さの有無、トピックとの関連性です。
func BuildValidationPrompts(q domain.Question) (systemPrompt, userPrompt, schemaHint string) {
	var sb strings.Builder
	sb.WriteString("Review the following quiz question.\n\n")
	sb.WriteString(fmt.Sprintf("Topic: %q\n", q.Topic))
	sb.WriteString(fmt.Sprintf("Question: %s\n", q.Text))
	for i, opt := range q.Options {
		marker := " "
		if i == q.CorrectAnswerIndex {
			marker = "*"
		}
		sb.WriteString(fmt.Sprintf("%s %d. %s\n", marker, i+1, opt))
	}
	sb.WriteString(fmt.Sprintf("Explanation: %s\n", q.Explanation))
	sb.WriteString("\n### JUDGE ###\n")
	sb.WriteString("- Is the question clear and unambiguous?\n")
	sb.WriteString("- Is the option marked with * actually correct?\n")
	sb.WriteString("- Are the distractors plausible but wrong?\n")
	sb.WriteString("- Is the question relevant to the topic?\n")
	sb.WriteString("\nSeverity HIGH means the question must not be shown to learners.\n")

	return validationSystemPrompt, sb.String(), ValidationSchemaHint
}
