package prompts

import (
	"fmt"
	"strings"

	"github.com/shouni/go-course-kit/pkg/domain"
)

const (
	courseOutlineSystemPrompt = `You are an expert curriculum designer.
You plan practical, well-structured online courses for self-learners.`

	// CourseOutlineSchemaHint はコース構成案の期待スキーマです。
	CourseOutlineSchemaHint = `{
  "title": "string",
  "description": "string (2-3 sentences)",
  "category": "string",
  "level": "beginner | intermediate | advanced",
  "thumbnail_prompt": "string (an image generation prompt for the course thumbnail)",
  "chapters": [
    {"title": "string", "position": 1}
  ]
}`

	chapterSystemPrompt = `You are an expert instructor writing course content.
Every lesson body MUST be GitHub-flavored Markdown with headings, lists and
fenced code blocks where appropriate. Never return flat unstructured prose
and never use any other markup dialect.`

	// ChapterSchemaHint はチャプター展開の期待スキーマです。
	ChapterSchemaHint = `{
  "title": "string",
  "position": 1,
  "lessons": [
    {
      "title": "string",
      "position": 1,
      "duration": 10,
      "content": "string (Markdown body of the lesson)"
    }
  ]
}`
)

// BuildCourseOutlinePrompts はトピックからコース構成案を生成させるプロンプト一式を構築します。
func BuildCourseOutlinePrompts(topic string) (systemPrompt, userPrompt, schemaHint string) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Design a course outline for the topic: %q\n\n", topic))
	sb.WriteString("### REQUIREMENTS ###\n")
	sb.WriteString(fmt.Sprintf("- The course MUST contain between %d and %d chapters.\n",
		domain.MinChaptersPerCourse, domain.MaxChaptersPerCourse))
	sb.WriteString("- Chapter positions are 1-indexed and strictly sequential.\n")
	sb.WriteString("- Chapters progress from fundamentals to advanced usage.\n")
	sb.WriteString("- thumbnail_prompt describes a single clean illustration, no text in the image.\n")

	return courseOutlineSystemPrompt, sb.String(), CourseOutlineSchemaHint
}

// BuildChapterPrompts は1つのチャプター骨子をレッスン付きの完全なチャプターへ
// 展開させるプロンプト一式を構築します。
func BuildChapterPrompts(courseTitle string, stub domain.ChapterStub) (systemPrompt, userPrompt, schemaHint string) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Course: %q\n", courseTitle))
	sb.WriteString(fmt.Sprintf("Write the full content for chapter %d: %q\n\n", stub.Position, stub.Title))
	sb.WriteString("### REQUIREMENTS ###\n")
	sb.WriteString(fmt.Sprintf("- The chapter MUST contain between %d and %d lessons.\n",
		domain.MinLessonsPerChapter, domain.MaxLessonsPerChapter))
	sb.WriteString("- Lesson positions are 1-indexed and strictly sequential within the chapter.\n")
	sb.WriteString("- duration is the estimated reading time in minutes.\n")
	sb.WriteString(fmt.Sprintf("- Keep position = %d for the chapter itself.\n", stub.Position))

	return chapterSystemPrompt, sb.String(), ChapterSchemaHint
}
