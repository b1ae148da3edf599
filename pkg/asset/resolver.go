package asset

import (
	"github.com/shouni/go-utils/urlpath"
)

const (
	// DefaultCourseJSON は生成されたコース成果物のデフォルト JSON ファイル名です。
	DefaultCourseJSON = "course.json"
	// DefaultQuizJSON は生成されたクイズ成果物のデフォルト JSON ファイル名です。
	DefaultQuizJSON = "quiz.json"
	// DefaultCourseMarkdown はコースの Markdown レンダリングのデフォルトファイル名です。
	DefaultCourseMarkdown = "course.md"
	// DefaultQuizMarkdown はクイズの Markdown レンダリングのデフォルトファイル名です。
	DefaultQuizMarkdown = "quiz.md"
)

// ResolveOutputPath は、ベースとなるディレクトリパスとファイル名から、
// GCS/ローカルを考慮した最終的な出力パスを生成します。
func ResolveOutputPath(baseDir, fileName string) (string, error) {
	return urlpath.ResolveOutputPath(baseDir, fileName)
}

// ResolveBaseURL は、入力パス（URLまたはローカルパス）から
// 親ディレクトリのパスを解決し、末尾がセパレータで終わるように正規化します。
func ResolveBaseURL(rawPath string) string {
	return urlpath.ResolveBaseURL(rawPath)
}
