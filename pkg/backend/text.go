package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/shouni/go-gemini-client/pkg/gemini"
)

var jsonBlockRegex = regexp.MustCompile("(?s)```(?:json)?\\s*(.*\\S)\\s*```")

// TextCompleter は、スキーマ制約付きの構造化出力を返すテキスト補完サービスの契約です。
// out には期待する形の構造体へのポインタを渡します。応答がスキーマに沿わない場合は
// エラーを返し、out の内容は保証されません。
type TextCompleter interface {
	Complete(ctx context.Context, systemPrompt, userPrompt, schemaHint string, out any) error
}

// GeminiCompleter は Gemini API を用いた TextCompleter の実装です。
// スキーマはプロンプトに埋め込み、応答から JSON を抽出してデコードします。
type GeminiCompleter struct {
	client gemini.GenerativeModel
	model  string
}

// NewGeminiCompleter は依存関係を注入して初期化します。
func NewGeminiCompleter(client gemini.GenerativeModel, model string) (*GeminiCompleter, error) {
	if client == nil {
		return nil, fmt.Errorf("client は必須です")
	}
	if model == "" {
		return nil, fmt.Errorf("model は必須です")
	}
	return &GeminiCompleter{client: client, model: model}, nil
}

// Complete は Gemini API を呼び出し、応答の JSON を out にデコードします。
func (c *GeminiCompleter) Complete(ctx context.Context, systemPrompt, userPrompt, schemaHint string, out any) error {
	finalPrompt := buildStructuredPrompt(systemPrompt, userPrompt, schemaHint)

	slog.InfoContext(ctx, "TextCompleter: Calling Gemini API", "model", c.model)
	resp, err := c.client.GenerateContent(ctx, finalPrompt, c.model)
	if err != nil {
		return fmt.Errorf("テキスト生成に失敗しました: %w", err)
	}

	return DecodeModelJSON(resp.Text, out)
}

// buildStructuredPrompt はシステム指示・ユーザー指示・出力スキーマを1つのプロンプトに結合します。
// 一部のバックエンドはトップレベルの配列スキーマを拒否するため、スキーマヒント側で
// 常にオブジェクトでラップした形を指定します。
func buildStructuredPrompt(systemPrompt, userPrompt, schemaHint string) string {
	var sb strings.Builder
	sb.WriteString(systemPrompt)
	sb.WriteString("\n\n")
	sb.WriteString(userPrompt)
	sb.WriteString("\n\n### OUTPUT FORMAT ###\n")
	sb.WriteString("Respond with a single JSON object exactly matching this shape. ")
	sb.WriteString("No commentary, no markdown outside the JSON.\n")
	sb.WriteString(schemaHint)
	return sb.String()
}

// DecodeModelJSON は AI 応答のテキストから JSON を抽出し、out にデコードします。
// コードフェンス付き・裸の JSON・前後に説明文が混ざった応答のいずれにも対応します。
func DecodeModelJSON(raw string, out any) error {
	raw = strings.TrimSpace(raw)
	var rawJSON string

	matches := jsonBlockRegex.FindStringSubmatch(raw)
	if len(matches) > 1 {
		rawJSON = matches[1]
	} else {
		// Fallback 1: Find the outermost JSON object.
		firstBracket := strings.Index(raw, "{")
		lastBracket := strings.LastIndex(raw, "}")
		if firstBracket != -1 && lastBracket != -1 && lastBracket > firstBracket {
			rawJSON = raw[firstBracket : lastBracket+1]
		} else {
			// Fallback 2: Assume the entire response is JSON.
			rawJSON = raw
		}
	}

	if err := json.Unmarshal([]byte(rawJSON), out); err != nil {
		return fmt.Errorf("AIからの応答に含まれるJSONの解析に失敗しました (応答抜粋: %q): %w", truncateString(raw, 200), err)
	}
	return nil
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
