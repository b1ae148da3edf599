package task

import (
	"context"
	"fmt"
)

// Task は、生成バックエンドへのちょうど1回の呼び出しを包む、名前付きで状態を持たない
// 作業単位です。入力型と出力型は固定で、呼び出し間で状態を共有しません。
// Task 自身はリトライしません。リトライ方針はアダプターまたはオーケストレーターの責務です。
type Task[I, O any] struct {
	name string
	fn   func(ctx context.Context, in I) (O, error)
}

// New は名前と関数から Task を生成します。
func New[I, O any](name string, fn func(ctx context.Context, in I) (O, error)) Task[I, O] {
	return Task[I, O]{name: name, fn: fn}
}

// Name はタスク名を返します。
func (t Task[I, O]) Name() string {
	return t.name
}

// Invoke はタスクを1回実行します。エラーにはタスク名を付与して返します。
func (t Task[I, O]) Invoke(ctx context.Context, in I) (O, error) {
	out, err := t.fn(ctx, in)
	if err != nil {
		var zero O
		return zero, fmt.Errorf("task %s: %w", t.name, err)
	}
	return out, nil
}
