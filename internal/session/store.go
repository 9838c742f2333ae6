package session

import (
	"context"
	"encoding/json"
	"errors"
)

var ErrNotFound = errors.New("session key not found")

// セッションごとのkey-valueストアの約束。
// 値は不透明な文字列（JSONなど）で、解釈は呼び出し側がする。
type Store interface {
	Get(ctx context.Context, sessionID string, key string) (string, error)
	Set(ctx context.Context, sessionID string, key string, value string) error
	Delete(ctx context.Context, sessionID string, key string) error
}

const (
	KeyCart  = "cart"
	KeyFlash = "flash"
)

// AddFlash はフラッシュメッセージを1件積む。
func AddFlash(ctx context.Context, s Store, sessionID string, msg string) error {
	msgs, err := peekFlashes(ctx, s, sessionID)
	if err != nil {
		return err
	}
	msgs = append(msgs, msg)

	b, err := json.Marshal(msgs)
	if err != nil {
		return err
	}
	return s.Set(ctx, sessionID, KeyFlash, string(b))
}

// PopFlashes は溜まっているメッセージを返して消す。
func PopFlashes(ctx context.Context, s Store, sessionID string) ([]string, error) {
	msgs, err := peekFlashes(ctx, s, sessionID)
	if err != nil {
		return nil, err
	}
	if len(msgs) == 0 {
		return []string{}, nil
	}
	if err := s.Delete(ctx, sessionID, KeyFlash); err != nil {
		return nil, err
	}
	return msgs, nil
}

func peekFlashes(ctx context.Context, s Store, sessionID string) ([]string, error) {
	raw, err := s.Get(ctx, sessionID, KeyFlash)
	if errors.Is(err, ErrNotFound) {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}

	var msgs []string
	if err := json.Unmarshal([]byte(raw), &msgs); err != nil {
		//壊れた値は捨てて空扱い
		return []string{}, nil
	}
	return msgs, nil
}
