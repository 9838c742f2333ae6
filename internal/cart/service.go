package cart

import (
	"context"
	"errors"

	"storefront/internal/session"
)

// Service はセッションストアに載ったカートの読み書き。
// 1セッションのリクエストは直列に処理される前提なので、ロックは持たない。
type Service struct {
	store session.Store
}

func NewService(store session.Store) *Service {
	return &Service{store: store}
}

// Load はセッションからカートを復元する。値が無ければ空カート。
// 壊れた値は捨てて空カートから始めるが、黙って消さずに
// フラッシュメッセージでユーザーに伝える。
func (s *Service) Load(ctx context.Context, sessionID string) (*Cart, error) {
	raw, err := s.store.Get(ctx, sessionID, session.KeyCart)
	if errors.Is(err, session.ErrNotFound) {
		return New(), nil
	}
	if err != nil {
		return nil, err
	}

	c, err := Decode(raw)
	if err != nil {
		//復元できない値を残しても毎回ここに来るだけ
		_ = s.store.Delete(ctx, sessionID, session.KeyCart)
		_ = session.AddFlash(ctx, s.store, sessionID, "Your cart could not be restored and has been reset.")
		return New(), nil
	}
	return c, nil
}

func (s *Service) Save(ctx context.Context, sessionID string, c *Cart) error {
	raw, err := c.Encode()
	if err != nil {
		return err
	}
	return s.store.Set(ctx, sessionID, session.KeyCart, raw)
}

// Add は数量を1増やして保存する。
func (s *Service) Add(ctx context.Context, sessionID string, productID int64) error {
	c, err := s.Load(ctx, sessionID)
	if err != nil {
		return err
	}
	c.Add(productID)
	return s.Save(ctx, sessionID, c)
}

// Remove は明細ごと消して保存する。元々無くてもエラーにしない。
func (s *Service) Remove(ctx context.Context, sessionID string, productID int64) error {
	c, err := s.Load(ctx, sessionID)
	if err != nil {
		return err
	}
	c.Remove(productID)
	return s.Save(ctx, sessionID, c)
}

// Snapshot は現在のカート内容を返す。
func (s *Service) Snapshot(ctx context.Context, sessionID string) (Snapshot, error) {
	c, err := s.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return c.Snapshot(), nil
}

// Clear はカートを空にする。チェックアウト確定後にだけ呼ぶ。
func (s *Service) Clear(ctx context.Context, sessionID string) error {
	return s.store.Delete(ctx, sessionID, session.KeyCart)
}
