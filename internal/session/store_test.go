package session_test

import (
	"context"
	"testing"

	"storefront/internal/session"

	"github.com/stretchr/testify/assert"
)

type mapStore struct {
	data map[string]map[string]string
}

func newMapStore() *mapStore {
	return &mapStore{data: map[string]map[string]string{}}
}

func (s *mapStore) Get(ctx context.Context, sessionID string, key string) (string, error) {
	v, ok := s.data[sessionID][key]
	if !ok {
		return "", session.ErrNotFound
	}
	return v, nil
}

func (s *mapStore) Set(ctx context.Context, sessionID string, key string, value string) error {
	if s.data[sessionID] == nil {
		s.data[sessionID] = map[string]string{}
	}
	s.data[sessionID][key] = value
	return nil
}

func (s *mapStore) Delete(ctx context.Context, sessionID string, key string) error {
	delete(s.data[sessionID], key)
	return nil
}

func TestFlash_PopReturnsAndClears(t *testing.T) {
	ctx := context.Background()
	s := newMapStore()

	assert.NoError(t, session.AddFlash(ctx, s, "sid-1", "Item added to cart!"))
	assert.NoError(t, session.AddFlash(ctx, s, "sid-1", "Item added to cart!"))

	msgs, err := session.PopFlashes(ctx, s, "sid-1")
	assert.NoError(t, err)
	assert.Equal(t, []string{"Item added to cart!", "Item added to cart!"}, msgs)

	//2回目は空
	msgs, err = session.PopFlashes(ctx, s, "sid-1")
	assert.NoError(t, err)
	assert.Equal(t, []string{}, msgs)
}

func TestFlash_EmptySession(t *testing.T) {
	msgs, err := session.PopFlashes(context.Background(), newMapStore(), "sid-1")
	assert.NoError(t, err)
	assert.Equal(t, []string{}, msgs)
}

func TestFlash_CorruptValueReadsAsEmpty(t *testing.T) {
	ctx := context.Background()
	s := newMapStore()
	assert.NoError(t, s.Set(ctx, "sid-1", session.KeyFlash, "{{{not json"))

	msgs, err := session.PopFlashes(ctx, s, "sid-1")
	assert.NoError(t, err)
	assert.Equal(t, []string{}, msgs)
}
