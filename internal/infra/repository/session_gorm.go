package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/model"
	"storefront/internal/session"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// session.Store のGORM実装。
// (session_id, key) 1組につき1行で、値はJSON文字列。
type SessionGormStore struct {
	db *gorm.DB
}

func NewSessionGormStore(db *gorm.DB) *SessionGormStore {
	return &SessionGormStore{db: db}
}

func (s *SessionGormStore) Get(ctx context.Context, sessionID string, key string) (string, error) {
	var rec model.SessionRecord
	err := s.db.WithContext(ctx).
		Where("session_id = ? AND key = ?", sessionID, key).
		First(&rec).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", session.ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return rec.Value, nil
}

func (s *SessionGormStore) Set(ctx context.Context, sessionID string, key string, value string) error {
	rec := model.SessionRecord{
		SessionID: sessionID,
		Key:       key,
		Value:     value,
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "session_id"}, {Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&rec).Error
}

// 無いキーの削除はno-op（カートを二重に空にしても壊れない）
func (s *SessionGormStore) Delete(ctx context.Context, sessionID string, key string) error {
	return s.db.WithContext(ctx).
		Where("session_id = ? AND key = ?", sessionID, key).
		Delete(&model.SessionRecord{}).Error
}
