package model

import "time"

// セッションのkey-valueストア。
// カートやフラッシュメッセージをJSON文字列で持つ。
// セッションの寿命が尽きたら行ごと消える想定。
type SessionRecord struct {
	SessionID string    `gorm:"type:uuid;primaryKey" json:"session_id"`
	Key       string    `gorm:"type:varchar(50);primaryKey" json:"key"`
	Value     string    `gorm:"type:text;not null" json:"value"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
