package types

import (
	"time"
)

// TtsCacheEntry memoizes synthesized audio per normalized (lowercased,
// trimmed) term. Re-synthesis overwrites the row wholesale.
type TtsCacheEntry struct {
	Term      string    `gorm:"primaryKey;column:term" json:"term"`
	AudioData []byte    `gorm:"not null;column:audio_data" json:"-"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime;column:created_at" json:"created_at"`
}

func (TtsCacheEntry) TableName() string {
	return "tts_cache"
}
