package store

import "time"

// GORM models used for persistence.
type BRDModel struct {
	ID            string `gorm:"primaryKey"`
	Title         string
	Content       string `gorm:"type:text"`
	Transcription string `gorm:"type:text"`
	ExtraNotes    string `gorm:"type:text"`
	FinalDocPath  string
	Language      string    `gorm:"default:en"`
	CreatedAt     time.Time `gorm:"not null"`
}

func (BRDModel) TableName() string { return "brds" }

type ChatMessageModel struct {
	ID        string `gorm:"primaryKey"`
	BRDID     string `gorm:"column:brd_id;not null;index"`
	Role      string    `gorm:"not null"`
	Content   string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"not null;index"`
}

func (ChatMessageModel) TableName() string { return "chat_messages" }

// SchemaMigration records an applied migration step.
type SchemaMigration struct {
	ID        string    `gorm:"primaryKey"`
	AppliedAt time.Time `gorm:"not null"`
}

func (SchemaMigration) TableName() string { return "schema_migrations" }
