package store

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// migration is one ordered, idempotent schema step. Applied steps are
// recorded in schema_migrations so each runs at most once per database.
type migration struct {
	id  string
	run func(db *gorm.DB) error
}

var migrations = []migration{
	{
		id: "001_create_brds",
		run: func(db *gorm.DB) error {
			return db.Exec(`CREATE TABLE IF NOT EXISTS brds (
				id TEXT PRIMARY KEY,
				title TEXT,
				content TEXT,
				transcription TEXT,
				extra_notes TEXT,
				final_doc_path TEXT,
				created_at DATETIME NOT NULL
			)`).Error
		},
	},
	{
		id: "002_create_chat_messages",
		run: func(db *gorm.DB) error {
			if err := db.Exec(`CREATE TABLE IF NOT EXISTS chat_messages (
				id TEXT PRIMARY KEY,
				brd_id TEXT NOT NULL,
				role TEXT NOT NULL,
				content TEXT NOT NULL,
				created_at DATETIME NOT NULL,
				FOREIGN KEY(brd_id) REFERENCES brds(id)
			)`).Error; err != nil {
				return err
			}
			return db.Exec(`CREATE INDEX IF NOT EXISTS idx_chat_messages_brd_id ON chat_messages(brd_id)`).Error
		},
	},
	{
		id: "003_add_brd_language",
		run: func(db *gorm.DB) error {
			if db.Migrator().HasColumn(&BRDModel{}, "language") {
				return nil
			}
			return db.Exec(`ALTER TABLE brds ADD COLUMN language TEXT DEFAULT 'en'`).Error
		},
	},
}

// migrate applies pending migrations in order.
func migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&SchemaMigration{}); err != nil {
		return fmt.Errorf("init schema_migrations: %w", err)
	}
	for _, m := range migrations {
		var count int64
		if err := db.Model(&SchemaMigration{}).Where("id = ?", m.id).Count(&count).Error; err != nil {
			return fmt.Errorf("check migration %s: %w", m.id, err)
		}
		if count > 0 {
			continue
		}
		if err := m.run(db); err != nil {
			return fmt.Errorf("apply migration %s: %w", m.id, err)
		}
		record := SchemaMigration{ID: m.id, AppliedAt: time.Now().UTC()}
		if err := db.Create(&record).Error; err != nil {
			return fmt.Errorf("record migration %s: %w", m.id, err)
		}
	}
	return nil
}
