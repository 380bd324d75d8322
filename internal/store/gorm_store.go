package store

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"brdstudio/internal/domain"
)

// GormStore implements Store using GORM + SQLite.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore opens the database file and applies pending migrations.
func NewGormStore(dbPath string) (*GormStore, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := migrate(db); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &GormStore{db: db}, nil
}

// ListBRDs returns all BRDs ordered newest-first.
func (s *GormStore) ListBRDs() ([]domain.BRD, error) {
	var models []BRDModel
	if err := s.db.Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, err
	}
	res := make([]domain.BRD, 0, len(models))
	for _, m := range models {
		res = append(res, brdFromModel(m))
	}
	return res, nil
}

// GetBRD retrieves one BRD by id.
func (s *GormStore) GetBRD(id string) (domain.BRD, bool, error) {
	var model BRDModel
	if err := s.db.First(&model, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.BRD{}, false, nil
		}
		return domain.BRD{}, false, err
	}
	return brdFromModel(model), true, nil
}

// CreateBRD assigns an id and timestamp, inserts, and returns the stored row.
func (s *GormStore) CreateBRD(b domain.BRD) (domain.BRD, error) {
	b.ID = uuid.NewString()
	b.Language = domain.ParseLanguage(string(b.Language))
	b.CreatedAt = time.Now().UTC()
	model := brdToModel(b)
	if err := s.db.Create(&model).Error; err != nil {
		return domain.BRD{}, err
	}
	return b, nil
}

// UpdateContent replaces the document text of one BRD.
func (s *GormStore) UpdateContent(id, content string) error {
	return s.db.Model(&BRDModel{}).Where("id = ?", id).Update("content", content).Error
}

// SetFinalDocPath records the uploaded final document location.
func (s *GormStore) SetFinalDocPath(id, path string) error {
	return s.db.Model(&BRDModel{}).Where("id = ?", id).Update("final_doc_path", path).Error
}

// ListChat returns all messages for a BRD ordered oldest-first.
func (s *GormStore) ListChat(brdID string) ([]domain.ChatMessage, error) {
	var models []ChatMessageModel
	if err := s.db.Where("brd_id = ?", brdID).Order("created_at ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	res := make([]domain.ChatMessage, 0, len(models))
	for _, m := range models {
		res = append(res, chatFromModel(m))
	}
	return res, nil
}

// AppendChat assigns an id and timestamp and inserts one chat turn.
func (s *GormStore) AppendChat(brdID string, role domain.ChatRole, content string) (domain.ChatMessage, error) {
	msg := domain.ChatMessage{
		ID:        uuid.NewString(),
		BRDID:     brdID,
		Role:      role,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	model := chatToModel(msg)
	if err := s.db.Create(&model).Error; err != nil {
		return domain.ChatMessage{}, err
	}
	return msg, nil
}

func brdToModel(b domain.BRD) BRDModel {
	return BRDModel{
		ID:            b.ID,
		Title:         b.Title,
		Content:       b.Content,
		Transcription: b.Transcription,
		ExtraNotes:    b.ExtraNotes,
		FinalDocPath:  b.FinalDocPath,
		Language:      string(b.Language),
		CreatedAt:     b.CreatedAt,
	}
}

func brdFromModel(m BRDModel) domain.BRD {
	return domain.BRD{
		ID:            m.ID,
		Title:         m.Title,
		Content:       m.Content,
		Transcription: m.Transcription,
		ExtraNotes:    m.ExtraNotes,
		FinalDocPath:  m.FinalDocPath,
		Language:      domain.ParseLanguage(m.Language),
		CreatedAt:     m.CreatedAt,
	}
}

func chatToModel(msg domain.ChatMessage) ChatMessageModel {
	return ChatMessageModel{
		ID:        msg.ID,
		BRDID:     msg.BRDID,
		Role:      string(msg.Role),
		Content:   msg.Content,
		CreatedAt: msg.CreatedAt,
	}
}

func chatFromModel(m ChatMessageModel) domain.ChatMessage {
	return domain.ChatMessage{
		ID:        m.ID,
		BRDID:     m.BRDID,
		Role:      domain.ChatRole(m.Role),
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
	}
}
