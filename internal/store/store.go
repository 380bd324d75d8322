package store

import "brdstudio/internal/domain"

// Store defines persistence operations for BRDs and chat messages.
// Each operation maps to a single statement; there are no multi-write
// transactions.
type Store interface {
	// brds
	ListBRDs() ([]domain.BRD, error)
	GetBRD(id string) (domain.BRD, bool, error)
	CreateBRD(b domain.BRD) (domain.BRD, error)
	UpdateContent(id, content string) error
	SetFinalDocPath(id, path string) error

	// chat
	ListChat(brdID string) ([]domain.ChatMessage, error)
	AppendChat(brdID string, role domain.ChatRole, content string) (domain.ChatMessage, error)
}
