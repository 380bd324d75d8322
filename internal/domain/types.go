package domain

import (
	"strings"
	"time"
)

// Language selects the prompt language and UI text direction.
type Language string

const (
	LanguageEnglish Language = "en"
	LanguageArabic  Language = "ar"
)

// ParseLanguage normalizes a language code, defaulting to English.
func ParseLanguage(s string) Language {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(LanguageArabic):
		return LanguageArabic
	default:
		return LanguageEnglish
	}
}

// ChatRole identifies who produced a chat message.
type ChatRole string

const (
	RoleUser  ChatRole = "user"
	RoleModel ChatRole = "model"
)

// BRD is one generated Business Requirements Document session.
// JSON field names follow the persisted column names so stored rows
// round-trip unchanged through the API.
type BRD struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Content       string    `json:"content"`
	Transcription string    `json:"transcription"`
	ExtraNotes    string    `json:"extra_notes"`
	FinalDocPath  string    `json:"final_doc_path"`
	Language      Language  `json:"language"`
	CreatedAt     time.Time `json:"created_at"`
}

// ChatMessage is one turn of the follow-up conversation about a BRD.
type ChatMessage struct {
	ID        string    `json:"id"`
	BRDID     string    `json:"brd_id"`
	Role      ChatRole  `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
