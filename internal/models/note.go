package models

import "time"

// NoteType определяет тип заметки
type NoteType string

const (
	// NoteTypeText обычная текстовая заметка
	NoteTypeText NoteType = "text"
	// NoteTypeChecklist заметка-чеклист со списком пунктов
	NoteTypeChecklist NoteType = "checklist"
)

// ChecklistItem представляет один пункт чеклиста.
// Используется только для заметок с Type == NoteTypeChecklist.
type ChecklistItem struct {
	ID        string `json:"id"`        // ID уникальный идентификатор пункта (UUID)
	Text      string `json:"text"`      // Text текст пункта
	Completed bool   `json:"completed"` // Completed отмечен ли пункт выполненным
}

// Note представляет заметку пользователя.
// Заметка находится ровно в одном из трех состояний:
// активная (DeletedAt == nil, обычная коллекция), удаленная (DeletedAt != nil,
// корзина) или в хранилище vault (отдельная коллекция, см. vault пакет).
// Состояние определяется флагами и коллекцией, а не отдельными таблицами.
type Note struct {
	// CreatedAt время создания, выставляется один раз
	CreatedAt time.Time `json:"created_at"`
	// UpdatedAt обновляется при каждой мутации
	UpdatedAt time.Time `json:"updated_at"`
	// DeletedAt время мягкого удаления; nil для неудаленной заметки
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
	// Items пункты чеклиста, используется только при Type == NoteTypeChecklist
	Items      []ChecklistItem `json:"items,omitempty"`
	ID         string          `json:"id"`          // ID уникальный идентификатор заметки (UUID), неизменен после создания
	Title      string          `json:"title"`       // Title заголовок заметки
	Content    string          `json:"content"`     // Content текст, используется только при Type == NoteTypeText
	CategoryID string          `json:"category_id"` // CategoryID ссылка на категорию
	Type       NoteType        `json:"type"`        // Type тип заметки (text или checklist)
}

// Active сообщает, видна ли заметка в обычном списке
func (n *Note) Active() bool {
	return n.DeletedAt == nil
}
