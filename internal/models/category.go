package models

// Зарезервированные идентификаторы категорий
const (
	// CategoryAll псевдо-категория "все заметки"; никогда не сохраняется
	// и не доступна для редактирования или удаления
	CategoryAll = "all"
	// CategoryPersonal встроенная категория "личное"
	CategoryPersonal = "personal"
	// CategoryWork встроенная категория "работа"
	CategoryWork = "work"
	// CategoryOther встроенная категория "прочее"; fallback при удалении
	// категории и при отсутствии категории у заметки
	CategoryOther = "other"
)

// Category представляет категорию заметок
type Category struct {
	ID    string `json:"id"`    // ID уникальный идентификатор категории
	Name  string `json:"name"`  // Name отображаемое название
	Color string `json:"color"` // Color hex-цвет, например "#4CAF50"
}

// BuiltinCategory сообщает, является ли id встроенной категорией,
// защищенной от удаления
func BuiltinCategory(id string) bool {
	switch id {
	case CategoryPersonal, CategoryWork, CategoryOther:
		return true
	}
	return false
}

// DefaultCategories возвращает набор категорий, создаваемый при первом
// запуске. Порядок фиксирован.
func DefaultCategories() []Category {
	return []Category{
		{ID: CategoryPersonal, Name: "Personal", Color: "#4CAF50"},
		{ID: CategoryWork, Name: "Work", Color: "#2196F3"},
		{ID: CategoryOther, Name: "Other", Color: "#9E9E9E"},
	}
}
