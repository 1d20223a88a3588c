package validation

import (
	"fmt"
	"regexp"
)

// PinPattern определяет допустимый формат PIN-кода vault:
// ровно 4 цифры
var PinPattern = regexp.MustCompile(`^[0-9]{4}$`)

// ColorPattern определяет допустимый формат цвета категории:
// hex-строка вида #RGB или #RRGGBB
var ColorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

const (
	// PinLen длина PIN-кода
	PinLen = 4
	// MaxCategoryNameLen максимальная длина названия категории
	MaxCategoryNameLen = 64
)

// ValidatePin проверяет, что PIN состоит ровно из 4 цифр
func ValidatePin(pin string) error {
	if pin == "" {
		return fmt.Errorf("pin cannot be empty")
	}

	if !PinPattern.MatchString(pin) {
		return fmt.Errorf("pin must be exactly %d digits", PinLen)
	}

	return nil
}

// ValidateCategoryName проверяет название категории
func ValidateCategoryName(name string) error {
	if name == "" {
		return fmt.Errorf("category name cannot be empty")
	}

	if len(name) > MaxCategoryNameLen {
		return fmt.Errorf("category name must not exceed %d characters", MaxCategoryNameLen)
	}

	return nil
}

// ValidateColor проверяет hex-цвет категории
func ValidateColor(color string) error {
	if color == "" {
		return fmt.Errorf("color cannot be empty")
	}

	if !ColorPattern.MatchString(color) {
		return fmt.Errorf("color must be a hex string like #4CAF50")
	}

	return nil
}
