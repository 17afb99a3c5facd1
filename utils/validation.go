// utils/validation.go
package utils

import (
	"regexp"
	"strings"
)

// ValidatePhone checks if a phone number is in a valid international format
func ValidatePhone(phone string) bool {
	cleaned := cleanPhone(phone)

	// Regular expression for international phone numbers
	// Allows + prefix followed by 7-15 digits
	regex := `^\+?[1-9]\d{1,14}$`
	match, _ := regexp.MatchString(regex, cleaned)
	return match
}

// IsPlaceholderPhone reports whether the number is one of the shop's own
// numbers, which staff enter as a placeholder when a customer has no phone.
func IsPlaceholderPhone(phone string, shopPhones []string) bool {
	cleaned := cleanPhone(phone)
	if cleaned == "" {
		return true
	}
	for _, shopPhone := range shopPhones {
		if shopPhone != "" && cleaned == cleanPhone(shopPhone) {
			return true
		}
	}
	return false
}

func cleanPhone(phone string) string {
	cleaned := strings.ReplaceAll(phone, " ", "")
	cleaned = strings.ReplaceAll(cleaned, "-", "")
	cleaned = strings.ReplaceAll(cleaned, "(", "")
	cleaned = strings.ReplaceAll(cleaned, ")", "")
	return cleaned
}
