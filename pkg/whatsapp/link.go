package whatsapp

import (
	"fmt"
	"net/url"
	"strings"
)

const DefaultLinkBase = "https://wa.me"

// Link builds a click-to-chat deep link for the given phone and prefilled message.
// The phone must be digits only (country code included, no "+").
func Link(base, phone, message string) (string, error) {
	if base == "" {
		base = DefaultLinkBase
	}
	digits := strings.TrimSpace(phone)
	if digits == "" {
		return "", fmt.Errorf("whatsapp phone is required")
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return "", fmt.Errorf("whatsapp phone must contain digits only, got %q", phone)
		}
	}

	q := url.Values{}
	q.Set("text", message)
	return fmt.Sprintf("%s/%s?%s", strings.TrimRight(base, "/"), digits, q.Encode()), nil
}
