package booking

import (
	"errors"
	"strings"
)

var (
	ErrEmptyName    = errors.New("client name is required")
	ErrInvalidPhone = errors.New("phone number must contain at least 10 digits")
)

const minPhoneDigits = 10

// Contact identifies the client a booking is made for.
type Contact struct {
	name  string
	phone string
}

func NewContact(name, phone string) (Contact, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Contact{}, ErrEmptyName
	}

	phone = strings.TrimSpace(phone)
	if countDigits(phone) < minPhoneDigits {
		return Contact{}, ErrInvalidPhone
	}

	return Contact{name: name, phone: phone}, nil
}

func (c Contact) Name() string  { return c.name }
func (c Contact) Phone() string { return c.phone }

func countDigits(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}
