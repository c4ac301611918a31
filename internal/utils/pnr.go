package utils

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
)

// NewPNR returns a 10 character uppercase hex reference from 5 random bytes.
func NewPNR() (string, error) {
	b := make([]byte, 5)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return strings.ToUpper(hex.EncodeToString(b)), nil
}

// IsPNR reports whether s looks like a reference produced by NewPNR.
func IsPNR(s string) bool {
	if len(s) != 10 {
		return false
	}
	for _, c := range s {
		if !(c >= '0' && c <= '9' || c >= 'A' && c <= 'F') {
			return false
		}
	}
	return true
}
