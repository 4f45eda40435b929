package service

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"
)

// Guest-facing codes come from crypto/rand. Uniqueness is still enforced by
// the store; generation retries on collision, bounded so a broken constraint
// cannot loop forever.
const maxCodeAttempts = 5

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func randomCode(length int) (string, error) {
	var sb strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(codeAlphabet))))
		if err != nil {
			return "", fmt.Errorf("generate code: %w", err)
		}
		sb.WriteByte(codeAlphabet[n.Int64()])
	}
	return sb.String(), nil
}

// NewSessionCode returns the 6-character code guests use to identify a
// session.
func NewSessionCode() (string, error) {
	return randomCode(6)
}

// NewOrderNumber returns a short order number, unique per restaurant via the
// storage constraint.
func NewOrderNumber() (string, error) {
	code, err := randomCode(8)
	if err != nil {
		return "", err
	}
	return "ORD-" + code, nil
}

// NewJoinToken returns an opaque capability token for one guest in one
// session.
func NewJoinToken() (string, error) {
	buf := make([]byte, 24)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate join token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// NewTableQRCode returns the opaque identifier embedded in a table's printed
// QR code.
func NewTableQRCode() (string, error) {
	code, err := randomCode(10)
	if err != nil {
		return "", err
	}
	return "TBL-" + code, nil
}
