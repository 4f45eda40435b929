package service

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

type QRGenerator interface {
	Generate(qrCode string) ([]byte, error)
}

// DefaultQRGenerator renders the scan URL for a table as a PNG.
type DefaultQRGenerator struct {
	BaseURL string
}

func (g DefaultQRGenerator) Generate(code string) ([]byte, error) {
	qrData := fmt.Sprintf("%s/t/%s", g.BaseURL, code)
	return qrcode.Encode(qrData, qrcode.Medium, 256)
}
