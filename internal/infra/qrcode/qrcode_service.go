// Package qrcode provides QR code image generation for checkout links.
package qrcode

import (
	"github.com/pkg/errors"
	qrcodegen "github.com/skip2/go-qrcode"

	"storefront/config"
	"storefront/internal/domain/service"
)

const defaultSize = 256

// qrCodeService implements the QRCodeService interface using go-qrcode.
type qrCodeService struct {
	size  int
	level qrcodegen.RecoveryLevel
}

// NewQRCodeService is the constructor for qrCodeService.
func NewQRCodeService(cfg *config.Config) service.QRCodeService {
	size := defaultSize
	level := qrcodegen.Medium

	if cfg != nil && cfg.QRCode != nil {
		if cfg.QRCode.Size > 0 {
			size = cfg.QRCode.Size
		}
		level = parseRecoveryLevel(cfg.QRCode.ErrorCorrectionLevel)
	}

	return &qrCodeService{
		size:  size,
		level: level,
	}
}

// GenerateCheckoutQR encodes a checkout session URL as a PNG image.
func (s *qrCodeService) GenerateCheckoutQR(sessionURL string) ([]byte, error) {
	if sessionURL == "" {
		return nil, errors.New("session URL must not be empty")
	}

	png, err := qrcodegen.Encode(sessionURL, s.level, s.size)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode QR code")
	}

	return png, nil
}

func parseRecoveryLevel(level string) qrcodegen.RecoveryLevel {
	switch level {
	case "low":
		return qrcodegen.Low
	case "high":
		return qrcodegen.High
	case "highest":
		return qrcodegen.Highest
	default:
		return qrcodegen.Medium
	}
}
