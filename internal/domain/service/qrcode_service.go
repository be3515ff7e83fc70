package service

// QRCodeService defines the interface for generating QR code images.
type QRCodeService interface {
	// GenerateCheckoutQR encodes a checkout session URL as a PNG image.
	GenerateCheckoutQR(sessionURL string) ([]byte, error)
}
