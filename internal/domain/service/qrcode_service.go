package service

// QRCodeService generates QR code images for booking confirmations.
type QRCodeService interface {
	// GeneratePNG encodes the content as a PNG QR code.
	GeneratePNG(content string) ([]byte, error)
}
