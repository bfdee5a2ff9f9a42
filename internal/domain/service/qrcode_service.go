package service

// QRCodeService renders the payment-confirmation handoff link as a QR code so
// the customer can open the operator chat from another device.
type QRCodeService interface {
	// GeneratePaymentQR returns a PNG image encoding the chat link.
	GeneratePaymentQR(link string) ([]byte, error)
}
