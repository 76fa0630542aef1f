package views

import (
	"errors"
	"fmt"

	"github.com/hance08/qwallet/internal/ui"
	"github.com/pterm/pterm"
	qrcode "github.com/skip2/go-qrcode"
)

// ReceiveQR encodes address as a QR code drawn with half-block characters.
func ReceiveQR(address string) (string, error) {
	if address == "" {
		return "", errors.New("no address to encode")
	}
	qr, err := qrcode.New(address, qrcode.Medium)
	if err != nil {
		return "", fmt.Errorf("encode address: %w", err)
	}
	return qr.ToSmallString(false), nil
}

func RenderReceiveQR(address string) error {
	code, err := ReceiveQR(address)
	if err != nil {
		return err
	}
	ui.PrintL2Title("Receive")
	fmt.Print(code)
	pterm.Println(address)
	return nil
}
