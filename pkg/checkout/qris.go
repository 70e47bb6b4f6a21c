package checkout

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// QRISPayload is a renderable QR payment code: the EMV-style data
// string embedding the amount, a reference for reconciliation, and a
// URL serving the code image.
type QRISPayload struct {
	Reference string
	Data      string
	ImageURL  string
}

// QRISGenerator obtains a QR payment code for an amount.
type QRISGenerator interface {
	Generate(ctx context.Context, amount float64) (*QRISPayload, error)
}

// SimulatedQRIS builds payloads locally as a stand-in for a real
// payment gateway.
type SimulatedQRIS struct {
	// Merchant appears in the payload merchant-name field.
	Merchant string
	// City appears in the payload city field.
	City string
}

func (g SimulatedQRIS) Generate(ctx context.Context, amount float64) (*QRISPayload, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if amount <= 0 {
		return nil, fmt.Errorf("qris amount must be positive, got %v", amount)
	}

	merchant := g.Merchant
	if merchant == "" {
		merchant = "TOKO DEMO"
	}
	city := g.City
	if city == "" {
		city = "JAKARTA"
	}

	value := strconv.FormatFloat(amount, 'f', -1, 64)
	data := fmt.Sprintf(
		"00020101021226660014ID.CO.QRIS.WWW0215ID2022040800000330303UME51440014ID.CO.TELKOM.WWW021801234567890123456789520454995303360540%s5802ID59%02d%s60%02d%s61051234062070703A0163040C79",
		value, len(merchant), merchant, len(city), city,
	)

	return &QRISPayload{
		Reference: newQRISReference(),
		Data:      data,
		ImageURL:  "https://api.qrserver.com/v1/create-qr-code/?size=200x200&data=" + url.QueryEscape(data),
	}, nil
}

func newQRISReference() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
