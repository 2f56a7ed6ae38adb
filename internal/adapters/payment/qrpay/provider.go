// Package qrpay renders static scan-to-pay QR codes for priced registrations.
package qrpay

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/skip2/go-qrcode"

	"eventregistration/internal/domain"
)

const (
	contentType = "image/png"
	defaultSize = 256
)

type provider struct {
	payee string
	size  int
}

// NewProvider returns a ScanToPayProvider encoding payments to payee. The payee
// is a payment URI such as the organizer's wallet link; amount, currency and a
// reference are appended as query parameters.
func NewProvider(payee string, size int) (domain.ScanToPayProvider, error) {
	if payee == "" {
		return nil, errors.New("scan-to-pay payee is required")
	}
	if _, err := url.Parse(payee); err != nil {
		return nil, fmt.Errorf("parse scan-to-pay payee: %w", err)
	}
	if size <= 0 {
		size = defaultSize
	}
	return &provider{payee: payee, size: size}, nil
}

func (p *provider) DisplayAsset(ctx context.Context, req domain.ScanToPayRequest) (*domain.DisplayAsset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if req.Amount <= 0 {
		return nil, fmt.Errorf("scan-to-pay amount must be positive, got %d", req.Amount)
	}

	payload, err := p.payload(req)
	if err != nil {
		return nil, err
	}
	png, err := qrcode.Encode(payload, qrcode.Medium, p.size)
	if err != nil {
		return nil, fmt.Errorf("encode qr code: %w", err)
	}
	return &domain.DisplayAsset{
		ContentType: contentType,
		DataURI:     "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(png),
		Payload:     payload,
	}, nil
}

func (p *provider) payload(req domain.ScanToPayRequest) (string, error) {
	u, err := url.Parse(p.payee)
	if err != nil {
		return "", fmt.Errorf("parse scan-to-pay payee: %w", err)
	}
	q := u.Query()
	q.Set("amount", strconv.FormatInt(req.Amount, 10))
	q.Set("currency", req.Currency)
	q.Set("ref", req.EventID+":"+req.UserID)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
