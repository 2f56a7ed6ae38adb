package domain

import "context"

// CheckoutSessionRequest carries what a hosted checkout session is opened for.
// EventID and UserID travel as session metadata and come back on lookup.
type CheckoutSessionRequest struct {
	EventID   string
	UserID    string
	EventName string
	Amount    int64
	Currency  string
}

// CheckoutSession is a freshly opened hosted checkout session.
type CheckoutSession struct {
	ID          string
	RedirectURL string
}

// SessionMetadata is the caller-supplied data attached to a payment session.
type SessionMetadata struct {
	EventID  string `json:"event_id"`
	UserID   string `json:"user_id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// PaymentSession is the provider's authoritative view of a session.
type PaymentSession struct {
	ID       string
	Paid     bool
	Status   string
	Metadata SessionMetadata
}

//go:generate mockgen -source=payment.go -destination=mocks/payment_mocks.go -package=mocks

// HostedCheckoutGateway opens redirect-based checkout sessions and reports their settlement.
type HostedCheckoutGateway interface {
	CreateSession(ctx context.Context, req CheckoutSessionRequest) (*CheckoutSession, error)
	// GetSession returns ErrSessionNotFound for unknown ids and *GatewayError for provider failures.
	GetSession(ctx context.Context, sessionID string) (*PaymentSession, error)
}

// ScanToPayRequest describes the amount a display asset is generated for.
type ScanToPayRequest struct {
	EventID  string
	UserID   string
	Amount   int64
	Currency string
}

// DisplayAsset is a static, scannable payment asset.
// swagger:model DisplayAsset
type DisplayAsset struct {
	ContentType string `json:"content_type"`
	DataURI     string `json:"data_uri"`
	Payload     string `json:"payload"`
}

// ScanToPayProvider produces the asset a payer scans; completion is self-reported.
type ScanToPayProvider interface {
	DisplayAsset(ctx context.Context, req ScanToPayRequest) (*DisplayAsset, error)
}

// SessionMetadataStore keeps session metadata for providers that cannot echo it back.
type SessionMetadataStore interface {
	Save(ctx context.Context, sessionID string, md SessionMetadata) error
	// Load returns ErrNotFound when nothing is stored for sessionID.
	Load(ctx context.Context, sessionID string) (*SessionMetadata, error)
}
