// Package webhook verifies the authenticity of inbound platform webhooks.
//
// The platform signs each delivery with HMAC-SHA256 over
// "<webhook-id>.<webhook-timestamp>.<body>" and sends the base64 signature in
// the webhook-signature header as "<version>,<signature>".
package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// Header names used by the platform's webhook deliveries.
const (
	HeaderWebhookID        = "webhook-id"
	HeaderWebhookTimestamp = "webhook-timestamp"
	HeaderWebhookSignature = "webhook-signature"
)

var (
	ErrInvalidSignatureFormat = errors.New("invalid signature format")
	ErrInvalidSignature       = errors.New("invalid webhook signature")
)

// Headers carries the three signature-relevant headers of one delivery.
type Headers struct {
	WebhookID string
	Timestamp string
	Signature string
}

// Verifier checks webhook signatures. A Verifier built without a secret is
// explicitly disabled and accepts every request; that permissive state exists
// for environments where no shared secret has been provisioned, and callers
// can detect it through Enabled.
type Verifier struct {
	secret []byte
}

func NewVerifier(secret string) *Verifier {
	if secret == "" {
		return &Verifier{}
	}
	return &Verifier{secret: []byte(secret)}
}

// Enabled reports whether signatures are actually checked.
func (v *Verifier) Enabled() bool {
	return len(v.secret) > 0
}

// Verify validates the request body against the signature headers and returns
// the delivery's webhook id. Verification is skipped when the verifier is
// disabled or the request carries no signature header at all.
func (v *Verifier) Verify(body []byte, h Headers) (string, error) {
	if !v.Enabled() || h.Signature == "" {
		return h.WebhookID, nil
	}

	// Header format is "<version>,<base64 signature>", e.g. "v1,K5oZ...".
	version, signature, found := strings.Cut(h.Signature, ",")
	if !found {
		return "", ErrInvalidSignatureFormat
	}
	_ = version

	expected := v.sign(body, h.WebhookID, h.Timestamp)
	if !hmac.Equal([]byte(signature), []byte(expected)) {
		return "", ErrInvalidSignature
	}

	return h.WebhookID, nil
}

// sign computes the base64-encoded HMAC-SHA256 of the signed content
// "<webhook-id>.<timestamp>.<body>".
func (v *Verifier) sign(body []byte, webhookID, timestamp string) string {
	signedContent := fmt.Sprintf("%s.%s.%s", webhookID, timestamp, body)
	mac := hmac.New(sha256.New, v.secret)
	mac.Write([]byte(signedContent))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// Sign produces a valid signature header value for the given delivery. Used
// by tests and by local tooling that replays captured webhooks.
func (v *Verifier) Sign(body []byte, webhookID, timestamp string) string {
	return "v1," + v.sign(body, webhookID, timestamp)
}
