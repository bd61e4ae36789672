package webhook

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerifyAcceptsValidSignature(t *testing.T) {
	v := NewVerifier("test-secret")
	body := []byte(`{"type":"gmail_new_message"}`)

	h := Headers{
		WebhookID: "msg_123",
		Timestamp: "1700000000",
		Signature: v.Sign(body, "msg_123", "1700000000"),
	}

	webhookID, err := v.Verify(body, h)
	assert.NoError(t, err)
	assert.Equal(t, "msg_123", webhookID)
}

func TestVerifyRejectsTamperedInput(t *testing.T) {
	v := NewVerifier("test-secret")
	body := []byte(`{"type":"gmail_new_message"}`)
	sig := v.Sign(body, "msg_123", "1700000000")

	// Any single component changing must invalidate the signature.
	cases := []struct {
		name    string
		body    []byte
		headers Headers
	}{
		{
			name:    "mutated body",
			body:    []byte(`{"type":"gmail_new_messagE"}`),
			headers: Headers{WebhookID: "msg_123", Timestamp: "1700000000", Signature: sig},
		},
		{
			name:    "mutated webhook id",
			body:    body,
			headers: Headers{WebhookID: "msg_124", Timestamp: "1700000000", Signature: sig},
		},
		{
			name:    "mutated timestamp",
			body:    body,
			headers: Headers{WebhookID: "msg_123", Timestamp: "1700000001", Signature: sig},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := v.Verify(tc.body, tc.headers)
			assert.ErrorIs(t, err, ErrInvalidSignature)
		})
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	body := []byte(`{"type":"gmail_new_message"}`)
	sig := NewVerifier("other-secret").Sign(body, "msg_123", "1700000000")

	v := NewVerifier("test-secret")
	_, err := v.Verify(body, Headers{WebhookID: "msg_123", Timestamp: "1700000000", Signature: sig})
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestVerifyRejectsMalformedSignatureHeader(t *testing.T) {
	v := NewVerifier("test-secret")

	// No comma separating version from signature.
	_, err := v.Verify([]byte("{}"), Headers{
		WebhookID: "msg_123",
		Timestamp: "1700000000",
		Signature: "v1K5oZnotavalidheader",
	})
	assert.ErrorIs(t, err, ErrInvalidSignatureFormat)
}

func TestVerifySkippedWhenDisabled(t *testing.T) {
	v := NewVerifier("")
	assert.False(t, v.Enabled())

	// Even a garbage signature passes when no secret is configured.
	webhookID, err := v.Verify([]byte("{}"), Headers{
		WebhookID: "msg_123",
		Timestamp: "1700000000",
		Signature: "v1,garbage",
	})
	assert.NoError(t, err)
	assert.Equal(t, "msg_123", webhookID)
}

func TestVerifySkippedWithoutSignatureHeader(t *testing.T) {
	v := NewVerifier("test-secret")
	assert.True(t, v.Enabled())

	webhookID, err := v.Verify([]byte("{}"), Headers{WebhookID: "msg_123", Timestamp: "1700000000"})
	assert.NoError(t, err)
	assert.Equal(t, "msg_123", webhookID)
}
