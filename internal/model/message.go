package model

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// ErrMissingData is returned when a webhook payload has no data object.
var ErrMissingData = errors.New("webhook payload must contain a 'data' key")

// ValidationError reports the required fields missing from a webhook payload.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("gmail message validation failed: missing %s", strings.Join(e.Missing, ", "))
}

// GmailMessage is the validated representation of one Gmail message event
// delivered by the integration platform, combining the decoded email content
// with the event metadata needed to route processing.
type GmailMessage struct {
	// Event metadata
	ConnectionID     string `json:"connection_id"`
	ConnectionNanoID string `json:"connection_nano_id"`
	TriggerID        string `json:"trigger_id"`
	TriggerNanoID    string `json:"trigger_nano_id"`
	UserID           string `json:"user_id"`

	// Email content
	ID       string    `json:"id"`
	ThreadID string    `json:"thread_id"`
	Sender   string    `json:"sender"`
	To       string    `json:"to"`
	Subject  string    `json:"subject"`
	Received time.Time `json:"message_timestamp"`
	Labels   []string  `json:"label_ids"`

	// Decoded bodies; empty when the message carried none or decoding failed
	TextBody string `json:"text_body,omitempty"`
	HTMLBody string `json:"html_body,omitempty"`
}

// Body returns the preferred body content for processing: plain text first,
// then HTML, then a placeholder.
func (m *GmailMessage) Body() string {
	if m.TextBody != "" {
		return m.TextBody
	}
	if m.HTMLBody != "" {
		return m.HTMLBody
	}
	return "No content available"
}

// messageData mirrors the platform's nested webhook data object.
type messageData struct {
	ConnectionID     string       `json:"connection_id"`
	ConnectionNanoID string       `json:"connection_nano_id"`
	TriggerID        string       `json:"trigger_id"`
	TriggerNanoID    string       `json:"trigger_nano_id"`
	UserID           string       `json:"user_id"`
	ID               string       `json:"id"`
	ThreadID         string       `json:"threadId"`
	InternalDate     internalDate `json:"internalDate"`
	LabelIDs         []string     `json:"labelIds"`
	Payload          *messagePart `json:"payload"`
}

// internalDate accepts Gmail's epoch-millisecond timestamp whether it arrives
// as a JSON number or a quoted string.
type internalDate int64

func (d *internalDate) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*d = 0
		return nil
	}
	ms, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		*d = 0
		return nil
	}
	*d = internalDate(ms)
	return nil
}

type messagePart struct {
	PartID   string          `json:"partId"`
	MimeType string          `json:"mimeType"`
	Headers  []messageHeader `json:"headers"`
	Body     *partBody       `json:"body"`
	Parts    []*messagePart  `json:"parts"`
}

type messageHeader struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type partBody struct {
	Data string `json:"data"`
}

// BodyDecodeError reports a part whose base64 body could not be decoded.
// Decoding failures are per-part: the message itself is still usable.
type BodyDecodeError struct {
	PartID string
	Err    error
}

func (e *BodyDecodeError) Error() string {
	return fmt.Sprintf("failed to decode body for part %q: %v", e.PartID, e.Err)
}

// ParseGmailMessage builds a validated GmailMessage from the raw data object
// of a webhook envelope. It returns ErrMissingData when data is absent and a
// *ValidationError when required identity or routing fields are empty. Decode
// problems for individual MIME parts are reported through onDecodeError (may
// be nil) without failing the whole message.
func ParseGmailMessage(data json.RawMessage, onDecodeError func(*BodyDecodeError)) (*GmailMessage, error) {
	if len(data) == 0 || string(data) == "null" {
		return nil, ErrMissingData
	}

	var md messageData
	if err := json.Unmarshal(data, &md); err != nil {
		return nil, fmt.Errorf("failed to parse webhook data: %w", err)
	}

	report := func(e *BodyDecodeError) {
		if onDecodeError != nil {
			onDecodeError(e)
		}
	}

	var textBody, htmlBody string
	if md.Payload != nil {
		if len(md.Payload.Parts) > 0 {
			for _, part := range md.Payload.Parts {
				if part == nil || part.Body == nil || part.Body.Data == "" {
					continue
				}
				decoded, err := decodeBodyData(part.Body.Data)
				if err != nil {
					report(&BodyDecodeError{PartID: part.PartID, Err: err})
					continue
				}
				switch part.MimeType {
				case "text/plain":
					textBody = decoded
				case "text/html":
					htmlBody = decoded
				}
			}
		} else if md.Payload.Body != nil && md.Payload.Body.Data != "" {
			// Single-part message: the body lives at the top level and is
			// treated as plain text.
			decoded, err := decodeBodyData(md.Payload.Body.Data)
			if err != nil {
				report(&BodyDecodeError{PartID: md.Payload.PartID, Err: err})
			} else {
				textBody = decoded
			}
		}
	}

	// Header scan for from/to/subject, case-insensitive. First match wins so
	// duplicate headers cannot flip an already extracted value.
	var sender, to, subject string
	if md.Payload != nil {
		for _, h := range md.Payload.Headers {
			switch strings.ToLower(h.Name) {
			case "from":
				if sender == "" {
					sender = h.Value
				}
			case "to":
				if to == "" {
					to = h.Value
				}
			case "subject":
				if subject == "" {
					subject = h.Value
				}
			}
		}
	}

	received := time.Now()
	if md.InternalDate > 0 {
		received = time.UnixMilli(int64(md.InternalDate))
	}

	msg := &GmailMessage{
		ConnectionID:     md.ConnectionID,
		ConnectionNanoID: md.ConnectionNanoID,
		TriggerID:        md.TriggerID,
		TriggerNanoID:    md.TriggerNanoID,
		UserID:           md.UserID,
		ID:               md.ID,
		ThreadID:         md.ThreadID,
		Sender:           sender,
		To:               to,
		Subject:          subject,
		Received:         received,
		Labels:           md.LabelIDs,
		TextBody:         textBody,
		HTMLBody:         htmlBody,
	}

	if err := msg.validate(); err != nil {
		return nil, err
	}
	return msg, nil
}

func (m *GmailMessage) validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"connection_id", m.ConnectionID},
		{"connection_nano_id", m.ConnectionNanoID},
		{"trigger_id", m.TriggerID},
		{"trigger_nano_id", m.TriggerNanoID},
		{"user_id", m.UserID},
		{"id", m.ID},
		{"threadId", m.ThreadID},
	}

	var missing []string
	for _, f := range required {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	return nil
}

// decodeBodyData decodes the base64url body data Gmail attaches to message
// parts. Gmail emits both padded and unpadded encodings, so try both. Invalid
// UTF-8 sequences are replaced rather than rejected.
func decodeBodyData(data string) (string, error) {
	decoded, err := base64.URLEncoding.DecodeString(data)
	if err != nil {
		decoded, err = base64.RawURLEncoding.DecodeString(data)
		if err != nil {
			return "", err
		}
	}
	if !utf8.Valid(decoded) {
		return strings.ToValidUTF8(string(decoded), "�"), nil
	}
	return string(decoded), nil
}
