// Package notify defines the payload contract for push notifications
// sent to the table panel. The catalog core never imports this package;
// it exists so external senders and the panel agree on one shape.
package notify

import "encoding/json"

// Default text used when a payload is missing or unusable.
const (
	DefaultTitle = "Grimoire"
	DefaultBody  = "Content updated"
)

// Payload is the notification body. Every field is optional; senders
// may omit any of them and receivers must cope.
type Payload struct {
	Title string `json:"title,omitempty"`
	Body  string `json:"body,omitempty"`
	URL   string `json:"url,omitempty"`
}

// DecodePayload parses raw notification data. Missing or malformed
// data never fails; the result falls back to default text so a bad
// sender cannot suppress the notification itself.
func DecodePayload(data []byte) Payload {
	var p Payload
	if len(data) > 0 {
		if err := json.Unmarshal(data, &p); err != nil {
			p = Payload{}
		}
	}
	if p.Title == "" {
		p.Title = DefaultTitle
	}
	if p.Body == "" {
		p.Body = DefaultBody
	}
	return p
}

// ClickTarget returns the URL to deliver when the notification is
// activated. Payloads without a url direct the client to the panel
// root so a click always lands somewhere.
func (p Payload) ClickTarget(panelRoot string) string {
	if p.URL != "" {
		return p.URL
	}
	return panelRoot
}
