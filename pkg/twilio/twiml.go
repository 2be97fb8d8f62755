// Package twilio holds the small slice of Twilio we touch: rendering
// TwiML message replies and validating webhook request signatures.
package twilio

import (
	"encoding/xml"
	"fmt"
	"time"
)

type Config struct {
	AuthToken         string        `split_words:"true"`
	ValidateSignature bool          `split_words:"true" default:"false"`
	Timeout           time.Duration `split_words:"true" default:"10s"`
}

type messagingResponse struct {
	XMLName xml.Name `xml:"Response"`
	Message string   `xml:"Message"`
}

// MessageResponse renders a single-message TwiML envelope. Twilio
// reads the webhook response body as instructions, so the reply text
// travels back inside the XML rather than via the REST API.
func MessageResponse(body string) (string, error) {
	out, err := xml.Marshal(messagingResponse{Message: body})
	if err != nil {
		return "", fmt.Errorf("marshal twiml: %w", err)
	}
	return xml.Header + string(out), nil
}
