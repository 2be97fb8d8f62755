package twilio

import (
	"crypto/hmac"
	"crypto/sha1"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"net/url"
	"sort"
	"strings"
)

// SignatureHeader is the request header Twilio signs webhooks with.
const SignatureHeader = "X-Twilio-Signature"

type Validator struct {
	authToken string
}

func NewValidator(authToken string) (*Validator, error) {
	token := strings.TrimSpace(authToken)
	if token == "" {
		return nil, errors.New("twilio auth token is required")
	}
	return &Validator{authToken: token}, nil
}

// Valid checks a webhook signature against the full request URL and
// the POST form parameters, per Twilio's scheme: the URL followed by
// every form key+value pair in key-sorted order, HMAC-SHA1 signed and
// base64 encoded.
func (v *Validator) Valid(requestURL string, form url.Values, signature string) bool {
	expected := v.sign(requestURL, form)
	return subtle.ConstantTimeCompare([]byte(expected), []byte(signature)) == 1
}

func (v *Validator) sign(requestURL string, form url.Values) string {
	keys := make([]string, 0, len(form))
	for k := range form {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(requestURL)
	for _, k := range keys {
		for _, val := range form[k] {
			b.WriteString(k)
			b.WriteString(val)
		}
	}

	mac := hmac.New(sha1.New, []byte(v.authToken))
	mac.Write([]byte(b.String()))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}
