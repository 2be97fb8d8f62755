// Package api exposes the HTTP surface: the Twilio WhatsApp webhook
// and a liveness probe.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/velourlabs/scentbot/pkg/twilio"
)

// NewRouter wires the webhook handler behind the shared middleware.
// A nil validator disables signature checking; local development runs
// without a Twilio auth token.
func NewRouter(pipeline MessageHandler, validator *twilio.Validator) http.Handler {
	r := chi.NewRouter()
	r.Use(RequestID)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Method(http.MethodPost, "/webhook/whatsapp", &webhookHandler{
		pipeline:  pipeline,
		validator: validator,
	})

	return r
}
