package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/velourlabs/scentbot/pkg/twilio"
)

const apologyReply = "Sorry, something went wrong on our side. Please try again in a moment."

// MessageHandler turns one inbound user message into one reply.
type MessageHandler interface {
	HandleMessage(ctx context.Context, userID, text string) (string, error)
}

type webhookHandler struct {
	pipeline  MessageHandler
	validator *twilio.Validator
}

// ServeHTTP handles a Twilio WhatsApp webhook POST. Every outcome,
// including internal failure, answers 200 with a TwiML body: a non-2xx
// would make Twilio retry and show the user a delivery error instead
// of a reply.
func (h *webhookHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	reply := apologyReply

	defer func() {
		if rec := recover(); rec != nil {
			log.Ctx(r.Context()).Error().Interface("panic", rec).Msg("webhook handler panicked")
			writeTwiML(w, apologyReply)
		}
	}()

	if err := r.ParseForm(); err != nil {
		log.Ctx(r.Context()).Warn().Err(err).Msg("malformed webhook form")
		writeTwiML(w, reply)
		return
	}

	if h.validator != nil {
		sig := r.Header.Get(twilio.SignatureHeader)
		if !h.validator.Valid(requestURL(r), r.PostForm, sig) {
			log.Ctx(r.Context()).Warn().Msg("webhook signature rejected")
			http.Error(w, "invalid signature", http.StatusForbidden)
			return
		}
	}

	userText := r.PostFormValue("Body")
	userID := strings.TrimPrefix(r.PostFormValue("From"), "whatsapp:")

	out, err := h.pipeline.HandleMessage(r.Context(), userID, userText)
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Str("user_id", userID).Msg("message handling failed")
	} else {
		reply = out
	}

	writeTwiML(w, reply)
}

func writeTwiML(w http.ResponseWriter, body string) {
	xml, err := twilio.MessageResponse(body)
	if err != nil {
		log.Error().Err(err).Msg("twiml render failed")
		xml, _ = twilio.MessageResponse(apologyReply)
	}

	w.Header().Set("Content-Type", "text/xml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(xml))
}

// requestURL reconstructs the absolute URL Twilio signed. Scheme comes
// from the proxy header when the listener itself is plain HTTP.
func requestURL(r *http.Request) string {
	scheme := r.Header.Get("X-Forwarded-Proto")
	if scheme == "" {
		scheme = "https"
	}
	return scheme + "://" + r.Host + r.URL.RequestURI()
}
