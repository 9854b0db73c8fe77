package api

import (
	"net/http"

	"github.com/cresolva/notify-relay/internal/relay"
)

// SendEmailHandler handles POST /send-email. It parses the contact-form
// submission and hands it to the relay; the response contract is:
//
//	200 {"message","messageId"} (or "previewUrl" for sandbox deliveries)
//	400 {"error"} for missing fields or an unparsable body
//	500 {"error"[,"details"]} for configuration or transport failures
func SendEmailHandler(rl *relay.Relay) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var sub relay.ContactSubmission
		if err := decodeJSON(r, &sub, "All fields are required"); err != nil {
			respondRelayError(w, err)
			return
		}

		res, err := rl.ForwardContact(r.Context(), sub)
		if err != nil {
			respondRelayError(w, err)
			return
		}

		body := map[string]string{"message": "Email sent successfully"}
		if res.PreviewURL != "" {
			body["previewUrl"] = res.PreviewURL
		} else {
			body["messageId"] = res.MessageID
		}
		respondJSON(w, http.StatusOK, body)
	}
}
