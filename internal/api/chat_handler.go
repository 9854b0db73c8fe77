package api

import (
	"net/http"

	"github.com/cresolva/notify-relay/internal/relay"
)

// ForwardChatHandler handles POST /forward-chat. A chat message fans out to
// the operator mailbox and the SMS gateways; the response is success only
// when both deliveries succeed.
func ForwardChatHandler(rl *relay.Relay) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var sub relay.ChatSubmission
		if err := decodeJSON(r, &sub, "Name and message are required"); err != nil {
			respondRelayError(w, err)
			return
		}

		if err := rl.ForwardChat(r.Context(), sub); err != nil {
			respondRelayError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"message": "Message forwarded successfully",
		})
	}
}
