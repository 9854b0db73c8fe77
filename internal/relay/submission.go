// Package relay implements the notification relay: it validates a contact or
// chat submission, builds the outbound messages, dispatches them through the
// mail transport capability, and maps the outcome to the response contract.
package relay

// ContactSubmission is a contact-form submission. All fields are required.
// Ephemeral; constructed per request and discarded after the response.
type ContactSubmission struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// ChatSubmission is a live-chat forward. Both fields are required; the chat
// front end substitutes a placeholder name before submitting.
type ChatSubmission struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}

// Validate checks field presence only. Any non-empty string is accepted as
// a name or email address; format validation is intentionally absent so the
// boundary behavior matches the deployed form exactly.
func (s ContactSubmission) Validate() error {
	if s.Name == "" || s.Email == "" || s.Subject == "" || s.Message == "" {
		return &Error{Kind: KindValidation, Message: "All fields are required"}
	}
	return nil
}

// Validate checks field presence only.
func (s ChatSubmission) Validate() error {
	if s.Name == "" || s.Message == "" {
		return &Error{Kind: KindValidation, Message: "Name and message are required"}
	}
	return nil
}
