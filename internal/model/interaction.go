package model

import "fmt"

// Interaction is an email exchange linked to an application, as stored by
// the server under /interactions/.
type Interaction struct {
	ID              ID     `json:"id,omitempty"`
	ApplicationID   ID     `json:"application_id"`
	GmailMessageID  string `json:"gmail_message_id"`
	InteractionDate string `json:"interaction_date"`
	Sender          string `json:"sender"`
	Subject         string `json:"subject"`
	Snippet         string `json:"snippet"`
	// InteractionType is free text such as "Application Confirmation",
	// "Interview Invite" or "Rejection".
	InteractionType string `json:"interaction_type"`
}

// Line renders the interaction as "date [type] sender: subject".
func (i Interaction) Line() string {
	return fmt.Sprintf("%s [%s] %s: %s", i.InteractionDate, i.InteractionType, i.Sender, i.Subject)
}

// InteractionDraft is the payload for recording a new interaction. The server
// fills in the user from the bearer token.
type InteractionDraft struct {
	ApplicationID   ID     `json:"application_id"`
	GmailMessageID  string `json:"gmail_message_id"`
	InteractionDate string `json:"interaction_date"`
	Sender          string `json:"sender"`
	Subject         string `json:"subject"`
	Snippet         string `json:"snippet"`
	InteractionType string `json:"interaction_type"`
}
