package domain

import "time"

const (
	EventApplicationSaved   = "application.saved"
	EventApplicationDeleted = "application.deleted"
	EventContactSaved       = "contact.saved"
	EventContactDeleted     = "contact.deleted"
	EventLinksReplaced      = "links.replaced"
)

// Event notifies listeners that one of the owner's collections changed.
type Event struct {
	Type     string    `json:"type"`
	Resource string    `json:"resource"`
	Date     time.Time `json:"date"`
}
