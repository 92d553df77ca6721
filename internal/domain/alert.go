package domain

import "time"

// Alert statuses. Only pending alerts are surfaced to users.
const (
	AlertStatusPending = 0
	AlertStatusDone    = 1
)

// PendingAlertID is the deterministic id of a contact's pending alert.
// Keying the pending record by contact makes the store's Put an atomic
// upsert: concurrent reconciliations for the same contact converge on a
// single item, which is what upholds the one-pending-alert-per-contact
// invariant.
func PendingAlertID(contactID string) string {
	return "pnd#" + contactID
}

// Alert is a due reminder derived from a contact's NextAlert date. Subject
// and AssignedTo are copied from the contact at creation/update time, not
// live-linked.
type Alert struct {
	AlertID    string    `json:"id" dynamodbav:"alert_id"`
	ContactID  string    `json:"contact_id" dynamodbav:"contact_id"`
	AlertTime  time.Time `json:"alert_time" dynamodbav:"alert_time,unixtime"`
	Subject    string    `json:"subject,omitempty" dynamodbav:"subject"`
	AssignedTo string    `json:"assigned_to" dynamodbav:"assigned_to"`
	Status     int       `json:"status" dynamodbav:"status"`
	Audit
	Contact *Contact `json:"contact,omitempty" dynamodbav:"-"` // joined on read
}

// EditAlertRequest is a free-form field patch; no business-rule validation
// beyond existence of the alert.
type EditAlertRequest struct {
	Subject    *string    `json:"subject"`
	AlertTime  *time.Time `json:"alert_time"`
	AssignedTo *string    `json:"assigned_to"`
	Status     *int       `json:"status"`
}

// SweepResult summarizes one daily sweep pass.
type SweepResult struct {
	Scanned int `json:"scanned"`
	Created int `json:"created"`
	Errors  int `json:"errors"`
}
