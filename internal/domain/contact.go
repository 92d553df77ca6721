package domain

import "time"

// AudioRef points at an audio note stored in the object store.
type AudioRef struct {
	Key        string    `json:"file" dynamodbav:"file"`
	UploadedOn time.Time `json:"uploaded_on" dynamodbav:"uploaded_on"`
}

// Contact is a CRM contact. NextAlert, when set, drives reminder
// scheduling: an Alert exists for the contact exactly while NextAlert falls
// inside the current day window.
type Contact struct {
	ContactID  string     `json:"id" dynamodbav:"contact_id"`
	Name       string     `json:"name" dynamodbav:"name"`
	Email      string     `json:"email,omitempty" dynamodbav:"email"`
	Phone      string     `json:"ph,omitempty" dynamodbav:"ph"` // legacy field name preserved
	Location   string     `json:"loc,omitempty" dynamodbav:"loc"`
	Subject    string     `json:"subject,omitempty" dynamodbav:"subject"`
	NextAlert  *time.Time `json:"next_alert,omitempty" dynamodbav:"next_alert,unixtime,omitempty"`
	AssignedTo string     `json:"assigned_to" dynamodbav:"assigned_to"`
	Audio      []AudioRef `json:"audio,omitempty" dynamodbav:"audio,omitempty"`
	Audit
}

// AlertSubject is the subject copied onto the contact's alert: the
// contact's own subject, or a generated reminder line.
func (c *Contact) AlertSubject() string {
	if c.Subject != "" {
		return c.Subject
	}
	return "Reminder for " + c.Name
}

type CreateContactRequest struct {
	Name       string     `json:"name" validate:"required"`
	Email      string     `json:"email" validate:"omitempty,email"`
	Phone      string     `json:"ph"`
	Location   string     `json:"loc"`
	Subject    string     `json:"subject"`
	NextAlert  *time.Time `json:"next_alert"`
	AssignedTo string     `json:"assigned_to"`
}

type UpdateContactRequest struct {
	Name       *string    `json:"name"`
	Email      *string    `json:"email" validate:"omitempty,email"`
	Phone      *string    `json:"ph"`
	Location   *string    `json:"loc"`
	Subject    *string    `json:"subject"`
	NextAlert  *time.Time `json:"next_alert"`
	AssignedTo *string    `json:"assigned_to"` // admin only
}

// ContactListQuery carries the list endpoint's filters.
type ContactListQuery struct {
	Search string
	Page   int
	Limit  int
}

// ContactPage is one page of a contact listing.
type ContactPage struct {
	Contacts []Contact `json:"contacts"`
	Total    int       `json:"total"`
	Page     int       `json:"page"`
	Pages    int       `json:"pages"`
}
