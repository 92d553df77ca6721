package id

import (
	"crypto/rand"

	"github.com/oklog/ulid/v2"
)

// New returns a fresh ULID string. Contacts, users, sessions and the other
// records use these as their DynamoDB partition keys; the exception is a
// contact's pending alert, whose id is derived from the contact id instead.
func New() string {
	return ulid.MustNew(ulid.Now(), rand.Reader).String()
}
