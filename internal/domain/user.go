package domain

import "time"

// Roles. "adm" and "employee" are preserved from the legacy schema; JWT
// claims and route guards match on these values.
const (
	RoleAdmin    = "adm"
	RoleEmployee = "employee"
)

type User struct {
	UserID       string     `json:"id" dynamodbav:"user_id"`
	Username     string     `json:"uname" dynamodbav:"uname"` // legacy field name preserved
	Name         string     `json:"name" dynamodbav:"name"`
	Email        string     `json:"email" dynamodbav:"email"`
	Phone        string     `json:"ph" dynamodbav:"ph"`
	PasswordHash string     `json:"-" dynamodbav:"pwd"`
	Role         string     `json:"role" dynamodbav:"role"`
	Verified     bool       `json:"verified" dynamodbav:"verified"`
	Job          string     `json:"job,omitempty" dynamodbav:"job"`
	Location     string     `json:"loc,omitempty" dynamodbav:"loc"`
	Bio          string     `json:"bio,omitempty" dynamodbav:"bio"`
	Birthday     *time.Time `json:"dob,omitempty" dynamodbav:"dob,omitempty"`
	Audit
}

type CreateUserRequest struct {
	Username string `json:"uname" validate:"required"`
	Password string `json:"pwd" validate:"required,min=8,max=72"`
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"ph"`
}

type UpdateUserRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Phone    *string `json:"ph"`
	Job      *string `json:"job"`
	Location *string `json:"loc"`
	Bio      *string `json:"bio"`
	Birthday *string `json:"dob"` // expected format: YYYY-MM-DD
}

// UserPage is one page of an admin user listing.
type UserPage struct {
	Users []User `json:"users"`
	Total int    `json:"total"`
	Page  int    `json:"page"`
	Pages int    `json:"pages"`
}
