package entity

import "github.com/google/uuid"

// User is the identity record kept by the hosted auth service.
type User struct {
	Id            uuid.UUID `db:"id"`
	Email         string    `db:"email"`
	EmailVerified bool      `db:"email_verified"`
}

type Profile struct {
	UserId      uuid.UUID `db:"user_id"`
	DisplayName *string   `db:"display_name"`
	AvatarUrl   *string   `db:"avatar_url"`
}

// Session identifies the caller of an operation. It carries no flags or
// roles: those are looked up when an operation needs them.
type Session struct {
	UserId uuid.UUID
}

func NewSession(userId uuid.UUID) *Session {
	return &Session{UserId: userId}
}
