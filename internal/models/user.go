package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// UserView is the only user representation sent to clients.
type UserView struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

func (u *User) View() UserView {
	return UserView{ID: u.ID.String(), Email: u.Email}
}
