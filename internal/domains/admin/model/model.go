package model

import (
	"yadoya/internal/store/jsonstore"
)

const (
	EntityName = "admin"
)

// Admin is a backend login account stored in the entity collection.
type Admin struct {
	jsonstore.Model
	Username     string `json:"username"`
	PasswordHash string `json:"password_hash"`
}

// User is a credential pair in the standalone users file. It lives
// outside the entity collections and carries no id.
type User struct {
	Username     string `json:"username"`
	PasswordHash string `json:"password_hash"`
}
