// Package models defines the records exchanged with the NatMan API and the
// values the client keeps in its key-value store.
package models

import "strings"

// User is the profile kept under the userData key. It is overwritten as a
// whole after every successful login.
type User struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	FirstName   string `json:"first_name"`
	Surname     string `json:"surname"`
	Role        string `json:"role,omitempty"`
	Age         int    `json:"age,omitempty"`
	Mail        string `json:"mail,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
}

// DisplayName joins first name and surname, falling back to the username.
func (u User) DisplayName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.Surname)
	if name == "" {
		return u.Username
	}
	return name
}

// Credentials exist only for the duration of a submit.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Registration is the body of POST /users/.
type Registration struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	FirstName   string `json:"first_name"`
	Surname     string `json:"surname"`
	Age         int    `json:"age"`
	Mail        string `json:"mail"`
	PhoneNumber string `json:"phone_number"`
}

// LoginResponse is the success body of POST /auth/login.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type,omitempty"`
	UserID      int64  `json:"user_id"`
	Username    string `json:"username"`
	FirstName   string `json:"first_name"`
	Surname     string `json:"surname"`
	Role        string `json:"role"`
}

// LoginResult is what the session service hands back to screens.
type LoginResult struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
	User    User   `json:"user"`
	Message string `json:"message"`
}

// RegisterResponse is the success body of POST /users/.
type RegisterResponse struct {
	Message string `json:"message"`
	UserID  int64  `json:"user_id"`
}

type RegisterResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	UserID  int64  `json:"user_id"`
}
