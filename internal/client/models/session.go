package models

// Session is the (user, tokens) pair held by the session manager. It is
// authenticated only when both halves are present.
type Session struct {
	User   *User
	Tokens *AuthTokens
}

// Authenticated reports whether both halves are present.
func (s Session) Authenticated() bool {
	return s.User != nil && s.Tokens != nil
}

// AuthResult is the success body of login and register.
type AuthResult struct {
	User   User       `json:"user"`
	Tokens AuthTokens `json:"tokens"`
}
