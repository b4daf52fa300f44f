package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	// ErrNotAuthenticated is a local precondition failure: the operation needs
	// a session and none is held. It is never the result of a network call.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrRequestInFlight rejects a second submit while one is still running.
	ErrRequestInFlight = errors.New("request already in flight")
)

// APIError is any non-2xx reply from the backend.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// ValidationError is a 400 reply carrying field-keyed messages.
type ValidationError struct {
	APIError
	Fields map[string][]string
}

// registration fields are reported in this order, the rest alphabetically.
var fieldOrder = []string{"username", "email", "password"}

// FieldNames lists the rejected fields, known form fields first.
func (e *ValidationError) FieldNames() []string {
	names := make([]string, 0, len(e.Fields))
	seen := make(map[string]bool, len(e.Fields))
	for _, f := range fieldOrder {
		if _, ok := e.Fields[f]; ok {
			names = append(names, f)
			seen[f] = true
		}
	}
	rest := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		if !seen[f] {
			rest = append(rest, f)
		}
	}
	sort.Strings(rest)
	return append(names, rest...)
}

// Field returns the joined messages for one field, or "".
func (e *ValidationError) Field(name string) string {
	return strings.Join(e.Fields[name], ", ")
}

func (e *ValidationError) Error() string {
	names := e.FieldNames()
	if len(names) == 0 {
		return e.Message
	}
	first := names[0]
	return fmt.Sprintf("%s: %s", capitalize(first), e.Field(first))
}

func (e *ValidationError) Unwrap() error { return &e.APIError }

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// AuthErrorKind tells the login form which field to blame.
type AuthErrorKind int

const (
	AuthGeneric AuthErrorKind = iota
	AuthAccountNotFound
	AuthWrongPassword
)

func (k AuthErrorKind) String() string {
	switch k {
	case AuthAccountNotFound:
		return "account not found"
	case AuthWrongPassword:
		return "wrong password"
	default:
		return "authentication failed"
	}
}

// AuthenticationError is a rejected login.
type AuthenticationError struct {
	APIError
	Kind AuthErrorKind
	// Field is "username", "password" or "" for generic failures.
	Field string
}

func (e *AuthenticationError) Error() string { return e.Message }

func (e *AuthenticationError) Unwrap() error { return &e.APIError }

// NetworkError means the request never produced a response.
type NetworkError struct {
	Method   string
	Endpoint string
	Err      error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s %s: network error: %v", e.Method, e.Endpoint, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// op selects the endpoint-specific part of error translation.
type op int

const (
	opDefault op = iota
	opLogin
)

// login detail substrings the backend uses to tell failures apart.
const (
	detailNoAccount     = "No account found"
	detailWrongPassword = "Incorrect password"
)

// translate turns a non-2xx reply into the error taxonomy. It is the only
// place that looks inside backend error bodies.
func translate(status int, body []byte, o op) error {
	base := APIError{Status: status, Message: fmt.Sprintf("HTTP error! status: %d", status)}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return &base
	}
	if msg := stringField(raw, "detail"); msg != "" {
		base.Message = msg
	} else if msg := stringField(raw, "message"); msg != "" {
		base.Message = msg
	}

	if o == opLogin && status == http.StatusUnauthorized {
		ae := &AuthenticationError{APIError: base, Kind: AuthGeneric}
		switch {
		case strings.Contains(base.Message, detailNoAccount):
			ae.Kind, ae.Field = AuthAccountNotFound, "username"
		case strings.Contains(base.Message, detailWrongPassword):
			ae.Kind, ae.Field = AuthWrongPassword, "password"
		}
		return ae
	}

	if status == http.StatusBadRequest {
		if fields := fieldErrors(raw); len(fields) > 0 {
			return &ValidationError{APIError: base, Fields: fields}
		}
	}
	return &base
}

func stringField(raw map[string]json.RawMessage, key string) string {
	v, ok := raw[key]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		return ""
	}
	return s
}

// fieldErrors collects keys holding a non-empty list of strings.
func fieldErrors(raw map[string]json.RawMessage) map[string][]string {
	out := make(map[string][]string)
	for k, v := range raw {
		if k == "" || k == "detail" || k == "message" {
			continue
		}
		var list []string
		if err := json.Unmarshal(v, &list); err == nil && len(list) > 0 {
			out[k] = list
		}
	}
	return out
}
