package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Forgot(ctx context.Context) error
	Reset(ctx context.Context) error
	Whoami(ctx context.Context) error
	Profile(ctx context.Context) error
	Edit(ctx context.Context) error
	Portfolio(ctx context.Context) error
	Skills(ctx context.Context) error
	Link(ctx context.Context) error
}

const (
	helpAnonymous = "Available commands: register, login, forgot, reset, help, exit"
	helpSignedIn  = "Available commands: whoami, profile, edit, portfolio, skills, link, logout, help, exit"
)

// runREPL starts a simple read–eval–print loop for the folio CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. Commands read their own input from the same
// reader. The loop exits on EOF or when the user types "exit" or "quit".
//
//	Not logged in:
//	  - register      : create an account
//	  - login         : sign in
//	  - forgot        : request a password-reset email
//	  - reset         : set a new password with a reset token
//
//	Logged in:
//	  - whoami        : show the cached user and token expiry
//	  - profile       : reload the profile from the server
//	  - edit          : change profile fields (name=value lines)
//	  - portfolio     : show the portfolio
//	  - skills        : replace the skills list
//	  - link          : print the public profile URL
//	  - logout        : sign out
//
// Any errors returned by command handlers are ignored here; handlers report
// their own errors.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("folio%s> ", withSpace(statusFn())))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpSignedIn)
			} else {
				printlnFn(helpAnonymous)
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "forgot":
			_ = a.Forgot(ctx)

		case "reset":
			_ = a.Reset(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			_ = a.Whoami(ctx)

		case "profile":
			_ = a.Profile(ctx)

		case "edit":
			_ = a.Edit(ctx)

		case "portfolio":
			_ = a.Portfolio(ctx)

		case "skills":
			_ = a.Skills(ctx)

		case "link":
			_ = a.Link(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

func withSpace(s string) string {
	if s == "" {
		return ""
	}
	return " " + s
}
