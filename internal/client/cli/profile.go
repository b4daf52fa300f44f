package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/folio/internal/client/client"
	"github.com/dmitrijs2005/folio/internal/client/models"
)

// Whoami prints the cached user without calling the server.
func (a *App) Whoami(ctx context.Context) error {
	s := a.session.Session()
	if !s.Authenticated() {
		return a.fail(ctx, client.ErrNotAuthenticated)
	}
	printUser(a.out, *s.User)

	claims, err := s.Tokens.AccessClaims()
	if err != nil {
		a.log.Debug(ctx, "access token not decodable", "error", err)
		return nil
	}
	if exp := claims.Expiry(); !exp.IsZero() {
		fmt.Fprintf(a.out, "%-10s %s\n", "expires", exp.Local().Format("2006-01-02 15:04:05"))
	}
	return nil
}

// Profile reloads the user from the server.
func (a *App) Profile(ctx context.Context) error {
	u, err := a.profileService.Profile(ctx)
	if err != nil {
		return a.fail(ctx, err)
	}
	printUser(a.out, u)
	return nil
}

// Edit reads name=value lines and saves them as one profile update.
// "name=" clears a field.
func (a *App) Edit(ctx context.Context) error {
	if !a.isLoggedIn() {
		return a.fail(ctx, client.ErrNotAuthenticated)
	}
	lines, err := GetLines(a.reader, "Enter fields as name=value ("+strings.Join(editableFields, ", ")+")", a.out)
	if err != nil {
		return err
	}
	patch, err := parsePatch(lines)
	if err != nil {
		return a.fail(ctx, err)
	}
	if patch == (models.UserPatch{}) {
		fmt.Fprintln(a.out, "Nothing to change.")
		return nil
	}

	u, err := a.profileService.Update(ctx, patch)
	if err != nil {
		return a.fail(ctx, err)
	}
	fmt.Fprintln(a.out, "Profile updated.")
	printUser(a.out, u)
	return nil
}

var editableFields = []string{"username", "email", "fullName", "title", "bio", "location", "website", "phone"}

// parsePatch turns name=value lines into a UserPatch. Names match the JSON
// field names, case-insensitively.
func parsePatch(lines []string) (models.UserPatch, error) {
	var p models.UserPatch
	for _, line := range lines {
		name, value, ok := strings.Cut(line, "=")
		if !ok {
			return models.UserPatch{}, fmt.Errorf("expected name=value, got %q", line)
		}
		v := strings.TrimSpace(value)
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "username":
			p.Username = &v
		case "email":
			p.Email = &v
		case "fullname":
			p.FullName = &v
		case "title":
			p.Title = &v
		case "bio":
			p.Bio = &v
		case "location":
			p.Location = &v
		case "website":
			p.Website = &v
		case "phone":
			p.Phone = &v
		default:
			return models.UserPatch{}, fmt.Errorf("unknown field %q", strings.TrimSpace(name))
		}
	}
	return p, nil
}

func (a *App) Portfolio(ctx context.Context) error {
	p, err := a.profileService.Portfolio(ctx)
	if err != nil {
		return a.fail(ctx, err)
	}
	printPortfolio(a.out, p)
	return nil
}

// Skills replaces the portfolio's skill list.
func (a *App) Skills(ctx context.Context) error {
	p, err := a.profileService.Portfolio(ctx)
	if err != nil {
		return a.fail(ctx, err)
	}
	if len(p.Skills) > 0 {
		fmt.Fprintf(a.out, "Current skills: %s\n", strings.Join(p.Skills, ", "))
	}
	lines, err := GetLines(a.reader, "Enter skills, one per line", a.out)
	if err != nil {
		return err
	}

	skills := make([]string, 0, len(lines))
	for _, l := range lines {
		if s := strings.TrimSpace(l); s != "" {
			skills = append(skills, s)
		}
	}
	p.Skills = skills

	saved, err := a.profileService.UpdatePortfolio(ctx, p)
	if err != nil {
		return a.fail(ctx, err)
	}
	fmt.Fprintf(a.out, "Skills saved: %s\n", strings.Join(saved.Skills, ", "))
	return nil
}

// Link prints the shareable profile URL.
func (a *App) Link(ctx context.Context) error {
	link, err := a.profileService.PublicURL()
	if err != nil {
		return a.fail(ctx, err)
	}
	fmt.Fprintln(a.out, link)
	return nil
}
