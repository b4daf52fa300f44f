package cli

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/dmitrijs2005/folio/internal/client/client"
	"github.com/dmitrijs2005/folio/internal/client/forms"
	"github.com/dmitrijs2005/folio/internal/client/models"
)

// renderError prints err the way a form would show it: per field where the
// error names fields, as one line otherwise.
func renderError(w io.Writer, err error) {
	var (
		fe     forms.FieldErrors
		ve     *client.ValidationError
		ae     *client.AuthenticationError
		netErr *client.NetworkError
		apiErr *client.APIError
	)
	switch {
	case errors.As(err, &fe):
		keys := make([]string, 0, len(fe))
		for k := range fe {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(w, "  %s: %s\n", k, fe[k])
		}
	case errors.As(err, &ve):
		names := ve.FieldNames()
		if len(names) == 0 {
			fmt.Fprintf(w, "Rejected: %s\n", ve.Message)
			return
		}
		for _, name := range names {
			fmt.Fprintf(w, "  %s: %s\n", name, ve.Field(name))
		}
	case errors.As(err, &ae):
		if ae.Field != "" {
			fmt.Fprintf(w, "  %s: %s\n", ae.Field, ae.Message)
			return
		}
		fmt.Fprintf(w, "Login failed: %s\n", ae.Message)
	case errors.Is(err, client.ErrNotAuthenticated):
		fmt.Fprintln(w, "You are not logged in.")
	case errors.Is(err, client.ErrRequestInFlight):
		fmt.Fprintln(w, "A request is already in progress.")
	case errors.As(err, &netErr):
		fmt.Fprintf(w, "Cannot reach the server: %v\n", netErr.Err)
	case errors.As(err, &apiErr):
		fmt.Fprintf(w, "Server error (%d): %s\n", apiErr.Status, apiErr.Message)
	default:
		fmt.Fprintf(w, "Error: %v\n", err)
	}
}

func printUser(w io.Writer, u models.User) {
	row := func(label, v string) {
		if v != "" {
			fmt.Fprintf(w, "%-10s %s\n", label, v)
		}
	}
	if u.ID != 0 {
		row("id", fmt.Sprint(u.ID))
	}
	row("username", u.Username)
	row("email", u.Email)
	row("name", u.FullName)
	row("title", u.Title)
	row("bio", u.Bio)
	row("location", u.Location)
	row("website", u.Website)
	row("phone", u.Phone)
}

func printPortfolio(w io.Writer, p models.Portfolio) {
	if len(p.Skills) > 0 {
		fmt.Fprintf(w, "Skills: %s\n", strings.Join(p.Skills, ", "))
	}
	if len(p.Experience) > 0 {
		fmt.Fprintln(w, "Experience:")
		for _, e := range p.Experience {
			fmt.Fprintf(w, "  %s, %s (%s)\n", e.Position, e.Company, e.Duration)
		}
	}
	if len(p.Projects) > 0 {
		fmt.Fprintln(w, "Projects:")
		for _, pr := range p.Projects {
			line := "  " + pr.Title
			if len(pr.Technologies) > 0 {
				line += " [" + strings.Join(pr.Technologies, ", ") + "]"
			}
			if pr.Link != "" {
				line += " " + pr.Link
			}
			fmt.Fprintln(w, line)
		}
	}
	if len(p.Education) > 0 {
		fmt.Fprintln(w, "Education:")
		for _, e := range p.Education {
			fmt.Fprintf(w, "  %s in %s, %s (%s)\n", e.Degree, e.Field, e.Institution, e.Year)
		}
	}
	if len(p.SocialLinks) > 0 {
		fmt.Fprintln(w, "Links:")
		for _, l := range p.SocialLinks {
			fmt.Fprintf(w, "  %s: %s\n", l.Platform, l.URL)
		}
	}
}
