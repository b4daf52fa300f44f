package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/folio/internal/client/client"
	"github.com/dmitrijs2005/folio/internal/client/models"
	"github.com/dmitrijs2005/folio/internal/logging"
)

// ProfileService covers the signed-in user's profile and portfolio.
type ProfileService interface {
	// Profile refreshes the user record from the backend.
	Profile(ctx context.Context) (models.User, error)
	// Update merges patch into the user and saves it remotely.
	Update(ctx context.Context, patch models.UserPatch) (models.User, error)
	Portfolio(ctx context.Context) (models.Portfolio, error)
	UpdatePortfolio(ctx context.Context, p models.Portfolio) (models.Portfolio, error)
	// PublicURL is the shareable address of the user's profile page.
	PublicURL() (string, error)
}

type profileService struct {
	client   client.Client
	sessions SessionManager
	siteURL  string
	log      logging.Logger
}

func NewProfileService(c client.Client, sessions SessionManager, siteURL string, log logging.Logger) ProfileService {
	if log == nil {
		log = logging.Nop()
	}
	return &profileService{
		client:   c,
		sessions: sessions,
		siteURL:  strings.TrimRight(siteURL, "/"),
		log:      log.With("component", "profile"),
	}
}

func (p *profileService) Profile(ctx context.Context) (models.User, error) {
	return p.sessions.Reload(ctx)
}

func (p *profileService) Update(ctx context.Context, patch models.UserPatch) (models.User, error) {
	return p.sessions.UpdateUser(ctx, patch)
}

// unauthorized drops the session after the backend rejected its token.
func (p *profileService) unauthorized(ctx context.Context, err error) {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized {
		p.log.Warn(ctx, "access token rejected, signing out")
		p.sessions.Clear(ctx)
	}
}

func (p *profileService) Portfolio(ctx context.Context) (models.Portfolio, error) {
	if !p.sessions.IsAuthenticated() {
		return models.Portfolio{}, client.ErrNotAuthenticated
	}
	pf, err := p.client.GetPortfolio(ctx)
	if err != nil {
		p.unauthorized(ctx, err)
		return models.Portfolio{}, err
	}
	return pf, nil
}

func (p *profileService) UpdatePortfolio(ctx context.Context, pf models.Portfolio) (models.Portfolio, error) {
	if !p.sessions.IsAuthenticated() {
		return models.Portfolio{}, client.ErrNotAuthenticated
	}
	saved, err := p.client.UpdatePortfolio(ctx, pf)
	if err != nil {
		p.unauthorized(ctx, err)
		return models.Portfolio{}, err
	}
	return saved, nil
}

func (p *profileService) PublicURL() (string, error) {
	u, ok := p.sessions.User()
	if !ok {
		return "", client.ErrNotAuthenticated
	}
	if u.Username == "" {
		return "", fmt.Errorf("profile has no username")
	}
	return p.siteURL + "/" + url.PathEscape(u.Username), nil
}
