package client

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/folio/internal/client/models"
)

func (h *HTTPClient) GetProfile(ctx context.Context) (models.User, error) {
	var env envelope[models.User]
	if err := h.Do(ctx, http.MethodGet, profilePath, nil, &env); err != nil {
		return models.User{}, err
	}
	return env.Data, nil
}

// UpdateProfile PUTs patch and returns the fields the server echoed back.
// Fields the server left out stay nil in the result.
func (h *HTTPClient) UpdateProfile(ctx context.Context, patch models.UserPatch) (models.UserPatch, error) {
	var env envelope[models.UserPatch]
	if err := h.Do(ctx, http.MethodPut, profilePath, patch, &env); err != nil {
		return models.UserPatch{}, err
	}
	return env.Data, nil
}

// GetPortfolio accepts both the {data} envelope and the bare serializer body.
func (h *HTTPClient) GetPortfolio(ctx context.Context) (models.Portfolio, error) {
	var env dataOrBare[models.Portfolio]
	if err := h.Do(ctx, http.MethodGet, h.portfolioPath, nil, &env); err != nil {
		return models.Portfolio{}, err
	}
	return env.Data, nil
}

func (h *HTTPClient) UpdatePortfolio(ctx context.Context, p models.Portfolio) (models.Portfolio, error) {
	var env dataOrBare[models.Portfolio]
	if err := h.Do(ctx, http.MethodPut, h.portfolioPath, p, &env); err != nil {
		return models.Portfolio{}, err
	}
	return env.Data, nil
}
