package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eventdesk/registration-api/internal/core/domain"
	"github.com/eventdesk/registration-api/internal/core/ports"
)

// TokenHandler exposes the OAuth-style token endpoint.
type TokenHandler struct {
	service ports.TokenService
}

func NewTokenHandler(service ports.TokenService) *TokenHandler {
	return &TokenHandler{service: service}
}

// tokenResponse follows the OAuth access-token wire shape.
type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
	Scope        string `json:"scope"`
}

// Issue handles POST /oauth/token. Client credentials arrive via HTTP
// basic auth; the grant parameters via form fields.
//
// @Summary      Issue or refresh an access token
// @Tags         oauth
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        grant_type     formData  string  true   "password or refresh_token"
// @Param        username       formData  string  false  "resource owner email (password grant)"
// @Param        password       formData  string  false  "resource owner secret (password grant)"
// @Param        scope          formData  string  false  "space-separated scopes"
// @Param        refresh_token  formData  string  false  "refresh token (refresh grant)"
// @Success      200  {object}  tokenResponse
// @Failure      400  {object}  errorBody
// @Failure      401  {object}  errorBody
// @Router       /oauth/token [post]
func (h *TokenHandler) Issue(c echo.Context) error {
	clientID, clientSecret, ok := c.Request().BasicAuth()
	if !ok {
		return domain.ErrInvalidClient
	}

	ctx := c.Request().Context()

	var grant *domain.Grant
	var err error
	switch c.FormValue("grant_type") {
	case domain.GrantTypePassword:
		grant, err = h.service.IssuePasswordGrant(ctx, ports.PasswordGrantInput{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Username:     c.FormValue("username"),
			Password:     c.FormValue("password"),
			Scopes:       splitScopes(c.FormValue("scope")),
		})
	case domain.GrantTypeRefreshToken:
		grant, err = h.service.Refresh(ctx, ports.RefreshGrantInput{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RefreshToken: c.FormValue("refresh_token"),
		})
	default:
		return domain.ErrUnsupportedGrantType
	}
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, tokenResponse{
		AccessToken:  grant.AccessToken,
		TokenType:    "bearer",
		RefreshToken: grant.RefreshToken,
		ExpiresIn:    int64(time.Until(grant.ExpiresAt).Seconds()),
		Scope:        strings.Join(grant.Scopes, " "),
	})
}

func splitScopes(raw string) []string {
	if raw == "" {
		return nil
	}
	return strings.Fields(raw)
}
