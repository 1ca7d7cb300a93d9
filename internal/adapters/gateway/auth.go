package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/Binarybee001/Shabana-Palace/internal/domain"
)

const authPath = "/auth/v1"

type tokenResponse struct {
	AccessToken string      `json:"access_token"`
	ExpiresIn   int         `json:"expires_in"`
	User        domain.User `json:"user"`
}

// SignIn exchanges credentials for a session via the password grant.
func (c *Client) SignIn(ctx context.Context, email, password string) (domain.Session, error) {
	q := url.Values{}
	q.Set("grant_type", "password")
	creds := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{Email: email, Password: password}

	var tok tokenResponse
	err := c.do(ctx, request{
		method: http.MethodPost,
		path:   authPath + "/token",
		query:  q,
		body:   creds,
	}, &tok)
	if err != nil {
		// bad credentials come back as 400 from the token endpoint
		if errors.Is(err, domain.ErrAuth) || errors.Is(err, domain.ErrNotFound) {
			return domain.Session{}, fmt.Errorf("%w: invalid email or password", domain.ErrAuth)
		}
		var bad *badRequestError
		if errors.As(err, &bad) {
			return domain.Session{}, fmt.Errorf("%w: invalid email or password", domain.ErrAuth)
		}
		return domain.Session{}, err
	}
	if tok.AccessToken == "" {
		return domain.Session{}, fmt.Errorf("%w: empty token", domain.ErrAuth)
	}
	return domain.Session{
		AccessToken: tok.AccessToken,
		ExpiresAt:   time.Now().Add(time.Duration(tok.ExpiresIn) * time.Second),
		User:        tok.User,
	}, nil
}

// SignOut revokes the bearer token. A failed revoke is not fatal to the
// caller; the local session is discarded regardless.
func (c *Client) SignOut(ctx context.Context, token string) error {
	return c.do(ctx, request{
		method: http.MethodPost,
		path:   authPath + "/logout",
		bearer: token,
	}, nil)
}

// Session resolves the user behind a bearer token, or nil when the token no
// longer identifies anyone.
func (c *Client) Session(ctx context.Context, token string) (*domain.Session, error) {
	if token == "" {
		return nil, nil
	}
	var user domain.User
	err := c.do(ctx, request{
		method: http.MethodGet,
		path:   authPath + "/user",
		bearer: token,
	}, &user)
	if err != nil {
		if errors.Is(err, domain.ErrAuth) || errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if user.ID == "" {
		return nil, nil
	}
	return &domain.Session{AccessToken: token, User: user}, nil
}
