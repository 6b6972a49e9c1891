// Package api es el cliente HTTP de la API de Ternakku usado por farmctl.
// Adjunta el access token de la Session y, ante un 401, renueva la sesión
// una sola vez y reintenta una sola vez.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/Virgo-SSS/Ternakku/internal/platform/httpclient"
)

const DefaultTimeout = 10 * time.Second

// Refresher canjea un refresh token por tokens nuevos.
type Refresher interface {
	Refresh(ctx context.Context, refreshToken string) (Tokens, error)
}

type Options struct {
	BaseURL string
	Timeout time.Duration // por request; default DefaultTimeout

	// Opcional: si es nil se usa HTTPRefresher contra la misma BaseURL.
	Refresher Refresher

	// Solo tests.
	HTTPClient *http.Client
}

type Client struct {
	http      *httpclient.Client
	session   *Session
	refresher Refresher
	timeout   time.Duration

	// un solo refresh en vuelo por sesión
	refreshes singleflight.Group
}

func New(session *Session, opts Options) (*Client, error) {
	if session == nil {
		return nil, fmt.Errorf("api: session is required")
	}
	if strings.TrimSpace(opts.BaseURL) == "" {
		return nil, fmt.Errorf("api: base url is required")
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	hc, err := httpclient.NewWithBaseURL(opts.BaseURL, timeout)
	if err != nil {
		return nil, fmt.Errorf("api: %w", err)
	}
	if opts.HTTPClient != nil {
		hc.HTTP = opts.HTTPClient
	}

	c := &Client{http: hc, session: session, refresher: opts.Refresher, timeout: timeout}
	if c.refresher == nil {
		c.refresher = &HTTPRefresher{http: hc}
	}
	return c, nil
}

func (c *Client) Session() *Session { return c.session }

// Do manda method path?query con el body in (JSON, opcional) y decodifica
// la respuesta en out (opcional). Un 401 dispara a lo sumo un refresh y un
// reintento; nunca hay una tercera llamada.
func (c *Client) Do(ctx context.Context, method, path string, q url.Values, in, out any) error {
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	token := c.session.AccessToken()
	err := c.send(ctx, method, path, token, in, out)
	if httpclient.StatusOf(err) != http.StatusUnauthorized {
		return err
	}
	first := ErrorMessage(err)

	fresh, rerr := c.refresh(ctx, token)
	if rerr != nil {
		// el 401 original va primero: StatusOf sigue viendo 401
		return &AuthError{Message: first, Err: errors.Join(err, rerr)}
	}

	err = c.send(ctx, method, path, fresh, in, out)
	if httpclient.StatusOf(err) == http.StatusUnauthorized {
		return &AuthError{Message: ErrorMessage(err), Err: err}
	}
	return err
}

func (c *Client) send(ctx context.Context, method, path, token string, in, out any) error {
	var headers map[string]string
	if token != "" {
		headers = map[string]string{"Authorization": "Bearer " + token}
	}
	return c.http.DoJSON(ctx, method, path, headers, in, out)
}

// refresh devuelve un access token distinto de stale. Si otra goroutine ya
// renovó la sesión mientras tanto, reutiliza ese token sin llamar al IAM.
// El refresh compartido no hereda la cancelación de quien lo inició: cada
// caller deja de esperar con su propio ctx.
func (c *Client) refresh(ctx context.Context, stale string) (string, error) {
	ch := c.refreshes.DoChan("refresh", func() (any, error) {
		if cur := c.session.AccessToken(); cur != "" && cur != stale {
			return cur, nil
		}

		rt := c.session.RefreshToken()
		if rt == "" {
			return "", ErrNoRefreshToken
		}

		rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
		defer cancel()
		t, err := c.refresher.Refresh(rctx, rt)
		if err != nil {
			return "", err
		}
		c.session.Set(t)
		return t.AccessToken, nil
	})

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	}
}

// HTTPRefresher llama a POST /auth/refresh de la propia API (sin Authorization).
type HTTPRefresher struct {
	http *httpclient.Client
}

func NewHTTPRefresher(baseURL string, timeout time.Duration) (*HTTPRefresher, error) {
	hc, err := httpclient.NewWithBaseURL(baseURL, timeout)
	if err != nil {
		return nil, fmt.Errorf("api: %w", err)
	}
	return &HTTPRefresher{http: hc}, nil
}

func (r *HTTPRefresher) Refresh(ctx context.Context, refreshToken string) (Tokens, error) {
	var env Envelope[Tokens]
	in := map[string]string{"refresh_token": refreshToken}
	if err := r.http.DoJSON(ctx, http.MethodPost, "/auth/refresh", nil, in, &env); err != nil {
		return Tokens{}, err
	}
	if env.Data.AccessToken == "" {
		return Tokens{}, fmt.Errorf("api: refresh returned no access token")
	}
	return env.Data, nil
}
