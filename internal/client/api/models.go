package api

import (
	"context"
	"net/http"
	"net/url"
)

// Formas JSON de la API, tal como las devuelve el servidor.

type Cow struct {
	ID          string  `json:"id,omitempty"`
	Name        string  `json:"name"`
	Status      string  `json:"status"`
	StatusLabel string  `json:"status_label,omitempty"`
	Gender      string  `json:"gender"`
	BirthDate   string  `json:"birth_date"`
	Weight      float64 `json:"weight"`
	Type        string  `json:"type"`
}

type StatusOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type Worker struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	Gender      string `json:"gender"`
	GenderLabel string `json:"gender_label,omitempty"`
	PhoneNumber string `json:"phone_number"`
	Email       string `json:"email"`
}

type Transaction struct {
	ID              string  `json:"id,omitempty"`
	Type            string  `json:"type"`
	TypeLabel       string  `json:"type_label,omitempty"`
	Amount          float64 `json:"amount"`
	Category        string  `json:"category,omitempty"`
	TransactionDate string  `json:"transaction_date"`
	Description     string  `json:"description,omitempty"`
}

type Summary struct {
	Income     float64            `json:"income"`
	Expense    float64            `json:"expense"`
	Balance    float64            `json:"balance"`
	Count      int                `json:"count"`
	ByCategory map[string]float64 `json:"by_category"`
}

type Profile struct {
	ID     string            `json:"id"`
	UserID string            `json:"user_id"`
	Fields map[string]string `json:"fields"`
}

func (c *Client) Cows() *Resource[Cow]                 { return NewResource[Cow](c, "/cow") }
func (c *Client) Workers() *Resource[Worker]           { return NewResource[Worker](c, "/worker") }
func (c *Client) Transactions() *Resource[Transaction] { return NewResource[Transaction](c, "/keuangan") }

func (c *Client) CowStatuses(ctx context.Context) ([]StatusOption, error) {
	var env Envelope[[]StatusOption]
	err := c.Do(ctx, http.MethodGet, "/cow/statuses", nil, nil, &env)
	return env.Data, err
}

func (c *Client) TransactionSummary(ctx context.Context, filter map[string]string) (Summary, error) {
	q := url.Values{}
	for k, v := range filter {
		if v != "" {
			q.Set(k, v)
		}
	}
	var env Envelope[Summary]
	err := c.Do(ctx, http.MethodGet, "/keuangan/summary", q, nil, &env)
	return env.Data, err
}

func (c *Client) MyProfile(ctx context.Context) (Profile, error) {
	var env Envelope[Profile]
	err := c.Do(ctx, http.MethodGet, "/profile/me", nil, nil, &env)
	return env.Data, err
}

// SaveProfile crea el perfil si id está vacío; si no, lo actualiza.
func (c *Client) SaveProfile(ctx context.Context, id string, fields map[string]any) (Profile, string, error) {
	var env Envelope[Profile]
	var err error
	if id == "" {
		err = c.Do(ctx, http.MethodPost, "/profile", nil, fields, &env)
	} else {
		err = c.Do(ctx, http.MethodPatch, "/profile/"+url.PathEscape(id), nil, fields, &env)
	}
	return env.Data, env.Message, err
}
