package api

import (
	"context"
	"net/http"

	"taskboard/internal/model"
)

// wireUser tolerates both "id" and Mongo-style "_id" identifier fields.
type wireUser struct {
	MongoID       string `json:"_id"`
	ID            string `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Avatar        string `json:"avatar"`
	WalletAddress string `json:"walletAddress"`
}

func (w wireUser) toModel() model.User {
	id := w.ID
	if id == "" {
		id = w.MongoID
	}
	return model.User{
		ID:            id,
		Name:          w.Name,
		Email:         w.Email,
		Avatar:        w.Avatar,
		WalletAddress: w.WalletAddress,
	}
}

type authData struct {
	User  wireUser `json:"user"`
	Token string   `json:"token"`
}

// Login authenticates with email and password. Returns the user profile
// and a session token. The token is not installed on the client; callers
// decide when to do that.
func (c *Client) Login(ctx context.Context, email, password string) (model.User, string, error) {
	body := map[string]string{"email": email, "password": password}
	var data authData
	err := c.do(ctx, http.MethodPost, "/auth/login", body, &data, false, "login failed")
	if err != nil {
		return model.User{}, "", err
	}
	return data.User.toModel(), data.Token, nil
}

// Signup creates an account. Same contract as Login.
func (c *Client) Signup(ctx context.Context, name, email, password string) (model.User, string, error) {
	body := map[string]string{"name": name, "email": email, "password": password}
	var data authData
	err := c.do(ctx, http.MethodPost, "/auth/signup", body, &data, false, "signup failed")
	if err != nil {
		return model.User{}, "", err
	}
	return data.User.toModel(), data.Token, nil
}

// VerifyToken asks the server to confirm the installed token and returns
// the authoritative user profile.
func (c *Client) VerifyToken(ctx context.Context) (model.User, error) {
	var data struct {
		User wireUser `json:"user"`
	}
	err := c.do(ctx, http.MethodGet, "/auth/verify-token", nil, &data, true, "session verification failed")
	if err != nil {
		return model.User{}, err
	}
	return data.User.toModel(), nil
}

// UpdateWallet links a wallet address to the authenticated user.
func (c *Client) UpdateWallet(ctx context.Context, address string) error {
	body := map[string]string{"address": address}
	return c.do(ctx, http.MethodPut, "/auth/wallet", body, nil, true, "wallet update failed")
}
