package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Ошибки пользовательских эндпоинтов.
var (
	ErrInvalidCredentials = errors.New("invalid login or password")
	ErrLoginTaken         = errors.New("login already in use")
	ErrNoToken            = errors.New("no auth token in response")
)

// Credentials тело запросов login/register.
type Credentials struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// User ответ эндпоинта user/me.
type User struct {
	ID    int64  `json:"id"`
	Login string `json:"login"`
}

// Login authenticates and stores the issued token in the holder and local storage.
func (c *Client) Login(ctx context.Context, login, password string) error {
	token, err := c.credentialsCall(ctx, "user/login", login, password)
	if err != nil {
		var se *StatusError
		if errors.As(err, &se) && se.Code == http.StatusUnauthorized {
			return ErrInvalidCredentials
		}
		return err
	}
	return c.holder.Login(token)
}

// Register creates an account and logs in with the issued token.
func (c *Client) Register(ctx context.Context, login, password string) error {
	token, err := c.credentialsCall(ctx, "user/register", login, password)
	if err != nil {
		var se *StatusError
		if errors.As(err, &se) && se.Code == http.StatusConflict {
			return ErrLoginTaken
		}
		return err
	}
	return c.holder.Login(token)
}

// Logout forgets the token locally. The server keeps no session state.
func (c *Client) Logout() error {
	return c.holder.Logout()
}

// Me returns the user the current token belongs to.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var u User
	if err := c.GetJSON(ctx, "user/me", &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) credentialsCall(ctx context.Context, path, login, password string) (string, error) {
	b, err := json.Marshal(Credentials{Login: login, Password: password})
	if err != nil {
		return "", err
	}
	req, err := c.NewRequest(ctx, http.MethodPost, path, bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.Do(req)
	if err != nil {
		return "", err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	return tokenFromResponse(resp, body)
}

// tokenFromResponse берёт токен из JSON-тела, а при его отсутствии — из cookie auth_token.
func tokenFromResponse(resp *http.Response, body []byte) (string, error) {
	var tr tokenResponse
	if err := json.Unmarshal(body, &tr); err == nil && tr.Token != "" {
		return tr.Token, nil
	}
	for _, c := range resp.Cookies() {
		if c.Name == "auth_token" && c.Value != "" {
			return c.Value, nil
		}
	}
	return "", ErrNoToken
}
