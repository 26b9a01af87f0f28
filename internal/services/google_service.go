package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"golang.org/x/oauth2"
)

// GoogleVerifier resolves a Google OAuth access token to the account's email.
type GoogleVerifier interface {
	EmailFromToken(ctx context.Context, accessToken string) (string, error)
}

type googleVerifier struct {
	userinfoURL string
	httpClient  *http.Client
}

func NewGoogleVerifier(userinfoURL string, httpClient *http.Client) GoogleVerifier {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &googleVerifier{userinfoURL: userinfoURL, httpClient: httpClient}
}

type googleUserinfo struct {
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
}

func (g *googleVerifier) EmailFromToken(ctx context.Context, accessToken string) (string, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, g.httpClient)
	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken, TokenType: "Bearer"}))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.userinfoURL, nil)
	if err != nil {
		return "", err
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("userinfo request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return "", fmt.Errorf("userinfo returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var info googleUserinfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return "", fmt.Errorf("decode userinfo: %w", err)
	}
	email := strings.ToLower(strings.TrimSpace(info.Email))
	if email == "" {
		return "", fmt.Errorf("userinfo has no email")
	}
	return email, nil
}
