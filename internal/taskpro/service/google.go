package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// GoogleProfile is the subset of the Google userinfo response the login
// flow consumes.
type GoogleProfile struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// GoogleExchanger abstracts the Google OAuth code exchange so tests can
// substitute a fake.
type GoogleExchanger interface {
	// ConsentURL builds the provider URL the client redirects to.
	ConsentURL(state string) string

	// Exchange trades an authorization code for the user's profile.
	Exchange(ctx context.Context, code string) (GoogleProfile, error)
}

const (
	googleAuthURL     = "https://accounts.google.com/o/oauth2/v2/auth"
	googleTokenURL    = "https://oauth2.googleapis.com/token"
	googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"
)

// googleExchanger implements GoogleExchanger against the real Google
// endpoints.
type googleExchanger struct {
	clientID     string
	clientSecret string
	redirectURL  string
	client       *http.Client
}

// NewGoogleExchanger wires the production Google OAuth flow.
func NewGoogleExchanger(clientID, clientSecret, redirectURL string) GoogleExchanger {
	return &googleExchanger{
		clientID:     clientID,
		clientSecret: clientSecret,
		redirectURL:  redirectURL,
		client:       &http.Client{Timeout: 10 * time.Second},
	}
}

func (g *googleExchanger) ConsentURL(state string) string {
	q := url.Values{
		"client_id":     {g.clientID},
		"redirect_uri":  {g.redirectURL},
		"response_type": {"code"},
		"scope":         {"email profile"},
		"state":         {state},
	}
	return googleAuthURL + "?" + q.Encode()
}

func (g *googleExchanger) Exchange(ctx context.Context, code string) (GoogleProfile, error) {
	token, err := g.exchangeCode(ctx, code)
	if err != nil {
		return GoogleProfile{}, err
	}
	return g.fetchProfile(ctx, token)
}

func (g *googleExchanger) exchangeCode(ctx context.Context, code string) (string, error) {
	form := url.Values{
		"client_id":     {g.clientID},
		"client_secret": {g.clientSecret},
		"redirect_uri":  {g.redirectURL},
		"grant_type":    {"authorization_code"},
		"code":          {code},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, googleTokenURL,
		strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("google token endpoint returned %d", resp.StatusCode)
	}

	var body struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", err
	}
	if body.AccessToken == "" {
		return "", fmt.Errorf("google token endpoint returned no access token")
	}
	return body.AccessToken, nil
}

func (g *googleExchanger) fetchProfile(ctx context.Context, accessToken string) (GoogleProfile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, googleUserInfoURL, nil)
	if err != nil {
		return GoogleProfile{}, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := g.client.Do(req)
	if err != nil {
		return GoogleProfile{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return GoogleProfile{}, fmt.Errorf("google userinfo endpoint returned %d", resp.StatusCode)
	}

	var profile GoogleProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return GoogleProfile{}, err
	}
	return profile, nil
}
