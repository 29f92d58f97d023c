package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/harshastride/interview-coach/internal/logger"
)

const googleUserinfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// GoogleOAuthService wraps the browser-redirect OAuth2 flow. When the client
// id/secret are unset the service reports unconfigured and login is disabled
// rather than failing at boot.
type GoogleOAuthService interface {
	Configured() bool
	AuthCodeURL(state string) string
	FetchProfile(ctx context.Context, code string) (GoogleProfile, error)
}

type googleOAuthService struct {
	log *logger.Logger
	cfg *oauth2.Config
}

func NewGoogleOAuthService(log *logger.Logger, clientID, clientSecret, appURL string) GoogleOAuthService {
	serviceLog := log.With("service", "GoogleOAuthService")
	var cfg *oauth2.Config
	if clientID != "" && clientSecret != "" {
		cfg = &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  appURL + "/auth/google/callback",
			Scopes:       []string{"profile", "email"},
			Endpoint:     google.Endpoint,
		}
	} else {
		serviceLog.Warn("GOOGLE_CLIENT_ID or GOOGLE_CLIENT_SECRET not set; OAuth login disabled")
	}
	return &googleOAuthService{log: serviceLog, cfg: cfg}
}

func (gs *googleOAuthService) Configured() bool {
	return gs.cfg != nil
}

func (gs *googleOAuthService) AuthCodeURL(state string) string {
	if gs.cfg == nil {
		return ""
	}
	return gs.cfg.AuthCodeURL(state)
}

func (gs *googleOAuthService) FetchProfile(ctx context.Context, code string) (GoogleProfile, error) {
	if gs.cfg == nil {
		return GoogleProfile{}, fmt.Errorf("oauth not configured")
	}
	token, err := gs.cfg.Exchange(ctx, code)
	if err != nil {
		return GoogleProfile{}, fmt.Errorf("exchange code: %w", err)
	}

	client := gs.cfg.Client(ctx, token)
	resp, err := client.Get(googleUserinfoURL)
	if err != nil {
		return GoogleProfile{}, fmt.Errorf("fetch userinfo: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return GoogleProfile{}, fmt.Errorf("fetch userinfo: status %d", resp.StatusCode)
	}

	var info struct {
		ID      string `json:"id"`
		Email   string `json:"email"`
		Name    string `json:"name"`
		Picture string `json:"picture"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return GoogleProfile{}, fmt.Errorf("decode userinfo: %w", err)
	}
	return GoogleProfile{
		Subject:   info.ID,
		Email:     info.Email,
		Name:      info.Name,
		AvatarURL: info.Picture,
	}, nil
}
