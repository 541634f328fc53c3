package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/oauth2"

	"trainlog/internal/auth"
	"trainlog/internal/config"
	"trainlog/internal/store"
	"trainlog/internal/strava"
)

// AuthCmd runs the interactive Strava OAuth flow and persists the
// resulting tokens.
func AuthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "auth",
		Short: "Authenticate with Strava",
		Long:  "Run the Strava OAuth flow in the browser and store the resulting tokens locally.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if err := cfg.ValidateStrava(); err != nil {
				return err
			}

			db, err := store.Open()
			if err != nil {
				return fmt.Errorf("opening database: %w", err)
			}
			defer db.Close()

			return authenticate(cmd.Context(), db, cfg)
		},
	}
}

// loadConfig loads the config file, creating an example one on first run.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if errors.Is(err, config.ErrNoConfig) {
		fmt.Println("No config file found. Creating example config...")
		if err := config.CreateExample(); err != nil {
			return nil, fmt.Errorf("creating example config: %w", err)
		}
		configDir, _ := config.GetConfigDir()
		fmt.Printf("\nPlease edit the config file at:\n  %s/config.json\n\n", configDir)
		fmt.Println("You need to add your Strava and Intervals.icu credentials.")
		fmt.Println("Strava: https://www.strava.com/settings/api")
		return nil, fmt.Errorf("config not set up yet")
	}
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

func oauthConfig(cfg *config.Config) *oauth2.Config {
	return auth.NewOAuthConfig(auth.Config{
		ClientID:     cfg.Strava.ClientID,
		ClientSecret: cfg.Strava.ClientSecret,
		RedirectURL:  fmt.Sprintf("http://localhost:%d/callback", auth.CallbackPort),
	})
}

func authenticate(ctx context.Context, db *store.Store, cfg *config.Config) error {
	result, err := auth.Authenticate(ctx, oauthConfig(cfg))
	if err != nil {
		return err
	}

	if err := db.SaveAuth(&store.Auth{
		AthleteID:    result.AthleteID,
		AccessToken:  result.Token.AccessToken,
		RefreshToken: result.Token.RefreshToken,
		ExpiresAt:    result.Token.Expiry,
	}); err != nil {
		return fmt.Errorf("saving auth: %w", err)
	}

	fmt.Println()
	fmt.Println(successStyle.Render(fmt.Sprintf("Successfully authenticated as athlete %d!", result.AthleteID)))
	return nil
}

// stravaClient builds an authenticated Strava client from the stored
// tokens, refreshing (and re-authenticating interactively) as needed.
func stravaClient(ctx context.Context, db *store.Store, cfg *config.Config) (*strava.Client, error) {
	storedAuth, err := db.GetAuth()
	if errors.Is(err, store.ErrNoAuth) {
		fmt.Println("No authentication found. Starting OAuth flow...")
		if err := authenticate(ctx, db, cfg); err != nil {
			return nil, fmt.Errorf("authentication: %w", err)
		}
		storedAuth, err = db.GetAuth()
		if err != nil {
			return nil, fmt.Errorf("fetching auth after login: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("checking auth: %w", err)
	}

	token := &oauth2.Token{
		AccessToken:  storedAuth.AccessToken,
		RefreshToken: storedAuth.RefreshToken,
		Expiry:       storedAuth.ExpiresAt,
	}

	tokenSource := auth.NewTokenSource(oauthConfig(cfg), token, func(newToken *oauth2.Token) error {
		return db.UpdateTokens(newToken.AccessToken, newToken.RefreshToken, newToken.Expiry)
	})

	if _, err := tokenSource.Token(); err != nil {
		fmt.Println("Stored token is invalid or expired. Re-authenticating...")
		if err := authenticate(ctx, db, cfg); err != nil {
			return nil, fmt.Errorf("re-authentication: %w", err)
		}
		fresh, err := db.GetAuth()
		if err != nil {
			return nil, fmt.Errorf("fetching auth after login: %w", err)
		}
		token = &oauth2.Token{
			AccessToken:  fresh.AccessToken,
			RefreshToken: fresh.RefreshToken,
			Expiry:       fresh.ExpiresAt,
		}
		tokenSource = auth.NewTokenSource(oauthConfig(cfg), token, func(newToken *oauth2.Token) error {
			return db.UpdateTokens(newToken.AccessToken, newToken.RefreshToken, newToken.Expiry)
		})
	}

	return strava.NewClient(tokenSource), nil
}
