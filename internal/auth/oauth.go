package auth

import (
	"golang.org/x/oauth2"
)

const (
	// Strava OAuth endpoints
	AuthURL  = "https://www.strava.com/oauth/authorize"
	TokenURL = "https://www.strava.com/oauth/token"
)

// Scopes required to read all activities, including private ones.
// Strava uses comma-separated scopes inside a single value.
var Scopes = []string{
	"activity:read_all",
}

// Config holds the OAuth client credentials.
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string // e.g. "http://localhost:8080/callback"
}

// NewOAuthConfig creates an oauth2.Config from our Config.
func NewOAuthConfig(cfg Config) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Endpoint: oauth2.Endpoint{
			AuthURL:  AuthURL,
			TokenURL: TokenURL,
		},
		RedirectURL: cfg.RedirectURL,
		Scopes:      Scopes,
	}
}

// Result contains the token and athlete info from a successful auth.
type Result struct {
	Token     *oauth2.Token
	AthleteID int64
}

// ExtractAthleteID pulls the athlete id out of the token extras; Strava
// embeds the athlete object in its token response.
func ExtractAthleteID(token *oauth2.Token) int64 {
	if athlete, ok := token.Extra("athlete").(map[string]interface{}); ok {
		if id, ok := athlete["id"].(float64); ok {
			return int64(id)
		}
	}
	return 0
}
