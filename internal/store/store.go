package store

import (
	"database/sql"
	"errors"
	"time"
)

// Store is the application's data access layer: persisted OAuth tokens
// and the gear name cache.
type Store struct {
	db *sql.DB
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Auth holds the persisted Strava OAuth tokens.
type Auth struct {
	AthleteID    int64
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// GetAuth retrieves the stored authentication tokens.
func (s *Store) GetAuth() (*Auth, error) {
	row := s.db.QueryRow(`
		SELECT athlete_id, access_token, refresh_token, expires_at
		FROM auth WHERE id = 1`)

	var a Auth
	var expiresAt int64
	err := row.Scan(&a.AthleteID, &a.AccessToken, &a.RefreshToken, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoAuth
	}
	if err != nil {
		return nil, err
	}
	a.ExpiresAt = time.Unix(expiresAt, 0)
	return &a, nil
}

// SaveAuth stores or replaces the authentication tokens.
func (s *Store) SaveAuth(auth *Auth) error {
	_, err := s.db.Exec(`
		INSERT INTO auth (id, athlete_id, access_token, refresh_token, expires_at)
		VALUES (1, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			athlete_id = excluded.athlete_id,
			access_token = excluded.access_token,
			refresh_token = excluded.refresh_token,
			expires_at = excluded.expires_at,
			updated_at = CURRENT_TIMESTAMP`,
		auth.AthleteID, auth.AccessToken, auth.RefreshToken, auth.ExpiresAt.Unix())
	return err
}

// UpdateTokens updates just the access and refresh tokens.
func (s *Store) UpdateTokens(accessToken, refreshToken string, expiresAt time.Time) error {
	result, err := s.db.Exec(`
		UPDATE auth
		SET access_token = ?, refresh_token = ?, expires_at = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = 1`,
		accessToken, refreshToken, expiresAt.Unix())
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNoAuth
	}
	return nil
}

// GearName looks up a cached gear display name.
func (s *Store) GearName(gearID string) (string, bool, error) {
	row := s.db.QueryRow(`SELECT name FROM gear_names WHERE gear_id = ?`, gearID)

	var name string
	err := row.Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return name, true, nil
}

// PutGearName stores or refreshes a gear display name.
func (s *Store) PutGearName(gearID, name string) error {
	_, err := s.db.Exec(`
		INSERT INTO gear_names (gear_id, name)
		VALUES (?, ?)
		ON CONFLICT (gear_id) DO UPDATE SET
			name = excluded.name,
			updated_at = CURRENT_TIMESTAMP`,
		gearID, name)
	return err
}
