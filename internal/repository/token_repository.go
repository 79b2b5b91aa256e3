package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/myconference/api/internal/model"
)

// TokenRepo persists access and refresh tokens. Tokens are deactivated
// on rotation, redemption and logout but never deleted, so the session
// history stays retrievable.
type TokenRepo struct{ DB *sql.DB }

func NewTokenRepo(db *sql.DB) *TokenRepo { return &TokenRepo{DB: db} }

var _ TokenStore = (*TokenRepo)(nil)

// GetAccess fetches an access token by id, populating its user when the
// token is not anonymous.
func (r *TokenRepo) GetAccess(ctx context.Context, id string) (*model.AccessToken, error) {
	var (
		at     model.AccessToken
		userID sql.NullString
	)
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, active, user_id, application_id, device, created, used, expires
		 FROM access_tokens WHERE id=? LIMIT 1`,
		id).Scan(&at.ID, &at.Active, &userID, &at.ApplicationID, &at.Device,
		&at.Created, &at.Used, &at.Expires)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if userID.Valid {
		at.UserID = &userID.String
		at.User = &model.User{ID: userID.String}
	}
	return &at, nil
}

// GetRefresh fetches a refresh token by id.
func (r *TokenRepo) GetRefresh(ctx context.Context, id string) (*model.RefreshToken, error) {
	var (
		rt     model.RefreshToken
		userID sql.NullString
	)
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, active, user_id, access_token_id, application_id, device, created, expires
		 FROM refresh_tokens WHERE id=? LIMIT 1`,
		id).Scan(&rt.ID, &rt.Active, &userID, &rt.AccessTokenID, &rt.ApplicationID,
		&rt.Device, &rt.Created, &rt.Expires)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if userID.Valid {
		rt.UserID = &userID.String
	}
	return &rt, nil
}

// CreatePair inserts an access/refresh pair in one transaction so a
// client never observes a half-issued session.
func (r *TokenRepo) CreatePair(ctx context.Context, at *model.AccessToken, rt *model.RefreshToken) (err error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()
	if _, err = tx.ExecContext(ctx,
		`INSERT INTO access_tokens (id, active, user_id, application_id, device, created, used, expires)
		 VALUES (?,?,?,?,?,?,?,?)`,
		at.ID, at.Active, nullable(at.UserID), at.ApplicationID, at.Device,
		at.Created, at.Used, at.Expires); err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO refresh_tokens (id, active, user_id, access_token_id, application_id, device, created, expires)
		 VALUES (?,?,?,?,?,?,?,?)`,
		rt.ID, rt.Active, nullable(rt.UserID), rt.AccessTokenID, rt.ApplicationID,
		rt.Device, rt.Created, rt.Expires)
	return err
}

// DeactivateSession bulk-deactivates every token for the exact
// (user, application, device) triple. The null-safe comparison makes a
// nil user match the device's anonymous sessions.
func (r *TokenRepo) DeactivateSession(ctx context.Context, userID *string, applicationID, device string) (err error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()
	if _, err = tx.ExecContext(ctx,
		"UPDATE access_tokens SET active=0 WHERE user_id <=> ? AND application_id=? AND device=? AND active=1",
		nullable(userID), applicationID, device); err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx,
		"UPDATE refresh_tokens SET active=0 WHERE user_id <=> ? AND application_id=? AND device=? AND active=1",
		nullable(userID), applicationID, device)
	return err
}

// RedeemRefresh is the single-use gate: the conditional update only
// succeeds for the first concurrent redeemer.
func (r *TokenRepo) RedeemRefresh(ctx context.Context, id string) (bool, error) {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE refresh_tokens SET active=0 WHERE id=? AND active=1", id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// Logout deactivates the access token and the refresh tokens bound to it.
func (r *TokenRepo) Logout(ctx context.Context, accessTokenID string) (err error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()
	if _, err = tx.ExecContext(ctx,
		"UPDATE access_tokens SET active=0 WHERE id=?", accessTokenID); err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx,
		"UPDATE refresh_tokens SET active=0 WHERE access_token_id=?", accessTokenID)
	return err
}

// nullable converts an optional user id to a driver-friendly value.
func nullable(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
