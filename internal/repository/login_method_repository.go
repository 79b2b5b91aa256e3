package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/myconference/api/internal/model"
)

// LoginMethodRepo persists credential records. The (type, login_key)
// pair is unique, which is what makes an email registerable only once.
type LoginMethodRepo struct{ DB *sql.DB }

func NewLoginMethodRepo(db *sql.DB) *LoginMethodRepo { return &LoginMethodRepo{DB: db} }

var _ LoginMethodStore = (*LoginMethodRepo)(nil)

// Create inserts a login method row. A unique-key violation is reported
// as ErrDuplicate.
func (r *LoginMethodRepo) Create(ctx context.Context, lm *model.LoginMethod) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO login_methods (id, type, login_key, user_id, secret) VALUES (?,?,?,?,?)",
		lm.ID, lm.Type, lm.Key, lm.UserID, lm.Secret)
	if err != nil && strings.Contains(strings.ToLower(err.Error()), "1062") {
		return ErrDuplicate
	}
	return err
}

// GetByTypeAndKey fetches the login method for a credential type and key.
func (r *LoginMethodRepo) GetByTypeAndKey(ctx context.Context, typ, key string) (*model.LoginMethod, error) {
	var lm model.LoginMethod
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, type, login_key, user_id, secret FROM login_methods WHERE type=? AND login_key=? LIMIT 1",
		typ, key).Scan(&lm.ID, &lm.Type, &lm.Key, &lm.UserID, &lm.Secret)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &lm, nil
}
