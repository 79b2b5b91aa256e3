package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/myconference/api/internal/model"
)

// ApplicationRepo reads the out-of-band provisioned client applications.
type ApplicationRepo struct{ DB *sql.DB }

func NewApplicationRepo(db *sql.DB) *ApplicationRepo { return &ApplicationRepo{DB: db} }

var _ ApplicationStore = (*ApplicationRepo)(nil)

// GetByID fetches an application by id.
func (r *ApplicationRepo) GetByID(ctx context.Context, id string) (*model.Application, error) {
	var app model.Application
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, name FROM applications WHERE id=? LIMIT 1",
		id).Scan(&app.ID, &app.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &app, nil
}
