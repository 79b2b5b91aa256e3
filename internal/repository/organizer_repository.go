package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/myconference/api/internal/model"
)

// OrganizerRepo persists conference organizers.
type OrganizerRepo struct{ DB *sql.DB }

func NewOrganizerRepo(db *sql.DB) *OrganizerRepo { return &OrganizerRepo{DB: db} }

var _ OrganizerStore = (*OrganizerRepo)(nil)

func (r *OrganizerRepo) GetByID(ctx context.Context, id string) (*model.Organizer, error) {
	var o model.Organizer
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, name, origin, details, group_name, conference_id FROM organizers WHERE id=? LIMIT 1",
		id).Scan(&o.ID, &o.Name, &o.Origin, &o.Details, &o.Group, &o.ConferenceID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrganizerRepo) Create(ctx context.Context, o *model.Organizer) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO organizers (id, name, origin, details, group_name, conference_id) VALUES (?,?,?,?,?,?)",
		o.ID, o.Name, o.Origin, o.Details, o.Group, o.ConferenceID)
	return err
}

func (r *OrganizerRepo) Update(ctx context.Context, o *model.Organizer) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE organizers SET name=?, origin=?, details=?, group_name=? WHERE id=?",
		o.Name, o.Origin, o.Details, o.Group, o.ID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *OrganizerRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM organizers WHERE id=?", id)
	if err != nil {
		return err
	}
	return requireRow(res)
}
