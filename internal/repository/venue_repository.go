package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/myconference/api/internal/model"
)

// VenueRepo persists conference venues.
type VenueRepo struct{ DB *sql.DB }

func NewVenueRepo(db *sql.DB) *VenueRepo { return &VenueRepo{DB: db} }

var _ VenueStore = (*VenueRepo)(nil)

func (r *VenueRepo) GetByID(ctx context.Context, id string) (*model.Venue, error) {
	var v model.Venue
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, name, lat, lng, details, conference_id FROM venues WHERE id=? LIMIT 1",
		id).Scan(&v.ID, &v.Name, &v.Loc.Lat, &v.Loc.Lng, &v.Details, &v.ConferenceID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *VenueRepo) Create(ctx context.Context, v *model.Venue) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO venues (id, name, lat, lng, details, conference_id) VALUES (?,?,?,?,?,?)",
		v.ID, v.Name, v.Loc.Lat, v.Loc.Lng, v.Details, v.ConferenceID)
	return err
}

func (r *VenueRepo) Update(ctx context.Context, v *model.Venue) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE venues SET name=?, lat=?, lng=?, details=? WHERE id=?",
		v.Name, v.Loc.Lat, v.Loc.Lng, v.Details, v.ID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *VenueRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM venues WHERE id=?", id)
	if err != nil {
		return err
	}
	return requireRow(res)
}
