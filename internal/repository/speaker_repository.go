package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/myconference/api/internal/model"
)

// SpeakerRepo persists conference speakers.
type SpeakerRepo struct{ DB *sql.DB }

func NewSpeakerRepo(db *sql.DB) *SpeakerRepo { return &SpeakerRepo{DB: db} }

var _ SpeakerStore = (*SpeakerRepo)(nil)

func (r *SpeakerRepo) GetByID(ctx context.Context, id string) (*model.Speaker, error) {
	var s model.Speaker
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, name, charge, origin, description, picture_url, conference_id FROM speakers WHERE id=? LIMIT 1",
		id).Scan(&s.ID, &s.Name, &s.Charge, &s.Origin, &s.Description, &s.PictureURL, &s.ConferenceID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SpeakerRepo) Create(ctx context.Context, s *model.Speaker) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO speakers (id, name, charge, origin, description, picture_url, conference_id) VALUES (?,?,?,?,?,?,?)",
		s.ID, s.Name, s.Charge, s.Origin, s.Description, s.PictureURL, s.ConferenceID)
	return err
}

func (r *SpeakerRepo) Update(ctx context.Context, s *model.Speaker) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE speakers SET name=?, charge=?, origin=?, description=?, picture_url=? WHERE id=?",
		s.Name, s.Charge, s.Origin, s.Description, s.PictureURL, s.ID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *SpeakerRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM speakers WHERE id=?", id)
	if err != nil {
		return err
	}
	return requireRow(res)
}
