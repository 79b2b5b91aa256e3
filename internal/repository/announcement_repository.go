package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/myconference/api/internal/model"
)

// AnnouncementRepo persists conference announcements.
type AnnouncementRepo struct{ DB *sql.DB }

func NewAnnouncementRepo(db *sql.DB) *AnnouncementRepo { return &AnnouncementRepo{DB: db} }

var _ AnnouncementStore = (*AnnouncementRepo)(nil)

func (r *AnnouncementRepo) GetByID(ctx context.Context, id string) (*model.Announcement, error) {
	var a model.Announcement
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, title, body, date, conference_id FROM announcements WHERE id=? LIMIT 1",
		id).Scan(&a.ID, &a.Title, &a.Body, &a.Date, &a.ConferenceID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AnnouncementRepo) Create(ctx context.Context, a *model.Announcement) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO announcements (id, title, body, date, conference_id) VALUES (?,?,?,?,?)",
		a.ID, a.Title, a.Body, a.Date, a.ConferenceID)
	return err
}

func (r *AnnouncementRepo) Update(ctx context.Context, a *model.Announcement) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE announcements SET title=?, body=?, date=? WHERE id=?",
		a.Title, a.Body, a.Date, a.ID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *AnnouncementRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM announcements WHERE id=?", id)
	if err != nil {
		return err
	}
	return requireRow(res)
}
