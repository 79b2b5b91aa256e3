package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/myconference/api/internal/model"
)

// AgendaEventRepo persists conference agenda events.
type AgendaEventRepo struct{ DB *sql.DB }

func NewAgendaEventRepo(db *sql.DB) *AgendaEventRepo { return &AgendaEventRepo{DB: db} }

var _ AgendaEventStore = (*AgendaEventRepo)(nil)

func (r *AgendaEventRepo) GetByID(ctx context.Context, id string) (*model.AgendaEvent, error) {
	var e model.AgendaEvent
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, title, description, date, conference_id FROM agenda_events WHERE id=? LIMIT 1",
		id).Scan(&e.ID, &e.Title, &e.Description, &e.Date, &e.ConferenceID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *AgendaEventRepo) Create(ctx context.Context, e *model.AgendaEvent) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO agenda_events (id, title, description, date, conference_id) VALUES (?,?,?,?,?)",
		e.ID, e.Title, e.Description, e.Date, e.ConferenceID)
	return err
}

func (r *AgendaEventRepo) Update(ctx context.Context, e *model.AgendaEvent) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE agenda_events SET title=?, description=?, date=? WHERE id=?",
		e.Title, e.Description, e.Date, e.ID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *AgendaEventRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM agenda_events WHERE id=?", id)
	if err != nil {
		return err
	}
	return requireRow(res)
}
