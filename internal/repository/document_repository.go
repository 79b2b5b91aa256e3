package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/myconference/api/internal/model"
)

// DocumentRepo persists conference documents.
type DocumentRepo struct{ DB *sql.DB }

func NewDocumentRepo(db *sql.DB) *DocumentRepo { return &DocumentRepo{DB: db} }

var _ DocumentStore = (*DocumentRepo)(nil)

func (r *DocumentRepo) GetByID(ctx context.Context, id string) (*model.Document, error) {
	var d model.Document
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, title, description, doc_type, data, conference_id FROM documents WHERE id=? LIMIT 1",
		id).Scan(&d.ID, &d.Title, &d.Description, &d.Type, &d.Data, &d.ConferenceID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *DocumentRepo) Create(ctx context.Context, d *model.Document) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO documents (id, title, description, doc_type, data, conference_id) VALUES (?,?,?,?,?,?)",
		d.ID, d.Title, d.Description, d.Type, []byte(d.Data), d.ConferenceID)
	return err
}

func (r *DocumentRepo) Update(ctx context.Context, d *model.Document) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE documents SET title=?, description=?, doc_type=?, data=? WHERE id=?",
		d.Title, d.Description, d.Type, []byte(d.Data), d.ID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *DocumentRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM documents WHERE id=?", id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// requireRow maps zero affected rows to ErrNotFound for updates and
// deletes addressed by id.
func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
