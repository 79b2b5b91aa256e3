package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/myconference/api/internal/model"
)

// ConferenceRepo persists conferences and their role-bucketed
// membership. Membership is stored only in conference_users rows; the
// user side of the relation is always derived from them.
type ConferenceRepo struct{ DB *sql.DB }

func NewConferenceRepo(db *sql.DB) *ConferenceRepo { return &ConferenceRepo{DB: db} }

var _ ConferenceStore = (*ConferenceRepo)(nil)

// Create inserts the conference and its initial owner membership in one
// transaction.
func (r *ConferenceRepo) Create(ctx context.Context, conf *model.Conference, ownerID string) (err error) {
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
		"INSERT INTO conferences (id, name, description, css) VALUES (?,?,?,?)",
		conf.ID, conf.Name, conf.Description, conf.CSS); err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx,
		"INSERT INTO conference_users (conference_id, user_id, role) VALUES (?,?,?)",
		conf.ID, ownerID, model.RoleOwner)
	return err
}

// Get loads the conference row and its role set.
func (r *ConferenceRepo) Get(ctx context.Context, id string) (*model.Conference, error) {
	var conf model.Conference
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, name, description, css FROM conferences WHERE id=? LIMIT 1",
		id).Scan(&conf.ID, &conf.Name, &conf.Description, &conf.CSS)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.DB.QueryContext(ctx,
		"SELECT user_id, role FROM conference_users WHERE conference_id=?", id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	conf.Members = model.RoleSet{}
	for rows.Next() {
		var (
			userID string
			role   string
		)
		if err := rows.Scan(&userID, &role); err != nil {
			return nil, err
		}
		r := model.Role(role)
		conf.Members[r] = append(conf.Members[r], userID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &conf, nil
}

// Children loads the child resources listed in conference
// representations.
func (r *ConferenceRepo) Children(ctx context.Context, id string) (*model.ConferenceChildren, error) {
	ch := &model.ConferenceChildren{}

	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, title, description, doc_type, data, conference_id FROM documents WHERE conference_id=?", id)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var d model.Document
		if err := rows.Scan(&d.ID, &d.Title, &d.Description, &d.Type, &d.Data, &d.ConferenceID); err != nil {
			rows.Close()
			return nil, err
		}
		ch.Documents = append(ch.Documents, d)
	}
	if err := closeRows(rows); err != nil {
		return nil, err
	}

	rows, err = r.DB.QueryContext(ctx,
		"SELECT id, name, lat, lng, details, conference_id FROM venues WHERE conference_id=?", id)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var v model.Venue
		if err := rows.Scan(&v.ID, &v.Name, &v.Loc.Lat, &v.Loc.Lng, &v.Details, &v.ConferenceID); err != nil {
			rows.Close()
			return nil, err
		}
		ch.Venues = append(ch.Venues, v)
	}
	if err := closeRows(rows); err != nil {
		return nil, err
	}

	rows, err = r.DB.QueryContext(ctx,
		"SELECT id, title, body, date, conference_id FROM announcements WHERE conference_id=?", id)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var a model.Announcement
		if err := rows.Scan(&a.ID, &a.Title, &a.Body, &a.Date, &a.ConferenceID); err != nil {
			rows.Close()
			return nil, err
		}
		ch.Announcements = append(ch.Announcements, a)
	}
	if err := closeRows(rows); err != nil {
		return nil, err
	}

	rows, err = r.DB.QueryContext(ctx,
		"SELECT id, name, origin, details, group_name, conference_id FROM organizers WHERE conference_id=?", id)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var o model.Organizer
		if err := rows.Scan(&o.ID, &o.Name, &o.Origin, &o.Details, &o.Group, &o.ConferenceID); err != nil {
			rows.Close()
			return nil, err
		}
		ch.Organizers = append(ch.Organizers, o)
	}
	if err := closeRows(rows); err != nil {
		return nil, err
	}

	rows, err = r.DB.QueryContext(ctx,
		"SELECT id, name, charge, origin, description, picture_url, conference_id FROM speakers WHERE conference_id=?", id)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var s model.Speaker
		if err := rows.Scan(&s.ID, &s.Name, &s.Charge, &s.Origin, &s.Description, &s.PictureURL, &s.ConferenceID); err != nil {
			rows.Close()
			return nil, err
		}
		ch.Speakers = append(ch.Speakers, s)
	}
	if err := closeRows(rows); err != nil {
		return nil, err
	}

	return ch, nil
}

// Update writes the mutable conference fields.
func (r *ConferenceRepo) Update(ctx context.Context, conf *model.Conference) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE conferences SET name=?, description=?, css=? WHERE id=?",
		conf.Name, conf.Description, conf.CSS, conf.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the conference and every row referencing it in one
// transaction: documents, venues, announcements, organizers, speakers,
// agenda events, invite codes and membership.
func (r *ConferenceRepo) Delete(ctx context.Context, id string) (err error) {
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
	for _, table := range []string{
		"documents", "venues", "announcements", "organizers",
		"speakers", "agenda_events", "invite_codes", "conference_users",
	} {
		if _, err = tx.ExecContext(ctx,
			"DELETE FROM "+table+" WHERE conference_id=?", id); err != nil {
			return err
		}
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM conferences WHERE id=?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// AddMember grants a role on the conference. Re-granting an existing
// membership is a no-op.
func (r *ConferenceRepo) AddMember(ctx context.Context, conferenceID, userID string, role model.Role) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT IGNORE INTO conference_users (conference_id, user_id, role) VALUES (?,?,?)",
		conferenceID, userID, role)
	return err
}

func closeRows(rows *sql.Rows) error {
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}
	return rows.Close()
}
