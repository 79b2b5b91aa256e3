package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/myconference/api/internal/model"
)

// InviteCodeRepo persists invite codes. Redemption is a conditional
// update so two concurrent redeemers cannot both consume one code.
type InviteCodeRepo struct{ DB *sql.DB }

func NewInviteCodeRepo(db *sql.DB) *InviteCodeRepo { return &InviteCodeRepo{DB: db} }

var _ InviteCodeStore = (*InviteCodeRepo)(nil)

func (r *InviteCodeRepo) GetByID(ctx context.Context, id string) (*model.InviteCode, error) {
	var (
		ic       model.InviteCode
		usedBy   sql.NullString
		usedDate sql.NullTime
	)
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, active, conference_id, created_by, used_by, recipient_email, recipient_name, created_date, used_date
		 FROM invite_codes WHERE id=? LIMIT 1`,
		id).Scan(&ic.ID, &ic.Active, &ic.ConferenceID, &ic.CreatedBy, &usedBy,
		&ic.RecipientEmail, &ic.RecipientName, &ic.CreatedDate, &usedDate)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if usedBy.Valid {
		ic.UsedBy = &usedBy.String
	}
	if usedDate.Valid {
		ic.UsedDate = &usedDate.Time
	}
	return &ic, nil
}

func (r *InviteCodeRepo) Create(ctx context.Context, ic *model.InviteCode) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO invite_codes (id, active, conference_id, created_by, recipient_email, recipient_name, created_date)
		 VALUES (?,?,?,?,?,?,?)`,
		ic.ID, ic.Active, ic.ConferenceID, ic.CreatedBy,
		ic.RecipientEmail, ic.RecipientName, ic.CreatedDate)
	return err
}

// Redeem consumes the code if it is still active and unused, recording
// the redeemer and timestamp. Reports whether this call won.
func (r *InviteCodeRepo) Redeem(ctx context.Context, id, userID string, at time.Time) (bool, error) {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE invite_codes SET active=0, used_by=?, used_date=? WHERE id=? AND active=1 AND used_by IS NULL",
		userID, at, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}
