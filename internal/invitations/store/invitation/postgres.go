package invitation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"legatia/internal/invitations/models"
	id "legatia/pkg/domain"
	"legatia/pkg/optional"
	"legatia/pkg/platform/sentinel"
	txcontext "legatia/pkg/platform/tx"
)

const uniqueViolation = "23505"

const invitationColumns = `id, family_id, family_name, inviter_id, inviter_name, invitee_id,
	relationship, message, status, created_at, responded_at`

// PostgresStore persists invitations. The partial unique index on
// (family_id, invitee_id) WHERE status = 'pending' backs the one-pending rule.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, inv *models.Invitation) error {
	_, err := txcontext.Exec(ctx, s.db).ExecContext(ctx, `
		INSERT INTO invitations (`+invitationColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, inv.ID.String(), inv.FamilyID.String(), inv.FamilyName, inv.InviterID.String(), inv.InviterName,
		inv.InviteeID.String(), inv.Relationship, nullString(inv.Message), string(inv.Status),
		inv.CreatedAt, nullTime(inv.RespondedAt))
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return fmt.Errorf("invitation for %s: %w", inv.InviteeID, sentinel.ErrConflict)
		}
		return fmt.Errorf("insert invitation: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, invitationID id.InvitationID) (*models.Invitation, error) {
	out, err := s.query(ctx, `SELECT `+invitationColumns+` FROM invitations WHERE id = $1`, invitationID.String())
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, sentinel.ErrNotFound
	}
	return out[0], nil
}

func (s *PostgresStore) Save(ctx context.Context, inv *models.Invitation) error {
	res, err := txcontext.Exec(ctx, s.db).ExecContext(ctx, `
		UPDATE invitations SET status = $2, responded_at = $3 WHERE id = $1
	`, inv.ID.String(), string(inv.Status), nullTime(inv.RespondedAt))
	if err != nil {
		return fmt.Errorf("update invitation: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) ListByInvitee(ctx context.Context, invitee id.UserID) ([]*models.Invitation, error) {
	return s.query(ctx, `SELECT `+invitationColumns+` FROM invitations
		WHERE invitee_id = $1 ORDER BY created_at DESC, id`, invitee.String())
}

func (s *PostgresStore) ListByInviter(ctx context.Context, inviter id.UserID) ([]*models.Invitation, error) {
	return s.query(ctx, `SELECT `+invitationColumns+` FROM invitations
		WHERE inviter_id = $1 ORDER BY created_at DESC, id`, inviter.String())
}

func (s *PostgresStore) ListPendingByFamily(ctx context.Context, familyID id.FamilyID) ([]*models.Invitation, error) {
	return s.query(ctx, `SELECT `+invitationColumns+` FROM invitations
		WHERE family_id = $1 AND status = 'pending'
		ORDER BY created_at DESC, id`, familyID.String())
}

func (s *PostgresStore) ListStalePending(ctx context.Context, cutoff time.Time) ([]*models.Invitation, error) {
	return s.query(ctx, `SELECT `+invitationColumns+` FROM invitations
		WHERE status = 'pending' AND created_at <= $1
		ORDER BY created_at DESC, id`, cutoff)
}

func (s *PostgresStore) query(ctx context.Context, q string, args ...any) ([]*models.Invitation, error) {
	rows, err := txcontext.Exec(ctx, s.db).QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query invitations: %w", err)
	}
	defer rows.Close()

	out := []*models.Invitation{}
	for rows.Next() {
		var (
			inv                                      models.Invitation
			rawID, rawFamily, rawInviter, rawInvitee string
			status                                   string
			message                                  sql.NullString
			respondedAt                              sql.NullTime
		)
		if err := rows.Scan(&rawID, &rawFamily, &inv.FamilyName, &rawInviter, &inv.InviterName, &rawInvitee,
			&inv.Relationship, &message, &status, &inv.CreatedAt, &respondedAt); err != nil {
			return nil, fmt.Errorf("scan invitation: %w", err)
		}
		if inv.ID, err = id.ParseInvitationID(rawID); err != nil {
			return nil, err
		}
		if inv.FamilyID, err = id.ParseFamilyID(rawFamily); err != nil {
			return nil, err
		}
		if inv.InviterID, err = id.ParseUserID(rawInviter); err != nil {
			return nil, err
		}
		if inv.InviteeID, err = id.ParseUserID(rawInvitee); err != nil {
			return nil, err
		}
		inv.Status = models.Status(status)
		if message.Valid {
			inv.Message = optional.Some(message.String)
		}
		if respondedAt.Valid {
			inv.RespondedAt = optional.Some(respondedAt.Time)
		}
		out = append(out, &inv)
	}
	return out, rows.Err()
}

func nullString(v optional.Value[string]) sql.NullString {
	s, ok := v.Get()
	return sql.NullString{String: s, Valid: ok}
}

func nullTime(v optional.Value[time.Time]) sql.NullTime {
	t, ok := v.Get()
	return sql.NullTime{Time: t, Valid: ok}
}
