package claim

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"legatia/internal/claims/models"
	id "legatia/pkg/domain"
	"legatia/pkg/optional"
	"legatia/pkg/platform/sentinel"
	txcontext "legatia/pkg/platform/tx"
)

const uniqueViolation = "23505"

const claimColumns = `id, requester_id, family_id, member_id, requester_snapshot, member_snapshot,
	status, admin_message, system_reason, created_at, decided_at`

// PostgresStore persists claims. The partial unique index on
// (requester_id, member_id) WHERE status = 'pending' backs the one-pending rule.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, c *models.Claim) error {
	requester, member, err := marshalSnapshots(c)
	if err != nil {
		return err
	}
	_, err = txcontext.Exec(ctx, s.db).ExecContext(ctx, `
		INSERT INTO claims (`+claimColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, c.ID.String(), c.RequesterID.String(), c.FamilyID.String(), c.MemberID.String(),
		requester, member, string(c.Status), nullString(c.AdminMessage), nullString(c.SystemReason),
		c.CreatedAt, nullTime(c.DecidedAt))
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return fmt.Errorf("claim for member %s: %w", c.MemberID, sentinel.ErrConflict)
		}
		return fmt.Errorf("insert claim: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, claimID id.ClaimID) (*models.Claim, error) {
	out, err := s.query(ctx, `SELECT `+claimColumns+` FROM claims WHERE id = $1`, claimID.String())
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, sentinel.ErrNotFound
	}
	return out[0], nil
}

// Save writes the mutable columns. Snapshots are immutable and not rewritten.
func (s *PostgresStore) Save(ctx context.Context, c *models.Claim) error {
	res, err := txcontext.Exec(ctx, s.db).ExecContext(ctx, `
		UPDATE claims
		SET status = $2, admin_message = $3, system_reason = $4, decided_at = $5
		WHERE id = $1
	`, c.ID.String(), string(c.Status), nullString(c.AdminMessage), nullString(c.SystemReason), nullTime(c.DecidedAt))
	if err != nil {
		return fmt.Errorf("update claim: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) ListByRequester(ctx context.Context, requester id.UserID) ([]*models.Claim, error) {
	return s.query(ctx, `SELECT `+claimColumns+` FROM claims
		WHERE requester_id = $1 ORDER BY created_at DESC, id`, requester.String())
}

func (s *PostgresStore) ListPendingByFamilies(ctx context.Context, familyIDs []id.FamilyID) ([]*models.Claim, error) {
	if len(familyIDs) == 0 {
		return []*models.Claim{}, nil
	}
	ids := make([]string, len(familyIDs))
	for i, fid := range familyIDs {
		ids[i] = fid.String()
	}
	return s.query(ctx, `SELECT `+claimColumns+` FROM claims
		WHERE family_id::text = ANY($1) AND status = 'pending'
		ORDER BY created_at DESC, id`, pq.Array(ids))
}

func (s *PostgresStore) ListPendingByMember(ctx context.Context, memberID id.MemberID) ([]*models.Claim, error) {
	return s.query(ctx, `SELECT `+claimColumns+` FROM claims
		WHERE member_id = $1 AND status = 'pending'
		ORDER BY created_at DESC, id`, memberID.String())
}

func (s *PostgresStore) ListStalePending(ctx context.Context, cutoff time.Time) ([]*models.Claim, error) {
	return s.query(ctx, `SELECT `+claimColumns+` FROM claims
		WHERE status = 'pending' AND created_at <= $1
		ORDER BY created_at DESC, id`, cutoff)
}

func (s *PostgresStore) query(ctx context.Context, q string, args ...any) ([]*models.Claim, error) {
	rows, err := txcontext.Exec(ctx, s.db).QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query claims: %w", err)
	}
	defer rows.Close()

	out := []*models.Claim{}
	for rows.Next() {
		var (
			c                                   models.Claim
			rawID, rawRequester, rawFam, rawMem string
			requester, member                   []byte
			status                              string
			adminMessage, systemReason          sql.NullString
			decidedAt                           sql.NullTime
		)
		if err := rows.Scan(&rawID, &rawRequester, &rawFam, &rawMem, &requester, &member,
			&status, &adminMessage, &systemReason, &c.CreatedAt, &decidedAt); err != nil {
			return nil, fmt.Errorf("scan claim: %w", err)
		}
		if c.ID, err = id.ParseClaimID(rawID); err != nil {
			return nil, err
		}
		if c.RequesterID, err = id.ParseUserID(rawRequester); err != nil {
			return nil, err
		}
		if c.FamilyID, err = id.ParseFamilyID(rawFam); err != nil {
			return nil, err
		}
		if c.MemberID, err = id.ParseMemberID(rawMem); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(requester, &c.RequesterProfile); err != nil {
			return nil, fmt.Errorf("decode requester snapshot: %w", err)
		}
		if err := json.Unmarshal(member, &c.Member); err != nil {
			return nil, fmt.Errorf("decode member snapshot: %w", err)
		}
		c.Status = models.Status(status)
		c.AdminMessage = fromNull(adminMessage)
		c.SystemReason = fromNull(systemReason)
		if decidedAt.Valid {
			c.DecidedAt = optional.Some(decidedAt.Time)
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}

func marshalSnapshots(c *models.Claim) ([]byte, []byte, error) {
	requester, err := json.Marshal(c.RequesterProfile)
	if err != nil {
		return nil, nil, fmt.Errorf("encode requester snapshot: %w", err)
	}
	member, err := json.Marshal(c.Member)
	if err != nil {
		return nil, nil, fmt.Errorf("encode member snapshot: %w", err)
	}
	return requester, member, nil
}

func nullString(v optional.Value[string]) sql.NullString {
	s, ok := v.Get()
	return sql.NullString{String: s, Valid: ok}
}

func fromNull(v sql.NullString) optional.Value[string] {
	if !v.Valid {
		return optional.None[string]()
	}
	return optional.Some(v.String)
}

func nullTime(v optional.Value[time.Time]) sql.NullTime {
	t, ok := v.Get()
	return sql.NullTime{Time: t, Valid: ok}
}
