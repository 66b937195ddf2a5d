package family

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"legatia/internal/family/models"
	"legatia/internal/platform/postgres"
	id "legatia/pkg/domain"
	"legatia/pkg/optional"
	"legatia/pkg/platform/sentinel"
	txcontext "legatia/pkg/platform/tx"
)

const uniqueViolation = "23505"

// PostgresStore persists family aggregates across the families,
// family_members and member_events tables.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const familyColumns = `id, name, description, admin_id, is_visible, created_at, updated_at`

func (s *PostgresStore) Create(ctx context.Context, f *models.Family) error {
	return postgres.WithTx(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO families (`+familyColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, f.ID.String(), f.Name, f.Description, f.AdminID.String(), f.IsVisible, f.CreatedAt, f.UpdatedAt)
		if err != nil {
			var pqErr *pq.Error
			if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
				return fmt.Errorf("family %s: %w", f.ID, sentinel.ErrConflict)
			}
			return fmt.Errorf("insert family: %w", err)
		}
		return s.syncMembers(ctx, tx, f)
	})
}

// Save writes the family row and reconciles members and events with the
// aggregate: upserts present members, deletes removed ones.
func (s *PostgresStore) Save(ctx context.Context, f *models.Family) error {
	return postgres.WithTx(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			UPDATE families SET name = $2, description = $3, is_visible = $4, updated_at = $5
			WHERE id = $1
		`, f.ID.String(), f.Name, f.Description, f.IsVisible, f.UpdatedAt)
		if err != nil {
			return fmt.Errorf("update family: %w", err)
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return sentinel.ErrNotFound
		}
		return s.syncMembers(ctx, tx, f)
	})
}

func (s *PostgresStore) syncMembers(ctx context.Context, tx *sql.Tx, f *models.Family) error {
	keep := make([]string, 0, len(f.Members))
	for i := range f.Members {
		keep = append(keep, f.Members[i].ID.String())
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM family_members WHERE family_id = $1 AND NOT (id::text = ANY($2))`,
		f.ID.String(), pq.Array(keep)); err != nil {
		return fmt.Errorf("delete removed members: %w", err)
	}

	for pos := range f.Members {
		m := &f.Members[pos]
		var linked any
		if userID, ok := m.LinkedUserID.Get(); ok {
			linked = userID.String()
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO family_members (id, family_id, position, linked_user_id, full_name, surname_at_birth,
				sex, birthday, birth_city, birth_country, death_date, relationship, created_at, created_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
			ON CONFLICT (id) DO UPDATE SET
				position = EXCLUDED.position,
				linked_user_id = EXCLUDED.linked_user_id,
				full_name = EXCLUDED.full_name,
				surname_at_birth = EXCLUDED.surname_at_birth,
				sex = EXCLUDED.sex,
				birthday = EXCLUDED.birthday,
				birth_city = EXCLUDED.birth_city,
				birth_country = EXCLUDED.birth_country,
				death_date = EXCLUDED.death_date,
				relationship = EXCLUDED.relationship
		`, m.ID.String(), f.ID.String(), pos, linked, m.FullName, m.SurnameAtBirth, m.Sex,
			nullString(m.Birthday), nullString(m.BirthCity), nullString(m.BirthCountry), nullString(m.DeathDate),
			m.Relationship, m.CreatedAt, m.CreatedBy.String())
		if err != nil {
			var pqErr *pq.Error
			if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
				return fmt.Errorf("member %s: %w", m.ID, sentinel.ErrConflict)
			}
			return fmt.Errorf("upsert member: %w", err)
		}
		for _, e := range m.Events {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO member_events (id, member_id, title, description, event_date, event_type, created_at, created_by)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
				ON CONFLICT (id) DO UPDATE SET
					title = EXCLUDED.title,
					description = EXCLUDED.description,
					event_date = EXCLUDED.event_date,
					event_type = EXCLUDED.event_type
			`, e.ID.String(), m.ID.String(), e.Title, e.Description, e.Date, string(e.Type), e.CreatedAt, e.CreatedBy.String())
			if err != nil {
				return fmt.Errorf("upsert event: %w", err)
			}
		}
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, familyID id.FamilyID) (*models.Family, error) {
	families, err := s.query(ctx, `SELECT `+familyColumns+` FROM families WHERE id = $1`, familyID.String())
	if err != nil {
		return nil, err
	}
	if len(families) == 0 {
		return nil, sentinel.ErrNotFound
	}
	return families[0], nil
}

func (s *PostgresStore) ListForUser(ctx context.Context, userID id.UserID) ([]*models.Family, error) {
	return s.query(ctx, `
		SELECT `+familyColumns+` FROM families f
		WHERE f.admin_id = $1
		   OR EXISTS (SELECT 1 FROM family_members m WHERE m.family_id = f.id AND m.linked_user_id = $1)
		ORDER BY f.created_at, f.id
	`, userID.String())
}

func (s *PostgresStore) ListAdministeredBy(ctx context.Context, userID id.UserID) ([]*models.Family, error) {
	return s.query(ctx, `
		SELECT `+familyColumns+` FROM families WHERE admin_id = $1 ORDER BY created_at, id
	`, userID.String())
}

func (s *PostgresStore) ListVisible(ctx context.Context) ([]*models.Family, error) {
	return s.query(ctx, `
		SELECT `+familyColumns+` FROM families WHERE is_visible ORDER BY created_at, id
	`)
}

// query loads the selected family rows, then their members and events in
// two batched queries.
func (s *PostgresStore) query(ctx context.Context, q string, args ...any) ([]*models.Family, error) {
	exec := txcontext.Exec(ctx, s.db)
	rows, err := exec.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query families: %w", err)
	}
	defer rows.Close()

	var (
		families []*models.Family
		byID     = map[string]*models.Family{}
		ids      []string
	)
	for rows.Next() {
		var (
			f               models.Family
			rawID, rawAdmin string
		)
		if err := rows.Scan(&rawID, &f.Name, &f.Description, &rawAdmin, &f.IsVisible, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan family: %w", err)
		}
		if f.ID, err = id.ParseFamilyID(rawID); err != nil {
			return nil, err
		}
		if f.AdminID, err = id.ParseUserID(rawAdmin); err != nil {
			return nil, err
		}
		families = append(families, &f)
		byID[rawID] = &f
		ids = append(ids, rawID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return families, nil
	}
	if err := s.loadMembers(ctx, exec, byID, ids); err != nil {
		return nil, err
	}
	return families, nil
}

func (s *PostgresStore) loadMembers(ctx context.Context, exec txcontext.Executor, byID map[string]*models.Family, ids []string) error {
	rows, err := exec.QueryContext(ctx, `
		SELECT id, family_id, linked_user_id, full_name, surname_at_birth, sex, birthday, birth_city,
			birth_country, death_date, relationship, created_at, created_by
		FROM family_members
		WHERE family_id::text = ANY($1)
		ORDER BY family_id, position
	`, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("query members: %w", err)
	}
	defer rows.Close()

	type ref struct {
		family *models.Family
		index  int
	}
	members := map[string]ref{}
	var memberIDs []string
	for rows.Next() {
		var (
			m                                      models.Member
			rawID, rawFamily, rawCreatedBy         string
			linked, birthday, city, country, death sql.NullString
		)
		if err := rows.Scan(&rawID, &rawFamily, &linked, &m.FullName, &m.SurnameAtBirth, &m.Sex,
			&birthday, &city, &country, &death, &m.Relationship, &m.CreatedAt, &rawCreatedBy); err != nil {
			return fmt.Errorf("scan member: %w", err)
		}
		if m.ID, err = id.ParseMemberID(rawID); err != nil {
			return err
		}
		if m.FamilyID, err = id.ParseFamilyID(rawFamily); err != nil {
			return err
		}
		if m.CreatedBy, err = id.ParseUserID(rawCreatedBy); err != nil {
			return err
		}
		if linked.Valid {
			userID, err := id.ParseUserID(linked.String)
			if err != nil {
				return err
			}
			m.LinkedUserID = optional.Some(userID)
		}
		m.Birthday = fromNull(birthday)
		m.BirthCity = fromNull(city)
		m.BirthCountry = fromNull(country)
		m.DeathDate = fromNull(death)

		f := byID[rawFamily]
		f.Members = append(f.Members, m)
		members[rawID] = ref{family: f, index: len(f.Members) - 1}
		memberIDs = append(memberIDs, rawID)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	if len(memberIDs) == 0 {
		return nil
	}

	evRows, err := exec.QueryContext(ctx, `
		SELECT id, member_id, title, description, event_date, event_type, created_at, created_by
		FROM member_events
		WHERE member_id::text = ANY($1)
		ORDER BY event_date, created_at, id
	`, pq.Array(memberIDs))
	if err != nil {
		return fmt.Errorf("query events: %w", err)
	}
	defer evRows.Close()
	for evRows.Next() {
		var (
			e                            models.Event
			rawID, rawMember, rawCreated string
			eventType                    string
		)
		if err := evRows.Scan(&rawID, &rawMember, &e.Title, &e.Description, &e.Date, &eventType, &e.CreatedAt, &rawCreated); err != nil {
			return fmt.Errorf("scan event: %w", err)
		}
		if e.ID, err = id.ParseEventID(rawID); err != nil {
			return err
		}
		if e.MemberID, err = id.ParseMemberID(rawMember); err != nil {
			return err
		}
		if e.CreatedBy, err = id.ParseUserID(rawCreated); err != nil {
			return err
		}
		e.Type = models.EventType(eventType)
		r := members[rawMember]
		m := &r.family.Members[r.index]
		m.Events = append(m.Events, e)
	}
	return evRows.Err()
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
