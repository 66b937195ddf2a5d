package profile

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"legatia/internal/identity/models"
	id "legatia/pkg/domain"
	"legatia/pkg/platform/sentinel"
	txcontext "legatia/pkg/platform/tx"
)

const uniqueViolation = "23505"

// PostgresStore persists profiles in the profiles table.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const profileColumns = `user_id, full_name, surname_at_birth, sex, birthday, birth_city, birth_country, created_at, updated_at`

func (s *PostgresStore) Create(ctx context.Context, p *models.Profile) error {
	_, err := txcontext.Exec(ctx, s.db).ExecContext(ctx, `
		INSERT INTO profiles (`+profileColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, p.UserID.String(), p.FullName, p.SurnameAtBirth, p.Sex, p.Birthday, p.BirthCity, p.BirthCountry, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return fmt.Errorf("profile for %s: %w", p.UserID, sentinel.ErrConflict)
		}
		return fmt.Errorf("insert profile: %w", err)
	}
	return nil
}

func (s *PostgresStore) FindByUserID(ctx context.Context, userID id.UserID) (*models.Profile, error) {
	row := txcontext.Exec(ctx, s.db).QueryRowContext(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE user_id = $1`, userID.String())
	p, err := scanProfile(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find profile: %w", err)
	}
	return p, nil
}

func (s *PostgresStore) Update(ctx context.Context, p *models.Profile) error {
	res, err := txcontext.Exec(ctx, s.db).ExecContext(ctx, `
		UPDATE profiles
		SET full_name = $2, surname_at_birth = $3, sex = $4, birthday = $5,
		    birth_city = $6, birth_country = $7, updated_at = $8
		WHERE user_id = $1
	`, p.UserID.String(), p.FullName, p.SurnameAtBirth, p.Sex, p.Birthday, p.BirthCity, p.BirthCountry, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) Search(ctx context.Context, query string, exclude id.UserID, limit int) ([]*models.Profile, error) {
	pattern := "%" + escapeLike(strings.ToLower(query)) + "%"
	rows, err := txcontext.Exec(ctx, s.db).QueryContext(ctx, `
		SELECT `+profileColumns+`
		FROM profiles
		WHERE user_id <> $1
		  AND (user_id::text LIKE $2 OR lower(full_name) LIKE $2 OR lower(surname_at_birth) LIKE $2)
		ORDER BY full_name, user_id
		LIMIT $3
	`, exclude.String(), pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("search profiles: %w", err)
	}
	defer rows.Close()

	var out []*models.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProfile(row scanner) (*models.Profile, error) {
	var (
		p      models.Profile
		userID string
	)
	if err := row.Scan(&userID, &p.FullName, &p.SurnameAtBirth, &p.Sex, &p.Birthday,
		&p.BirthCity, &p.BirthCountry, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	parsed, err := id.ParseUserID(userID)
	if err != nil {
		return nil, err
	}
	p.UserID = parsed
	return &p, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
