package notification

import (
	"context"
	"database/sql"
	"fmt"

	"legatia/internal/notifications/models"
	id "legatia/pkg/domain"
	"legatia/pkg/optional"
	"legatia/pkg/platform/sentinel"
	txcontext "legatia/pkg/platform/tx"
)

type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, n *models.Notification) error {
	_, err := txcontext.Exec(ctx, s.db).ExecContext(ctx, `
		INSERT INTO notifications (id, recipient_id, title, message, type, read, action_url, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, n.ID.String(), n.RecipientID.String(), n.Title, n.Message, string(n.Type), n.Read,
		nullString(n.ActionURL), nullString(n.Metadata), n.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListByRecipient(ctx context.Context, recipient id.UserID) ([]*models.Notification, error) {
	rows, err := txcontext.Exec(ctx, s.db).QueryContext(ctx, `
		SELECT id, recipient_id, title, message, type, read, action_url, metadata, created_at
		FROM notifications
		WHERE recipient_id = $1
		ORDER BY created_at DESC, id
	`, recipient.String())
	if err != nil {
		return nil, fmt.Errorf("query notifications: %w", err)
	}
	defer rows.Close()

	var out []*models.Notification
	for rows.Next() {
		var (
			n                   models.Notification
			rawID, rawRecipient string
			kind                string
			actionURL, metadata sql.NullString
		)
		if err := rows.Scan(&rawID, &rawRecipient, &n.Title, &n.Message, &kind, &n.Read,
			&actionURL, &metadata, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		if n.ID, err = id.ParseNotificationID(rawID); err != nil {
			return nil, err
		}
		if n.RecipientID, err = id.ParseUserID(rawRecipient); err != nil {
			return nil, err
		}
		n.Type = models.Type(kind)
		n.ActionURL = fromNull(actionURL)
		n.Metadata = fromNull(metadata)
		out = append(out, &n)
	}
	return out, rows.Err()
}

func (s *PostgresStore) CountUnread(ctx context.Context, recipient id.UserID) (int, error) {
	var count int
	err := txcontext.Exec(ctx, s.db).QueryRowContext(ctx,
		`SELECT count(*) FROM notifications WHERE recipient_id = $1 AND NOT read`,
		recipient.String()).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count unread: %w", err)
	}
	return count, nil
}

func (s *PostgresStore) MarkRead(ctx context.Context, notificationID id.NotificationID, recipient id.UserID) error {
	res, err := txcontext.Exec(ctx, s.db).ExecContext(ctx,
		`UPDATE notifications SET read = TRUE WHERE id = $1 AND recipient_id = $2`,
		notificationID.String(), recipient.String())
	if err != nil {
		return fmt.Errorf("mark read: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) MarkAllRead(ctx context.Context, recipient id.UserID) (int, error) {
	res, err := txcontext.Exec(ctx, s.db).ExecContext(ctx,
		`UPDATE notifications SET read = TRUE WHERE recipient_id = $1 AND NOT read`,
		recipient.String())
	if err != nil {
		return 0, fmt.Errorf("mark all read: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("mark all read: %w", err)
	}
	return int(n), nil
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
