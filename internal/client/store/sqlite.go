// Package store persists client cache snapshots in a local SQLite file.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"

	_ "github.com/mattn/go-sqlite3"

	"legatia/internal/client"
)

const (
	kindFamily             = "family"
	kindMyClaim            = "my_claim"
	kindPendingClaim       = "pending_claim"
	kindSentInvitation     = "sent_invitation"
	kindReceivedInvitation = "received_invitation"
	kindNotification       = "notification"
	kindMatch              = "match"
	kindMeta               = "meta"

	metaUnreadCount = "unread_count"
)

const schema = `
CREATE TABLE IF NOT EXISTS entities (
	kind TEXT NOT NULL,
	id   TEXT NOT NULL,
	body TEXT NOT NULL,
	PRIMARY KEY (kind, id)
);`

// SQLiteStore keeps one row per cached entity, keyed by kind and id.
type SQLiteStore struct {
	db *sql.DB
}

// Open opens (or creates) the snapshot database at path. ":memory:" works
// for tests.
func Open(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// one connection keeps :memory: databases alive and serializes writers
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Save replaces the stored snapshot with c in one transaction.
func (s *SQLiteStore) Save(ctx context.Context, c *client.Cache) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM entities`); err != nil {
		return fmt.Errorf("clear snapshot: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO entities (kind, id, body) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	put := func(kind, key string, v any) error {
		body, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", kind, key, err)
		}
		if _, err := stmt.ExecContext(ctx, kind, key, string(body)); err != nil {
			return fmt.Errorf("insert %s %s: %w", kind, key, err)
		}
		return nil
	}

	for key, f := range c.Families {
		if err := put(kindFamily, key, f); err != nil {
			return err
		}
	}
	for key, cl := range c.MyClaims {
		if err := put(kindMyClaim, key, cl); err != nil {
			return err
		}
	}
	for key, cl := range c.PendingClaims {
		if err := put(kindPendingClaim, key, cl); err != nil {
			return err
		}
	}
	for key, inv := range c.SentInvitations {
		if err := put(kindSentInvitation, key, inv); err != nil {
			return err
		}
	}
	for key, inv := range c.ReceivedInvitations {
		if err := put(kindReceivedInvitation, key, inv); err != nil {
			return err
		}
	}
	for key, n := range c.Notifications {
		if err := put(kindNotification, key, n); err != nil {
			return err
		}
	}
	for i, m := range c.Matches {
		// rank keeps the server's ordering across a reload
		if err := put(kindMatch, fmt.Sprintf("%06d", i), m); err != nil {
			return err
		}
	}
	if err := put(kindMeta, metaUnreadCount, c.UnreadCount); err != nil {
		return err
	}
	return tx.Commit()
}

// Load rebuilds a cache from the stored snapshot. An empty database yields an
// empty cache.
func (s *SQLiteStore) Load(ctx context.Context) (*client.Cache, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT kind, id, body FROM entities ORDER BY kind, id`)
	if err != nil {
		return nil, fmt.Errorf("query snapshot: %w", err)
	}
	defer rows.Close()

	c := client.NewCache()
	for rows.Next() {
		var kind, key, body string
		if err := rows.Scan(&kind, &key, &body); err != nil {
			return nil, fmt.Errorf("scan entity: %w", err)
		}
		if err := decodeInto(c, kind, key, []byte(body)); err != nil {
			return nil, fmt.Errorf("decode %s %s: %w", kind, key, err)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate snapshot: %w", err)
	}
	return c, nil
}

func decodeInto(c *client.Cache, kind, key string, body []byte) error {
	switch kind {
	case kindFamily:
		var v client.Family
		if err := json.Unmarshal(body, &v); err != nil {
			return err
		}
		c.Families[key] = v
	case kindMyClaim, kindPendingClaim:
		var v client.Claim
		if err := json.Unmarshal(body, &v); err != nil {
			return err
		}
		if kind == kindMyClaim {
			c.MyClaims[key] = v
		} else {
			c.PendingClaims[key] = v
		}
	case kindSentInvitation, kindReceivedInvitation:
		var v client.Invitation
		if err := json.Unmarshal(body, &v); err != nil {
			return err
		}
		if kind == kindSentInvitation {
			c.SentInvitations[key] = v
		} else {
			c.ReceivedInvitations[key] = v
		}
	case kindNotification:
		var v client.Notification
		if err := json.Unmarshal(body, &v); err != nil {
			return err
		}
		c.Notifications[key] = v
	case kindMatch:
		var v client.Match
		if err := json.Unmarshal(body, &v); err != nil {
			return err
		}
		c.Matches = append(c.Matches, v)
	case kindMeta:
		if key == metaUnreadCount {
			n, err := strconv.Atoi(string(body))
			if err != nil {
				return err
			}
			c.UnreadCount = n
		}
	}
	return nil
}
