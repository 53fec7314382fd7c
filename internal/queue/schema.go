package queue

import (
	"context"
	_ "embed"
	"fmt"
)

//go:embed schema.sql
var schemaSQL string

// queueLayout is stored in SQLite's user_version. A database written with a
// different layout is rejected; it only holds jobs not yet drained, so
// deleting it loses nothing that a new invocation cannot queue again.
const queueLayout = 1

// migrate creates the tables of a fresh database and checks the layout of an
// existing one. It runs under BEGIN IMMEDIATE so two processes opening a new
// database at once cannot both create it.
func (s *Store) migrate(ctx context.Context) error {
	conn, err := s.db.Conn(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	if _, err := conn.ExecContext(ctx, "BEGIN IMMEDIATE"); err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_, _ = conn.ExecContext(context.WithoutCancel(ctx), "ROLLBACK")
		}
	}()

	var layout int
	if err := conn.QueryRowContext(ctx, "PRAGMA user_version").Scan(&layout); err != nil {
		return fmt.Errorf("read queue layout: %w", err)
	}
	switch layout {
	case queueLayout:
	case 0:
		if _, err := conn.ExecContext(ctx, schemaSQL); err != nil {
			return fmt.Errorf("create queue tables: %w", err)
		}
		if _, err := conn.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", queueLayout)); err != nil {
			return fmt.Errorf("record queue layout: %w", err)
		}
	default:
		return fmt.Errorf("%w: %s has layout %d, expected %d", ErrSchemaMismatch, s.path, layout, queueLayout)
	}

	if _, err := conn.ExecContext(ctx, "COMMIT"); err != nil {
		return err
	}
	committed = true
	return nil
}
