package repo

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/kirkdiggler/dungeonmaster/internal/rpgerr"
)

// wrapErr classifies a raw sql error into the engine's error taxonomy
// (spec §7). sql.ErrNoRows becomes CodeNotFoundEntity; SQLite constraint
// violations (foreign key, unique/singleton) become CodeConflict; anything
// else is CodeInternal.
func wrapErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return rpgerr.New(rpgerr.CodeNotFoundEntity, op+": not found", rpgerr.WithMeta("cause", err.Error()))
	}
	msg := err.Error()
	if strings.Contains(msg, "UNIQUE constraint") || strings.Contains(msg, "FOREIGN KEY constraint") ||
		strings.Contains(msg, "CHECK constraint") {
		return rpgerr.New(rpgerr.CodeConflict, op+": constraint violation", rpgerr.WithMeta("cause", msg))
	}
	return rpgerr.WrapWithCode(err, rpgerr.CodeInternal, op)
}
