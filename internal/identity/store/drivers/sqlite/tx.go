package sqlite

import (
	"database/sql"
	"errors"

	"github.com/Soulfra/agent-router-sub005/internal/identity/store"
)

type sqliteTx struct {
	tx   *sql.Tx
	done bool
}

func (t *sqliteTx) Identities() store.Identities { return &identitiesRepo{q: t.tx} }
func (t *sqliteTx) Actions() store.Actions       { return &actionsRepo{q: t.tx} }

func (t *sqliteTx) Commit() error {
	if t.done {
		return errors.New("sqlite: transaction already finished")
	}
	t.done = true
	return t.tx.Commit()
}

func (t *sqliteTx) Rollback() error {
	if t.done {
		return nil
	}
	t.done = true
	return t.tx.Rollback()
}
