package sqlite

import (
	"database/sql"

	"github.com/NituAlexandru/TaskPro-backend/internal/taskpro/store"
)

// tx wraps an *sql.Tx and exposes the same sub-repositories as Store.
type tx struct {
	sqlTx *sql.Tx
}

func newTx(sqlTx *sql.Tx) *tx { return &tx{sqlTx: sqlTx} }

func (t *tx) Commit() error   { return t.sqlTx.Commit() }
func (t *tx) Rollback() error { return t.sqlTx.Rollback() }

func (t *tx) Users() store.Users               { return &usersRepo{q: t.sqlTx} }
func (t *tx) Sessions() store.Sessions         { return &sessionsRepo{q: t.sqlTx} }
func (t *tx) Boards() store.Boards             { return &boardsRepo{q: t.sqlTx} }
func (t *tx) Columns() store.Columns           { return &columnsRepo{q: t.sqlTx} }
func (t *tx) Cards() store.Cards               { return &cardsRepo{q: t.sqlTx} }
func (t *tx) Invitations() store.Invitations   { return &invitationsRepo{q: t.sqlTx} }
func (t *tx) HelpRequests() store.HelpRequests { return &helpRequestsRepo{q: t.sqlTx} }
