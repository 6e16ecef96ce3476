package postgres

import (
	"database/sql"
	"time"
)

type pointTypeTableModel struct {
	ID        string        `db:"id"`
	Name      string        `db:"name"`
	Category  string        `db:"category"`
	Points    sql.NullInt64 `db:"points"`
	CreatedAt time.Time     `db:"created_at"`
}

type pointTypeInsertModel struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	Category  string    `db:"category"`
	Points    int       `db:"points"`
	CreatedAt time.Time `db:"created_at"`
}
