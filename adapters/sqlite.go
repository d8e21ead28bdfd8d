package adapters

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/kvistgaard/cubex/core"
)

// Register adapter
func init() {
	_ = register(&Sqlite{}, "sqlite", "sqlite3")
}

var _ Adapter = (*Sqlite)(nil)

type Sqlite struct{}

func (*Sqlite) Connect(url string) (core.Session, error) {
	db, err := sql.Open("sqlite", url)
	if err != nil {
		return nil, fmt.Errorf("unable to open sqlite database: %w", err)
	}

	return newSQLSession(db, func(int) string {
		return "?"
	}), nil
}
