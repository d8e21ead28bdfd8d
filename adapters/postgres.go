package adapters

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/kvistgaard/cubex/core"
)

// Register adapter
func init() {
	_ = register(&Postgres{}, "postgres", "postgresql", "pg")
}

var _ Adapter = (*Postgres)(nil)

type Postgres struct{}

func (*Postgres) Connect(url string) (core.Session, error) {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to postgres database: %w", err)
	}

	return newSQLSession(db, func(i int) string {
		return fmt.Sprintf("$%d", i)
	}), nil
}
