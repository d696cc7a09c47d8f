package index

import (
	"context"
	"database/sql"
	"embed"
	"io/fs"

	"github.com/pressly/goose/v3"

	"github.com/FocuswithJustin/conllu/core/errors"
)

//go:embed migrations/*.sql
var migrations embed.FS

func newProvider(db *sql.DB) (*goose.Provider, error) {
	fsys, err := fs.Sub(migrations, "migrations")
	if err != nil {
		return nil, err
	}
	return goose.NewProvider(goose.DialectSQLite3, db, fsys)
}

// migrate runs all pending migrations.
func migrate(ctx context.Context, db *sql.DB) error {
	p, err := newProvider(db)
	if err != nil {
		return errors.Wrap(err, "failed to create migration provider")
	}
	if _, err := p.Up(ctx); err != nil {
		return errors.Wrap(err, "failed to run migrations")
	}
	return nil
}

// SchemaVersion returns the current migration version.
func (ix *Index) SchemaVersion(ctx context.Context) (int64, error) {
	p, err := newProvider(ix.db)
	if err != nil {
		return 0, err
	}
	return p.GetDBVersion(ctx)
}
