package migrations

import (
	"context"

	"github.com/coinwatch/assethub/db/models"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		if _, err := db.NewCreateTable().
			Model((*models.Favorite)(nil)).
			IfNotExists().
			Exec(ctx); err != nil {
			return err
		}
		// duplicate prevention must live in the storage layer, the
		// find-or-create read alone races under concurrent requests
		if _, err := db.NewCreateIndex().
			Model((*models.Favorite)(nil)).
			Index("favorites_asset_id_key").
			Column("asset_id").
			Unique().
			IfNotExists().
			Exec(ctx); err != nil {
			return err
		}
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		_, err := db.NewDropTable().
			Model((*models.Favorite)(nil)).
			IfExists().
			Exec(ctx)
		return err
	})
}
