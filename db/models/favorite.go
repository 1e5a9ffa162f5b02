package models

import (
	"context"
	"time"

	"github.com/uptrace/bun"
)

// Favorite : a bookmarked asset id. Assets themselves are never persisted,
// so asset_id is not a foreign key.
type Favorite struct {
	ID        int64     `json:"id" bun:",pk,autoincrement"`
	AssetID   string    `json:"asset_id" bun:",notnull" validate:"required"`
	CreatedAt time.Time `json:"created_at" bun:",nullzero,notnull,default:current_timestamp"`
	UpdatedAt time.Time `json:"updated_at" bun:",nullzero,notnull,default:current_timestamp"`
}

func (f *Favorite) BeforeAppendModel(ctx context.Context, query bun.Query) error {
	switch query.(type) {
	case *bun.UpdateQuery:
		f.UpdatedAt = time.Now()
	}
	return nil
}

var _ bun.BeforeAppendModelHook = (*Favorite)(nil)
