package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/coinwatch/assethub/db/models"
)

func (svc *AssethubService) Favorites(ctx context.Context) ([]models.Favorite, error) {
	favorites := []models.Favorite{}
	err := svc.DB.NewSelect().Model(&favorites).Order("id ASC").Scan(ctx)
	return favorites, err
}

// AddFavorite is an idempotent find-or-create. The unique index on
// asset_id makes this safe under concurrent requests: the losing insert is
// a no-op and both callers end up with the same row.
func (svc *AssethubService) AddFavorite(ctx context.Context, assetID string) (*models.Favorite, error) {
	favorite := &models.Favorite{AssetID: assetID}
	_, err := svc.DB.NewInsert().
		Model(favorite).
		On("CONFLICT (asset_id) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return nil, err
	}

	existing := &models.Favorite{}
	err = svc.DB.NewSelect().
		Model(existing).
		Where("asset_id = ?", assetID).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return existing, nil
}

func (svc *AssethubService) RemoveFavorite(ctx context.Context, id int64) error {
	result, err := svc.DB.NewDelete().
		Model((*models.Favorite)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrFavoriteNotFound
		}
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrFavoriteNotFound
	}
	return nil
}
