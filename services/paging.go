package services

import (
	"context"

	apierrors "myapp/errors"
	"myapp/utils"

	"gorm.io/gorm"
)

// Paged is one page of a list result.
type Paged[T any] struct {
	Items []T
	Count int64
	Page  utils.Page
}

// paginate counts model rows matching scope, resolves page against that count and
// returns a fresh query narrowed to the page window. Chained gorm queries are not
// reusable after a finisher, so scope is applied twice.
func paginate(ctx context.Context, db *gorm.DB, model interface{}, scope func(*gorm.DB) *gorm.DB, page utils.Page) (*gorm.DB, int64, utils.Page, error) {
	var count int64
	if err := db.WithContext(ctx).Model(model).Scopes(scope).Count(&count).Error; err != nil {
		return nil, 0, page, err
	}

	resolved, ok := page.Resolve(count)
	if !ok {
		return nil, count, resolved, apierrors.ErrInvalidPage
	}

	query := db.WithContext(ctx).Scopes(scope).Offset(resolved.Offset()).Limit(resolved.Size)
	return query, count, resolved, nil
}

func allRows(db *gorm.DB) *gorm.DB {
	return db
}
