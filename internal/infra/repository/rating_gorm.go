package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RatingGormRepository struct {
	db *gorm.DB
}

func NewRatingGormRepository(db *gorm.DB) *RatingGormRepository {
	return &RatingGormRepository{db: db}
}

// (user, product, order)で一意のupsert
// アプリ側のcheck-then-writeではなくユニークインデックスに任せる
func (r *RatingGormRepository) Upsert(ctx context.Context, rating model.Rating) (model.Rating, error) {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "user_id"}, {Name: "product_id"}, {Name: "order_id"},
			},
			DoUpdates: clause.AssignmentColumns([]string{"rating", "review", "images", "updated_at"}),
		}).
		Create(&rating).Error
	if err != nil {
		return model.Rating{}, err
	}

	//conflict時はratingのIDが入らないことがあるので取り直す
	var saved model.Rating
	err = r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ? AND order_id = ?",
			rating.UserID, rating.ProductID, rating.OrderID).
		First(&saved).Error
	if err != nil {
		return model.Rating{}, err
	}
	return saved, nil
}

func (r *RatingGormRepository) FindByID(ctx context.Context, id int64) (model.Rating, error) {
	var rt model.Rating
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&rt).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Rating{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Rating{}, err
	}
	return rt, nil
}

func (r *RatingGormRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Rating{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *RatingGormRepository) ListByProductID(ctx context.Context, productID int64, page int, limit int) ([]model.Rating, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Rating{}).
		Where("product_id = ?", productID).
		Count(&total).Error; err != nil {
		return []model.Rating{}, 0, err
	}

	var items []model.Rating
	offset := (page - 1) * limit
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at desc, id desc").
		Limit(limit).
		Offset(offset).
		Find(&items).Error
	if err != nil {
		return []model.Rating{}, 0, err
	}

	return items, total, nil
}

func (r *RatingGormRepository) ListByUserID(ctx context.Context, userID int64) ([]model.Rating, error) {
	var items []model.Rating
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc, id desc").
		Find(&items).Error
	if err != nil {
		return []model.Rating{}, err
	}
	return items, nil
}

func (r *RatingGormRepository) ListAll(ctx context.Context, page int, limit int) ([]model.Rating, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Rating{}).Count(&total).Error; err != nil {
		return []model.Rating{}, 0, err
	}

	var items []model.Rating
	offset := (page - 1) * limit
	err := r.db.WithContext(ctx).
		Order("created_at desc, id desc").
		Limit(limit).
		Offset(offset).
		Find(&items).Error
	if err != nil {
		return []model.Rating{}, 0, err
	}

	return items, total, nil
}

// 平均と件数を一度のSELECTで取る
func (r *RatingGormRepository) AggregateByProductID(ctx context.Context, productID int64) (float64, int64, error) {
	var row struct {
		Avg   float64
		Count int64
	}
	err := r.db.WithContext(ctx).Model(&model.Rating{}).
		Select("COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS count").
		Where("product_id = ?", productID).
		Scan(&row).Error
	if err != nil {
		return 0, 0, err
	}
	return row.Avg, row.Count, nil
}
