package usecase

import (
	"context"
	"errors"
	"math"

	repo "app/internal/repository"
)

// RatingAggregatorは商品の平均評価と件数を再計算してProductへ書き戻す。
// レビューの作成・更新・削除のたびに明示的に呼ぶ（ORMフックにしない）
type RatingAggregator struct{}

func NewRatingAggregator() *RatingAggregator {
	return &RatingAggregator{}
}

// Recomputeは何度実行しても同じレビュー集合からは同じ結果になる
func (a *RatingAggregator) Recompute(ctx context.Context, r repo.TxRepos, productID int64) error {
	avg, count, err := r.Ratings().AggregateByProductID(ctx, productID)
	if err != nil {
		return err
	}

	//平均は小数1桁に丸める。レビューが無ければ0
	rating := 0.0
	if count > 0 {
		rating = math.Round(avg*10) / 10
	}

	err = r.Products().UpdateRatingStats(ctx, productID, rating, count)
	if errors.Is(err, repo.ErrNotFound) {
		//商品が削除済みなら書き戻す先がないだけ
		return nil
	}
	return err
}
