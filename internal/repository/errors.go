package repository

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

var (
	ErrNotFound               = errors.New("记录不存在")
	ErrConcurrentModification = errors.New("记录已被修改，请刷新后重试")
)

// DefaultListLimit 列表默认条数
const DefaultListLimit = 100

// ListFilter 列表过滤条件，Limit <= 0 表示不限制
type ListFilter struct {
	Status string
	Skip   int
	Limit  int
}

func (f ListFilter) apply(db *gorm.DB) *gorm.DB {
	if f.Status != "" {
		db = db.Where("status = ?", f.Status)
	}
	db = db.Order("created_at DESC").Order("id DESC")
	if f.Skip > 0 {
		db = db.Offset(f.Skip)
	}
	if f.Limit > 0 {
		db = db.Limit(f.Limit)
	}
	return db
}

// missOrConflict 条件更新没有命中时，区分记录不存在与版本冲突
func missOrConflict(ctx context.Context, db *gorm.DB, m interface{}, id uint64) error {
	var n int64
	if err := db.WithContext(ctx).Model(m).Where("id = ?", id).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return errors.Wrapf(ErrConcurrentModification, "id %d", id)
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
