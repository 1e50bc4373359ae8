package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"expensetracker/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Service 收入、支出、预算的变更入口。
// 每个变更在单个事务内完成：解析引用 -> 读取月度合计 -> 校验 -> 写入，
// 校验不通过时不会产生任何写入。
type Service struct {
	db   *gorm.DB
	inTx bool
}

// NewService 创建 Service
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// DB 返回底层连接，供只读查询使用
func (s *Service) DB() *gorm.DB {
	return s.db
}

// ReadTx 在只读事务中执行 fn，fn 内经由 tx 发出的查询读取同一快照，
// 导出等需要多次读取且结果相互对账的场景使用
func (s *Service) ReadTx(ctx context.Context, fn func(tx *Service) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Service{db: tx, inTx: true})
	}, &sql.TxOptions{ReadOnly: true})
}

// inUserTx 在事务中执行 fn，并先锁住该用户，
// 同一用户的并发变更因此串行化，后进入者读到的合计一定包含先提交者的写入
func (s *Service) inUserTx(ctx context.Context, userID uint, fn func(tx *gorm.DB) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockUser(tx, userID); err != nil {
			return err
		}
		return fn(tx)
	})
}

// lockUser MySQL 下持有用户行的排他锁直到提交；SQLite 下取得数据库写锁
func lockUser(tx *gorm.DB, userID uint) error {
	err := tx.Exec("UPDATE users SET updated_at = updated_at WHERE id = ?", userID).Error
	if err != nil {
		return fmt.Errorf("lock user %d: %w", userID, err)
	}
	return nil
}

// findOwned 按 (id, user_id) 加载记录，不存在时返回 NotFoundError
func findOwned(tx *gorm.DB, dest any, entity string, id, userID uint) error {
	err := tx.Where("id = ? AND user_id = ?", id, userID).First(dest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound(entity, id)
	}
	if err != nil {
		return fmt.Errorf("load %s %d: %w", entity, id, err)
	}
	return nil
}

func findCategory(tx *gorm.DB, id uint) (*models.Category, error) {
	var cat models.Category
	err := tx.First(&cat, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("Category", id)
	}
	if err != nil {
		return nil, fmt.Errorf("load category %d: %w", id, err)
	}
	return &cat, nil
}

func findIncomeCategory(tx *gorm.DB, id uint) (*models.IncomeCategory, error) {
	var cat models.IncomeCategory
	err := tx.First(&cat, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("IncomeCategory", id)
	}
	if err != nil {
		return nil, fmt.Errorf("load income category %d: %w", id, err)
	}
	return &cat, nil
}

// shareLock 对引用的类别行加共享锁，删除类别的事务需等待引用方提交。
// SQLite 驱动忽略行锁子句，由数据库写锁串行化
func shareLock(tx *gorm.DB) *gorm.DB {
	return tx.Clauses(clause.Locking{Strength: "SHARE"})
}

// omitAssociations 写入时不级联保存关联的类别与用户
func omitAssociations(tx *gorm.DB) *gorm.DB {
	return tx.Omit(clause.Associations)
}
