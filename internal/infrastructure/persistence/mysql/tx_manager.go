package mysql

import (
	"context"

	"gorm.io/gorm"
)

// TxManager GORM事务封装
// 事务DB通过context传给同一事务里的各个Repository,
// fn返回error自动ROLLBACK,返回nil自动COMMIT
type TxManager struct {
	db *gorm.DB
}

// NewTxManager 创建事务管理器
func NewTxManager(db *gorm.DB) *TxManager {
	return &TxManager{db: db}
}

// Transaction 在单个数据库事务里执行fn
// 结算就是典型用法:锁定图书、扣库存、写购买记录、清购物车
// 在同一个fn里完成,任何一步失败整体回滚
//
//	err := txManager.Transaction(ctx, func(ctx context.Context) error {
//	    b, err := bookRepo.LockByID(ctx, bookID) // SELECT FOR UPDATE
//	    if err != nil {
//	        return err
//	    }
//	    if err := bookRepo.UpdateStock(ctx, bookID, -qty); err != nil {
//	        return err // 自动回滚
//	    }
//	    return purchaseRepo.Create(ctx, p) // nil则提交
//	})
func (m *TxManager) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Repository的getDB从context提取事务DB,取不到才用普通连接
		txCtx := context.WithValue(ctx, "tx", tx)
		return fn(txCtx)
	})
}
