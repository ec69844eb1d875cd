package purchase

import (
	apperrors "github.com/jiushu/bookmarket/pkg/errors"
)

// 购买记录领域错误定义
var (
	// ErrPurchaseNotFound 购买记录不存在
	ErrPurchaseNotFound = apperrors.New(apperrors.ErrCodePurchaseNotFound, "购买记录不存在")

	// ErrNoItems 购买记录不能没有明细
	ErrNoItems = apperrors.New(apperrors.ErrCodeInvalidParams, "购买记录必须包含至少一条明细")

	// ErrTotalMismatch 总金额与明细小计之和不一致
	ErrTotalMismatch = apperrors.New(apperrors.ErrCodeInvalidParams, "总金额与明细不一致")
)
