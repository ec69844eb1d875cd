package cart

import (
	apperrors "github.com/jiushu/bookmarket/pkg/errors"
)

// 购物车领域错误定义
var (
	// ErrItemNotFound 购物车中没有这本图书
	ErrItemNotFound = apperrors.New(apperrors.ErrCodeCartItemNotFound, "购物车中没有这本图书")

	// ErrInvalidQuantity 数量必须大于0
	ErrInvalidQuantity = apperrors.New(apperrors.ErrCodeInvalidQuantity, "数量必须大于0")

	// ErrEmptyCart 购物车为空,无法结算
	ErrEmptyCart = apperrors.New(apperrors.ErrCodeEmptyCart, "购物车为空,无法结算")
)
