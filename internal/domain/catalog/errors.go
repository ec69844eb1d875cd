package catalog

import (
	apperrors "github.com/jiushu/bookmarket/pkg/errors"
)

// 档案领域错误定义
var (
	// ErrAuthorNotFound 作者不存在
	ErrAuthorNotFound = apperrors.New(apperrors.ErrCodeAuthorNotFound, "作者不存在")

	// ErrEditorialNotFound 出版社不存在
	ErrEditorialNotFound = apperrors.New(apperrors.ErrCodeEditorialNotFound, "出版社不存在")

	// ErrEmptyName 名称为空
	ErrEmptyName = apperrors.New(apperrors.ErrCodeInvalidParams, "名称不能为空")

	// ErrInUse 档案仍被图书引用,禁止删除
	ErrInUse = apperrors.New(apperrors.ErrCodeCatalogInUse, "仍有图书引用该记录,无法删除")
)
