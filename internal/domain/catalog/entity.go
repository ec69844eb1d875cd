package catalog

import (
	"time"
)

// Author 作者实体
// 设计说明:
// 1. 作者和出版社是图书的基础档案数据,由卖家挂单前维护
// 2. 图书通过AuthorID/EditorialID引用档案;档案被引用时禁止删除
type Author struct {
	ID          uint
	Name        string
	Bio         string // 简介
	Nationality string // 国籍
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewAuthor 创建作者(工厂方法)
func NewAuthor(name, bio, nationality string) (*Author, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	now := time.Now()
	return &Author{
		Name:        name,
		Bio:         bio,
		Nationality: nationality,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Update 更新作者信息,空值表示不修改
func (a *Author) Update(name, bio, nationality string) {
	if name != "" {
		a.Name = name
	}
	if bio != "" {
		a.Bio = bio
	}
	if nationality != "" {
		a.Nationality = nationality
	}
	a.UpdatedAt = time.Now()
}

// Editorial 出版社实体
type Editorial struct {
	ID        uint
	Name      string
	Address   string
	Website   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewEditorial 创建出版社(工厂方法)
func NewEditorial(name, address, website string) (*Editorial, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	now := time.Now()
	return &Editorial{
		Name:      name,
		Address:   address,
		Website:   website,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Update 更新出版社信息,空值表示不修改
func (e *Editorial) Update(name, address, website string) {
	if name != "" {
		e.Name = name
	}
	if address != "" {
		e.Address = address
	}
	if website != "" {
		e.Website = website
	}
	e.UpdatedAt = time.Now()
}
