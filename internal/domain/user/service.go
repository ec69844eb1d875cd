package user

import (
	"context"
	"errors"
	"regexp"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/jiushu/bookmarket/pkg/errors"
)

// 集市里买家和卖家共用同一种账号:注册后既能挂书也能下单,
// 所以注册规则只有一套,不区分角色
const (
	passwordHashCost = 12 // bcrypt成本因子,每+1耗时翻倍
	nicknameMinRunes = 2
	nicknameMaxRunes = 50
)

// 正则只在包初始化时编译一次
var (
	emailPattern    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	hasLetterInPass = regexp.MustCompile(`[a-zA-Z]`)
	hasDigitInPass  = regexp.MustCompile(`[0-9]`)
)

// Service 账号领域服务
// 密码加密、凭证校验这类不属于单个实体的规则放在这里;
// 只依赖Repository接口,不碰HTTP也不碰GORM
type Service interface {
	// Register 注册集市账号
	Register(ctx context.Context, email, password, nickname string) (*User, error)

	// Login 邮箱+密码登录
	Login(ctx context.Context, email, password string) (*User, error)

	// ValidatePassword 比对明文密码与存储的哈希
	ValidatePassword(hashedPassword, plainPassword string) error
}

type service struct {
	repo Repository
}

// NewService 创建账号服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Register 注册集市账号
// 邮箱唯一性不在这里查:SELECT再INSERT有并发窗口,
// 交给数据库UNIQUE索引兜底,Repository把冲突转成ErrEmailDuplicate
func (s *service) Register(ctx context.Context, email, password, nickname string) (*User, error) {
	if err := checkProfile(email, nickname); err != nil {
		return nil, err
	}
	if err := checkPasswordStrength(password); err != nil {
		return nil, err
	}

	// bcrypt自带随机盐,同一密码每次哈希结果不同
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), passwordHashCost)
	if err != nil {
		return nil, apperrors.Wrap(err, "密码加密失败")
	}

	u := NewUser(email, string(hashed), nickname)
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Login 邮箱+密码登录
func (s *service) Login(ctx context.Context, email, password string) (*User, error) {
	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if err := s.ValidatePassword(u.Password, password); err != nil {
		return nil, err
	}
	return u, nil
}

// ValidatePassword 比对明文密码与存储的哈希
func (s *service) ValidatePassword(hashedPassword, plainPassword string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(plainPassword))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return apperrors.ErrInvalidPassword
	default:
		return apperrors.Wrap(err, "密码验证失败")
	}
}

// checkProfile 校验邮箱格式和昵称长度
// 昵称按字符数(rune)算,中文昵称"旧书爱好者"是5个字符而不是15字节
func checkProfile(email, nickname string) error {
	if !emailPattern.MatchString(email) {
		return apperrors.New(apperrors.ErrCodeInvalidParams, "邮箱格式不正确")
	}
	if n := utf8.RuneCountInString(nickname); n < nicknameMinRunes || n > nicknameMaxRunes {
		return apperrors.New(apperrors.ErrCodeInvalidParams, "昵称长度应为2-50个字符")
	}
	return nil
}

// checkPasswordStrength 密码需8-20位且同时包含字母和数字
func checkPasswordStrength(password string) error {
	if len(password) < 8 || len(password) > 20 {
		return apperrors.ErrWeakPassword
	}
	if !hasLetterInPass.MatchString(password) || !hasDigitInPass.MatchString(password) {
		return apperrors.ErrWeakPassword
	}
	return nil
}
