package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/jiushu/bookmarket/pkg/errors"
)

type fakeUserRepo struct {
	nextID uint
	users  map[string]*User // email → user
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, u *User) error {
	if _, ok := r.users[u.Email]; ok {
		return apperrors.ErrEmailDuplicate
	}
	r.nextID++
	u.ID = r.nextID
	r.users[u.Email] = u
	return nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id uint) (*User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*User, error) {
	u, ok := r.users[email]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, u *User) error {
	r.users[u.Email] = u
	return nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id uint) error {
	for email, u := range r.users {
		if u.ID == id {
			delete(r.users, email)
		}
	}
	return nil
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("注册成功且密码被加密", func(t *testing.T) {
		svc := NewService(newFakeUserRepo())

		u, err := svc.Register(ctx, "reader@test.com", "Test1234", "旧书爱好者")
		require.NoError(t, err)

		assert.NotZero(t, u.ID)
		assert.Equal(t, "旧书爱好者", u.Nickname)
		assert.NotEqual(t, "Test1234", u.Password, "数据库里不应该出现明文密码")
		assert.NoError(t, svc.ValidatePassword(u.Password, "Test1234"))
	})

	t.Run("邮箱格式不正确", func(t *testing.T) {
		svc := NewService(newFakeUserRepo())

		_, err := svc.Register(ctx, "not-an-email", "Test1234", "旧书爱好者")
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrCodeInvalidParams, apperrors.GetAppError(err).Code)
	})

	t.Run("弱密码被拒绝", func(t *testing.T) {
		svc := NewService(newFakeUserRepo())

		for _, password := range []string{"short1", "onlyletters", "12345678"} {
			_, err := svc.Register(ctx, "reader@test.com", password, "旧书爱好者")
			assert.ErrorIs(t, err, apperrors.ErrWeakPassword, "密码 %q 应该被拒绝", password)
		}
	})

	t.Run("中文昵称按字符数校验", func(t *testing.T) {
		svc := NewService(newFakeUserRepo())

		// 两个汉字是2个字符(6字节),应该通过
		_, err := svc.Register(ctx, "reader@test.com", "Test1234", "书虫")
		assert.NoError(t, err)

		_, err = svc.Register(ctx, "another@test.com", "Test1234", "短")
		require.Error(t, err)
		assert.Contains(t, apperrors.GetAppError(err).Message, "昵称")
	})

	t.Run("邮箱重复", func(t *testing.T) {
		svc := NewService(newFakeUserRepo())

		_, err := svc.Register(ctx, "reader@test.com", "Test1234", "旧书爱好者")
		require.NoError(t, err)

		_, err = svc.Register(ctx, "reader@test.com", "Test1234", "另一个人")
		assert.ErrorIs(t, err, apperrors.ErrEmailDuplicate)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeUserRepo())

	_, err := svc.Register(ctx, "reader@test.com", "Test1234", "旧书爱好者")
	require.NoError(t, err)

	t.Run("登录成功", func(t *testing.T) {
		u, err := svc.Login(ctx, "reader@test.com", "Test1234")
		require.NoError(t, err)
		assert.Equal(t, "reader@test.com", u.Email)
	})

	t.Run("密码错误", func(t *testing.T) {
		_, err := svc.Login(ctx, "reader@test.com", "Wrong1234")
		assert.ErrorIs(t, err, apperrors.ErrInvalidPassword)
	})

	t.Run("用户不存在", func(t *testing.T) {
		_, err := svc.Login(ctx, "nobody@test.com", "Test1234")
		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	})
}
