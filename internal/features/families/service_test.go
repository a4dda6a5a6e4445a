package families

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"domovenok.ru/chores-backend/internal/common"
	"domovenok.ru/chores-backend/internal/features/users"
	"domovenok.ru/chores-backend/internal/store"
)

func newTestService(t *testing.T) (*Service, *users.Service) {
	t.Helper()
	st := store.NewMemory()
	userService := users.NewService(users.NewRepository(st), "test-secret", time.Hour)
	return NewService(NewRepository(st), userService), userService
}

func register(t *testing.T, svc *users.Service, email, role string) *users.User {
	t.Helper()
	u, _, err := svc.Register(context.Background(), email, "secret123", "Тест", role)
	require.NoError(t, err)
	return u
}

func TestCreate(t *testing.T) {
	svc, userService := newTestService(t)
	ctx := context.Background()

	creator := register(t, userService, "anna@example.com", common.RoleParent)

	f, err := svc.Create(ctx, creator.ID, "Ивановы")
	require.NoError(t, err)
	assert.Equal(t, "Ивановы", f.Name)
	assert.Equal(t, creator.ID, f.CreatedBy)

	// Код из 6 символов безопасного алфавита
	assert.Len(t, f.InviteCode, inviteCodeLen)
	for _, r := range f.InviteCode {
		assert.True(t, strings.ContainsRune(inviteAlphabet, r), "неожиданный символ %q", r)
	}

	// Создатель сразу записан в семью
	familyID, err := userService.FamilyID(ctx, creator.ID)
	require.NoError(t, err)
	assert.Equal(t, f.ID, familyID)
}

func TestCreate_EmptyName(t *testing.T) {
	svc, userService := newTestService(t)
	creator := register(t, userService, "anna@example.com", common.RoleParent)

	_, err := svc.Create(context.Background(), creator.ID, "   ")
	assert.ErrorIs(t, err, common.ErrEmptyName)
}

func TestCreate_AlreadyInFamily(t *testing.T) {
	svc, userService := newTestService(t)
	ctx := context.Background()

	creator := register(t, userService, "anna@example.com", common.RoleParent)
	_, err := svc.Create(ctx, creator.ID, "Ивановы")
	require.NoError(t, err)

	_, err = svc.Create(ctx, creator.ID, "Вторая семья")
	assert.ErrorIs(t, err, common.ErrAlreadyInFamily)
}

func TestJoin(t *testing.T) {
	svc, userService := newTestService(t)
	ctx := context.Background()

	creator := register(t, userService, "anna@example.com", common.RoleParent)
	child := register(t, userService, "misha@example.com", common.RoleChild)

	f, err := svc.Create(ctx, creator.ID, "Ивановы")
	require.NoError(t, err)

	// Код нечувствителен к регистру и пробелам
	joined, u, err := svc.Join(ctx, child.ID, "  "+strings.ToLower(f.InviteCode)+" ")
	require.NoError(t, err)
	assert.Equal(t, f.ID, joined.ID)
	assert.Equal(t, f.ID, u.FamilyID)

	familyID, err := userService.FamilyID(ctx, child.ID)
	require.NoError(t, err)
	assert.Equal(t, f.ID, familyID)
}

func TestJoin_UnknownCode(t *testing.T) {
	svc, userService := newTestService(t)
	child := register(t, userService, "misha@example.com", common.RoleChild)

	_, _, err := svc.Join(context.Background(), child.ID, "ZZZZZZ")
	assert.ErrorIs(t, err, common.ErrInviteCodeNotFound)
}

func TestJoin_AlreadyInFamily(t *testing.T) {
	svc, userService := newTestService(t)
	ctx := context.Background()

	creator := register(t, userService, "anna@example.com", common.RoleParent)
	f, err := svc.Create(ctx, creator.ID, "Ивановы")
	require.NoError(t, err)

	_, _, err = svc.Join(ctx, creator.ID, f.InviteCode)
	assert.ErrorIs(t, err, common.ErrAlreadyInFamily)
}

func TestDetails(t *testing.T) {
	svc, userService := newTestService(t)
	ctx := context.Background()

	creator := register(t, userService, "anna@example.com", common.RoleParent)
	child := register(t, userService, "misha@example.com", common.RoleChild)

	f, err := svc.Create(ctx, creator.ID, "Ивановы")
	require.NoError(t, err)
	_, _, err = svc.Join(ctx, child.ID, f.InviteCode)
	require.NoError(t, err)

	got, members, err := svc.Details(ctx, f.ID)
	require.NoError(t, err)
	assert.Equal(t, f.ID, got.ID)
	assert.Len(t, members, 2)
}

// Пользователь без семьи не видит ничего, даже ошибки хранилища.
func TestDetails_NoFamily(t *testing.T) {
	svc, _ := newTestService(t)

	_, _, err := svc.Details(context.Background(), "")
	assert.ErrorIs(t, err, common.ErrFamilyNotFound)
}

func TestRandomInviteCode_Alphabet(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		code, err := randomInviteCode()
		require.NoError(t, err)
		require.Len(t, code, inviteCodeLen)
		for _, r := range code {
			assert.True(t, strings.ContainsRune(inviteAlphabet, r))
		}
		seen[code] = true
	}
	// Коды не повторяются подряд
	assert.Greater(t, len(seen), 1)
}
