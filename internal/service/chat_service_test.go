package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestChatService_Bind(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	svc := NewChatService(f.bindings, f.schedules, f.catalog, zap.NewNop())

	group, err := svc.Bind(ctx, 100, " "+testGroup+" ")
	require.NoError(t, err)
	assert.Equal(t, testGroup, group.Code)

	groups, err := svc.Groups(ctx, 100)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, testGroup, groups[0].Code)

	bindings, err := svc.Bindings(ctx)
	require.NoError(t, err)
	require.Len(t, bindings, 1)
	assert.Equal(t, []int64{100}, bindings[0].TelegramIDs)

	require.NoError(t, svc.Unbind(ctx, 100))
	groups, err = svc.Groups(ctx, 100)
	require.NoError(t, err)
	assert.Empty(t, groups)
}

func TestChatService_BindUnknown(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	svc := NewChatService(f.bindings, f.schedules, f.catalog, zap.NewNop())

	_, err := svc.Bind(ctx, 100, "nope")
	require.ErrorIs(t, err, ErrGroupNotFound)

	delete(f.schedules.docs, testGroup)
	_, err = svc.Bind(ctx, 100, testGroup)
	require.ErrorIs(t, err, ErrScheduleNotFound)
	assert.Empty(t, f.bindings.byChat)
}
