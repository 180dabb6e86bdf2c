package app

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Freeeeeet/nau_schedule/internal/model"
	"github.com/Freeeeeet/nau_schedule/internal/service"
	"github.com/Freeeeeet/nau_schedule/internal/timetable"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type staticChats []model.GroupChat

func (c staticChats) Bindings(context.Context) ([]model.GroupChat, error) {
	return c, nil
}

type fakeDays struct {
	byChat map[int64][]service.SubgroupDay
	errs   map[int64]error
	seen   []service.SubgroupQuery
}

func (f *fakeDays) BySubgroups(_ context.Context, q service.SubgroupQuery) ([]service.SubgroupDay, error) {
	f.seen = append(f.seen, q)
	if err := f.errs[q.TelegramID]; err != nil {
		return nil, err
	}
	return f.byChat[q.TelegramID], nil
}

type recordingSender struct {
	mu    sync.Mutex
	chats []int64
	dates []time.Time
}

func (r *recordingSender) SendDigest(_ context.Context, chatID int64, date time.Time, _ []service.SubgroupDay) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.chats = append(r.chats, chatID)
	r.dates = append(r.dates, date)
	return nil
}

func lessonDay(code string) []service.SubgroupDay {
	return []service.SubgroupDay{{
		FirstSubgroup: []service.SubgroupLesson{{LocalID: code}},
	}}
}

func TestScheduler_SendTomorrow(t *testing.T) {
	chats := staticChats{
		{GroupCode: "a", TelegramIDs: []int64{1, 2}},
		{GroupCode: "b", TelegramIDs: []int64{2, 3, 4}},
	}
	days := &fakeDays{
		byChat: map[int64][]service.SubgroupDay{
			1: lessonDay("x"),
			2: lessonDay("y"),
			3: {{FirstSubgroup: []service.SubgroupLesson{}}},
		},
		errs: map[int64]error{
			4: timetable.ErrUncalibrated,
		},
	}
	sender := &recordingSender{}

	s := NewScheduler(chats, days, sender, "0 19 * * *", 100, time.UTC, zap.NewNop())
	s.now = func() time.Time {
		return time.Date(2024, time.January, 14, 19, 0, 0, 0, time.UTC)
	}

	s.SendTomorrow(context.Background())

	assert.Equal(t, []int64{1, 2}, sender.chats)
	require.Len(t, days.seen, 4)
	for _, q := range days.seen {
		assert.Equal(t, 15, q.Day)
		assert.Equal(t, 1, q.Month)
		assert.Equal(t, 2024, q.Year)
	}
}

func TestScheduler_ContinuesAfterErrors(t *testing.T) {
	chats := staticChats{{GroupCode: "a", TelegramIDs: []int64{1, 2}}}
	days := &fakeDays{
		byChat: map[int64][]service.SubgroupDay{2: lessonDay("z")},
		errs:   map[int64]error{1: errors.New("boom")},
	}
	sender := &recordingSender{}

	s := NewScheduler(chats, days, sender, "@daily", 100, time.UTC, zap.NewNop())
	s.SendTomorrow(context.Background())

	assert.Equal(t, []int64{2}, sender.chats)
}

func TestScheduler_StartRejectsBadCronExpr(t *testing.T) {
	s := NewScheduler(staticChats{}, &fakeDays{}, &recordingSender{}, "not a cron", 1, time.UTC, zap.NewNop())
	require.Error(t, s.Start(context.Background()))
	s.Stop()
}
