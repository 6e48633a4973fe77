package app

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Freeeeeet/tutor_calendar/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSlots struct {
	loc     *time.Location
	entries []model.CalendarEntry
	err     error

	mu    sync.Mutex
	calls [][2]time.Time
}

func (f *fakeSlots) UnfilledSlots(_ context.Context, from, to time.Time) ([]model.CalendarEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, [2]time.Time{from, to})
	return f.entries, f.err
}

func (f *fakeSlots) Location() *time.Location { return f.loc }

func (f *fakeSlots) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type fakeNotifier struct {
	mu    sync.Mutex
	chats []int64
	texts []string
}

func (n *fakeNotifier) SendText(_ context.Context, chatID int64, text string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.chats = append(n.chats, chatID)
	n.texts = append(n.texts, text)
	return nil
}

func newTestScheduler(slots *fakeSlots, notifier Notifier, cfg DigestConfig) *Scheduler {
	s := NewScheduler(slots, notifier, cfg, zap.NewNop())
	s.now = func() time.Time { return time.Date(2025, time.January, 6, 15, 30, 0, 0, time.UTC) }
	return s
}

func TestScheduler_DigestRange(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	slots := &fakeSlots{loc: loc}
	s := newTestScheduler(slots, nil, DigestConfig{Days: 7})

	s.sendDigest(context.Background())

	require.Len(t, slots.calls, 1)
	assert.Equal(t, time.Date(2025, time.January, 6, 0, 0, 0, 0, loc), slots.calls[0][0])
	assert.Equal(t, time.Date(2025, time.January, 12, 0, 0, 0, 0, loc), slots.calls[0][1])
}

func TestScheduler_SendsDigestToChat(t *testing.T) {
	day := time.Date(2025, time.January, 6, 0, 0, 0, 0, time.UTC)
	slots := &fakeSlots{loc: time.UTC, entries: []model.CalendarEntry{{
		PlanTitle: "Физика",
		Date:      day,
		SlotStart: day.Add(9 * time.Hour),
		SlotEnd:   day.Add(10 * time.Hour),
	}}}
	notifier := &fakeNotifier{}
	s := newTestScheduler(slots, notifier, DigestConfig{Days: 3, ChatID: 100})

	s.sendDigest(context.Background())

	require.Len(t, notifier.texts, 1)
	assert.Equal(t, int64(100), notifier.chats[0])
	assert.Contains(t, notifier.texts[0], "Физика")
}

func TestScheduler_NoChatOnlyLogs(t *testing.T) {
	notifier := &fakeNotifier{}
	s := newTestScheduler(&fakeSlots{loc: time.UTC}, notifier, DigestConfig{})

	s.sendDigest(context.Background())

	assert.Empty(t, notifier.texts)
}

func TestScheduler_ErrorSkipsNotification(t *testing.T) {
	notifier := &fakeNotifier{}
	s := newTestScheduler(&fakeSlots{loc: time.UTC, err: errors.New("db down")}, notifier, DigestConfig{ChatID: 1})

	s.sendDigest(context.Background())

	assert.Empty(t, notifier.texts)
}

func TestScheduler_StartStop(t *testing.T) {
	slots := &fakeSlots{loc: time.UTC}
	s := newTestScheduler(slots, nil, DigestConfig{Interval: time.Hour})

	s.Start(context.Background())
	assert.Eventually(t, func() bool { return slots.callCount() == 1 }, time.Second, 10*time.Millisecond)

	s.Stop()
	s.Stop()
}
