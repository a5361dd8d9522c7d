package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/kairos-gantt/internal/domain"
	"github.com/alexanderramin/kairos-gantt/internal/repository"
	"github.com/alexanderramin/kairos-gantt/internal/testutil"
	"github.com/stretchr/testify/require"
)

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, event UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, event)
}

func (o *recordingObserver) names() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]string, len(o.events))
	for i, e := range o.events {
		out[i] = e.Name
	}
	return out
}

func (o *recordingObserver) last() UseCaseEvent {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.events[len(o.events)-1]
}

// seedBoardItems stores the standard fixture: project P (Mar 1..20), task T1
// (created Mar 2, due Mar 6), its subtask T2 (created Mar 3) and T3 created
// in late April.
func seedBoardItems(t *testing.T, repo repository.ItemRepo) (p, t1, t2, t3 *domain.RawItem) {
	t.Helper()
	ctx := context.Background()

	p = testutil.NewTestProject("P", testutil.WithID("P"),
		testutil.WithRange(testutil.Date(2024, time.March, 1), testutil.Date(2024, time.March, 20)))
	t1 = testutil.NewTestTask("T1", testutil.WithID("T1"),
		testutil.WithCreatedAt(testutil.Date(2024, time.March, 2)),
		testutil.WithDueDate(testutil.Date(2024, time.March, 6)))
	t2 = testutil.NewTestTask("T2", testutil.WithID("T2"),
		testutil.WithParent("T1"),
		testutil.WithCreatedAt(testutil.Date(2024, time.March, 3)))
	t3 = testutil.NewTestTask("T3", testutil.WithID("T3"),
		testutil.WithCreatedAt(testutil.Date(2024, time.April, 20)))

	for _, it := range []*domain.RawItem{p, t1, t2, t3} {
		require.NoError(t, repo.Create(ctx, it))
	}
	return p, t1, t2, t3
}
