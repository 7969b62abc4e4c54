package render

import (
	"context"
	"errors"
	"slices"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestRunGroups_Barrier(t *testing.T) {
	items := []int{0, 1, 2, 3, 4}
	const limit = 2

	var (
		mu       sync.Mutex
		seq      int
		start    = make([]int, len(items))
		end      = make([]int, len(items))
		inFlight int32
		maxSeen  int32
	)

	errs := RunGroups(context.Background(), items, limit, func(ctx context.Context, i int) error {
		n := atomic.AddInt32(&inFlight, 1)
		for {
			m := atomic.LoadInt32(&maxSeen)
			if n <= m || atomic.CompareAndSwapInt32(&maxSeen, m, n) {
				break
			}
		}

		mu.Lock()
		start[i] = seq
		seq++
		mu.Unlock()

		time.Sleep(20 * time.Millisecond)

		mu.Lock()
		end[i] = seq
		seq++
		mu.Unlock()

		atomic.AddInt32(&inFlight, -1)
		return nil
	})

	for i, err := range errs {
		if err != nil {
			t.Errorf("item %d: %v", i, err)
		}
	}

	if maxSeen > limit {
		t.Errorf("saw %d calls in flight, limit is %d", maxSeen, limit)
	}
	if maxSeen < limit {
		t.Errorf("saw at most %d calls in flight, expected groups to run concurrently", maxSeen)
	}

	// Every call of group g must start after every call of group g-1 ended.
	for i := range items {
		for j := range items {
			if j/limit < i/limit && end[j] > start[i] {
				t.Errorf("item %d (group %d) started before item %d (group %d) ended", i, i/limit, j, j/limit)
			}
		}
	}

	// Calls whose run intervals overlap form one observed group.
	order := make([]int, len(items))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool { return start[order[a]] < start[order[b]] })

	var sizes []int
	groupEnd := -1
	for _, i := range order {
		if start[i] > groupEnd {
			sizes = append(sizes, 0)
		}
		sizes[len(sizes)-1]++
		groupEnd = max(groupEnd, end[i])
	}
	if !slices.Equal(sizes, []int{2, 2, 1}) {
		t.Errorf("observed group sizes = %v, want [2 2 1]", sizes)
	}
}

func TestRunGroups_FailuresDoNotStopSiblings(t *testing.T) {
	items := []int{0, 1, 2, 3, 4}
	boom := errors.New("boom")
	var calls int32

	errs := RunGroups(context.Background(), items, 2, func(ctx context.Context, i int) error {
		atomic.AddInt32(&calls, 1)
		if i == 0 || i == 3 {
			return boom
		}
		return nil
	})

	if calls != int32(len(items)) {
		t.Errorf("calls = %d, want %d", calls, len(items))
	}
	for i, err := range errs {
		wantErr := i == 0 || i == 3
		if wantErr != errors.Is(err, boom) {
			t.Errorf("item %d error = %v", i, err)
		}
	}
}

func TestRunGroups_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	items := []int{0, 1, 2, 3}
	var calls int32

	errs := RunGroups(ctx, items, 2, func(ctx context.Context, i int) error {
		atomic.AddInt32(&calls, 1)
		cancel()
		return nil
	})

	if calls != 2 {
		t.Errorf("calls = %d, want only the first group (2)", calls)
	}
	for i := 2; i < len(items); i++ {
		if !errors.Is(errs[i], context.Canceled) {
			t.Errorf("item %d error = %v, want context.Canceled", i, errs[i])
		}
	}
}

func TestRunGroups_LimitBelowOne(t *testing.T) {
	var inFlight, maxSeen int32
	RunGroups(context.Background(), []int{1, 2, 3}, 0, func(ctx context.Context, i int) error {
		n := atomic.AddInt32(&inFlight, 1)
		if n > atomic.LoadInt32(&maxSeen) {
			atomic.StoreInt32(&maxSeen, n)
		}
		time.Sleep(5 * time.Millisecond)
		atomic.AddInt32(&inFlight, -1)
		return nil
	})
	if maxSeen != 1 {
		t.Errorf("maxSeen = %d, want 1", maxSeen)
	}
}

func TestRunGroups_PanicStaysWithItem(t *testing.T) {
	items := []int{0, 1, 2, 3}
	var calls int32

	errs := RunGroups(context.Background(), items, 2, func(ctx context.Context, i int) error {
		atomic.AddInt32(&calls, 1)
		if i == 1 {
			panic("corrupt texture")
		}
		return nil
	})

	if calls != int32(len(items)) {
		t.Errorf("calls = %d, want %d", calls, len(items))
	}
	for i, err := range errs {
		if i == 1 {
			if err == nil || !strings.Contains(err.Error(), "corrupt texture") {
				t.Errorf("item 1 error = %v, want the recovered panic", err)
			}
			continue
		}
		if err != nil {
			t.Errorf("item %d error = %v", i, err)
		}
	}
}
