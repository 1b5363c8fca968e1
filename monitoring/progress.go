package monitoring

import (
	"sync"
	"time"

	"github.com/sarchlab/qre/hooking"
)

// A ProgressBar is a tracker of the progress. A zero Total means that the
// total is not known in advance.
type ProgressBar struct {
	sync.Mutex
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	StartTime  time.Time `json:"start_time"`
	Total      uint64    `json:"total"`
	Finished   uint64    `json:"finished"`
	InProgress uint64    `json:"in_progress"`
}

type progressBarState struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	StartTime  time.Time `json:"start_time"`
	Total      uint64    `json:"total"`
	Finished   uint64    `json:"finished"`
	InProgress uint64    `json:"in_progress"`
}

func (b *ProgressBar) state() progressBarState {
	b.Lock()
	defer b.Unlock()

	return progressBarState{
		ID:         b.ID,
		Name:       b.Name,
		StartTime:  b.StartTime,
		Total:      b.Total,
		Finished:   b.Finished,
		InProgress: b.InProgress,
	}
}

// IncrementInProgress adds the number of in-progress element.
func (b *ProgressBar) IncrementInProgress(amount uint64) {
	b.Lock()
	defer b.Unlock()

	b.InProgress += amount
}

// IncrementFinished add a certain amount to finished element.
func (b *ProgressBar) IncrementFinished(amount uint64) {
	b.Lock()
	defer b.Unlock()

	b.Finished += amount
}

// MoveInProgressToFinished reduces the number of in progress item by a certain
// amount and increase the finished item by the same amount.
func (b *ProgressBar) MoveInProgressToFinished(amount uint64) {
	b.Lock()
	defer b.Unlock()

	b.InProgress -= amount
	b.Finished += amount
}

// ProgressHook advances a progress bar by one each time a hook fires at
// its position.
type ProgressHook struct {
	bar *ProgressBar
	pos *hooking.HookPos
}

// NewProgressHook creates a ProgressHook.
func NewProgressHook(bar *ProgressBar, pos *hooking.HookPos) *ProgressHook {
	return &ProgressHook{bar: bar, pos: pos}
}

// Func implements hooking.Hook.
func (h *ProgressHook) Func(ctx hooking.HookCtx) {
	if ctx.Pos != h.pos {
		return
	}

	h.bar.IncrementFinished(1)
}
