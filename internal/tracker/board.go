// Package tracker is the job-application kanban board. The board is local
// state only: moving a card never talks to the backend, callers persist
// stage changes themselves when they want to.
package tracker

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/jonathan/jobdesk/internal/types"
)

// Filter narrows the visible jobs. Both conditions must hold.
type Filter struct {
	// Search matches company or role, case-insensitively. Empty matches all.
	Search string
	// Stage, when set, hides every other stage.
	Stage *types.Stage
}

// Board holds the jobs shown on the kanban. It is not safe for concurrent
// use; wrap it in a mutex when sharing.
type Board struct {
	jobs    []*types.Job
	filter  Filter
	dragged *types.Job
	nextTmp int64
}

// NewBoard creates a board from a list of jobs, as returned by the backend.
func NewBoard(jobs []types.Job) *Board {
	b := &Board{jobs: make([]*types.Job, 0, len(jobs))}
	for i := range jobs {
		job := jobs[i]
		b.jobs = append(b.jobs, &job)
	}
	return b
}

// Reload swaps in a fresh job list from the backend. The filter and the
// temporary id sequence survive, as do placeholders (negative ids) still
// waiting for their create call. An active drag is cancelled.
func (b *Board) Reload(jobs []types.Job) {
	next := make([]*types.Job, 0, len(jobs))
	for i := range jobs {
		job := jobs[i]
		next = append(next, &job)
	}
	for _, job := range b.jobs {
		if job.ID < 0 {
			next = append(next, job)
		}
	}
	b.jobs = next
	b.dragged = nil
}

// Jobs returns the current slice. Callers must not modify it.
func (b *Board) Jobs() []*types.Job {
	return b.jobs
}

// Filter returns the active filter.
func (b *Board) Filter() Filter {
	return b.filter
}

// SetFilter replaces the active filter.
func (b *Board) SetFilter(f Filter) {
	b.filter = f
}

// SetSearch updates only the text part of the filter.
func (b *Board) SetSearch(search string) {
	b.filter.Search = search
}

// SetStageFilter restricts the board to one stage, or clears the
// restriction when stage is nil.
func (b *Board) SetStageFilter(stage *types.Stage) {
	b.filter.Stage = stage
}

// matches reports whether job passes the active filter.
func (b *Board) matches(job *types.Job, needle string) bool {
	if b.filter.Stage != nil && job.Stage != *b.filter.Stage {
		return false
	}
	if needle == "" {
		return true
	}
	return strings.Contains(fold(job.Company), needle) || strings.Contains(fold(job.Role), needle)
}

func fold(s string) string {
	return cases.Fold().String(s)
}

// Visible returns the filtered jobs in list order.
func (b *Board) Visible() []*types.Job {
	needle := fold(strings.TrimSpace(b.filter.Search))
	var out []*types.Job
	for _, job := range b.jobs {
		if b.matches(job, needle) {
			out = append(out, job)
		}
	}
	return out
}

// JobsByStage returns the visible jobs in one column.
func (b *Board) JobsByStage(stage types.Stage) []*types.Job {
	needle := fold(strings.TrimSpace(b.filter.Search))
	var out []*types.Job
	for _, job := range b.jobs {
		if job.Stage == stage && b.matches(job, needle) {
			out = append(out, job)
		}
	}
	return out
}

// Counts returns the number of visible jobs per stage. Every stage is present.
func (b *Board) Counts() map[types.Stage]int {
	counts := make(map[types.Stage]int, len(types.AllStages()))
	for _, stage := range types.AllStages() {
		counts[stage] = 0
	}
	for _, job := range b.Visible() {
		counts[job.Stage]++
	}
	return counts
}

// Find returns the job with id, or nil.
func (b *Board) Find(id int64) *types.Job {
	for _, job := range b.jobs {
		if job.ID == id {
			return job
		}
	}
	return nil
}

// DragStart records the job being dragged. It reports false for an unknown id.
func (b *Board) DragStart(id int64) bool {
	job := b.Find(id)
	b.dragged = job
	return job != nil
}

// Dragging returns the job being dragged, or nil.
func (b *Board) Dragging() *types.Job {
	return b.dragged
}

// DragCancel clears the drag without moving anything.
func (b *Board) DragCancel() {
	b.dragged = nil
}

// Drop moves the dragged job into target and clears the drag. With nothing
// dragged it does nothing and returns nil.
func (b *Board) Drop(target types.Stage) *types.Job {
	dragged := b.dragged
	b.dragged = nil
	if dragged == nil {
		return nil
	}
	return b.MoveTo(dragged.ID, target)
}

// MoveTo sets the stage of one job. Any stage may follow any other. The
// board gets a new slice in which only the moved entry is a new pointer,
// so holders of the old slice see no change. Returns the moved job, or nil
// when id is unknown.
func (b *Board) MoveTo(id int64, stage types.Stage) *types.Job {
	var moved *types.Job
	next := make([]*types.Job, len(b.jobs))
	for i, job := range b.jobs {
		if job.ID == id && moved == nil {
			updated := *job
			updated.Stage = stage
			moved = &updated
			next[i] = moved
			continue
		}
		next[i] = job
	}
	if moved == nil {
		return nil
	}
	b.jobs = next
	return moved
}

// Add appends a job. A zero id is replaced with a temporary negative id so
// an optimistic entry can be found again before the backend assigns one.
func (b *Board) Add(job types.Job) *types.Job {
	if job.ID == 0 {
		b.nextTmp--
		job.ID = b.nextTmp
	}
	if job.Stage == "" {
		job.Stage = types.StageSaved
	}
	added := &job
	next := make([]*types.Job, len(b.jobs), len(b.jobs)+1)
	copy(next, b.jobs)
	b.jobs = append(next, added)
	return added
}

// Replace swaps the entry with id for job, typically the backend's copy of
// an optimistic entry. It reports false when id is unknown.
func (b *Board) Replace(id int64, job types.Job) bool {
	for i, existing := range b.jobs {
		if existing.ID != id {
			continue
		}
		next := make([]*types.Job, len(b.jobs))
		copy(next, b.jobs)
		next[i] = &job
		b.jobs = next
		return true
	}
	return false
}

// Remove deletes the job with id. It reports false when id is unknown.
func (b *Board) Remove(id int64) bool {
	for i, job := range b.jobs {
		if job.ID != id {
			continue
		}
		next := make([]*types.Job, 0, len(b.jobs)-1)
		next = append(next, b.jobs[:i]...)
		next = append(next, b.jobs[i+1:]...)
		b.jobs = next
		if b.dragged != nil && b.dragged.ID == id {
			b.dragged = nil
		}
		return true
	}
	return false
}
