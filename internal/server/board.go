package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"sync"

	"github.com/jonathan/jobdesk/internal/api"
	"github.com/jonathan/jobdesk/internal/server/middleware"
	"github.com/jonathan/jobdesk/internal/tracker"
	"github.com/jonathan/jobdesk/internal/types"
)

// lockedBoard serialises access to one user's board.
type lockedBoard struct {
	mu    sync.Mutex
	board *tracker.Board
}

// boardStore keeps one in-memory board per authenticated user.
type boardStore struct {
	mu     sync.Mutex
	byUser map[string]*lockedBoard
}

func newBoardStore() *boardStore {
	return &boardStore{byUser: make(map[string]*lockedBoard)}
}

func (s *boardStore) get(userID string) *lockedBoard {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.byUser[userID]
	if !ok {
		b = &lockedBoard{board: tracker.NewBoard(nil)}
		s.byUser[userID] = b
	}
	return b
}

// bearer forwards the caller's own token to the backend.
type bearer string

func (b bearer) IDToken(context.Context) (string, error) { return string(b), nil }
func (b bearer) HandleUnauthorized()                     {}

// backend returns an API client acting as the caller.
func (s *Server) backend(r *http.Request) (*api.Client, error) {
	return api.NewClient(s.apiURL, bearer(middleware.GetToken(r)))
}

// lookupUser asks the backend whose token this is. Boards are keyed by the
// answer, never by claims the caller could forge.
func (s *Server) lookupUser(ctx context.Context, token string) (string, error) {
	client, err := api.NewClient(s.apiURL, bearer(token))
	if err != nil {
		return "", err
	}
	profile, err := client.Users().Profile(ctx)
	if err != nil {
		return "", err
	}
	return profile.ID, nil
}

// boardFor returns the caller's board, locked. The caller must unlock it.
func (s *Server) boardFor(r *http.Request) (*lockedBoard, error) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		return nil, err
	}
	b := s.boards.get(userID)
	b.mu.Lock()
	return b, nil
}

// Column is one stage of the board view.
type Column struct {
	Stage types.Stage  `json:"stage"`
	Label string       `json:"label"`
	Count int          `json:"count"`
	Jobs  []*types.Job `json:"jobs"`
}

// BoardView is the GET /board response.
type BoardView struct {
	Search   string       `json:"search,omitempty"`
	Stage    *types.Stage `json:"stage,omitempty"`
	Columns  []Column     `json:"columns"`
	Dragging *types.Job   `json:"dragging,omitempty"`
}

func viewOf(board *tracker.Board) BoardView {
	f := board.Filter()
	counts := board.Counts()
	view := BoardView{Search: f.Search, Stage: f.Stage, Dragging: board.Dragging()}
	for _, stage := range types.AllStages() {
		if f.Stage != nil && *f.Stage != stage {
			continue
		}
		jobs := board.JobsByStage(stage)
		if jobs == nil {
			jobs = []*types.Job{}
		}
		view.Columns = append(view.Columns, Column{Stage: stage, Label: stage.Label(), Count: counts[stage], Jobs: jobs})
	}
	return view
}

// handleGetBoard applies the search and stage query parameters as the
// board filter and returns the columns.
func (s *Server) handleGetBoard(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := tracker.Filter{Search: q.Get("search")}
	if raw := q.Get("stage"); raw != "" {
		stage, err := types.ParseStage(raw)
		if err != nil {
			s.fail(w, &ErrValidation{Field: "stage", Message: err.Error()})
			return
		}
		filter.Stage = &stage
	}

	lb, err := s.boardFor(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	defer lb.mu.Unlock()
	lb.board.SetFilter(filter)
	s.jsonResponse(w, http.StatusOK, viewOf(lb.board))
}

// handleLoadBoard reloads the caller's board with the jobs the backend
// holds for them. The current filter and pending placeholders are kept.
func (s *Server) handleLoadBoard(w http.ResponseWriter, r *http.Request) {
	client, err := s.backend(r)
	if err != nil {
		s.fail(w, err)
		return
	}
	jobs, err := client.Jobs().List(r.Context())
	if err != nil {
		s.fail(w, err)
		return
	}

	lb, err := s.boardFor(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	defer lb.mu.Unlock()
	lb.board.Reload(jobs)
	s.jsonResponse(w, http.StatusOK, viewOf(lb.board))
}

// handleAddJob shows the job on the board at once under a temporary id,
// creates it on the backend and then swaps in the stored record. A backend
// failure takes the placeholder off the board again.
func (s *Server) handleAddJob(w http.ResponseWriter, r *http.Request) {
	var req types.CreateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.fail(w, &ErrValidation{Field: "body", Message: "invalid JSON"})
		return
	}
	if err := req.Validate(); err != nil {
		s.fail(w, &ErrValidation{Field: "job", Message: types.ValidationMessage(err)})
		return
	}

	lb, err := s.boardFor(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	placeholder := lb.board.Add(jobFromRequest(&req))
	tempID := placeholder.ID
	lb.mu.Unlock()

	client, err := s.backend(r)
	var created *types.Job
	if err == nil {
		created, err = client.Jobs().Create(r.Context(), &req)
	}

	lb.mu.Lock()
	defer lb.mu.Unlock()
	if err != nil {
		lb.board.Remove(tempID)
		s.fail(w, err)
		return
	}
	// A reload while the create was in flight may already list the job.
	switch {
	case lb.board.Find(created.ID) != nil:
		lb.board.Remove(tempID)
	case !lb.board.Replace(tempID, *created):
		lb.board.Add(*created)
	}
	s.jsonResponse(w, http.StatusCreated, created)
}

func jobFromRequest(req *types.CreateJobRequest) types.Job {
	return types.Job{
		Company:  req.Company,
		Role:     req.Role,
		Location: req.Location,
		Stage:    req.Stage,
		Tags:     req.Tags,
		Salary:   req.Salary,
		URL:      req.URL,
		Notes:    req.Notes,
	}
}

func pathJobID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		return 0, &ErrValidation{Field: "id", Message: "must be an integer"}
	}
	return id, nil
}

func (s *Server) handleDragStart(w http.ResponseWriter, r *http.Request) {
	id, err := pathJobID(r)
	if err != nil {
		s.fail(w, err)
		return
	}
	lb, err := s.boardFor(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	defer lb.mu.Unlock()
	if !lb.board.DragStart(id) {
		s.fail(w, &ErrNotFound{JobID: id})
		return
	}
	s.jsonResponse(w, http.StatusOK, lb.board.Dragging())
}

func (s *Server) handleDragCancel(w http.ResponseWriter, r *http.Request) {
	lb, err := s.boardFor(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	defer lb.mu.Unlock()
	lb.board.DragCancel()
	w.WriteHeader(http.StatusNoContent)
}

// handleDrop moves the dragged job into the stage column. The move is local
// to the board; persisting it is the caller's choice via PATCH /jobs/{id}/stage.
func (s *Server) handleDrop(w http.ResponseWriter, r *http.Request) {
	stage, err := types.ParseStage(r.PathValue("stage"))
	if err != nil {
		s.fail(w, &ErrValidation{Field: "stage", Message: err.Error()})
		return
	}
	lb, err := s.boardFor(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	defer lb.mu.Unlock()
	moved := lb.board.Drop(stage)
	if moved == nil {
		s.fail(w, &ErrNoDrag{})
		return
	}
	s.jsonResponse(w, http.StatusOK, moved)
}

func (s *Server) handleMoveJob(w http.ResponseWriter, r *http.Request) {
	id, err := pathJobID(r)
	if err != nil {
		s.fail(w, err)
		return
	}
	var req types.UpdateStageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.fail(w, &ErrValidation{Field: "body", Message: "invalid JSON"})
		return
	}
	if err := req.Validate(); err != nil {
		s.fail(w, &ErrValidation{Field: "stage", Message: types.ValidationMessage(err)})
		return
	}

	lb, err := s.boardFor(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	defer lb.mu.Unlock()
	moved := lb.board.MoveTo(id, req.Stage)
	if moved == nil {
		s.fail(w, &ErrNotFound{JobID: id})
		return
	}
	s.jsonResponse(w, http.StatusOK, moved)
}

func (s *Server) handleRemoveJob(w http.ResponseWriter, r *http.Request) {
	id, err := pathJobID(r)
	if err != nil {
		s.fail(w, err)
		return
	}
	lb, err := s.boardFor(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	defer lb.mu.Unlock()
	if !lb.board.Remove(id) {
		s.fail(w, &ErrNotFound{JobID: id})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
