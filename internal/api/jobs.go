package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/jonathan/jobdesk/internal/types"
)

// JobsService wraps the /jobs endpoints used by the tracker.
type JobsService struct {
	client *Client
}

// Jobs returns the jobs service.
func (c *Client) Jobs() *JobsService {
	return &JobsService{client: c}
}

func jobPath(id int64) string {
	return "/jobs/" + strconv.FormatInt(id, 10)
}

// List returns every tracked application.
func (s *JobsService) List(ctx context.Context) ([]types.Job, error) {
	return Do[[]types.Job](ctx, s.client, "/jobs/", nil)
}

// Get returns one application.
func (s *JobsService) Get(ctx context.Context, id int64) (*types.Job, error) {
	return doPtr[types.Job](ctx, s.client, jobPath(id), nil)
}

// Create adds an application.
func (s *JobsService) Create(ctx context.Context, req *types.CreateJobRequest) (*types.Job, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	return doPtr[types.Job](ctx, s.client, "/jobs/", &RequestOptions{Method: http.MethodPost, Body: req})
}

// Update replaces an application's fields.
func (s *JobsService) Update(ctx context.Context, job *types.Job) (*types.Job, error) {
	return doPtr[types.Job](ctx, s.client, jobPath(job.ID), &RequestOptions{Method: http.MethodPut, Body: job})
}

// UpdateStage moves an application to another stage on the backend.
func (s *JobsService) UpdateStage(ctx context.Context, id int64, stage types.Stage) (*types.Job, error) {
	req := &types.UpdateStageRequest{Stage: stage}
	if err := validate(req); err != nil {
		return nil, err
	}
	return doPtr[types.Job](ctx, s.client, jobPath(id)+"/stage", &RequestOptions{Method: http.MethodPatch, Body: req})
}

// Delete removes an application.
func (s *JobsService) Delete(ctx context.Context, id int64) error {
	return s.client.Request(ctx, jobPath(id), &RequestOptions{Method: http.MethodDelete}, nil)
}

// AddNote attaches a note to an application.
func (s *JobsService) AddNote(ctx context.Context, id int64, body string) (*types.JobNote, error) {
	req := &types.AddNoteRequest{Body: body}
	if err := validate(req); err != nil {
		return nil, err
	}
	return doPtr[types.JobNote](ctx, s.client, jobPath(id)+"/notes", &RequestOptions{Method: http.MethodPost, Body: req})
}

// Timeline returns the application's history.
func (s *JobsService) Timeline(ctx context.Context, id int64) ([]types.TimelineEvent, error) {
	return Do[[]types.TimelineEvent](ctx, s.client, jobPath(id)+"/timeline", nil)
}
