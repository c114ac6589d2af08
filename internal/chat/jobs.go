package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/suPer8Hu/krishi-mitra/internal/common"
	"github.com/suPer8Hu/krishi-mitra/internal/language"
)

// Enqueue records an async chat job in the user's active session. With an
// idempotency key an existing job is returned instead; created reports
// which happened.
func (s *Service) Enqueue(ctx context.Context, req SendRequest, idempotencyKey string) (*Job, bool, error) {
	if strings.TrimSpace(req.Message) == "" && strings.TrimSpace(req.UserQuery) == "" {
		return nil, false, ErrEmptyMessage
	}
	sid, err := s.ActiveSession(ctx, req.UserID)
	if err != nil {
		return nil, false, err
	}
	if err := s.repo.CheckCapacity(ctx, sid, s.limitMB); err != nil {
		return nil, false, err
	}

	id, err := common.NewULID()
	if err != nil {
		return nil, false, fmt.Errorf("chat: new job id: %w", err)
	}
	job := &Job{
		ID:         id,
		UserID:     req.UserID,
		SessionID:  sid,
		Message:    req.Message,
		UserQuery:  req.UserQuery,
		Language:   language.Resolve(req.Language),
		ImageCount: req.ImageCount,
		Status:     JobQueued,
	}
	if len(req.DetectedDiseases) > 0 {
		d := strings.Join(req.DetectedDiseases, ",")
		job.DetectedDiseases = &d
	}
	if k := strings.TrimSpace(idempotencyKey); k != "" {
		job.IdempotencyKey = &k
	}
	return s.repo.CreateJobOrGetExisting(ctx, job)
}

// GetJob returns the job if it belongs to userID.
func (s *Service) GetJob(ctx context.Context, userID uint64, jobID string) (*Job, error) {
	job, err := s.repo.GetJobByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.UserID != userID {
		return nil, ErrNotFound
	}
	return job, nil
}

// RunJob answers a queued job. Jobs already finished are left alone so a
// redelivered message does not store the turn twice. A full session fails
// the job rather than returning an error, since retrying cannot help.
func (s *Service) RunJob(ctx context.Context, jobID string) error {
	job, err := s.repo.GetJobByID(ctx, jobID)
	if err != nil {
		return err
	}
	started, err := s.repo.UpdateJobStatusRunning(ctx, jobID)
	if err != nil {
		return err
	}
	if !started {
		s.log.Info("job already finished, skipping", "job_id", jobID, "status", job.Status)
		return nil
	}
	if job.ResultTurnID != nil {
		// An earlier attempt stored the turn but stopped before finishing the job.
		turn, err := s.repo.GetTurn(ctx, *job.ResultTurnID)
		if err != nil {
			return err
		}
		return s.repo.MarkJobSucceeded(ctx, jobID, job.ResultTurnID, turn.AIResponse)
	}

	req := SendRequest{
		UserID:     job.UserID,
		Message:    job.Message,
		UserQuery:  job.UserQuery,
		Language:   job.Language,
		ImageCount: job.ImageCount,
	}
	if job.DetectedDiseases != nil && *job.DetectedDiseases != "" {
		req.DetectedDiseases = strings.Split(*job.DetectedDiseases, ",")
	}

	res, err := s.answer(ctx, job.SessionID, jobID, req)
	if err != nil {
		var full *SessionFullError
		if errors.As(err, &full) || errors.Is(err, ErrEmptyMessage) {
			return s.repo.MarkJobFailed(ctx, jobID, err.Error())
		}
		return err
	}

	var turnID *uint64
	if res.Saved {
		turnID = &res.TurnID
	}
	return s.repo.MarkJobSucceeded(ctx, jobID, turnID, res.Response)
}

// FailJob records a terminal failure, e.g. after the last retry.
func (s *Service) FailJob(ctx context.Context, jobID string, cause error) error {
	return s.repo.MarkJobFailed(ctx, jobID, cause.Error())
}
