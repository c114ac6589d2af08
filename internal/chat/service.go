package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/suPer8Hu/krishi-mitra/internal/common"
	"github.com/suPer8Hu/krishi-mitra/internal/language"
	"github.com/suPer8Hu/krishi-mitra/internal/logger"
	"github.com/suPer8Hu/krishi-mitra/internal/metrics"
	"github.com/suPer8Hu/krishi-mitra/internal/prompt"
)

// Responder produces the advisor's answer; it never fails.
type Responder interface {
	Respond(ctx context.Context, in prompt.Input, lang string) string
}

type Service struct {
	repo         *Repo
	responder    Responder
	active       ActiveSessions
	limitMB      float64
	historyLimit int
	log          *logger.Logger
}

func NewService(repo *Repo, responder Responder, active ActiveSessions, limitMB float64, historyLimit int, log *logger.Logger) *Service {
	if limitMB <= 0 {
		limitMB = 16
	}
	if historyLimit <= 0 || historyLimit > 500 {
		historyLimit = 50
	}
	if active == nil {
		active = NewMemoryActiveSessions()
	}
	return &Service{
		repo:         repo,
		responder:    responder,
		active:       active,
		limitMB:      limitMB,
		historyLimit: historyLimit,
		log:          log.With("component", "chat"),
	}
}

func (s *Service) LimitMB() float64 { return s.limitMB }

type SendRequest struct {
	UserID uint64
	// Message is what the advisor answers. For photo uploads the frontend
	// sends its own description of the detection here.
	Message string
	// UserQuery is what the farmer typed; stored instead of Message when set.
	UserQuery        string
	Language         string
	DetectedDiseases []string
	ImageCount       int
}

type SendResult struct {
	Response  string `json:"response"`
	Language  string `json:"language"`
	SessionID string `json:"session_id"`
	TurnID    uint64 `json:"turn_id,omitempty"`
	// Saved is false when the answer could not be stored.
	Saved bool `json:"-"`
}

// Send answers the message in the user's active session and records the
// turn. A full session is reported before anything is generated; a failed
// write is logged and the answer is still returned.
func (s *Service) Send(ctx context.Context, req SendRequest) (SendResult, error) {
	sid, err := s.ActiveSession(ctx, req.UserID)
	if err != nil {
		return SendResult{}, err
	}
	return s.answer(ctx, sid, "", req)
}

// answer generates and stores a reply. A non-empty jobID links the stored
// turn to that job.
func (s *Service) answer(ctx context.Context, sessionID, jobID string, req SendRequest) (SendResult, error) {
	if strings.TrimSpace(req.Message) == "" && strings.TrimSpace(req.UserQuery) == "" {
		return SendResult{}, ErrEmptyMessage
	}
	lang := language.Resolve(req.Language)

	if err := s.repo.CheckCapacity(ctx, sessionID, s.limitMB); err != nil {
		var full *SessionFullError
		if errors.As(err, &full) {
			metrics.SessionFullCounter.Inc()
		}
		return SendResult{}, err
	}

	reply := s.responder.Respond(ctx, inputFor(req, lang), lang)
	res := SendResult{Response: reply, Language: lang, SessionID: sessionID}

	stored := req.Message
	if q := strings.TrimSpace(req.UserQuery); q != "" {
		stored = q
	}
	turn := &Turn{
		UserID:      req.UserID,
		SessionID:   sessionID,
		UserMessage: stored,
		AIResponse:  reply,
		Language:    lang,
		HasImages:   req.ImageCount > 0 || len(req.DetectedDiseases) > 0,
	}
	if len(req.DetectedDiseases) > 0 {
		d := strings.Join(req.DetectedDiseases, ",")
		turn.DetectedDiseases = &d
	}
	var err error
	if jobID != "" {
		err = s.repo.AppendJobTurn(ctx, jobID, turn, s.limitMB)
	} else {
		err = s.repo.AppendTurn(ctx, turn, s.limitMB)
	}
	if err != nil {
		s.log.Error("failed to store chat turn", "user_id", req.UserID, "session_id", sessionID, "error", err)
		return res, nil
	}
	res.TurnID = turn.ID
	res.Saved = true
	return res, nil
}

func inputFor(req SendRequest, lang string) prompt.Input {
	if len(req.DetectedDiseases) > 0 {
		question := req.UserQuery
		if question == "" && req.ImageCount == 0 {
			question = req.Message
		}
		return prompt.Disease(prompt.DiseaseRequest{
			Diseases:   req.DetectedDiseases,
			ImageCount: req.ImageCount,
			Question:   question,
			Language:   lang,
		})
	}
	text := req.Message
	if strings.TrimSpace(text) == "" {
		text = req.UserQuery
	}
	return prompt.Message{Text: text}
}

// ActiveSession returns the user's current session, starting one if the
// user has none.
func (s *Service) ActiveSession(ctx context.Context, userID uint64) (string, error) {
	sid, ok, err := s.active.ActiveSession(ctx, userID)
	if err != nil {
		s.log.Warn("active session lookup failed, starting a new session", "user_id", userID, "error", err)
	}
	if ok && sid != "" {
		return sid, nil
	}
	return s.NewSession(ctx, userID)
}

func (s *Service) NewSession(ctx context.Context, userID uint64) (string, error) {
	sid, err := common.NewULID()
	if err != nil {
		return "", fmt.Errorf("chat: new session id: %w", err)
	}
	if err := s.active.SetActiveSession(ctx, userID, sid); err != nil {
		return "", err
	}
	return sid, nil
}

// Activate makes sessionID the target of the user's next turns.
func (s *Service) Activate(ctx context.Context, userID uint64, sessionID string) error {
	if !common.IsULID(sessionID) {
		return ErrInvalidSession
	}
	owner, found, err := s.repo.SessionOwner(ctx, sessionID)
	if err != nil {
		return err
	}
	if found && owner != userID {
		return ErrForbidden
	}
	return s.active.SetActiveSession(ctx, userID, sessionID)
}

type SessionList struct {
	Sessions        []SessionSummary `json:"sessions"`
	ActiveSessionID string           `json:"active_session_id"`
	SessionLimitMB  float64          `json:"session_limit_mb"`
}

func (s *Service) Sessions(ctx context.Context, userID uint64) (SessionList, error) {
	list, err := s.repo.Sessions(ctx, userID, s.limitMB)
	if err != nil {
		return SessionList{}, err
	}
	active, _, err := s.active.ActiveSession(ctx, userID)
	if err != nil {
		s.log.Warn("active session lookup failed", "user_id", userID, "error", err)
	}
	return SessionList{Sessions: list, ActiveSessionID: active, SessionLimitMB: s.limitMB}, nil
}

func (s *Service) SessionMessages(ctx context.Context, userID uint64, sessionID string) ([]Turn, error) {
	if !common.IsULID(sessionID) {
		return nil, ErrInvalidSession
	}
	turns, err := s.repo.SessionTurns(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if len(turns) == 0 {
		owner, found, err := s.repo.SessionOwner(ctx, sessionID)
		if err != nil {
			return nil, err
		}
		if found && owner != userID {
			return nil, ErrNotFound
		}
	}
	return turns, nil
}

func (s *Service) History(ctx context.Context, userID uint64) ([]Turn, error) {
	return s.repo.Recent(ctx, userID, s.historyLimit)
}

// Clear deletes the user's history and starts a fresh session.
func (s *Service) Clear(ctx context.Context, userID uint64) (int64, error) {
	n, err := s.repo.ClearUser(ctx, userID)
	if err != nil {
		return 0, err
	}
	if _, err := s.NewSession(ctx, userID); err != nil {
		s.log.Warn("could not reset active session after clear", "user_id", userID, "error", err)
	}
	return n, nil
}
