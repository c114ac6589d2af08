package chat

import (
	"context"
	"errors"
	"math"

	"gorm.io/gorm"
)

const bytesPerMB = 1024 * 1024

// sizeExprFor sums the character length of every stored message and answer.
// MySQL's LENGTH counts bytes and SQLite has no CHAR_LENGTH.
func sizeExprFor(dialect string) string {
	fn := "CHAR_LENGTH"
	if dialect == "sqlite" {
		fn = "LENGTH"
	}
	return "COALESCE(SUM(" + fn + "(user_message) + " + fn + "(ai_response)), 0)"
}

func (r *Repo) sizeExpr() string {
	return sizeExprFor(r.db.Dialector.Name())
}

// SessionSize is the combined length in characters of every message and
// answer stored under sessionID.
func (r *Repo) SessionSize(ctx context.Context, sessionID string) (int64, error) {
	var size int64
	err := r.db.WithContext(ctx).Model(&Turn{}).
		Select(r.sizeExpr()).
		Where("session_id = ?", sessionID).
		Scan(&size).Error
	return size, err
}

// CheckCapacity returns a *SessionFullError when the stored size of
// sessionID is at or above limitMB.
func (r *Repo) CheckCapacity(ctx context.Context, sessionID string, limitMB float64) error {
	size, err := r.SessionSize(ctx, sessionID)
	if err != nil {
		return err
	}
	if float64(size) >= limitMB*bytesPerMB {
		return &SessionFullError{CurrentMB: toMB(size), LimitMB: limitMB}
	}
	return nil
}

// AppendTurn stores t unless its session is already full. Only committed
// turns count; t itself may take the session past the limit.
func (r *Repo) AppendTurn(ctx context.Context, t *Turn, limitMB float64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txr := &Repo{db: tx}
		if err := txr.CheckCapacity(ctx, t.SessionID, limitMB); err != nil {
			return err
		}
		return tx.Create(t).Error
	})
}

// AppendJobTurn stores t like AppendTurn and records it as the job's result
// in the same transaction, so a rerun of an interrupted job finds the turn
// instead of storing a second one.
func (r *Repo) AppendJobTurn(ctx context.Context, jobID string, t *Turn, limitMB float64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txr := &Repo{db: tx}
		if err := txr.CheckCapacity(ctx, t.SessionID, limitMB); err != nil {
			return err
		}
		if err := tx.Create(t).Error; err != nil {
			return err
		}
		return tx.Model(&Job{}).Where("id = ?", jobID).Update("result_turn_id", t.ID).Error
	})
}

func (r *Repo) GetTurn(ctx context.Context, id uint64) (*Turn, error) {
	var t Turn
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

// Recent returns the user's latest turns across sessions, oldest first.
func (r *Repo) Recent(ctx context.Context, userID uint64, limit int) ([]Turn, error) {
	if limit <= 0 {
		limit = 50
	}
	var desc []Turn
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&desc).Error; err != nil {
		return nil, err
	}
	for i, j := 0, len(desc)-1; i < j; i, j = i+1, j-1 {
		desc[i], desc[j] = desc[j], desc[i]
	}
	return desc, nil
}

func (r *Repo) SessionTurns(ctx context.Context, userID uint64, sessionID string) ([]Turn, error) {
	var turns []Turn
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND session_id = ?", userID, sessionID).
		Order("created_at ASC, id ASC").
		Find(&turns).Error
	return turns, err
}

// SessionOwner returns the user that wrote turns under sessionID, or false
// when the session has no turns yet.
func (r *Repo) SessionOwner(ctx context.Context, sessionID string) (uint64, bool, error) {
	var turns []Turn
	if err := r.db.WithContext(ctx).
		Select("user_id").
		Where("session_id = ?", sessionID).
		Limit(1).
		Find(&turns).Error; err != nil {
		return 0, false, err
	}
	if len(turns) == 0 {
		return 0, false, nil
	}
	return turns[0].UserID, true, nil
}

type sessionAgg struct {
	SessionID string
	FirstID   uint64
	Count     int64
	Size      int64
}

// Sessions summarizes every session of the user, newest first.
func (r *Repo) Sessions(ctx context.Context, userID uint64, limitMB float64) ([]SessionSummary, error) {
	var aggs []sessionAgg
	if err := r.db.WithContext(ctx).Model(&Turn{}).
		Select("session_id, MIN(id) AS first_id, COUNT(*) AS count, "+r.sizeExpr()+" AS size").
		Where("user_id = ?", userID).
		Group("session_id").
		Order("first_id DESC").
		Scan(&aggs).Error; err != nil {
		return nil, err
	}
	if len(aggs) == 0 {
		return []SessionSummary{}, nil
	}

	ids := make([]uint64, 0, len(aggs))
	for _, a := range aggs {
		ids = append(ids, a.FirstID)
	}
	var firsts []Turn
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&firsts).Error; err != nil {
		return nil, err
	}
	byID := make(map[uint64]Turn, len(firsts))
	for _, t := range firsts {
		byID[t.ID] = t
	}

	out := make([]SessionSummary, 0, len(aggs))
	for _, a := range aggs {
		first := byID[a.FirstID]
		out = append(out, SessionSummary{
			SessionID:        a.SessionID,
			Title:            sessionTitle(first.UserMessage),
			MessageCount:     a.Count,
			FirstMessageTime: first.CreatedAt,
			SizeMB:           math.Round(toMB(a.Size)*100) / 100,
			IsFull:           float64(a.Size) >= limitMB*bytesPerMB,
		})
	}
	return out, nil
}

// ClearUser deletes every turn the user stored.
func (r *Repo) ClearUser(ctx context.Context, userID uint64) (int64, error) {
	res := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&Turn{})
	return res.RowsAffected, res.Error
}

func sessionTitle(first string) string {
	if first == "" {
		return "New Chat"
	}
	runes := []rune(first)
	if len(runes) > 40 {
		return string(runes[:40]) + "..."
	}
	return first
}

func toMB(size int64) float64 {
	return float64(size) / bytesPerMB
}
