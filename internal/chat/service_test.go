package chat

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/suPer8Hu/krishi-mitra/internal/logger"
	"github.com/suPer8Hu/krishi-mitra/internal/prompt"
)

type recordingResponder struct {
	reply string
	calls []prompt.Input
	langs []string
}

func (r *recordingResponder) Respond(ctx context.Context, in prompt.Input, lang string) string {
	_ = ctx
	r.calls = append(r.calls, in)
	r.langs = append(r.langs, lang)
	return r.reply
}

func newTestService(t *testing.T, limitMB float64) (*Service, *recordingResponder) {
	t.Helper()
	resp := &recordingResponder{reply: "Apply 50 kg urea per acre."}
	return NewService(NewRepo(openTestDB(t)), resp, NewMemoryActiveSessions(), limitMB, 50, logger.Nop()), resp
}

func TestSend_StoresTurnInActiveSession(t *testing.T) {
	svc, resp := newTestService(t, 16)
	ctx := context.Background()

	first, err := svc.Send(ctx, SendRequest{UserID: 1, Message: "wheat fertilizer?", Language: "hi"})
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if !first.Saved || first.TurnID == 0 {
		t.Fatalf("turn not saved: %+v", first)
	}
	if first.Language != "hi" || first.Response != resp.reply {
		t.Fatalf("unexpected result: %+v", first)
	}
	if msg, ok := resp.calls[0].(prompt.Message); !ok || msg.Text != "wheat fertilizer?" {
		t.Fatalf("responder got %#v", resp.calls[0])
	}

	second, err := svc.Send(ctx, SendRequest{UserID: 1, Message: "and DAP?", Language: "xx"})
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if second.SessionID != first.SessionID {
		t.Fatalf("expected same session, got %s and %s", first.SessionID, second.SessionID)
	}
	if second.Language != "en" {
		t.Fatalf("unsupported language should resolve to en, got %s", second.Language)
	}

	turns, err := svc.SessionMessages(ctx, 1, first.SessionID)
	if err != nil {
		t.Fatalf("messages: %v", err)
	}
	if len(turns) != 2 || turns[0].UserMessage != "wheat fertilizer?" {
		t.Fatalf("unexpected turns: %+v", turns)
	}
}

func TestSend_DiseasesUsePreComposedPromptAndStoreUserQuery(t *testing.T) {
	svc, resp := newTestService(t, 16)
	ctx := context.Background()

	res, err := svc.Send(ctx, SendRequest{
		UserID:           1,
		Message:          "Detected: Tomato Early Blight",
		UserQuery:        "what should I spray?",
		DetectedDiseases: []string{"Tomato Early Blight"},
		ImageCount:       1,
	})
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	pc, ok := resp.calls[0].(prompt.PreComposed)
	if !ok {
		t.Fatalf("expected PreComposed, got %T", resp.calls[0])
	}
	if !strings.Contains(pc.Text, "Tomato Early Blight") || !strings.Contains(pc.Text, "what should I spray?") {
		t.Fatalf("disease prompt missing details: %s", pc.Text)
	}

	turns, _ := svc.SessionMessages(ctx, 1, res.SessionID)
	if len(turns) != 1 {
		t.Fatalf("expected 1 turn, got %d", len(turns))
	}
	if turns[0].UserMessage != "what should I spray?" || !turns[0].HasImages {
		t.Fatalf("unexpected stored turn: %+v", turns[0])
	}
	if turns[0].DetectedDiseases == nil || *turns[0].DetectedDiseases != "Tomato Early Blight" {
		t.Fatalf("diseases not stored: %v", turns[0].DetectedDiseases)
	}
}

func TestSend_FullSessionIsRejectedBeforeGeneration(t *testing.T) {
	svc, resp := newTestService(t, 0.25)
	ctx := context.Background()
	sid, err := svc.NewSession(ctx, 1)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	big := strings.Repeat("b", 128*1024)
	if err := svc.repo.AppendTurn(ctx, &Turn{UserID: 1, SessionID: sid, UserMessage: big, AIResponse: big}, 1); err != nil {
		t.Fatalf("seed: %v", err)
	}

	_, err = svc.Send(ctx, SendRequest{UserID: 1, Message: "one more"})
	var full *SessionFullError
	if !errors.As(err, &full) {
		t.Fatalf("expected SessionFullError, got %v", err)
	}
	if len(resp.calls) != 0 {
		t.Fatalf("responder should not be called for a full session")
	}

	// A new chat accepts messages again.
	if _, err := svc.NewSession(ctx, 1); err != nil {
		t.Fatalf("new session: %v", err)
	}
	if _, err := svc.Send(ctx, SendRequest{UserID: 1, Message: "one more"}); err != nil {
		t.Fatalf("send after new chat: %v", err)
	}
}

func TestSend_ReturnsAnswerWhenStoreFails(t *testing.T) {
	svc, _ := newTestService(t, 16)
	ctx := context.Background()
	if err := svc.repo.db.Migrator().DropTable(&Turn{}); err != nil {
		t.Fatalf("drop: %v", err)
	}

	// Capacity can still be read; the insert fails on the missing columns.
	if err := svc.repo.db.Exec("CREATE TABLE chat_turns (id INTEGER PRIMARY KEY, session_id TEXT, user_message TEXT, ai_response TEXT)").Error; err != nil {
		t.Fatalf("create: %v", err)
	}
	res, err := svc.Send(ctx, SendRequest{UserID: 1, Message: "hello"})
	if err != nil {
		t.Fatalf("send should succeed without storage, got %v", err)
	}
	if res.Saved || res.Response == "" {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestSend_EmptyMessage(t *testing.T) {
	svc, _ := newTestService(t, 16)
	if _, err := svc.Send(context.Background(), SendRequest{UserID: 1, Message: "   "}); !errors.Is(err, ErrEmptyMessage) {
		t.Fatalf("expected ErrEmptyMessage, got %v", err)
	}
}

func TestActivate_ValidatesIDAndOwner(t *testing.T) {
	svc, _ := newTestService(t, 16)
	ctx := context.Background()

	if err := svc.Activate(ctx, 1, "not-a-ulid"); !errors.Is(err, ErrInvalidSession) {
		t.Fatalf("expected ErrInvalidSession, got %v", err)
	}

	res, err := svc.Send(ctx, SendRequest{UserID: 2, Message: "mine"})
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if err := svc.Activate(ctx, 1, res.SessionID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := svc.Activate(ctx, 2, res.SessionID); err != nil {
		t.Fatalf("owner activate: %v", err)
	}

	list, err := svc.Sessions(ctx, 2)
	if err != nil {
		t.Fatalf("sessions: %v", err)
	}
	if list.ActiveSessionID != res.SessionID || len(list.Sessions) != 1 || list.SessionLimitMB != 16 {
		t.Fatalf("unexpected list: %+v", list)
	}
}

func TestClear_StartsNewSession(t *testing.T) {
	svc, _ := newTestService(t, 16)
	ctx := context.Background()

	res, _ := svc.Send(ctx, SendRequest{UserID: 1, Message: "hi"})
	n, err := svc.Clear(ctx, 1)
	if err != nil || n != 1 {
		t.Fatalf("clear: n=%d err=%v", n, err)
	}
	sid, err := svc.ActiveSession(ctx, 1)
	if err != nil {
		t.Fatalf("active: %v", err)
	}
	if sid == res.SessionID {
		t.Fatalf("expected a fresh session after clear")
	}
	hist, _ := svc.History(ctx, 1)
	if len(hist) != 0 {
		t.Fatalf("history not cleared: %d", len(hist))
	}
}

func TestEnqueue_IdempotencyKey(t *testing.T) {
	svc, _ := newTestService(t, 16)
	ctx := context.Background()
	req := SendRequest{UserID: 1, Message: "onion price in Nashik", Language: "mr"}

	job1, created, err := svc.Enqueue(ctx, req, "k-1")
	if err != nil || !created {
		t.Fatalf("first enqueue: created=%v err=%v", created, err)
	}
	job2, created, err := svc.Enqueue(ctx, req, "k-1")
	if err != nil {
		t.Fatalf("second enqueue: %v", err)
	}
	if created || job2.ID != job1.ID {
		t.Fatalf("expected existing job %s, got %s created=%v", job1.ID, job2.ID, created)
	}

	if _, err := svc.GetJob(ctx, 2, job1.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("other user should not see job, got %v", err)
	}
}

func TestRunJob_SucceedsOnceAndSkipsRedelivery(t *testing.T) {
	svc, resp := newTestService(t, 16)
	ctx := context.Background()

	job, _, err := svc.Enqueue(ctx, SendRequest{UserID: 1, Message: "soybean sowing time", Language: "hi"}, "")
	if err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	if err := svc.RunJob(ctx, job.ID); err != nil {
		t.Fatalf("run: %v", err)
	}
	if err := svc.RunJob(ctx, job.ID); err != nil {
		t.Fatalf("rerun: %v", err)
	}
	if len(resp.calls) != 1 {
		t.Fatalf("expected one generation, got %d", len(resp.calls))
	}
	if resp.langs[0] != "hi" {
		t.Fatalf("job language not used: %s", resp.langs[0])
	}

	got, err := svc.GetJob(ctx, 1, job.ID)
	if err != nil {
		t.Fatalf("get job: %v", err)
	}
	if got.Status != JobSucceeded || got.ResultTurnID == nil || got.Response == nil || *got.Response != resp.reply {
		t.Fatalf("unexpected job: %+v", got)
	}
	hist, _ := svc.History(ctx, 1)
	if len(hist) != 1 {
		t.Fatalf("expected 1 stored turn, got %d", len(hist))
	}
}

func TestRunJob_InterruptedAfterStoreDoesNotDuplicateTurn(t *testing.T) {
	svc, resp := newTestService(t, 16)
	ctx := context.Background()

	job, _, err := svc.Enqueue(ctx, SendRequest{UserID: 1, Message: "paddy blast spray", Language: "en"}, "")
	if err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	// First attempt stored its turn and then stopped before marking the job.
	if _, err := svc.repo.UpdateJobStatusRunning(ctx, job.ID); err != nil {
		t.Fatalf("start: %v", err)
	}
	stored := &Turn{UserID: 1, SessionID: job.SessionID, UserMessage: "paddy blast spray", AIResponse: "Spray tricyclazole.", Language: "en"}
	if err := svc.repo.AppendJobTurn(ctx, job.ID, stored, 16); err != nil {
		t.Fatalf("store: %v", err)
	}

	if err := svc.RunJob(ctx, job.ID); err != nil {
		t.Fatalf("rerun: %v", err)
	}
	if len(resp.calls) != 0 {
		t.Fatalf("expected no new generation, got %d", len(resp.calls))
	}
	hist, _ := svc.History(ctx, 1)
	if len(hist) != 1 {
		t.Fatalf("expected 1 stored turn, got %d", len(hist))
	}
	got, err := svc.GetJob(ctx, 1, job.ID)
	if err != nil {
		t.Fatalf("get job: %v", err)
	}
	if got.Status != JobSucceeded || got.ResultTurnID == nil || *got.ResultTurnID != stored.ID {
		t.Fatalf("unexpected job: %+v", got)
	}
	if got.Response == nil || *got.Response != "Spray tricyclazole." {
		t.Fatalf("unexpected response: %v", got.Response)
	}
}

func TestRunJob_FullSessionFailsJob(t *testing.T) {
	svc, _ := newTestService(t, 0.25)
	ctx := context.Background()

	job, _, err := svc.Enqueue(ctx, SendRequest{UserID: 1, Message: "q"}, "")
	if err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	big := strings.Repeat("c", 128*1024)
	if err := svc.repo.AppendTurn(ctx, &Turn{UserID: 1, SessionID: job.SessionID, UserMessage: big, AIResponse: big}, 1); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := svc.RunJob(ctx, job.ID); err != nil {
		t.Fatalf("run: %v", err)
	}
	got, _ := svc.GetJob(ctx, 1, job.ID)
	if got.Status != JobFailed || got.Error == nil {
		t.Fatalf("expected failed job, got %+v", got)
	}
}
