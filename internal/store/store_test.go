package store

import (
	"context"
	"strings"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	dsn := "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
	s, err := Open(dsn)
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so we skip journal_mode here.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func testKV(t *testing.T, kv KV) {
	t.Helper()
	ctx := context.Background()

	if _, ok, err := kv.Get(ctx, "missing"); err != nil || ok {
		t.Fatalf("Get(missing) = ok %v, err %v", ok, err)
	}

	if err := kv.Set(ctx, "profile", `{"grade":3}`); err != nil {
		t.Fatalf("set: %v", err)
	}
	v, ok, err := kv.Get(ctx, "profile")
	if err != nil || !ok || v != `{"grade":3}` {
		t.Fatalf("Get(profile) = %q, %v, %v", v, ok, err)
	}

	// Overwrite.
	if err := kv.Set(ctx, "profile", `{"grade":4}`); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	v, _, _ = kv.Get(ctx, "profile")
	if v != `{"grade":4}` {
		t.Errorf("after overwrite Get = %q", v)
	}

	kv.Set(ctx, "cache-v4-3-easy", "a")
	kv.Set(ctx, "cache-v4-3-hard", "b")
	keys, err := kv.Keys(ctx, "cache-")
	if err != nil {
		t.Fatalf("keys: %v", err)
	}
	if len(keys) != 2 || keys[0] != "cache-v4-3-easy" || keys[1] != "cache-v4-3-hard" {
		t.Errorf("Keys = %v", keys)
	}

	if err := kv.Delete(ctx, "profile"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := kv.Get(ctx, "profile"); ok {
		t.Error("profile still present after delete")
	}
	if err := kv.Delete(ctx, "profile"); err != nil {
		t.Errorf("deleting absent key: %v", err)
	}
}

func TestSQLiteKV(t *testing.T) {
	testKV(t, openTestStore(t).KV())
}

func TestMemoryKV(t *testing.T) {
	testKV(t, NewMemoryKV())
}

func TestLLMEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []LLMRequestEventData{
		{Provider: "mock", Model: "mock", Purpose: "question-gen", InputTokens: 100, OutputTokens: 50, LatencyMs: 10, Success: true},
		{Provider: "mock", Model: "mock", Purpose: "question-gen", InputTokens: 200, OutputTokens: 70, LatencyMs: 30, Success: true},
		{Provider: "mock", Model: "mock", Purpose: "tutor", InputTokens: 10, OutputTokens: 5, Success: false, ErrorMessage: "boom"},
	}
	for _, e := range events {
		if err := repo.AppendLLMRequest(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	all, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("got %d events, want 3", len(all))
	}
	if all[0].Purpose != "tutor" || all[0].Success || all[0].ErrorMessage != "boom" {
		t.Errorf("newest event = %+v", all[0])
	}
	if all[0].Sequence <= all[1].Sequence {
		t.Errorf("events not ordered newest first: %d, %d", all[0].Sequence, all[1].Sequence)
	}

	limited, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 1, Purpose: "question-gen"})
	if err != nil {
		t.Fatalf("query limited: %v", err)
	}
	if len(limited) != 1 || limited[0].InputTokens != 200 {
		t.Errorf("limited = %+v", limited)
	}

	got, err := repo.GetLLMEvent(ctx, all[2].ID)
	if err != nil || got == nil {
		t.Fatalf("get: %v, %v", got, err)
	}
	if got.InputTokens != 100 {
		t.Errorf("InputTokens = %d", got.InputTokens)
	}
	missing, err := repo.GetLLMEvent(ctx, 9999)
	if err != nil || missing != nil {
		t.Errorf("GetLLMEvent(9999) = %v, %v", missing, err)
	}

	usage, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("usage: %v", err)
	}
	if len(usage) != 2 {
		t.Fatalf("usage rows = %d", len(usage))
	}
	qg := usage[0]
	if qg.Purpose != "question-gen" || qg.Calls != 2 || qg.InputTokens != 300 || qg.OutputTokens != 120 || qg.AvgLatencyMs != 20 {
		t.Errorf("question-gen usage = %+v", qg)
	}

	n, err := repo.TruncateLLMEvents(ctx)
	if err != nil || n != 3 {
		t.Fatalf("truncate = %d, %v", n, err)
	}
	if left, _ := repo.QueryLLMEvents(ctx, QueryOpts{}); len(left) != 0 {
		t.Errorf("%d events left after truncate", len(left))
	}
}

func TestSequenceSharedAcrossTables(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	if err := repo.AppendLLMRequest(ctx, LLMRequestEventData{Provider: "mock", Model: "mock", Purpose: "tutor", Success: true}); err != nil {
		t.Fatal(err)
	}
	if err := repo.AppendSessionEvent(ctx, SessionEventData{SessionID: "s1", Mode: "daily", Action: SessionCompleted}); err != nil {
		t.Fatal(err)
	}
	llmEvents, _ := repo.QueryLLMEvents(ctx, QueryOpts{})
	sessions, _ := repo.QuerySessionEvents(ctx, QueryOpts{})
	if len(llmEvents) != 1 || len(sessions) != 1 {
		t.Fatalf("got %d llm and %d session events", len(llmEvents), len(sessions))
	}
	if llmEvents[0].Sequence != 1 || sessions[0].Sequence != 2 {
		t.Errorf("sequences = %d, %d; want 1, 2", llmEvents[0].Sequence, sessions[0].Sequence)
	}
}

func TestSessionEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	err := repo.AppendSessionEvent(ctx, SessionEventData{
		SessionID: "s1", Mode: "verbal", Action: "completed", Questions: 5, Correct: 5,
		Achievements: []string{"first_quiz", "perfect_score"},
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	err = repo.AppendSessionEvent(ctx, SessionEventData{
		SessionID: "s2", Mode: "daily", Action: "completed", Questions: 1, Correct: 0,
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}

	all, err := repo.QuerySessionEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(all) != 2 || all[0].SessionID != "s2" {
		t.Fatalf("events = %+v", all)
	}
	if all[0].Achievements != nil {
		t.Errorf("expected no achievements, got %v", all[0].Achievements)
	}

	verbal, err := repo.QuerySessionEvents(ctx, QueryOpts{Mode: "verbal"})
	if err != nil {
		t.Fatalf("query verbal: %v", err)
	}
	if len(verbal) != 1 || len(verbal[0].Achievements) != 2 || verbal[0].Achievements[1] != "perfect_score" {
		t.Errorf("verbal events = %+v", verbal)
	}
}
