package session

import (
	"testing"
	"time"

	"resumeforge-utils/internal/config"
	"resumeforge-utils/internal/customization"
)

func testManager(t *testing.T) *Manager {
	t.Helper()
	cfg, err := config.LoadConfig("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	return NewManager(cfg)
}

func TestCreateGetDelete(t *testing.T) {
	m := testManager(t)

	created := m.Create("tmpl_modern", "user_1")
	if created.ID == "" {
		t.Fatal("session should get an id")
	}

	got, ok := m.Get(created.ID)
	if !ok || got.TemplateID != "tmpl_modern" {
		t.Fatalf("Get returned %v, %v", got, ok)
	}

	if !m.Delete(created.ID) {
		t.Error("Delete should report true for a live session")
	}
	if _, ok := m.Get(created.ID); ok {
		t.Error("session should be gone after delete")
	}
	if m.Delete(created.ID) {
		t.Error("double delete should report false")
	}
}

func TestWithSerializesEngineAccess(t *testing.T) {
	m := testManager(t)
	session := m.Create("tmpl_modern", "user_1")

	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			_ = session.With(func(e *customization.Engine) error {
				return e.CustomizeColor("accent", "#2563eb")
			})
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}

	var history int
	_ = session.With(func(e *customization.Engine) error {
		history = e.HistoryLen()
		return nil
	})
	if history != 8 {
		t.Errorf("history length = %d, want 8", history)
	}
}

func TestEvictIdleRespectsTTL(t *testing.T) {
	m := testManager(t)
	m.ttl = 10 * time.Millisecond

	stale := m.Create("tmpl_modern", "user_1")
	time.Sleep(25 * time.Millisecond)
	fresh := m.Create("tmpl_modern", "user_2")

	m.evictIdle()

	if _, ok := m.Get(stale.ID); ok {
		t.Error("stale session should be evicted")
	}
	if _, ok := m.Get(fresh.ID); !ok {
		t.Error("fresh session should survive")
	}
}
