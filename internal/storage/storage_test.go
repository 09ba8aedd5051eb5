package storage

import (
	"strings"
	"testing"
	"time"

	"github.com/expirywatch/labelscan/internal/models"
)

func boolPtr(b bool) *bool { return &b }

func strPtr(s string) *string { return &s }

func TestGetOrCreateReturnsZeroState(t *testing.T) {
	store := New(0)

	session := store.GetOrCreate("abc")
	if session.MobileConnected || session.WebConnected {
		t.Error("Expected connection flags to default to false")
	}
	if session.PendingCommand != nil {
		t.Errorf("Expected nil pending command, got %v", *session.PendingCommand)
	}
	if len(session.Images) != 0 {
		t.Errorf("Expected no images, got %d", len(session.Images))
	}

	// Repeated reads without writes are idempotent
	again := store.GetOrCreate("abc")
	if len(again.Images) != 0 || again.MobileConnected {
		t.Error("Expected identical zero state on repeated GetOrCreate")
	}
}

func TestApplyPartialUpdate(t *testing.T) {
	store := New(0)

	session := store.Apply("abc", models.SessionUpdate{MobileConnected: boolPtr(true)})
	if !session.MobileConnected {
		t.Error("Expected mobileConnected true after update")
	}
	if session.WebConnected {
		t.Error("Expected webConnected unchanged")
	}

	// Unspecified fields remain unchanged across updates
	session = store.Apply("abc", models.SessionUpdate{WebConnected: boolPtr(true)})
	if !session.MobileConnected || !session.WebConnected {
		t.Error("Expected both flags true after separate partial updates")
	}

	session = store.Apply("abc", models.SessionUpdate{Command: strPtr("open_camera")})
	if session.PendingCommand == nil || *session.PendingCommand != "open_camera" {
		t.Error("Expected pending command to be set")
	}

	// An explicit empty command clears the pending command
	session = store.Apply("abc", models.SessionUpdate{Command: strPtr("")})
	if session.PendingCommand != nil {
		t.Errorf("Expected pending command cleared, got %q", *session.PendingCommand)
	}

	// Absent command leaves state alone
	session = store.Apply("abc", models.SessionUpdate{WebConnected: boolPtr(true)})
	if session.PendingCommand != nil {
		t.Error("Expected pending command to stay cleared")
	}
}

func TestApplyAppendsImage(t *testing.T) {
	store := New(0)

	session := store.Apply("abc", models.SessionUpdate{Image: "data:image/png;base64,AAAA"})
	if len(session.Images) != 1 {
		t.Fatalf("Expected 1 image, got %d", len(session.Images))
	}
	if session.Images[0].DataURL != "data:image/png;base64,AAAA" {
		t.Errorf("Unexpected data URL: %q", session.Images[0].DataURL)
	}
}

func TestAppendImageIDsAreUnique(t *testing.T) {
	store := New(0)

	for i := 0; i < 5; i++ {
		store.AppendImage("abc", "data:image/png;base64,AAAA")
	}

	session := store.GetOrCreate("abc")
	if len(session.Images) != 5 {
		t.Fatalf("Expected 5 images, got %d", len(session.Images))
	}

	seen := make(map[string]bool)
	for _, img := range session.Images {
		if !strings.HasPrefix(img.ID, "img_") {
			t.Errorf("Unexpected id format: %q", img.ID)
		}
		if seen[img.ID] {
			t.Errorf("Duplicate image id: %q", img.ID)
		}
		seen[img.ID] = true
	}
}

func TestSessionsAreIsolated(t *testing.T) {
	store := New(0)

	store.AppendImage("one", "data:image/png;base64,AAAA")
	session := store.GetOrCreate("two")
	if len(session.Images) != 0 {
		t.Error("Expected sessions to be isolated")
	}
}

func TestSnapshotDoesNotAliasStore(t *testing.T) {
	store := New(0)

	store.AppendImage("abc", "data:image/png;base64,AAAA")
	session := store.GetOrCreate("abc")
	session.Images[0].Product = "mutated"

	if store.GetOrCreate("abc").Images[0].Product == "mutated" {
		t.Error("Store state leaked through returned snapshot")
	}
}

func TestSweepExpiresIdleSessions(t *testing.T) {
	store := New(time.Minute)

	current := time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return current }

	store.AppendImage("stale", "data:image/png;base64,AAAA")

	current = current.Add(2 * time.Minute)
	store.AppendImage("fresh", "data:image/png;base64,AAAA")
	store.sweep()

	if len(store.GetOrCreate("stale").Images) != 0 {
		t.Error("Expected idle session to be swept")
	}
	if len(store.GetOrCreate("fresh").Images) != 1 {
		t.Error("Expected recently used session to survive the sweep")
	}
}
