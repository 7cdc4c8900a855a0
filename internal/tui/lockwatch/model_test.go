package lockwatch

import (
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/astdb-dev/astdb/internal/dblock"
)

func TestViewUnlocked(t *testing.T) {
	m := New("/ws/.astdb/.lock", time.Second)
	updated, _ := m.Update(recordMsg{record: nil})
	view := updated.View()
	if !strings.Contains(view, "unlocked") {
		t.Errorf("view missing unlocked state:\n%s", view)
	}
}

func TestViewHeldRecord(t *testing.T) {
	m := New("/ws/.astdb/.lock", time.Second)
	updated, _ := m.Update(recordMsg{record: &dblock.Lock{
		ID:         "abc",
		Type:       dblock.TypeExclusive,
		Operation:  "write-index",
		AcquiredAt: time.Now().Add(-2 * time.Second),
		TimeoutMs:  60000,
		PID:        os.Getpid(),
	}})
	view := updated.View()
	for _, want := range []string{"write-index", "exclusive", "held"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestViewReadError(t *testing.T) {
	m := New("/ws/.astdb/.lock", time.Second)
	updated, _ := m.Update(recordMsg{err: errors.New("permission denied")})
	if !strings.Contains(updated.View(), "permission denied") {
		t.Error("view does not surface read errors")
	}
}
