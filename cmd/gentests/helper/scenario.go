package gentests

import (
	"strings"
	"testing"
	"time"

	"github.com/vic/waitq/pkg/script"
	"github.com/vic/waitq/pkg/waitq"
)

// CheckScenario runs the script in inputStr against both queue backends
// and compares each output with outputStr.
func CheckScenario(t *testing.T, testName string, inputStr string, outputStr string) {
	t.Helper()
	expected := strings.TrimSpace(outputStr)

	backends := []struct {
		name string
		q    waitq.Backend[script.Waiter]
	}{
		{"dlist", &waitq.ListQueue[script.Waiter]{}},
		{"rbtree", &waitq.TreeQueue[script.Waiter]{}},
	}
	for _, b := range backends {
		var out strings.Builder
		start := time.Now()
		stats, err := script.Run(b.q, inputStr, &out)
		elapsed := time.Since(start)
		if err != nil {
			t.Fatalf("%s on %s: %v", testName, b.name, err)
		}

		actual := strings.TrimSpace(out.String())
		if actual != expected {
			t.Errorf("Mismatch in %s on %s:\nExpected:\n%s\nActual:\n%s", testName, b.name, expected, actual)
		}
		if !b.q.IsEmpty() {
			t.Logf("%s on %s: %d waiters left queued", testName, b.name, b.q.Len())
		}
		t.Logf("%s on %s: %d inserts, %d pops, max length %d in %v",
			testName, b.name, stats.Inserts, stats.Pops, stats.MaxLen, elapsed)
	}
}
