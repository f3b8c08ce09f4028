package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vic/waitq/pkg/script"
)

type TestCase struct {
	Name   string
	Input  string
	Output string
}

const testTemplate = `
package gentests
import _ "embed"
import "testing"
import "github.com/vic/waitq/cmd/gentests/helper"
//go:embed input.wq
var input string
//go:embed output.wq
var output string
func Test_%s_Scenario(t *testing.T) {
	gentests.CheckScenario(t, "%s", input, output)
}
`

func main() {
	tests := []TestCase{
		// Equal priorities leave in arrival order
		{"001_fifo_ties",
			"insert a 5; insert b 1; insert c 5; pop; pop; pop; pop",
			"pop b 1\npop a 5\npop c 5\npop -"},

		{"002_empty", "pop; peek; empty; len", "pop -\npeek -\nempty true\nlen 0"},

		{"003_remove_head_tie",
			"insert a 3; insert b 3; remove a; pop; empty",
			"pop b 3\nempty true"},

		descending(1000),

		// Insert then remove leaves the queue unchanged
		{"005_insert_remove_identity",
			"insert a 1; insert b 2; insert c 2; dump; insert x 2; remove x; dump",
			"dump a:1 b:2 c:2\ndump a:1 b:2 c:2"},

		{"006_reprioritize",
			"insert a 5; insert b 5; insert c 5; prio c 1; dump; prio a 5; dump",
			"dump c:1 a:5 b:5\ndump c:1 b:5 a:5"},

		{"007_negative_priorities",
			"insert hi -16; insert lo 31; insert mid 0; insert hi2 -16; drain",
			"drain hi:-16 hi2:-16 mid:0 lo:31"},

		{"008_interleaved",
			"insert a 2; insert b 1; pop; insert c 1; insert d 2; pop; pop; insert e 0; pop; pop; len",
			"pop b 1\npop c 1\npop a 2\npop e 0\npop d 2\nlen 0"},

		{"009_peek_stable",
			"insert a 4; peek; insert b 4; peek; insert c 3; peek; len",
			"peek a 4\npeek a 4\npeek c 3\nlen 3"},
	}

	baseDir := "cmd/gentests/generated"
	os.MkdirAll(baseDir, 0755)

	for _, tc := range tests {
		dir := filepath.Join(baseDir, tc.Name)
		os.MkdirAll(dir, 0755)

		// Normalize Input
		ops, err := script.Parse(tc.Input)
		if err != nil {
			fmt.Printf("Error parsing input for %s: %v\n", tc.Name, err)
			continue
		}

		testGo := fmt.Sprintf(testTemplate, tc.Name, tc.Name)

		os.WriteFile(filepath.Join(dir, "input.wq"), []byte(script.Format(ops)), 0644)
		os.WriteFile(filepath.Join(dir, "output.wq"), []byte(tc.Output+"\n"), 0644)
		os.WriteFile(filepath.Join(dir, "scenario_test.go"), []byte(testGo), 0644)
	}

	fmt.Printf("Generated %d tests\n", len(tests))
}

// descending inserts n waiters with strictly decreasing priorities and
// expects them back in increasing priority order.
func descending(n int) TestCase {
	var in, out strings.Builder
	for i := 0; i < n; i++ {
		fmt.Fprintf(&in, "insert w%04d %d\n", i, n-1-i)
	}
	for i := n - 1; i >= 0; i-- {
		in.WriteString("pop\n")
		fmt.Fprintf(&out, "pop w%04d %d\n", i, n-1-i)
	}
	in.WriteString("empty\n")
	out.WriteString("empty true")
	return TestCase{fmt.Sprintf("004_descending_%d", n), in.String(), out.String()}
}
