
package gentests
import _ "embed"
import "testing"
import "github.com/vic/waitq/cmd/gentests/helper"
//go:embed input.wq
var input string
//go:embed output.wq
var output string
func Test_001_fifo_ties_Scenario(t *testing.T) {
	gentests.CheckScenario(t, "001_fifo_ties", input, output)
}
