
package gentests
import _ "embed"
import "testing"
import "github.com/vic/waitq/cmd/gentests/helper"
//go:embed input.wq
var input string
//go:embed output.wq
var output string
func Test_005_insert_remove_identity_Scenario(t *testing.T) {
	gentests.CheckScenario(t, "005_insert_remove_identity", input, output)
}
