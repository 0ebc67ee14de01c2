package plugins

import (
	"strings"
	"testing"

	"zoocore/testutil"
)

// TestPluginsUseCoreFacade enforces that plugins only reach admission types
// through zoocore/internal/core and never narrate.
func TestPluginsUseCoreFacade(t *testing.T) {
	entries := []string{"./diet"}
	for _, dir := range entries {
		testutil.AssertNoDirectImports(t, dir, func(ip string) bool {
			return ip == "zoocore/pkg/domain" || strings.HasSuffix(ip, "/internal/report")
		}, "plugins depend on the core facade only")
	}
}
