package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/agbru/fpcore/internal/sysmon"
	"github.com/agbru/fpcore/internal/ui"
)

func TestDisplayInfo(t *testing.T) {
	ui.InitTheme(true)
	defer ui.SetTheme("dark")

	var buf bytes.Buffer
	DisplayInfo(&buf, sysmon.Stats{GOARCH: "amd64", NumCPU: 8, WordBits: 64, ADX: true})
	out := buf.String()

	for _, s := range []string{"33", "2112", "2048", "amd64", "ADX (carry chains)", "yes", "0xffffffffffffffffc90fdaa2"} {
		if !strings.Contains(out, s) {
			t.Errorf("output missing %q:\n%s", s, out)
		}
	}
}
