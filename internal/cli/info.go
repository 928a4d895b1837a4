package cli

import (
	"fmt"
	"io"

	"github.com/agbru/fpcore/internal/bigint"
	"github.com/agbru/fpcore/internal/field"
	"github.com/agbru/fpcore/internal/sysmon"
	"github.com/agbru/fpcore/internal/ui"
)

// DisplayInfo writes the limb layout, the field modulus and host features.
func DisplayInfo(out io.Writer, host sysmon.Stats) {
	st := ui.NewStyles(out)
	row := func(label string, value any) {
		fmt.Fprintf(out, "%s %s\n", st.Label.Render(label), st.Value.Render(fmt.Sprint(value)))
	}

	fmt.Fprintln(out, st.Title.Render("BigInteger"))
	row("Limbs", bigint.NumLimbs)
	row("Bits", bigint.Bits)
	row("Random bits", bigint.RandomBits)
	row("Limb order", "least significant first")

	fmt.Fprintln(out)
	fmt.Fprintln(out, st.Title.Render("Field"))
	row("Modulus bits", field.Modulus.NumBits())
	row("Modulus", FormatTruncated("0x"+field.Modulus.Hex(), 64))

	fmt.Fprintln(out)
	fmt.Fprintln(out, st.Title.Render("Host"))
	row("GOARCH", host.GOARCH)
	row("CPUs", host.NumCPU)
	row("Word size", host.WordBits)
	row("ADX (carry chains)", yesNo(host.ADX))
	row("BMI2 (MULX)", yesNo(host.BMI2))
	row("ASIMD", yesNo(host.ASIMD))
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
