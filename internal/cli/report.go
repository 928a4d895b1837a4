package cli

import (
	"fmt"
	"io"

	"github.com/agbru/fpcore/internal/format"
	"github.com/agbru/fpcore/internal/selfcheck"
	"github.com/agbru/fpcore/internal/ui"
)

// DisplayReport writes the per-property table and summary of a self-check.
func DisplayReport(out io.Writer, r selfcheck.Report) {
	st := ui.NewStyles(out)

	fmt.Fprintln(out, st.Title.Render(fmt.Sprintf("Self-check against oracle %q", r.Oracle)))
	fmt.Fprintf(out, "%s %s\n", st.Label.Render("Samples"), st.Value.Render(fmt.Sprint(r.Samples)))
	fmt.Fprintf(out, "%s %s\n", st.Label.Render("Workers"), st.Value.Render(fmt.Sprint(r.Workers)))
	fmt.Fprintln(out)

	for _, res := range r.Results {
		status := st.Pass.Render("PASS")
		if res.Failed > 0 {
			status = st.Fail.Render("FAIL")
		}
		counts := fmt.Sprintf("%d passed, %d failed", res.Passed, res.Failed)
		fmt.Fprintf(out, "%s %s  %s\n", st.Label.Render(res.Name), status, st.Dim.Render(counts))
	}

	if err := r.Err(); err != nil {
		fmt.Fprintln(out)
		for _, res := range r.Results {
			if res.FirstFailure == nil {
				continue
			}
			fmt.Fprintf(out, "%s %s\n", st.Fail.Render("counterexample:"), res.Name)
			fmt.Fprintf(out, "  %s\n", FormatTruncated(res.FirstFailure.Counterexample, CounterexampleLimit))
		}
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "%s %s\n", st.Label.Render("Duration"), st.Value.Render(format.FormatExecutionDuration(r.Duration)))
	fmt.Fprintf(out, "%s %s\n", st.Label.Render("Allocated"),
		st.Value.Render(fmt.Sprintf("%s in %d objects, %d GC", format.FormatBytes(r.Memory.TotalAlloc), r.Memory.Mallocs, r.Memory.NumGC)))

	if r.Failures() > 0 {
		fmt.Fprintf(out, "%s %s\n", st.Label.Render("Result"), st.Fail.Render(fmt.Sprintf("FAIL (%d failures)", r.Failures())))
		return
	}
	fmt.Fprintf(out, "%s %s\n", st.Label.Render("Result"), st.Pass.Render("PASS"))
}

// FormatQuietReport returns a single-line summary suitable for scripting.
func FormatQuietReport(r selfcheck.Report) string {
	if n := r.Failures(); n > 0 {
		return fmt.Sprintf("FAIL %d/%d properties, %d failures", failedProperties(r), len(r.Results), n)
	}
	return fmt.Sprintf("PASS %d properties x %d samples", len(r.Results), r.Samples)
}

// DisplayQuietReport writes FormatQuietReport followed by a newline.
func DisplayQuietReport(out io.Writer, r selfcheck.Report) {
	fmt.Fprintln(out, FormatQuietReport(r))
}

func failedProperties(r selfcheck.Report) int {
	n := 0
	for _, res := range r.Results {
		if res.Failed > 0 {
			n++
		}
	}
	return n
}
