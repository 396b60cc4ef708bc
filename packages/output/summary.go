package output

import (
	"fmt"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
	"github.com/abdul-hamid-achik/bcurl/packages/executor"
	"github.com/fatih/color"
)

// Summary prints batch totals and a latency distribution over all
// outcomes that reached the server.
func (p *Printer) Summary(result *executor.BatchResult) {
	bold := color.New(color.Bold).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()

	// 1us to 60s range, 3 significant digits
	hist := hdrhistogram.New(1, 60_000_000, 3)

	succeeded := 0
	failed := 0
	for i := range result.Outcomes {
		o := &result.Outcomes[i]
		if o.OK() {
			succeeded++
		} else {
			failed++
		}
		if o.Response != nil {
			_ = hist.RecordValue(o.Elapsed.Microseconds())
		}
	}

	fmt.Fprintf(p.out, "\n%s\n", bold("Batch summary"))
	fmt.Fprintf(p.out, "  URLs:      %d\n", len(result.Outcomes))
	fmt.Fprintf(p.out, "  Succeeded: %s\n", green(fmt.Sprintf("%d", succeeded)))
	if failed > 0 {
		fmt.Fprintf(p.out, "  Failed:    %s\n", red(fmt.Sprintf("%d", failed)))
	}
	fmt.Fprintf(p.out, "  Wall time: %s\n", result.Elapsed.Round(time.Millisecond))

	if hist.TotalCount() == 0 {
		return
	}

	fmt.Fprintf(p.out, "  Latency:   min=%s mean=%s p50=%s p95=%s p99=%s max=%s\n",
		micros(hist.Min()),
		micros(int64(hist.Mean())),
		micros(hist.ValueAtQuantile(50)),
		micros(hist.ValueAtQuantile(95)),
		micros(hist.ValueAtQuantile(99)),
		micros(hist.Max()),
	)
}

func micros(us int64) string {
	return (time.Duration(us) * time.Microsecond).Round(time.Millisecond / 10).String()
}
