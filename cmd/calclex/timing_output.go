package main

import (
	"fmt"
	"io"
	"time"

	"calclex/internal/observ"
)

func printTimings(out io.Writer, report observ.Report) {
	for _, phase := range report.Phases {
		fmt.Fprintf(out, "%s %.1f ms", phase.Name, phase.DurationMS)
		if phase.Note != "" {
			fmt.Fprintf(out, " (%s)", phase.Note)
		}
		fmt.Fprintln(out)
	}
	fmt.Fprintf(out, "total %.1f ms\n", report.TotalMS)
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
