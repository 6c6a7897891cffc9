package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

func WriteTable(s *Summary, w io.Writer) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "\n=== RAG Evaluation ===\n")
	if s.RunID != "" {
		fmt.Fprintf(tw, "Run: %s\n", s.RunID)
	}
	fmt.Fprintf(tw, "Items: %d  Succeeded: %d  Failed: %d  EM hits: %d\n\n",
		s.Counts.Total, s.Counts.Succeeded, s.Counts.Failed, s.Counts.EMHits)

	writeMeansTable(tw, s)
	writeLatencyTable(tw, s)

	tw.Flush()
}

func writeMeansTable(tw *tabwriter.Writer, s *Summary) {
	fmt.Fprintf(tw, "Mean Scores (across %d successful items)\n\n", s.Counts.Succeeded)

	header := []string{"Recall@5", "MRR@5", "MAP@5", "Gen EM", "Gen F1", "E2E EM", "E2E F1"}
	writeHeader(tw, header)

	m := s.Means
	row := []string{
		fmtScore(m.Recall),
		fmtScore(m.MRR),
		fmtScore(m.MAP),
		fmtScore(m.GenEM),
		fmtScore(m.GenF1),
		fmtScore(m.E2EEM),
		fmtScore(m.E2EF1),
	}
	fmt.Fprintln(tw, strings.Join(row, "\t"))
	fmt.Fprintln(tw)
}

func writeLatencyTable(tw *tabwriter.Writer, s *Summary) {
	fmt.Fprintf(tw, "Latency Statistics\n\n")

	header := []string{"Stage", "Min", "p50", "p75", "p90", "p95", "p99", "Max", "Mean", "Stddev", "Samples"}
	writeHeader(tw, header)

	for _, stage := range []struct {
		name  string
		stats LatencyStats
	}{
		{"retrieval", s.RetrievalLatency},
		{"generation", s.GenerationLatency},
	} {
		st := stage.stats
		row := []string{
			stage.name,
			fmtMillis(st.Min),
			fmtMillis(st.P50()),
			fmtMillis(st.P75()),
			fmtMillis(st.P90()),
			fmtMillis(st.P95()),
			fmtMillis(st.P99()),
			fmtMillis(st.Max),
			fmtMillis(st.Mean),
			fmtMillis(st.Stddev),
			fmt.Sprintf("%d", st.SampleCount),
		}
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}

	fmt.Fprintln(tw)
}

func writeHeader(tw *tabwriter.Writer, header []string) {
	fmt.Fprintln(tw, strings.Join(header, "\t"))

	sep := make([]string, len(header))
	for i := range sep {
		sep[i] = "---"
	}
	fmt.Fprintln(tw, strings.Join(sep, "\t"))
}

func fmtScore(v float64) string {
	return fmt.Sprintf("%.4f", v)
}

func fmtMillis(ms float64) string {
	if ms == 0 {
		return "-"
	}
	if ms < 1 {
		return fmt.Sprintf("%.1fµs", ms*1000)
	}
	if ms < 1000 {
		return fmt.Sprintf("%.2fms", ms)
	}
	return fmt.Sprintf("%.2fs", ms/1000)
}
