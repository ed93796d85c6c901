package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"slices"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/dustin/go-humanize"
	"github.com/samber/lo"
)

// renderMarkdown lays results out as one table per dataset size followed by
// per-algorithm averages.
func renderMarkdown(results []BenchmarkResult, algorithms []string) string {
	var b strings.Builder

	b.WriteString("# Sort benchmark results\n\n")
	fmt.Fprintf(&b, "Run at: %s\n", time.Now().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "CPUs: %d\n", runtime.NumCPU())
	fmt.Fprintf(&b, "GOMAXPROCS: %d\n\n", runtime.GOMAXPROCS(0))

	bySize := lo.GroupBy(results, func(r BenchmarkResult) int { return r.DataSize })
	sizes := lo.Keys(bySize)
	slices.Sort(sizes)

	for _, size := range sizes {
		group := bySize[size]
		fmt.Fprintf(&b, "## %s keys (reference: %s)\n\n", humanize.Comma(int64(size)), group[0].Reference)
		b.WriteString("| Algorithm | Run | Time | Mkeys/s | Allocated | Mallocs | Goroutines |\n")
		b.WriteString("|-----------|-----|------|---------|-----------|---------|------------|\n")
		for _, algo := range algorithms {
			for _, r := range group {
				if r.Algorithm != algo {
					continue
				}
				fmt.Fprintf(&b, "| %s | %d | %v | %.2f | %s | %s | %d |\n",
					algo, r.TestRun, r.Duration, r.MKeysPerSec, humanize.Bytes(r.MemoryUsage),
					humanize.Comma(int64(r.Mallocs)), r.GoroutineNum)
			}
		}
		b.WriteString("\n")
	}

	b.WriteString("## Averages\n\n")
	for _, size := range sizes {
		fmt.Fprintf(&b, "### %s keys\n\n", humanize.Comma(int64(size)))
		b.WriteString("| Algorithm | Mean time | Mean Mkeys/s | Mean allocated |\n")
		b.WriteString("|-----------|-----------|--------------|----------------|\n")
		for _, algo := range algorithms {
			runs := lo.Filter(bySize[size], func(r BenchmarkResult, _ int) bool { return r.Algorithm == algo })
			if len(runs) == 0 {
				continue
			}
			n := len(runs)
			avgDuration := lo.SumBy(runs, func(r BenchmarkResult) time.Duration { return r.Duration }) / time.Duration(n)
			avgRate := lo.SumBy(runs, func(r BenchmarkResult) float64 { return r.MKeysPerSec }) / float64(n)
			avgMemory := lo.SumBy(runs, func(r BenchmarkResult) uint64 { return r.MemoryUsage }) / uint64(n)
			fmt.Fprintf(&b, "| %s | %v | %.2f | %s |\n", algo, avgDuration, avgRate, humanize.Bytes(avgMemory))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func saveResultsToMarkdown(path string, results []BenchmarkResult, algorithms []string) error {
	return errors.Wrap(os.WriteFile(path, []byte(renderMarkdown(results, algorithms)), 0o644), "writing markdown report")
}

func saveResultsToJSON(path string, results []BenchmarkResult) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "writing json report")
	}
	defer file.Close()

	writer := bufio.NewWriterSize(file, 32*1024)
	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(results); err != nil {
		return errors.Wrap(err, "encoding json report")
	}
	return errors.Wrap(writer.Flush(), "writing json report")
}
