package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akashgangil/HPPC-Labs/psort"
)

var smallConfig = psort.Config{SortGrain: 16, PartitionGrain: 64, ReverseGrain: 8, MaxForks: 4}

func TestGenerateRandomData(t *testing.T) {
	a := generateRandomData(1000, 7)
	require.Len(t, a, 1000)
	require.Equal(t, a, generateRandomData(1000, 7))
	require.NotEqual(t, a, generateRandomData(1000, 8))
	require.Empty(t, generateRandomData(0, 7))
}

func TestOptionsValidate(t *testing.T) {
	require.NoError(t, defaultOptions().validate())

	for name, mutate := range map[string]func(*options){
		"no sizes":      func(o *options) { o.sizes = nil },
		"negative size": func(o *options) { o.sizes = []int{10, -1} },
		"zero runs":     func(o *options) { o.runs = 0 },
		"bad algorithm": func(o *options) { o.algorithms = []string{"bogosort"} },
		"bad reference": func(o *options) { o.reference = "leveldb" },
		"bad config":    func(o *options) { o.cfg.SortGrain = -1 },
	} {
		t.Run(name, func(t *testing.T) {
			o := defaultOptions()
			mutate(&o)
			require.Error(t, o.validate())
		})
	}

	o := defaultOptions()
	o.reference = "Pebble"
	require.NoError(t, o.validate())
}

func TestRunBenchmark(t *testing.T) {
	sorter, err := psort.New[uint64](smallConfig)
	require.NoError(t, err)

	data := generateRandomData(5000, 1)
	// Duplicates exercise the equal band of the partition.
	for i := range data[:1000] {
		data[i] = uint64(i % 10)
	}
	o := defaultOptions()
	ref, err := prepareReference(o, data)
	require.NoError(t, err)
	require.True(t, slices.IsSorted(ref.sorted))

	for _, algo := range allAlgorithms {
		t.Run(algo, func(t *testing.T) {
			result, err := runBenchmark(algo, sorter, data, ref)
			require.NoError(t, err)
			assert.Equal(t, algo, result.Algorithm)
			assert.Equal(t, len(data), result.DataSize)
			assert.Positive(t, result.Duration)
		})
	}

	_, err = runBenchmark("bogosort", sorter, data, ref)
	require.Error(t, err)
}

func TestRunBenchmarkDetectsBadSort(t *testing.T) {
	data := generateRandomData(100, 3)
	ref, err := prepareReference(defaultOptions(), data)
	require.NoError(t, err)

	// A reference built from other keys must fail verification.
	other, err := prepareReference(defaultOptions(), generateRandomData(100, 4))
	require.NoError(t, err)
	_, err = runBenchmark(algoStdlib, nil, data, other)
	require.Error(t, err)

	_, err = runBenchmark(algoStdlib, nil, data, ref)
	require.NoError(t, err)
}

func TestKVReference(t *testing.T) {
	data := generateRandomData(2000, 5)
	want := slices.Clone(data)
	slices.Sort(want)

	for _, kind := range []string{"bbolt", "badger", "pebble"} {
		t.Run(kind, func(t *testing.T) {
			o := defaultOptions()
			o.reference = kind
			o.dir = t.TempDir()
			ref, err := prepareReference(o, data)
			require.NoError(t, err)
			require.Equal(t, want, ref.sorted)

			entries, err := os.ReadDir(o.dir)
			require.NoError(t, err)
			require.Empty(t, entries, "store directory left behind")
		})
	}
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	o := defaultOptions()
	o.sizes = []int{0, 1, 3000}
	o.runs = 2
	o.reference = "bbolt"
	o.dir = filepath.Join(dir, "stores")
	o.out = filepath.Join(dir, "results")
	o.metrics = filepath.Join(dir, "metrics.prom")
	o.cfg = smallConfig
	require.NoError(t, o.validate())

	var stdout bytes.Buffer
	require.NoError(t, run(o, &stdout))
	assert.Contains(t, stdout.String(), "N == 3,000")

	raw, err := os.ReadFile(o.out + ".json")
	require.NoError(t, err)
	var results []BenchmarkResult
	require.NoError(t, json.Unmarshal(raw, &results))
	require.Len(t, results, len(o.sizes)*len(o.algorithms)*o.runs)
	for _, r := range results {
		assert.Equal(t, "bbolt", r.Reference)
		assert.Contains(t, []int{1, 2}, r.TestRun)
	}

	md, err := os.ReadFile(o.out + ".md")
	require.NoError(t, err)
	for _, algo := range allAlgorithms {
		assert.Contains(t, string(md), "| "+algo+" |")
	}
	assert.Contains(t, string(md), "## 3,000 keys (reference: bbolt)")

	prom, err := os.ReadFile(o.metrics)
	require.NoError(t, err)
	assert.Contains(t, string(prom), `sortbench_keys_sorted_total{algorithm="parallel_quicksort"} 6002`)
	assert.Contains(t, string(prom), "sortbench_sort_seconds_bucket")
}

func TestMetrics(t *testing.T) {
	m := newMetrics()
	m.observe(BenchmarkResult{Algorithm: algoParallelQuickSort, DataSize: 100})
	m.observe(BenchmarkResult{Algorithm: algoParallelQuickSort, DataSize: 50})
	m.observe(BenchmarkResult{Algorithm: algoSequential, DataSize: 100})

	require.Equal(t, 150.0, testutil.ToFloat64(m.keys.WithLabelValues(algoParallelQuickSort)))
	require.Equal(t, 100.0, testutil.ToFloat64(m.keys.WithLabelValues(algoSequential)))

	families, err := m.reg.Gather()
	require.NoError(t, err)
	hist := findFamily(families, "sortbench_sort_seconds")
	require.NotNil(t, hist)
	require.Equal(t, dto.MetricType_HISTOGRAM, hist.GetType())
	// One series per algorithm and size.
	require.Len(t, hist.GetMetric(), 3)
}

func findFamily(families []*dto.MetricFamily, name string) *dto.MetricFamily {
	for _, mf := range families {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func TestRootCmd(t *testing.T) {
	dir := t.TempDir()
	cmd := newRootCmd()
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{
		"--sizes=200,400",
		"--runs=1",
		"--algorithms=parallel_quicksort,sequential",
		"--sort-grain=8",
		"--partition-grain=32",
		"--reverse-grain=4",
		"--out=" + filepath.Join(dir, "r"),
	})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, 2, strings.Count(stdout.String(), "parallel_quicksort"))

	cmd = newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{"--algorithms=bogosort", "--out=" + filepath.Join(dir, "r")})
	require.Error(t, cmd.Execute())
}
