package main

import (
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/dustin/go-humanize"
	"github.com/golang/glog"
	"golang.org/x/sync/errgroup"

	"github.com/akashgangil/HPPC-Labs/kvdb"
	"github.com/akashgangil/HPPC-Labs/psort"
	"github.com/akashgangil/HPPC-Labs/verify"
)

// Algorithm names accepted by --algorithms.
const (
	algoSequential        = "sequential"
	algoStdlib            = "stdlib"
	algoParallelQuickSort = "parallel_quicksort"
	algoParallelMergeSort = "parallel_mergesort"

	referenceSequential = "sequential"
)

var allAlgorithms = []string{algoSequential, algoStdlib, algoParallelQuickSort, algoParallelMergeSort}

type options struct {
	sizes      []int
	runs       int
	seed       uint64
	algorithms []string
	reference  string
	dir        string
	out        string
	metrics    string
	cfg        psort.Config
}

func defaultOptions() options {
	return options{
		sizes:      []int{1_000, 100_000, 10_000_000},
		runs:       3,
		seed:       42,
		algorithms: slices.Clone(allAlgorithms),
		reference:  referenceSequential,
		dir:        filepath.Join(os.TempDir(), "sortbench"),
		out:        "benchmark_results",
	}
}

func (o options) validate() error {
	if len(o.sizes) == 0 {
		return errors.New("no dataset sizes")
	}
	for _, n := range o.sizes {
		if n < 0 {
			return errors.Newf("negative dataset size %d", n)
		}
	}
	if o.runs < 1 {
		return errors.Newf("runs = %d, want at least 1", o.runs)
	}
	for _, a := range o.algorithms {
		if !slices.Contains(allAlgorithms, a) {
			return errors.Newf("unknown algorithm %q", a)
		}
	}
	if o.reference != referenceSequential {
		if _, err := kvdb.ParseKind(o.reference); err != nil {
			return err
		}
	}
	return errors.Wrap(o.cfg.Validate(), "sorter config")
}

// BenchmarkResult is one timed run of one algorithm on one dataset.
type BenchmarkResult struct {
	Algorithm    string        `json:"algorithm"`
	DataSize     int           `json:"data_size"`
	Reference    string        `json:"reference"`
	TestRun      int           `json:"test_run"`
	Duration     time.Duration `json:"duration"`
	MKeysPerSec  float64       `json:"mkeys_per_sec"`
	MemoryUsage  uint64        `json:"memory_usage_bytes"`
	Mallocs      uint64        `json:"mallocs"`
	GoroutineNum int           `json:"goroutine_num"`
}

// generateRandomData returns n uniformly random keys. The same seed always
// yields the same keys.
func generateRandomData(n int, seed uint64) []uint64 {
	r := rand.New(rand.NewPCG(seed, uint64(n)))
	data := make([]uint64, n)
	for i := range data {
		data[i] = r.Uint64()
	}
	return data
}

// reference is what every sorted output is checked against.
type reference struct {
	sorted []uint64
	digest verify.Digest
}

// prepareReference sorts a copy of data with the configured reference
// method while fingerprinting the input.
func prepareReference(o options, data []uint64) (reference, error) {
	var ref reference
	var g errgroup.Group
	g.Go(func() error {
		ref.digest = verify.Fingerprint(data)
		return nil
	})
	g.Go(func() error {
		var err error
		ref.sorted, err = referenceSort(o, data)
		return err
	})
	if err := g.Wait(); err != nil {
		return reference{}, err
	}
	if got := verify.Fingerprint(ref.sorted); got != ref.digest {
		return reference{}, errors.Newf("reference %s changed the key multiset: %s, want %s", o.reference, got, ref.digest)
	}
	return ref, nil
}

func referenceSort(o options, data []uint64) ([]uint64, error) {
	if o.reference == referenceSequential {
		sorted := slices.Clone(data)
		slices.Sort(sorted)
		return sorted, nil
	}

	kind, err := kvdb.ParseKind(o.reference)
	if err != nil {
		return nil, err
	}
	dir := filepath.Join(o.dir, fmt.Sprintf("%s-%d", kind, len(data)))
	if err := os.RemoveAll(dir); err != nil {
		return nil, errors.Wrapf(err, "clearing %s", dir)
	}
	defer os.RemoveAll(dir)

	store, err := kvdb.Open(kind, dir)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	if err := store.Ingest(data); err != nil {
		_ = store.Close()
		return nil, err
	}
	sorted, err := store.Sorted(make([]uint64, 0, len(data)))
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	glog.V(1).Infof("%s reference for %s keys took %v", kind, humanize.Comma(int64(len(data))), time.Since(start))
	return sorted, store.Close()
}

// SystemStats captures allocation counters around a run.
type SystemStats struct {
	startTime time.Time
	startMem  runtime.MemStats
	endMem    runtime.MemStats
}

func startStats() *SystemStats {
	runtime.GC()

	s := &SystemStats{}
	runtime.ReadMemStats(&s.startMem)
	s.startTime = time.Now()
	return s
}

// endStats returns the elapsed time, bytes allocated and allocation count.
func (s *SystemStats) endStats() (time.Duration, uint64, uint64) {
	duration := time.Since(s.startTime)
	runtime.ReadMemStats(&s.endMem)
	return duration,
		s.endMem.TotalAlloc - s.startMem.TotalAlloc,
		s.endMem.Mallocs - s.startMem.Mallocs
}

// sortFunc returns the in-place sort for an algorithm name.
func sortFunc(algorithm string, sorter *psort.Sorter[uint64]) func([]uint64) {
	switch algorithm {
	case algoSequential:
		return psort.SequentialSort[uint64]
	case algoStdlib:
		return func(keys []uint64) { slices.Sort(keys) }
	case algoParallelQuickSort:
		return sorter.Sort
	case algoParallelMergeSort:
		return sorter.MergeSort
	}
	return nil
}

// runBenchmark sorts a fresh copy of data with algorithm and checks the
// result against ref.
func runBenchmark(algorithm string, sorter *psort.Sorter[uint64], data []uint64, ref reference) (BenchmarkResult, error) {
	result := BenchmarkResult{
		Algorithm:    algorithm,
		DataSize:     len(data),
		GoroutineNum: runtime.NumGoroutine(),
	}
	sortKeys := sortFunc(algorithm, sorter)
	if sortKeys == nil {
		return result, errors.Newf("unknown algorithm %q", algorithm)
	}

	testData := slices.Clone(data)

	stats := startStats()
	sortKeys(testData)
	result.Duration, result.MemoryUsage, result.Mallocs = stats.endStats()
	if secs := result.Duration.Seconds(); secs > 0 {
		result.MKeysPerSec = 1e-6 * float64(len(data)) / secs
	}

	if err := verify.CheckSorted(testData); err != nil {
		return result, errors.Wrap(err, algorithm)
	}
	if got := verify.Fingerprint(testData); got != ref.digest {
		return result, errors.Newf("%s: key multiset changed: %s, want %s", algorithm, got, ref.digest)
	}
	if err := verify.Equal(testData, ref.sorted); err != nil {
		return result, errors.Wrap(err, algorithm)
	}
	return result, nil
}

func run(o options, stdout io.Writer) error {
	sorter, err := psort.New[uint64](o.cfg)
	if err != nil {
		return err
	}
	m := newMetrics()

	fmt.Fprintf(stdout, "CPUs: %d, GOMAXPROCS: %d, reference: %s\n\n",
		runtime.NumCPU(), runtime.GOMAXPROCS(0), o.reference)

	var results []BenchmarkResult
	for _, size := range o.sizes {
		fmt.Fprintf(stdout, "N == %s\n", humanize.Comma(int64(size)))
		data := generateRandomData(size, o.seed)

		ref, err := prepareReference(o, data)
		if err != nil {
			return errors.Wrapf(err, "reference for %d keys", size)
		}

		for _, algo := range o.algorithms {
			for i := 1; i <= o.runs; i++ {
				result, err := runBenchmark(algo, sorter, data, ref)
				if err != nil {
					return errors.Wrapf(err, "run %d on %d keys", i, size)
				}
				result.TestRun = i
				result.Reference = o.reference
				results = append(results, result)
				m.observe(result)

				fmt.Fprintf(stdout, "  %-20s run %d: %v ==> %.2f million keys per second (%s allocated)\n",
					algo, i, result.Duration, result.MKeysPerSec, humanize.Bytes(result.MemoryUsage))
			}
		}
		fmt.Fprintln(stdout)
	}

	if err := saveResultsToMarkdown(o.out+".md", results, o.algorithms); err != nil {
		return err
	}
	if err := saveResultsToJSON(o.out+".json", results); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "wrote %s.md and %s.json\n", o.out, o.out)

	if o.metrics != "" {
		if err := m.writeFile(o.metrics); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "wrote %s\n", o.metrics)
	}
	return nil
}
