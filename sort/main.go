// Command sortbench times the in-place parallel quicksort against the
// sequential baseline and the parallel mergesort on random uint64 keys, and
// checks every result against an independent reference ordering.
package main

import (
	"flag"
	"runtime"
	"strings"

	"github.com/golang/glog"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/akashgangil/HPPC-Labs/kvdb"
	"github.com/akashgangil/HPPC-Labs/psort"
)

func main() {
	defer glog.Flush()

	cmd := newRootCmd()
	cmd.PersistentFlags().AddGoFlagSet(flag.CommandLine)
	if err := cmd.Execute(); err != nil {
		glog.Exitf("sortbench: %v", err)
	}
}

func newRootCmd() *cobra.Command {
	o := defaultOptions()
	cmd := &cobra.Command{
		Use:           "sortbench",
		Short:         "Benchmark and verify the parallel in-place quicksort",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			// glog reads its settings from the Go flag set.
			_ = flag.CommandLine.Parse(nil)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := o.validate(); err != nil {
				return err
			}
			return run(o, cmd.OutOrStdout())
		},
	}

	f := cmd.Flags()
	f.IntSliceVar(&o.sizes, "sizes", o.sizes, "number of keys per dataset")
	f.IntVar(&o.runs, "runs", o.runs, "timed runs per algorithm and size")
	f.Uint64Var(&o.seed, "seed", o.seed, "random seed for key generation")
	f.StringSliceVar(&o.algorithms, "algorithms", o.algorithms, "algorithms to run")
	f.StringVar(&o.reference, "reference", o.reference,
		"reference ordering: sequential, or a key-value store ("+joinKinds()+")")
	f.StringVar(&o.dir, "dir", o.dir, "working directory for key-value stores")
	f.StringVar(&o.out, "out", o.out, "report path prefix (.md and .json are appended)")
	f.StringVar(&o.metrics, "metrics", o.metrics, "write Prometheus text metrics to this file")
	addSorterFlags(f, &o.cfg)
	return cmd
}

func addSorterFlags(f *pflag.FlagSet, cfg *psort.Config) {
	f.IntVar(&cfg.SortGrain, "sort-grain", psort.DefaultSortGrain, "quicksort sequential cutoff")
	f.IntVar(&cfg.PartitionGrain, "partition-grain", psort.DefaultPartitionGrain, "partition sequential cutoff")
	f.IntVar(&cfg.ReverseGrain, "reverse-grain", psort.DefaultReverseGrain, "swaps per parallel reversal batch")
	f.IntVar(&cfg.MaxForks, "max-forks", runtime.GOMAXPROCS(0), "concurrently forked tasks")
}

func joinKinds() string {
	return strings.Join(lo.Map(kvdb.Kinds, func(k kvdb.Kind, _ int) string { return string(k) }), ", ")
}

func init() {
	// Log to stderr unless told otherwise.
	if f := flag.Lookup("logtostderr"); f != nil {
		_ = f.Value.Set("true")
	}
}
