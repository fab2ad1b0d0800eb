package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// options holds the parsed command line.
type options struct {
	height, width    int
	kernelH, kernelW int

	featurePath string
	kernelPath  string
	outputPath  string

	parallel  bool
	threads   int
	benchmark bool
	check     bool
	seed      uint64
	verbose   bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "conv2d",
		Short: "Compute the same-size 2D convolution of a feature map with a kernel",
		Long: `conv2d correlates a feature map with a kernel (the kernel is not flipped)
and produces an output of the feature map's size, treating cells outside the
feature map as zero. Even-sized kernel axes extend one cell further up/left
than down/right.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
	bindFlags(cmd.Flags(), opts)
	cmd.Flags().SortFlags = false
	return cmd
}

func bindFlags(fs *pflag.FlagSet, o *options) {
	fs.IntVarP(&o.height, "height", "H", 0, "generate a feature map with this many rows")
	fs.IntVarP(&o.width, "width", "W", 0, "generate a feature map with this many columns")
	fs.IntVar(&o.kernelH, "kH", 0, "generate a kernel with this many rows")
	fs.IntVar(&o.kernelW, "kW", 0, "generate a kernel with this many columns")
	fs.StringVarP(&o.featurePath, "feature", "f", "", "feature map file (read, or written when generating)")
	fs.StringVarP(&o.kernelPath, "kernel", "g", "", "kernel file (read, or written when generating)")
	fs.StringVarP(&o.outputPath, "output", "o", "", "write the result to this file")
	fs.BoolVarP(&o.parallel, "parallel", "p", false, "use the parallel engine")
	fs.IntVarP(&o.threads, "threads", "t", 0, "parallel engine workers (0 = GOMAXPROCS)")
	fs.BoolVarP(&o.benchmark, "benchmark", "b", false, "print the time spent in the convolution")
	fs.BoolVar(&o.check, "check", false, "also run the serial engine and print the largest deviation")
	fs.Uint64Var(&o.seed, "seed", 0, "random seed for generated inputs (0 = time based)")
	fs.BoolVarP(&o.verbose, "verbose", "v", false, "log configuration details to stderr")
}
