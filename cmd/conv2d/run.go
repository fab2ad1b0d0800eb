package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"time"

	"github.com/ajroetker/go-conv2d/hwy"
	"github.com/ajroetker/go-conv2d/hwy/contrib/conv"
	"github.com/ajroetker/go-conv2d/hwy/contrib/matrix"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

// Random streams for the generated inputs, so the feature map and the kernel
// never share a sequence even when they have the same shape.
const (
	featureStream uint64 = 1
	kernelStream  uint64 = 2
)

// input describes how one matrix is obtained.
type input struct {
	name          string
	height, width int
	path          string
	stream        uint64
}

func (in input) generated() bool {
	return in.height > 0 || in.width > 0
}

func run(ctx context.Context, o *options, stdout, stderr io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := log.New(io.Discard, "conv2d: ", 0)
	if o.verbose {
		logger.SetOutput(stderr)
	}
	if o.height < 0 || o.width < 0 || o.kernelH < 0 || o.kernelW < 0 {
		return errors.New("dimensions must not be negative")
	}
	if o.threads < 0 {
		return fmt.Errorf("invalid thread count %d", o.threads)
	}

	seed := o.seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	logger.Printf("simd target %s (%d bytes), seed %d", hwy.CurrentName(), hwy.CurrentWidth(), seed)

	featureIn := input{name: "feature map", height: o.height, width: o.width, path: o.featurePath, stream: featureStream}
	kernelIn := input{name: "kernel", height: o.kernelH, width: o.kernelW, path: o.kernelPath, stream: kernelStream}
	if featureIn.path != "" && filepath.Clean(featureIn.path) == filepath.Clean(kernelIn.path) &&
		(featureIn.generated() || kernelIn.generated()) {
		return fmt.Errorf("feature map and kernel cannot share %s when either is generated", featureIn.path)
	}

	feature, kernel, err := acquireInputs(ctx, logger, seed, featureIn, kernelIn)
	if err != nil {
		return err
	}
	logger.Printf("feature map %dx%d, kernel %dx%d",
		feature.Height(), feature.Width(), kernel.Height(), kernel.Width())

	engine := conv.New(conv.Config{Parallel: o.parallel, Threads: o.threads})
	defer engine.Close()
	if p, ok := engine.(*conv.Parallel); ok {
		logger.Printf("parallel engine with %d workers", p.Threads())
	}

	start := time.Now()
	output, err := engine.Convolve(feature, kernel)
	elapsed := time.Since(start)
	if err != nil {
		return err
	}
	if o.benchmark {
		fmt.Fprintf(stdout, "%s Time: %f\n", lo.Ternary(o.parallel, "Parallel", "Serial"), elapsed.Seconds())
	}
	if o.verbose && output.PaddingBytes() > 0 {
		logger.Printf("output rows padded with %d trailing bytes", output.PaddingBytes())
	}

	if o.check {
		reference, err := conv.Convolve(feature, kernel)
		if err != nil {
			return err
		}
		deviation, err := matrix.MaxAbsDiff(output, reference)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Max Deviation: %g\n", deviation)
	}

	if o.outputPath != "" {
		if err := matrix.SaveFile(o.outputPath, output); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
		logger.Printf("wrote %s", o.outputPath)
	}
	return nil
}

// acquireInputs loads or generates the feature map and the kernel
// concurrently. A failure on one side cancels the other before it saves
// anything.
func acquireInputs(ctx context.Context, logger *log.Logger, seed uint64, feature, kernel input) (f, g *matrix.Matrix[float32], err error) {
	grp, gctx := errgroup.WithContext(ctx)
	grp.Go(func() (err error) {
		f, err = acquire(gctx, logger, seed, feature)
		return err
	})
	grp.Go(func() (err error) {
		g, err = acquire(gctx, logger, seed, kernel)
		return err
	})
	if err := grp.Wait(); err != nil {
		return nil, nil, err
	}
	return f, g, nil
}

func acquire(ctx context.Context, logger *log.Logger, seed uint64, in input) (*matrix.Matrix[float32], error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !in.generated() {
		if in.path == "" {
			return nil, fmt.Errorf("no %s: give its dimensions or a file to read", in.name)
		}
		m, err := matrix.LoadFile(in.path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", in.name, err)
		}
		logger.Printf("read %s from %s", in.name, in.path)
		return m, nil
	}

	m, err := matrix.Random(max(in.height, 1), max(in.width, 1), seed, in.stream)
	if err != nil {
		return nil, fmt.Errorf("generating %s: %w", in.name, err)
	}
	if in.path != "" {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := matrix.SaveFile(in.path, m); err != nil {
			return nil, fmt.Errorf("saving %s: %w", in.name, err)
		}
		logger.Printf("saved generated %s to %s", in.name, in.path)
	}
	return m, nil
}
