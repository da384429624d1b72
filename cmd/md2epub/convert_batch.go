package main

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	md2epub "github.com/alnah/go-md2epub"
)

var (
	// ErrNoInput means discovery turned up nothing to convert.
	ErrNoInput = errors.New("no input specified")

	// ErrConverterInit means a batch worker could not build its converter.
	ErrConverterInit = errors.New("converter initialization failed")
)

// CLIConverter is the one library method the CLI drives. Tests substitute
// fakes behind it.
type CLIConverter interface {
	Convert(ctx context.Context, input md2epub.Input) (*md2epub.Result, error)
}

var _ CLIConverter = (*md2epub.Converter)(nil)

// Pool hands converters to batch workers. A nil converter from Acquire means
// construction failed; the worker then fails its share of the batch instead
// of converting it.
type Pool interface {
	Acquire() CLIConverter
	Release(CLIConverter)
	Size() int
}

// ConversionResult is the outcome of one book.
type ConversionResult struct {
	InputPath  string
	OutputPath string
	Err        error
	Duration   time.Duration
	Warnings   []md2epub.Warning
}

// convertBatch fans the books out over the pool's workers. Each book gets
// exactly one result, in input order, no matter which worker handled it or
// whether the run was interrupted partway.
func convertBatch(ctx context.Context, pool Pool, books []BookSource, params *conversionParams) []ConversionResult {
	if len(books) == 0 {
		return nil
	}

	results := make([]ConversionResult, len(books))
	workers := min(pool.Size(), len(books))

	var next atomic.Int64
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()

			conv := pool.Acquire()
			if conv != nil {
				defer pool.Release(conv)
			}

			for {
				i := int(next.Add(1)) - 1
				if i >= len(books) {
					return
				}
				switch {
				case conv == nil:
					results[i] = ConversionResult{InputPath: books[i].Input, Err: ErrConverterInit}
				case ctx.Err() != nil:
					results[i] = ConversionResult{InputPath: books[i].Input, Err: ctx.Err()}
				default:
					results[i] = convertOne(ctx, conv, books[i], params)
				}
			}
		}()
	}
	wg.Wait()

	return results
}

// convertOne runs a single book through the converter, timing the attempt.
func convertOne(ctx context.Context, conv CLIConverter, book BookSource, params *conversionParams) (res ConversionResult) {
	start := time.Now()
	defer func() { res.Duration = time.Since(start) }()

	res = ConversionResult{InputPath: book.Input, OutputPath: book.OutputPath}

	input, err := buildBookInput(book, params)
	if err != nil {
		res.Err = err
		return res
	}

	out, err := conv.Convert(ctx, *input)
	if err != nil {
		res.Err = err
		return res
	}

	res.OutputPath = out.OutputPath
	res.Warnings = out.Warnings
	return res
}

// printResults reports the batch outcome on the environment's streams and
// returns the failure count. Failures always reach stderr; quiet silences
// everything else, warnings included.
func printResults(results []ConversionResult, quiet, verbose bool, env *Environment) int {
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(env.Stderr, "FAILED %s: %s\n", r.InputPath, appendHint(r.Err))
			continue
		}
		if quiet {
			continue
		}

		for _, w := range r.Warnings {
			fmt.Fprintf(env.Stderr, "warning: %s\n", w)
		}
		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s in %v\n", r.InputPath, r.OutputPath, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "Wrote %s\n", r.OutputPath)
		}
	}

	if quiet || len(results) < 2 {
		return failed
	}
	fmt.Fprintf(env.Stdout, "\n%d converted, %d failed\n", len(results)-failed, failed)
	return failed
}
