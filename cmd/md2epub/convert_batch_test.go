package main

// Notes:
// - convertBatch runs against a fake pool, so no real conversion happens.
//   Which worker picks up which book is scheduling, not contract; the
//   contract is one result per book, in input order.
// - printResults output is asserted through the buffered test environment,
//   never the process streams.

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	md2epub "github.com/alnah/go-md2epub"
)

// fakeConverter returns a canned result or error and counts calls.
type fakeConverter struct {
	mu       sync.Mutex
	calls    int
	err      error
	warnings []md2epub.Warning
}

func (f *fakeConverter) Convert(_ context.Context, input md2epub.Input) (*md2epub.Result, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}
	return &md2epub.Result{OutputPath: input.OutputPath, Warnings: f.warnings}, nil
}

func (f *fakeConverter) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// fakePool hands out the same converter to every worker. A nil converter
// simulates construction failure.
type fakePool struct {
	conv CLIConverter
	size int
}

func (p *fakePool) Acquire() CLIConverter  { return p.conv }
func (p *fakePool) Release(_ CLIConverter) {}
func (p *fakePool) Size() int              { return p.size }

// makeBooks writes n single-file books into a temp dir.
func makeBooks(t *testing.T, n int) []BookSource {
	t.Helper()

	dir := t.TempDir()
	books := make([]BookSource, n)
	for i := range books {
		path := filepath.Join(dir, fmt.Sprintf("book%02d.md", i))
		if err := os.WriteFile(path, []byte("# Chapter\n\nText.\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		books[i] = BookSource{
			Input:      path,
			Files:      []string{path},
			OutputPath: filepath.Join(dir, fmt.Sprintf("book%02d.epub", i)),
		}
	}
	return books
}

// ---------------------------------------------------------------------------
// TestConvertBatch - Concurrent batch conversion
// ---------------------------------------------------------------------------

func TestConvertBatch(t *testing.T) {
	t.Parallel()

	t.Run("empty batch returns nil", func(t *testing.T) {
		t.Parallel()

		pool := &fakePool{conv: &fakeConverter{}, size: 2}
		results := convertBatch(context.Background(), pool, nil, testParams(t, nil))
		if results != nil {
			t.Errorf("results = %v, want nil", results)
		}
	})

	t.Run("every book gets a result", func(t *testing.T) {
		t.Parallel()

		books := makeBooks(t, 5)
		conv := &fakeConverter{}
		pool := &fakePool{conv: conv, size: 2}

		results := convertBatch(context.Background(), pool, books, testParams(t, nil))

		if len(results) != len(books) {
			t.Fatalf("results count = %d, want %d", len(results), len(books))
		}
		for i, r := range results {
			if r.Err != nil {
				t.Errorf("results[%d].Err = %v, want nil", i, r.Err)
			}
			if r.InputPath != books[i].Input {
				t.Errorf("results[%d].InputPath = %q, want %q", i, r.InputPath, books[i].Input)
			}
			if r.OutputPath != books[i].OutputPath {
				t.Errorf("results[%d].OutputPath = %q, want %q", i, r.OutputPath, books[i].OutputPath)
			}
		}
		if conv.callCount() != len(books) {
			t.Errorf("converter calls = %d, want %d", conv.callCount(), len(books))
		}
	})

	t.Run("acquire failure marks all books failed", func(t *testing.T) {
		t.Parallel()

		books := makeBooks(t, 3)
		pool := &fakePool{conv: nil, size: 1}

		results := convertBatch(context.Background(), pool, books, testParams(t, nil))

		if len(results) != len(books) {
			t.Fatalf("results count = %d, want %d", len(results), len(books))
		}
		for i, r := range results {
			if !errors.Is(r.Err, ErrConverterInit) {
				t.Errorf("results[%d].Err = %v, want ErrConverterInit", i, r.Err)
			}
		}
	})

	t.Run("cancelled context fails remaining books", func(t *testing.T) {
		t.Parallel()

		books := makeBooks(t, 3)
		pool := &fakePool{conv: &fakeConverter{}, size: 1}

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		results := convertBatch(ctx, pool, books, testParams(t, nil))

		for i, r := range results {
			if !errors.Is(r.Err, context.Canceled) {
				t.Errorf("results[%d].Err = %v, want context.Canceled", i, r.Err)
			}
		}
	})

	t.Run("converter error lands in the result", func(t *testing.T) {
		t.Parallel()

		books := makeBooks(t, 2)
		wantErr := errors.New("render failed")
		pool := &fakePool{conv: &fakeConverter{err: wantErr}, size: 2}

		results := convertBatch(context.Background(), pool, books, testParams(t, nil))

		for i, r := range results {
			if !errors.Is(r.Err, wantErr) {
				t.Errorf("results[%d].Err = %v, want %v", i, r.Err, wantErr)
			}
		}
	})

	t.Run("warnings carried through", func(t *testing.T) {
		t.Parallel()

		books := makeBooks(t, 1)
		conv := &fakeConverter{warnings: []md2epub.Warning{
			{Kind: md2epub.WarnMetadata, Message: "language missing, defaulted to \"en\""},
		}}
		pool := &fakePool{conv: conv, size: 1}

		results := convertBatch(context.Background(), pool, books, testParams(t, nil))

		if len(results[0].Warnings) != 1 {
			t.Fatalf("warnings count = %d, want 1", len(results[0].Warnings))
		}
		if !strings.Contains(results[0].Warnings[0].Message, "language missing") {
			t.Errorf("warning = %q", results[0].Warnings[0].Message)
		}
	})
}

// ---------------------------------------------------------------------------
// TestPrintResults - Result reporting
// ---------------------------------------------------------------------------

func TestPrintResults(t *testing.T) {
	t.Parallel()

	t.Run("success lines go to stdout", func(t *testing.T) {
		t.Parallel()

		env, stdout, stderr := testEnv(t)
		results := []ConversionResult{
			{InputPath: "a.md", OutputPath: "a.epub"},
		}

		failed := printResults(results, false, false, env)

		if failed != 0 {
			t.Errorf("failed = %d, want 0", failed)
		}
		if !strings.Contains(stdout.String(), "Wrote a.epub") {
			t.Errorf("stdout = %q, want Created line", stdout.String())
		}
		if stderr.String() != "" {
			t.Errorf("stderr = %q, want empty", stderr.String())
		}
	})

	t.Run("verbose includes source and duration", func(t *testing.T) {
		t.Parallel()

		env, stdout, _ := testEnv(t)
		results := []ConversionResult{
			{InputPath: "a.md", OutputPath: "a.epub"},
		}

		printResults(results, false, true, env)

		if !strings.Contains(stdout.String(), "a.md -> a.epub") {
			t.Errorf("stdout = %q, want verbose arrow line", stdout.String())
		}
	})

	t.Run("failures go to stderr with hint", func(t *testing.T) {
		t.Parallel()

		env, stdout, stderr := testEnv(t)
		results := []ConversionResult{
			{InputPath: "a.md", Err: fmt.Errorf("%w: oops", md2epub.ErrStyleNotFound)},
		}

		failed := printResults(results, false, false, env)

		if failed != 1 {
			t.Errorf("failed = %d, want 1", failed)
		}
		if !strings.Contains(stderr.String(), "FAILED a.md") {
			t.Errorf("stderr = %q, want FAILED line", stderr.String())
		}
		if !strings.Contains(stderr.String(), "hint:") {
			t.Errorf("stderr = %q, want a style hint", stderr.String())
		}
		if strings.Contains(stdout.String(), "a.md") {
			t.Errorf("stdout = %q, failure should not appear on stdout", stdout.String())
		}
	})

	t.Run("quiet still reports failures", func(t *testing.T) {
		t.Parallel()

		env, stdout, stderr := testEnv(t)
		results := []ConversionResult{
			{InputPath: "a.md", OutputPath: "a.epub"},
			{InputPath: "b.md", Err: ErrReadMarkdown},
		}

		failed := printResults(results, true, false, env)

		if failed != 1 {
			t.Errorf("failed = %d, want 1", failed)
		}
		if stdout.String() != "" {
			t.Errorf("stdout = %q, want empty in quiet mode", stdout.String())
		}
		if !strings.Contains(stderr.String(), "FAILED b.md") {
			t.Errorf("stderr = %q, want FAILED line", stderr.String())
		}
	})

	t.Run("warnings reach stderr unless quiet", func(t *testing.T) {
		t.Parallel()

		results := []ConversionResult{
			{
				InputPath:  "a.md",
				OutputPath: "a.epub",
				Warnings: []md2epub.Warning{
					{Kind: md2epub.WarnMetadata, Message: "title missing, defaulted to \"a\""},
				},
			},
		}

		env, _, stderr := testEnv(t)
		printResults(results, false, false, env)
		if !strings.Contains(stderr.String(), "warning: metadata: title missing") {
			t.Errorf("stderr = %q, want warning line", stderr.String())
		}

		quietEnv, _, quietStderr := testEnv(t)
		printResults(results, true, false, quietEnv)
		if strings.Contains(quietStderr.String(), "warning:") {
			t.Errorf("stderr = %q, quiet should drop warnings", quietStderr.String())
		}
	})

	t.Run("return value counts every failure", func(t *testing.T) {
		t.Parallel()

		env, _, _ := testEnv(t)
		results := []ConversionResult{
			{InputPath: "a.md", OutputPath: "a.epub"},
			{InputPath: "b.md", Err: ErrReadMarkdown},
			{InputPath: "c.md", Err: ErrConverterInit},
		}

		if failed := printResults(results, false, false, env); failed != 2 {
			t.Errorf("failed = %d, want 2", failed)
		}
	})

	t.Run("summary printed for multiple results", func(t *testing.T) {
		t.Parallel()

		env, stdout, _ := testEnv(t)
		results := []ConversionResult{
			{InputPath: "a.md", OutputPath: "a.epub"},
			{InputPath: "b.md", Err: ErrReadMarkdown},
		}

		printResults(results, false, false, env)

		if !strings.Contains(stdout.String(), "1 converted, 1 failed") {
			t.Errorf("stdout = %q, want summary line", stdout.String())
		}
	})

	t.Run("no summary for a single result", func(t *testing.T) {
		t.Parallel()

		env, stdout, _ := testEnv(t)
		results := []ConversionResult{
			{InputPath: "a.md", OutputPath: "a.epub"},
		}

		printResults(results, false, false, env)

		if strings.Contains(stdout.String(), "converted") {
			t.Errorf("stdout = %q, single result should not print a summary", stdout.String())
		}
	})
}
