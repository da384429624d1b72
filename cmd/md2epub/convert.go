package main

import (
	"context"
	"errors"
	"fmt"

	flag "github.com/spf13/pflag"

	md2epub "github.com/alnah/go-md2epub"
	"github.com/alnah/go-md2epub/internal/config"
	"github.com/alnah/go-md2epub/internal/hints"
)

// defaultConfigName is searched implicitly: config.yaml or config.yml in the
// working directory, then in the user config dir under go-md2epub/.
const defaultConfigName = "config"

// runConvertCmd parses flags, wires cancellation, and reports the outcome.
func runConvertCmd(args []string, env *Environment) int {
	flags, positional, err := parseConvertFlags(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		return ExitUsage
	}

	warnUnknownEnvVars(env.Stderr)

	ctx, stop := signalContext(context.Background())
	defer stop()

	if err := runConvert(ctx, positional, flags, env); err != nil {
		fmt.Fprintln(env.Stderr, appendHint(err))
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// runConvert drives a batch: resolve configuration, discover books, build
// the pool, convert, and report. Per-book metadata (frontmatter, flags) is
// resolved later in buildBookInput; only batch-level settings live here.
func runConvert(ctx context.Context, positionalArgs []string, flags *convertFlags, env *Environment) error {
	// Validate flag values early, before any files are touched
	if err := checkWorkerCount(flags.workers); err != nil {
		return err
	}
	if err := validateLevelFlags(flags.split); err != nil {
		return err
	}

	envCfg := loadEnvConfig()
	cfg, err := loadConfiguration(flags.common.config, envCfg)
	if err != nil {
		return err
	}

	inputs, err := resolveInputs(positionalArgs, cfg)
	if err != nil {
		return err
	}

	outputDir := resolveOutputDir(flags.output, envCfg, cfg)
	books, err := discoverBooks(inputs, outputDir)
	if err != nil {
		return err
	}

	// A bad asset path fails here, not deep inside a pool worker
	assetPath := resolveAssetPath(flags.assets.assetPath, envCfg, cfg)
	loader, err := resolveAssetLoader(assetPath, env)
	if err != nil {
		return err
	}

	params := &conversionParams{
		flags:  flags,
		envCfg: envCfg,
		cfg:    cfg,
		loader: loader,
		now:    env.Now,
	}

	opts := []md2epub.Option{md2epub.WithClock(env.Now)}
	if assetPath != "" {
		opts = append(opts, md2epub.WithAssetPath(assetPath))
	}
	pool := newConvertPool(flags.workers, opts...)
	defer func() { _ = pool.Close() }()

	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "Converting with %d worker(s)\n", pool.Size())
	}

	results := convertBatch(ctx, pool, books, params)

	failedCount := printResults(results, flags.common.quiet, flags.common.verbose, env)
	if failedCount > 0 {
		return fmt.Errorf("%d book(s) failed", failedCount)
	}

	return nil
}

// mergeFlags merges CLI flags into a book config. Flags top the precedence
// chain, so every explicitly set value overwrites the tiers below.
func mergeFlags(flags *convertFlags, cfg *config.Config) {
	if flags.book.title != "" {
		cfg.Book.Title = flags.book.title
	}
	if flags.book.creator != "" {
		cfg.Book.Creator = flags.book.creator
	}
	if flags.book.language != "" {
		cfg.Book.Language = flags.book.language
	}
	if flags.book.id != "" {
		cfg.Book.ID = flags.book.id
	}
	if flags.book.date != "" {
		cfg.Book.Date = flags.book.date
	}
	if flags.book.vertical {
		cfg.Book.Vertical = true
	}

	if flags.split.chapterLevel > 0 {
		cfg.Split.ChapterLevel = flags.split.chapterLevel
	}
	if flags.split.tocLevel > 0 {
		cfg.Split.TocLevel = flags.split.tocLevel
	}

	if flags.assets.style != "" {
		cfg.Style.Name = flags.assets.style
	}
	if flags.save {
		cfg.Output.Save = true
	}
}

// validateLevelFlags rejects out-of-range split levels before any work
// happens. Zero means "not set" and falls through to config or defaults.
func validateLevelFlags(f splitFlags) error {
	if l := f.chapterLevel; l != 0 && (l < md2epub.MinChapterLevel || l > md2epub.MaxChapterLevel) {
		return fmt.Errorf("%w: %d", md2epub.ErrInvalidChapterLevel, l)
	}
	if l := f.tocLevel; l != 0 && (l < md2epub.MinTocLevel || l > md2epub.MaxTocLevel) {
		return fmt.Errorf("%w: %d", md2epub.ErrInvalidTocLevel, l)
	}
	return nil
}

// loadConfiguration resolves the config-file tier. An explicit reference
// (flag, then MD2EPUB_CONFIG) must load; the implicit default name may be
// absent, in which case built-in defaults apply.
func loadConfiguration(flagConfig string, env *envConfig) (*config.Config, error) {
	nameOrPath := flagConfig
	if nameOrPath == "" {
		nameOrPath = env.ConfigPath
	}

	if nameOrPath != "" {
		cfg, err := config.LoadConfig(nameOrPath)
		if err != nil {
			return nil, fmt.Errorf("config %q: %w", nameOrPath, err)
		}
		return cfg, nil
	}

	cfg, err := config.LoadConfig(defaultConfigName)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return config.DefaultConfig(), nil
		}
		return nil, fmt.Errorf("config %q: %w", defaultConfigName, err)
	}
	return cfg, nil
}

// resolveInputs returns the input arguments, falling back to the configured
// default directory.
func resolveInputs(args []string, cfg *config.Config) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	if cfg.Input.DefaultDir != "" {
		return []string{cfg.Input.DefaultDir}, nil
	}
	return nil, ErrNoInput
}

// resolveOutputDir determines the output destination: flag, then
// environment, then config.
func resolveOutputDir(flagOutput string, env *envConfig, cfg *config.Config) string {
	if flagOutput != "" {
		return flagOutput
	}
	if env.OutputDir != "" {
		return env.OutputDir
	}
	return cfg.Output.DefaultDir
}

// resolveAssetPath determines the custom asset directory: flag, then
// environment, then config.
func resolveAssetPath(flagPath string, env *envConfig, cfg *config.Config) string {
	if flagPath != "" {
		return flagPath
	}
	if env.AssetPath != "" {
		return env.AssetPath
	}
	return cfg.Assets.BasePath
}

// resolveAssetLoader returns the loader for CLI-side style resolution. With
// a custom asset path the same overrides apply here and inside the pooled
// converters.
func resolveAssetLoader(assetPath string, env *Environment) (md2epub.AssetLoader, error) {
	if assetPath == "" {
		return env.AssetLoader, nil
	}
	return md2epub.NewAssetLoader(assetPath)
}

// appendHint attaches a recovery suggestion to errors users can act on.
func appendHint(err error) string {
	switch {
	case errors.Is(err, ErrNoInput), errors.Is(err, ErrNoMarkdownFiles):
		return err.Error() + hints.ForNoInput()
	case errors.Is(err, config.ErrConfigNotFound):
		return err.Error() + hints.ForConfigNotFound()
	case errors.Is(err, md2epub.ErrStyleNotFound):
		return err.Error() + hints.ForStyleNotFound([]string{md2epub.DefaultStyle, md2epub.VerticalStyle})
	case errors.Is(err, md2epub.ErrInvalidChapterLevel):
		return err.Error() + hints.ForChapterLevel(md2epub.MinChapterLevel, md2epub.MaxChapterLevel)
	case errors.Is(err, md2epub.ErrInvalidTocLevel):
		return err.Error() + hints.ForTocLevel(md2epub.MinTocLevel, md2epub.MaxTocLevel)
	case errors.Is(err, md2epub.ErrUnterminatedFence):
		return err.Error() + hints.ForUnterminatedFence()
	case errors.Is(err, md2epub.ErrWriteOutput):
		return err.Error() + hints.ForOutputNotWritable()
	default:
		return err.Error()
	}
}
