package main

import (
	"os"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/blackline/pkg/config"
	"gitlab.com/tozd/go/errors"
)

var (
	// Flags
	host                    string
	port                    uint16
	lineLength              uint8
	targetVersion           string
	skipStringNormalization bool
	skipMagicTrailingComma  bool
	fast                    bool
	safe                    bool
	diff                    bool
	timeout                 time.Duration
	debug                   bool
)

// addRootFlags adds all formatting and connection flags to the root command
func addRootFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&host, "host", "H", config.DefaultHost, "address of the local blackd server")
	cmd.Flags().Uint16VarP(&port, "port", "p", config.DefaultPort, "port the local blackd server is listening on")
	cmd.Flags().Uint8VarP(&lineLength, "line-length", "l", config.DefaultLineLength, "how many characters per line to allow")
	cmd.Flags().StringVarP(&targetVersion, "target-version", "t", "", "comma-separated python versions the output should support")
	cmd.Flags().BoolVarP(&skipStringNormalization, "skip-string-normalization", "S", false, "don't normalize string quotes or prefixes")
	cmd.Flags().BoolVarP(&skipMagicTrailingComma, "skip-magic-trailing-comma", "C", false, "don't use trailing commas as a reason to split lines")
	cmd.Flags().BoolVar(&fast, "fast", false, "skip temporary sanity checks")
	cmd.Flags().BoolVar(&safe, "safe", false, "perform temporary sanity checks (default)")
	cmd.Flags().BoolVar(&diff, "diff", false, "don't alter files, output a diff of the formats instead")
	cmd.Flags().DurationVar(&timeout, "timeout", config.DefaultTimeout, "per-request transport timeout")
	cmd.Flags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")
}

// buildConfig translates the parsed flags into a validated Config
func buildConfig() (*config.Config, error) {
	cfg := config.New()
	cfg.Host = host
	cfg.Port = port
	cfg.Timeout = timeout
	cfg.LineLength = lineLength
	cfg.TargetVersions = config.ParseTargetVersions(targetVersion)
	cfg.SkipStringNormalization = skipStringNormalization
	cfg.SkipMagicTrailingComma = skipMagicTrailingComma
	cfg.Fast = fast
	cfg.Safe = safe
	cfg.Diff = diff

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating options: %w", err)
	}
	return cfg, nil
}

// expandSources expands glob patterns in the positional arguments so the
// tool behaves the same on shells that don't expand them. Literal paths
// and patterns that match nothing pass through unchanged; the batch loop
// reports the latter as skipped.
func expandSources(args []string) []string {
	var paths []string
	for _, arg := range args {
		if !strings.ContainsAny(arg, "*?[{") {
			paths = append(paths, arg)
			continue
		}
		matches, err := doublestar.FilepathGlob(arg)
		if err != nil || len(matches) == 0 {
			paths = append(paths, arg)
			continue
		}
		paths = append(paths, matches...)
	}
	return paths
}

// setupLogging configures zerolog based on flags
func setupLogging() {
	// User-facing output goes through pkg/status; keep the structured
	// log quiet unless debugging so the two don't interleave.
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	}
	log := zerolog.New(os.Stderr).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &log
}
