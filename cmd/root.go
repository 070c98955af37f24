package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/tayloree/fabric-chat/internal/catalog"
	"github.com/tayloree/fabric-chat/internal/config"
	"github.com/tayloree/fabric-chat/internal/display"
	"github.com/tayloree/fabric-chat/internal/filter"
)

var (
	flagDataset      string
	flagConfig       string
	flagJSON         bool
	flagLogLevel     string
	flagManufacturer string
	flagColorway     string
	flagType         string
	flagQuery        string
	flagSort         string
	flagLimit        int
)

var rootCmd = &cobra.Command{
	Use:   "fabricbot",
	Short: "Ask questions about a fabric catalog",
	Long: "Terminal fabric assistant. Loads a fabric dataset (a local JSON file, an http(s) URL,\n" +
		"or s3://bucket/key) and answers questions about pattern names, manufacturers and colorways.\n\n" +
		"Agent-friendly mode: minor syntax issues are auto-corrected when intent is clear " +
		"(for example: -dataset x.json, colour=orange, --manufactuer Acme).",
	Example: `  fabricbot ask "What is the Tweed Multi fabric?"
  fabricbot chat
  fabricbot list --colorway orange --sort name
  fabricbot manufacturers --json
  fabricbot --dataset https://example.com/fabrics.json ask tweed`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return printQuickStart(cmd.OutOrStdout(), flagJSON)
	},
}

func init() {
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flagDataset, "dataset", "d", "", "Dataset source: file path, http(s) URL or s3://bucket/key (default fabrics.json)")
	pf.StringVar(&flagConfig, "config", "", "Path to config file (default fabricbot.yaml if present)")
	pf.BoolVar(&flagJSON, "json", false, "Output as JSON")
	pf.StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error (default from config, else warn)")
}

// Execute runs the root command.
func Execute() {
	os.Exit(runCLI(os.Args[1:], os.Stdout, os.Stderr))
}

func runCLI(args []string, stdout, stderr io.Writer) int {
	resetCLIState()

	normalizedArgs, notes := normalizeCLIArgs(args)
	for _, note := range notes {
		display.PrintWarning(stderr, "note: "+note)
	}

	if len(normalizedArgs) == 0 {
		return exitWith(stderr, printQuickStart(stdout, !isTTY(stdout)), false)
	}

	if shouldAutoJSON(normalizedArgs, isTTY(stdout)) {
		normalizedArgs = append(normalizedArgs, "--json")
	}

	setCommandIO(rootCmd, stdout, stderr)
	rootCmd.SetArgs(normalizedArgs)
	return exitWith(stderr, rootCmd.Execute(), wantsJSON(normalizedArgs))
}

// exitWith reports err on stderr and returns the matching exit code.
func exitWith(stderr io.Writer, err error, asJSON bool) int {
	if err == nil {
		return ExitSuccess
	}
	cliErr := classifyCLIError(err)
	if werr := writeCLIError(stderr, cliErr, asJSON); werr != nil {
		_ = writeCLIError(stderr, classifyCLIError(werr), false)
		return ExitInternal
	}
	return cliErr.ExitCode
}

func setCommandIO(cmd *cobra.Command, stdout, stderr io.Writer) {
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	for _, child := range cmd.Commands() {
		setCommandIO(child, stdout, stderr)
	}
}

func resetCLIState() {
	flagDataset = ""
	flagConfig = ""
	flagJSON = false
	flagLogLevel = ""
	flagManufacturer = ""
	flagColorway = ""
	flagType = ""
	flagQuery = ""
	flagSort = ""
	flagLimit = 0
	flagThink = false
	flagPlain = false
	resetHelpFlags(rootCmd)
}

// resetHelpFlags clears --help, which cobra keeps set between Execute calls
// in the same process.
func resetHelpFlags(cmd *cobra.Command) {
	if f := cmd.Flags().Lookup("help"); f != nil {
		_ = f.Value.Set("false")
		f.Changed = false
	}
	for _, child := range cmd.Commands() {
		resetHelpFlags(child)
	}
}

func registerFabricFilterFlags(f *pflag.FlagSet) {
	f.StringVarP(&flagManufacturer, "manufacturer", "m", "", "Filter by manufacturer (e.g., Acme)")
	f.StringVarP(&flagColorway, "colorway", "c", "", "Filter by colorway; grey/gray and similar spellings match")
	f.StringVarP(&flagType, "type", "t", "", "Filter by fabric type (e.g., Upholstery)")
	f.StringVarP(&flagQuery, "query", "q", "", "Search pattern, manufacturer, colorway and type")
	f.StringVar(&flagSort, "sort", "", "Sort by name or manufacturer (default catalog order)")
	f.IntVarP(&flagLimit, "limit", "n", 0, "Limit number of results (0 = all)")
}

func validateSortMode() error {
	raw := strings.TrimSpace(flagSort)
	if raw == "" || strings.EqualFold(raw, "catalog") {
		return nil
	}
	if filter.NormalizeSortMode(raw) != "" {
		return nil
	}
	return invalidArgsError(
		"invalid value for --sort (use name or manufacturer)",
		"fabricbot list --sort name",
		"fabricbot list --sort manufacturer",
	)
}

// appEnv is the per-invocation configuration and logger.
type appEnv struct {
	cfg    *config.Config
	logger *slog.Logger
	close  func() error
}

// loadAppEnv reads the config and builds the logger. Logs go to logSink
// unless log.file is set.
func loadAppEnv(logSink io.Writer) (*appEnv, error) {
	cfg, err := config.Load(flagConfig, flagDataset)
	if err != nil {
		return nil, invalidArgsError(
			err.Error(),
			"fabricbot --config fabricbot.yaml ask tweed",
			"Remove or fix fabricbot.yaml to use the defaults.",
		)
	}
	level := cfg.Log.Level
	if flagLogLevel != "" {
		level = flagLogLevel
	}
	logger, closeLog, err := setupLogger(level, cfg.Log.File, logSink)
	if err != nil {
		return nil, invalidArgsError(err.Error(), "fabricbot --log-level debug ask tweed")
	}

	logger.Debug("config loaded", "dataset", cfg.Dataset.Source, "timeout", cfg.Dataset.Timeout)
	return &appEnv{cfg: cfg, logger: logger, close: closeLog}, nil
}

func setupLogger(levelStr, file string, sink io.Writer) (*slog.Logger, func() error, error) {
	var level slog.Level
	switch strings.ToLower(strings.TrimSpace(levelStr)) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn", "":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return nil, nil, fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	closeLog := func() error { return nil }
	if file != "" {
		f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		sink = f
		closeLog = f.Close
	}

	logger := slog.New(slog.NewTextHandler(sink, &slog.HandlerOptions{Level: level}))
	return logger, closeLog, nil
}

func newLoader(cfg *config.Config) *catalog.Loader {
	return catalog.NewLoader(catalog.Options{
		Timeout: cfg.Dataset.Timeout,
		S3: catalog.S3Options{
			Endpoint:  cfg.S3.Endpoint,
			Region:    cfg.S3.Region,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
			UseSSL:    cfg.S3.UseSSL,
		},
	})
}

// loadCatalog loads the configured dataset for the one-shot commands. A
// failure is a *catalog.LoadError, reported with exit code 3.
func loadCatalog(cmd *cobra.Command, env *appEnv) (*catalog.Catalog, error) {
	cat, err := newLoader(env.cfg).Load(cmd.Context(), env.cfg.Dataset.Source)
	if err != nil {
		env.logger.Error("dataset load failed", "source", env.cfg.Dataset.Source, "err", err)
		return nil, err
	}
	env.logger.Info("dataset loaded", "source", env.cfg.Dataset.Source, "fabrics", cat.Len())
	return cat, nil
}
