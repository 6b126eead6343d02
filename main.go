package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/logrusorgru/aurora"
	"github.com/lukehollenback/clientapi/constants"
	"github.com/lukehollenback/clientapi/exchange/rest"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	LogPrefix = "≪clientapi≫"

	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

//
// config holds everything the command line can configure.
//
type config struct {
	address string
	keyID   string
	secret  string
	timeout time.Duration
	csvPath string
	verbose bool
	noColor bool
}

func main() {
	os.Exit(realMain(os.Args[1:], os.Getenv, os.Stdout, os.Stderr))
}

func realMain(args []string, getenv func(string) string, stdout io.Writer, stderr io.Writer) int {
	//
	// Register and parse configuration flags.
	//
	cfg, cmdArgs, err := parseConfig(args, getenv, stderr)
	if err == flag.ErrHelp {
		return exitOK
	}
	if err != nil {
		fmt.Fprintf(stderr, constants.LogPrefixFmt+"%s\n", LogPrefix, err)

		return exitUsage
	}

	au := aurora.NewAurora(!cfg.noColor)

	//
	// Register a kill signal handler with the operating system so that an in-flight request is
	// abandoned gracefully.
	//
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger := newLogger(cfg.verbose, stderr)
	defer func() { _ = logger.Sync() }()

	registry := prometheus.NewRegistry()

	opts := []rest.Option{
		rest.WithTimeout(cfg.timeout),
		rest.WithLogger(logger),
		rest.WithRegisterer(registry),
	}
	if cfg.keyID != "" && cfg.secret != "" {
		opts = append(opts, rest.WithCredentials(cfg.keyID, cfg.secret))
	}

	a := &app{
		client:  rest.New(cfg.address, opts...),
		out:     stdout,
		au:      au,
		csvPath: cfg.csvPath,
	}

	err = a.run(ctx, cmdArgs)
	if closeErr := a.close(); err == nil {
		err = closeErr
	}

	logRequestMetrics(logger, registry)

	var usage *usageError
	switch {
	case errors.As(err, &usage):
		fmt.Fprintf(stderr, constants.LogPrefixFmt+"%s\n", LogPrefix, err)

		return exitUsage
	case err != nil:
		fmt.Fprintf(stderr, constants.LogPrefixFmt+"%s\n", LogPrefix, au.Red(err))

		return exitError
	}

	return exitOK
}

//
// parseConfig parses the flags in args. Anything not given on the command line falls back to the
// environment. The secret is never given a flag default so that it cannot show up in the usage
// text.
//
func parseConfig(args []string, getenv func(string) string, stderr io.Writer) (*config, []string, error) {
	cfg := &config{}

	fs := flag.NewFlagSet("clientapi", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: clientapi [flags] <command> [args]\n\nCommands:\n%s\nFlags:\n", commandUsage)
		fs.PrintDefaults()
	}

	fs.StringVar(&cfg.address, "address", "", fmt.Sprintf("Base address of the API. (Default: $%s)", constants.EnvAddress))
	fs.StringVar(&cfg.keyID, "key", "", fmt.Sprintf("Key ID for private commands. (Default: $%s)", constants.EnvKeyID))
	fs.StringVar(&cfg.secret, "secret", "", fmt.Sprintf("Secret for private commands. (Default: $%s)", constants.EnvSecret))
	fs.DurationVar(&cfg.timeout, "timeout", rest.DefaultTimeout, "Timeout of each request.")
	fs.StringVar(&cfg.csvPath, "csv", "", "Write trades and candles to this CSV file instead of the terminal.")
	fs.BoolVar(&cfg.verbose, "v", false, "Log every request.")
	fs.BoolVar(&cfg.noColor, "no-color", false, "Disable colored output.")

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	if cfg.address == "" {
		cfg.address = getenv(constants.EnvAddress)
	}
	if cfg.keyID == "" {
		cfg.keyID = getenv(constants.EnvKeyID)
	}
	if cfg.secret == "" {
		cfg.secret = getenv(constants.EnvSecret)
	}

	//
	// Validate that necessary configurations have been provided.
	//
	if cfg.address == "" {
		return nil, nil, errors.Errorf("no API address given (use -address or $%s)", constants.EnvAddress)
	}

	if fs.NArg() == 0 {
		return nil, nil, errors.New("no command given (run with -h for the list)")
	}

	if cfg.timeout <= 0 {
		return nil, nil, errors.Errorf("invalid timeout %s", cfg.timeout)
	}

	return cfg, fs.Args(), nil
}

// newLogger builds the console logger. Only warnings get through unless verbose is set.
func newLogger(verbose bool, w io.Writer) *zap.Logger {
	level := zapcore.WarnLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	encoderCfg := zap.NewDevelopmentEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderCfg),
		zapcore.AddSync(w),
		level,
	)

	return zap.New(core).Named("clientapi")
}

// logRequestMetrics writes the per-command request counters at debug level.
func logRequestMetrics(logger *zap.Logger, registry *prometheus.Registry) {
	if !logger.Core().Enabled(zapcore.DebugLevel) {
		return
	}

	families, err := registry.Gather()
	if err != nil {
		logger.Warn("failed to gather request metrics", zap.Error(err))

		return
	}

	for _, family := range families {
		if family.GetName() != "clientapi_requests_total" {
			continue
		}

		for _, m := range family.GetMetric() {
			fields := make([]zap.Field, 0, len(m.GetLabel())+1)
			for _, label := range m.GetLabel() {
				fields = append(fields, zap.String(label.GetName(), label.GetValue()))
			}
			fields = append(fields, zap.Float64("count", m.GetCounter().GetValue()))

			logger.Debug("requests", fields...)
		}
	}
}
