package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/babarot/rr/internal/batch"
	"github.com/babarot/rr/internal/config"
	"github.com/babarot/rr/internal/env"
	"github.com/babarot/rr/internal/trash"
	"github.com/babarot/rr/internal/utils/debug"
	"github.com/babarot/rr/internal/utils/log"
	"github.com/jessevdk/go-flags"
	"github.com/rs/xid"
)

// ErrUnexpectedArgs is returned when paths are given to a mode that takes none
var ErrUnexpectedArgs = errors.New("takes no arguments")

type Option struct {
	Restore bool   `short:"b" long:"restore" description:"Restore the most recently removed batch"`
	List    bool   `short:"l" long:"list" description:"List removed batches, most recent first"`
	Config  string `long:"config" description:"Path to config file" default:""`

	Meta MetaOption `group:"Meta Options"`
	Rm   RmOption   `group:"Compatible (rm) Options"`
}

type MetaOption struct {
	Version bool   `short:"V" long:"version" description:"Show version"`
	Debug   string `long:"debug" description:"View debug logs (default: \"full\")" optional-value:"full" optional:"yes" choice:"full" choice:"live"`
}

// RmOption provides compatibility with rm command options
type RmOption struct {
	Interactive bool `short:"i" description:"(dummy) prompt before every removal"`
	Recursive   bool `short:"r" long:"recursive" description:"(dummy) remove directories and their contents recursively"`
	Recursive2  bool `short:"R" description:"(dummy) same as -r"`
	Force       bool `short:"f" long:"force" description:"ignore nonexistent files"`
	Directory   bool `short:"d" long:"dir" description:"(dummy) remove empty directories"`
	Verbose     bool `short:"v" long:"verbose" description:"explain what is being done"`
}

type CLI struct {
	version Version
	option  Option
	config  config.Config
	manager *trash.Manager

	stdout io.Writer
	stderr io.Writer
}

var runID = sync.OnceValue(func() string {
	return xid.New().String()
})

func Run(v Version) error {
	var opt Option
	parser := flags.NewParser(&opt, flags.Default)
	parser.Name = v.AppName
	parser.Usage = "[-b | -l | files...]"
	args, err := parser.Parse()
	if err != nil {
		if flags.WroteHelp(err) {
			return nil
		}
		return err
	}

	cfg, err := config.Parse(opt.Config)
	if err != nil {
		return err
	}
	env.Init(cfg.Core.Root)

	cleanup, err := setupLogger(cfg.Logging)
	if err != nil {
		return err
	}
	defer cleanup()

	defer slog.Debug("main function finished")
	slog.Debug("main function started", "version", v.Version, "revision", v.Revision, "buildDate", v.BuildDate)

	store, err := batch.Open(cfg.Core.Root)
	if err != nil {
		return err
	}

	cli := CLI{
		version: v,
		option:  opt,
		config:  cfg,
		manager: trash.NewManager(store, trash.WithCrossDevice(cfg.Core.CrossDevice)),
		stdout:  os.Stdout,
		stderr:  os.Stderr,
	}

	if err := cli.Run(args); err != nil {
		slog.Error("exit", "error", fmt.Errorf("cli.run failed: %w", err))
		return err
	}
	return nil
}

// setupLogger installs the default slog logger. Records are discarded
// unless logging is enabled, in which case they go to the rotated log file
// in the batch store root.
func setupLogger(cfg config.LoggingConfig) (func(), error) {
	opts := []log.Option{
		log.UseOutput(io.Discard),
		log.UseReportCaller(true),
		log.UseReportTimestamp(true),
		log.UseTimeFormat(time.DateTime),
		log.AsDefault(),
	}

	cleanup := func() {}
	if cfg.Enabled {
		w, err := log.NewRotateWriter(env.RR_LOG_PATH, cfg.Rotation)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		cleanup = func() { w.Close() }
		opts = append(opts,
			log.UseOutput(w),
			log.UseLevel(log.ParseLevel(cfg.Level)),
			log.UseFormatter(log.ParseFormatter(cfg.Format)),
		)
	}

	logger := log.New(opts...)
	slog.SetDefault(logger.With("run_id", runID()))
	return cleanup, nil
}

func (c CLI) Run(args []string) error {
	switch {
	case c.option.Meta.Version:
		c.printVersion(c.stdout)
		return nil

	case c.option.Meta.Debug != "":
		live := c.option.Meta.Debug == "live"
		return debug.Logs(c.stdout, env.RR_LOG_PATH, c.config.Logging.Enabled, live)

	case c.option.Restore:
		if len(args) > 0 {
			return fmt.Errorf("--restore: %w: %s", ErrUnexpectedArgs, strings.Join(args, " "))
		}
		return c.Restore()

	case c.option.List:
		if len(args) > 0 {
			return fmt.Errorf("--list: %w: %s", ErrUnexpectedArgs, strings.Join(args, " "))
		}
		return c.List()

	default:
		return c.Remove(args)
	}
}

func (c CLI) verbose() bool {
	return c.option.Rm.Verbose || c.config.Core.Verbose
}
