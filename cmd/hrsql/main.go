package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"hrsql/internal/app"
	"hrsql/internal/browser"
	"hrsql/internal/config"
	"hrsql/internal/errx"
	"hrsql/internal/hackerrank"
	"hrsql/internal/history"
	"hrsql/internal/logger"
	"hrsql/internal/output"
)

const kDefaultHistoryLimit = 10

func main() {
	os.Exit(realMain(os.Args))
}

func validateArgs(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("missing command")
	}

	switch args[1] {
	case "draw":
	case "list":
	case "history":
	case "config":
	case "help", "-h", "--help":
		break
	default:
		return fmt.Errorf("unknown command: %s", args[1])
	}

	return nil
}

func realMain(args []string) int {
	if err := validateArgs(args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		usage(os.Stderr)
		return 2
	}

	if args[1] == "help" || args[1] == "-h" || args[1] == "--help" {
		usage(os.Stdout)
		return 0
	}

	ctx := context.Background()
	pr := output.NewStdPrinter(os.Stdout, os.Stderr, false)

	if err := config.LoadEnv(); err != nil {
		_ = pr.PrintError(ctx, err)
		return 1
	}

	cfgPath, err := config.ResolvePath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: resolve config path: %v\n", err)
		return 1
	}
	cfgStore := config.NewFileStore(cfgPath)

	cmd := args[1]
	if cmd == "config" {
		return exitWith(ctx, pr, runConfig(ctx, cfgStore, pr, args[2:]))
	}

	cfg, err := config.LoadOrDefault(ctx, cfgStore)
	if err != nil {
		return exitWith(ctx, pr, err)
	}
	config.ApplyEnv(&cfg)
	if err := cfg.Validate(); err != nil {
		return exitWith(ctx, pr, err)
	}

	log, err := logger.New(cfg.LogLevel, os.Stderr)
	if err != nil {
		return exitWith(ctx, pr, err)
	}
	defer func() { _ = log.Sync() }()

	hr := hackerrank.NewHttpClient(hackerrank.HTTPClientOptions{
		BaseURL: os.Getenv(config.EnvBaseURL),
		Logger:  log.Named("hackerrank"),
	})

	a := app.New(app.App{
		Config:     cfg,
		HackerRank: hr,
		Browser:    browser.NewProcessOpener(),
		Output:     pr,
		Input:      os.Stdin,
		Logger:     log,
	})

	// Only commands that touch history open the database.
	if cfg.History && (cmd == "draw" || cmd == "history") {
		store, err := openHistory(cfg, log)
		if err != nil {
			return exitWith(ctx, pr, err)
		}
		defer func() { _ = store.Close() }()
		a.Sessions = store
	}

	var runErr error
	switch cmd {
	case "draw":
		runErr = runDraw(ctx, a, pr, args[2:])
	case "list":
		runErr = runList(ctx, a, pr, args[2:])
	case "history":
		runErr = runHistory(ctx, a, pr, args[2:])
	default:
		fmt.Fprintf(os.Stderr, "error: unknown command %q\n\n", cmd)
		usage(os.Stderr)
		return 2
	}

	return exitWith(ctx, pr, runErr)
}

func exitWith(ctx context.Context, pr *output.StdPrinter, err error) int {
	if err == nil {
		return 0
	}
	_ = pr.PrintError(ctx, err)
	return errx.ExitCode(err)
}

func openHistory(cfg config.Config, log *zap.Logger) (*history.SQLiteStore, error) {
	path := strings.TrimSpace(cfg.HistoryPath)
	if path == "" {
		var err error
		path, err = config.DefaultHistoryPath()
		if err != nil {
			return nil, fmt.Errorf("resolve history path: %w", err)
		}
	}
	return history.Open(path, log.Named("history"))
}

// selectionFlags are shared by draw and list.
type selectionFlags struct {
	preset     string
	status     string
	difficulty string
	topic      string
	skill      string
	offset     int
	limit      int
}

func (f *selectionFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.preset, "preset", "", "named selection: "+strings.Join(hackerrank.PresetNames(), ", "))
	fs.StringVar(&f.status, "status", "", "comma-separated statuses (solved, unsolved)")
	fs.StringVar(&f.difficulty, "difficulty", "", "comma-separated difficulties (easy, medium, hard)")
	fs.StringVar(&f.topic, "topic", "", "comma-separated topics (select, advanced-select, aggregation, join, advanced-join)")
	fs.StringVar(&f.skill, "skill", "", "comma-separated skill levels (basic, intermediate, advanced)")
	fs.IntVar(&f.offset, "offset", 0, "index of the first challenge to request")
	fs.IntVar(&f.limit, "limit", 0, "page size (default: config limit)")
}

func (f *selectionFlags) selection() (app.Selection, error) {
	sel := app.Selection{Preset: f.preset, Offset: f.offset, Limit: f.limit}
	if f.offset < 0 {
		return app.Selection{}, errx.Usage("--offset must be >= 0")
	}
	if f.limit < 0 {
		return app.Selection{}, errx.Usage("--limit must be >= 1")
	}

	if f.status == "" && f.difficulty == "" && f.topic == "" && f.skill == "" {
		if f.preset != "" {
			if _, err := hackerrank.PresetByName(f.preset); err != nil {
				return app.Selection{}, errx.Usage("%v", err)
			}
		}
		return sel, nil
	}
	if f.preset != "" {
		return app.Selection{}, errx.Usage("--preset cannot be combined with filter flags")
	}

	var filters hackerrank.FilterSet
	var err error
	if filters.Status, err = parseList(f.status, hackerrank.ParseStatus); err != nil {
		return app.Selection{}, err
	}
	if filters.Difficulty, err = parseList(f.difficulty, hackerrank.ParseDifficulty); err != nil {
		return app.Selection{}, err
	}
	if filters.Topics, err = parseList(f.topic, hackerrank.ParseTopicArea); err != nil {
		return app.Selection{}, err
	}
	if filters.Skills, err = parseList(f.skill, hackerrank.ParseSkillLevel); err != nil {
		return app.Selection{}, err
	}
	sel.Filters = &filters
	return sel, nil
}

func parseList[T any](raw string, parse func(string) (T, error)) ([]T, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var out []T
	for _, part := range strings.Split(raw, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		v, err := parse(part)
		if err != nil {
			return nil, errx.Usage("%v", err)
		}
		out = append(out, v)
	}
	return out, nil
}

func parseFlags(fs *flag.FlagSet, argv []string) error {
	fs.SetOutput(io.Discard)
	if err := fs.Parse(argv); err != nil {
		return errx.Usage("%s: %v", fs.Name(), err)
	}
	if fs.NArg() > 0 {
		return errx.Usage("%s: unexpected argument %q", fs.Name(), fs.Arg(0))
	}
	return nil
}

func runDraw(ctx context.Context, a *app.App, pr *output.StdPrinter, argv []string) error {
	fs := flag.NewFlagSet("draw", flag.ContinueOnError)

	var sf selectionFlags
	var count int
	var open bool
	var asJSON bool
	sf.register(fs)
	fs.IntVar(&count, "count", 0, "how many challenges to pick (default: config count)")
	fs.BoolVar(&open, "open", false, "open each challenge in the browser")
	fs.BoolVar(&asJSON, "json", false, "emit JSON output")

	if err := parseFlags(fs, argv); err != nil {
		return err
	}
	if count < 0 {
		return errx.Usage("draw: --count must be >= 1")
	}
	sel, err := sf.selection()
	if err != nil {
		return err
	}
	pr.JSON = asJSON

	return a.Draw(ctx, app.DrawOptions{
		Selection: sel,
		Count:     count,
		Open:      open,
	})
}

func runList(ctx context.Context, a *app.App, pr *output.StdPrinter, argv []string) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)

	var sf selectionFlags
	var asJSON bool
	sf.register(fs)
	fs.BoolVar(&asJSON, "json", false, "emit JSON output")

	if err := parseFlags(fs, argv); err != nil {
		return err
	}
	sel, err := sf.selection()
	if err != nil {
		return err
	}
	pr.JSON = asJSON

	return a.List(ctx, app.ListOptions{Selection: sel})
}

func runHistory(ctx context.Context, a *app.App, pr *output.StdPrinter, argv []string) error {
	fs := flag.NewFlagSet("history", flag.ContinueOnError)

	var limit int
	var asJSON bool
	fs.IntVar(&limit, "limit", kDefaultHistoryLimit, "number of sessions to show")
	fs.BoolVar(&asJSON, "json", false, "emit JSON output")

	if err := parseFlags(fs, argv); err != nil {
		return err
	}
	if limit < 1 {
		return errx.Usage("history: --limit must be >= 1")
	}
	pr.JSON = asJSON

	return a.History(ctx, limit)
}

func runConfig(ctx context.Context, store *config.FileStore, pr *output.StdPrinter, argv []string) error {
	if len(argv) < 1 {
		return errx.Usage("config: missing subcommand (init|show)")
	}
	switch argv[0] {
	case "init":
		return runConfigInit(ctx, store, pr, argv[1:])
	case "show":
		return runConfigShow(ctx, store, pr, argv[1:])
	default:
		return errx.Usage("config: unknown subcommand %q (expected init|show)", argv[0])
	}
}

func runConfigInit(ctx context.Context, store *config.FileStore, pr *output.StdPrinter, argv []string) error {
	fs := flag.NewFlagSet("config init", flag.ContinueOnError)

	def := config.Default()
	cfg := def
	var force bool
	fs.IntVar(&cfg.Count, "count", def.Count, "challenges per draw")
	fs.StringVar(&cfg.Preset, "preset", def.Preset, "default selection: "+strings.Join(hackerrank.PresetNames(), ", "))
	fs.IntVar(&cfg.Limit, "limit", def.Limit, "page size requested from HackerRank")
	fs.StringVar(&cfg.LogLevel, "log-level", def.LogLevel, "debug, info, warn or error")
	fs.BoolVar(&cfg.History, "history", def.History, "record draw sessions")
	fs.StringVar(&cfg.HistoryPath, "history-path", "", "session database (default: user cache dir)")
	fs.StringVar(&cfg.Browser, "browser", "", "command used by --open (default: "+browser.DefaultCommand()+")")
	fs.BoolVar(&force, "force", false, "overwrite existing config file")

	if err := parseFlags(fs, argv); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return errx.Usage("%v", err)
	}

	if _, err := os.Stat(store.Path); err == nil && !force {
		return fmt.Errorf("config already exists at %s (use --force to overwrite)", store.Path)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("stat config %s: %w", store.Path, err)
	}

	if err := store.Save(ctx, cfg); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(pr.Out, "wrote config: %s\n", store.Path)
	return nil
}

func runConfigShow(ctx context.Context, store *config.FileStore, pr *output.StdPrinter, argv []string) error {
	fs := flag.NewFlagSet("config show", flag.ContinueOnError)
	if err := parseFlags(fs, argv); err != nil {
		return err
	}

	cfg, err := store.Load(ctx)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("config not found at %s (run: hrsql config init)", store.Path)
		}
		return err
	}

	b, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	_, _ = fmt.Fprintf(pr.Out, "# %s\n", store.Path)
	_, _ = pr.Out.Write(b)
	return nil
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "hrsql - random HackerRank SQL practice in the terminal")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  hrsql <command> [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  draw     [--preset all|none|easy] [filters] [--count N] [--open]")
	fmt.Fprintln(w, "  list     [--preset all|none|easy] [filters]")
	fmt.Fprintln(w, "  history  [--limit N]")
	fmt.Fprintln(w, "  config   init|show")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Filters:")
	fmt.Fprintln(w, "  --status solved,unsolved")
	fmt.Fprintln(w, "  --difficulty easy,medium,hard")
	fmt.Fprintln(w, "  --topic select,advanced-select,aggregation,join,advanced-join")
	fmt.Fprintln(w, "  --skill basic,intermediate,advanced")
	fmt.Fprintln(w, "  --offset N --limit N")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Notes:")
	fmt.Fprintln(w, "  - draw waits for Enter and prints the elapsed time")
	fmt.Fprintln(w, "  - Use --json on subcommands for JSON output")
	fmt.Fprintln(w, "  - "+config.EnvBaseURL+", "+config.EnvConfigPath+" and "+config.EnvLogLevel+" override defaults")
}
