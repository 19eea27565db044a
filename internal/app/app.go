package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"hrsql/internal/browser"
	"hrsql/internal/config"
	"hrsql/internal/hackerrank"
	"hrsql/internal/history"
	"hrsql/internal/output"
	"hrsql/internal/sample"
)

const kCustomSelection = "custom"

// ErrHistoryDisabled is returned by History when no store is configured.
var ErrHistoryDisabled = errors.New("session history is disabled (set history: true in config)")

// App wires the challenge catalog to the terminal.
type App struct {
	Config     config.Config
	HackerRank hackerrank.Client
	Sessions   history.Store // nil disables recording
	Browser    browser.Opener
	Output     output.Printer

	// Input is read for the line that ends a timed session.
	Input  io.Reader
	Rand   *rand.Rand
	Now    func() time.Time
	Logger *zap.Logger
}

// Selection says which page of the catalog to fetch.
//
// With Filters nil, Preset (or the configured default) picks the filters.
// Offset and Limit override paging either way; Limit 0 means the configured
// limit.
type Selection struct {
	Preset  string
	Filters *hackerrank.FilterSet
	Offset  int
	Limit   int
}

type DrawOptions struct {
	Selection
	Count int  // 0 means config.Count
	Open  bool // open each link with the configured browser
}

type ListOptions struct {
	Selection
}

func New(deps App) *App {
	a := deps
	if a.Now == nil {
		a.Now = time.Now
	}
	if a.Logger == nil {
		a.Logger = zap.NewNop()
	}
	return &a
}

// Draw picks random challenges, prints their links, then times how long the
// user takes until they press Enter.
func (a *App) Draw(ctx context.Context, opts DrawOptions) error {
	challenges, label, err := a.fetch(ctx, opts.Selection)
	if err != nil {
		return err
	}
	if len(challenges) == 0 {
		return fmt.Errorf("no challenges matched selection %q", label)
	}

	count := opts.Count
	if count <= 0 {
		count = a.Config.Count
	}
	picked := sample.Choose(a.Rand, challenges, count)

	if err := a.Output.PrintChallenges(ctx, picked); err != nil {
		return err
	}

	if opts.Open {
		for _, c := range picked {
			if err := a.Browser.Open(ctx, a.Config.Browser, c.Link()); err != nil {
				return fmt.Errorf("open %s: %w", c.Slug, err)
			}
		}
	}

	start := a.Now()
	if err := waitForLine(a.Input); err != nil {
		return fmt.Errorf("wait for input: %w", err)
	}
	elapsed := a.Now().Sub(start)

	if err := a.Output.PrintElapsed(ctx, elapsed); err != nil {
		return err
	}

	if a.Sessions == nil || !a.Config.History {
		return nil
	}

	slugs := make([]string, 0, len(picked))
	for _, c := range picked {
		slugs = append(slugs, c.Slug)
	}
	sess := history.Session{
		ID:        uuid.New(),
		Preset:    label,
		StartedAt: start,
		Elapsed:   elapsed,
		Slugs:     slugs,
	}
	if err := a.Sessions.Record(ctx, sess); err != nil {
		return fmt.Errorf("record session: %w", err)
	}
	return nil
}

// List prints every challenge on the selected page.
func (a *App) List(ctx context.Context, opts ListOptions) error {
	challenges, _, err := a.fetch(ctx, opts.Selection)
	if err != nil {
		return err
	}
	return a.Output.PrintChallenges(ctx, challenges)
}

// History prints the n most recent sessions.
func (a *App) History(ctx context.Context, n int) error {
	if a.Sessions == nil || !a.Config.History {
		return ErrHistoryDisabled
	}
	sessions, err := a.Sessions.Recent(ctx, n)
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}
	return a.Output.PrintSessions(ctx, sessions)
}

// fetch resolves sel and retrieves the page. Presets with default paging go
// through the client's preset helpers. The returned label names the selection
// for history.
func (a *App) fetch(ctx context.Context, sel Selection) ([]hackerrank.Challenge, string, error) {
	settings, label, err := a.resolve(sel)
	if err != nil {
		return nil, "", err
	}

	a.Logger.Debug("resolved selection",
		zap.String("selection", label),
		zap.Int("offset", settings.Offset),
		zap.Int("limit", settings.Limit),
	)

	var challenges []hackerrank.Challenge
	switch {
	case label == kCustomSelection || !hasDefaultPaging(settings):
		challenges, err = a.HackerRank.Fetch(ctx, settings)
	case label == hackerrank.PresetAll:
		challenges, err = a.HackerRank.FetchAll(ctx)
	case label == hackerrank.PresetNoFilters:
		challenges, err = a.HackerRank.FetchNoFilters(ctx)
	case label == hackerrank.PresetEasy:
		challenges, err = a.HackerRank.FetchEasy(ctx)
	default:
		challenges, err = a.HackerRank.Fetch(ctx, settings)
	}
	if err != nil {
		return nil, "", fmt.Errorf("fetch challenges: %w", err)
	}
	return challenges, label, nil
}

func (a *App) resolve(sel Selection) (hackerrank.QuerySettings, string, error) {
	limit := sel.Limit
	if limit == 0 {
		limit = a.Config.Limit
	}

	if sel.Filters != nil {
		s, err := hackerrank.NewQuerySettings(sel.Offset, limit, true, *sel.Filters)
		return s, kCustomSelection, err
	}

	name := sel.Preset
	if name == "" {
		name = a.Config.Preset
	}
	preset, err := hackerrank.PresetByName(name)
	if err != nil {
		return hackerrank.QuerySettings{}, "", err
	}
	s, err := hackerrank.NewQuerySettings(sel.Offset, limit, preset.TrackLogin, preset.Filters)
	if err != nil {
		return hackerrank.QuerySettings{}, "", err
	}
	// PresetByName accepted it, so this is one of the canonical names.
	return s, strings.ToLower(strings.TrimSpace(name)), nil
}

func hasDefaultPaging(s hackerrank.QuerySettings) bool {
	d := hackerrank.NoFilters()
	return s.Offset == d.Offset && s.Limit == d.Limit
}

// waitForLine blocks until a newline or EOF on r.
func waitForLine(r io.Reader) error {
	if r == nil {
		return nil
	}
	_, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
