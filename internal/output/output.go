package output

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"hrsql/internal/hackerrank"
	"hrsql/internal/history"
)

// Printer renders user-facing output (human and/or JSON).
type Printer interface {
	PrintChallenges(ctx context.Context, cs []hackerrank.Challenge) error
	PrintElapsed(ctx context.Context, d time.Duration) error
	PrintSessions(ctx context.Context, ss []history.Session) error
	PrintError(ctx context.Context, err error) error
}

// StdPrinter is a simple stdout/stderr printer.
type StdPrinter struct {
	Out  io.Writer
	Err  io.Writer
	JSON bool
}

func NewStdPrinter(out io.Writer, err io.Writer, asJSON bool) *StdPrinter {
	return &StdPrinter{Out: out, Err: err, JSON: asJSON}
}

type challengeJSON struct {
	Slug string `json:"slug"`
	Link string `json:"link"`
}

// PrintChallenges prints one numbered line per challenge:
//
//	Challenge 1: https://www.hackerrank.com/challenges/<slug>/problem?isFullScreen=true
func (p *StdPrinter) PrintChallenges(ctx context.Context, cs []hackerrank.Challenge) error {
	if p.JSON {
		out := make([]challengeJSON, 0, len(cs))
		for _, c := range cs {
			out = append(out, challengeJSON{Slug: c.Slug, Link: c.Link()})
		}
		return json.NewEncoder(p.Out).Encode(out)
	}

	for i, c := range cs {
		if _, err := fmt.Fprintf(p.Out, "Challenge %d: %s\n", i+1, c.Link()); err != nil {
			return err
		}
	}
	return nil
}

func (p *StdPrinter) PrintElapsed(ctx context.Context, d time.Duration) error {
	if p.JSON {
		return json.NewEncoder(p.Out).Encode(struct {
			Elapsed   string `json:"elapsed"`
			ElapsedMs int64  `json:"elapsed_ms"`
		}{Elapsed: d.String(), ElapsedMs: d.Milliseconds()})
	}
	_, err := fmt.Fprintf(p.Out, "Total time: %s\n", d)
	return err
}

func (p *StdPrinter) PrintSessions(ctx context.Context, ss []history.Session) error {
	if p.JSON {
		return json.NewEncoder(p.Out).Encode(ss)
	}

	if len(ss) == 0 {
		_, err := fmt.Fprintln(p.Out, "No sessions recorded yet.")
		return err
	}
	for _, s := range ss {
		_, err := fmt.Fprintf(p.Out, "%s  %-5s  %8s  %s\n",
			s.StartedAt.Local().Format("2006-01-02 15:04"),
			s.Preset,
			s.Elapsed.Round(time.Second),
			strings.Join(s.Slugs, ", "),
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func (p *StdPrinter) PrintError(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	_, werr := fmt.Fprintf(p.Err, "error: %v\n", err)
	return werr
}
