package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"trademind/internal/domain"
	"trademind/internal/journal"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type exportOptions struct {
	format      string
	from        string
	to          string
	instrument  string
	direction   string
	performance string
	query       string
}

func (o exportOptions) get(key string) string {
	switch key {
	case "from":
		return o.from
	case "to":
		return o.to
	case "instrument":
		return strings.ToUpper(o.instrument)
	case "direction":
		return o.direction
	case "performance":
		return o.performance
	case "q":
		return o.query
	}
	return ""
}

func newExportCmd() *cobra.Command {
	var opts exportOptions

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Print filtered trades as a table, YAML or CSV",
		Long: `Export prints journal trades matching the filters, newest first.

Example:
  dashboard export --from 2024-03-01 --instrument ES --performance winners --format csv`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := bootstrap(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer rt.Close()

			return runExport(cmd.Context(), rt.svc.Journal, rt.svc.Location, opts, cmd.OutOrStdout())
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.format, "format", "o", "table", "output format: table, yaml or csv")
	f.StringVar(&opts.from, "from", "", "first day to include (YYYY-MM-DD)")
	f.StringVar(&opts.to, "to", "", "last day to include (YYYY-MM-DD)")
	f.StringVarP(&opts.instrument, "instrument", "i", "", "instrument, e.g. ES (default all)")
	f.StringVarP(&opts.direction, "direction", "d", "", "LONG or SHORT (default all)")
	f.StringVarP(&opts.performance, "performance", "p", "", "WINNERS or LOSERS (default all)")
	f.StringVarP(&opts.query, "query", "q", "", "text to find in notes or AI feedback")
	return cmd
}

func runExport(ctx context.Context, store journal.Store, loc *time.Location, opts exportOptions, w io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	filter, err := journal.ParseFilter(opts.get, loc)
	if err != nil {
		return err
	}

	state := journal.NewState(store, loc)
	if err := state.Load(ctx); err != nil {
		return fmt.Errorf("load trades: %w", err)
	}
	state.SetFilter(filter)
	trades := state.Visible()

	switch strings.ToLower(strings.TrimSpace(opts.format)) {
	case "", "table":
		return writeTable(w, trades, loc)
	case "yaml", "yml":
		return writeYAML(w, trades, loc)
	case "csv":
		return writeCSV(w, trades, loc)
	default:
		return fmt.Errorf("unsupported format %q (supported: table, yaml, csv)", opts.format)
	}
}

type exportRow struct {
	ID            string  `yaml:"id"`
	CreatedAt     string  `yaml:"created_at"`
	Instrument    string  `yaml:"instrument"`
	Direction     string  `yaml:"direction"`
	EntryPrice    float64 `yaml:"entry_price"`
	StopLoss      float64 `yaml:"stop_loss"`
	TakeProfit    float64 `yaml:"take_profit"`
	RiskReward    float64 `yaml:"risk_reward"`
	ScreenshotURL string  `yaml:"screenshot_url,omitempty"`
	Notes         string  `yaml:"notes,omitempty"`
	AIFeedback    string  `yaml:"ai_feedback,omitempty"`
}

func toRow(t domain.Trade, loc *time.Location) exportRow {
	return exportRow{
		ID:            t.ID.String(),
		CreatedAt:     t.CreatedAt.In(loc).Format(time.RFC3339),
		Instrument:    t.Instrument,
		Direction:     string(t.Direction),
		EntryPrice:    t.EntryPrice,
		StopLoss:      t.StopLoss,
		TakeProfit:    t.TakeProfit,
		RiskReward:    t.RiskReward,
		ScreenshotURL: domain.Deref(t.ScreenshotURL),
		Notes:         domain.Deref(t.Notes),
		AIFeedback:    domain.Deref(t.AIFeedback),
	}
}

func writeTable(w io.Writer, trades []domain.Trade, loc *time.Location) error {
	if len(trades) == 0 {
		_, err := fmt.Fprintln(w, journal.EmptyFiltered)
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header("Date", "Instrument", "Dir", "Entry", "Stop", "Target", "R:R", "", "Notes")
	for _, t := range trades {
		if err := table.Append(
			t.CreatedAt.In(loc).Format("02/01/2006 15:04"),
			t.Instrument,
			string(t.Direction),
			fmt.Sprintf("%.2f", t.EntryPrice),
			fmt.Sprintf("%.2f", t.StopLoss),
			fmt.Sprintf("%.2f", t.TakeProfit),
			fmt.Sprintf("%.2f", t.RiskReward),
			strings.Join(journal.Badges(t), " "),
			truncate(domain.Deref(t.Notes), 40),
		); err != nil {
			return err
		}
	}
	if err := table.Render(); err != nil {
		return err
	}

	stats := journal.ComputeStats(trades, time.Now(), loc)
	_, err := fmt.Fprintf(w, "%d trades  win rate %.1f%%  avg R:R %.2f  %s\n",
		stats.Count, stats.WinRate, stats.AvgRR, stats.Dominant)
	return err
}

func writeYAML(w io.Writer, trades []domain.Trade, loc *time.Location) error {
	rows := make([]exportRow, 0, len(trades))
	for _, t := range trades {
		rows = append(rows, toRow(t, loc))
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(rows); err != nil {
		return err
	}
	return enc.Close()
}

func writeCSV(w io.Writer, trades []domain.Trade, loc *time.Location) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{
		"id", "created_at", "instrument", "direction", "entry_price", "stop_loss",
		"take_profit", "risk_reward", "screenshot_url", "notes", "ai_feedback",
	}); err != nil {
		return err
	}
	for _, t := range trades {
		r := toRow(t, loc)
		if err := cw.Write([]string{
			r.ID, r.CreatedAt, r.Instrument, r.Direction,
			formatFloat(r.EntryPrice), formatFloat(r.StopLoss), formatFloat(r.TakeProfit), formatFloat(r.RiskReward),
			r.ScreenshotURL, r.Notes, r.AIFeedback,
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	if len([]rune(s)) <= n {
		return s
	}
	return string([]rune(s)[:n-3]) + "..."
}
