package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/spf13/cobra"
)

type addOptions struct {
	mood     int64
	at       string
	datetime int64
	title    string
	note     string
	tags     []int64
}

func init() {
	var opts addOptions
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Create a journal entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(cmd.Context(), apiFlag, opts, time.Now(), cmd.OutOrStdout())
		},
	}
	addCmd.Flags().Int64VarP(&opts.mood, "mood", "m", 0, "Mood id (required)")
	addCmd.Flags().StringVar(&opts.at, "at", "", "Entry time as RFC3339 (defaults to now)")
	addCmd.Flags().Int64Var(&opts.datetime, "datetime", 0, "Entry time as epoch milliseconds")
	addCmd.Flags().StringVarP(&opts.title, "title", "t", "", "Note title")
	addCmd.Flags().StringVarP(&opts.note, "note", "n", "", "Note body")
	addCmd.Flags().Int64SliceVar(&opts.tags, "tag", nil, "Activity id (repeatable)")
	_ = addCmd.MarkFlagRequired("mood")
	addCmd.MarkFlagsMutuallyExclusive("at", "datetime")
	rootCmd.AddCommand(addCmd)

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Show journal counts and date range",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(cmd.Context(), apiFlag, cmd.OutOrStdout())
		},
	}
	rootCmd.AddCommand(statsCmd)
}

// entryMillis resolves the entry instant from --datetime, --at or now.
func entryMillis(opts addOptions, now time.Time) (int64, error) {
	if opts.datetime != 0 {
		return opts.datetime, nil
	}
	if opts.at != "" {
		t, err := time.Parse(time.RFC3339, opts.at)
		if err != nil {
			return 0, fmt.Errorf("--at must be RFC3339: %w", err)
		}
		return t.UnixMilli(), nil
	}
	return now.UnixMilli(), nil
}

func runAdd(ctx context.Context, apiURL string, opts addOptions, now time.Time, out io.Writer) error {
	ms, err := entryMillis(opts, now)
	if err != nil {
		return err
	}
	tags := opts.tags
	if tags == nil {
		tags = []int64{}
	}
	payload := map[string]interface{}{
		"mood":       opts.mood,
		"datetime":   ms,
		"note_title": opts.title,
		"note":       opts.note,
		"tags":       tags,
	}
	resp, err := newClient(apiURL).R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Post("/api/entries")
	if err != nil {
		return fmt.Errorf("create entry request: %w", err)
	}
	if err := expectStatus(resp, http.StatusCreated); err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, resp.String())
	return err
}

type summary struct {
	NumberOfEntries int     `json:"numberOfEntries"`
	NumberOfMoods   int     `json:"numberOfMoods"`
	NumberOfTags    int     `json:"numberOfTags"`
	OldestEntryAt   *string `json:"oldestEntryAt"`
	NewestEntryAt   *string `json:"newestEntryAt"`
}

func runStats(ctx context.Context, apiURL string, out io.Writer) error {
	resp, err := getWithRetry(ctx, newClient(apiURL), "/api/summary", retryInitialInterval)
	if err != nil {
		return err
	}
	var s summary
	if err := json.Unmarshal(resp.Body(), &s); err != nil {
		return fmt.Errorf("decode summary: %w", err)
	}
	_, _ = fmt.Fprintf(out, "entries: %d\nmoods:   %d\ntags:    %d\n", s.NumberOfEntries, s.NumberOfMoods, s.NumberOfTags)
	if s.OldestEntryAt != nil && s.NewestEntryAt != nil {
		_, _ = fmt.Fprintf(out, "range:   %s .. %s\n", *s.OldestEntryAt, *s.NewestEntryAt)
	}
	return nil
}
