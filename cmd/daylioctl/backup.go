package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/daylio-dash/daylio-dash/internal/backup"
	"github.com/daylio-dash/daylio-dash/internal/model"
)

func init() {
	importCmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Replace the server's journal with a .daylio backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd.Context(), apiFlag, args[0], cmd.OutOrStdout())
		},
	}
	rootCmd.AddCommand(importCmd)

	var outPath string
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Download the server's journal as a .daylio backup",
		RunE: func(cmd *cobra.Command, args []string) error {
			if outPath == "" {
				return runExport(cmd.Context(), apiFlag, cmd.OutOrStdout())
			}
			f, err := os.Create(outPath)
			if err != nil {
				return err
			}
			if err := runExport(cmd.Context(), apiFlag, f); err != nil {
				_ = f.Close()
				return err
			}
			return f.Close()
		},
	}
	exportCmd.Flags().StringVarP(&outPath, "output", "o", "", "Write the backup to this file instead of stdout")
	rootCmd.AddCommand(exportCmd)

	decodeCmd := &cobra.Command{
		Use:   "decode FILE",
		Short: "Validate a .daylio backup offline and print it as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDecode(args[0], cmd.OutOrStdout())
		},
	}
	rootCmd.AddCommand(decodeCmd)
}

func runImport(ctx context.Context, apiURL, path string, out io.Writer) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var res struct {
		Imported model.ImportCounts `json:"imported"`
	}
	resp, err := newClient(apiURL).R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/octet-stream").
		SetBody(raw).
		SetResult(&res).
		Post("/api/import")
	if err != nil {
		return fmt.Errorf("import request: %w", err)
	}
	if err := expectStatus(resp, http.StatusOK); err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "imported %d entries, %d moods, %d tags, %d tag groups\n",
		res.Imported.Entries, res.Imported.Moods, res.Imported.Tags, res.Imported.TagGroups)
	return err
}

func runExport(ctx context.Context, apiURL string, out io.Writer) error {
	resp, err := getWithRetry(ctx, newClient(apiURL), "/api/export", retryInitialInterval)
	if err != nil {
		return err
	}
	_, err = out.Write(resp.Body())
	return err
}

func runDecode(path string, out io.Writer) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	d, err := backup.Decode(raw)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(d)
}
