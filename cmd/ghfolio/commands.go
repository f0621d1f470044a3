package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/kalambet/ghfolio/internal/config"
	"github.com/kalambet/ghfolio/internal/portfolio"
	"github.com/kalambet/ghfolio/internal/storage"
)

// show

var showJSON bool

var showCmd = &cobra.Command{
	Use:   "show <handle>",
	Short: "Fetch a portfolio from GitHub and print it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		setupLogging(cfg.Log.Level)
		return runShow(cmd.Context(), newAggregator(cfg), args[0], cmd.OutOrStdout(), showJSON)
	},
}

func runShow(ctx context.Context, loader portfolio.Loader, handle string, w io.Writer, asJSON bool) error {
	b, err := loader.Aggregate(ctx, handle)
	if err != nil {
		if errors.Is(err, portfolio.ErrProfileNotFound) {
			return fmt.Errorf("user %q not found on GitHub", strings.TrimSpace(handle))
		}
		return err
	}
	return printView(w, portfolio.Derive(b), asJSON)
}

func printView(w io.Writer, v portfolio.View, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	writeView(w, v)
	return nil
}

// browse

var browseJSON bool

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Read handles from stdin and print each portfolio as it loads",
	Long: `Read GitHub handles from stdin, one per line. A new handle cancels the
portfolio still loading, so only the most recent one is printed.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		setupLogging(cfg.Log.Level)
		return runBrowse(cmd.Context(), newAggregator(cfg), cmd.InOrStdin(), cmd.OutOrStdout(), browseJSON)
	},
}

func runBrowse(ctx context.Context, loader portfolio.Loader, in io.Reader, w io.Writer, asJSON bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	nav := portfolio.NewNavigator(loader, func(r portfolio.Result) {
		if r.Err != nil {
			if errors.Is(r.Err, context.Canceled) {
				return
			}
			printError("%s: %v", r.Handle, r.Err)
			return
		}
		if err := printView(w, portfolio.Derive(r.Bundle), asJSON); err != nil {
			printError("%s: %v", r.Handle, err)
		}
	})

	sc := bufio.NewScanner(in)
	seen := 0
	for sc.Scan() {
		handle := strings.TrimSpace(sc.Text())
		if handle == "" {
			continue
		}
		seen++
		printStep("loading %s", handle)
		nav.Navigate(ctx, handle)
	}
	nav.Wait()
	if seen == 0 {
		printWarning("no handles read from stdin")
	}
	return sc.Err()
}

// lookups

var (
	lookupsLimit     int
	lookupsOffset    int
	lookupsOlderThan time.Duration
)

var lookupsCmd = &cobra.Command{
	Use:   "lookups",
	Short: "List recent portfolio lookups recorded by the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}
		return runLookups(cmd.Context(), client, lookupsLimit, lookupsOffset, cmd.OutOrStdout())
	},
}

func runLookups(ctx context.Context, client *apiClient, limit, offset int, w io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	if offset > 0 {
		q.Set("offset", strconv.Itoa(offset))
	}

	resp, err := client.get(ctx, "/api/lookups?"+q.Encode())
	if err != nil {
		return err
	}
	var lookups []storage.Lookup
	if err := decodeJSON(resp, &lookups); err != nil {
		return err
	}

	if len(lookups) == 0 {
		fmt.Fprintln(w, "No lookups recorded.")
		return nil
	}

	for _, l := range lookups {
		id := l.ID
		if len(id) > 8 {
			id = id[:8]
		}
		marker := ""
		if l.HasConfig {
			marker = " +config"
		}
		fmt.Fprintf(w, "%s  %s  %-20s %-9s %5dms%s\n",
			colorize(colorCyan, id),
			l.LookedUpAt.Local().Format("2006-01-02 15:04:05"),
			l.Handle,
			l.Outcome,
			l.DurationMs,
			marker,
		)
	}
	return nil
}

var lookupsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a single lookup",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}
		return runLookupShow(cmd.Context(), client, args[0], cmd.OutOrStdout())
	},
}

func runLookupShow(ctx context.Context, client *apiClient, id string, w io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	resp, err := client.get(ctx, "/api/lookups/"+url.PathEscape(id))
	if err != nil {
		return err
	}

	var l storage.Lookup
	if err := decodeJSON(resp, &l); err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(l)
}

var lookupsPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete lookups older than a given age from the local database",
	RunE: func(cmd *cobra.Command, args []string) error {
		if lookupsOlderThan <= 0 {
			return fmt.Errorf("--older-than must be positive")
		}
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		store, err := storage.Open(cfg.Storage.DataDir)
		if err != nil {
			return fmt.Errorf("opening storage: %w", err)
		}
		defer store.Close()

		n, err := store.DeleteLookupsBefore(time.Now().Add(-lookupsOlderThan))
		if err != nil {
			return err
		}
		printSuccess("deleted %d lookups", n)
		return nil
	},
}

// config

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		for _, k := range config.ShowAll(cfg) {
			fmt.Fprintf(cmd.OutOrStdout(), "  %s = %s\n", colorize(colorBold, k.Key), k.Value)
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long:  "Set a configuration value. Valid keys: " + strings.Join(config.ValidKeys(), ", "),
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.SetKey(args[0], args[1]); err != nil {
			return err
		}
		printSuccess("%s = %s", args[0], args[1])
		return nil
	},
}

var configUnsetCmd = &cobra.Command{
	Use:   "unset <key>",
	Short: "Remove a configuration value so the default applies",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.UnsetKey(args[0]); err != nil {
			return err
		}
		printSuccess("%s unset", args[0])
		return nil
	},
}

func init() {
	showCmd.Flags().BoolVar(&showJSON, "json", false, "print the derived view as JSON")
	browseCmd.Flags().BoolVar(&browseJSON, "json", false, "print each view as JSON")

	lookupsCmd.Flags().IntVar(&lookupsLimit, "limit", 20, "number of lookups to list (max 100)")
	lookupsCmd.Flags().IntVar(&lookupsOffset, "offset", 0, "number of lookups to skip")
	lookupsPruneCmd.Flags().DurationVar(&lookupsOlderThan, "older-than", 30*24*time.Hour, "delete lookups older than this")
	lookupsCmd.AddCommand(lookupsShowCmd)
	lookupsCmd.AddCommand(lookupsPruneCmd)

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configUnsetCmd)
}
