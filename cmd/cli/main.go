package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"modboard/domain/core"
	"modboard/domain/moderation"
	"modboard/domain/stats"
	"modboard/internal/config"
	"modboard/internal/container"
	"modboard/internal/errors"
	"modboard/internal/format"
	"modboard/internal/preferences"
	"modboard/internal/report"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "modboard-cli",
		Short:         "modboard CLI for moderation statistics, reports and listing review",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newStatsCmd(),
		newExportCmd(),
		newListingsCmd(),
		newItemCmd(),
		newApproveCmd(),
		newDecisionCmd("reject", "Reject a listing"),
		newDecisionCmd("request-changes", "Send a listing back to its author"),
		newThemeCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errors.UserMessage(err))
		os.Exit(1)
	}
}

// withContainer loads .env and config, then runs fn with a ready container
func withContainer(fn func(c *container.Container) error) error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	c, err := container.New(cfg)
	if err != nil {
		return err
	}
	defer c.Shutdown(context.Background())
	return fn(c)
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newStatsCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "stats [today|week|month]",
		Short: "Show moderation statistics for a period",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			period, err := periodArg(args)
			if err != nil {
				return err
			}
			return withContainer(func(c *container.Container) error {
				d, err := c.Stats.Load(cmd.Context(), period)
				if err != nil {
					return err
				}
				if asJSON {
					return printJSON(d)
				}
				printDashboard(d)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the full dashboard as JSON")
	return cmd
}

func printDashboard(d *stats.Dashboard) {
	fmt.Printf("Период: %s\n", d.Period.Label())
	if !d.HasData {
		fmt.Printf("Нет данных за выбранный период, попробуйте: %s\n", d.FallbackPeriod.Label())
		return
	}
	fmt.Printf("Всего проверено: %s\n", format.Count(d.Summary.TotalReviewed))
	fmt.Printf("Среднее время проверки: %s\n", format.AverageTime(d.Summary.AverageReviewTime))
	for _, s := range d.Decisions {
		fmt.Printf("  %-14s %5.1f%%\n", s.Name, s.Percent)
	}
	fmt.Println("Активность:")
	for _, p := range d.Activity {
		fmt.Printf("  %-8s %4d\n", p.Day, p.Total)
	}
	fmt.Println("Категории:")
	for _, cat := range d.Categories {
		fmt.Printf("  %-14s %4d\n", cat.Category, cat.Count)
	}
	fmt.Printf("Тренд: %+.2f в день, пик %s (%d)\n", d.Digest.TrendPerDay, d.Digest.PeakDay, d.Digest.PeakTotal)
}

func periodArg(args []string) (stats.Period, error) {
	if len(args) == 0 {
		return stats.DefaultPeriod, nil
	}
	return stats.ParsePeriod(args[0])
}

func newExportCmd() *cobra.Command {
	var (
		formatName string
		dir        string
	)

	cmd := &cobra.Command{
		Use:   "export [today|week|month]",
		Short: "Write a statistics report to a file",
		Long: `Write a statistics report for a period. Formats: csv, detailed, xlsx.

Example: modboard-cli export week --format detailed --dir ./reports`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			period, err := periodArg(args)
			if err != nil {
				return err
			}
			f, err := report.ParseFormat(formatName)
			if err != nil {
				return err
			}
			return withContainer(func(c *container.Container) error {
				d, err := c.Stats.Load(cmd.Context(), period)
				if err != nil {
					return err
				}
				target := dir
				if target == "" {
					target = c.Config.Export.Dir
				}
				path, err := c.Exports.ExportToFile(cmd.Context(), f, d.Export, target)
				if err != nil {
					return err
				}
				fmt.Println(path)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&formatName, "format", string(report.FormatCSV), "Report format: csv, detailed or xlsx")
	cmd.Flags().StringVar(&dir, "dir", "", "Output directory (default EXPORT_DIR)")
	return cmd
}

func newListingsCmd() *cobra.Command {
	var (
		page      int
		limit     int
		search    string
		category  int
		statuses  []string
		minPrice  float64
		maxPrice  float64
		sortBy    string
		sortOrder string
	)

	cmd := &cobra.Command{
		Use:   "listings",
		Short: "Search listings",
		RunE: func(cmd *cobra.Command, args []string) error {
			values := url.Values{}
			values.Set("page", fmt.Sprint(page))
			values.Set("limit", fmt.Sprint(limit))
			values.Set("search", search)
			values.Set("categoryId", fmt.Sprint(category))
			values.Set("minPrice", fmt.Sprint(minPrice))
			values.Set("maxPrice", fmt.Sprint(maxPrice))
			values.Set("sortBy", sortBy)
			values.Set("sortOrder", sortOrder)
			for _, s := range statuses {
				values.Add("status", s)
			}
			query, err := moderation.ParseListingQuery(values)
			if err != nil {
				return err
			}

			return withContainer(func(c *container.Container) error {
				result, err := c.Listings.Search(cmd.Context(), query)
				if err != nil {
					return err
				}
				for _, ad := range result.Ads {
					fmt.Printf("%5s  %-12s %-40s %s\n", ad.ID, format.StatusText(string(ad.Status)), ad.Title, format.Price(ad.Price))
				}
				fmt.Printf("Всего: %d\n", result.TotalItems)
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	cmd.Flags().IntVar(&limit, "limit", moderation.DefaultLimit, "Listings per page")
	cmd.Flags().StringVar(&search, "search", "", "Title substring")
	cmd.Flags().IntVar(&category, "category", 0, "Category id")
	cmd.Flags().StringSliceVar(&statuses, "status", nil, "Statuses: pending, approved, rejected, draft")
	cmd.Flags().Float64Var(&minPrice, "min-price", 0, "Minimum price")
	cmd.Flags().Float64Var(&maxPrice, "max-price", 0, "Maximum price")
	cmd.Flags().StringVar(&sortBy, "sort-by", moderation.SortCreatedAt, "createdAt, price or priority")
	cmd.Flags().StringVar(&sortOrder, "sort-order", "desc", "asc or desc")
	return cmd
}

func newItemCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "item [id]",
		Short: "Show a listing as the review screen renders it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := core.ParseListingID(args[0])
			if err != nil {
				return err
			}
			return withContainer(func(c *container.Container) error {
				view, err := c.Moderation.View(cmd.Context(), id, time.Now())
				if err != nil {
					return err
				}
				return printJSON(view)
			})
		},
	}
}

func newApproveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "approve [id]",
		Short: "Approve a listing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := core.ParseListingID(args[0])
			if err != nil {
				return err
			}
			return withContainer(func(c *container.Container) error {
				ad, err := c.Moderation.Approve(cmd.Context(), id)
				if err != nil {
					return err
				}
				fmt.Printf("%s: %s\n", ad.ID, format.StatusText(string(ad.Status)))
				return nil
			})
		},
	}
}

func newDecisionCmd(use, short string) *cobra.Command {
	var (
		reasons []string
		custom  string
		comment string
	)

	cmd := &cobra.Command{
		Use:   use + " [id]",
		Short: short,
		Long: fmt.Sprintf(`%s. At least one --reason is required; "%s" also needs --custom.

Reasons: %s`, short, moderation.ReasonOther, reasonList()),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := core.ParseListingID(args[0])
			if err != nil {
				return err
			}
			input := moderation.FormInput{Custom: custom, Comment: comment}
			for _, r := range reasons {
				input.Reasons = append(input.Reasons, moderation.Reason(r))
			}

			return withContainer(func(c *container.Container) error {
				decide := c.Moderation.Reject
				if use == "request-changes" {
					decide = c.Moderation.RequestChanges
				}
				ad, err := decide(cmd.Context(), id, input)
				if err != nil {
					return err
				}
				fmt.Printf("%s: %s\n", ad.ID, format.StatusText(string(ad.Status)))
				return nil
			})
		},
	}

	cmd.Flags().StringArrayVar(&reasons, "reason", nil, "Reason (repeatable)")
	cmd.Flags().StringVar(&custom, "custom", "", "Text for the other reason")
	cmd.Flags().StringVar(&comment, "comment", "", "Comment for the author")
	return cmd
}

func reasonList() string {
	names := make([]string, 0, len(moderation.Reasons()))
	for _, r := range moderation.Reasons() {
		names = append(names, string(r))
	}
	return strings.Join(names, "; ")
}

func newThemeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme [light|dark|toggle]",
		Short: "Show or change the dashboard theme",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()
			store, err := preferences.Open(preferencesFile())
			if err != nil {
				return err
			}

			switch {
			case len(args) == 0:
			case args[0] == "toggle":
				if _, err := store.ToggleTheme(); err != nil {
					return err
				}
			default:
				if err := store.SetTheme(preferences.ThemeMode(args[0])); err != nil {
					return err
				}
			}
			fmt.Println(store.Theme())
			return nil
		},
	}
	return cmd
}

// preferencesFile avoids requiring the API configuration for theme changes
func preferencesFile() string {
	if path := os.Getenv("PREFERENCES_FILE"); path != "" {
		return path
	}
	return "./modboard-preferences.yaml"
}
