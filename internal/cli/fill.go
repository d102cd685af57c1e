package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/spf13/cobra"

	"github.com/docufill/docufill/extraction"
	"github.com/docufill/docufill/fill"
	"github.com/docufill/docufill/profile"
)

func (c *CLI) newFillCommand() *cobra.Command {
	var dataPath string
	var domain string
	var headless bool
	var timeout int

	cmd := &cobra.Command{
		Use:   "fill <url>",
		Short: "Autofill a web form from extracted data",
		Args:  cobra.ExactArgs(1),
		Example: `  # Fill using a saved or freshly suggested mapping
  docufill fill https://apply.example.com/form --data record.json

  # Watch the browser while it fills
  docufill fill https://apply.example.com/form --data record.json --headless=false`,
		RunE: func(cmd *cobra.Command, args []string) error {
			url := args[0]
			if domain == "" {
				domain = profile.Domain(url)
			}

			data, err := loadFillData(dataPath)
			if err != nil {
				return err
			}

			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			eng, err := c.newEngine(cfg)
			if err != nil {
				return err
			}

			opts := chromedp.DefaultExecAllocatorOptions[:]
			if !headless {
				opts = append(opts, chromedp.Flag("headless", false))
			}
			allocCtx, cancelAlloc := chromedp.NewExecAllocator(cmd.Context(), opts...)
			defer cancelAlloc()
			browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
			defer cancelBrowser()
			ctx, cancel := context.WithTimeout(browserCtx, time.Duration(timeout)*time.Second)
			defer cancel()

			if err := fill.Navigate(ctx, url); err != nil {
				return err
			}

			// Saved profile wins; a fresh suggestion runs over the live DOM.
			_, hadProfile, err := eng.LoadMapping(domain)
			if err != nil {
				return err
			}
			pageHTML := ""
			if !hadProfile {
				pageHTML, err = fill.Snapshot(ctx)
				if err != nil {
					return err
				}
			}
			mapping, err := eng.ResolveMapping(domain, pageHTML)
			if err != nil {
				return err
			}
			if len(mapping) == 0 {
				return fmt.Errorf("no usable mapping for %s", domain)
			}
			slog.Info("Mapping resolved", "domain", domain, "fields", len(mapping), "from_profile", hadProfile)

			filler := &fill.Filler{Delay: cfg.FillDelay()}
			report, err := filler.Fill(ctx, mapping, data)
			if err != nil {
				return err
			}

			// First successful suggestion-then-use is persisted for reuse.
			if !hadProfile && len(report.Filled) > 0 {
				if err := eng.SaveMapping(domain, mapping); err != nil {
					slog.Warn("Could not save profile", "domain", domain, "error", err)
				} else {
					slog.Info("Profile saved for reuse", "domain", domain)
				}
			}

			output, _ := json.MarshalIndent(report, "", "  ")
			fmt.Println(string(output))
			fmt.Printf("\nFilled %d, skipped %d, failed %d. Review in the browser and submit manually.\n",
				len(report.Filled), len(report.Skipped), len(report.Failed))
			return nil
		},
	}

	cmd.Flags().StringVar(&dataPath, "data", "", "JSON file with field values (record or flat map)")
	cmd.Flags().StringVar(&domain, "domain", "", "Profile domain (default: derived from the URL)")
	cmd.Flags().BoolVar(&headless, "headless", true, "Run the browser headless")
	cmd.Flags().IntVar(&timeout, "timeout", 120, "Overall timeout in seconds")
	_ = cmd.MarkFlagRequired("data")
	return cmd
}

// loadFillData accepts either a normalized extraction record or a flat
// field-to-value map.
func loadFillData(path string) (map[string]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read data: %w", err)
	}

	var record extraction.Record
	if err := json.Unmarshal(raw, &record); err == nil && len(record.Fields) > 0 {
		return record.Values(), nil
	}

	var flat map[string]string
	if err := json.Unmarshal(raw, &flat); err != nil {
		return nil, fmt.Errorf("parse data %s: %w", path, err)
	}
	return flat, nil
}
