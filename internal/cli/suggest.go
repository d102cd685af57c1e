package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/docufill/docufill/profile"
)

func (c *CLI) newSuggestCommand() *cobra.Command {
	var domain string
	var save bool

	cmd := &cobra.Command{
		Use:   "suggest [url-or-file]",
		Short: "Suggest a field-to-selector mapping for a form page",
		Args:  cobra.MaximumNArgs(1),
		Example: `  # Suggest a mapping for a URL (saved profile wins if one exists)
  docufill suggest https://apply.example.com/form

  # Suggest from a local HTML snapshot
  docufill suggest form.html

  # Pipe HTML content
  curl -s https://apply.example.com/form | docufill suggest --domain example.com

  # Persist the suggestion as the domain profile
  docufill suggest https://apply.example.com/form --save`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var htmlContent, target string
			var err error

			if len(args) == 0 {
				if isStdinTerminal() {
					return cmd.Help()
				}
				htmlContent, target, err = readFromStdin()
			} else {
				target = args[0]
				slog.Debug("Fetching HTML", "target", target)
				htmlContent, err = fetchHTML(target)
			}
			if err != nil {
				return err
			}
			slog.Debug("HTML loaded", "target", target, "bytes", len(htmlContent))

			if domain == "" && strings.HasPrefix(target, "http") {
				domain = profile.Domain(target)
			}

			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			eng, err := c.newEngine(cfg)
			if err != nil {
				return err
			}

			var mapping map[string]string
			if domain != "" {
				mapping, err = eng.ResolveMapping(domain, htmlContent)
			} else {
				mapping, err = eng.SuggestMapping(htmlContent)
			}
			if err != nil {
				return err
			}

			if len(mapping) == 0 {
				fmt.Println("No confident field matches found.")
				return nil
			}
			output, _ := json.MarshalIndent(mapping, "", "  ")
			fmt.Println(string(output))

			if save {
				if domain == "" {
					return fmt.Errorf("--save needs a URL target or --domain")
				}
				if err := eng.SaveMapping(domain, mapping); err != nil {
					return err
				}
				slog.Info("Profile saved", "domain", domain, "fields", len(mapping))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&domain, "domain", "", "Profile domain (default: derived from the URL)")
	cmd.Flags().BoolVar(&save, "save", false, "Persist the mapping as the domain profile")
	return cmd
}

func isStdinTerminal() bool {
	fi, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

func fetchHTML(target string) (string, error) {
	if strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://") {
		resp, err := http.Get(target)
		if err != nil {
			return "", fmt.Errorf("fetch URL: %w", err)
		}
		defer func() { _ = resp.Body.Close() }()
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return "", fmt.Errorf("read response: %w", err)
		}
		return string(body), nil
	}
	data, err := os.ReadFile(target)
	if err != nil {
		return "", fmt.Errorf("read file: %w", err)
	}
	return string(data), nil
}

func readFromStdin() (string, string, error) {
	slog.Debug("Reading from stdin")
	body, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", "", fmt.Errorf("read stdin: %w", err)
	}
	content := strings.TrimSpace(string(body))
	if content == "" {
		return "", "", fmt.Errorf("stdin is empty")
	}

	if strings.HasPrefix(content, "http://") || strings.HasPrefix(content, "https://") {
		slog.Debug("Stdin contains URL", "url", content)
		html, err := fetchHTML(content)
		if err != nil {
			return "", "", err
		}
		return html, content, nil
	}
	return content, "stdin", nil
}
