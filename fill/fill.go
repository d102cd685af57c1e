// Package fill drives a browser to populate a form from a resolved
// mapping. It only resolves selectors against the page and sets values;
// which selector maps to which field is decided upstream.
package fill

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/chromedp"

	"github.com/docufill/docufill/forms"
)

// Report counts the outcome of one fill run. A field with no data value is
// skipped, not failed; a field whose element cannot be located fails.
type Report struct {
	Filled  []string `json:"filled"`
	Skipped []string `json:"skipped"`
	Failed  []string `json:"failed"`
}

// Filler fills form fields over an active chromedp context.
type Filler struct {
	// Delay is the pause between fields, visual pacing for a human
	// watching the browser. Zero means no pause.
	Delay time.Duration
}

// Snapshot returns the serialized DOM of the current page, the input to
// mapping suggestion.
func Snapshot(ctx context.Context) (string, error) {
	var html string
	if err := chromedp.Run(ctx, chromedp.OuterHTML("html", &html)); err != nil {
		return "", fmt.Errorf("fill: snapshot: %w", err)
	}
	return html, nil
}

// Navigate loads a URL and waits for the body to be ready.
func Navigate(ctx context.Context, url string) error {
	if err := chromedp.Run(ctx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
	); err != nil {
		return fmt.Errorf("fill: navigate %s: %w", url, err)
	}
	return nil
}

// Fill sets every mapped field that has a non-empty data value, in sorted
// field order for reproducible runs. Locate failures are recorded and the
// run continues; only transport-level errors abort it.
func (f *Filler) Fill(ctx context.Context, mapping forms.Mapping, data map[string]string) (*Report, error) {
	names := make([]string, 0, len(mapping))
	for name := range mapping {
		names = append(names, name)
	}
	sort.Strings(names)

	report := &Report{}
	for _, field := range names {
		selector := mapping[field]
		value := data[field]
		if value == "" {
			slog.Debug("No data for field, skipping", "field", field)
			report.Skipped = append(report.Skipped, field)
			continue
		}

		if err := f.fillOne(ctx, selector, value); err != nil {
			if ctx.Err() != nil {
				return report, fmt.Errorf("fill: %w", ctx.Err())
			}
			slog.Warn("Could not fill field", "field", field, "selector", selector, "error", err)
			report.Failed = append(report.Failed, field)
			continue
		}

		slog.Debug("Filled field", "field", field, "selector", selector)
		report.Filled = append(report.Filled, field)
		if f.Delay > 0 {
			time.Sleep(f.Delay)
		}
	}
	return report, nil
}

func (f *Filler) fillOne(ctx context.Context, selector, value string) error {
	opt := queryOption(selector)

	var nodes []*cdp.Node
	if err := chromedp.Run(ctx, chromedp.Nodes(selector, &nodes, opt, chromedp.AtLeast(0))); err != nil {
		return err
	}
	if len(nodes) == 0 {
		return fmt.Errorf("element not found")
	}

	node := nodes[0]
	tag := strings.ToLower(node.NodeName)
	inputType := strings.ToLower(node.AttributeValue("type"))

	switch {
	case tag == "select":
		// SendKeys selects the option whose visible text matches.
		return chromedp.Run(ctx, chromedp.SendKeys(selector, value, opt))
	case inputType == "checkbox" || inputType == "radio":
		if !truthy(value) {
			return nil
		}
		return chromedp.Run(ctx, chromedp.Click(selector, opt))
	default:
		return chromedp.Run(ctx,
			chromedp.SetValue(selector, "", opt),
			chromedp.SendKeys(selector, value, opt),
		)
	}
}

// queryOption picks the chromedp query strategy for a selector expression.
func queryOption(selector string) chromedp.QueryOption {
	if forms.KindOf(selector) == forms.SelectorXPath {
		return chromedp.BySearch
	}
	return chromedp.ByQuery
}

func truthy(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "yes", "true", "1", "checked", "on":
		return true
	}
	return false
}
