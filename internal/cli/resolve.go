package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newResolveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <key>...",
		Short: "Resolve field names to canonical schema names",
		Args:  cobra.MinimumNArgs(1),
		Example: `  docufill resolve contact_no mail_id applicant_name
  docufill resolve "Mail ID" --config custom.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			eng, err := c.newEngine(cfg)
			if err != nil {
				return err
			}

			for _, key := range args {
				canonical := eng.ResolveKey(key)
				if canonical == key && !eng.Schema().Has(key) {
					fmt.Printf("%s\t(unresolved)\n", key)
					continue
				}
				fmt.Printf("%s\t%s\n", key, canonical)
			}
			return nil
		},
	}
}
