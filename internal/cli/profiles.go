package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newProfilesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profiles",
		Short: "Inspect saved domain profiles",
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
		},
	}
	cmd.AddCommand(c.newProfilesListCommand())
	cmd.AddCommand(c.newProfilesShowCommand())
	return cmd
}

func (c *CLI) newProfilesListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List domains with a saved profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			eng, err := c.newEngine(cfg)
			if err != nil {
				return err
			}
			domains, err := eng.Profiles().List()
			if err != nil {
				return err
			}
			if len(domains) == 0 {
				fmt.Println("No saved profiles.")
				return nil
			}
			for _, d := range domains {
				fmt.Println(d)
			}
			return nil
		},
	}
}

func (c *CLI) newProfilesShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <domain>",
		Short: "Print the saved mapping for a domain",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			eng, err := c.newEngine(cfg)
			if err != nil {
				return err
			}
			mapping, ok, err := eng.LoadMapping(args[0])
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("no profile saved for %q", args[0])
			}
			output, _ := json.MarshalIndent(mapping, "", "  ")
			fmt.Println(string(output))
			return nil
		},
	}
}
