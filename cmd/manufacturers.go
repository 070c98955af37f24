package cmd

import (
	"github.com/spf13/cobra"
	"github.com/tayloree/fabric-chat/internal/display"
	"github.com/tayloree/fabric-chat/internal/filter"
)

var manufacturersCmd = &cobra.Command{
	Use:     "manufacturers",
	Aliases: []string{"makers"},
	Short:   "List manufacturers and how many fabrics each has",
	Example: `  fabricbot manufacturers
  fabricbot manufacturers --colorway orange --json`,
	Args: cobra.NoArgs,
	RunE: runManufacturers,
}

func init() {
	rootCmd.AddCommand(manufacturersCmd)
	registerFabricFilterFlags(manufacturersCmd.Flags())
}

func runManufacturers(cmd *cobra.Command, _ []string) error {
	env, err := loadAppEnv(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer env.close()

	cat, err := loadCatalog(cmd, env)
	if err != nil {
		return err
	}

	opts := currentFilterOptions()
	opts.Sort, opts.Limit = "", 0
	makers := filter.Manufacturers(filter.Apply(cat.All(), opts))
	if len(makers) == 0 {
		return notFoundError(
			"no fabrics match your filters with a manufacturer set",
			"fabricbot list --query tweed",
		)
	}

	if flagJSON {
		return display.PrintManufacturersJSON(cmd.OutOrStdout(), makers)
	}
	display.PrintManufacturers(cmd.OutOrStdout(), makers)
	return nil
}
