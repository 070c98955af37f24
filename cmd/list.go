package cmd

import (
	"github.com/spf13/cobra"
	"github.com/tayloree/fabric-chat/internal/display"
	"github.com/tayloree/fabric-chat/internal/filter"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List fabrics in the catalog",
	Long:  "Browse the loaded dataset. Filters narrow the listing only; they never change how `ask` answers.",
	Example: `  fabricbot list --limit 20
  fabricbot list --colorway grey --sort name
  fabricbot list -m acme -t upholstery --json`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
	registerFabricFilterFlags(listCmd.Flags())
}

func runList(cmd *cobra.Command, _ []string) error {
	if err := validateSortMode(); err != nil {
		return err
	}
	if flagLimit < 0 {
		return invalidArgsError("--limit must be zero or positive", "fabricbot list --limit 10")
	}

	env, err := loadAppEnv(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer env.close()

	cat, err := loadCatalog(cmd, env)
	if err != nil {
		return err
	}

	items := filter.Apply(cat.All(), currentFilterOptions())
	if len(items) == 0 {
		return notFoundError(
			"no fabrics match your filters",
			"Relax filters like --manufacturer/--colorway/--query.",
		)
	}

	if flagJSON {
		return display.PrintFabricsJSON(cmd.OutOrStdout(), items)
	}
	display.PrintCatalogContext(cmd.OutOrStdout(), env.cfg.Dataset.Source, cat.Len())
	display.PrintFabrics(cmd.OutOrStdout(), items, cat.Len())
	return nil
}

func currentFilterOptions() filter.Options {
	return filter.Options{
		Manufacturer: flagManufacturer,
		Colorway:     flagColorway,
		FabricType:   flagType,
		Query:        flagQuery,
		Sort:         flagSort,
		Limit:        flagLimit,
	}
}
