package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ppiankov/dayfacts/internal/category"
)

// categoriesCmd represents the categories command
var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the category table",
	Long:  `List every category with its include and exclude keywords, including custom categories from the config file.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		table := category.DefaultTable().Merge(cfg.Categories)
		out := cmd.OutOrStdout()

		fmt.Fprintf(out, "Category table v%d\n\n", table.Version)
		for _, def := range table.Definitions {
			fmt.Fprintf(out, "%-12s %s\n", def.Category, def.Label)
			if def.Passthrough() {
				fmt.Fprintf(out, "             (all facts)\n")
				continue
			}
			fmt.Fprintf(out, "             include: %s\n", strings.Join(def.Include, ", "))
			if len(def.Exclude) > 0 {
				fmt.Fprintf(out, "             exclude: %s\n", strings.Join(def.Exclude, ", "))
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(categoriesCmd)
}
