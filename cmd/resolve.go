package cmd

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/frahmantamala/expense-bot/internal/category"
	"github.com/spf13/cobra"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <text>...",
	Short: "Show which category each word resolves to",
	Long:  `Resolve free text against the configured category catalog, the same way the bot resolves the category word of a message.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog := category.MustCatalog(category.DefaultNames)
		if cfg, err := loadConfig(configDir); err == nil {
			if catalog, err = loadCatalog(cfg); err != nil {
				return err
			}
		}

		out := cmd.OutOrStdout()
		exact := color.New(color.FgGreen, color.Bold)
		fuzzy := color.New(color.FgYellow)

		for _, arg := range args {
			resolved := catalog.Resolve(arg)
			style := fuzzy
			note := fmt.Sprintf("distance %d", category.Levenshtein(arg, resolved))
			if strings.HasPrefix(strings.ToLower(resolved), strings.ToLower(arg)) {
				style = exact
				note = "prefix"
			}
			fmt.Fprintf(out, "%-20s -> %s (%s)\n", arg, style.Sprint(resolved), note)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(resolveCmd)
}
