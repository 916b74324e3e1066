package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/meera-dev/stylescrap/internal/site"
)

var sitesCmd = &cobra.Command{
	Use:   "sites",
	Short: "List supported storefront sites",
	RunE: func(cmd *cobra.Command, args []string) error {
		initSites()
		for _, name := range site.List() {
			fmt.Println(name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sitesCmd)
}
