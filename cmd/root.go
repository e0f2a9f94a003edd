package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"storefront.GO/config"
	"storefront.GO/core/storage"
)

var rootCmd = &cobra.Command{
	Use:   "storefront",
	Short: "Storefront guest cart, wishlist and session tools",
}

// openStorage opens the configured backend. Tests replace it.
var openStorage = func() (storage.KeyValue, error) {
	config.LoadAppConfig()
	return storage.Open(config.AppConfig)
}

// Execute applies registered commands and runs the root command.
func Execute() {
	Apply()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
