package cmd

import (
	"github.com/spf13/cobra"
)

var (
	configFile string
	dbURL      string
)

var rootCmd = &cobra.Command{
	Use:   "docsieve",
	Short: "docsieve document filter engine",
	Long:  `docsieve compiles declarative JSON filter conditions and evaluates them against schema-less documents.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path")
	rootCmd.PersistentFlags().StringVar(&dbURL, "db-url", "", "database connection URL (sqlite://path or postgres://...)")
}

func Execute() error {
	return rootCmd.Execute()
}
