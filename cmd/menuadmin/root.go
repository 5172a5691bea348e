package main

import "github.com/spf13/cobra"

var rootCmd = &cobra.Command{
	Use:           "menuadmin",
	Short:         "Restaurant menu administration backend",
	SilenceUsage:  true,
	SilenceErrors: true,
}
