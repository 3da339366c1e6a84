package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Harrypapa1/pdf-processorHOC-HOL/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("po-processor", version.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
