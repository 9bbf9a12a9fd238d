package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	httpcmd "github.com/johnwondoh/careroster/cmd/http"
	systemcmd "github.com/johnwondoh/careroster/cmd/system"
)

var (
	cfgFile string
)

var rootCmd = &cobra.Command{
	Use:   "careroster",
	Short: "CareRoster is a scheduling and rostering backend for NDIS care providers.",
	Long: `CareRoster manages participants, care workers, recurring service schedules,
appointments, timesheets and NDIS plan budgets for a disability support provider.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global config flag, available for all commands.
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "config file path")

	// Attach top-level command trees.
	rootCmd.AddCommand(systemcmd.NewSystemCommand())
	rootCmd.AddCommand(httpcmd.NewHTTPCommand())
}
