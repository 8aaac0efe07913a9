package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/campulist/campulist/internal/bootstrap"
	"github.com/spf13/cobra"
)

var configPath string

// rootCmd represents the base command. Without a subcommand it serves HTTP.
var rootCmd = &cobra.Command{
	Use:   "campulist",
	Short: "Campulist - campus classifieds API",
	Long: `Campulist serves a campus-scoped classifieds board: posts, chat between
buyers and authors, abuse reports and moderation.

Data is kept in memory and seeded at startup, either from the built-in
dataset or from the YAML file named by seed.path.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", bootstrap.DefaultConfigPath, "Path to the YAML configuration file")
}
