package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	logLevel  string
	scripting bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "htmltree",
		Short: "Build DOM trees from HTML the way browsers do",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			lvl, err := logrus.ParseLevel(logLevel)
			if err != nil {
				return err
			}
			logrus.SetLevel(lvl)
			logrus.SetOutput(os.Stderr)
			return nil
		},
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warning", "logrus level (trace, debug, info, warning, error)")
	rootCmd.PersistentFlags().BoolVar(&scripting, "scripting", true, "parse as if scripting were enabled")

	rootCmd.AddCommand(newParseCmd())
	rootCmd.AddCommand(newFragmentCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
