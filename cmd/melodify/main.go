package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	configFile string
	envPath    string
	seedPhrase string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "melodify",
		Short: "Melodify is a client for the decentralized music marketplace",
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "path to configuration file")
	rootCmd.PersistentFlags().StringVar(&envPath, "env", "", "path to the directory holding .env files")
	rootCmd.PersistentFlags().StringVar(&seedPhrase, "seed", "melodify-dev", "seed phrase for the test-mode signer")

	rootCmd.AddCommand(
		newDiscoverCmd(),
		newPlayCmd(),
		newPublishCmd(),
		newStakeCmd(),
		newProfileCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
