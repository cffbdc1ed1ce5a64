package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jetstack/jwsign/pkg/logs"
)

// rootCmd signs standard input when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "jwsign <keyfile>",
	Short: "Sign standard input as a JWS using an RSA private key in JWK format",
	Long: `jwsign reads an RSA private key in JWK format from <keyfile> and a payload
from standard input, and prints the payload signed as a JWS in Compact
Serialization.

The algorithm depends on the size of the key:
  2048 bit keys sign with PS256
  3072 bit keys sign with PS384
  4096 bit keys sign with PS512
Keys of any other size are rejected.`,
	Example: `  echo -n hello | jwsign key.json`,
	Args:    keyfileArg,
	// Errors are printed once by Execute, and usage only on request.
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return logs.Initialize()
	},
	RunE: runSign,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	logs.AddFlags(rootCmd.PersistentFlags())

	err := rootCmd.ExecuteContext(context.Background())
	logs.Flush()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
