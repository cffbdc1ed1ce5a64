package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jetstack/jwsign/internal/jwsign"
)

var verifyCmd = &cobra.Command{
	Use:   "verify <keyfile>",
	Short: "Verify a JWS read from standard input and print its payload",
	Long: `Verify reads a JWS in Compact Serialization from standard input and
checks it against the public half of the key in <keyfile>. The keyfile is the
same private JWK used for signing. On success the raw payload is written to
standard output.`,
	Example: `  echo -n hello | jwsign key.json | jwsign verify key.json`,
	Args:    keyfileArg,
	RunE:    runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	compact, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("%w: %w", jwsign.ErrReadInput, err)
	}

	key, err := jwsign.LoadSigningKeyFile(ctx, args[0])
	if err != nil {
		return err
	}

	payload, err := jwsign.Verify(ctx, key.VerificationKey(), compact)
	if err != nil {
		return err
	}

	_, err = cmd.OutOrStdout().Write(payload)
	return err
}
