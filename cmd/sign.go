package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jetstack/jwsign/internal/jwsign"
)

// runSign reads the whole payload before touching the key file, and writes
// nothing to stdout unless every step succeeded.
func runSign(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	payload, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("%w: %w", jwsign.ErrReadInput, err)
	}

	key, err := jwsign.LoadSigningKeyFile(ctx, args[0])
	if err != nil {
		return err
	}

	signed, err := jwsign.Sign(ctx, key, payload)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(signed))
	return err
}
