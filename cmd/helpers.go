package cmd

import (
	"fmt"
	"io"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/jetstack/jwsign/internal/jwsign"
	"github.com/jetstack/jwsign/pkg/version"
)

func printVersion(w io.Writer, verbose bool) {
	fmt.Fprintln(w, "jwsign version: ", version.Version, runtime.GOOS+"/"+runtime.GOARCH)
	if verbose {
		fmt.Fprintln(w, "  Commit: ", version.Commit)
		fmt.Fprintln(w, "  Built:  ", version.BuildDate)
		fmt.Fprintln(w, "  Go:     ", runtime.Version())
	}
}

// keyfileArg requires exactly one positional argument, the path of the key file.
func keyfileArg(cmd *cobra.Command, args []string) error {
	switch {
	case len(args) == 0:
		return jwsign.ErrMissingKeyfile
	case len(args) > 1:
		return fmt.Errorf("expected a single keyfile argument, got %d", len(args))
	}
	return nil
}
