package cli

import (
	"fmt"

	"github.com/safedep/dry/log"
	"github.com/safedep/presence/internal/release"
	"github.com/safedep/presence/internal/version"
	"github.com/spf13/cobra"
)

// releaseBaseURL is the API root used by version --check.
var releaseBaseURL = release.DefaultBaseURL

func NewVersionCmd() *cobra.Command {
	var check bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Example: `  presence version
  presence version --check`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "presence %s\n", version.Version)
			_, _ = fmt.Fprintf(out, "commit: %s\n", version.Commit)
			_, _ = fmt.Fprintf(out, "https://github.com/safedep/presence\n")

			if !check {
				return nil
			}

			info, err := release.NewChecker(release.WithBaseURL(releaseBaseURL)).
				Check(cmd.Context(), version.Version)
			if err != nil {
				log.Debugf("release check failed: %v", err)
				return WrapError(ExitGeneral, "could not check for a newer release", err)
			}

			if info.Newer {
				_, _ = fmt.Fprintf(out, "\nA newer version %s is available: %s\n", info.Latest, info.URL)
			} else {
				_, _ = fmt.Fprintf(out, "\nLatest release is %s.\n", info.Latest)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "check GitHub for a newer release")

	return cmd
}
