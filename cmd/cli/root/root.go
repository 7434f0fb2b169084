package root

import (
	"github.com/spf13/cobra"
)

// RootCmd is the top-level "bm" command.
var RootCmd = &cobra.Command{
	Use:           "bm",
	Short:         "Bookmarks API CLI",
	Long:          "Command line interface for the bookmarks API: sign up, sign in and manage your bookmarks.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func GetRoot() *cobra.Command {
	return RootCmd
}
