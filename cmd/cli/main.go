package main

import (
	"fmt"
	"os"

	"github.com/ademgunay/nest-api-sandbox/cmd/cli/auth"
	"github.com/ademgunay/nest-api-sandbox/cmd/cli/bookmarks"
	"github.com/ademgunay/nest-api-sandbox/cmd/cli/root"
	"github.com/ademgunay/nest-api-sandbox/cmd/cli/users"
)

func main() {
	rootCmd := root.GetRoot()
	auth.InitAuth(rootCmd)
	users.InitUsers(rootCmd)
	bookmarks.InitBookmarks(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
