package bookmarks

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ademgunay/nest-api-sandbox/cmd/cli/client"
	"github.com/ademgunay/nest-api-sandbox/cmd/cli/output"
	"github.com/ademgunay/nest-api-sandbox/internal/models"
)

// ==========================
// Init Bookmarks
// ==========================
func InitBookmarks(rootCmd *cobra.Command) {
	bookmarksCmd := &cobra.Command{
		Use:   "bookmarks",
		Short: "Manage your bookmarks",
	}

	bookmarksCmd.AddCommand(
		listCmd(),
		createCmd(),
		getCmd(),
		editCmd(),
		deleteCmd(),
	)

	rootCmd.AddCommand(bookmarksCmd)
}

// ==========================
// LIST
// ==========================
func listCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List bookmarks",
		RunE: func(cmd *cobra.Command, args []string) error {
			var list []models.Bookmark
			if err := client.Do(http.MethodGet, "/bookmarks", nil, &list, true); err != nil {
				return err
			}
			if asJSON {
				return output.PrintJSON(list)
			}
			printBookmarks(list...)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print raw JSON")
	return cmd
}

// ==========================
// CREATE
// ==========================
func createCmd() *cobra.Command {
	var asJSON bool
	var title, link, description string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a bookmark",
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := map[string]string{"title": title, "link": link}
			if cmd.Flags().Changed("description") {
				payload["description"] = description
			}

			var b models.Bookmark
			if err := client.Do(http.MethodPost, "/bookmarks", payload, &b, true); err != nil {
				return err
			}
			return printOne(b, asJSON)
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "bookmark title")
	cmd.Flags().StringVar(&link, "link", "", "bookmark link")
	cmd.Flags().StringVar(&description, "description", "", "optional description")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print raw JSON")
	cmd.MarkFlagRequired("title")
	cmd.MarkFlagRequired("link")
	return cmd
}

// ==========================
// GET
// ==========================
func getCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "get [id]",
		Short: "Show one bookmark",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			var b models.Bookmark
			if err := client.Do(http.MethodGet, "/bookmarks/"+id, nil, &b, true); err != nil {
				return err
			}
			return printOne(b, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print raw JSON")
	return cmd
}

// ==========================
// EDIT
// ==========================
func editCmd() *cobra.Command {
	var asJSON bool
	var title, link, description string

	cmd := &cobra.Command{
		Use:   "edit [id]",
		Short: "Edit a bookmark",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			payload := map[string]string{}
			if cmd.Flags().Changed("title") {
				payload["title"] = title
			}
			if cmd.Flags().Changed("link") {
				payload["link"] = link
			}
			if cmd.Flags().Changed("description") {
				payload["description"] = description
			}
			if len(payload) == 0 {
				return fmt.Errorf("nothing to edit: pass --title, --link or --description")
			}

			var b models.Bookmark
			if err := client.Do(http.MethodPatch, "/bookmarks/"+id, payload, &b, true); err != nil {
				return err
			}
			return printOne(b, asJSON)
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "new title")
	cmd.Flags().StringVar(&link, "link", "", "new link")
	cmd.Flags().StringVar(&description, "description", "", "new description")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print raw JSON")
	return cmd
}

// ==========================
// DELETE
// ==========================
func deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a bookmark",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := client.Do(http.MethodDelete, "/bookmarks/"+id, nil, nil, true); err != nil {
				return err
			}
			fmt.Println("Bookmark " + id + " deleted.")
			return nil
		},
	}
}

func parseID(s string) (string, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return "", fmt.Errorf("invalid bookmark id %q", s)
	}
	return strconv.Itoa(id), nil
}

func printOne(b models.Bookmark, asJSON bool) error {
	if asJSON {
		return output.PrintJSON(b)
	}
	printBookmarks(b)
	return nil
}

func printBookmarks(list ...models.Bookmark) {
	rows := make([][]interface{}, 0, len(list))
	for _, b := range list {
		rows = append(rows, []interface{}{b.ID, b.Title, b.Link, output.Deref(b.Description)})
	}
	output.RenderTable([]string{"ID", "Title", "Link", "Description"}, rows)
}
