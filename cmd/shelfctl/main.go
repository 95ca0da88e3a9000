// Package main implements shelfctl, a small command-line front end for the
// ReadShelf API built on the client package. Each invocation is one-shot:
// load, act, print, exit.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/readshelf/readshelf/client"
)

var serverURL string

var rootCmd = &cobra.Command{
	Use:   "shelfctl",
	Short: "manage your ReadShelf book list from the terminal",
	Long: `shelfctl talks to a running ReadShelf API server.

Point it at your server with --server (default http://localhost:8080).`,
	SilenceUsage: true,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List books, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctrl := newController()
		if err := ctrl.Load(cmd.Context()); err != nil {
			return err
		}

		status, _ := cmd.Flags().GetString("status")
		switch status {
		case "":
			ctrl.SetFilter(client.FilterAll)
		case "read":
			ctrl.SetFilter(client.FilterRead)
		case "unread":
			ctrl.SetFilter(client.FilterUnread)
		default:
			return fmt.Errorf("unknown status %q (want read or unread)", status)
		}

		for _, b := range ctrl.Filtered() {
			fmt.Printf("%s  [%-6s]  %s by %s\n", b.ID, b.Status, b.Title, b.Author)
		}
		counts := ctrl.Counts()
		fmt.Printf("\n%d books (%d read, %d unread)\n", counts.Total, counts.Read, counts.Unread)
		return nil
	},
}

var addCmd = &cobra.Command{
	Use:   "add <title> <author>",
	Short: "Add a book to the shelf",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		in := client.BookInput{Title: args[0], Author: args[1]}
		if read, _ := cmd.Flags().GetBool("read"); read {
			in.Status = client.StatusRead
		}

		book, err := newController().Add(cmd.Context(), in)
		if err != nil {
			return err
		}
		fmt.Printf("added %s by %s (%s)\n", book.Title, book.Author, book.ID)
		return nil
	},
}

var toggleCmd = &cobra.Command{
	Use:   "toggle <id>",
	Short: "Flip a book between read and unread",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctrl := newController()
		if err := ctrl.Load(cmd.Context()); err != nil {
			return err
		}

		book, err := ctrl.Toggle(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Printf("%s is now %s\n", book.Title, book.Status)
		return nil
	},
}

var rmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a book",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := newController().Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Println("deleted")
		return nil
	},
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that the server is up",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := client.New(serverURL, nil).Health(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("ok")
		return nil
	},
}

func newController() *client.Controller {
	return client.NewController(client.New(serverURL, nil))
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:8080", "base URL of the ReadShelf API")
	listCmd.Flags().String("status", "", "only show read or unread books")
	addCmd.Flags().Bool("read", false, "mark the new book as already read")
	rootCmd.AddCommand(listCmd, addCmd, toggleCmd, rmCmd, healthCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
