package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/forenzy/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the evidence labs",
	Long:  `Shows every lab on the evidence board, in board order.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	labs := registry.List()

	if len(labs) == 0 {
		fmt.Println("No labs available.")
		return
	}

	fmt.Println("Evidence labs:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, l := range labs {
		if len(l.ID) > maxIDLen {
			maxIDLen = len(l.ID)
		}
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")
	for _, l := range labs {
		fmt.Printf("  %-*s  %s\n", maxIDLen, l.ID, l.Title)
	}

	fmt.Println()
	fmt.Println("Run 'forenzy play <id>' to open a lab.")
}
