// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// docs.go - Document management commands for the planetchat CLI.
//
// Command: docs [list|delete]
//
// Examples:
//   planetchat docs                 List uploaded documents
//   planetchat docs list --json     List as JSON
//   planetchat docs delete 4f9c21   Delete a document
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/jeranaias/planetchat/internal/backend"
	"github.com/jeranaias/planetchat/internal/ui/styles"
)

// HandleDocsCommand handles the "docs" command.
func HandleDocsCommand(args Args) error {
	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}

	client := backend.New(cfg.Backend.BaseURL).WithTimeout(cfg.Timeout())
	ctx := context.Background()

	switch args.Subcommand {
	case "", "list", "ls":
		return listDocuments(ctx, client, args)

	case "delete", "rm":
		if args.DocID == "" {
			return fmt.Errorf("usage: planetchat docs delete <id>")
		}
		if err := client.Delete(ctx, args.DocID); err != nil {
			return fmt.Errorf("delete failed: %s", backend.Detail(err, err.Error()))
		}
		if !args.Quiet {
			fmt.Println(styles.RenderSuccess("Deleted document " + args.DocID))
		}
		return nil

	default:
		return fmt.Errorf("unknown docs subcommand: %s (try list, delete)", args.Subcommand)
	}
}

func listDocuments(ctx context.Context, client *backend.Client, args Args) error {
	docs, err := client.List(ctx)
	if err != nil {
		return fmt.Errorf("list failed: %s", backend.Detail(err, err.Error()))
	}

	if args.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(docs)
	}

	if len(docs) == 0 {
		fmt.Println("No documents uploaded.")
		return nil
	}
	for _, d := range docs {
		fmt.Printf("%-14s %s\n", d.ID, d.Name)
	}
	return nil
}
