package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/sunwheel-labs/sunwheel/pkg/document"
	"github.com/sunwheel-labs/sunwheel/pkg/outline"
	"github.com/sunwheel-labs/sunwheel/pkg/pipeline"
)

// docsCommand creates the docs command group for managing saved documents.
func (c *CLI) docsCommand() *cobra.Command {
	var storeDir string

	cmd := &cobra.Command{
		Use:   "docs",
		Short: "Manage saved mind-map documents",
		Long: `Manage saved mind-map documents.

Documents are named mind-map forests with revision metadata, stored as JSON
files under ~/.config/sunwheel/documents by default. The serve command works
on the same documents when run with the same directory.`,
	}

	cmd.PersistentFlags().StringVar(&storeDir, "store-dir", "", "document directory (default: ~/.config/sunwheel/documents)")

	cmd.AddCommand(c.docsListCommand(&storeDir))
	cmd.AddCommand(c.docsCreateCommand(&storeDir))
	cmd.AddCommand(c.docsShowCommand(&storeDir))
	cmd.AddCommand(c.docsDeleteCommand(&storeDir))
	cmd.AddCommand(c.docsBrowseCommand(&storeDir))

	return cmd
}

// openStore opens the file-backed document store for CLI use.
func openStore(dir string) (*document.FileStore, error) {
	store, err := document.NewFileStore(dir)
	if err != nil {
		return nil, fmt.Errorf("open document store: %w", err)
	}
	return store, nil
}

// docsListCommand creates the "docs list" subcommand.
func (c *CLI) docsListCommand(storeDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved documents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runDocsList(cmd.Context(), *storeDir)
		},
	}
}

func (c *CLI) runDocsList(ctx context.Context, dir string) error {
	store, err := openStore(dir)
	if err != nil {
		return err
	}
	defer store.Close()

	docs, err := store.List(ctx)
	if err != nil {
		return fmt.Errorf("list documents: %w", err)
	}
	if len(docs) == 0 {
		printInfo("No documents yet")
		printNextStep("Create one", `sunwheel docs create "My Map"`)
		return nil
	}

	rows := make([][]string, len(docs))
	for i, d := range docs {
		rows[i] = []string{
			d.Name,
			shortID(d.ID),
			strconv.Itoa(d.NodeCount()),
			"r" + strconv.Itoa(d.Revision),
			formatRelativeTime(d.UpdatedAt),
		}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorMuted).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorFaint)).
		Headers("Document", "ID", "Nodes", "Rev", "Updated").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 0 {
				return lipgloss.NewStyle().Foreground(colorText)
			}
			return lipgloss.NewStyle().Foreground(colorMuted)
		})

	fmt.Println(t.Render())
	return nil
}

// docsCreateCommand creates the "docs create" subcommand.
func (c *CLI) docsCreateCommand(storeDir *string) *cobra.Command {
	var from string

	cmd := &cobra.Command{
		Use:   "create [name]",
		Short: "Create a new document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runDocsCreate(cmd.Context(), *storeDir, args[0], from)
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "seed the document from a mind-map file")

	return cmd
}

func (c *CLI) runDocsCreate(ctx context.Context, dir, name, from string) error {
	doc, err := document.New(name)
	if err != nil {
		return err
	}

	if from != "" {
		roots, err := pipeline.LoadForest(from)
		if err != nil {
			return fmt.Errorf("load mind map %s: %w", from, err)
		}
		if err := doc.SetRoots(roots); err != nil {
			return err
		}
	}

	store, err := openStore(dir)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Put(ctx, doc); err != nil {
		return fmt.Errorf("save document: %w", err)
	}

	printSuccess("Created %s", doc.Name)
	printKeyValue("ID", doc.ID)
	if n := doc.NodeCount(); n > 0 {
		printKeyValue("Nodes", strconv.Itoa(n))
	}
	printNewline()
	printNextStep("Show it", "sunwheel docs show "+shortID(doc.ID))
	return nil
}

// docsShowCommand creates the "docs show" subcommand.
func (c *CLI) docsShowCommand(storeDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "show [id]",
		Short: "Print a document's metadata and outline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(*storeDir)
			if err != nil {
				return err
			}
			defer store.Close()

			doc, err := resolveDocument(cmd.Context(), store, args[0])
			if err != nil {
				return err
			}
			return showDocument(doc)
		},
	}
}

// showDocument prints one document's metadata followed by its outline.
func showDocument(doc *document.Document) error {
	fmt.Println(StyleTitle.Render(doc.Name))
	printKeyValue("ID", doc.ID)
	printKeyValue("Revision", strconv.Itoa(doc.Revision))
	printKeyValue("Nodes", strconv.Itoa(doc.NodeCount()))
	printKeyValue("Updated", formatRelativeTime(doc.UpdatedAt))

	if len(doc.Roots) == 0 {
		printNewline()
		printInfo("Document is empty")
		return nil
	}

	printNewline()
	return outline.WriteText(os.Stdout, doc.Roots)
}

// docsDeleteCommand creates the "docs delete" subcommand.
func (c *CLI) docsDeleteCommand(storeDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(*storeDir)
			if err != nil {
				return err
			}
			defer store.Close()

			doc, err := resolveDocument(cmd.Context(), store, args[0])
			if err != nil {
				return err
			}
			if err := store.Delete(cmd.Context(), doc.ID); err != nil {
				return fmt.Errorf("delete document: %w", err)
			}
			printSuccess("Deleted %s", doc.Name)
			return nil
		},
	}
}

// docsBrowseCommand creates the "docs browse" subcommand.
func (c *CLI) docsBrowseCommand(storeDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse documents interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runDocsBrowse(cmd.Context(), *storeDir)
		},
	}
}

func (c *CLI) runDocsBrowse(ctx context.Context, dir string) error {
	store, err := openStore(dir)
	if err != nil {
		return err
	}
	defer store.Close()

	docs, err := store.List(ctx)
	if err != nil {
		return fmt.Errorf("list documents: %w", err)
	}
	if len(docs) == 0 {
		printInfo("No documents yet")
		printNextStep("Create one", `sunwheel docs create "My Map"`)
		return nil
	}

	p := tea.NewProgram(NewDocListModel(docs))
	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	fm, ok := finalModel.(DocListModel)
	if !ok || fm.Selected == nil {
		return nil
	}
	return showDocument(fm.Selected)
}

// resolveDocument looks a document up by full ID first, then by unique short
// ID prefix, so "docs show 1a2b3c4d" works with the IDs the list prints.
func resolveDocument(ctx context.Context, store document.Store, id string) (*document.Document, error) {
	doc, err := store.Get(ctx, id)
	if err == nil {
		return doc, nil
	}

	docs, listErr := store.List(ctx)
	if listErr != nil {
		return nil, err
	}

	var match *document.Document
	for _, d := range docs {
		if len(id) > 0 && len(d.ID) >= len(id) && d.ID[:len(id)] == id {
			if match != nil {
				return nil, fmt.Errorf("document id %q is ambiguous", id)
			}
			match = d
		}
	}
	if match == nil {
		return nil, err
	}
	return match, nil
}
