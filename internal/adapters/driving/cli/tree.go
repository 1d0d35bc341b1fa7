package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var treeCmd = &cobra.Command{
	Use:   "tree <connector-id> [parent-internal-id]",
	Short: "List the browsable nodes of a connector's hierarchy",
	Long: `Lists the folders and pages under a scope of the synchronised
hierarchy. Without a parent id the root scope is listed. Expandable
nodes can be descended into by passing their internal id.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runTree,
}

var parentsCmd = &cobra.Command{
	Use:   "parents <connector-id> <configuration-id> <url>",
	Short: "Print the ancestor chain of a URL",
	Args:  cobra.ExactArgs(3),
	RunE:  runParents,
}

func init() {
	rootCmd.AddCommand(treeCmd, parentsCmd)
}

func runTree(cmd *cobra.Command, args []string) error {
	if permissionTree == nil {
		return errors.New("permission tree service not configured")
	}

	var parentID *string
	if len(args) > 1 {
		parentID = &args[1]
	}

	nodes, err := permissionTree.Children(context.Background(), args[0], parentID)
	if err != nil {
		return fmt.Errorf("listing nodes: %w", err)
	}
	if len(nodes) == 0 {
		cmd.Println("No nodes in this scope.")
		return nil
	}

	for _, node := range nodes {
		marker := " "
		if node.Expandable {
			marker = "+"
		}
		cmd.Printf("%s %-8s %-40s %s\n", marker, node.Type, node.Title, node.InternalID)
	}
	return nil
}

func runParents(cmd *cobra.Command, args []string) error {
	if ancestry == nil {
		return errors.New("ancestry service not configured")
	}

	chain, err := ancestry.Parents(context.Background(), args[0], args[1], args[2])
	if err != nil {
		return fmt.Errorf("resolving parents: %w", err)
	}

	for i, url := range chain {
		cmd.Printf("%*s%s\n", i*2, "", url)
	}
	return nil
}
