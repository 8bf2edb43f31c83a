package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/meetulr/talawa-admin/internal/api"
	"github.com/meetulr/talawa-admin/internal/tagtree"
	"github.com/meetulr/talawa-admin/internal/ui/components"
)

const tagTableWidth = 72

// TagsCmd returns the `talawa tags` command group.
func TagsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tags",
		Short: "Browse organization tags",
	}
	cmd.AddCommand(tagsListCmd())
	cmd.AddCommand(tagsAncestorsCmd())
	return cmd
}

func tagsListCmd() *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List root tags of the organization",
		RunE: func(c *cobra.Command, _ []string) error {
			cfg, client, err := loadClient()
			if err != nil {
				return err
			}
			if cfg.OrgID == "" {
				return fmt.Errorf("organization id not configured; run talawa login")
			}

			pager, err := fetchRootTags(client, cfg.OrgID, all)
			if err != nil {
				return fmt.Errorf("list tags: %w", err)
			}
			writeTagTable(c.OutOrStdout(), pager)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&all, "all", "a", false, "fetch every page")
	return cmd
}

// fetchRootTags loads the first page of root tags, or every page when all.
func fetchRootTags(client *api.Client, orgID string, all bool) (*tagtree.Pager[api.Tag], error) {
	pager := tagtree.NewPager[api.Tag](tagtree.OrgTagsPageSize)
	ticket, ok := pager.Start()
	for ok {
		page, err := client.OrganizationUserTags(orgID, ticket.Args)
		if err != nil {
			pager.Fail(ticket)
			return nil, err
		}
		pager.Apply(ticket, page)
		if !all {
			break
		}
		ticket, ok = pager.LoadMore()
	}
	return pager, nil
}

func writeTagTable(out io.Writer, pager *tagtree.Pager[api.Tag]) {
	tags := pager.Items()
	if len(tags) == 0 {
		fmt.Fprintln(out, "no tags found")
		return
	}
	cols := []components.TableColumn{
		{Header: "Name", Width: 30},
		{Header: "ID", Width: 26},
		{Header: "Subtags", Width: 8, Align: lipgloss.Right},
	}
	rows := make([][]string, 0, len(tags))
	for _, t := range tags {
		rows = append(rows, []string{t.Name, t.ID, strconv.Itoa(t.ChildCount)})
	}
	fmt.Fprintln(out, components.TableGrid(cols, rows, tagTableWidth))
	if pager.HasMore() {
		fmt.Fprintf(out, "showing %d of %d, use --all for the rest\n", pager.Len(), pager.Total())
	}
}

func tagsAncestorsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ancestors <tag-id>",
		Short: "Print the chain from the root down to a tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			_, client, err := loadClient()
			if err != nil {
				return err
			}
			chain, err := client.UserTagAncestors(args[0])
			if err != nil {
				return fmt.Errorf("tag ancestors: %w", err)
			}
			if len(chain) == 0 {
				return fmt.Errorf("tag %s not found", args[0])
			}
			out := c.OutOrStdout()
			for depth, t := range chain {
				fmt.Fprintf(out, "%s%s  (%s)\n", strings.Repeat("  ", depth), components.SanitizeOneLine(t.Name), t.ID)
			}
			return nil
		},
	}
}
