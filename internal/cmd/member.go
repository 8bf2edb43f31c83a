package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/meetulr/talawa-admin/internal/api"
	"github.com/meetulr/talawa-admin/internal/member"
	"github.com/meetulr/talawa-admin/internal/ui/components"
)

const memberTableWidth = 72

// MemberCmd returns the `talawa member` command group.
func MemberCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "member",
		Short: "Inspect organization members",
	}
	cmd.AddCommand(memberShowCmd())
	return cmd
}

func memberShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [member-id]",
		Short: "Print a member summary (defaults to the signed-in member)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			cfg, client, err := loadClient()
			if err != nil {
				return err
			}
			id := cfg.MemberID
			if len(args) == 1 {
				id = args[0]
			}
			if id == "" {
				return fmt.Errorf("member id required; pass one or run talawa login")
			}

			mem, err := client.GetMember(id)
			if err != nil {
				return fmt.Errorf("show member: %w", err)
			}
			fmt.Fprintln(c.OutOrStdout(), components.Table("Member", memberSummary(*mem), memberTableWidth))
			return nil
		},
	}
}

func memberSummary(mem api.Member) []components.TableRow {
	tags := make([]string, 0, len(mem.TagsAssigned))
	for _, t := range mem.TagsAssigned {
		tags = append(tags, t.Name)
	}
	tagList := "none"
	if len(tags) > 0 {
		tagList = strings.Join(tags, ", ")
	}
	return []components.TableRow{
		{Label: "Name", Value: strings.TrimSpace(mem.FirstName + " " + mem.LastName)},
		{Label: "ID", Value: mem.ID},
		{Label: "Email", Value: mem.Email},
		{Label: "Role", Value: mem.Role()},
		{Label: "Gender", Value: member.LabelFor(member.GenderOptions, mem.Gender)},
		{Label: "Birth Date", Value: member.PrettyDate(mem.BirthDate)},
		{Label: "Joined", Value: member.PrettyDate(mem.CreatedAt)},
		{Label: "Language", Value: member.LanguageName(mem.Profile.AppLanguageCode)},
		{Label: "Tags", Value: tagList},
	}
}
