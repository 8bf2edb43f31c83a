package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/meetulr/talawa-admin/internal/api"
	"github.com/meetulr/talawa-admin/internal/config"
	"github.com/meetulr/talawa-admin/internal/logging"
	"github.com/meetulr/talawa-admin/internal/member"
	"github.com/meetulr/talawa-admin/internal/store"
)

// RunInteractiveLogin prompts for the server, token, organization and member,
// checks the member can be loaded, then persists config and seeds the cache.
func RunInteractiveLogin(in io.Reader, out io.Writer) error {
	reader := bufio.NewReader(in)
	ask := func(prompt string) string {
		fmt.Fprint(out, prompt)
		line, _ := reader.ReadString('\n')
		return strings.TrimSpace(line)
	}

	apiURL := ask(fmt.Sprintf("api url [%s]: ", api.DefaultBaseURL))
	if apiURL == "" {
		apiURL = api.DefaultBaseURL
	}
	token := ask("token: ")
	if token == "" {
		return fmt.Errorf("token is required")
	}
	orgID := ask("organization id: ")
	if orgID == "" {
		return fmt.Errorf("organization id is required")
	}
	memberID := ask("member id: ")
	if memberID == "" {
		return fmt.Errorf("member id is required")
	}

	cfg := &config.Config{
		APIURL:   apiURL,
		APIKey:   token,
		OrgID:    orgID,
		MemberID: memberID,
	}
	client := NewClient(cfg)
	client.SetLogger(logging.Nop())
	mem, err := client.GetMember(memberID)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	cfg.Username = strings.TrimSpace(mem.FirstName + " " + mem.LastName)

	if err := cfg.Save(); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	if err := seedCache(*mem); err != nil {
		return err
	}

	fmt.Fprintf(out, "logged in as %s\n", cfg.Username)
	fmt.Fprintf(out, "config saved to %s\n", config.Path())
	return nil
}

// seedCache records the signed-in member in the local cache.
func seedCache(mem api.Member) error {
	cache, err := OpenCache()
	if err != nil {
		return err
	}
	defer cache.Close()

	items := member.FromMember(mem).CacheItems()
	items[store.KeyID] = mem.ID
	if err := cache.SetItems(context.Background(), items); err != nil {
		return fmt.Errorf("write cache: %w", err)
	}
	return nil
}

// LoginCmd returns the `talawa login` command.
func LoginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Connect to a Talawa API server",
		RunE: func(c *cobra.Command, _ []string) error {
			return RunInteractiveLogin(os.Stdin, c.OutOrStdout())
		},
	}
}
