package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/noteforge/joplin-sync-go/internal/config"
	"github.com/noteforge/joplin-sync-go/internal/filedriver/joplinserver"
	"github.com/noteforge/joplin-sync-go/internal/synctarget"
)

func newLoginCmd() *cobra.Command {
	var host, email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Configure and verify a Joplin Server sync target",
		Long: `Saves Joplin Server credentials (email/password session login, not
OAuth) and verifies the remote describes a sync target this core supports,
bootstrapping info.json on a pristine remote.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLogin(cmd, host, email, password)
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "Joplin Server base URL")
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password (prompted if omitted)")

	cmd.MarkFlagRequired("host")
	cmd.MarkFlagRequired("email")

	return cmd
}

func runLogin(cmd *cobra.Command, host, email, password string) error {
	cc := mustCLIContext(cmd.Context())
	ctx := cmd.Context()

	if password == "" {
		p, err := promptPassword()
		if err != nil {
			return fmt.Errorf("reading password: %w", err)
		}

		password = p
	}

	httpClient, err := newNetworkClient(cc.Config.NetworkConfig)
	if err != nil {
		return err
	}

	client := joplinserver.NewClient(joplinserver.Config{
		Host:     host,
		Email:    email,
		Password: password,
	}, httpClient, cc.Logger, "joplin-sync-go/"+version)

	if err := client.Login(ctx); err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	if _, err := synctarget.Verify(ctx, client); err != nil {
		return fmt.Errorf("sync target check failed: %w", err)
	}

	st, err := openStore(ctx, cc.Logger)
	if err != nil {
		return err
	}
	defer st.Close()

	target := config.NewJoplinServerConfig(host, email, password)
	if err := config.SaveSyncTarget(ctx, st, target); err != nil {
		return fmt.Errorf("saving credentials: %w", err)
	}

	cc.Statusf("Logged in to %s as %s\n", host, email)

	return nil
}

// promptPassword reads a password line from stdin. Terminal echo
// suppression is a nice-to-have this core doesn't implement — pass
// --password on a trusted shell history instead if that matters.
func promptPassword() (string, error) {
	fmt.Print("Password: ")

	reader := bufio.NewReader(os.Stdin)

	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}

	return trimNewline(line), nil
}

func trimNewline(s string) string {
	for len(s) > 0 && (s[len(s)-1] == '\n' || s[len(s)-1] == '\r') {
		s = s[:len(s)-1]
	}

	return s
}
