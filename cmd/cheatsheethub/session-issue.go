package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/cheatsheethub/cheatsheethub/pkg/config"
	"github.com/cheatsheethub/cheatsheethub/pkg/session"
)

// sessionIssueCmd represents the session issue command
var sessionIssueCmd = &cobra.Command{
	Use:   "issue",
	Short: "Issue a session token for an editor",
	Long: `Issue a signed session token with the configured session secret.

The token can be exchanged for a session cookie at /auth/callback?token=...
In session token mode, pass the editor's CMS token with --cms-token.

Example:
  cheatsheethub session issue --user 1f6a... --name "Ada"
  cheatsheethub session issue --user 1f6a... --cms-token "$TOKEN" --ttl 1h`,
	Run: func(cmd *cobra.Command, args []string) {
		req := issueRequest{}
		req.UserID, _ = cmd.Flags().GetString("user")
		req.Name, _ = cmd.Flags().GetString("name")
		req.Email, _ = cmd.Flags().GetString("email")
		req.CMSToken, _ = cmd.Flags().GetString("cms-token")
		req.TTL, _ = cmd.Flags().GetDuration("ttl")

		cfg, err := loadConfig()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		if err := issueSession(os.Stdout, cfg, req); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to issue session: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	sessionCmd.AddCommand(sessionIssueCmd)
	sessionIssueCmd.Flags().StringP("user", "u", "", "CMS user id (required)")
	sessionIssueCmd.Flags().String("name", "", "display name")
	sessionIssueCmd.Flags().String("email", "", "email address")
	sessionIssueCmd.Flags().String("cms-token", "", "CMS access token carried by the session")
	sessionIssueCmd.Flags().Duration("ttl", 0, "token lifetime (default: session_ttl_hours)")
	_ = sessionIssueCmd.MarkFlagRequired("user")
}

type issueRequest struct {
	UserID   string
	Name     string
	Email    string
	CMSToken string
	TTL      time.Duration
}

// issueSession writes a signed token for req to w.
func issueSession(w io.Writer, cfg *config.Config, req issueRequest) error {
	if cfg.SessionSecret == "" {
		return errors.New("CHEATSHEETHUB_SESSION_SECRET is required")
	}

	sessions, err := session.NewManager(session.Config{
		Secret: []byte(cfg.SessionSecret),
		Issuer: cfg.SessionIssuer,
		TTL:    cfg.SessionTTL(),
	})
	if err != nil {
		return err
	}

	s := session.Session{
		UserID:   req.UserID,
		Name:     req.Name,
		Email:    req.Email,
		CMSToken: req.CMSToken,
	}
	if req.TTL > 0 {
		s.ExpiresAt = time.Now().Add(req.TTL)
	}

	token, _, err := sessions.Issue(s)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, token)
	return nil
}
