package commands

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	jwtmw "aqariy_web/internal/platform/jwt"
)

func tokenCmd() *cobra.Command {
	var (
		subject string
		ttl     time.Duration
		secret  string
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Print a signed admin JWT for the /admin endpoints",
		RunE: func(cmd *cobra.Command, args []string) error {
			if secret == "" {
				secret = os.Getenv(jwtmw.EnvKeyJWTSecret)
			}
			if secret == "" {
				return errors.New("JWT_SECRET is not set (use --secret or the environment)")
			}
			tok, err := jwtmw.NewGenerator(secret, ttl).GenerateToken(subject, jwtmw.RoleAdmin)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "admin", "token subject")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	cmd.Flags().StringVar(&secret, "secret", "", "HMAC secret (default $JWT_SECRET)")
	return cmd
}
