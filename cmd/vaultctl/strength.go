package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/safetrace/internal/cryptox"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newStrengthCmd() *cobra.Command {
	var requireStrong bool

	cmd := &cobra.Command{
		Use:   "strength [password]",
		Short: "Score a password",
		Long: `Scores a password on a 0..5 scale and lists what would improve it.
Without an argument the password is read from the first line of stdin.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var pw string
			if len(args) == 1 {
				pw = args[0]
			} else {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("reading password: %w", err)
				}
				pw = strings.TrimRight(line, "\r\n")
			}

			s := cryptox.ScorePasswordStrength(pw)
			out := cmd.OutOrStdout()

			verdict := color.RedString("weak")
			if s.IsStrong {
				verdict = color.GreenString("strong")
			}
			fmt.Fprintf(out, "Score: %d/5 (%s)\n", s.Score, verdict)
			for _, r := range s.Reasons {
				fmt.Fprintf(out, "  - %s\n", r)
			}

			if requireStrong && !s.IsStrong {
				return fmt.Errorf("password is not strong enough")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&requireStrong, "require-strong", false, "exit with an error unless the password is strong")
	return cmd
}
