package main

import (
	"fmt"

	"github.com/dmitrijs2005/safetrace/internal/cryptox"
	"github.com/spf13/cobra"
)

func newGenerateCmd() *cobra.Command {
	var (
		length int
		count  int
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Print random passwords",
		Long: `Prints passwords drawn from crypto/rand. Each password of 4 or more
characters contains an uppercase letter, a lowercase letter, a digit and a symbol.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if length <= 0 {
				return fmt.Errorf("length must be positive, got %d", length)
			}
			if count <= 0 {
				return fmt.Errorf("count must be positive, got %d", count)
			}
			for i := 0; i < count; i++ {
				pw, err := cryptox.GenerateSecurePassword(length)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), pw)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&length, "length", "n", cryptox.DefaultPasswordLength, "password length")
	cmd.Flags().IntVarP(&count, "count", "c", 1, "how many passwords to print")
	return cmd
}
