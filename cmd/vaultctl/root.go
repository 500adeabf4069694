package main

import (
	"github.com/dmitrijs2005/safetrace/internal/buildinfo"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "vaultctl",
		Short: "SafeTrace vault utilities",
		Long: `vaultctl bundles small helpers around the SafeTrace vault:

  generate   Print random passwords
  strength   Score a password
  token      Issue an access token for the vault server (development)`,
		Version:       buildinfo.Version(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newGenerateCmd())
	root.AddCommand(newStrengthCmd())
	root.AddCommand(newTokenCmd())
	return root
}
