package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/menuglobal/menu-admin/internal/core/domain"
	"github.com/menuglobal/menu-admin/internal/core/ports"
)

var ownerFlags struct {
	email    string
	name     string
	password string
}

// createOwnerCmd bootstraps the first platform owner; every other account is
// created through the API by an owner.
var createOwnerCmd = &cobra.Command{
	Use:   "create-owner",
	Short: "Creates a platform owner account",
	Long: `Creates a platform owner account. Usage:

	menuadmin create-owner --email ana@example.com --name "Ana" --password '...'
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if ownerFlags.email == "" || ownerFlags.password == "" {
			return errors.New("--email and --password are required")
		}

		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close()

		identity, err := a.auth.CreateIdentity(cmd.Context(), ports.CreateIdentityInput{
			Email:    ownerFlags.email,
			Name:     ownerFlags.name,
			Password: ownerFlags.password,
			Role:     domain.RoleOwner,
		})
		if err != nil {
			return err
		}
		a.log.Info().Str("identity_id", identity.ID).Str("email", identity.Email).Msg("owner created")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(createOwnerCmd)

	createOwnerCmd.Flags().StringVar(&ownerFlags.email, "email", "", "owner email address")
	createOwnerCmd.Flags().StringVar(&ownerFlags.name, "name", "", "display name")
	createOwnerCmd.Flags().StringVar(&ownerFlags.password, "password", "", "initial password (min 8 characters)")
}
