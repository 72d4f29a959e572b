package main

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"carlot/internal/app/accounts"
	"carlot/internal/app/favorites"
	"carlot/internal/auth"
	"carlot/internal/store"
)

var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Recompute listing like counts from the favorites ledger",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, db, err := setup(cmd.Context())
		if err != nil {
			return err
		}
		defer db.Close()

		fixed, err := favorites.New(store.New(db)).Reconcile(cmd.Context())
		if err != nil {
			return err
		}
		log.Info().Int64("corrected", fixed).Msg("like counts reconciled")
		fmt.Fprintf(cmd.OutOrStdout(), "corrected %d listings\n", fixed)
		return nil
	},
}

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Manage dealer and admin accounts",
}

var (
	accountEmail    string
	accountPassword string
	accountRole     string
)

var adminCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a dealer or admin account",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, db, err := setup(cmd.Context())
		if err != nil {
			return err
		}
		defer db.Close()

		svc := accounts.New(store.New(db), auth.NewIssuer(cfg.Security.JWTSecret, cfg.Security.TokenTTL))
		account, err := svc.Register(cmd.Context(), accounts.Registration{
			Email:    accountEmail,
			Password: accountPassword,
			Role:     strings.ToUpper(accountRole),
		})
		if err != nil {
			return fmt.Errorf("create account: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "created %s account %d for %s\n", account.Role, account.ID, account.Email)
		return nil
	},
}

func init() {
	adminCreateCmd.Flags().StringVar(&accountEmail, "email", "", "account email")
	adminCreateCmd.Flags().StringVar(&accountPassword, "password", "", "account password")
	adminCreateCmd.Flags().StringVar(&accountRole, "role", store.RoleDealer, "ADMIN or DEALER")
	_ = adminCreateCmd.MarkFlagRequired("email")
	_ = adminCreateCmd.MarkFlagRequired("password")
	adminCmd.AddCommand(adminCreateCmd)
}
