package main

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tesu-tesu/Antrian-Sehat---Backend/cmd/bootstrap"
	"github.com/tesu-tesu/Antrian-Sehat---Backend/internal/delivery/dto"
	"github.com/tesu-tesu/Antrian-Sehat---Backend/internal/domain/entity"
	"github.com/tesu-tesu/Antrian-Sehat---Backend/internal/infrastructure/database"
	"github.com/tesu-tesu/Antrian-Sehat---Backend/pkg/validator"
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Manage administrator accounts",
}

var adminCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a Super Admin account",
	Long: `Create a Super Admin account.

The account goes through the same validation as POST /api/v1/users, so the
email must be unused and the phone must be 8 to 13 digits.

Example:
  antrian admin create --name "Super Admin" --email admin@antrian.id \
    --password secret123 --phone 081234567890`,
	RunE: func(cmd *cobra.Command, args []string) error {
		req := &dto.UserRequest{Role: entity.RoleSuperAdmin}
		req.Name, _ = cmd.Flags().GetString("name")
		req.Email, _ = cmd.Flags().GetString("email")
		req.Password, _ = cmd.Flags().GetString("password")
		req.Phone, _ = cmd.Flags().GetString("phone")

		cfg, log, err := bootstrap.Load()
		if err != nil {
			return err
		}

		db, err := database.NewPostgresConnection(cfg.DB, cfg.App.Env)
		if err != nil {
			return err
		}
		if sqlDB, err := db.DB(); err == nil {
			defer sqlDB.Close()
		}

		user, err := bootstrap.NewUserUsecase(cfg, log, db).Create(cmd.Context(), req)
		if err != nil {
			var verr *validator.ValidationError
			if errors.As(err, &verr) {
				return fmt.Errorf("invalid account:\n%s", formatFieldErrors(verr.Errors))
			}
			return fmt.Errorf("failed to create admin: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Created Super Admin %s (id %d)\n", user.Email, user.ID)
		return nil
	},
}

func formatFieldErrors(errs map[string][]string) string {
	fields := make([]string, 0, len(errs))
	for field := range errs {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var b strings.Builder
	for _, field := range fields {
		for _, msg := range errs[field] {
			fmt.Fprintf(&b, "  %s: %s\n", field, msg)
		}
	}
	return b.String()
}

func init() {
	adminCreateCmd.Flags().String("name", "Super Admin", "Display name")
	adminCreateCmd.Flags().String("email", "", "Login email")
	adminCreateCmd.Flags().String("password", "", "Login password (min 6 characters)")
	adminCreateCmd.Flags().String("phone", "", "Phone number, 8 to 13 digits")
	adminCreateCmd.MarkFlagRequired("email")
	adminCreateCmd.MarkFlagRequired("password")
	adminCreateCmd.MarkFlagRequired("phone")

	adminCmd.AddCommand(adminCreateCmd)
	rootCmd.AddCommand(adminCmd)
}
