package cli

import (
	"fmt"
	"os"

	"github.com/cmlabs-hris/timesheet-auditor/internal/config"
	"github.com/cmlabs-hris/timesheet-auditor/internal/domain/auditor"
	"github.com/cmlabs-hris/timesheet-auditor/internal/pkg/database"
	"github.com/cmlabs-hris/timesheet-auditor/internal/pkg/jwt"
	"github.com/cmlabs-hris/timesheet-auditor/internal/repository/postgresql"
	serviceAuth "github.com/cmlabs-hris/timesheet-auditor/internal/service/auth"
	"github.com/spf13/cobra"
)

const passwordEnv = "AUDITOR_PASSWORD"

type userAddOptions struct {
	email string
	name  string
}

func newUserAddCmd() *cobra.Command {
	opts := userAddOptions{}

	cmd := &cobra.Command{
		Use:   "useradd",
		Short: "Create an auditor account in the database",
		Long:  "Useradd creates an auditor that can log in to the API. The password is read from " + passwordEnv + ".",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUserAdd(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.email, "email", "", "auditor email")
	cmd.Flags().StringVar(&opts.name, "name", "", "auditor display name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func runUserAdd(cmd *cobra.Command, opts userAddOptions) error {
	req := auditor.CreateAuditorRequest{
		Email:    opts.email,
		Name:     opts.name,
		Password: os.Getenv(passwordEnv),
	}
	if err := req.Validate(); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.ValidateDatabase(); err != nil {
		return err
	}

	db, err := database.NewPostgreSQLDB(cmd.Context(), cfg.DatabaseURL(), database.PoolConfig{MaxConns: 1})
	if err != nil {
		return err
	}
	defer db.Close()

	// Token settings are irrelevant for account creation.
	authService := serviceAuth.NewAuthService(
		postgresql.RunInTx(db),
		postgresql.NewAuditorRepository(db),
		jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration),
		postgresql.NewJWTRepository(db),
	)

	created, err := authService.CreateAuditor(cmd.Context(), req)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%s)\n", Success("created auditor"), created.Email, created.ID)
	return nil
}
