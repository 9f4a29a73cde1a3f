package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/energyportfolio/crm-service/internal/auth"
	"github.com/energyportfolio/crm-service/internal/config"
	"github.com/energyportfolio/crm-service/internal/db"
	httphandler "github.com/energyportfolio/crm-service/internal/http"
	"github.com/energyportfolio/crm-service/internal/http/middleware"
	"github.com/energyportfolio/crm-service/internal/importer"
	"github.com/energyportfolio/crm-service/internal/logger"
	"github.com/energyportfolio/crm-service/internal/mail"
	"github.com/energyportfolio/crm-service/internal/pdf"
	"github.com/energyportfolio/crm-service/internal/repository"
	"github.com/energyportfolio/crm-service/internal/service"

	excelgen "github.com/energyportfolio/crm-service/internal/excel"
)

func main() {
	root := &cobra.Command{
		Use:           "crm-service",
		Short:         "Energy brokerage back-office CRM",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(serveCmd(), importCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			log := logger.New(cfg)

			database, err := db.New(cfg, log)
			if err != nil {
				log.Error().Err(err).Msg("failed to connect database")
				return err
			}

			accessTTL, err := time.ParseDuration(cfg.Auth.AccessTTL)
			if err != nil {
				return fmt.Errorf("parse JWT_ACCESS_TTL: %w", err)
			}
			tokens := auth.NewManager(cfg.Auth.AccessSecret, accessTTL)
			mailer := mail.NewMailer(cfg.Mail, log)

			userRepo := repository.NewUserRepository(database)
			clientRepo := repository.NewClientRepository(database)
			contractRepo := repository.NewContractRepository(database)
			commissionRepo := repository.NewCommissionRepository(database)
			objectionRepo := repository.NewObjectionRepository(database)
			contactRepo := repository.NewContactRepository(database)
			utilityRepo := repository.NewUtilityRepository(database)
			reportRepo := repository.NewReportRepository(database)

			handler := httphandler.NewHandler(
				service.NewUserService(userRepo, tokens, mailer, log),
				service.NewClientService(clientRepo, log),
				service.NewContractService(contractRepo, clientRepo, commissionRepo, utilityRepo, log),
				service.NewCommissionService(commissionRepo, clientRepo, log),
				service.NewObjectionService(objectionRepo, log),
				service.NewContactService(contactRepo, log),
				service.NewExportService(reportRepo, excelgen.NewGenerator(), pdf.NewGenerator(), log),
				service.NewMeterReadingService(contractRepo, utilityRepo, mailer, log),
				log,
			)

			router := httphandler.NewRouter(handler, middleware.Auth(tokens), cfg.Environment, cfg.HTTP.AllowedOrigins)

			addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
			log.Info().Str("addr", addr).Msg("starting crm service")
			return router.Run(addr)
		},
	}
}

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Bulk data imports",
	}
	cmd.AddCommand(importContractsCmd())
	return cmd
}

func importContractsCmd() *cobra.Command {
	var accountManager string

	cmd := &cobra.Command{
		Use:   "contracts <file.xlsx>",
		Short: "Import contracts from a legacy workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			log := logger.New(cfg)

			database, err := db.New(cfg, log)
			if err != nil {
				return fmt.Errorf("connect database: %w", err)
			}

			im := importer.New(
				repository.NewContractRepository(database),
				repository.NewClientRepository(database),
				repository.NewUtilityRepository(database),
				repository.NewUserRepository(database),
				log,
			)

			summary, err := im.Run(cmd.Context(), args[0], accountManager)
			if err != nil {
				return err
			}

			log.Info().
				Int("created", summary.Created).
				Int("updated", summary.Updated).
				Int("failed", summary.Failed).
				Msg("import finished")
			if summary.ErrorFile != "" {
				fmt.Fprintf(os.Stderr, "errors encountered during import, check %s for details\n", summary.ErrorFile)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&accountManager, "account-manager", "", "email of the account manager assigned to clients created during import")
	_ = cmd.MarkFlagRequired("account-manager")
	return cmd
}
