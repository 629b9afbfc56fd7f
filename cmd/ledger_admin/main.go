package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	portssvc "github.com/contazen/erp_ledger_core/internal/core/ports/services"
	"github.com/contazen/erp_ledger_core/internal/core/services"
	"github.com/contazen/erp_ledger_core/internal/dto"
	"github.com/contazen/erp_ledger_core/internal/events/kafka"
	"github.com/contazen/erp_ledger_core/internal/platform/config"
	"github.com/contazen/erp_ledger_core/internal/platform/logging"
	"github.com/contazen/erp_ledger_core/internal/repositories/database/pgsql"
	"github.com/contazen/erp_ledger_core/pkg/database"
)

// ledger_admin applies schema migrations and runs company provisioning
// tasks: seeding default account mappings and creating document number
// series.
func main() {
	seedCompany := flag.String("seed-mappings", "", "company ID to seed with default account mappings")
	seriesCompany := flag.String("series-company", "", "company ID to create a document series for")
	seriesCode := flag.String("series", "", "series code to create (e.g. FCT)")
	seriesPrefix := flag.String("series-prefix", "", "optional prefix for formatted numbers")
	seriesSuffix := flag.String("series-suffix", "", "optional suffix for formatted numbers")
	seriesYear := flag.Int("series-year", 0, "fiscal year of the series (default: current year)")
	seriesStart := flag.Int64("series-start", 1, "first number the series will hand out")
	adminUser := flag.String("user", "system", "user ID recorded on provisioned rows")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := logging.NewLogger(cfg.IsProduction)
	slog.SetDefault(logger)
	ctx := logging.IntoContext(context.Background(), logger)

	logger.Info("Running database migrations...")
	if err := database.RunMigrations(cfg.DatabaseURL, "file://migrations"); err != nil {
		logger.Error("Failed to run migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("Database schema is up to date.")

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.ClosePgxPool(dbPool)

	repos := pgsql.NewRepositoryProvider(dbPool, cfg.SequenceLockTimeout)

	// A typed nil publisher must not reach the container, so the interface
	// stays nil when Kafka is not configured.
	var audit portssvc.AuditPublisher
	if len(cfg.KafkaBrokers) > 0 {
		publisher := kafka.NewPublisher(cfg.KafkaBrokers, cfg.AuditTopic)
		defer publisher.Close()
		audit = publisher
	}

	svcs := services.NewServicesContainer(repos, audit, cfg.MappingCacheSize)

	if *seedCompany != "" {
		if err := svcs.MappingSvc.InitializeDefaultMappings(ctx, *seedCompany, *adminUser); err != nil {
			logger.Error("Failed to seed default mappings",
				slog.String("company_id", *seedCompany), slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("Default account mappings seeded", slog.String("company_id", *seedCompany))
	}

	if *seriesCompany != "" || *seriesCode != "" {
		if *seriesCompany == "" || *seriesCode == "" {
			logger.Error("Both -series-company and -series are required to create a series")
			os.Exit(1)
		}
		req := dto.CreateSequenceRequest{
			CompanyID: *seriesCompany,
			Series:    *seriesCode,
			Prefix:    *seriesPrefix,
			Suffix:    *seriesSuffix,
			Year:      *seriesYear,
			StartAt:   *seriesStart,
		}
		if err := svcs.SequenceSvc.CreateSeries(ctx, req); err != nil {
			logger.Error("Failed to create document series",
				slog.String("company_id", *seriesCompany), slog.String("series", *seriesCode),
				slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("Document series created",
			slog.String("company_id", *seriesCompany), slog.String("series", *seriesCode))
	}
}
