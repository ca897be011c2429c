package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	flag "github.com/spf13/pflag"

	"github.com/nettbureau/pipedrive-leads/internal/api"
	"github.com/nettbureau/pipedrive-leads/internal/client"
	"github.com/nettbureau/pipedrive-leads/internal/client/pipedrive"
	"github.com/nettbureau/pipedrive-leads/internal/config"
	"github.com/nettbureau/pipedrive-leads/internal/logging"
	"github.com/nettbureau/pipedrive-leads/internal/models"
	"github.com/nettbureau/pipedrive-leads/internal/repository"
	"github.com/nettbureau/pipedrive-leads/internal/service"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

// run returns the process exit code: 0 on success, 1 on any failure.
func run(args []string, out io.Writer) int {
	if err := execute(args, out); err != nil {
		fmt.Fprintln(out, "Error:", err)
		return 1
	}
	return 0
}

func execute(args []string, out io.Writer) error {
	flags := flag.NewFlagSet("pipedrive-leads", flag.ContinueOnError)
	flags.SetOutput(out)
	envFile := flags.String("env-file", ".env", "dotenv file to load before reading the environment")
	serve := flags.Bool("serve", false, "run the HTTP lead intake instead of submitting the example lead")
	addr := flags.String("addr", "", "HTTP listen address (overrides HTTP_ADDR)")
	dbPath := flags.String("db", "", "sqlite submission ledger path (overrides DB_PATH)")
	if err := flags.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*envFile)
	if err != nil {
		return err
	}
	if *addr != "" {
		cfg.HTTPAddr = *addr
	}
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, closer := logging.New(cfg.LogDir)
	defer closer.Close()

	opts := []pipedrive.Option{pipedrive.WithTimeout(cfg.RequestTimeout)}
	if cfg.BaseUrl != "" {
		opts = append(opts, pipedrive.WithBaseUrl(cfg.BaseUrl))
	}
	crmClient := pipedrive.NewPipedriveClient(cfg.ApiToken, cfg.Domain, opts...)

	if *serve {
		return serveHTTP(cfg, crmClient, logger)
	}
	return submitExample(context.Background(), crmClient, logger, out)
}

func exampleLead() models.LeadInput {
	propertySize := 160.0
	return models.LeadInput{
		Name:         "Ola Nordmann",
		Phone:        "12345678",
		Email:        "ola.nordmannn@online.no",
		HousingType:  "Enebolig",
		PropertySize: &propertySize,
		DealType:     "Spotpris",
		ContactType:  "Privat",
	}
}

func submitExample(ctx context.Context, crmClient client.CRMClient, logger service.Logger, out io.Writer) error {
	leadService := service.NewLeadService(crmClient, logger)

	result, err := leadService.CreateLead(ctx, exampleLead())
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "Success! Created:")
	fmt.Fprintln(out, "Organization ID:", result.OrganizationId)
	fmt.Fprintln(out, "Person ID:", result.PersonId)
	fmt.Fprintln(out, "Deal ID:", result.DealId)
	return nil
}

func serveHTTP(cfg *config.Config, crmClient client.CRMClient, logger *slog.Logger) error {
	db, err := repository.InitDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("init database: %w", err)
	}
	defer db.Close()

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: api.SetupRouter(db, crmClient, logger),
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		logger.Info("shutting down server")
		if err := srv.Shutdown(context.Background()); err != nil {
			logger.Error("server shutdown error", "error", err)
		}
	}()

	logger.Info("starting lead intake", "addr", cfg.HTTPAddr, "domain", cfg.Domain)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listen: %w", err)
	}
	return nil
}
