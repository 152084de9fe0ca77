// Command processinvoices runs the payment reconciliation batch once and
// exits. It is intended for a nightly cron slot; per-record failures are
// counted in the printed summary and do not fail the run.
package main

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/sjwaight/gu/internal/batch"
	"github.com/sjwaight/gu/internal/config"
	"github.com/sjwaight/gu/internal/infra"
	"github.com/sjwaight/gu/internal/model"
	"github.com/sjwaight/gu/internal/repository"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	mailer := infra.NewMailer(cfg)
	processor := batch.New(batch.Config{
		Articles:    repository.NewArticleRepository(db),
		Commissions: repository.NewCommissionRepository(db),
		Invoices:    repository.NewInvoiceRepository(db),
		Mailer:      mailer,
		RenderPDF: func(inv *model.Invoice, commissions []model.Commission) (string, error) {
			return infra.GenerateInvoicePDF(cfg.SiteName, cfg.InvoicePDFPath, inv, commissions)
		},
		EditorEmail: cfg.EditorEmail,
		SiteName:    cfg.SiteName,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	summary, err := processor.Run(ctx)
	if err != nil {
		log.Error().Err(err).Msg("batch finished with step errors")
	}

	out, _ := json.MarshalIndent(summary, "", "  ")
	os.Stdout.Write(append(out, '\n'))

	if err != nil {
		os.Exit(1)
	}
}
