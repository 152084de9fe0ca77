// Package batch runs the commission/invoice reconciliation job. Every step is
// idempotent and independently re-runnable: the guards live in the data
// (null-timestamp checks, the commissions_processed flag), never in process
// memory, so a crash mid-run loses nothing — the next run picks up where this
// one stopped.
package batch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/sjwaight/gu/internal/model"
	"github.com/sjwaight/gu/internal/payment"
	"github.com/sjwaight/gu/internal/repository"
)

// Mailer is the outbound notification service. A send failure is returned as
// an error; the processor logs it and leaves the record unmarked so the next
// run retries (at-least-once delivery).
type Mailer interface {
	Send(to []string, subject, body, attachmentPath string) error
}

// PDFRenderer renders a remittance advice for a paid invoice and returns the
// file path. A nil renderer (or an error) degrades to an email without
// attachment — the PDF is a derived artifact, never a reason to fail the step.
type PDFRenderer func(inv *model.Invoice, commissions []model.Commission) (string, error)

// Summary is the structured result of one reconciliation run.
type Summary struct {
	CommissionsGenerated int `json:"commissions_generated"`
	InvoicesCreated      int `json:"invoices_created"`
	CommissionsAttached  int `json:"commissions_attached"`
	ApprovalNoticesSent  int `json:"approval_notices_sent"`
	PaymentNoticesSent   int `json:"payment_notices_sent"`
	Failures             int `json:"failures"`
}

// Processor drives the four reconciliation steps. Per-record failures are
// logged and counted, never propagated: one author's bad email address must
// not stall anyone else's payment.
type Processor struct {
	articles    repository.ArticleRepository
	commissions repository.CommissionRepository
	invoices    repository.InvoiceRepository
	mailer      Mailer
	renderPDF   PDFRenderer
	editorEmail string
	siteName    string
	now         func() time.Time
}

// Config wires the processor's collaborators.
type Config struct {
	Articles    repository.ArticleRepository
	Commissions repository.CommissionRepository
	Invoices    repository.InvoiceRepository
	Mailer      Mailer
	RenderPDF   PDFRenderer
	EditorEmail string
	SiteName    string
	// Now is overridable in tests; defaults to time.Now.
	Now func() time.Time
}

func New(cfg Config) *Processor {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Processor{
		articles:    cfg.Articles,
		commissions: cfg.Commissions,
		invoices:    cfg.Invoices,
		mailer:      cfg.Mailer,
		renderPDF:   cfg.RenderPDF,
		editorEmail: cfg.EditorEmail,
		siteName:    cfg.SiteName,
		now:         now,
	}
}

// Run executes all four steps in order. It always returns a summary; the
// error is non-nil only when a step could not even list its work, and even
// then the remaining steps still run.
func (p *Processor) Run(ctx context.Context) (Summary, error) {
	var sum Summary
	var firstErr error

	for _, step := range []struct {
		name string
		fn   func(context.Context, *Summary) error
	}{
		{"generate_commissions", p.generateCommissions},
		{"ensure_invoices", p.ensureInvoices},
		{"notify_approvals", p.notifyApprovals},
		{"notify_payments", p.notifyPayments},
	} {
		if err := step.fn(ctx, &sum); err != nil {
			log.Error().Err(err).Str("step", step.name).Msg("reconciliation step failed")
			sum.Failures++
			if firstErr == nil {
				firstErr = fmt.Errorf("%s: %w", step.name, err)
			}
		}
	}

	log.Info().
		Int("commissions_generated", sum.CommissionsGenerated).
		Int("invoices_created", sum.InvoicesCreated).
		Int("commissions_attached", sum.CommissionsAttached).
		Int("approval_notices_sent", sum.ApprovalNoticesSent).
		Int("payment_notices_sent", sum.PaymentNoticesSent).
		Int("failures", sum.Failures).
		Msg("reconciliation run complete")
	return sum, firstErr
}

// generateCommissions creates one zero-amount commission per freelance author
// slot of every published article not yet processed. Staff authors are
// bylined but not paid. The article-level override can force processing on or
// off regardless of the freelancer check.
func (p *Processor) generateCommissions(ctx context.Context, sum *Summary) error {
	articles, err := p.articles.ListAwaitingCommissions(ctx, p.now())
	if err != nil {
		return err
	}

	for i := range articles {
		article := &articles[i]
		if err := p.generateForArticle(ctx, article, sum); err != nil {
			log.Error().Err(err).Str("article", article.Slug).Msg("commission generation failed")
			sum.Failures++
		}
	}
	return nil
}

func (p *Processor) generateForArticle(ctx context.Context, article *model.Article, sum *Summary) error {
	if article.OverrideCommissions == model.OverrideCommissionsNoProcess {
		return p.articles.MarkCommissionsProcessed(ctx, article.ID)
	}

	// Manually created commissions count: don't generate a second set.
	exists, err := p.commissions.ExistsForArticle(ctx, article.ID)
	if err != nil {
		return err
	}
	if exists {
		return p.articles.MarkCommissionsProcessed(ctx, article.ID)
	}

	force := article.OverrideCommissions == model.OverrideCommissionsProcess
	now := p.now()
	for _, author := range article.AuthorSlots() {
		if !author.Freelancer && !force {
			continue
		}
		articleID := article.ID
		authorID := author.ID
		generated := now
		c := &model.Commission{
			ID:            uuid.New(),
			AuthorID:      &authorID,
			ArticleID:     &articleID,
			SysGenerated:  true,
			DateGenerated: &generated,
		}
		if err := p.commissions.Create(ctx, c); err != nil {
			return err
		}
		sum.CommissionsGenerated++
	}
	return p.articles.MarkCommissionsProcessed(ctx, article.ID)
}

// ensureInvoices attaches every approved, unbilled commission to its author's
// open invoice, creating the invoice when the author has none. A commission
// is attached exactly once and never reassigned.
func (p *Processor) ensureInvoices(ctx context.Context, sum *Summary) error {
	unbilled, err := p.commissions.ListApprovedUnbilled(ctx)
	if err != nil {
		return err
	}

	byAuthor := make(map[uuid.UUID][]model.Commission)
	var order []uuid.UUID
	for _, c := range unbilled {
		if c.AuthorID == nil {
			log.Warn().Str("commission", c.ID.String()).Msg("approved commission has no author, skipping")
			continue
		}
		if _, seen := byAuthor[*c.AuthorID]; !seen {
			order = append(order, *c.AuthorID)
		}
		byAuthor[*c.AuthorID] = append(byAuthor[*c.AuthorID], c)
	}

	for _, authorID := range order {
		commissions := byAuthor[authorID]
		if err := p.billAuthor(ctx, authorID, commissions, sum); err != nil {
			log.Error().Err(err).Str("author", authorID.String()).Msg("invoice creation failed")
			sum.Failures++
		}
	}
	return nil
}

func (p *Processor) billAuthor(ctx context.Context, authorID uuid.UUID, commissions []model.Commission, sum *Summary) error {
	inv, err := p.invoices.FindOpenByAuthor(ctx, authorID)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		author := commissions[0].Author
		if author == nil {
			return fmt.Errorf("author %s not loaded on commission", authorID)
		}
		inv, err = p.invoices.CreateForAuthor(ctx, author)
		if err != nil {
			return err
		}
		sum.InvoicesCreated++
	case err != nil:
		return fmt.Errorf("find open invoice for author %s: %w", authorID, err)
	}

	for i := range commissions {
		c := commissions[i]
		invoiceID := inv.ID
		c.InvoiceID = &invoiceID
		if err := p.commissions.Update(ctx, &c); err != nil {
			return err
		}
		sum.CommissionsAttached++
	}
	return nil
}

// notifyApprovals emails each author whose commission gained a fund since the
// last run. The null DateNotifiedApproved is the idempotence key: it is
// stamped only after a successful send, so a failed send retries next run.
func (p *Processor) notifyApprovals(ctx context.Context, sum *Summary) error {
	pending, err := p.commissions.ListUnnotifiedApproved(ctx)
	if err != nil {
		return err
	}

	for i := range pending {
		c := &pending[i]
		if err := p.notifyApproval(ctx, c); err != nil {
			log.Error().Err(err).Str("commission", c.ID.String()).Msg("approval notification failed")
			sum.Failures++
			continue
		}
		sum.ApprovalNoticesSent++
	}
	return nil
}

func (p *Processor) notifyApproval(ctx context.Context, c *model.Commission) error {
	author := c.Author
	if author == nil && c.Invoice != nil {
		author = c.Invoice.Author
	}
	if author == nil || author.Email == "" {
		return fmt.Errorf("commission %s has no notifiable author", c.ID)
	}

	subject := fmt.Sprintf("%s: payment approved for your work", p.siteName)
	body := approvalBody(p.siteName, author, c)
	if err := p.mailer.Send([]string{author.Email, p.editorEmail}, subject, body, ""); err != nil {
		return err
	}

	notified := p.now()
	c.DateNotifiedApproved = &notified
	return p.commissions.Update(ctx, c)
}

// notifyPayments recomputes the totals of every freshly paid invoice, renders
// the remittance advice and emails the author. Same stamp-after-send contract
// as notifyApprovals.
func (p *Processor) notifyPayments(ctx context.Context, sum *Summary) error {
	paid, err := p.invoices.ListPaidUnnotified(ctx)
	if err != nil {
		return err
	}

	for i := range paid {
		inv := &paid[i]
		if err := p.notifyPayment(ctx, inv); err != nil {
			log.Error().Err(err).Str("invoice", inv.Reference()).Msg("payment notification failed")
			sum.Failures++
			continue
		}
		sum.PaymentNoticesSent++
	}
	return nil
}

func (p *Processor) notifyPayment(ctx context.Context, inv *model.Invoice) error {
	if inv.Author == nil || inv.Author.Email == "" {
		return fmt.Errorf("invoice %s has no notifiable author", inv.Reference())
	}

	commissions, err := p.commissions.ListByInvoice(ctx, inv.ID)
	if err != nil {
		return err
	}
	payment.Aggregate(inv, commissions)

	attachment := ""
	if p.renderPDF != nil {
		path, err := p.renderPDF(inv, commissions)
		if err != nil {
			// Degrade to a plain email; the totals in the body are authoritative.
			log.Warn().Err(err).Str("invoice", inv.Reference()).Msg("remittance PDF failed")
		} else {
			attachment = path
		}
	}

	subject := fmt.Sprintf("%s: invoice %s has been paid", p.siteName, inv.Reference())
	body := paymentBody(p.siteName, inv)
	if err := p.mailer.Send([]string{inv.Author.Email, p.editorEmail}, subject, body, attachment); err != nil {
		return err
	}

	notified := p.now()
	inv.DateNotifiedPayment = &notified
	return p.invoices.Update(ctx, inv)
}
