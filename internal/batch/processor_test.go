package batch

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/sjwaight/gu/internal/dto"
	"github.com/sjwaight/gu/internal/model"
	"github.com/sjwaight/gu/internal/payment"
	"github.com/sjwaight/gu/internal/repository"
)

var fixedNow = time.Date(2026, 4, 1, 2, 0, 0, 0, time.UTC)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ── In-memory repository stubs ───────────────────────────────────────────────

type stubArticleRepo struct {
	articles map[uuid.UUID]*model.Article
}

var _ repository.ArticleRepository = (*stubArticleRepo)(nil)

func newStubArticleRepo() *stubArticleRepo {
	return &stubArticleRepo{articles: make(map[uuid.UUID]*model.Article)}
}

func (r *stubArticleRepo) add(a *model.Article) { r.articles[a.ID] = a }

func (r *stubArticleRepo) Create(_ context.Context, a *model.Article) error {
	r.articles[a.ID] = a
	return nil
}

func (r *stubArticleRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Article, error) {
	a, ok := r.articles[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return a, nil
}

func (r *stubArticleRepo) FindBySlug(_ context.Context, slug string) (*model.Article, error) {
	for _, a := range r.articles {
		if a.Slug == slug {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubArticleRepo) Update(_ context.Context, a *model.Article) error {
	r.articles[a.ID] = a
	return nil
}

func (r *stubArticleRepo) List(context.Context, dto.ArticleFilter) ([]model.Article, int64, error) {
	return nil, 0, errors.New("not used")
}

func (r *stubArticleRepo) ListAwaitingCommissions(_ context.Context, now time.Time) ([]model.Article, error) {
	var out []model.Article
	for _, a := range r.articles {
		if a.IsPublished(now) && !a.CommissionsProcessed {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *stubArticleRepo) MarkCommissionsProcessed(_ context.Context, id uuid.UUID) error {
	a, ok := r.articles[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	a.CommissionsProcessed = true
	return nil
}

func (r *stubArticleRepo) ClearStickiness(context.Context) error { return nil }

type stubCommissionRepo struct {
	commissions map[uuid.UUID]*model.Commission
	authors     map[uuid.UUID]*model.Author
}

var _ repository.CommissionRepository = (*stubCommissionRepo)(nil)

func newStubCommissionRepo() *stubCommissionRepo {
	return &stubCommissionRepo{
		commissions: make(map[uuid.UUID]*model.Commission),
		authors:     make(map[uuid.UUID]*model.Author),
	}
}

func (r *stubCommissionRepo) add(c *model.Commission, author *model.Author) {
	r.commissions[c.ID] = c
	if author != nil {
		r.authors[author.ID] = author
	}
}

// loaded mimics the repository's Author preload.
func (r *stubCommissionRepo) loaded(c *model.Commission) model.Commission {
	out := *c
	if c.AuthorID != nil {
		out.Author = r.authors[*c.AuthorID]
	}
	return out
}

func (r *stubCommissionRepo) Create(_ context.Context, c *model.Commission) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	cloned := *c
	r.commissions[c.ID] = &cloned
	return nil
}

func (r *stubCommissionRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Commission, error) {
	c, ok := r.commissions[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubCommissionRepo) Update(_ context.Context, c *model.Commission) error {
	if _, ok := r.commissions[c.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cloned := *c
	cloned.Author = nil
	cloned.Invoice = nil
	r.commissions[c.ID] = &cloned
	return nil
}

func (r *stubCommissionRepo) List(context.Context) ([]model.Commission, error) {
	return nil, errors.New("not used")
}

func (r *stubCommissionRepo) ListByInvoice(_ context.Context, invoiceID uuid.UUID) ([]model.Commission, error) {
	var out []model.Commission
	for _, c := range r.commissions {
		if c.InvoiceID != nil && *c.InvoiceID == invoiceID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *stubCommissionRepo) ListApprovedUnbilled(_ context.Context) ([]model.Commission, error) {
	var out []model.Commission
	for _, c := range r.commissions {
		if c.FundID != nil && c.InvoiceID == nil {
			out = append(out, r.loaded(c))
		}
	}
	return out, nil
}

func (r *stubCommissionRepo) ListUnnotifiedApproved(_ context.Context) ([]model.Commission, error) {
	var out []model.Commission
	for _, c := range r.commissions {
		if c.FundID != nil && c.DateNotifiedApproved == nil {
			out = append(out, r.loaded(c))
		}
	}
	return out, nil
}

func (r *stubCommissionRepo) ExistsForArticle(_ context.Context, articleID uuid.UUID) (bool, error) {
	for _, c := range r.commissions {
		if c.ArticleID != nil && *c.ArticleID == articleID {
			return true, nil
		}
	}
	return false, nil
}

type stubInvoiceRepo struct {
	invoices    map[uuid.UUID]*model.Invoice
	authors     map[uuid.UUID]*model.Author
	findOpenErr error
}

var _ repository.InvoiceRepository = (*stubInvoiceRepo)(nil)

func newStubInvoiceRepo() *stubInvoiceRepo {
	return &stubInvoiceRepo{
		invoices: make(map[uuid.UUID]*model.Invoice),
		authors:  make(map[uuid.UUID]*model.Author),
	}
}

func (r *stubInvoiceRepo) add(inv *model.Invoice, author *model.Author) {
	r.invoices[inv.ID] = inv
	if author != nil {
		r.authors[author.ID] = author
	}
}

func (r *stubInvoiceRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Invoice, error) {
	inv, ok := r.invoices[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return inv, nil
}

func (r *stubInvoiceRepo) Update(_ context.Context, inv *model.Invoice) error {
	if _, ok := r.invoices[inv.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cloned := *inv
	cloned.Author = nil
	r.invoices[inv.ID] = &cloned
	return nil
}

func (r *stubInvoiceRepo) List(context.Context, dto.InvoiceFilter) ([]model.Invoice, int64, error) {
	return nil, 0, errors.New("not used")
}

func (r *stubInvoiceRepo) FindOpenByAuthor(_ context.Context, authorID uuid.UUID) (*model.Invoice, error) {
	if r.findOpenErr != nil {
		return nil, r.findOpenErr
	}
	for _, inv := range r.invoices {
		if inv.AuthorID == authorID && inv.Status == model.StatusUnpaid {
			return inv, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubInvoiceRepo) CreateForAuthor(_ context.Context, author *model.Author) (*model.Invoice, error) {
	maxNum := 0
	for _, inv := range r.invoices {
		if inv.AuthorID == author.ID && inv.InvoiceNum > maxNum {
			maxNum = inv.InvoiceNum
		}
	}
	inv := payment.NewInvoice(author, maxNum+1)
	r.invoices[inv.ID] = inv
	r.authors[author.ID] = author
	return inv, nil
}

func (r *stubInvoiceRepo) ListPaidUnnotified(_ context.Context) ([]model.Invoice, error) {
	var out []model.Invoice
	for _, inv := range r.invoices {
		if inv.Status == model.StatusPaid && inv.DateNotifiedPayment == nil {
			loaded := *inv
			loaded.Author = r.authors[inv.AuthorID]
			out = append(out, loaded)
		}
	}
	return out, nil
}

// ── Recording mailer ─────────────────────────────────────────────────────────

type sentMail struct {
	To         []string
	Subject    string
	Body       string
	Attachment string
}

type recorderMailer struct {
	sent []sentMail
	fail bool
}

func (m *recorderMailer) Send(to []string, subject, body, attachmentPath string) error {
	if m.fail {
		return errors.New("smtp unreachable")
	}
	m.sent = append(m.sent, sentMail{To: to, Subject: subject, Body: body, Attachment: attachmentPath})
	return nil
}

// ── Fixtures ─────────────────────────────────────────────────────────────────

func freelancer(name string) *model.Author {
	return &model.Author{
		ID:         uuid.New(),
		FirstNames: name,
		LastName:   "Writer",
		Email:      name + "@example.org",
		Freelancer: true,
		TaxPercent: d("25"),
	}
}

func staffer(name string) *model.Author {
	return &model.Author{
		ID:         uuid.New(),
		FirstNames: name,
		LastName:   "Staff",
		Email:      name + "@example.org",
		Freelancer: false,
		TaxPercent: d("25"),
	}
}

func publishedArticle(slug string, authors ...*model.Author) *model.Article {
	published := fixedNow.Add(-24 * time.Hour)
	a := &model.Article{
		ID:        uuid.New(),
		Title:     "Test " + slug,
		Slug:      slug,
		Published: &published,
	}
	slotIDs := []**uuid.UUID{&a.Author01ID, &a.Author02ID, &a.Author03ID, &a.Author04ID, &a.Author05ID}
	slots := []**model.Author{&a.Author01, &a.Author02, &a.Author03, &a.Author04, &a.Author05}
	for i, au := range authors {
		id := au.ID
		*slotIDs[i] = &id
		*slots[i] = au
	}
	return a
}

type fixture struct {
	articles    *stubArticleRepo
	commissions *stubCommissionRepo
	invoices    *stubInvoiceRepo
	mailer      *recorderMailer
	processor   *Processor
}

func newFixture() *fixture {
	f := &fixture{
		articles:    newStubArticleRepo(),
		commissions: newStubCommissionRepo(),
		invoices:    newStubInvoiceRepo(),
		mailer:      &recorderMailer{},
	}
	f.processor = New(Config{
		Articles:    f.articles,
		Commissions: f.commissions,
		Invoices:    f.invoices,
		Mailer:      f.mailer,
		EditorEmail: "editor@example.org",
		SiteName:    "GroundUp",
		Now:         func() time.Time { return fixedNow },
	})
	return f
}

// ── Step 1: commission generation ────────────────────────────────────────────

func TestRunGeneratesCommissionsForFreelancersOnly(t *testing.T) {
	f := newFixture()
	fl1, fl2, st := freelancer("amy"), freelancer("ben"), staffer("carol")
	article := publishedArticle("story-1", fl1, st, fl2)
	f.articles.add(article)

	sum, err := f.processor.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, sum.CommissionsGenerated)
	assert.True(t, article.CommissionsProcessed)

	for _, c := range f.commissions.commissions {
		require.NotNil(t, c.AuthorID)
		assert.NotEqual(t, st.ID, *c.AuthorID, "staff author must not be commissioned")
		assert.True(t, c.SysGenerated)
		assert.True(t, c.CommissionDue.IsZero(), "generated commissions start unpriced")
		assert.Nil(t, c.FundID, "generated commissions start unapproved")
		require.NotNil(t, c.DateGenerated)
		assert.Equal(t, fixedNow, *c.DateGenerated)
	}
}

func TestRunGeneratesAcrossMultipleArticles(t *testing.T) {
	f := newFixture()
	amy, ben, cara := freelancer("amy"), freelancer("ben"), freelancer("cara")
	staff := staffer("dan")

	articles := []*model.Article{
		publishedArticle("story-1", amy, ben),
		publishedArticle("story-2", amy),
		publishedArticle("story-3", cara, staff),
		publishedArticle("story-4", ben, cara),
	}
	for _, a := range articles {
		f.articles.add(a)
	}

	sum, err := f.processor.Run(context.Background())
	require.NoError(t, err)

	// One commission per freelancer slot over all four articles; the staff
	// slot contributes nothing.
	assert.Equal(t, 6, sum.CommissionsGenerated)
	require.Len(t, f.commissions.commissions, 6)

	perAuthor := make(map[uuid.UUID]int)
	for _, c := range f.commissions.commissions {
		require.NotNil(t, c.AuthorID)
		perAuthor[*c.AuthorID]++
	}
	assert.Equal(t, 2, perAuthor[amy.ID])
	assert.Equal(t, 2, perAuthor[ben.ID])
	assert.Equal(t, 2, perAuthor[cara.ID])
	assert.Zero(t, perAuthor[staff.ID])

	for _, a := range articles {
		assert.True(t, a.CommissionsProcessed, a.Slug)
	}
}

func TestRunIsIdempotentAcrossRestarts(t *testing.T) {
	f := newFixture()
	f.articles.add(publishedArticle("story-1", freelancer("amy")))

	first, err := f.processor.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, first.CommissionsGenerated)

	second, err := f.processor.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, second.CommissionsGenerated)
	assert.Equal(t, 0, second.InvoicesCreated)
	assert.Empty(t, f.mailer.sent)
	assert.Len(t, f.commissions.commissions, 1)
}

func TestRunOverrideNoProcessSkipsGeneration(t *testing.T) {
	f := newFixture()
	article := publishedArticle("opinion-1", freelancer("amy"))
	article.OverrideCommissions = model.OverrideCommissionsNoProcess
	f.articles.add(article)

	sum, err := f.processor.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, sum.CommissionsGenerated)
	assert.Empty(t, f.commissions.commissions)
	assert.True(t, article.CommissionsProcessed, "article must not be revisited")
}

func TestRunOverrideProcessIncludesStaff(t *testing.T) {
	f := newFixture()
	article := publishedArticle("feature-1", staffer("carol"), freelancer("amy"))
	article.OverrideCommissions = model.OverrideCommissionsProcess
	f.articles.add(article)

	sum, err := f.processor.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, sum.CommissionsGenerated)
}

func TestRunSkipsGenerationWhenManualCommissionExists(t *testing.T) {
	f := newFixture()
	author := freelancer("amy")
	article := publishedArticle("story-1", author)
	f.articles.add(article)

	articleID := article.ID
	authorID := author.ID
	manual := &model.Commission{
		ID:            uuid.New(),
		AuthorID:      &authorID,
		ArticleID:     &articleID,
		CommissionDue: d("1200.00"),
	}
	f.commissions.add(manual, author)

	sum, err := f.processor.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, sum.CommissionsGenerated)
	assert.Len(t, f.commissions.commissions, 1)
	assert.True(t, article.CommissionsProcessed)
}

func TestRunIgnoresUnpublishedArticles(t *testing.T) {
	f := newFixture()
	draft := publishedArticle("draft-1", freelancer("amy"))
	draft.Published = nil
	future := publishedArticle("embargo-1", freelancer("ben"))
	futureTime := fixedNow.Add(24 * time.Hour)
	future.Published = &futureTime
	f.articles.add(draft)
	f.articles.add(future)

	sum, err := f.processor.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, sum.CommissionsGenerated)
	assert.False(t, draft.CommissionsProcessed)
	assert.False(t, future.CommissionsProcessed)
}

// ── Step 2: invoice creation and attachment ──────────────────────────────────

func TestRunBillsApprovedCommissionsLazilyNumberingFromOne(t *testing.T) {
	f := newFixture()
	author := freelancer("amy")
	fundID := uuid.New()
	authorID := author.ID

	c1 := &model.Commission{ID: uuid.New(), AuthorID: &authorID, FundID: &fundID, CommissionDue: d("900.00"), Taxable: true}
	c2 := &model.Commission{ID: uuid.New(), AuthorID: &authorID, FundID: &fundID, CommissionDue: d("300.00"), Taxable: true}
	f.commissions.add(c1, author)
	f.commissions.add(c2, author)

	sum, err := f.processor.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, sum.InvoicesCreated)
	assert.Equal(t, 2, sum.CommissionsAttached)
	require.Len(t, f.invoices.invoices, 1)

	for _, inv := range f.invoices.invoices {
		assert.Equal(t, 1, inv.InvoiceNum)
		assert.Equal(t, author.ID, inv.AuthorID)
		assert.Equal(t, model.StatusUnpaid, inv.Status)
		assert.True(t, d("25").Equal(inv.TaxPercent), "tax rate snapshotted")

		for _, c := range f.commissions.commissions {
			require.NotNil(t, c.InvoiceID)
			assert.Equal(t, inv.ID, *c.InvoiceID)
		}
	}
}

func TestRunReusesOpenInvoice(t *testing.T) {
	f := newFixture()
	author := freelancer("amy")
	open := payment.NewInvoice(author, 4)
	f.invoices.add(open, author)

	fundID := uuid.New()
	authorID := author.ID
	c := &model.Commission{ID: uuid.New(), AuthorID: &authorID, FundID: &fundID, CommissionDue: d("500.00"), Taxable: true}
	f.commissions.add(c, author)

	sum, err := f.processor.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, sum.InvoicesCreated, "open invoice must be reused")
	assert.Equal(t, 1, sum.CommissionsAttached)
	stored := f.commissions.commissions[c.ID]
	require.NotNil(t, stored.InvoiceID)
	assert.Equal(t, open.ID, *stored.InvoiceID)
}

func TestRunTransientLookupErrorDoesNotMintDuplicateInvoice(t *testing.T) {
	f := newFixture()
	author := freelancer("amy")
	open := payment.NewInvoice(author, 1)
	f.invoices.add(open, author)

	fundID := uuid.New()
	authorID := author.ID
	c := &model.Commission{ID: uuid.New(), AuthorID: &authorID, FundID: &fundID, CommissionDue: d("500.00"), Taxable: true}
	f.commissions.add(c, author)

	// A flaky lookup must count a failure, never create a second open invoice.
	f.invoices.findOpenErr = errors.New("driver: bad connection")
	sum, err := f.processor.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, sum.InvoicesCreated)
	assert.Equal(t, 0, sum.CommissionsAttached)
	assert.Equal(t, 1, sum.Failures)
	require.Len(t, f.invoices.invoices, 1)
	assert.Nil(t, f.commissions.commissions[c.ID].InvoiceID)

	// Once the lookup recovers the commission lands on the existing invoice.
	f.invoices.findOpenErr = nil
	sum, err = f.processor.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, sum.InvoicesCreated)
	assert.Equal(t, 1, sum.CommissionsAttached)
	require.Len(t, f.invoices.invoices, 1)
	stored := f.commissions.commissions[c.ID]
	require.NotNil(t, stored.InvoiceID)
	assert.Equal(t, open.ID, *stored.InvoiceID)
}

func TestRunLeavesUnapprovedCommissionsUnbilled(t *testing.T) {
	f := newFixture()
	author := freelancer("amy")
	authorID := author.ID
	c := &model.Commission{ID: uuid.New(), AuthorID: &authorID, CommissionDue: d("500.00")}
	f.commissions.add(c, author)

	sum, err := f.processor.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, sum.InvoicesCreated)
	assert.Empty(t, f.invoices.invoices)
	assert.Nil(t, f.commissions.commissions[c.ID].InvoiceID)
}

// ── Step 3: approval notifications ───────────────────────────────────────────

func TestRunSendsApprovalNoticeOnceAndCCsEditor(t *testing.T) {
	f := newFixture()
	author := freelancer("amy")
	fundID := uuid.New()
	authorID := author.ID
	c := &model.Commission{ID: uuid.New(), AuthorID: &authorID, FundID: &fundID, CommissionDue: d("900.00"), Taxable: true}
	f.commissions.add(c, author)

	sum, err := f.processor.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, sum.ApprovalNoticesSent)

	require.Len(t, f.mailer.sent, 1)
	mail := f.mailer.sent[0]
	assert.Contains(t, mail.To, "amy@example.org")
	assert.Contains(t, mail.To, "editor@example.org")
	assert.Contains(t, mail.Subject, "payment approved")

	stored := f.commissions.commissions[c.ID]
	require.NotNil(t, stored.DateNotifiedApproved)
	assert.Equal(t, fixedNow, *stored.DateNotifiedApproved)

	// Second run: already notified, nothing sent.
	sum, err = f.processor.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, sum.ApprovalNoticesSent)
	assert.Len(t, f.mailer.sent, 1)
}

func TestRunFailedSendIsRetriedNextRun(t *testing.T) {
	f := newFixture()
	author := freelancer("amy")
	fundID := uuid.New()
	authorID := author.ID
	c := &model.Commission{ID: uuid.New(), AuthorID: &authorID, FundID: &fundID, CommissionDue: d("900.00"), Taxable: true}
	f.commissions.add(c, author)

	f.mailer.fail = true
	sum, err := f.processor.Run(context.Background())
	require.NoError(t, err, "record-level failures are counted, not returned")
	assert.Equal(t, 0, sum.ApprovalNoticesSent)
	assert.Greater(t, sum.Failures, 0)
	assert.Nil(t, f.commissions.commissions[c.ID].DateNotifiedApproved, "stamp only after successful send")

	f.mailer.fail = false
	sum, err = f.processor.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, sum.ApprovalNoticesSent)
	assert.NotNil(t, f.commissions.commissions[c.ID].DateNotifiedApproved)
}

func TestRunCountsFailureForAuthorWithoutEmail(t *testing.T) {
	f := newFixture()
	author := freelancer("amy")
	author.Email = ""
	fundID := uuid.New()
	authorID := author.ID
	c := &model.Commission{ID: uuid.New(), AuthorID: &authorID, FundID: &fundID, CommissionDue: d("900.00"), Taxable: true}
	f.commissions.add(c, author)

	sum, err := f.processor.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, sum.ApprovalNoticesSent)
	assert.Greater(t, sum.Failures, 0)
	assert.Empty(t, f.mailer.sent)
}

// ── Step 4: payment notifications ────────────────────────────────────────────

func TestRunNotifiesPaymentWithRecomputedTotals(t *testing.T) {
	f := newFixture()
	author := freelancer("amy")
	inv := payment.NewInvoice(author, 1)
	inv.Status = model.StatusPaid
	processed := fixedNow.Add(-time.Hour)
	inv.DateTimeProcessed = &processed
	f.invoices.add(inv, author)

	fundID := uuid.New()
	invoiceID := inv.ID
	notified := fixedNow.Add(-2 * time.Hour)
	c := &model.Commission{
		ID: uuid.New(), InvoiceID: &invoiceID, FundID: &fundID,
		CommissionDue: d("900.00"), Taxable: true,
		DateNotifiedApproved: &notified,
	}
	f.commissions.add(c, author)

	sum, err := f.processor.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, sum.PaymentNoticesSent)

	require.Len(t, f.mailer.sent, 1)
	mail := f.mailer.sent[0]
	assert.Contains(t, mail.To, "amy@example.org")
	assert.Contains(t, mail.Subject, "has been paid")
	assert.Contains(t, mail.Body, "675")

	stored := f.invoices.invoices[inv.ID]
	require.NotNil(t, stored.DateNotifiedPayment)
	assert.True(t, d("675").Equal(stored.AmountPaid), "totals recomputed before sending")
	assert.True(t, d("225").Equal(stored.TaxPaid))

	// Second run sends nothing.
	sum, err = f.processor.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, sum.PaymentNoticesSent)
	assert.Len(t, f.mailer.sent, 1)
}

func TestRunPaymentNoticeDegradesWhenPDFFails(t *testing.T) {
	f := newFixture()
	f.processor.renderPDF = func(*model.Invoice, []model.Commission) (string, error) {
		return "", errors.New("disk full")
	}

	author := freelancer("amy")
	inv := payment.NewInvoice(author, 1)
	inv.Status = model.StatusPaid
	f.invoices.add(inv, author)

	sum, err := f.processor.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, sum.PaymentNoticesSent, "PDF failure must not block the notice")
	require.Len(t, f.mailer.sent, 1)
	assert.Empty(t, f.mailer.sent[0].Attachment)
}

// ── Full pipeline ────────────────────────────────────────────────────────────

func TestRunFullPipelineFromPublishToApprovalNotice(t *testing.T) {
	f := newFixture()
	author := freelancer("amy")
	f.articles.add(publishedArticle("story-1", author))
	// Register the author for the stub's preload emulation.
	f.commissions.authors[author.ID] = author

	// Night 1: commission generated, unapproved — no invoice, no email.
	sum, err := f.processor.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, sum.CommissionsGenerated)
	assert.Equal(t, 0, sum.InvoicesCreated)
	assert.Empty(t, f.mailer.sent)

	// Editor prices and approves the commission.
	fundID := uuid.New()
	for _, c := range f.commissions.commissions {
		c.FundID = &fundID
		c.CommissionDue = d("900.00")
		c.Taxable = true
	}

	// Night 2: invoice created, commission attached, approval notice out.
	sum, err = f.processor.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, sum.CommissionsGenerated)
	assert.Equal(t, 1, sum.InvoicesCreated)
	assert.Equal(t, 1, sum.CommissionsAttached)
	assert.Equal(t, 1, sum.ApprovalNoticesSent)
	require.Len(t, f.mailer.sent, 1)
}
