package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Commission is one payment obligation owed to an author for one article.
// It should have been named Payment; the name is kept for continuity with the
// editorial workflow.
//
// A nil FundID means the commission is pending approval and is excluded from
// every payment total. Once its invoice is paid the commission is immutable
// history.
type Commission struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	InvoiceID *uuid.UUID `gorm:"type:uuid;index"`
	// AuthorID binds the commission to its author until it is billed.
	// Deprecated for billed rows: the invoice carries the author from then on.
	AuthorID  *uuid.UUID `gorm:"type:uuid;index"`
	ArticleID *uuid.UUID `gorm:"type:uuid;index"`

	Description string `gorm:"type:varchar(30);not null;default:'Article author'"`
	// FundID non-nil = approved for payment.
	FundID       *uuid.UUID `gorm:"type:uuid"`
	SysGenerated bool       `gorm:"not null;default:false"`

	DateGenerated *time.Time
	// DateApproved latches the moment a fund was first attached.
	DateApproved *time.Time
	// DateNotifiedApproved is the idempotence guard for the approval email:
	// nil means the author has not been told yet.
	DateNotifiedApproved *time.Time

	CommissionDue decimal.Decimal `gorm:"type:decimal(9,2);not null;default:0"`
	Taxable       bool            `gorm:"not null;default:true"`
	VATable       bool            `gorm:"not null;default:false;column:vatable"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Invoice *Invoice `gorm:"foreignKey:InvoiceID"`
	Author  *Author  `gorm:"foreignKey:AuthorID"`
	Article *Article `gorm:"foreignKey:ArticleID"`
	Fund    *Fund    `gorm:"foreignKey:FundID"`
}

// Approved reports whether a fund has been attached.
func (c *Commission) Approved() bool { return c.FundID != nil }
