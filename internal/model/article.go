package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OverrideCommissions: "NO" | "PROCESS" | "NOPROCESS"
const (
	OverrideCommissionsNo        = "NO"
	OverrideCommissionsProcess   = "PROCESS"
	OverrideCommissionsNoProcess = "NOPROCESS"
)

// Article holds a story with up to five author slots. The Cached* fields are
// projections recomputed by the article service at every write; they are never
// edited directly.
type Article struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title    string    `gorm:"not null"`
	Subtitle string
	Slug     string `gorm:"uniqueIndex;not null"`

	SummaryImageAlt string
	SummaryText     string
	Body            string

	Author01ID *uuid.UUID `gorm:"type:uuid;index"`
	Author02ID *uuid.UUID `gorm:"type:uuid"`
	Author03ID *uuid.UUID `gorm:"type:uuid"`
	Author04ID *uuid.UUID `gorm:"type:uuid"`
	Author05ID *uuid.UUID `gorm:"type:uuid"`
	// Byline, when set, overrides the names generated from the author slots.
	Byline string

	// Published is the publish time; nil means draft. An article counts as
	// published once this is non-nil and not in the future.
	Published   *time.Time `gorm:"index"`
	Recommended bool       `gorm:"not null;default:true"`
	CategoryID  uuid.UUID  `gorm:"type:uuid;not null"`
	RegionID    *uuid.UUID `gorm:"type:uuid"`
	MainTopicID *uuid.UUID `gorm:"type:uuid"`
	Copyright   string

	IncludeInRSS         bool `gorm:"not null;default:true;column:include_in_rss"`
	ExcludeFromListViews bool `gorm:"not null;default:false"`
	Stickiness           int  `gorm:"not null;default:0"`
	Version              int  `gorm:"not null;default:0"`

	// Facebook scheduling inputs. Stored with the article but inert here:
	// no posting pipeline consumes them.
	FacebookWaitTime     int    `gorm:"not null;default:0"`
	FacebookImage        string `gorm:"type:varchar(200)"`
	FacebookImageCaption string `gorm:"type:varchar(200)"`
	FacebookDescription  string `gorm:"type:varchar(200)"`
	FacebookMessage      string
	FacebookSendStatus   string `gorm:"type:varchar(20);not null;default:'paused'"`

	// AuthorPayment is the editor's note of the intended per-author amount;
	// generated commissions always start at zero and are priced manually.
	AuthorPayment        decimal.Decimal `gorm:"type:decimal(9,2);not null;default:0"`
	OverrideCommissions  string          `gorm:"type:varchar(20);not null;default:'NO'"`
	CommissionsProcessed bool            `gorm:"not null;default:false;index"`

	CachedByline        string `gorm:"type:varchar(500)"`
	CachedBylineNoLinks string `gorm:"type:varchar(400)"`
	CachedSummaryText   string

	CreatedAt time.Time
	UpdatedAt time.Time

	Author01 *Author   `gorm:"foreignKey:Author01ID"`
	Author02 *Author   `gorm:"foreignKey:Author02ID"`
	Author03 *Author   `gorm:"foreignKey:Author03ID"`
	Author04 *Author   `gorm:"foreignKey:Author04ID"`
	Author05 *Author   `gorm:"foreignKey:Author05ID"`
	Category *Category `gorm:"foreignKey:CategoryID"`
	Region   *Region   `gorm:"foreignKey:RegionID"`
	Topics   []Topic   `gorm:"many2many:article_topics"`
}

// IsPublished reports whether the article is live at the given instant.
func (a *Article) IsPublished(now time.Time) bool {
	return a.Published != nil && !a.Published.After(now)
}

// AuthorSlots returns the non-nil loaded authors in slot order.
// Preload the Author01..Author05 associations first.
func (a *Article) AuthorSlots() []*Author {
	var authors []*Author
	for _, au := range []*Author{a.Author01, a.Author02, a.Author03, a.Author04, a.Author05} {
		if au != nil {
			authors = append(authors, au)
		}
	}
	return authors
}
