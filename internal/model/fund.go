package model

import (
	"time"

	"github.com/google/uuid"
)

// Fund is a payment source (a grant or the general fund). Attaching a fund to
// a commission is the editorial signal that the commission is approved to pay.
type Fund struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"uniqueIndex;not null;type:varchar(20)"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
