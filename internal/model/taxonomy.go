package model

import (
	"time"

	"github.com/google/uuid"
)

// Topic groups articles thematically (e.g. "housing", "immigration").
type Topic struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name string    `gorm:"uniqueIndex;not null"`
	Slug string    `gorm:"uniqueIndex;not null"`
	// Introduction is unfiltered HTML shown above the topic's article list.
	Introduction string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Category is the article type: News, Feature, Opinion, Photo essay.
type Category struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"uniqueIndex;not null"`
	Slug      string    `gorm:"uniqueIndex;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Region is a hierarchical place name; children use "Parent/Child" names.
type Region struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"uniqueIndex;not null"`
	Slug      string    `gorm:"uniqueIndex;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
