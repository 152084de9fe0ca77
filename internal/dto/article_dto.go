package dto

import "github.com/shopspring/decimal"

// ArticleFilter is bound from the query string of GET /v1/articles.
type ArticleFilter struct {
	PublishedOnly   bool   `form:"published,default=true"`
	IncludeExcluded bool   `form:"include_excluded,default=false"`
	CategorySlug    string `form:"category"`
	Page            int    `form:"page,default=1"   validate:"min=1"`
	Limit           int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type CreateArticleRequest struct {
	Title       string  `json:"title"    validate:"required,max=200"`
	Subtitle    string  `json:"subtitle" validate:"max=200"`
	Slug        string  `json:"slug"     validate:"required,max=200"`
	SummaryText string  `json:"summary_text"`
	Body        string  `json:"body"`
	Byline      string  `json:"byline"   validate:"max=200"`
	CategoryID  string  `json:"category_id" validate:"required,uuid"`
	RegionID    *string `json:"region_id"   validate:"omitempty,uuid"`
	MainTopicID *string `json:"main_topic_id" validate:"omitempty,uuid"`
	TopicIDs    []string `json:"topic_ids" validate:"dive,uuid"`
	// AuthorIDs fill the five author slots in order; at most five entries.
	AuthorIDs []string `json:"author_ids" validate:"max=5,dive,uuid"`

	AuthorPayment       decimal.Decimal `json:"author_payment" validate:"min=0"`
	OverrideCommissions string          `json:"override_commissions" validate:"omitempty,oneof=NO PROCESS NOPROCESS"`

	IncludeInRSS         *bool `json:"include_in_rss"`
	ExcludeFromListViews *bool `json:"exclude_from_list_views"`
	Recommended          *bool `json:"recommended"`

	// Facebook scheduling inputs, stored as-is; no posting pipeline here.
	FacebookWaitTime     int    `json:"facebook_wait_time" validate:"min=0"`
	FacebookImage        string `json:"facebook_image" validate:"max=200"`
	FacebookImageCaption string `json:"facebook_image_caption" validate:"max=200"`
	FacebookDescription  string `json:"facebook_description" validate:"max=200"`
	FacebookMessage      string `json:"facebook_message"`
}

type UpdateArticleRequest = CreateArticleRequest

type ArticleResponse struct {
	ID                  string   `json:"id"`
	Title               string   `json:"title"`
	Subtitle            string   `json:"subtitle,omitempty"`
	Slug                string   `json:"slug"`
	Byline              string   `json:"byline"`
	CachedByline        string   `json:"cached_byline"`
	CachedBylineNoLinks string   `json:"cached_byline_no_links"`
	SummaryText         string   `json:"summary_text,omitempty"`
	CachedSummaryText   string   `json:"cached_summary_text"`
	Body                string   `json:"body,omitempty"`
	Published           *string  `json:"published"`
	Category            string   `json:"category"`
	Region              *string  `json:"region,omitempty"`
	Topics              []string `json:"topics,omitempty"`
	Authors             []string `json:"authors,omitempty"`
	Stickiness          int      `json:"stickiness"`
	Version             int      `json:"version"`

	AuthorPayment        decimal.Decimal `json:"author_payment"`
	OverrideCommissions  string          `json:"override_commissions"`
	CommissionsProcessed bool            `json:"commissions_processed"`
}

type ArticleListResponse struct {
	Data  []ArticleResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}
