package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sjwaight/gu/internal/dto"
	"github.com/sjwaight/gu/internal/model"
)

func TestApplyStoresFacebookSchedulingInputs(t *testing.T) {
	s := &articleService{}
	a := &model.Article{ID: uuid.New(), FacebookSendStatus: "paused"}

	req := dto.CreateArticleRequest{
		Title:                "Harbour cleanup begins",
		Slug:                 "harbour-cleanup-begins",
		CategoryID:           uuid.NewString(),
		FacebookWaitTime:     30,
		FacebookImage:        "images/harbour.jpg",
		FacebookImageCaption: "The harbour at dawn",
		FacebookDescription:  "Cleanup of the inner harbour started this week.",
		FacebookMessage:      "Months in the planning, the cleanup is underway.",
	}
	require.NoError(t, s.apply(context.Background(), a, req))

	assert.Equal(t, 30, a.FacebookWaitTime)
	assert.Equal(t, "images/harbour.jpg", a.FacebookImage)
	assert.Equal(t, "The harbour at dawn", a.FacebookImageCaption)
	assert.Equal(t, "Cleanup of the inner harbour started this week.", a.FacebookDescription)
	assert.Equal(t, "Months in the planning, the cleanup is underway.", a.FacebookMessage)
	assert.Equal(t, "paused", a.FacebookSendStatus, "send status is never driven from the request")
}

func TestApplyClearsFacebookInputsWhenOmitted(t *testing.T) {
	s := &articleService{}
	a := &model.Article{
		ID:              uuid.New(),
		FacebookMessage: "stale message",
		FacebookImage:   "images/old.jpg",
	}

	req := dto.CreateArticleRequest{
		Title:      "Harbour cleanup ends",
		Slug:       "harbour-cleanup-ends",
		CategoryID: uuid.NewString(),
	}
	require.NoError(t, s.apply(context.Background(), a, req))

	assert.Empty(t, a.FacebookMessage)
	assert.Empty(t, a.FacebookImage)
}
