package saunarec

import (
	"context"

	dompost "github.com/kailas-cloud/saunarec/internal/domain/post"
	"github.com/kailas-cloud/saunarec/internal/domain/preference"
	"github.com/kailas-cloud/saunarec/internal/domain/recommendation"
	healthuc "github.com/kailas-cloud/saunarec/internal/usecase/health"
)

// --- recommendUseCase mock ---

type mockRecommendUC struct {
	recommendFn func(ctx context.Context, prefs preference.Preferences) ([]recommendation.Recommendation, error)
}

func (m *mockRecommendUC) Recommend(
	ctx context.Context, prefs preference.Preferences,
) ([]recommendation.Recommendation, error) {
	return m.recommendFn(ctx, prefs)
}

// --- postUseCase mock ---

type mockPostUC struct {
	listFn   func(ctx context.Context) ([]dompost.Post, error)
	createFn func(ctx context.Context, name, content string) (dompost.Post, error)
}

func (m *mockPostUC) List(ctx context.Context) ([]dompost.Post, error) {
	return m.listFn(ctx)
}

func (m *mockPostUC) Create(ctx context.Context, name, content string) (dompost.Post, error) {
	return m.createFn(ctx, name, content)
}

// --- healthUseCase mock ---

type mockHealthUC struct {
	report healthuc.Report
}

func (m *mockHealthUC) Check(_ context.Context) healthuc.Report { return m.report }
