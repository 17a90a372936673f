package status

import (
	"testing"
	"time"

	"github.com/bnema/pacer/internal/application"
	"github.com/bnema/pacer/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderSingleAccountStatus(t *testing.T) {
	now := time.Date(2026, 2, 14, 11, 0, 0, 0, time.UTC)

	output, err := Render([]application.Status{
		{
			Account: domain.Account{ID: "maya", Name: "Maya"},
			ID:      "maya",
			Age:     domain.KnownAge(8),
			Quotas: []application.QuotaStatus{
				{Action: domain.ActionComment, Used: 2, Limit: 28, Base: 40, Multiplier: 0.7},
				{Action: domain.ActionLike, Used: 105, Limit: 105, Base: 150, Multiplier: 0.7},
			},
		},
	}, RenderOptions{Now: now})

	require.NoError(t, err)
	assert.Contains(t, output, "accounts: 1")
	assert.Contains(t, output, "day: 2026-02-14 UTC")
	assert.Contains(t, output, "Maya (maya)")
	assert.Contains(t, output, "age: 8 days (warmup x0.70)")
	assert.Contains(t, output, "comments:")
	assert.Contains(t, output, "2/28")
	assert.Contains(t, output, "(26 left, base 40)")
	assert.Contains(t, output, "105/105")
	assert.Contains(t, output, "[limit reached]")
	assert.Contains(t, output, "[========================]")
}

func TestRenderMultiAccountStatus(t *testing.T) {
	output, err := Render([]application.Status{
		{
			Account: domain.Account{ID: "maya", Name: "Maya"},
			ID:      "maya",
			Age:     domain.KnownAge(40),
			Quotas: []application.QuotaStatus{
				{Action: domain.ActionFollow, Used: 30, Limit: 60, Base: 60, Multiplier: 1},
			},
		},
		{
			Account: domain.Account{ID: "backup"},
			ID:      "backup",
			Age:     domain.UnknownAge,
			Quotas: []application.QuotaStatus{
				{Action: domain.ActionFollow, Used: 0, Limit: 60, Base: 60, Multiplier: 1},
			},
		},
	}, RenderOptions{})

	require.NoError(t, err)
	assert.Contains(t, output, "accounts: 2")
	assert.NotContains(t, output, "day:")
	assert.Contains(t, output, "age: 40 days (warmed up)")
	assert.Contains(t, output, "age: unknown (full quotas)")
	assert.Contains(t, output, "[============------------]")
	assert.Contains(t, output, "0/60")
	assert.NotContains(t, output, "[limit reached]")
}

func TestRenderMarksActionsWithoutQuota(t *testing.T) {
	output, err := Render([]application.Status{
		{
			Account: domain.Account{ID: "maya"},
			ID:      "maya",
			Quotas: []application.QuotaStatus{
				{Action: "repost", Used: 1, Limit: 0, Base: 0, Multiplier: 1},
				{Action: domain.ActionDM, Used: 0, Limit: 0, Base: 0, Multiplier: 1},
			},
		},
	}, RenderOptions{HideUnused: true})

	require.NoError(t, err)
	assert.Contains(t, output, "repost:")
	assert.Contains(t, output, "[no quota]")
	assert.NotContains(t, output, "direct messages:")
}

func TestRenderEmpty(t *testing.T) {
	output, err := Render(nil, RenderOptions{})

	require.NoError(t, err)
	assert.Contains(t, output, "accounts: 0")
	assert.Contains(t, output, "No accounts registered.")
}
