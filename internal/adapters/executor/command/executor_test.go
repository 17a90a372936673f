package command

import (
	"context"
	"errors"
	"testing"

	"github.com/bnema/pacer/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProviderWithoutCommandReportsNoExecutor(t *testing.T) {
	t.Parallel()

	provider := NewProvider(nil, "PACER_CREDENTIAL", nil)

	_, err := provider.ExecutorFor(domain.Account{ID: "maya"}, domain.ActionLike)
	require.ErrorIs(t, err, domain.ErrNoExecutor)
}

func TestExecutorPassesActionTargetAndCredential(t *testing.T) {
	t.Parallel()

	var gotArgv, gotEnv []string
	provider := NewProvider([]string{"insta-client", "--quiet"}, "PACER_CREDENTIAL", func(ctx context.Context, account domain.Account) (string, error) {
		assert.Equal(t, domain.AccountID("maya"), account.ID)
		return "cookie", nil
	})
	provider.run = func(ctx context.Context, argv []string, env []string) (string, error) {
		gotArgv, gotEnv = argv, env
		return "", nil
	}

	executor, err := provider.ExecutorFor(domain.Account{ID: "maya"}, domain.ActionFollow)
	require.NoError(t, err)
	require.NoError(t, executor.Execute(context.Background(), "user-42"))

	assert.Equal(t, []string{"insta-client", "--quiet", "follow", "user-42"}, gotArgv)
	assert.Equal(t, []string{
		"PACER_ACCOUNT=maya",
		"PACER_ACTION=follow",
		"PACER_TARGET=user-42",
		"PACER_CREDENTIAL=cookie",
	}, gotEnv)
}

func TestExecutorOmitsEmptyCredential(t *testing.T) {
	t.Parallel()

	provider := NewProvider([]string{"client"}, "PACER_CREDENTIAL", func(context.Context, domain.Account) (string, error) {
		return "", nil
	})
	provider.run = func(ctx context.Context, argv []string, env []string) (string, error) {
		assert.Len(t, env, 3)
		return "", nil
	}

	executor, err := provider.ExecutorFor(domain.Account{ID: "maya"}, domain.ActionLike)
	require.NoError(t, err)
	require.NoError(t, executor.Execute(context.Background(), "post-1"))
}

func TestExecutorWrapsCommandFailure(t *testing.T) {
	t.Parallel()

	provider := NewProvider([]string{"client"}, "", nil)
	provider.run = func(ctx context.Context, argv []string, env []string) (string, error) {
		return "rate limited by upstream", errors.New("exit status 3")
	}

	executor, err := provider.ExecutorFor(domain.Account{ID: "maya"}, domain.ActionComment)
	require.NoError(t, err)

	err = executor.Execute(context.Background(), "post-9")
	require.Error(t, err)
	assert.ErrorContains(t, err, "execute comment post-9")
	assert.ErrorContains(t, err, "rate limited by upstream")
}

func TestExecutorCredentialFailureSkipsCommand(t *testing.T) {
	t.Parallel()

	lookupErr := errors.New("pass locked")
	provider := NewProvider([]string{"client"}, "PACER_CREDENTIAL", func(context.Context, domain.Account) (string, error) {
		return "", lookupErr
	})
	provider.run = func(ctx context.Context, argv []string, env []string) (string, error) {
		t.Fatal("command should not run")
		return "", nil
	}

	executor, err := provider.ExecutorFor(domain.Account{ID: "maya"}, domain.ActionLike)
	require.NoError(t, err)
	require.ErrorIs(t, executor.Execute(context.Background(), "post-1"), lookupErr)
}

func TestExecutorHonoursCancelledContext(t *testing.T) {
	t.Parallel()

	provider := NewProvider([]string{"client"}, "", nil)
	provider.run = func(ctx context.Context, argv []string, env []string) (string, error) {
		t.Fatal("command should not run")
		return "", nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	executor, err := provider.ExecutorFor(domain.Account{ID: "maya"}, domain.ActionLike)
	require.NoError(t, err)
	require.ErrorIs(t, executor.Execute(ctx, "post-1"), context.Canceled)
}
