package pass

import (
	"context"
	"errors"
	"testing"

	"github.com/bnema/pacer/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorePutUsesPassInsert(t *testing.T) {
	t.Parallel()

	called := false
	store := &Store{
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			called = true
			assert.Equal(t, []string{"insert", "-m", "-f", "pacer/maya/credential"}, args)
			assert.Equal(t, "session-cookie\n", input)
			return "", "", nil
		},
	}

	require.NoError(t, store.Put(context.Background(), "pacer://maya/credential", "session-cookie"))
	assert.True(t, called)
}

func TestStoreGetReturnsFirstLine(t *testing.T) {
	t.Parallel()

	store := &Store{
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			assert.Equal(t, []string{"show", "pacer/maya/credential"}, args)
			assert.Empty(t, input)
			return "session-cookie\r\nlogin: maya\n", "", nil
		},
	}

	value, err := store.Get(context.Background(), "pacer://maya/credential")
	require.NoError(t, err)
	assert.Equal(t, "session-cookie", value)
}

func TestStoreGetMissingEntryWrapsNotFound(t *testing.T) {
	t.Parallel()

	store := &Store{
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			return "", "Error: pacer/ghost/credential is not in the password store.", errors.New("exit status 1")
		},
	}

	_, err := store.Get(context.Background(), "pacer://ghost/credential")
	require.ErrorIs(t, err, domain.ErrSecretNotFound)
}

func TestStoreDeleteUsesPassRemoveAndIgnoresMissing(t *testing.T) {
	t.Parallel()

	calls := 0
	store := &Store{
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			calls++
			assert.Equal(t, []string{"rm", "-f", "pacer/maya/credential"}, args)
			if calls == 2 {
				return "", "Error: pacer/maya/credential is not in the password store.", errors.New("exit status 1")
			}
			return "", "", nil
		},
	}

	require.NoError(t, store.Delete(context.Background(), "pacer://maya/credential"))
	require.NoError(t, store.Delete(context.Background(), "pacer://maya/credential"))
	assert.Equal(t, 2, calls)
}

func TestStoreGetReturnsClearError(t *testing.T) {
	t.Parallel()

	store := &Store{
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			return "", "gpg: decryption failed", errors.New("exit status 2")
		},
	}

	_, err := store.Get(context.Background(), "pacer://maya/credential")
	require.Error(t, err)
	assert.ErrorContains(t, err, "pass get")
	assert.ErrorContains(t, err, "pacer/maya/credential")
	assert.ErrorContains(t, err, "decryption failed")
}

func TestStoreRejectsInvalidKeyWithoutRunningPass(t *testing.T) {
	t.Parallel()

	store := &Store{
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			t.Fatal("pass should not run")
			return "", "", nil
		},
	}

	require.Error(t, store.Put(context.Background(), "../escape", "v"))
}
