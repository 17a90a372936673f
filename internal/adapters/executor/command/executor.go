package command

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/bnema/pacer/internal/domain"
	"github.com/bnema/pacer/internal/ports"
)

// CredentialFunc resolves the credential handed to the child process. An
// empty string means the account has none.
type CredentialFunc func(ctx context.Context, account domain.Account) (string, error)

type runFunc func(ctx context.Context, argv []string, env []string) (stderr string, err error)

// Provider builds executors that run an external action client once per
// candidate: argv is the configured prefix followed by the action type and
// the candidate ID.
type Provider struct {
	argv          []string
	credentialEnv string
	credential    CredentialFunc
	run           runFunc
}

var _ ports.ExecutorProvider = (*Provider)(nil)

func NewProvider(argv []string, credentialEnv string, credential CredentialFunc) *Provider {
	return &Provider{
		argv:          append([]string(nil), argv...),
		credentialEnv: credentialEnv,
		credential:    credential,
		run:           runCommand,
	}
}

func (p *Provider) ExecutorFor(account domain.Account, action domain.ActionType) (ports.ActionExecutor, error) {
	if len(p.argv) == 0 || strings.TrimSpace(p.argv[0]) == "" {
		return nil, fmt.Errorf("%w: executor.command is not configured", domain.ErrNoExecutor)
	}

	return &Executor{provider: p, account: account, action: action}, nil
}

// Executor runs one action type for one account.
type Executor struct {
	provider *Provider
	account  domain.Account
	action   domain.ActionType
}

var _ ports.ActionExecutor = (*Executor)(nil)

func (e *Executor) Execute(ctx context.Context, candidateID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := []string{
		"PACER_ACCOUNT=" + string(e.account.ID),
		"PACER_ACTION=" + string(e.action),
		"PACER_TARGET=" + candidateID,
	}
	if e.provider.credential != nil && e.provider.credentialEnv != "" {
		value, err := e.provider.credential(ctx, e.account)
		if err != nil {
			return fmt.Errorf("resolve credential: %w", err)
		}
		if value != "" {
			env = append(env, e.provider.credentialEnv+"="+value)
		}
	}

	argv := append(append([]string(nil), e.provider.argv...), string(e.action), candidateID)
	stderr, err := e.provider.run(ctx, argv, env)
	if err != nil {
		if stderr == "" {
			return fmt.Errorf("execute %s %s: %w", e.action, candidateID, err)
		}
		return fmt.Errorf("execute %s %s: %w: %s", e.action, candidateID, err, stderr)
	}

	return nil
}

func runCommand(ctx context.Context, argv []string, env []string) (string, error) {
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Env = append(os.Environ(), env...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	return strings.TrimSpace(stderr.String()), err
}
