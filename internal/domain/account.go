package domain

import (
	"fmt"
	"strings"
	"time"
)

type AccountID string

type Account struct {
	ID            AccountID
	Name          string
	CreatedOn     time.Time
	PolicyPath    string
	CredentialRef string
}

func (a Account) Validate() error {
	if strings.TrimSpace(string(a.ID)) == "" {
		return fmt.Errorf("id is required")
	}
	if strings.ContainsAny(string(a.ID), `/\`) || strings.HasPrefix(string(a.ID), ".") {
		return fmt.Errorf("invalid account id %q", a.ID)
	}

	return nil
}

// Age returns the whole days elapsed since CreatedOn. A missing creation date
// or one in the future yields an unknown age.
func (a Account) Age(now time.Time) AccountAge {
	if a.CreatedOn.IsZero() {
		return UnknownAge
	}

	elapsed := now.UTC().Sub(a.CreatedOn.UTC())
	if elapsed < 0 {
		return UnknownAge
	}

	return KnownAge(int(elapsed / (24 * time.Hour)))
}

// AccountAge is a day count that may be unknown. Unknown ages are treated as
// fully warmed up.
type AccountAge struct {
	Days  int
	Known bool
}

var UnknownAge = AccountAge{}

func KnownAge(days int) AccountAge {
	if days < 0 {
		return UnknownAge
	}

	return AccountAge{Days: days, Known: true}
}

func (a AccountAge) String() string {
	if !a.Known {
		return "unknown"
	}

	return fmt.Sprintf("%dd", a.Days)
}
