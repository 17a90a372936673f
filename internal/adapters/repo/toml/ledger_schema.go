package toml

import (
	"fmt"
	"time"

	"github.com/bnema/pacer/internal/domain"
	toml "github.com/pelletier/go-toml/v2"
)

const currentLedgerSchemaVersion = 1

type ledgerFileSchema struct {
	Version int            `toml:"version"`
	Account string         `toml:"account"`
	Actions []actionSchema `toml:"actions"`
}

func (s *ledgerFileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentLedgerSchemaVersion
	}
}

func (s ledgerFileSchema) validateVersion() error {
	if s.Version > currentLedgerSchemaVersion {
		return fmt.Errorf("unsupported ledger schema version %d (current %d)", s.Version, currentLedgerSchemaVersion)
	}

	return nil
}

type actionSchema struct {
	Type   string `toml:"type"`
	Target string `toml:"target"`
	At     string `toml:"at"`
}

// EncodeLedger renders ledger as a versioned TOML document.
func EncodeLedger(account domain.AccountID, ledger domain.Ledger) ([]byte, error) {
	records := ledger.Records()
	file := ledgerFileSchema{
		Account: string(account),
		Actions: make([]actionSchema, 0, len(records)),
	}
	file.applyDefaults()

	for _, record := range records {
		file.Actions = append(file.Actions, actionSchema{
			Type:   string(record.Type),
			Target: record.Target,
			At:     formatTime(record.At),
		})
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return nil, fmt.Errorf("encode ledger: %w", err)
	}

	return data, nil
}

// DecodeLedger parses a document written by EncodeLedger. Undecodable input
// wraps domain.ErrLedgerCorrupt; a newer schema version does not, so callers
// never replace a ledger they merely fail to understand.
func DecodeLedger(data []byte) (domain.Ledger, error) {
	var file ledgerFileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return domain.Ledger{}, fmt.Errorf("%w: %w", domain.ErrLedgerCorrupt, err)
	}
	if err := file.validateVersion(); err != nil {
		return domain.Ledger{}, err
	}

	records := make([]domain.ActionRecord, 0, len(file.Actions))
	for i, action := range file.Actions {
		if action.Type == "" {
			return domain.Ledger{}, fmt.Errorf("%w: action %d has no type", domain.ErrLedgerCorrupt, i)
		}
		at, err := time.Parse(time.RFC3339, action.At)
		if err != nil {
			return domain.Ledger{}, fmt.Errorf("%w: action %d: %w", domain.ErrLedgerCorrupt, i, err)
		}
		records = append(records, domain.ActionRecord{
			Type:   domain.ActionType(action.Type),
			Target: action.Target,
			At:     at,
		})
	}

	return domain.NewLedger(records...), nil
}
