package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Rules holds the business limits enforced by the ledger service.
// Amounts are integers in the community currency.
type Rules struct {
	// MinAmount is the smallest accepted amount for any operation.
	MinAmount int64 `yaml:"min_amount"`
	// Per-operation ceilings.
	MaxDeposit  int64 `yaml:"max_deposit"`
	MaxWithdraw int64 `yaml:"max_withdraw"`
	MaxRequest  int64 `yaml:"max_request"`
	MaxDonate   int64 `yaml:"max_donate"`
	MaxTransfer int64 `yaml:"max_transfer"`
	// MinBalance is the floor a transfer may not push the sender below.
	MinBalance int64 `yaml:"min_balance"`
	// AuditLimit is the default page size for pending-transaction listings.
	AuditLimit int `yaml:"audit_limit"`
}

// DefaultRules returns the built-in business limits.
func DefaultRules() Rules {
	return Rules{
		MinAmount:   1,
		MaxDeposit:  1_000_000_000_000, // 1T
		MaxWithdraw: 1_000_000_000_000, // 1T
		MaxRequest:  100_000_000_000,   // 100B
		MaxDonate:   1_000_000_000_000, // 1T
		MaxTransfer: 1_000_000_000_000, // 1T
		MinBalance:  -1_000_000_000,    // -1B
		AuditLimit:  20,
	}
}

// rulesFile mirrors Rules with pointer fields so an absent key is
// distinguishable from an explicit zero (e.g. min_balance: 0 meaning
// no overdraft).
type rulesFile struct {
	MinAmount   *int64 `yaml:"min_amount"`
	MaxDeposit  *int64 `yaml:"max_deposit"`
	MaxWithdraw *int64 `yaml:"max_withdraw"`
	MaxRequest  *int64 `yaml:"max_request"`
	MaxDonate   *int64 `yaml:"max_donate"`
	MaxTransfer *int64 `yaml:"max_transfer"`
	MinBalance  *int64 `yaml:"min_balance"`
	AuditLimit  *int   `yaml:"audit_limit"`
}

// LoadRules loads business rules from a YAML file. Keys left unset in
// the file keep their default values, so a partial file is valid. An
// empty path returns the defaults.
func LoadRules(path string) (Rules, error) {
	rules := DefaultRules()

	if path == "" {
		return rules, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return rules, fmt.Errorf("failed to read rules file: %w", err)
	}

	var file rulesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return rules, fmt.Errorf("failed to parse rules file: %w", err)
	}

	if file.MinAmount != nil {
		rules.MinAmount = *file.MinAmount
	}
	if file.MaxDeposit != nil {
		rules.MaxDeposit = *file.MaxDeposit
	}
	if file.MaxWithdraw != nil {
		rules.MaxWithdraw = *file.MaxWithdraw
	}
	if file.MaxRequest != nil {
		rules.MaxRequest = *file.MaxRequest
	}
	if file.MaxDonate != nil {
		rules.MaxDonate = *file.MaxDonate
	}
	if file.MaxTransfer != nil {
		rules.MaxTransfer = *file.MaxTransfer
	}
	if file.MinBalance != nil {
		rules.MinBalance = *file.MinBalance
	}
	if file.AuditLimit != nil {
		rules.AuditLimit = *file.AuditLimit
	}

	return rules, nil
}
