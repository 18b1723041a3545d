package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/centsible-dev/centsible/internal/categories"
	"github.com/centsible-dev/centsible/internal/classify"
	"github.com/centsible-dev/centsible/internal/config"
	"github.com/centsible-dev/centsible/internal/ledger"
)

// loadProfile opens a profile directory created by `centsible init` and
// loads everything the engine commands need from it.
func loadProfile(profileRoot string) (*profileEnv, error) {
	configPath := filepath.Join(profileRoot, "centsible.yaml")
	if _, err := os.Stat(configPath); err != nil {
		return nil, fmt.Errorf("%s is not a profile directory (run `centsible init` first)", profileRoot)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	cats, err := categories.Load(profileRoot)
	if err != nil {
		return nil, err
	}

	ledgerSvc := ledger.NewService(profileRoot)
	transactions, err := ledgerSvc.ReadAll()
	if err != nil {
		return nil, err
	}

	mappings, err := classify.LoadMappings(profileRoot)
	if err != nil {
		return nil, err
	}

	return &profileEnv{
		cfg:          cfg,
		registry:     cfg.Registry(),
		cats:         cats,
		ledgerSvc:    ledgerSvc,
		transactions: transactions,
		mappings:     mappings,
		mappingTable: classify.MappingTable(mappings),
		classifier:   classify.New(classify.DefaultPatterns(), cats),
	}, nil
}
