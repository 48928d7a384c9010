package internal

import (
	"fmt"
	"os"
	"path/filepath"
)

// Vault is the on-disk layout the pipeline works against. Everything
// lives under one root so the whole state can be moved or wiped as a
// unit.
type Vault struct {
	Inbox     string // incoming message files
	Processed string // messages after a successful pipeline run
	Actions   string // reply drafts and task files
	Logs      string // audit entries
	Archive   string // BadgerDB store
	Index     string // Bluge search index
}

func NewVault(root string) Vault {
	return Vault{
		Inbox:     filepath.Join(root, "inbox"),
		Processed: filepath.Join(root, "processed"),
		Actions:   filepath.Join(root, "actions"),
		Logs:      filepath.Join(root, "logs"),
		Archive:   filepath.Join(root, "archive"),
		Index:     filepath.Join(root, "index"),
	}
}

// Ensure creates every vault directory that doesn't exist yet.
func (v Vault) Ensure() error {
	for _, dir := range []string{v.Inbox, v.Processed, v.Actions, v.Logs, v.Archive, v.Index} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("vault setup: %w", err)
		}
	}
	return nil
}
