// Package domain holds the plugin contract: manifest validation, the
// capability vocabulary, and the types exchanged with a plugin process.
package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"slices"
	"strings"
)

var (
	ErrPluginDisabled    = errors.New("plugin is disabled")
	ErrChecksumMismatch  = errors.New("plugin checksum mismatch")
	ErrCapabilityMissing = errors.New("plugin capability missing")
	ErrCommandNotFound   = errors.New("plugin command not found")
	ErrPluginTimeout     = errors.New("plugin timeout")
)

// Capability declares what a plugin is allowed to do. Command plugins
// answer direct invocations; export plugins additionally write files
// into the directory the host points them at.
type Capability string

const (
	CapabilityCommand Capability = "command"
	CapabilityExport  Capability = "export"
)

func (c Capability) Validate() error {
	switch c {
	case CapabilityCommand, CapabilityExport:
		return nil
	default:
		return fmt.Errorf("unknown capability: %s", c)
	}
}

// CommandKind mirrors the capability vocabulary at the level of a single
// command: invoking a command of some kind requires the matching
// capability on the manifest.
type CommandKind string

const (
	CommandKindCommand CommandKind = "command"
	CommandKindExport  CommandKind = "export"
)

func (k CommandKind) Validate() error {
	switch k {
	case CommandKindCommand, CommandKindExport:
		return nil
	default:
		return fmt.Errorf("unknown command kind: %s", k)
	}
}

// RequiredCapability maps a command kind to the capability that gates it.
func (k CommandKind) RequiredCapability() Capability {
	return Capability(k)
}

// Manifest describes one installed plugin as declared in plugins.json.
// The binary is never launched unless its SHA256 still matches.
type Manifest struct {
	Name         string       `json:"name"`
	Version      string       `json:"version"`
	Binary       string       `json:"binary"`
	SHA256       string       `json:"sha256"`
	Enabled      bool         `json:"enabled"`
	Capabilities []Capability `json:"capabilities"`
}

func (m Manifest) Validate() error {
	switch {
	case m.Name == "":
		return fmt.Errorf("plugin name is required")
	case m.Version == "":
		return fmt.Errorf("plugin version is required")
	case m.Binary == "":
		return fmt.Errorf("plugin binary path is required")
	case !validSHA256(m.SHA256):
		return fmt.Errorf("plugin sha256 must be lowercase 64-char hex")
	case len(m.Capabilities) == 0:
		return fmt.Errorf("plugin capabilities are required")
	}
	for i, capability := range m.Capabilities {
		if err := capability.Validate(); err != nil {
			return err
		}
		if slices.Contains(m.Capabilities[:i], capability) {
			return fmt.Errorf("duplicate capability: %s", capability)
		}
	}
	return nil
}

func (m Manifest) HasCapability(capability Capability) bool {
	return slices.Contains(m.Capabilities, capability)
}

func validSHA256(s string) bool {
	raw, err := hex.DecodeString(s)
	return err == nil && len(raw) == sha256.Size && strings.ToLower(s) == s
}

// CommandDescriptor is one command a plugin advertises via ListCommands.
type CommandDescriptor struct {
	ID              string
	Title           string
	Description     string
	Kind            CommandKind
	InputSchemaJSON string
	TimeoutMS       int
}

func (d CommandDescriptor) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("command id is required")
	}
	return d.Kind.Validate()
}

// Metadata is the plugin's self-description returned on handshake.
type Metadata struct {
	Name         string
	Version      string
	Capabilities []Capability
}

// ExecuteContext carries the host-side facts a plugin may need: where
// the app keeps its files, which analysis the payload describes, and
// where artifacts should land.
type ExecuteContext struct {
	ConfigDir    string
	AnalysisID   string
	AccountEmail string
	Cwd          string
	Env          map[string]string
}

func (c ExecuteContext) Validate() error {
	if c.ConfigDir == "" {
		return fmt.Errorf("config dir is required")
	}
	if c.Cwd == "" {
		return fmt.Errorf("cwd is required")
	}
	return nil
}

// ExecuteRequest names the command to run and hands over its input.
type ExecuteRequest struct {
	CommandID string
	InputJSON string
	Context   ExecuteContext
}

func (r ExecuteRequest) Validate() error {
	if r.CommandID == "" {
		return fmt.Errorf("command id is required")
	}
	return r.Context.Validate()
}

// ExecuteResult is everything a finished plugin call produced.
type ExecuteResult struct {
	Stdout     string
	Stderr     string
	OutputJSON string
	ExitCode   int
}
