package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Bytecode holds creation or runtime code from a compiler artifact.
// Hardhat stores it as a plain hex string, Foundry as an object with an
// "object" field and per-bytecode link references.
type Bytecode struct {
	Object         string
	LinkReferences map[string]map[string][]LinkReference
}

// LinkReference marks a library placeholder inside bytecode
type LinkReference struct {
	Start  int `json:"start"`
	Length int `json:"length"`
}

func (b *Bytecode) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	if data[0] == '"' {
		return json.Unmarshal(data, &b.Object)
	}

	var obj struct {
		Object         string                                `json:"object"`
		LinkReferences map[string]map[string][]LinkReference `json:"linkReferences"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("invalid bytecode: %w", err)
	}
	b.Object = obj.Object
	b.LinkReferences = obj.LinkReferences
	return nil
}

func (b Bytecode) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.Object)
}

// Empty reports whether there is no code to deploy
func (b Bytecode) Empty() bool {
	return b.Object == "" || b.Object == "0x"
}

// Artifact is a compiled contract read from the artifacts directory
type Artifact struct {
	Format           string                                `json:"_format,omitempty"`
	ContractName     string                                `json:"contractName"`
	SourceName       string                                `json:"sourceName"`
	ABI              json.RawMessage                       `json:"abi"`
	Bytecode         Bytecode                              `json:"bytecode"`
	DeployedBytecode Bytecode                              `json:"deployedBytecode"`
	LinkReferences   map[string]map[string][]LinkReference `json:"linkReferences,omitempty"`
	Metadata         *ArtifactMetadata                     `json:"metadata,omitempty"`

	// ArtifactPath is the artifact file relative to the project root
	ArtifactPath string `json:"-"`
}

// ArtifactMetadata is the subset of solc metadata Foundry embeds in its artifacts
type ArtifactMetadata struct {
	Compiler struct {
		Version string `json:"version"`
	} `json:"compiler"`
	Settings struct {
		CompilationTarget map[string]string `json:"compilationTarget"`
	} `json:"settings"`
}

// FullyQualifiedName returns "sourceName:contractName"
func (a *Artifact) FullyQualifiedName() string {
	return fmt.Sprintf("%s:%s", a.SourceName, a.ContractName)
}

// NeedsLinking reports whether the creation code references libraries that
// were never linked in.
func (a *Artifact) NeedsLinking() bool {
	if len(a.LinkReferences) > 0 || len(a.Bytecode.LinkReferences) > 0 {
		return true
	}
	return strings.Contains(a.Bytecode.Object, "__$")
}
