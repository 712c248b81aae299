package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/dogesoundclub/slogan-deploy/internal/domain/models"
)

// Sentinel errors for domain operations
var (
	// ErrProjectNotFound is returned when no project root can be located
	ErrProjectNotFound = errors.New("project not found")

	// ErrContractNotFound is returned when no artifact matches a contract name
	ErrContractNotFound = errors.New("contract not found")

	// ErrNoBytecode is returned for artifacts without creation code (interfaces, abstract contracts)
	ErrNoBytecode = errors.New("artifact has no deployable bytecode")

	// ErrUnlinkedLibraries is returned when creation code still contains library placeholders
	ErrUnlinkedLibraries = errors.New("artifact has unlinked library references")

	// ErrNetworkNotFound is returned when a network name is not configured
	ErrNetworkNotFound = errors.New("network not found")

	// ErrNoRPCURL is returned when a network has no RPC endpoint
	ErrNoRPCURL = errors.New("network has no RPC URL")

	// ErrNoAccount is returned when a network has no deployer account
	ErrNoAccount = errors.New("no deployer account configured")

	// ErrInvalidAccount is returned when a private key or mnemonic can't be used
	ErrInvalidAccount = errors.New("invalid deployer account")

	// ErrNotConnected is returned when the chain client is used before Connect
	ErrNotConnected = errors.New("not connected to network")

	// ErrDeploymentReverted is returned when the deployment receipt has a failed status
	ErrDeploymentReverted = errors.New("deployment transaction reverted")

	// ErrNoCodeAtAddress is returned when a mined deployment left no code behind
	ErrNoCodeAtAddress = errors.New("no code at deployed address")
)

// ChainIDMismatchErr is returned when the RPC endpoint serves a different chain than configured
type ChainIDMismatchErr struct {
	Network  string
	Expected uint64
	Actual   uint64
}

func (e ChainIDMismatchErr) Error() string {
	return fmt.Sprintf("chain ID mismatch for network %s: expected %d, got %d", e.Network, e.Expected, e.Actual)
}

// AmbiguousContractErr is returned when a bare contract name matches several artifacts
type AmbiguousContractErr struct {
	Name    string
	Matches []*models.Artifact
}

func (e AmbiguousContractErr) Error() string {
	sorted := make([]*models.Artifact, len(e.Matches))
	copy(sorted, e.Matches)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].FullyQualifiedName() < sorted[j].FullyQualifiedName()
	})

	var suggestions []string
	for _, artifact := range sorted {
		suggestions = append(suggestions, fmt.Sprintf("  - %s", artifact.FullyQualifiedName()))
	}

	return fmt.Sprintf("multiple contracts named %s - use the path:name format to disambiguate:\n%s",
		e.Name, strings.Join(suggestions, "\n"))
}
