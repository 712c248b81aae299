package artifacts

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/samber/lo"

	"github.com/dogesoundclub/slogan-deploy/internal/domain"
	"github.com/dogesoundclub/slogan-deploy/internal/domain/models"
)

// Builder produces artifacts before they are indexed
type Builder interface {
	Compile(ctx context.Context) error
}

// Repository discovers and indexes compiled contract artifacts
type Repository struct {
	projectRoot string
	dir         string
	builder     Builder
	artifacts   map[string]*models.Artifact   // key: "sourceName:contractName"
	byName      map[string][]*models.Artifact // key: contract name
	log         *slog.Logger
	mu          sync.RWMutex
	indexed     bool
}

// NewRepository creates a repository over dir. builder may be nil to use
// whatever artifacts are already on disk.
func NewRepository(projectRoot, dir string, builder Builder, log *slog.Logger) *Repository {
	return &Repository{
		projectRoot: projectRoot,
		dir:         dir,
		builder:     builder,
		log:         log,
		artifacts:   make(map[string]*models.Artifact),
		byName:      make(map[string][]*models.Artifact),
	}
}

// Index builds the project (if configured) and walks the artifacts directory
func (r *Repository) Index(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexed {
		return nil
	}

	if r.builder != nil {
		if err := r.builder.Compile(ctx); err != nil {
			return fmt.Errorf("failed to compile contracts: %w", err)
		}
	}

	if _, err := os.Stat(r.dir); os.IsNotExist(err) {
		return fmt.Errorf("artifacts directory %s not found, compile the project first", r.dir)
	}

	r.artifacts = make(map[string]*models.Artifact)
	r.byName = make(map[string][]*models.Artifact)

	err := filepath.WalkDir(r.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == "build-info" || d.Name() == "cache" {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".json" || strings.HasSuffix(path, ".dbg.json") {
			return nil
		}
		return r.processArtifact(path)
	})
	if err != nil {
		return fmt.Errorf("failed to index artifacts in %s: %w", r.dir, err)
	}

	r.log.Debug("indexed artifacts", "dir", r.dir, "count", len(r.artifacts))
	r.indexed = true
	return nil
}

// processArtifact reads a single artifact file into the indexes
func (r *Repository) processArtifact(path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from walking the artifacts dir
	if err != nil {
		return err
	}

	var artifact models.Artifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		// Not every JSON file under the artifacts dir is a contract artifact
		r.log.Debug("skipping unreadable artifact", "path", path, "error", err)
		return nil
	}

	// Foundry artifacts carry the name in the compilation target only
	if artifact.ContractName == "" && artifact.Metadata != nil {
		for source, name := range artifact.Metadata.Settings.CompilationTarget {
			artifact.SourceName = source
			artifact.ContractName = name
		}
	}

	if artifact.ContractName == "" || len(artifact.ABI) == 0 {
		return nil
	}

	if rel, err := filepath.Rel(r.projectRoot, path); err == nil {
		artifact.ArtifactPath = rel
	} else {
		artifact.ArtifactPath = path
	}

	key := artifact.FullyQualifiedName()
	if _, exists := r.artifacts[key]; exists {
		return nil
	}
	r.artifacts[key] = &artifact
	r.byName[artifact.ContractName] = append(r.byName[artifact.ContractName], &artifact)

	return nil
}

// GetArtifact finds a deployable artifact by contract name or "sourceName:contractName"
func (r *Repository) GetArtifact(ctx context.Context, name string) (*models.Artifact, error) {
	if err := r.Index(ctx); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	artifact, err := r.lookup(name)
	if err != nil {
		return nil, err
	}

	if artifact.Bytecode.Empty() {
		return nil, fmt.Errorf("%w: %s", domain.ErrNoBytecode, artifact.FullyQualifiedName())
	}
	if artifact.NeedsLinking() {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnlinkedLibraries, artifact.FullyQualifiedName())
	}

	return artifact, nil
}

func (r *Repository) lookup(name string) (*models.Artifact, error) {
	if artifact, ok := r.artifacts[name]; ok {
		return artifact, nil
	}

	matches := r.byName[name]
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("%w: %s (no artifact under %s)", domain.ErrContractNotFound, name, r.dir)
	case 1:
		return matches[0], nil
	}

	// Prefer the only deployable candidate when the rest are interfaces
	deployable := lo.Filter(matches, func(a *models.Artifact, _ int) bool {
		return !a.Bytecode.Empty()
	})
	if len(deployable) == 1 {
		return deployable[0], nil
	}

	return nil, domain.AmbiguousContractErr{Name: name, Matches: matches}
}
