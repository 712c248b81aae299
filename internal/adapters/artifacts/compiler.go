package artifacts

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
)

// Compiler runs the project's build command so artifacts are fresh
type Compiler struct {
	projectRoot string
	command     []string
	log         *slog.Logger
}

// NewCompiler creates a compiler for a whitespace separated command line
func NewCompiler(projectRoot, command string, log *slog.Logger) *Compiler {
	return &Compiler{
		projectRoot: projectRoot,
		command:     strings.Fields(command),
		log:         log,
	}
}

// Compile runs the build command in the project root
func (c *Compiler) Compile(ctx context.Context) error {
	if len(c.command) == 0 {
		return nil
	}

	c.log.Debug("compiling contracts", "command", strings.Join(c.command, " "), "dir", c.projectRoot)

	cmd := exec.CommandContext(ctx, c.command[0], c.command[1:]...) //nolint:gosec // command comes from project config
	cmd.Dir = c.projectRoot

	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s failed: %w\nOutput: %s", strings.Join(c.command, " "), err, string(output))
	}

	return nil
}
