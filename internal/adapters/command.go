package adapters

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/go-viper/mapstructure/v2"
)

// CommandAdapterArgs holds the mapstructure-decoded settings for a command
// adapter.
type CommandAdapterArgs struct {
	// Command is the executable to run. The prompt is written to stdin and
	// stdout is returned as the tool's output.
	Command string `mapstructure:"command"`
	// Args are passed to the command verbatim.
	Args []string `mapstructure:"args"`
	// Env entries ("KEY=VALUE") are appended to the inherited environment.
	Env []string `mapstructure:"env"`
}

// commandAdapter drives an external AI tool through its CLI: prompt in via
// stdin, output out via stdout.
type commandAdapter struct {
	name string
	args CommandAdapterArgs
}

// NewCommandAdapter creates an adapter that shells out to an external
// command. params is decoded into [CommandAdapterArgs].
func NewCommandAdapter(name string, params map[string]any) (ToolAdapter, error) {
	var args CommandAdapterArgs
	if err := mapstructure.Decode(params, &args); err != nil {
		return nil, fmt.Errorf("decoding command adapter config for %q: %w", name, err)
	}
	if args.Command == "" {
		return nil, fmt.Errorf("command adapter %q: command is required", name)
	}
	return &commandAdapter{name: name, args: args}, nil
}

func (a *commandAdapter) Name() string { return a.name }

func (a *commandAdapter) IsAvailable() bool {
	_, err := exec.LookPath(a.args.Command)
	return err == nil
}

func (a *commandAdapter) Execute(ctx context.Context, prompt string, config map[string]any) (string, error) {
	args := a.args
	if len(config) > 0 {
		// Per-execution config overrides the adapter defaults.
		if err := mapstructure.Decode(config, &args); err != nil {
			return "", fmt.Errorf("decoding execution config for %q: %w", a.name, err)
		}
	}

	cmd := exec.CommandContext(ctx, args.Command, args.Args...)
	cmd.Stdin = strings.NewReader(prompt)
	if len(args.Env) > 0 {
		cmd.Env = append(cmd.Environ(), args.Env...)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return "", fmt.Errorf("%s: %w: %s", a.args.Command, err, msg)
		}
		return "", fmt.Errorf("%s: %w", a.args.Command, err)
	}

	return stdout.String(), nil
}
