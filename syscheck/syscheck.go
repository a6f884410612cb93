// Package syscheck gathers host facts for the system information report.
package syscheck

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// DefaultCommand is the checker shipped with the station packages.
const DefaultCommand = "/usr/bin/airtime-check-system"

// Command runs an external checker that prints one key=value pair per line.
type Command struct {
	Path string
	Args []string
}

// NewCommand returns a Command for path, or for DefaultCommand when path is empty.
func NewCommand(path string, args ...string) *Command {
	if path == "" {
		path = DefaultCommand
	}
	return &Command{Path: path, Args: args}
}

// Check runs the checker and returns its non-blank output lines.
func (c *Command) Check(ctx context.Context) ([]string, error) {
	out, err := exec.CommandContext(ctx, c.Path, c.Args...).Output()
	if err != nil {
		return nil, fmt.Errorf("running %s: %w", c.Path, err)
	}
	return splitLines(out), nil
}

func splitLines(out []byte) []string {
	var lines []string
	sc := bufio.NewScanner(bytes.NewReader(out))
	for sc.Scan() {
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
