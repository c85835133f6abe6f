package radial

import (
	"os/exec"
	"strings"

	"radialmenu/src/logx"
)

// ActionRunner executes an opaque action payload resolved from a gesture.
// The ring never interprets the string; hosts pick the runner.
type ActionRunner interface {
	Run(script string) error
}

// LogRunner only records what would have run. Used by the editor preview,
// where triggering real actions on click would be hostile.
type LogRunner struct {
	Logx logx.Logger
}

func (lr *LogRunner) Run(script string) error {
	if strings.TrimSpace(script) == "" {
		return nil
	}
	lr.Logx.Infof("action: %s", script)
	return nil
}

// ExecRunner pipes the payload to a configured interpreter on stdin.
type ExecRunner struct {
	Interpreter string // e.g. "/bin/sh", "python3"
	Args        []string
	Logx        logx.Logger
}

func (er *ExecRunner) Run(script string) error {
	if strings.TrimSpace(script) == "" {
		return nil
	}
	cmd := exec.Command(er.Interpreter, er.Args...)
	cmd.Stdin = strings.NewReader(script)
	out, err := cmd.CombinedOutput()
	if err != nil {
		er.Logx.Errorf("action failed: %v: %s", err, strings.TrimSpace(string(out)))
		return err
	}
	if len(out) > 0 {
		er.Logx.Debugf("action output: %s", strings.TrimSpace(string(out)))
	}
	return nil
}
