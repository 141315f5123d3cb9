package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
)

// Environment passed to extensions, carrying the global flags.
const (
	EnvConfigFile = "PEC_CONFIG_FILE"
	EnvEnvFile    = "PEC_ENV_FILE"
	EnvLogLevel   = "PEC_LOG_LEVEL"
)

// ExtensionPrefix prefixes the executables run as pec subcommands.
const ExtensionPrefix = "pec-"

// RunExtension attempts to find and execute an external pec-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found.
func RunExtension(subcommand string, args []string) (bool, int) {
	name := ExtensionPrefix + subcommand

	lp, err := exec.LookPath(name)
	if err != nil {
		slog.Debug("extension not found in PATH", "command", name, "error", err)
		return false, 0
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	cmd.Env = append(os.Environ(),
		EnvConfigFile+"="+*configFile,
		EnvEnvFile+"="+*envFile,
	)
	if *logLevel != "" {
		cmd.Env = append(cmd.Env, EnvLogLevel+"="+*logLevel)
	}

	if err := cmd.Run(); err != nil {
		var exitError *exec.ExitError
		if errors.As(err, &exitError) {
			return true, exitError.ExitCode()
		}
		fmt.Fprintf(os.Stderr, "Error executing external command %q: %v\n", name, err)
		return true, 1
	}
	return true, 0
}
