package cmd

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"strconv"
	"syscall"
)

const (
	EnvCPISource = "INV_CPI_SOURCE"
	EnvCurrency  = "INV_CURRENCY"
	EnvTaxPolicy = "INV_TAX_POLICY"
	EnvVerbose   = "INV_VERBOSE"
)

// RunExtension attempts to find and execute an external inv-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found or executed.
func RunExtension(subcommand string, args []string) (bool, int) {
	externalCmdName := "inv-" + subcommand

	// Look for the external command in PATH
	lp, err := exec.LookPath(externalCmdName)
	if err != nil {
		log.Printf("External command %q not found in PATH: %v", externalCmdName, err)
		return false, 0
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	// Pass the global flags set on the command line as environment
	// variables, the extension reads the rest of the configuration itself.
	cmd.Env = os.Environ()
	if *cpiSource != "" {
		cmd.Env = append(cmd.Env, EnvCPISource+"="+*cpiSource)
	}
	if *currency != "" {
		cmd.Env = append(cmd.Env, EnvCurrency+"="+*currency)
	}
	if *taxPolicy != "" {
		cmd.Env = append(cmd.Env, EnvTaxPolicy+"="+*taxPolicy)
	}
	cmd.Env = append(cmd.Env, EnvVerbose+"="+strconv.FormatBool(*Verbose))

	if err := cmd.Run(); err != nil {
		if exitError, ok := err.(*exec.ExitError); ok {
			if status, ok := exitError.Sys().(syscall.WaitStatus); ok {
				return true, status.ExitStatus()
			}
		}
		fmt.Fprintf(os.Stderr, "Error executing external command %q: %v\n", externalCmdName, err)
		return true, 1
	}

	return true, 0
}
