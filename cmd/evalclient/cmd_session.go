package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func runReset(cmd *cobra.Command, args []string) error {
	e, err := setupEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	if err := e.store.Clear(cmd.Context()); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Passphrase forgotten.")
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	e, err := setupEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	_, ok, err := e.store.Read(cmd.Context())
	if err != nil {
		return fmt.Errorf("read session: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Workspace:     %s\n", e.ws.Root)
	fmt.Fprintf(out, "Solution file: %s", e.ws.StudentFile)
	if !e.ws.HasStudentFile() {
		fmt.Fprint(out, " (missing)")
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Server:        %s\n", e.cfg.BaseURL())
	if ok {
		fmt.Fprintln(out, "Session:       stored")
	} else {
		fmt.Fprintln(out, "Session:       none")
	}
	return nil
}
