package service

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"

	"inkwell/app/session"
)

const (
	outputFlag = "output"
	inputFlag  = "input"
)

func (c *cli) newSessionsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "Manage the session store",
	}
	cmd.AddCommand(c.newSessionsClearCommand(), c.newSessionsBackupCommand(), c.newSessionsRestoreCommand())
	return cmd
}

func (c *cli) openSessions() (*session.Store, error) {
	if c.cfg.Session.Path == "" {
		return nil, errors.New("session.path is empty: the in-memory store cannot be managed offline")
	}
	return session.Open(session.Options{
		Path:       c.cfg.Session.Path,
		TTL:        c.cfg.Session.TTL,
		CookieName: c.cfg.Session.CookieName,
	}, c.log.Named("session"))
}

func (c *cli) newSessionsClearCommand() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Log everybody out by removing all sessions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := c.openSessions()
			if err != nil {
				return err
			}
			defer store.Close()

			n, err := store.Count()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if n == 0 {
				fmt.Fprintln(out, "No sessions to clear")
				return nil
			}

			if !yes {
				fmt.Fprintf(out, "Remove %d sessions? Every user will be logged out. [y/N] ", n)
				answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				answer = strings.TrimSpace(answer)
				if answer != "y" && answer != "Y" {
					fmt.Fprintln(out, "Operation cancelled")
					return nil
				}
			}

			if err := store.Clear(); err != nil {
				return err
			}
			fmt.Fprintf(out, "Cleared %d sessions\n", n)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}

func (c *cli) newSessionsBackupCommand() *cobra.Command {
	flags := map[string]cobraflags.Flag{
		outputFlag: &cobraflags.StringFlag{
			Name:  outputFlag,
			Value: "",
			Usage: "File to write the backup to (required)",
		},
	}
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Write a backup of the session store",
		RunE: func(cmd *cobra.Command, _ []string) error {
			output := flags[outputFlag].GetString()
			if output == "" {
				return errors.New("--output is required")
			}

			store, err := c.openSessions()
			if err != nil {
				return err
			}
			defer store.Close()

			if err := writeBackup(store, output); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Backup created successfully: %s\n", output)
			return nil
		},
	}
	cobraflags.RegisterMap(cmd, flags)
	return cmd
}

// writeBackup dumps store into path. Errors from closing the file are returned.
func writeBackup(store backupWriter, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create backup file: %w", err)
	}
	if err := store.Backup(f); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close backup file: %w", err)
	}
	return nil
}

type backupWriter interface {
	Backup(w io.Writer) error
}

func (c *cli) newSessionsRestoreCommand() *cobra.Command {
	flags := map[string]cobraflags.Flag{
		inputFlag: &cobraflags.StringFlag{
			Name:  inputFlag,
			Value: "",
			Usage: "Backup file to load (required)",
		},
	}
	cmd := &cobra.Command{
		Use:   "restore",
		Short: "Load a session backup into the store",
		RunE: func(cmd *cobra.Command, _ []string) error {
			input := flags[inputFlag].GetString()
			if input == "" {
				return errors.New("--input is required")
			}

			info, err := os.Stat(input)
			if err != nil {
				return fmt.Errorf("backup file: %w", err)
			}
			if info.Size() == 0 {
				return fmt.Errorf("backup file is empty: %s", input)
			}

			f, err := os.Open(input)
			if err != nil {
				return fmt.Errorf("open backup file: %w", err)
			}
			defer f.Close()

			store, err := c.openSessions()
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.Restore(f); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Sessions restored from %s\n", input)
			return nil
		},
	}
	cobraflags.RegisterMap(cmd, flags)
	return cmd
}
