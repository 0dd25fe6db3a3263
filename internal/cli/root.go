package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/julianstephens/dayplan/internal/backup"
	"github.com/julianstephens/dayplan/internal/config"
	"github.com/julianstephens/dayplan/internal/logger"
	"github.com/julianstephens/dayplan/internal/state"
	"github.com/julianstephens/dayplan/internal/storage"
	"github.com/julianstephens/dayplan/internal/utils"
)

// Context is handed to every command's Run method by kong.
type Context struct {
	Store     *state.Store
	Provider  storage.Provider
	Config    *config.Config
	ConfigDir string

	// Out and In default to the colorable stdout and os.Stdin.
	Out io.Writer
	In  io.Reader
}

func (c *Context) Writer() io.Writer {
	if c.Out != nil {
		return c.Out
	}
	return color.Output
}

func (c *Context) Reader() io.Reader {
	if c.In != nil {
		return c.In
	}
	return os.Stdin
}

func (c *Context) Printf(format string, a ...interface{}) {
	_, _ = fmt.Fprintf(c.Writer(), format, a...)
}

func (c *Context) Println(a ...interface{}) {
	_, _ = fmt.Fprintln(c.Writer(), a...)
}

// BackupManager returns a backup manager rooted at the config directory.
func (c *Context) BackupManager() *backup.Manager {
	return backup.NewManager(c.ConfigDir, c.Store)
}

// PerformAutomaticBackup snapshots the plan before an interactive session.
// A failed snapshot is logged and the command carries on.
func (c *Context) PerformAutomaticBackup() {
	if _, err := c.BackupManager().CreateBackup(); err != nil {
		logger.Warn("automatic backup failed", "dir", c.BackupManager().GetBackupDir(), "error", err)
	}
}

// ResolveDate turns "today", "yesterday", "tomorrow" or an ISO date into
// an ISO date relative to the store's clock.
func (c *Context) ResolveDate(s string) (string, error) {
	today := c.Store.Today()
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "today":
		return today, nil
	case "yesterday":
		return utils.ShiftDate(today, -1)
	case "tomorrow":
		return utils.ShiftDate(today, 1)
	}
	if _, err := utils.ParseDate(s); err != nil {
		return "", fmt.Errorf("%w: %q (use YYYY-MM-DD, today, yesterday or tomorrow)", state.ErrInvalidDate, s)
	}
	return s, nil
}

// Report prints the outcome of a mutation. Soft rejections are not errors.
func (c *Context) Report(applied bool, err error, done, reason string) error {
	if err != nil {
		return err
	}
	if !applied {
		c.NotApplied(reason)
		return nil
	}
	c.Success(done)
	return nil
}

// Confirm asks a yes/no question on the context's reader. EOF counts as no.
func (c *Context) Confirm(question string) (bool, error) {
	c.Printf("%s [y/N]: ", question)
	reader := bufio.NewReader(c.Reader())
	response, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}
