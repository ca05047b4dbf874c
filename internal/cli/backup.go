package cli

import (
	"fmt"

	"github.com/pouchfree/pouchfree/internal/backup"
)

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	path, err := backup.NewManager(ctx.Store.GetConfigPath()).Create()
	if err != nil {
		return fmt.Errorf("creating backup: %w", err)
	}
	fmt.Printf("Backup created: %s\n", path)
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *Context) error {
	backups, err := backup.NewManager(ctx.Store.GetConfigPath()).List()
	if err != nil {
		return fmt.Errorf("listing backups: %w", err)
	}
	if len(backups) == 0 {
		fmt.Println("No backups found.")
		return nil
	}

	for _, b := range backups {
		fmt.Printf("%s  %s  %d bytes\n", b.Timestamp.Format("2006-01-02 15:04:05"), b.Path, b.Size)
	}
	return nil
}

type BackupRestoreCmd struct {
	Path string `arg:"" help:"Backup file to restore from."`
}

func (c *BackupRestoreCmd) Run(ctx *Context) error {
	if err := backup.NewManager(ctx.Store.GetConfigPath()).Restore(c.Path); err != nil {
		return fmt.Errorf("restoring backup: %w", err)
	}
	fmt.Println("Backup restored. A pre-restore copy of the previous database was kept.")
	return nil
}
