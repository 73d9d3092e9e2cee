package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// NewBackupCmd creates the backup command
func NewBackupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Backup and restore commands",
		Long:  "Backup database and restore from backups",
	}

	cmd.AddCommand(newBackupCreateCmd())
	cmd.AddCommand(newBackupListCmd())
	cmd.AddCommand(newBackupRestoreCmd())
	cmd.AddCommand(newBackupDeleteCmd())

	return cmd
}

func newBackupCreateCmd() *cobra.Command {
	var (
		output      string
		compress    bool
		incremental bool
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create database backup",
		Long:  "Create a backup of the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			verbose, _ := cmd.Flags().GetBool("verbose")

			if verbose {
				fmt.Printf("Creating backup (compress: %v, incremental: %v)...\n", compress, incremental)
			}

			// Generate backup filename if not specified
			if output == "" {
				timestamp := time.Now().Format("20060102-150405")
				output = fmt.Sprintf("nazeer-backup-%s.sql", timestamp)
				if compress {
					output += ".gz"
				}
			}

			// In real implementation, would use pg_dump or similar
			fmt.Printf("Backing up database to: %s\n", output)
			time.Sleep(500 * time.Millisecond)

			fmt.Printf("✓ Backup created successfully: %s\n", output)
			fmt.Println("  Size: 124 MB")
			fmt.Println("  Cases: 15,432")
			fmt.Println("  Duration: 2.3s")

			_ = cfg // Use cfg to avoid unused variable warning

			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file path")
	cmd.Flags().BoolVarP(&compress, "compress", "z", true, "Compress backup with gzip")
	cmd.Flags().BoolVarP(&incremental, "incremental", "i", false, "Create incremental backup")

	return cmd
}

func newBackupListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available backups",
		Long:  "Display all available database backups",
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOutput, _ := cmd.Flags().GetBool("json")

			if jsonOutput {
				fmt.Println(`[
  {"filename": "nazeer-backup-20231216-100000.sql.gz", "size_mb": 124, "created_at": "2023-12-16T10:00:00Z"},
  {"filename": "nazeer-backup-20231215-100000.sql.gz", "size_mb": 122, "created_at": "2023-12-15T10:00:00Z"},
  {"filename": "nazeer-backup-20231214-100000.sql.gz", "size_mb": 120, "created_at": "2023-12-14T10:00:00Z"}
]`)
			} else {
				fmt.Println("Available Backups:")
				fmt.Println("==================")
				fmt.Println("Filename                            Size    Created At")
				fmt.Println("-----------------------------------  ------  ----------")
				fmt.Println("nazeer-backup-20231216-100000.sql.gz   124 MB  2023-12-16 10:00:00")
				fmt.Println("nazeer-backup-20231215-100000.sql.gz   122 MB  2023-12-15 10:00:00")
				fmt.Println("nazeer-backup-20231214-100000.sql.gz   120 MB  2023-12-14 10:00:00")
			}

			return nil
		},
	}
}

func newBackupRestoreCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "restore [backup-file]",
		Short: "Restore from backup",
		Long:  "Restore database from a backup file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			backupFile := args[0]

			if !force {
				fmt.Println("⚠ WARNING: This will replace all existing data!")
				fmt.Println("Use --force to confirm restoration.")
				return nil
			}

			verbose, _ := cmd.Flags().GetBool("verbose")

			if verbose {
				fmt.Printf("Restoring from backup: %s\n", backupFile)
			}

			// In real implementation, would use psql or similar
			fmt.Println("Stopping workers...")
			time.Sleep(100 * time.Millisecond)
			fmt.Println("Restoring database...")
			time.Sleep(1 * time.Second)
			fmt.Println("Verifying data integrity...")
			time.Sleep(200 * time.Millisecond)
			fmt.Println("Starting workers...")
			time.Sleep(100 * time.Millisecond)

			fmt.Printf("✓ Database restored successfully from: %s\n", backupFile)
			fmt.Println("  Restored: 15,432 cases")
			fmt.Println("  Duration: 4.2s")

			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Confirm restore operation")

	return cmd
}

func newBackupDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [backup-file]",
		Short: "Delete backup file",
		Long:  "Remove a backup file from storage",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			backupFile := args[0]

			verbose, _ := cmd.Flags().GetBool("verbose")

			if verbose {
				fmt.Printf("Deleting backup: %s\n", backupFile)
			}

			// In real implementation, would delete the file
			time.Sleep(100 * time.Millisecond)

			fmt.Printf("✓ Deleted backup: %s\n", backupFile)

			return nil
		},
	}
}
