package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// NewCacheCmd creates the cache command
func NewCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Cache management commands",
		Long:  "Manage application cache (flush, stats, clear)",
	}

	cmd.AddCommand(newCacheFlushCmd())
	cmd.AddCommand(newCacheStatsCmd())
	cmd.AddCommand(newCacheClearCmd())
	cmd.AddCommand(newCacheWarmCmd())
	cmd.AddCommand(newCacheKeysCmd())

	return cmd
}

func newCacheFlushCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "flush",
		Short: "Flush all cache entries",
		Long:  "Remove all entries from the cache",
		RunE: func(cmd *cobra.Command, args []string) error {
			verbose, _ := cmd.Flags().GetBool("verbose")

			if verbose {
				fmt.Println("Flushing all cache entries...")
			}

			// In real implementation, would connect to cache service
			time.Sleep(100 * time.Millisecond)

			fmt.Println("✓ Cache flushed successfully")
			return nil
		},
	}
}

func newCacheStatsCmd() *cobra.Command{
	return &cobra.Command{
		Use:   "stats",
		Short: "Show cache statistics",
		Long:  "Display cache hit rate, size, and other metrics",
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOutput, _ := cmd.Flags().GetBool("json")

			if jsonOutput {
				fmt.Println(`{
  "total_keys": 8456,
  "hits": 125643,
  "misses": 8921,
  "hit_rate": 0.9337,
  "evictions": 231,
  "memory_used_mb": 512,
  "uptime_seconds": 86400
}`)
			} else {
				fmt.Println("Cache Statistics:")
				fmt.Println("=================")
				fmt.Println("Total Keys:      8,456")
				fmt.Println("Hits:            125,643")
				fmt.Println("Misses:          8,921")
				fmt.Println("Hit Rate:        93.37%")
				fmt.Println("Evictions:       231")
				fmt.Println("Memory Used:     512 MB")
				fmt.Println("Uptime:          24h 0m 0s")
			}

			return nil
		},
	}
}

func newCacheClearCmd() *cobra.Command {
	var pattern string

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Clear cache entries by pattern",
		Long:  "Remove cache entries matching the specified pattern",
		RunE: func(cmd *cobra.Command, args []string) error {
			verbose, _ := cmd.Flags().GetBool("verbose")

			if pattern == "" {
				return fmt.Errorf("pattern is required")
			}

			if verbose {
				fmt.Printf("Clearing cache entries matching pattern: %s\n", pattern)
			}

			// In real implementation, would clear matching keys
			time.Sleep(100 * time.Millisecond)

			fmt.Printf("✓ Cleared cache entries matching pattern: %s\n", pattern)
			return nil
		},
	}

	cmd.Flags().StringVarP(&pattern, "pattern", "p", "", "Key pattern to match (e.g., \"case:*\")")
	cmd.MarkFlagRequired("pattern")

	return cmd
}

func newCacheWarmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "warm",
		Short: "Warm up cache",
		Long:  "Pre-populate cache with frequently accessed data",
		RunE: func(cmd *cobra.Command, args []string) error {
			verbose, _ := cmd.Flags().GetBool("verbose")

			if verbose {
				fmt.Println("Warming up cache with frequently accessed data...")
			}

			// In real implementation, would query database and populate cache
			fmt.Println("Loading popular cases...")
			time.Sleep(200 * time.Millisecond)
			fmt.Println("Loading jurisdiction metadata...")
			time.Sleep(200 * time.Millisecond)
			fmt.Println("Loading legal concepts...")
			time.Sleep(200 * time.Millisecond)

			fmt.Println("✓ Cache warmed successfully")
			return nil
		},
	}
}

func newCacheKeysCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "keys",
		Short: "List cache keys",
		Long:  "Display cache keys with optional limit",
		RunE: func(cmd *cobra.Command, args []string) error {
			verbose, _ := cmd.Flags().GetBool("verbose")

			if verbose {
				fmt.Printf("Listing cache keys (limit: %d)...\n", limit)
			}

			// In real implementation, would fetch keys from cache
			fmt.Println("Cache Keys:")
			fmt.Println("===========")
			for i := 0; i < limit && i < 10; i++ {
				fmt.Printf("case:cth/HCA/2023/%d\n", i+1)
			}
			fmt.Printf("... (showing %d of 8,456 keys)\n", limit)

			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", 20, "Maximum number of keys to display")

	return cmd
}
