// Package cmd 提供 stratus 命令行工具的所有子命令实现。
// 本文件实现 version 命令。
package cmd

import (
	"github.com/spf13/cobra"
)

// 版本信息，由构建时通过 -ldflags 注入。
var (
	Version = "dev"
	Commit  = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("stratus %s (%s)\n", Version, Commit)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
