// Package cmd 提供 stratus 命令行工具的所有子命令实现。
// 本文件实现 validate 命令：只做本地校验，不发起任何远程调用。
package cmd

import (
	"github.com/spf13/cobra"
)

// validateCmd 是 validate 命令的 cobra.Command 实例。
var validateCmd = &cobra.Command{
	Use:   "validate <name>",
	Short: "Validate a deployment spec and artifact without touching the platform",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

var validateFlags specFlags

func init() {
	rootCmd.AddCommand(validateCmd)
	validateFlags.register(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	spec := validateFlags.buildSpec(cmd, args[0])
	spec.Normalize()
	if err := spec.Validate(); err != nil {
		return err
	}

	artifact, err := validateFlags.readArtifact()
	if err != nil {
		return err
	}
	if err := artifact.Validate(); err != nil {
		return err
	}

	cmd.Printf("✅ Spec for '%s' is valid (artifact: %s, %d bytes)\n",
		spec.FunctionName, artifact.Path, len(artifact.Data))
	return nil
}
