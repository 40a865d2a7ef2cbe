// Package main 是 stratus 命令行工具的入口点
// stratus 是面向函数计算平台的部署工具
// 它把打包好的产物调和到远端函数上，并可将别名指向新版本
package main

import (
	"os"

	"github.com/oriys/stratus/cmd/stratus/cmd"
)

// main 调用 cmd 包的 Execute 函数来解析和执行用户命令
func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
