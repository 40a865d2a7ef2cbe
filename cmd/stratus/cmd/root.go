// Package cmd 包含 stratus CLI 工具的所有命令实现
// 使用 cobra 框架构建命令行接口
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// 全局命令行标志变量
var (
	cfgFile    string // 配置文件路径
	awsRegion  string // 目标区域
	awsProfile string // 凭证 profile
	logLevel   string // 日志级别
)

// rootCmd 是 CLI 的根命令
// 所有子命令都挂载在这个根命令下
var rootCmd = &cobra.Command{
	Use:   "stratus",
	Short: "Stratus - serverless function deployment tool",
	Long: `stratus 把打包好的代码产物部署到函数计算平台。

它先把产物（可选地）暂存到对象存储，再按“存在则更新、不存在则创建”
的方式调和远端函数的代码与配置，最后把命名别名指向产生的版本。

使用示例:
  # 部署产物（不存在则创建函数）
  stratus deploy hello --file build/hello.zip --role arn:aws:iam::123:role/fn

  # 发布版本并把别名 live 指过去
  stratus deploy hello --file build/hello.zip --role arn:aws:iam::123:role/fn \
    --publish --alias live

  # 先暂存到 S3 再部署
  stratus deploy hello --file build/hello.zip --role arn:aws:iam::123:role/fn \
    --s3-bucket artifacts --s3-key hello.zip

  # 以 HTTP 服务方式接收部署请求
  stratus serve --listen :8080`,
}

// Execute 执行根命令
// 这是 CLI 的入口函数，由 main 包调用
func Execute() error {
	return rootCmd.Execute()
}

// init 注册全局标志和配置初始化函数
func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "配置文件路径（默认为 $HOME/.stratus.yaml）")
	rootCmd.PersistentFlags().StringVar(&awsRegion, "region", "", "目标区域（默认沿用环境配置）")
	rootCmd.PersistentFlags().StringVar(&awsProfile, "profile", "", "凭证 profile（默认沿用环境配置）")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "日志级别（debug、info、warn、error）")

	viper.BindPFlag("region", rootCmd.PersistentFlags().Lookup("region"))
	viper.BindPFlag("profile", rootCmd.PersistentFlags().Lookup("profile"))
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
}

// initConfig 初始化配置
// 按优先级加载配置：命令行标志 > 环境变量 > 配置文件
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".stratus")
	}

	// 环境变量格式：STRATUS_<KEY>，如 STRATUS_REGION
	viper.SetEnvPrefix("STRATUS")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && cfgFile != "" {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
}
