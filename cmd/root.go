package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/chaos-io/matting/config"
	"github.com/chaos-io/matting/picker"
	"github.com/chaos-io/matting/rembg"
	"github.com/chaos-io/matting/util/http"
	"github.com/chaos-io/matting/util/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Version is the application version.
const Version = "0.1.0"

var (
	v          = viper.New()
	cfg        *config.Config
	configFile string
)

var rootCmd = &cobra.Command{
	Use:     "matting",
	Short:   "Remove image backgrounds with remove.bg",
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		bindLocalFlags(cmd)
		cfg, err = config.Load(v, configFile)
		if err != nil {
			return err
		}
		return logger.Setup(cfg.Log.Level, cfg.Log.Format)
	},
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configFile, "config", "c", "", "Config file (default: ./matting.yaml or ~/.config/matting/matting.yaml)")
	flags.String("api-key", "", "remove.bg API key (env: MATTING_REMOVEBG_API_KEY)")
	flags.String("start-dir", "", "Initial directory for file dialogs (default: filesystem root)")
	flags.String("log-level", "", "Log level: trace, debug, info, warn, error")
	flags.String("log-format", "", "Log format: console, json")

	_ = v.BindPFlag("removebg.api_key", flags.Lookup("api-key"))
	_ = v.BindPFlag("picker.start_dir", flags.Lookup("start-dir"))
	_ = v.BindPFlag("log.level", flags.Lookup("log-level"))
	_ = v.BindPFlag("log.format", flags.Lookup("log-format"))
}

// localFlagKeys 子命令的本地参数，同一个配置键可能对应不同命令的参数，
// 因此只在执行时绑定当前命令的参数
var localFlagKeys = map[string]string{
	"out":          "removebg.save_dir",
	"save-dir":     "removebg.save_dir",
	"size":         "removebg.size",
	"addr":         "server.addr",
	"credit-check": "server.credit_check",
}

func bindLocalFlags(cmd *cobra.Command) {
	for name, key := range localFlagKeys {
		if f := cmd.Flags().Lookup(name); f != nil {
			_ = v.BindPFlag(key, f)
		}
	}
}

func newPicker() *picker.Picker {
	return picker.NewPicker(picker.NewNativeDialog(), cfg.Picker.StartDir)
}

func newRemoveBG() *rembg.RemoveBG {
	return rembg.NewRemoveBG(
		rembg.WithBaseURL(cfg.RemoveBG.BaseURL),
		rembg.WithSize(cfg.RemoveBG.Size),
		rembg.WithClient(http.NewHTTPClient(http.WithTimeout(cfg.RemoveBG.Timeout))),
	)
}

func printJSON(w io.Writer, value interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}
