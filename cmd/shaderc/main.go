package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"time"

	"github.com/nw-engine/vision/logging"
	"github.com/spf13/cobra"
)

func init() {
	// OpenGL calls must all come from the thread that created the context
	runtime.LockOSThread()
}

type rootFlags struct {
	configPath string
	dry        bool
	glMajor    int
	glMinor    int
	quiet      bool
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {

	flags := &rootFlags{}

	root := &cobra.Command{
		Use:          "shaderc",
		Short:        "Compile, split and hot reload combined GLSL shader files",
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flags.configPath, "config", defaultConfigPath, "path of the toml config")
	root.PersistentFlags().BoolVar(&flags.dry, "dry", false, "log driver calls instead of creating an OpenGL context")
	root.PersistentFlags().IntVar(&flags.glMajor, "gl-major", 0, "OpenGL major version, overrides the config")
	root.PersistentFlags().IntVar(&flags.glMinor, "gl-minor", 0, "OpenGL minor version, overrides the config")
	root.PersistentFlags().BoolVarP(&flags.quiet, "quiet", "q", false, "only print errors")

	root.AddCommand(
		newCheckCmd(flags),
		newSplitCmd(),
		newWatchCmd(flags),
	)

	return root
}

// resolveConfig loads the config file and applies flags explicitly set on cmd
func resolveConfig(cmd *cobra.Command, flags *rootFlags, args []string) (Config, []string, error) {

	cfg, err := LoadConfig(flags.configPath)
	if err != nil {
		return Config{}, nil, err
	}

	if cmd.Flags().Changed("dry") {
		cfg.Dry = flags.dry
	}

	if cmd.Flags().Changed("gl-major") {
		cfg.GLMajor = flags.glMajor
	}

	if cmd.Flags().Changed("gl-minor") {
		cfg.GLMinor = flags.glMinor
	}

	if flags.quiet {
		logging.InfoLog.SetOutput(io.Discard)
		logging.WarnLog.SetOutput(io.Discard)
	}

	files := args
	if len(files) == 0 {
		files = cfg.Shaders
	}

	if len(files) == 0 {
		return Config{}, nil, fmt.Errorf("no shader files given and none listed in '%s'", flags.configPath)
	}

	return cfg, files, nil
}

func newCheckCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "check [files...]",
		Short: "Compile and link every file, exiting non zero if any fails",
		RunE: func(cmd *cobra.Command, args []string) error {

			cfg, files, err := resolveConfig(cmd, flags, args)
			if err != nil {
				return err
			}

			drv, release, err := newDriver(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer release()

			return checkFiles(drv, files, cmd.OutOrStdout())
		},
	}
}

func newSplitCmd() *cobra.Command {

	var outDir string

	cmd := &cobra.Command{
		Use:   "split <file>",
		Short: "Write every stage of a combined file to its own file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {

			written, err := splitFile(args[0], outDir)
			for _, p := range written {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}

			return err
		},
	}

	cmd.Flags().StringVar(&outDir, "out", "", "output directory, defaults to the directory of the input")
	return cmd
}

func newWatchCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "watch [files...]",
		Short: "Compile files and recompile them whenever they are saved",
		RunE: func(cmd *cobra.Command, args []string) error {

			cfg, files, err := resolveConfig(cmd, flags, args)
			if err != nil {
				return err
			}

			drv, release, err := newDriver(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer release()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			return watchFiles(ctx, drv, files, time.Duration(cfg.PollIntervalMs)*time.Millisecond, cmd.OutOrStdout())
		},
	}
}
