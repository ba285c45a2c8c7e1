package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/Arishsingh/intern/internal/chatapi"
	"github.com/Arishsingh/intern/internal/config"
	"github.com/Arishsingh/intern/internal/controller"
	"github.com/Arishsingh/intern/internal/logger"
	"github.com/Arishsingh/intern/internal/mode"
	"github.com/Arishsingh/intern/internal/transcript"
	"github.com/Arishsingh/intern/internal/tui"
)

type flags struct {
	configPath string
	endpoint   string
	mode       string
	debug      bool
}

func NewRootCmd() *cobra.Command {
	var f flags

	root := &cobra.Command{
		Use:           "axamine",
		Short:         "Terminal chat client for the Axamine assistant",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup(f)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&f.configPath, "config", "", "config file (default $AXAMINE_HOME/config.toml)")
	pf.StringVar(&f.endpoint, "endpoint", "", "chat endpoint URL")
	pf.StringVar(&f.mode, "mode", "", "initial mode: "+modeList())
	pf.BoolVar(&f.debug, "debug", false, "debug logging and request dumps")

	root.AddCommand(newAskCmd(), newConfigCmd())
	return root
}

func Execute() error {
	defer logger.Close()
	return NewRootCmd().Execute()
}

func setup(f flags) error {
	if err := config.Load(f.configPath); err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if f.endpoint != "" {
		config.C.Service.Endpoint = f.endpoint
	}
	if f.mode != "" {
		config.C.UI.Mode = f.mode
	}
	if f.debug {
		config.C.Debug = true
	}
	if _, err := mode.Parse(config.C.UI.Mode); err != nil {
		return err
	}

	logger.Init(config.C.LogDir, config.C.Debug)
	logger.Info("starting", "endpoint", config.C.Service.Endpoint, "mode", config.C.UI.Mode)
	return nil
}

func newController() *controller.Controller {
	return controller.New(controller.Options{
		Greeting: config.C.UI.Greeting,
		Mode:     mode.Mode(config.C.UI.Mode),
		Logger:   logger.NewFileLogger(logger.DumpDir(config.C.LogDir)),
	})
}

func newService() *chatapi.Client {
	return chatapi.NewFromConfig(logger.NewFileLogger(logger.DumpDir(config.C.LogDir)))
}

func runTUI() error {
	model := tui.New(newController(), newService(), tui.Options{Markdown: config.C.UI.Markdown})
	program := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(context.Background()),
	)
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}

func newAskCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ask <message>",
		Short: "Send one message and print the conversation",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ask(cmd.Context(), cmd.OutOrStdout(), newController(), newService(), strings.Join(args, " "))
		},
	}
}

func ask(ctx context.Context, w io.Writer, ctrl *controller.Controller, svc chatapi.Service, text string) error {
	ctrl.SetInput(text)
	req, err := ctrl.KeyEnter(false)
	if err != nil {
		return err
	}
	if req == nil {
		return fmt.Errorf("nothing to send")
	}
	ctrl.Resolve(req.Run(ctx, svc))

	for _, m := range ctrl.Messages() {
		fmt.Fprintf(w, "%s %s\n", label(m.Role), m.Text)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the config file",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the effective settings to the config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.C.Path()
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists, use --force to overwrite", path)
			}
			if err := config.Save(); err != nil {
				return fmt.Errorf("save config: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	cmd.AddCommand(initCmd)
	return cmd
}

func label(r transcript.Role) string {
	if r == transcript.RoleBot {
		return "bot:"
	}
	return "you:"
}

func modeList() string {
	var names []string
	for _, m := range mode.All() {
		names = append(names, string(m))
	}
	return strings.Join(names, ", ")
}
