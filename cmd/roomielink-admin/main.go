package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"github.com/notepid/roomielink/internal/admin/ui"
	"github.com/notepid/roomielink/internal/app"
)

func main() {
	configPath := pflag.String("config", "config.yaml", "path to configuration file")
	pflag.Parse()

	a, cleanup, err := app.New(*configPath, pflag.CommandLine.Changed("config"))
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer cleanup()

	p := tea.NewProgram(ui.NewRootModel(a), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
