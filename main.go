package main

import (
	"fmt"
	"os"

	"hexgrid/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	files := os.Args[1:]

	model, err := tui.NewModel(files)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}
