package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/herbhall/cli-tetris/internal/scores"
	"github.com/herbhall/cli-tetris/internal/settings"
	"github.com/herbhall/cli-tetris/internal/tetris"
)

func main() {
	seedFlag := flag.Uint64("seed", 0, "bag RNG seed (0 picks a random seed)")
	flag.Parse()

	settingsStore, err := settings.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not load settings: %v\n", err)
	}
	scoreStore, err := scores.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not load scores: %v\n", err)
	}

	seed := *seedFlag
	mode := "random"
	if seed != 0 {
		mode = strconv.FormatUint(seed, 10)
	} else {
		seed = uint64(time.Now().UnixNano())
	}

	model := tetris.NewModel(settingsStore.Config, mode, seed, scoreStore)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithFPS(60),
	)
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := scoreStore.Save(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not save scores: %v\n", err)
	}
	if err := settingsStore.Save(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not save settings: %v\n", err)
	}
}
