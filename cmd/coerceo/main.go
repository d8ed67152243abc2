package main

import (
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"coerceo_go/internal/config"
	"coerceo_go/internal/ui"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	screen, err := ui.NewGameScreen(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("init game")
	}

	ebiten.SetVsyncEnabled(false)
	ebiten.SetTPS(30)
	ebiten.SetWindowSize(ui.WindowWidth, ui.WindowHeight)
	ebiten.SetWindowTitle("Coerceo")

	if err := ebiten.RunGame(screen); err != nil {
		log.Fatal().Err(err).Msg("game loop")
	}
}
