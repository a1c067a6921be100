package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"

	"github.com/vancomm/minesweeper-agent/internal/agent"
	"github.com/vancomm/minesweeper-agent/internal/knowledge"
	"github.com/vancomm/minesweeper-agent/internal/mines"
)

var (
	log = logrus.New()

	width   = flag.Int("width", 9, "board width")
	height  = flag.Int("height", 9, "board height")
	count   = flag.Int("mines", 10, "mine count")
	games   = flag.Int("games", 100, "number of games to play")
	verbose = flag.Bool("v", false, "log every move")
	logPath = flag.String("log", "", "write JSON logs to a rotating file")
)

func setupLogging() error {
	logLevel := logrus.InfoLevel
	if *verbose {
		logLevel = logrus.DebugLevel
	}
	log.SetLevel(logLevel)
	log.SetFormatter(&logrus.TextFormatter{ForceColors: true})

	if *logPath != "" {
		hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
			Filename:   *logPath,
			MaxSize:    10, // MB
			MaxBackups: 3,
			MaxAge:     28, // days
			Level:      logLevel,
			Formatter:  &logrus.JSONFormatter{},
		})
		if err != nil {
			return err
		}
		log.AddHook(hook)
	}
	return nil
}

func main() {
	flag.Parse()

	if err := setupLogging(); err != nil {
		fmt.Fprintln(os.Stderr, "unable to set up logging:", err)
		os.Exit(1)
	}

	params := mines.GameParams{
		Width:     *width,
		Height:    *height,
		MineCount: *count,
	}
	if err := params.Validate(); err != nil {
		log.Fatal(err)
	}

	// the engine logs through slog; route it into logrus
	slogger := slog.New(slog.NewTextHandler(
		log.WriterLevel(logrus.DebugLevel), nil,
	))

	r := rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))

	log.WithFields(logrus.Fields{
		"params": params.Seed(),
		"games":  *games,
	}).Info("starting batch run")

	var won, dead, moves, guesses int
	for i := range *games {
		start := knowledge.Cell{X: r.IntN(params.Width), Y: r.IntN(params.Height)}

		board, err := mines.NewBoard(params, start.X, start.Y, r)
		if err != nil {
			log.Fatal("unable to generate a board: ", err)
		}

		a, err := agent.New(slogger, board, r)
		if err != nil {
			log.Fatal("unable to create an agent: ", err)
		}

		if err := a.Open(start); err != nil {
			log.Fatal("unable to make the opening move: ", err)
		}

		result, err := a.Play(board.CellCount())
		if err != nil {
			log.Fatal("agent failed to finish a game: ", err)
		}

		if result.Won {
			won++
		}
		if result.Dead {
			dead++
		}
		moves += result.Moves
		guesses += result.Guesses

		log.WithFields(logrus.Fields{
			"game":    i + 1,
			"won":     result.Won,
			"moves":   result.Moves,
			"guesses": result.Guesses,
		}).Debug("game finished")
	}

	log.WithFields(logrus.Fields{
		"games":       *games,
		"won":         won,
		"dead":        dead,
		"win_rate":    fmt.Sprintf("%.1f%%", 100*float64(won)/float64(*games)),
		"avg_moves":   float64(moves) / float64(*games),
		"avg_guesses": float64(guesses) / float64(*games),
	}).Info("batch run finished")
}
