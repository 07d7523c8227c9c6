package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/pterm/pterm"

	"differenzler"
	"differenzler/config"
	"differenzler/game"
	"differenzler/stats"
)

var (
	configPath = flag.String("config", "config.json", "JSON configuration file, optional")
	name       = flag.String("name", "You", "your name at the table")
)

// terminal pterm prompts for the local human
type terminal struct{}

func (terminal) Input(title string) (string, error) {
	return pterm.DefaultInteractiveTextInput.WithDefaultText(title).Show()
}

func (terminal) Select(title string, options []string) (string, error) {
	return pterm.DefaultInteractiveSelect.WithDefaultText(title).WithOptions(options).Show()
}

func (terminal) Notice(msg string) {
	pterm.Info.Println(msg)
}

func main() {
	flag.Parse()

	log := slog.New(pterm.NewSlogHandler(&pterm.DefaultLogger))
	slog.SetDefault(log)

	cfg, err := config.Load(*configPath)
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var recorder game.Recorder
	if cfg.StatsPath != "" {
		recorder = stats.NewCSVSink(cfg.StatsPath)
	}
	others, opts := differenzler.NewSeatFactory(cfg, recorder, log).Build()

	seat := cfg.RemoteSeat
	players := make([]*game.Player, 0, game.PlayersLimit)
	players = append(players, others[:seat]...)
	players = append(players, game.NewPlayer(*name, game.NewLocalPlayer(terminal{})))
	players = append(players, others[seat:]...)

	opts.Listener = narrate(seat)
	opts.Logger = log

	g, err := game.New("local", players, opts)
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}

	if err = g.Run(ctx); err != nil {
		if game.IsAbandoned(err) {
			pterm.Warning.Println("game abandoned")
			return
		}
		pterm.Error.Println(err)
		os.Exit(1)
	}

	data := pterm.TableData{{"Participant", "Points"}}
	for _, sc := range g.Scores() {
		data = append(data, []string{sc.Participant, strconv.Itoa(sc.Points)})
	}
	_ = pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	pterm.Success.Printfln("%s wins", g.Winner().Name)
}

// narrate prints what the local seat may see.
func narrate(seat int) game.Listener {
	return func(e game.Event) {
		if e.Seat != game.AllSeats && e.Seat != seat {
			return
		}
		switch p := e.Payload.(type) {
		case game.RoundStartPayload:
			pterm.DefaultSection.Printfln("Round %d, trump %s", p.Round, p.TrumpSuit)
		case game.CardPlayedPayload:
			pterm.Printfln("%s plays %s", p.Participant, p.Card)
		case game.TrickCompletePayload:
			pterm.Info.Printfln("%s wins the trick", p.Winner)
		case game.LastTrickBonusPayload:
			pterm.Info.Printfln("%s gets the last trick bonus of %d", p.Participant, p.Bonus)
		case game.RoundGuessResultsPayload:
			lines := make([]string, 0, len(p.PerParticipant))
			for _, r := range p.PerParticipant {
				lines = append(lines, fmt.Sprintf("%s guessed %d, made %d, off by %d", r.Participant, r.Guess, r.Actual, r.Difference))
			}
			pterm.Info.Println(strings.Join(lines, "\n"))
		}
	}
}
