package main

import (
	"context"
	"flag"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pterm/pterm"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"
	"stackandsteal-server/internal/config"
	"stackandsteal-server/internal/rng"
	"stackandsteal-server/internal/util"
	"stackandsteal-server/pkg/archive"
	"stackandsteal-server/pkg/db"
	"stackandsteal-server/pkg/playable"
	"stackandsteal-server/pkg/playable/stacksteal"
)

var command = flag.String("c", "simulate", "specifies the command (simulate, matches)")
var seats = flag.Int("seats", 4, "number of bot seats in a simulated match")
var seed = flag.Int64("seed", 1, "seed for the simulated match")
var maxTurns = flag.Int("turns", 2000, "give up on a simulated match after this many turns")
var limit = flag.Int("limit", 20, "number of archived matches to list")

func main() {
	flag.Parse()

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		pterm.DisableColor()
	}

	switch *command {
	case "simulate":
		if err := simulate(*seats, *seed, *maxTurns); err != nil {
			pterm.Error.Println(err)
			os.Exit(1)
		}
	case "matches":
		if err := listMatches(*limit); err != nil {
			pterm.Error.Println(err)
			os.Exit(1)
		}
	default:
		logrus.Fatalf("unknown command: %s", *command)
	}
}

// simulate plays an all-bot match in-process and prints the narrated log
func simulate(seatCount int, seed int64, maxTurns int) error {
	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)

	gen := rng.NewSeeded(seed)
	util.SetRandomSeed(seed)

	infos := make([]stacksteal.SeatInfo, seatCount)
	names := make(map[string]string, seatCount)
	for i := range infos {
		infos[i] = stacksteal.SeatInfo{
			ID:          strconv.Itoa(i + 1),
			DisplayName: util.GetRandomName(),
			IsBot:       true,
		}
		names[infos[i].ID] = infos[i].DisplayName
	}

	game, err := stacksteal.NewGame(logger, infos, config.Instance().Game.Options(), gen)
	if err != nil {
		return err
	}

	pterm.DefaultHeader.Printfln("Stack & Steal, %d bots, seed %d", seatCount, seed)
	printLog(game, names)

	for {
		turn, _, _, ok := game.CurrentTurn()
		if !ok {
			break
		}

		if turn > maxTurns {
			pterm.Warning.Printfln("no winner after %d turns", maxTurns)
			break
		}

		if _, err := game.Timeout(turn); err != nil {
			return err
		}

		printLog(game, names)
	}

	return printTable(game.State())
}

func printLog(game *stacksteal.Game, names map[string]string) {
	for {
		select {
		case msgs := <-game.LogChan():
			for _, msg := range msgs {
				pterm.Println(narrate(msg, names))
			}
		default:
			return
		}
	}
}

// narrate replaces each {} with the display name of the matching seat
func narrate(msg *playable.LogMessage, names map[string]string) string {
	text := msg.Message
	for _, id := range msg.SeatIDs {
		text = strings.Replace(text, "{}", pterm.Cyan(names[id]), 1)
	}

	return text
}

func printTable(state *stacksteal.State) error {
	data := pterm.TableData{{"Seat", "Stack", "Last stacked", "Hand", "Shielded"}}
	for _, s := range state.Seats {
		last := "-"
		if s.LastStackedCard != nil {
			last = s.LastStackedCard.String()
		}

		name := s.DisplayName
		if s.ID == state.WinnerSeatID {
			name = pterm.LightGreen(name + " (winner)")
		}

		data = append(data, []string{
			name,
			strconv.Itoa(s.Stack),
			last,
			strconv.Itoa(len(s.Hand)),
			strconv.FormatBool(s.Shielded),
		})
	}

	pterm.Println()
	pterm.Info.Printfln("turn %d, cycle %d, %d cards left in the deck", state.Turn, state.Cycle, state.Deck.CardsLeft())
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

// listMatches prints the most recent archived matches
func listMatches(limit int) error {
	store := archive.NewStore(db.Instance())
	matches, err := store.RecentMatches(context.Background(), limit)
	if err != nil {
		return err
	}

	if len(matches) == 0 {
		pterm.Info.Println("no matches have been archived")
		return nil
	}

	data := pterm.TableData{{"ID", "Room", "Winner", "Seats", "Turns", "Duration", "Finished"}}
	for _, m := range matches {
		winner := m.WinnerName
		if m.WinnerSeatID == "" {
			winner = "-"
		}

		data = append(data, []string{
			strconv.FormatInt(m.ID, 10),
			m.RoomID,
			winner,
			strconv.Itoa(len(m.SeatIDs)),
			strconv.Itoa(m.Turns),
			m.FinishedAt.Sub(m.StartedAt).Round(time.Second).String(),
			m.FinishedAt.Format("2006-01-02 15:04"),
		})
	}

	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}
