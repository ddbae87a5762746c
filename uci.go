package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"chess-search/engine"
	"chess-search/position"
)

const defaultDepth = 4

// timeControls are go options whose value is accepted and ignored; search
// is bounded by depth only.
var timeControls = map[string]bool{
	"wtime":     true,
	"btime":     true,
	"winc":      true,
	"binc":      true,
	"movestogo": true,
	"movetime":  true,
	"nodes":     true,
	"mate":      true,
}

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	uciLoop(os.Stdin, os.Stdout, logger)
}

// uciSession is the state a UCI conversation carries between commands.
type uciSession struct {
	out      io.Writer
	logger   zerolog.Logger
	pos      *position.Position
	eval     *engine.Evaluator
	searcher string
}

func newSession(out io.Writer, logger zerolog.Logger) *uciSession {
	return &uciSession{
		out:      out,
		logger:   logger,
		pos:      position.New(),
		eval:     engine.NewEvaluator(&engine.DefaultWeights),
		searcher: "recursive",
	}
}

func (s *uciSession) println(a ...any) { fmt.Fprintln(s.out, a...) }

// driver builds a fresh driver for one go command.
func (s *uciSession) driver() *engine.Driver {
	var searcher engine.Searcher = engine.NewRecursive(s.eval)
	if s.searcher == "stack" {
		searcher = engine.NewStackSearch(s.eval)
	}
	d := engine.NewDriver(searcher)
	d.Logger = s.logger
	return d
}

func uciLoop(in io.Reader, out io.Writer, logger zerolog.Logger) {
	s := newSession(out, logger)
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := scanner.Text()
		tokens := strings.Fields(line)
		if len(tokens) == 0 { // ignore blank lines
			continue
		}
		switch strings.ToLower(tokens[0]) {
		case "uci":
			s.println("id name chess-search")
			s.println("id author chess-search")
			s.println("option name Searcher type combo default recursive var recursive var stack")
			s.println("uciok")
		case "isready":
			s.println("readyok")
		case "ucinewgame":
			s.pos = position.New()
		case "quit":
			return
		case "eval":
			s.println("info string eval", engine.ScoreString(s.eval.Evaluate(s.pos)))
		case "position":
			s.positionCmd(tokens[1:])
		case "go":
			s.goCmd(tokens[1:])
		case "setoption":
			s.setOption(tokens[1:])
		default:
			s.println("info string Unknown command:", line)
		}
	}
}

func (s *uciSession) positionCmd(args []string) {
	if len(args) == 0 {
		s.println("info string Malformed position command")
		return
	}
	var fen string
	rest := args[1:]
	switch strings.ToLower(args[0]) {
	case "startpos":
		fen = position.Startpos
	case "fen":
		i := 0
		for i < len(rest) && strings.ToLower(rest[i]) != "moves" {
			i++
		}
		fen = strings.Join(rest[:i], " ")
		rest = rest[i:]
	default:
		s.println("info string Invalid position subcommand")
		return
	}

	pos, err := position.FromFEN(fen)
	if err != nil {
		s.println("info string Invalid fen position:", err)
		return
	}
	s.pos = pos
	if len(rest) == 0 || strings.ToLower(rest[0]) != "moves" {
		return
	}
	for _, moveStr := range rest[1:] {
		m, err := s.pos.ParseMove(moveStr)
		if err != nil {
			s.println("info string Move", moveStr, "not applied:", err)
			return
		}
		s.pos.Push(m)
	}
}

func (s *uciSession) goCmd(args []string) {
	depth := defaultDepth
	for i := 0; i < len(args); i++ {
		switch strings.ToLower(args[i]) {
		case "depth":
			if i+1 >= len(args) {
				s.println("info string Malformed go command option depth")
				return
			}
			i++
			d, err := strconv.Atoi(args[i])
			if err != nil {
				s.println("info string Malformed go command option; could not convert depth")
				return
			}
			depth = d
		case "infinite", "ponder":
		default:
			if timeControls[strings.ToLower(args[i])] {
				i++
				continue
			}
			s.println("info string Unknown go subcommand", args[i])
		}
	}

	d := s.driver()
	move, score, err := d.ChooseMove(s.pos, depth)
	if err != nil {
		s.println("info string search failed:", err)
		s.println("bestmove 0000")
		return
	}
	fmt.Fprintf(s.out, "info depth %d nodes %d string score %s cutoffs %d\n", d.Stats.Depth, d.Stats.Nodes, engine.ScoreString(score), d.Stats.Cutoffs)
	s.println("bestmove", position.MoveString(move))
}

// setOption handles "setoption name <id> value <x>".
func (s *uciSession) setOption(args []string) {
	if len(args) < 4 || strings.ToLower(args[0]) != "name" || strings.ToLower(args[2]) != "value" {
		s.println("info string Malformed setoption command")
		return
	}
	switch strings.ToLower(args[1]) {
	case "searcher":
		switch v := strings.ToLower(args[3]); v {
		case "recursive", "stack":
			s.searcher = v
		default:
			s.println("info string Unknown searcher", args[3])
		}
	default:
		s.println("info string Unknown option", args[1])
	}
}
