// Package uci implements the UCI protocol front end: a line-oriented
// command loop translating "uci"/"position"/"go"/"setoption"/"stop"/
// "quit" into calls against the engine package, and formatting its
// search output back into "info"/"bestmove" lines. Diagnostics go
// through zap structured logging rather than stdout, since stdout is
// reserved for the protocol stream itself, which a UCI front end parses
// line by line.
package uci

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/corvidchess/corvid/engine"
	"github.com/corvidchess/corvid/internal/config"
)

// ErrQuit is returned by Execute for the "quit" command, the signal for
// the caller's read loop to stop.
var ErrQuit = errors.New("quit")

const engineName = "corvid"
const engineAuthor = "corvidchess"

// Engine wires a board, transposition table, evaluator, and option table
// to the UCI command set. One Engine handles one game at a time.
type Engine struct {
	log  *zap.SugaredLogger
	opts *config.Options

	board    *engine.Board
	tt       *engine.TranspositionTable
	eval     *engine.Evaluator
	searcher *engine.Searcher

	out io.Writer
}

// New builds an Engine seeded from defaults, writing protocol output to
// out (normally os.Stdout) and diagnostics through log.
func New(out io.Writer, log *zap.SugaredLogger, defaults config.Defaults) *Engine {
	e := &Engine{
		log:   log,
		opts:  config.NewEngineOptions(defaults),
		board: engine.NewBoard(),
		out:   out,
	}
	if o, ok := e.opts.Get("Hash"); ok {
		o.OnChange = func(o *config.Option) { e.tt = engine.NewTranspositionTable(int(o.Int())) }
	}
	e.tt = engine.NewTranspositionTable(defaults.HashMB)
	e.eval = engine.NewEvaluator()
	e.searcher = engine.NewSearcher(e.board, e.tt, e.eval)
	return e
}

// Run reads commands from in until EOF or "quit".
func (e *Engine) Run(in io.Reader) {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		if err := e.Execute(scanner.Text()); err != nil {
			if errors.Is(err, ErrQuit) {
				return
			}
			e.log.Warnw("command failed", "error", err)
		}
	}
}

// Execute dispatches one protocol line.
func (e *Engine) Execute(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "uci":
		e.cmdUCI()
	case "isready":
		fmt.Fprintln(e.out, "readyok")
	case "ucinewgame":
		e.cmdNewGame()
	case "setoption":
		return e.cmdSetOption(args)
	case "position":
		return e.cmdPosition(args)
	case "go":
		return e.cmdGo(args)
	case "stop":
		e.searcher.RequestStop()
	case "quit":
		return ErrQuit
	default:
		e.log.Debugw("unhandled command", "line", line)
	}
	return nil
}

func (e *Engine) cmdUCI() {
	fmt.Fprintf(e.out, "id name %s\n", engineName)
	fmt.Fprintf(e.out, "id author %s\n", engineAuthor)
	for _, o := range e.opts.List() {
		switch o.Kind {
		case config.Spin:
			fmt.Fprintf(e.out, "option name %s type spin default %d min %d max %d\n", o.Name, o.Default, o.Min, o.Max)
		case config.Check:
			fmt.Fprintf(e.out, "option name %s type check default %v\n", o.Name, o.Default != 0)
		}
	}
	fmt.Fprintln(e.out, "uciok")
}

func (e *Engine) cmdNewGame() {
	e.tt.Clear()
	e.board = engine.NewBoard()
	e.searcher = engine.NewSearcher(e.board, e.tt, e.eval)
}

func (e *Engine) cmdSetOption(args []string) error {
	// "name <Name...> value <Value...>"
	nameParts, valueParts := []string{}, []string{}
	mode := ""
	for _, a := range args {
		switch a {
		case "name":
			mode = "name"
		case "value":
			mode = "value"
		default:
			if mode == "name" {
				nameParts = append(nameParts, a)
			} else if mode == "value" {
				valueParts = append(valueParts, a)
			}
		}
	}
	name := strings.Join(nameParts, " ")
	value := strings.Join(valueParts, " ")
	return e.opts.Set(name, value)
}

func (e *Engine) cmdPosition(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("expected argument for 'position'")
	}

	var b *engine.Board
	var err error
	rest := args[1:]
	switch args[0] {
	case "startpos":
		b = engine.NewBoard()
	case "fen":
		end := len(rest)
		for i, f := range rest {
			if f == "moves" {
				end = i
				break
			}
		}
		b, err = engine.FromFEN(strings.Join(rest[:end], " "))
		rest = rest[end:]
	default:
		return fmt.Errorf("unknown position subcommand %q", args[0])
	}
	if err != nil {
		return err
	}

	if len(rest) > 0 {
		if rest[0] != "moves" {
			return fmt.Errorf("expected 'moves', got %q", rest[0])
		}
		for _, ms := range rest[1:] {
			m, err := b.ParseMove(ms)
			if err != nil {
				return err
			}
			b.MakeMove(m)
		}
	}

	e.board = b
	e.searcher = engine.NewSearcher(e.board, e.tt, e.eval)
	return nil
}

func (e *Engine) cmdGo(args []string) error {
	tc, err := parseGoArgs(args, e.board.Side())
	if err != nil {
		return err
	}

	e.searcher.OnInfo = func(info engine.Info) {
		e.writeInfo(info)
	}
	move, _ := e.searcher.Search(tc)
	fmt.Fprintf(e.out, "bestmove %s\n", move.String())
	return nil
}

func (e *Engine) writeInfo(info engine.Info) {
	ms := info.Elapsed.Milliseconds()
	nps := uint64(0)
	if info.Elapsed > 0 {
		nps = info.Nodes * uint64(time.Second) / uint64(info.Elapsed)
	}
	if info.Mate != 0 {
		fmt.Fprintf(e.out, "info depth %d score mate %d nodes %d time %d nps %d pv %s\n",
			info.Depth, info.Mate, info.Nodes, ms, nps, info.PV)
	} else {
		fmt.Fprintf(e.out, "info depth %d score cp %d nodes %d time %d nps %d pv %s\n",
			info.Depth, info.Score, info.Nodes, ms, nps, info.PV)
	}
}

// parseGoArgs parses the UCI "go" parameters into a TimeControl for side.
func parseGoArgs(args []string, side engine.Color) (engine.TimeControl, error) {
	var tc engine.TimeControl
	var wtime, btime, winc, binc time.Duration

	for i := 0; i < len(args); i++ {
		next := func() (string, error) {
			i++
			if i >= len(args) {
				return "", fmt.Errorf("missing value after %q", args[i-1])
			}
			return args[i], nil
		}
		switch args[i] {
		case "infinite":
			tc.Infinite = true
		case "ponder":
			// Pondering is treated as an infinite search until "ponderhit"/"stop".
			tc.Infinite = true
		case "wtime":
			v, err := next()
			if err != nil {
				return tc, err
			}
			ms, _ := strconv.Atoi(v)
			wtime = time.Duration(ms) * time.Millisecond
		case "btime":
			v, err := next()
			if err != nil {
				return tc, err
			}
			ms, _ := strconv.Atoi(v)
			btime = time.Duration(ms) * time.Millisecond
		case "winc":
			v, err := next()
			if err != nil {
				return tc, err
			}
			ms, _ := strconv.Atoi(v)
			winc = time.Duration(ms) * time.Millisecond
		case "binc":
			v, err := next()
			if err != nil {
				return tc, err
			}
			ms, _ := strconv.Atoi(v)
			binc = time.Duration(ms) * time.Millisecond
		case "movestogo":
			v, err := next()
			if err != nil {
				return tc, err
			}
			n, _ := strconv.Atoi(v)
			tc.MovesToGo = n
		case "movetime":
			v, err := next()
			if err != nil {
				return tc, err
			}
			ms, _ := strconv.Atoi(v)
			tc.MoveTime = time.Duration(ms) * time.Millisecond
		case "depth":
			v, err := next()
			if err != nil {
				return tc, err
			}
			n, _ := strconv.Atoi(v)
			tc.Depth = n
		case "nodes", "mate":
			// Accepted but not separately limited on; node/mate-search limits
			// are out of scope for this search driver.
			if _, err := next(); err != nil {
				return tc, err
			}
		}
	}

	if side == engine.White {
		tc.Time, tc.Inc = wtime, winc
	} else {
		tc.Time, tc.Inc = btime, binc
	}
	return tc, nil
}
