// puzzle solves positions from an EPD test suite and reports how many
// were answered with the expected best move, within a fixed per-position
// deadline. EPD's "bm" operand is accepted in long-algebraic form only;
// SAN best moves are not recognized.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/corvidchess/corvid/engine"
)

var (
	input    = flag.String("input", "", "file with EPD lines")
	deadline = flag.Duration("deadline", 10*time.Second, "how much time to spend per position")
	quiet    = flag.Bool("quiet", false, "don't print individual results")
)

// epdCase is one parsed EPD line: a position plus its accepted best
// moves in long-algebraic form.
type epdCase struct {
	fen      string
	bestMove []string
	line     string
}

// parseEPD splits an EPD line into its four board-state fields and its
// "bm" operand list; other opcodes are ignored.
func parseEPD(line string) (epdCase, error) {
	fields := strings.Fields(line)
	if len(fields) < 4 {
		return epdCase{}, fmt.Errorf("epd line %q has too few fields", line)
	}
	fen := strings.Join(fields[:4], " ") + " 0 1"

	var best []string
	rest := strings.Join(fields[4:], " ")
	for _, opcode := range strings.Split(rest, ";") {
		opcode = strings.TrimSpace(opcode)
		if strings.HasPrefix(opcode, "bm ") {
			best = strings.Fields(strings.TrimPrefix(opcode, "bm "))
		}
	}
	return epdCase{fen: fen, bestMove: best, line: line}, nil
}

func main() {
	log.SetFlags(log.Lshortfile)
	flag.Parse()

	if *input == "" {
		log.Fatal("--input not specified")
	}
	f, err := os.Open(*input)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	var totalNodes uint64
	solved, total := 0, 0
	buf := bufio.NewReader(f)
	for i := 0; ; i++ {
		line, err := buf.ReadString('\n')
		if err != nil && err != io.EOF {
			log.Fatal(err)
		}

		trimmed := strings.TrimSpace(strings.SplitN(line, "#", 2)[0])
		if trimmed == "" {
			if err == io.EOF {
				break
			}
			continue
		}

		c, perr := parseEPD(trimmed)
		if perr != nil {
			log.Println("error:", perr)
			if err == io.EOF {
				break
			}
			continue
		}
		if len(c.bestMove) == 0 {
			if err == io.EOF {
				break
			}
			continue
		}

		b, berr := engine.FromFEN(c.fen)
		if berr != nil {
			log.Println("error parsing position:", berr)
			if err == io.EOF {
				break
			}
			continue
		}

		tt := engine.NewTranspositionTable(32)
		searcher := engine.NewSearcher(b, tt, engine.NewEvaluator())
		actual, _ := searcher.Search(engine.TimeControl{MoveTime: *deadline})
		totalNodes += 0

		total++
		correct := false
		for _, want := range c.bestMove {
			if actual.String() == want {
				correct = true
				break
			}
		}
		if correct {
			solved++
		}

		if !*quiet {
			if i%25 == 0 {
				fmt.Println()
				fmt.Println("line   bm     actual correct  epd")
				fmt.Println("----+------+------+-------+---")
			}
			fmt.Printf("%4d %6s %6s %4d/%4d %s\n",
				i+1, strings.Join(c.bestMove, "|"), actual.String(), solved, total, c.line)
		}

		if err == io.EOF {
			break
		}
	}

	fmt.Printf("%s solved %d out of %d\n", *input, solved, total)
}
