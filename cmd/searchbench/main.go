package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"chess-search/engine"
	"chess-search/position"
)

// suite is searched when neither -fen nor -suite is given.
var suite = []string{
	position.Startpos,
	"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
	"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	"r4rk1/1pp1qppp/p1np1n2/2b1p3/2B1P3/2NP1N2/PPP1QPPP/R4RK1 w - - 0 10",
	"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
}

type result struct {
	fen     string
	move    string
	score   int32
	stats   engine.Stats
	elapsed time.Duration
}

func main() {
	// --- Flags ---
	depthFlag := flag.Int("depth", 3, "search depth in plies")
	repeatFlag := flag.Int("repeat", 1, "number of passes over the suite")
	fenFlag := flag.String("fen", "", "single FEN to search (empty = built-in suite)")
	suiteFlag := flag.String("suite", "", "file with one FEN per line")
	searcherFlag := flag.String("searcher", "recursive", "recursive or stack")
	parallelFlag := flag.Int("parallel", runtime.NumCPU(), "positions searched at once")
	verboseFlag := flag.Bool("v", false, "log per-depth progress")
	cpuProfile := flag.String("cpuprofile", "", "write CPU profile to file")
	memProfile := flag.String("memprofile", "", "write memory profile (heap) to file")
	flag.Parse()

	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	if *verboseFlag {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	if *depthFlag <= 0 {
		log.Fatal().Int("depth", *depthFlag).Msg("depth must be positive")
	}
	if *searcherFlag != "recursive" && *searcherFlag != "stack" {
		log.Fatal().Str("searcher", *searcherFlag).Msg("unknown searcher")
	}

	fens := suite
	switch {
	case *fenFlag != "":
		fens = []string{*fenFlag}
	case *suiteFlag != "":
		var err error
		fens, err = readSuite(*suiteFlag)
		if err != nil {
			log.Fatal().Err(err).Msg("could not read suite")
		}
	}

	// --- Optional CPU profiling setup ---
	if *cpuProfile != "" {
		f, err := os.Create(*cpuProfile)
		if err != nil {
			log.Fatal().Err(err).Msg("could not create CPU profile")
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal().Err(err).Msg("could not start CPU profile")
		}
		defer func() {
			pprof.StopCPUProfile()
			f.Close()
		}()
	}

	eval := engine.NewEvaluator(&engine.DefaultWeights)
	fmt.Printf("searchbench: positions=%d depth=%d repeat=%d searcher=%s\n", len(fens), *depthFlag, *repeatFlag, *searcherFlag)

	startAll := time.Now()
	var totalNodes uint64
	for i := 0; i < *repeatFlag; i++ {
		results, err := runSuite(fens, *depthFlag, *searcherFlag, *parallelFlag, eval)
		if err != nil {
			log.Fatal().Err(err).Msg("search failed")
		}
		for _, r := range results {
			totalNodes += r.stats.Nodes
			fmt.Printf("pass %d: bestmove %s score %s depth %d nodes %d cutoffs %d time=%v  %s\n",
				i+1, r.move, engine.ScoreString(r.score), r.stats.Depth, r.stats.Nodes, r.stats.Cutoffs, r.elapsed, r.fen)
		}
	}
	totalElapsed := time.Since(startAll)
	fmt.Printf("total time: %v  nodes: %d  nps: %.0f\n", totalElapsed, totalNodes, float64(totalNodes)/totalElapsed.Seconds())

	// --- Optional heap profile at the end ---
	if *memProfile != "" {
		f, err := os.Create(*memProfile)
		if err != nil {
			log.Fatal().Err(err).Msg("could not create memory profile")
		}
		defer f.Close()

		runtime.GC() // get up-to-date heap info
		if err := pprof.WriteHeapProfile(f); err != nil {
			log.Fatal().Err(err).Msg("could not write memory profile")
		}
	}
}

// runSuite searches every position on its own driver, at most parallel at a
// time. Results come back in suite order.
func runSuite(fens []string, depth int, searcher string, parallel int, eval *engine.Evaluator) ([]result, error) {
	results := make([]result, len(fens))

	var g errgroup.Group
	g.SetLimit(parallel)
	for i, fen := range fens {
		i, fen := i, fen
		g.Go(func() error {
			pos, err := position.FromFEN(fen)
			if err != nil {
				return err
			}
			var s engine.Searcher = engine.NewRecursive(eval)
			if searcher == "stack" {
				s = engine.NewStackSearch(eval)
			}
			d := engine.NewDriver(s)

			start := time.Now()
			move, score, err := d.ChooseMove(pos, depth)
			if err != nil {
				return fmt.Errorf("%s: %w", fen, err)
			}
			results[i] = result{
				fen:     fen,
				move:    position.MoveString(move),
				score:   score,
				stats:   d.Stats,
				elapsed: time.Since(start),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func readSuite(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var fens []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fens = append(fens, line)
	}
	return fens, scanner.Err()
}
