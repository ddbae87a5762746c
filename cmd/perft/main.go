package main

import (
	"flag"
	"fmt"
	"os"
	"runtime/pprof"
	"sort"
	"time"

	oracle "github.com/Oliverans/GooseEngineMG/goosemg"

	"chess-search/position"
)

// perft counts leaf nodes through the same push/pop path the search uses.
func perft(p *position.Position, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	var nodes uint64
	for _, m := range p.LegalMoves() {
		p.Push(m)
		nodes += perft(p, depth-1)
		p.Pop()
	}
	return nodes
}

func main() {
	fen := flag.String("fen", position.Startpos, "FEN string (defaults to initial position)")
	depth := flag.Int("depth", 0, "Perft depth (required)")
	divide := flag.Bool("divide", false, "Print per-move node counts at root")
	repeat := flag.Int("repeat", 1, "Repeat perft N times and report aggregate (for steadier timings)")
	check := flag.Bool("check", false, "Cross-check the node count against the GooseEngineMG generator")
	label := flag.String("label", "", "Optional label prefix for one-line output")
	cpuProf := flag.String("cpuprofile", "", "Write CPU profile to file during run")
	flag.Parse()

	if *depth <= 0 {
		fmt.Fprintln(os.Stderr, "-depth must be > 0")
		os.Exit(2)
	}

	pos, err := position.FromFEN(*fen)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FromFEN error: %v\n", err)
		os.Exit(2)
	}

	if *divide {
		type kv struct {
			m string
			n uint64
		}
		var arr []kv
		var sum uint64
		for _, m := range pos.LegalMoves() {
			pos.Push(m)
			n := perft(pos, *depth-1)
			pos.Pop()
			arr = append(arr, kv{position.MoveString(m), n})
			sum += n
		}
		sort.Slice(arr, func(i, j int) bool { return arr[i].m < arr[j].m })
		for _, x := range arr {
			fmt.Printf("%s: %d\n", x.m, x.n)
		}
		fmt.Printf("Total: %d\n", sum)
		return
	}

	if *cpuProf != "" {
		f, err := os.Create(*cpuProf)
		if err != nil {
			fmt.Fprintf(os.Stderr, "creating cpuprofile: %v\n", err)
			os.Exit(2)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "start cpu profile: %v\n", err)
			os.Exit(2)
		}
		defer func() {
			pprof.StopCPUProfile()
			_ = f.Close()
		}()
	}

	var totalNodes uint64
	start := time.Now()
	for i := 0; i < *repeat; i++ {
		totalNodes += perft(pos, *depth)
	}
	elapsed := time.Since(start)
	nps := float64(totalNodes) / elapsed.Seconds()

	// Single line: Depth Nodes Time NPS
	fmt.Printf("%s \t%d \t\t%d \t\t%s \t%.0f\n", *label, *depth, totalNodes, elapsed, nps)

	if *check {
		board, err := oracle.ParseFEN(*fen)
		if err != nil {
			fmt.Fprintf(os.Stderr, "oracle ParseFEN error: %v\n", err)
			os.Exit(2)
		}
		want := oracle.Perft(board, *depth) * uint64(*repeat)
		if want != totalNodes {
			fmt.Fprintf(os.Stderr, "mismatch: got %d nodes, oracle counts %d\n", totalNodes, want)
			os.Exit(1)
		}
		fmt.Println("oracle agrees")
	}
}
