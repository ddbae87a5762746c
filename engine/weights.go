package engine

import "github.com/dylhunn/dragontoothmg"

// Weights is the evaluation configuration. Piece-square tables are indexed by
// dragontoothmg piece type and authored from White's side with rank 8 first,
// as they are printed below.
type Weights struct {
	PieceValues [7]int32
	Midgame     [7][64]int32
	Endgame     [7][64]int32

	MobilityBonus int32
	CheckBonus    int32
	CaptureBonus  int32
}

var pawnMG = scaled([64]int32{
	0, 0, 0, 0, 0, 0, 0, 0,
	50, 50, 50, 50, 50, 50, 50, 50,
	10, 10, 20, 30, 30, 20, 10, 10,
	5, 5, 10, 25, 25, 10, 5, 5,
	0, 0, 0, 20, 20, 0, 0, 0,
	5, -5, -10, 0, 0, -10, -5, 5,
	5, 10, 10, -20, -20, 10, 10, 5,
	0, 0, 0, 0, 0, 0, 0, 0,
})

var pawnEG = scaled([64]int32{
	0, 0, 0, 0, 0, 0, 0, 0,
	80, 80, 80, 80, 80, 80, 80, 80,
	50, 50, 50, 50, 50, 50, 50, 50,
	30, 30, 30, 30, 30, 30, 30, 30,
	20, 20, 20, 20, 20, 20, 20, 20,
	10, 10, 10, 10, 10, 10, 10, 10,
	10, 10, 10, 10, 10, 10, 10, 10,
	0, 0, 0, 0, 0, 0, 0, 0,
})

var knightPST = scaled([64]int32{
	-50, -40, -30, -30, -30, -30, -40, -50,
	-40, -20, 0, 0, 0, 0, -20, -40,
	-30, 0, 10, 15, 15, 10, 0, -30,
	-30, 5, 15, 20, 20, 15, 5, -30,
	-30, 0, 15, 20, 20, 15, 0, -30,
	-30, 5, 10, 15, 15, 10, 5, -30,
	-40, -20, 0, 5, 5, 0, -20, -40,
	-50, -40, -30, -30, -30, -30, -40, -50,
})

var bishopPST = scaled([64]int32{
	-20, -10, -10, -10, -10, -10, -10, -20,
	-10, 0, 0, 0, 0, 0, 0, -10,
	-10, 0, 5, 10, 10, 5, 0, -10,
	-10, 5, 5, 10, 10, 5, 5, -10,
	-10, 0, 10, 10, 10, 10, 0, -10,
	-10, 10, 10, 10, 10, 10, 10, -10,
	-10, 5, 0, 0, 0, 0, 5, -10,
	-20, -10, -10, -10, -10, -10, -10, -20,
})

var rookPST = scaled([64]int32{
	0, 0, 0, 0, 0, 0, 0, 0,
	5, 10, 10, 10, 10, 10, 10, 5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	0, 0, 0, 5, 5, 0, 0, 0,
})

var queenPST = scaled([64]int32{
	-20, -10, -10, -5, -5, -10, -10, -20,
	-10, 0, 0, 0, 0, 0, 0, -10,
	-10, 0, 5, 5, 5, 5, 0, -10,
	-5, 0, 5, 5, 5, 5, 0, -5,
	0, 0, 5, 5, 5, 5, 0, -5,
	-10, 5, 5, 5, 5, 5, 0, -10,
	-10, 0, 5, 0, 0, 0, 0, -10,
	-20, -10, -10, -5, -5, -10, -10, -20,
})

var kingMG = scaled([64]int32{
	-80, -70, -70, -70, -70, -70, -70, -80,
	-60, -60, -60, -60, -60, -60, -60, -60,
	-40, -50, -50, -60, -60, -50, -50, -40,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-20, -30, -30, -40, -40, -30, -30, -20,
	-10, -20, -20, -20, -20, -20, -20, -10,
	20, 20, -5, -5, -5, -5, 20, 20,
	20, 30, 10, 0, 0, 10, 30, 20,
})

var kingEG = scaled([64]int32{
	-20, -10, -10, -10, -10, -10, -10, -20,
	-5, 0, 5, 5, 5, 5, 0, -5,
	-10, -5, 20, 30, 30, 20, -5, -10,
	-15, -10, 35, 45, 45, 35, -10, -15,
	-20, -15, 30, 40, 40, 30, -15, -20,
	-25, -20, 20, 25, 25, 20, -20, -25,
	-30, -25, 0, 0, 0, 0, -25, -30,
	-50, -30, -30, -30, -30, -30, -30, -50,
})

// DefaultWeights is the stock evaluation. Treat it as read-only; NewEvaluator
// takes a copy.
var DefaultWeights = Weights{
	PieceValues: [7]int32{
		dragontoothmg.Pawn:   1000,
		dragontoothmg.Knight: 3000,
		dragontoothmg.Bishop: 3000,
		dragontoothmg.Rook:   5000,
		dragontoothmg.Queen:  9000,
		dragontoothmg.King:   200000,
	},
	Midgame: [7][64]int32{
		dragontoothmg.Pawn:   pawnMG,
		dragontoothmg.Knight: knightPST,
		dragontoothmg.Bishop: bishopPST,
		dragontoothmg.Rook:   rookPST,
		dragontoothmg.Queen:  queenPST,
		dragontoothmg.King:   kingMG,
	},
	Endgame: [7][64]int32{
		dragontoothmg.Pawn:   pawnEG,
		dragontoothmg.Knight: knightPST,
		dragontoothmg.Bishop: bishopPST,
		dragontoothmg.Rook:   rookPST,
		dragontoothmg.Queen:  queenPST,
		dragontoothmg.King:   kingEG,
	},
	MobilityBonus: 100,
	CheckBonus:    700,
	CaptureBonus:  200,
}

// Tables are written in hundredths of a pawn; internal unit is a thousandth.
func scaled(t [64]int32) [64]int32 {
	for i := range t {
		t[i] *= 10
	}
	return t
}
