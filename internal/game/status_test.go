package game

import "testing"

func TestEvaluateStatus(t *testing.T) {
	tests := []struct {
		name      string
		fen       string
		status    string
		gameOver  bool
		hasWinner bool
		winner    Color
	}{
		{
			name:   "opening position ongoing",
			fen:    StartingFEN,
			status: StatusOngoing,
		},
		{
			name:   "check but not mate",
			fen:    "4k3/8/8/8/8/8/4r3/4K3 w - - 0 1",
			status: StatusCheck,
		},
		{
			name:      "back rank mate",
			fen:       "R5k1/5ppp/8/8/8/8/8/6K1 b - - 0 1",
			status:    StatusCheckmate,
			gameOver:  true,
			hasWinner: true,
			winner:    White,
		},
		{
			name:     "stalemate",
			fen:      "k7/8/1Q6/8/8/8/8/7K b - - 0 1",
			status:   StatusStalemate,
			gameOver: true,
		},
		{
			name:     "bare kings",
			fen:      "k7/8/8/8/8/8/8/K7 w - - 0 1",
			status:   StatusInsufficientMaterial,
			gameOver: true,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			pos := mustFEN(t, tt.fen)
			st := EvaluateStatus(&pos, LegalMoves(&pos, StandardRules()))
			if st.Status != tt.status {
				t.Fatalf("status = %q, want %q", st.Status, tt.status)
			}
			if st.GameOver != tt.gameOver {
				t.Fatalf("gameOver = %v, want %v", st.GameOver, tt.gameOver)
			}
			if st.HasWinner != tt.hasWinner {
				t.Fatalf("hasWinner = %v, want %v", st.HasWinner, tt.hasWinner)
			}
			if tt.hasWinner && st.Winner != tt.winner {
				t.Fatalf("winner = %s, want %s", st.Winner, tt.winner)
			}
		})
	}
}

func TestInsufficientMaterial(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		want bool
	}{
		{name: "kings only", fen: "k7/8/8/8/8/8/8/K7 w - - 0 1", want: true},
		{name: "lone knight", fen: "k7/8/8/8/8/8/8/KN6 w - - 0 1", want: true},
		{name: "lone bishop", fen: "k7/8/8/8/8/8/8/KB6 w - - 0 1", want: true},
		{name: "same shade bishops", fen: "kb6/8/8/8/8/8/8/K1B5 w - - 0 1", want: true},
		{name: "opposite shade bishops", fen: "kb6/8/8/8/8/8/8/KB6 w - - 0 1", want: false},
		{name: "pawn remains", fen: "k7/8/8/8/8/8/P7/K7 w - - 0 1", want: false},
		{name: "two knights", fen: "k7/8/8/8/8/8/8/KNN5 w - - 0 1", want: false},
		{name: "rook remains", fen: "k7/8/8/8/8/8/8/KR6 w - - 0 1", want: false},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			pos := mustFEN(t, tt.fen)
			if got := InsufficientMaterial(&pos); got != tt.want {
				t.Fatalf("InsufficientMaterial = %v, want %v", got, tt.want)
			}
		})
	}
}
