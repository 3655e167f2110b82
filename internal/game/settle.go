package game

type Result int

const (
	ResultNone Result = iota
	ResultPlayerWin
	ResultDealerWin
	ResultPush
)

func (r Result) String() string {
	switch r {
	case ResultPlayerWin:
		return "win"
	case ResultDealerWin:
		return "loss"
	case ResultPush:
		return "push"
	default:
		return "none"
	}
}

// Settlement is the outcome of one round: one signed amount per player hand.
type Settlement struct {
	Outcomes []Result
	Results  []int
	Wins     int
	Losses   int
	Ties     int
}

func (s Settlement) Net() int {
	total := 0
	for _, r := range s.Results {
		total += r
	}
	return total
}

// HandResult compares one player hand with the dealer's final hand.
func HandResult(hand, dealer Hand) Result {
	playerScore := hand.Value()
	dealerScore := dealer.Value()

	switch {
	case playerScore > blackjack:
		return ResultDealerWin
	case dealerScore > blackjack || playerScore > dealerScore:
		return ResultPlayerWin
	case dealerScore > playerScore:
		return ResultDealerWin
	default:
		return ResultPush
	}
}

// Settle settles every player hand independently for the same bet.
func Settle(hands []Hand, dealer Hand, bet int) Settlement {
	s := Settlement{
		Outcomes: make([]Result, 0, len(hands)),
		Results:  make([]int, 0, len(hands)),
	}

	for _, h := range hands {
		res := HandResult(h, dealer)
		s.Outcomes = append(s.Outcomes, res)

		switch res {
		case ResultPlayerWin:
			s.Results = append(s.Results, bet)
			s.Wins++
		case ResultDealerWin:
			s.Results = append(s.Results, -bet)
			s.Losses++
		default:
			s.Results = append(s.Results, 0)
			s.Ties++
		}
	}
	return s
}
