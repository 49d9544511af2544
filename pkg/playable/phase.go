package playable

// Phase is a step of a round
// Rounds move Betting -> Dealing -> PlayerTurn -> DealerTurn/AITurn -> Settlement -> Betting
type Phase string

// Phase constants
const (
	PhaseBetting    Phase = "betting"
	PhaseDealing    Phase = "dealing"
	PhasePlayerTurn Phase = "player-turn"
	PhaseDealerTurn Phase = "dealer-turn"
	PhaseAITurn     Phase = "ai-turn"
	PhaseSpinning   Phase = "spinning"
	PhaseSettlement Phase = "settlement"
)

// Action is an inbound request from the client
type Action string

// Action constants
const (
	ActionDeal    Action = "deal"
	ActionHit     Action = "hit"
	ActionStand   Action = "stand"
	ActionDouble  Action = "double"
	ActionSplit   Action = "split"
	ActionFold    Action = "fold"
	ActionCall    Action = "call"
	ActionBet     Action = "bet"
	ActionClear   Action = "clear"
	ActionSpin    Action = "spin"
	ActionRestart Action = "restart"
)
