package game

// AttackOutcomeKind classifies the result of one attack submission.
type AttackOutcomeKind string

const (
	// AttackRejected means the game was already over; nothing mutated.
	AttackRejected AttackOutcomeKind = "rejected"
	// AttackFullyBlocked means a suppressed word aborted the whole attack
	// before any state mutation.
	AttackFullyBlocked AttackOutcomeKind = "fully_blocked"
	// AttackVictory means this attack drove the timer to zero.
	AttackVictory AttackOutcomeKind = "victory"
	// AttackResolved means the attack landed normally.
	AttackResolved AttackOutcomeKind = "resolved"
)

// CounterAttackReport describes an adversary retaliation that piggybacked on
// an attack resolution.
type CounterAttackReport struct {
	Personality Personality
	Gain        float64
	Timer       float64
}

// AttackOutcome is the plain data record handed back to the command layer.
// The engine never formats text; the glue layer does.
type AttackOutcome struct {
	Kind          AttackOutcomeKind
	ParticipantID string
	Phrase        string

	// Set for AttackFullyBlocked.
	BlockedWord string

	// Set for AttackResolved and AttackVictory.
	TotalReduction   float64
	UniquenessBonus  float64
	Timer            float64
	IndividualReward float64
	PoolContribution float64

	// Side-channel effects of a resolved attack.
	CounterAttack *CounterAttackReport
	ResistedWord  string
}

// DefenseReport describes one periodic defense action.
type DefenseReport struct {
	Personality Personality
	Gain        float64
	Timer       float64
}

// PersonalityShiftReport describes an actual personality change.
type PersonalityShiftReport struct {
	Previous Personality
	Current  Personality
}

// TickOutcome is the record of one scheduler tick.
type TickOutcome struct {
	TickNumber int64
	Timer      float64
	Decay      float64

	// Terminal is non-empty when the tick detected the end of the game;
	// no further tick work happened in that case.
	Terminal TerminalState

	Defense   *DefenseReport
	Shift     *PersonalityShiftReport
	Milestone *MilestoneOutcome
}
