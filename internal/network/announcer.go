package network

import (
	"fmt"
	"strings"

	"github.com/aegisprotocol/aegis-server/internal/directory"
	"github.com/aegisprotocol/aegis-server/internal/events"
	"github.com/aegisprotocol/aegis-server/internal/game"
)

// Announcer turns engine events and outcomes into user-facing text.
// Display-name resolution is delegated to the membership directory; the
// engine itself only ever supplies participant ids.
type Announcer struct {
	dir *directory.Static
}

// NewAnnouncer creates an announcer backed by the given directory.
func NewAnnouncer(dir *directory.Static) *Announcer {
	return &Announcer{dir: dir}
}

// RegisterName records a participant's display name.
func (a *Announcer) RegisterName(participantID, displayName string) {
	a.dir.Register(participantID, displayName)
}

// DisplayName resolves a participant id.
func (a *Announcer) DisplayName(participantID string) string {
	return a.dir.DisplayName(participantID)
}

// Format renders one game event into announcement text. Events that carry
// no chat-worthy information (the per-tick timer sample) return ok=false.
func (a *Announcer) Format(event events.GameEvent) (string, bool) {
	switch p := event.Payload.(type) {
	case events.GameStartedPayload:
		return fmt.Sprintf("Aegis Protocol online. Current AI personality: %s. Timer starts at %.1f.",
			p.Personality, p.Timer), true

	case events.AttackResolvedPayload:
		name := a.dir.DisplayName(event.ActorID)
		return fmt.Sprintf("%s attacks with '%s'! Timer reduces by %.1f (unique bonus: %.1f) to %.1f. Earned %.2f. (MP +%.2f)",
			name, p.Phrase, p.TotalReduction, p.UniquenessBonus, p.Timer, p.IndividualReward, p.PoolContribution), true

	case events.AttackBlockedPayload:
		name := a.dir.DisplayName(event.ActorID)
		return fmt.Sprintf("%s, your attack was fully blocked! The word '%s' is ineffective right now.",
			name, p.Word), true

	case events.AttackRejectedPayload:
		if p.Reason == string(game.TerminalAdversaryWon) {
			return "The game is over! Aegis reached the maximum timer value.", true
		}
		return "The game has already been won! Aegis is defeated.", true

	case events.CounterAttackPayload:
		return fmt.Sprintf("Aegis counter-attacks! Timer increases significantly by %.1f!", p.Gain), true

	case events.DefendedPayload:
		return fmt.Sprintf("Aegis defends! Timer increases by %.1f. [Status: %s]", p.Gain, p.Personality), true

	case events.PersonalityShiftPayload:
		return fmt.Sprintf("(Aegis's demeanor shifts... Now %s!)", p.Current), true

	case events.WordResistedPayload:
		return fmt.Sprintf("(Aegis seems to be resisting the word '%s' now...)", p.Word), true

	case events.MilestoneReachedPayload:
		return a.formatMilestone(p), true

	case events.VictoryPayload:
		if p.ParticipantID == "" {
			return "VICTORY! The timer has run down to 0.0. Aegis is defeated!", true
		}
		name := a.dir.DisplayName(p.ParticipantID)
		return fmt.Sprintf("VICTORY! %s's attack ('%s') brought the timer to %.1f! Aegis is defeated!",
			name, p.Phrase, p.Timer), true

	case events.AdversaryVictoryPayload:
		return fmt.Sprintf("The game is over! Aegis reached the maximum timer value (%.1f).", p.MaxTimer), true
	}

	return "", false
}

func (a *Announcer) formatMilestone(p events.MilestoneReachedPayload) string {
	switch p.Outcome {
	case string(game.MilestoneNoActive):
		return fmt.Sprintf("Milestone %.0f reached, but no players were active in the last hour.", p.Threshold)
	case string(game.MilestoneEmptyPool):
		return fmt.Sprintf("Milestone %.0f reached! Pool is empty (%.2f).", p.Threshold, p.Pool)
	case string(game.MilestoneDust):
		return fmt.Sprintf("Milestone %.0f reached! Pool split (%.2f) is too small per user.", p.Threshold, p.Pool)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Milestone %.0f reached! Distributing %.2f total from the pool to %d active players:\n",
		p.Threshold, p.Pool, len(p.Rewards))
	for _, r := range p.Rewards {
		fmt.Fprintf(&b, "- %s: +%.2f\n", a.dir.DisplayName(r.ParticipantID), r.Amount)
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatAttackOutcome renders the direct reply for one attack submission.
func (a *Announcer) FormatAttackOutcome(o game.AttackOutcome) string {
	name := a.dir.DisplayName(o.ParticipantID)
	switch o.Kind {
	case game.AttackRejected:
		return "The game is over. Aegis no longer accepts attacks."
	case game.AttackFullyBlocked:
		return fmt.Sprintf("%s, your attack was fully blocked! The word '%s' is ineffective right now.", name, o.BlockedWord)
	case game.AttackVictory:
		return fmt.Sprintf("VICTORY! Your attack ('%s') brought the timer to %.1f! Aegis is defeated!", o.Phrase, o.Timer)
	default:
		return fmt.Sprintf("Attack lands for %.1f (unique bonus: %.1f). Timer at %.1f. Earned %.2f.",
			o.TotalReduction, o.UniquenessBonus, o.Timer, o.IndividualReward)
	}
}
