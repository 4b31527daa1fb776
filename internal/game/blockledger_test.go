package game

import (
	"testing"
	"time"
)

func TestBlockLedgerDecayLadder(t *testing.T) {
	// Setup
	ledger := NewBlockLedger()
	start := time.Now()

	if !ledger.Block("firewall", PersonalityAggressive, start) {
		t.Fatalf("Expected fresh word to be blockable")
	}

	// Act + Assert: Aggressive keeps a reduced-effect stage for 15 minutes
	st := ledger.Status("firewall", PersonalityAggressive, start.Add(10*time.Minute))
	if st.Stage != StagePartial {
		t.Errorf("Expected StagePartial inside 15min, got %v", st.Stage)
	}
	if st.Factor != PartialBlockFactor {
		t.Errorf("Expected factor %v, got %v", PartialBlockFactor, st.Factor)
	}

	// Between 15 and 30 minutes the word is fully suppressed
	st = ledger.Status("firewall", PersonalityAggressive, start.Add(20*time.Minute))
	if st.Stage != StageFull {
		t.Errorf("Expected StageFull between 15 and 30 min, got %v", st.Stage)
	}

	// Past 30 minutes the entry expires and is evicted
	st = ledger.Status("firewall", PersonalityAggressive, start.Add(31*time.Minute))
	if st.Stage != StageUnblocked {
		t.Errorf("Expected StageUnblocked past 30 min, got %v", st.Stage)
	}
	if ledger.ActiveBlocks(PersonalityAggressive) != 0 {
		t.Errorf("Expected lazy eviction to remove the entry")
	}

	// Repeated queries after eviction stay unblocked (idempotent)
	st = ledger.Status("firewall", PersonalityAggressive, start.Add(32*time.Minute))
	if st.Stage != StageUnblocked {
		t.Errorf("Expected repeated query to stay unblocked, got %v", st.Stage)
	}
}

func TestBlockLedgerNonAggressiveSkipsPartialStage(t *testing.T) {
	ledger := NewBlockLedger()
	start := time.Now()

	ledger.Block("firewall", PersonalityDefensive, start)

	st := ledger.Status("firewall", PersonalityDefensive, start.Add(time.Minute))
	if st.Stage != StageFull {
		t.Errorf("Expected Defensive block to be full immediately, got %v", st.Stage)
	}
}

func TestBlockLedgerReblockIsNoOp(t *testing.T) {
	ledger := NewBlockLedger()
	start := time.Now()

	ledger.Block("firewall", PersonalityAggressive, start)

	// Re-blocking while partially blocked must not refresh the timestamp
	if ledger.Block("firewall", PersonalityAggressive, start.Add(10*time.Minute)) {
		t.Errorf("Expected re-block of a suppressed word to be a no-op")
	}

	// The original window still expires on the original schedule
	st := ledger.Status("firewall", PersonalityAggressive, start.Add(31*time.Minute))
	if st.Stage != StageUnblocked {
		t.Errorf("Expected original window to expire, got %v", st.Stage)
	}
}

func TestBlockLedgerIsolatesPersonalities(t *testing.T) {
	ledger := NewBlockLedger()
	start := time.Now()

	ledger.Block("firewall", PersonalityCurious, start)

	st := ledger.Status("firewall", PersonalityAggressive, start.Add(time.Minute))
	if st.Stage != StageUnblocked {
		t.Errorf("Expected block under Curious to not affect Aggressive, got %v", st.Stage)
	}
}
