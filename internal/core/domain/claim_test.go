package domain

import "testing"

func TestClaimStatus_IsValid(t *testing.T) {
	valid := []ClaimStatus{
		StatusDraft, StatusSubmitted, StatusVerification, StatusEvaluation,
		StatusNegotiation, StatusCourt, StatusResolved, StatusRejected, StatusWithdrawn,
	}
	for _, s := range valid {
		if !s.IsValid() {
			t.Errorf("%q should be valid", s)
		}
	}

	invalid := []ClaimStatus{"", "SUBMITTED", "shipped", "closed", "in_progress"}
	for _, s := range invalid {
		if s.IsValid() {
			t.Errorf("%q should not be valid", s)
		}
	}
}

func TestClaimStatus_OpenVersusTerminal(t *testing.T) {
	open := []ClaimStatus{StatusDraft, StatusSubmitted, StatusVerification, StatusEvaluation, StatusNegotiation, StatusCourt}
	for _, s := range open {
		if !s.IsOpen() || s.IsTerminal() {
			t.Errorf("%q should be open and not terminal", s)
		}
	}

	terminal := []ClaimStatus{StatusResolved, StatusRejected, StatusWithdrawn}
	for _, s := range terminal {
		if s.IsOpen() || !s.IsTerminal() {
			t.Errorf("%q should be terminal and not open", s)
		}
	}
}

func TestClaimStatus_CanTransitionTo(t *testing.T) {
	// Any open status may reach any valid status, including jumping
	// backwards in the workflow and moving straight to a terminal state.
	if !StatusSubmitted.CanTransitionTo(StatusCourt) {
		t.Error("submitted -> court should be allowed")
	}
	if !StatusNegotiation.CanTransitionTo(StatusSubmitted) {
		t.Error("negotiation -> submitted should be allowed")
	}
	if !StatusDraft.CanTransitionTo(StatusWithdrawn) {
		t.Error("draft -> withdrawn should be allowed")
	}
	if !StatusCourt.CanTransitionTo(StatusCourt) {
		t.Error("self-transition should be allowed")
	}

	// Terminal statuses are locked.
	if StatusResolved.CanTransitionTo(StatusSubmitted) {
		t.Error("resolved claims must not transition")
	}
	if StatusWithdrawn.CanTransitionTo(StatusDraft) {
		t.Error("withdrawn claims must not transition")
	}

	// Invalid targets are rejected regardless of the source state.
	if StatusSubmitted.CanTransitionTo("archived") {
		t.Error("unknown target status must be rejected")
	}
}
