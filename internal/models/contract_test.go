package models

import "testing"

func TestIsValidContractTransition(t *testing.T) {
	tests := []struct {
		from     string
		to       string
		expected bool
	}{
		// Happy path
		{ContractStatusDraft, ContractStatusSubmitted, true},
		{ContractStatusSubmitted, ContractStatusApproved, true},
		{ContractStatusSubmitted, ContractStatusRejected, true},
		{ContractStatusApproved, ContractStatusArchived, true},
		{ContractStatusArchived, ContractStatusApproved, true},

		// Cancellation paths
		{ContractStatusDraft, ContractStatusCancelled, true},
		{ContractStatusSubmitted, ContractStatusCancelled, true},
		{ContractStatusApproved, ContractStatusCancelled, true},

		// Invalid transitions
		{ContractStatusDraft, ContractStatusApproved, false},
		{ContractStatusDraft, ContractStatusArchived, false},
		{ContractStatusRejected, ContractStatusSubmitted, false},
		{ContractStatusCancelled, ContractStatusDraft, false},
		{ContractStatusArchived, ContractStatusCancelled, false},
		{ContractStatusApproved, ContractStatusSubmitted, false},
		{"nonexistent", ContractStatusSubmitted, false},
		{ContractStatusDraft, "nonexistent", false},
	}

	for _, tt := range tests {
		t.Run(tt.from+"->"+tt.to, func(t *testing.T) {
			result := IsValidContractTransition(tt.from, tt.to)
			if result != tt.expected {
				t.Errorf("IsValidContractTransition(%q, %q) = %v, want %v",
					tt.from, tt.to, result, tt.expected)
			}
		})
	}
}

func TestIsValidContractPhase(t *testing.T) {
	for _, phase := range []string{
		ContractPhasePreparation, ContractPhaseConsultation, ContractPhaseValidation,
		ContractPhaseApproval, ContractPhaseExecution, ContractPhaseCloseout,
	} {
		if !IsValidContractPhase(phase) {
			t.Errorf("IsValidContractPhase(%q) = false, want true", phase)
		}
	}

	for _, phase := range []string{"", "Preparation", "delivery", "phase 1"} {
		if IsValidContractPhase(phase) {
			t.Errorf("IsValidContractPhase(%q) = true, want false", phase)
		}
	}
}
