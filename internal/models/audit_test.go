package models

import "testing"

func TestIsValidAuditAction(t *testing.T) {
	tests := []struct {
		action   string
		expected bool
	}{
		{AuditActionCreate, true},
		{AuditActionUpdate, true},
		{AuditActionDelete, true},
		{AuditActionRead, true},
		{AuditActionApprove, true},
		{AuditActionReject, true},
		{AuditActionSubmit, true},
		{AuditActionCancel, true},
		{AuditActionArchive, true},
		{AuditActionRestore, true},

		{"", false},
		{"CREATE", false},
		{"created", false},
		{"login", false},
	}

	for _, tt := range tests {
		t.Run(tt.action, func(t *testing.T) {
			if got := IsValidAuditAction(tt.action); got != tt.expected {
				t.Errorf("IsValidAuditAction(%q) = %v, want %v", tt.action, got, tt.expected)
			}
		})
	}
}

func TestDecodePayload(t *testing.T) {
	strPtr := func(s string) *string { return &s }

	tests := []struct {
		name string
		blob *string
		want map[string]any
	}{
		{"nil blob", nil, map[string]any{}},
		{"empty blob", strPtr(""), map[string]any{}},
		{"malformed blob", strPtr("{not json"), map[string]any{}},
		{"json null", strPtr("null"), map[string]any{}},
		{"valid blob", strPtr(`{"status":"draft","year":2026}`), map[string]any{
			"status": "draft",
			"year":   float64(2026),
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DecodePayload(tt.blob)
			if got == nil {
				t.Fatal("DecodePayload returned nil map")
			}
			if len(got) != len(tt.want) {
				t.Fatalf("DecodePayload = %v, want %v", got, tt.want)
			}
			for k, v := range tt.want {
				if got[k] != v {
					t.Errorf("DecodePayload[%q] = %v, want %v", k, got[k], v)
				}
			}
		})
	}
}
