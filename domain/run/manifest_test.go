package run

import (
	"testing"
)

func TestNewManifest(t *testing.T) {
	m := NewManifest(3, 1000, "first_wins")
	if m.RunID == "" {
		t.Error("Expected a generated run ID")
	}
	if m.VariableCount != 3 || m.SampleCount != 1000 {
		t.Errorf("Unexpected shape: %dx%d", m.VariableCount, m.SampleCount)
	}
	if m.CreatedAt.IsZero() {
		t.Error("Expected created_at to be set")
	}
}

func TestManifestValidate(t *testing.T) {
	valid := NewManifest(2, 10, "first_wins")
	valid.MarginalHash = "a"
	valid.CopulaHash = "b"
	valid.OutputHash = "c"
	if err := valid.Validate(); err != nil {
		t.Errorf("Expected valid manifest, got %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Manifest)
	}{
		{"empty run id", func(m *Manifest) { m.RunID = "" }},
		{"zero variables", func(m *Manifest) { m.VariableCount = 0 }},
		{"zero samples", func(m *Manifest) { m.SampleCount = 0 }},
		{"empty tie policy", func(m *Manifest) { m.TiePolicy = "" }},
		{"missing hashes", func(m *Manifest) { m.OutputHash = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewManifest(2, 10, "first_wins")
			m.MarginalHash = "a"
			m.CopulaHash = "b"
			m.OutputHash = "c"
			tt.mutate(m)
			if err := m.Validate(); err == nil {
				t.Error("Expected validation error")
			}
		})
	}
}

func TestManifestFingerprint(t *testing.T) {
	a := NewManifest(2, 10, "first_wins")
	a.MarginalHash = "m"
	a.CopulaHash = "c"
	a.OutputHash = "o"

	b := NewManifest(2, 10, "first_wins")
	b.MarginalHash = "m"
	b.CopulaHash = "c"
	b.OutputHash = "o"

	// Fingerprint depends only on inputs, output, and policy - not run ID
	if a.Fingerprint() != b.Fingerprint() {
		t.Error("Expected identical fingerprints for identical batches")
	}

	b.TiePolicy = "last_wins"
	if a.Fingerprint() == b.Fingerprint() {
		t.Error("Expected fingerprint to change with tie policy")
	}
}
