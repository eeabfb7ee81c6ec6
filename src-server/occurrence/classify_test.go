package occurrence_test

import (
	"testing"
	"zlot/src-server/occurrence"
)

func TestClassify(t *testing.T) {
	// fixture constraint: the creator never appears in ParticipantIDs, which
	// keeps owned and participating mutually exclusive
	def := occurrence.Definition{
		ID:             "ev-1",
		Title:          "Picnic",
		Date:           "2024-06-01",
		Time:           "10:00",
		CreatedBy:      "U1",
		ParticipantIDs: []string{"U2", "U4"},
	}

	for _, tc := range []struct {
		viewerID string
		want     occurrence.Classification
	}{
		{"U1", occurrence.ClassificationOwned},
		{"U2", occurrence.ClassificationParticipating},
		{"U3", occurrence.ClassificationOther},
		{"", occurrence.ClassificationOther},
	} {
		if got := occurrence.Classify(def, tc.viewerID); got != tc.want {
			t.Errorf("Classify(viewer=%q) = %q, want %q", tc.viewerID, got, tc.want)
		}
	}
}

// Calendar coloring ignores participation status entirely: a declined
// participant still classifies as participating. The list endpoints, not the
// classifier, are where status matters.
func TestClassifyIgnoresParticipationStatus(t *testing.T) {
	def := occurrence.Definition{
		ID:        "ev-2",
		CreatedBy: "U1",
		// the definition only carries ids; status was already dropped
		// upstream when the participant set was flattened
		ParticipantIDs: []string{"U-declined", "U-pending", "U-accepted"},
	}
	for _, viewerID := range []string{"U-declined", "U-pending", "U-accepted"} {
		if got := occurrence.Classify(def, viewerID); got != occurrence.ClassificationParticipating {
			t.Errorf("Classify(viewer=%q) = %q, want participating", viewerID, got)
		}
	}
}

func TestClassificationColors(t *testing.T) {
	if occurrence.ClassificationOwned.Color() == occurrence.ClassificationOther.Color() {
		t.Error("owned and other must render with distinct colors")
	}
	if occurrence.ClassificationParticipating.Color() == occurrence.ClassificationOther.Color() {
		t.Error("participating and other must render with distinct colors")
	}
	if occurrence.Classification("bogus").Color() != occurrence.ClassificationOther.Color() {
		t.Error("unknown classifications fall back to the other color")
	}
}
