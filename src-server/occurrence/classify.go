package occurrence

// Viewer-relative role of an event, used to pick its render color.
type Classification string

const (
	ClassificationOwned         = Classification("owned")
	ClassificationParticipating = Classification("participating")
	ClassificationOther         = Classification("other")
)

// Render color per classification. Participation status (accepted, pending,
// declined) deliberately doesn't affect the color; the list endpoints are the
// place that distinguishes status.
func (c Classification) Color() string {
	switch c {
	case ClassificationOwned:
		return "#48BB78"
	case ClassificationParticipating:
		return "#4299E1"
	default:
		return "#A0AEC0"
	}
}

// Classify is total: any definition/viewer pair maps to exactly one
// classification. Membership in ParticipantIDs counts regardless of status.
func Classify(def Definition, viewerID string) Classification {
	if def.CreatedBy == viewerID {
		return ClassificationOwned
	}
	for _, participantID := range def.ParticipantIDs {
		if participantID == viewerID {
			return ClassificationParticipating
		}
	}
	return ClassificationOther
}
