package conversation

// Stage is a conversation's position. Stages are strings so they read well in
// stored sessions and API responses.
type Stage string

const (
	StageIdle       Stage = "idle"
	StageAskName    Stage = "ask_name"
	StageAskGuests  Stage = "ask_guests"
	StageAskDate    Stage = "ask_date"
	StageAskTime    Stage = "ask_time"
	StageAskCuisine Stage = "ask_cuisine"
	StageAskSpecial Stage = "ask_special"
	StageAskCity    Stage = "ask_city"
	StageConfirming Stage = "confirming"
	StageComplete   Stage = "complete"
)

// Stages lists every known stage in conversation order.
var Stages = []Stage{
	StageIdle,
	StageAskName,
	StageAskGuests,
	StageAskDate,
	StageAskTime,
	StageAskCuisine,
	StageAskSpecial,
	StageAskCity,
	StageConfirming,
	StageComplete,
}

// Valid reports whether s is one of Stages. Stored sessions can carry stale or
// corrupted values; Advance treats those with the fallback prompt.
func (s Stage) Valid() bool {
	for _, known := range Stages {
		if s == known {
			return true
		}
	}
	return false
}

// Asking reports whether the stage waits for a spoken answer.
func (s Stage) Asking() bool {
	switch s {
	case StageAskName, StageAskGuests, StageAskDate, StageAskTime,
		StageAskCuisine, StageAskSpecial, StageAskCity:
		return true
	}
	return false
}
