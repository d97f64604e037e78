package models

import (
	"encoding/json"
	"time"
)

const (
	WorkoutTypeChipper = "chipper"
	WorkoutTypeCircuit = "circuit"
)

// Workout is a stored workout definition.
type Workout struct {
	ID          string `firestore:"-" json:"id"` // Firestore document ID, set after retrieval
	Name        string `firestore:"name" json:"name"`
	Type        string `firestore:"type,omitempty" json:"type,omitempty"`
	Description string `firestore:"description,omitempty" json:"description,omitempty"`
	Stations    int    `firestore:"stations,omitempty" json:"stations,omitempty"`
	// Steps is kept untyped: older documents and hand edits do not always hold a list of steps.
	Steps     interface{} `firestore:"steps,omitempty" json:"steps,omitempty"`
	CreatedAt time.Time   `firestore:"createdAt,omitempty" json:"-"`
	UpdatedAt time.Time   `firestore:"updatedAt,omitempty" json:"-"`

	// Extra holds the raw stored document. Its fields are returned alongside the typed ones.
	Extra map[string]interface{} `firestore:"-" json:"-"`
}

type workoutJSON Workout

func (w Workout) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(workoutJSON(w))
	if err != nil {
		return nil, err
	}
	return mergeExtra(data, w.Extra)
}

// TimerState is the shared clock of a live session.
type TimerState struct {
	Running   bool      `firestore:"running" json:"running"`
	ElapsedMs int64     `firestore:"elapsedMs" json:"elapsedMs"`
	Round     int       `firestore:"round,omitempty" json:"round,omitempty"`
	UpdatedAt time.Time `firestore:"updatedAt" json:"updatedAt"`
}

// Session is one run of a workout, usually shown on a screen in the gym.
type Session struct {
	ID                 string      `firestore:"-" json:"id"`
	WorkoutID          string      `firestore:"workoutId" json:"workoutId"`
	Status             string      `firestore:"status,omitempty" json:"status,omitempty"`
	Timer              TimerState  `firestore:"timer,omitempty" json:"timer"`
	StationAssignments interface{} `firestore:"stationAssignments,omitempty" json:"stationAssignments,omitempty"`
	CreatedAt          time.Time   `firestore:"createdAt,omitempty" json:"-"`

	// Extra holds the raw stored document, as on Workout.
	Extra map[string]interface{} `firestore:"-" json:"-"`
}

type sessionJSON Session

func (s Session) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(sessionJSON(s))
	if err != nil {
		return nil, err
	}
	return mergeExtra(data, s.Extra)
}

// Score is a logged result for a profile on a workout.
type Score struct {
	ID        string    `firestore:"-" json:"id"`
	WorkoutID string    `firestore:"workoutId,omitempty" json:"workoutId,omitempty"`
	SessionID string    `firestore:"sessionId,omitempty" json:"sessionId,omitempty"`
	ProfileID string    `firestore:"profileId,omitempty" json:"profileId,omitempty"`
	Value     string    `firestore:"value" json:"value"`
	Notes     string    `firestore:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt time.Time `firestore:"createdAt,omitempty" json:"createdAt"`
}

// Profile is a gym member that scores can be logged against.
type Profile struct {
	ID    string `firestore:"-" json:"id"`
	Name  string `firestore:"name" json:"name"`
	Email string `firestore:"email,omitempty" json:"email,omitempty"`
}

// EditableWorkout is a workout as loaded by the admin editor, with the
// creation time flattened to a string so it survives a JSON round trip.
type EditableWorkout struct {
	Workout
	CreatedAt *string `json:"createdAt"`
}

func (e EditableWorkout) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(struct {
		workoutJSON
		CreatedAt *string `json:"createdAt"`
	}{workoutJSON(e.Workout), e.CreatedAt})
	if err != nil {
		return nil, err
	}
	return mergeExtra(data, e.Extra)
}

// NewEditableWorkout wraps w, formatting CreatedAt as RFC 3339 or leaving it null when unset.
func NewEditableWorkout(w Workout) EditableWorkout {
	e := EditableWorkout{Workout: w}
	if !w.CreatedAt.IsZero() {
		s := w.CreatedAt.UTC().Format(time.RFC3339Nano)
		e.CreatedAt = &s
	}
	return e
}

// mergeExtra adds the fields of extra that the typed JSON object in data does not already carry.
func mergeExtra(data []byte, extra map[string]interface{}) ([]byte, error) {
	if len(extra) == 0 {
		return data, nil
	}
	fields := make(map[string]json.RawMessage)
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	for k, v := range extra {
		if _, ok := fields[k]; ok {
			continue
		}
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		fields[k] = raw
	}
	return json.Marshal(fields)
}
