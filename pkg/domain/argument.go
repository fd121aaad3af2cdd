package domain

import "time"

// ArgumentRecord is a single argument made by a participant during a debate.
type ArgumentRecord struct {
	DebateId      string    `bson:"debate_id" json:"debate_id"`
	ParticipantId string    `bson:"participant_id" json:"participant_id"`
	Argument      string    `bson:"argument" json:"argument"`
	Timestamp     time.Time `bson:"timestamp" json:"timestamp"`
}

// Participant identifies a debater. Matching against records is done by
// Id only, never by name or alias.
type Participant struct {
	Id      string   `bson:"id" json:"id"`
	Name    string   `bson:"name" json:"name"`
	Aliases []string `bson:"aliases,omitempty" json:"aliases,omitempty"`
}

// TrailEntry is one step of a participant's argument trail, ordered by
// the time the argument was made.
type TrailEntry struct {
	DebateId string `bson:"debate_id" json:"debate_id"`
	Argument string `bson:"argument" json:"argument"`
}
