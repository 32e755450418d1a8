// Package diagram defines the typed intermediate representation a sequence
// diagram source is parsed into: participants, messages, activations, and
// notes, addressed by dense integer ids assigned in source order.
package diagram

// ParticipantId identifies a Participant by its position in Diagram.Participants.
type ParticipantId int

// MessageId identifies a Message by its position in Diagram.Messages.
type MessageId int

// NoteId identifies a Note by its position in Diagram.Notes.
type NoteId int

// ArrowStyle distinguishes a message's line style.
type ArrowStyle int

const (
	ArrowSolid ArrowStyle = iota
	ArrowDotted
)

// Direction records which endpoint of a Message was the original sender.
type Direction int

const (
	ToRight Direction = iota
	ToLeft
)

// Participant is a labeled lifeline column, created on first mention.
type Participant struct {
	ID   ParticipantId
	Name string
}

// Message is a directed arrow between two participants. Left is always the
// numerically smaller of the two participant ids; Direction records which
// side actually sent it.
type Message struct {
	ID        MessageId
	Left      ParticipantId
	Right     ParticipantId
	Label     string
	Arrow     ArrowStyle
	Direction Direction
}

// Activation is a lifeline highlight on Participant running from the point
// immediately after message From to message To. Level is the nesting depth,
// 1 for an outermost activation. The Diagram's activation list is ordered
// innermost (highest level) first.
type Activation struct {
	Participant ParticipantId
	From        MessageId
	To          MessageId
	Level       int
}

// HorizontalKind distinguishes the three ways a Note can be anchored
// horizontally.
type HorizontalKind int

const (
	LeftOf HorizontalKind = iota
	RightOf
	Over
)

// HorizontalPosition is a sum type: for LeftOf/RightOf, Participants holds
// exactly one id; for Over, it holds one or more, in source order.
type HorizontalPosition struct {
	Kind         HorizontalKind
	Participants []ParticipantId
}

// VerticalKind distinguishes the three ways a Note can be anchored
// vertically.
type VerticalKind int

const (
	First VerticalKind = iota
	AfterMessage
	AfterNote
)

// VerticalPosition pairs a VerticalKind with the message or note id it is
// relative to (ignored for First).
type VerticalPosition struct {
	Kind    VerticalKind
	Message MessageId
	Note    NoteId
}

// Note is a free-floating annotation anchored to one or more participants.
type Note struct {
	ID         NoteId
	Content    string
	Horizontal HorizontalPosition
	Vertical   VerticalPosition
}

// Diagram is the immutable parse result: participants, messages,
// activations and notes, each in source order except Activations, which is
// ordered innermost-first.
type Diagram struct {
	Participants []Participant
	Messages     []Message
	Activations  []Activation
	Notes        []Note
}

// ParticipantByID returns the participant with the given id and whether it
// exists.
func (d *Diagram) ParticipantByID(id ParticipantId) (Participant, bool) {
	if id < 0 || int(id) >= len(d.Participants) {
		return Participant{}, false
	}
	return d.Participants[id], true
}

// MessagesFor returns, in source order, the ids of messages incident to p
// (p is either the Left or Right endpoint).
func (d *Diagram) MessagesFor(p ParticipantId) []MessageId {
	var ids []MessageId
	for _, m := range d.Messages {
		if m.Left == p || m.Right == p {
			ids = append(ids, m.ID)
		}
	}
	return ids
}
