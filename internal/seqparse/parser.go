// Package seqparse implements the line-oriented parser for the compact
// sequence-diagram notation: it reads source text and produces a typed
// diagram.Diagram, or fails fast with the first trierr.Error encountered.
// The grammar has exactly four line shapes and no error recovery — callers
// get the first failure, not every failure.
package seqparse

import (
	"sort"
	"strings"

	"github.com/axelerator/triton/internal/diagram"
	"github.com/axelerator/triton/internal/trierr"
)

// lineKind classifies a recognized source line.
type lineKind int

const (
	kindEmpty lineKind = iota
	kindNote
	kindParticipant
	kindMessage
)

type parsedLine struct {
	kind lineKind
	pos  trierr.Pos

	// kindParticipant
	participantName string

	// kindMessage
	senderName    string
	receiverName  string
	label         string
	dotted        bool
	activateFlag  byte // 0, '+', or '-'

	// kindNote
	noteHorizontal rawHorizontal
	noteText       string
}

type rawHorizontal struct {
	kind  diagram.HorizontalKind
	names []string
}

// Parse reads src and returns the assembled Diagram, or the first
// trierr.Error encountered (malformed syntax, an unknown participant, or
// activation-stack discipline violations).
func Parse(src string) (*diagram.Diagram, error) {
	lines := splitLines(src)

	parsed := make([]parsedLine, 0, len(lines))
	for i, raw := range lines {
		pl, err := parseLine(raw, i+1)
		if err != nil {
			return nil, err
		}
		parsed = append(parsed, pl)
	}

	participants, ids := registerParticipants(parsed)

	d := &diagram.Diagram{Participants: participants}

	messages, err := buildMessages(parsed, ids)
	if err != nil {
		return nil, err
	}
	d.Messages = messages

	activations, err := buildActivations(parsed, ids, participants)
	if err != nil {
		return nil, err
	}
	d.Activations = activations

	notes, err := buildNotes(parsed, ids)
	if err != nil {
		return nil, err
	}
	d.Notes = notes

	return d, nil
}

func splitLines(src string) []string {
	if !strings.HasSuffix(src, "\n") {
		src += "\n"
	}
	lines := strings.Split(src, "\n")
	return lines[:len(lines)-1]
}

func parseLine(raw string, lineNo int) (parsedLine, error) {
	trimmed := strings.TrimLeft(raw, " \t")
	col := len(raw) - len(trimmed) + 1
	pos := trierr.Pos{Line: lineNo, Column: col}

	if strings.TrimSpace(trimmed) == "" {
		return parsedLine{kind: kindEmpty, pos: pos}, nil
	}

	if body, ok := stripKeyword(trimmed, "Note"); ok {
		return parseNoteLine(body, pos)
	}
	if body, ok := stripKeyword(trimmed, "participant"); ok {
		return parsedLine{kind: kindParticipant, pos: pos, participantName: strings.TrimSpace(body)}, nil
	}
	if body, ok := stripKeyword(trimmed, "actor"); ok {
		return parsedLine{kind: kindParticipant, pos: pos, participantName: strings.TrimSpace(body)}, nil
	}
	return parseMessageLine(trimmed, pos)
}

// stripKeyword reports whether line begins with keyword followed by
// whitespace, returning the remainder.
func stripKeyword(line, keyword string) (string, bool) {
	if !strings.HasPrefix(line, keyword) {
		return "", false
	}
	rest := line[len(keyword):]
	if rest == "" {
		return "", false
	}
	if rest[0] != ' ' && rest[0] != '\t' {
		return "", false
	}
	return rest, true
}

func parseNoteLine(body string, pos trierr.Pos) (parsedLine, error) {
	colon := strings.Index(body, ":")
	if colon < 0 {
		return parsedLine{}, trierr.NewParseError(pos, "':' after note position")
	}
	posText := strings.TrimSpace(body[:colon])
	text := strings.TrimLeft(body[colon+1:], " \t")

	var h rawHorizontal
	switch {
	case hasKeywordPrefix(posText, "left of"):
		h = rawHorizontal{kind: diagram.LeftOf, names: []string{strings.TrimSpace(posText[len("left of"):])}}
	case hasKeywordPrefix(posText, "right of"):
		h = rawHorizontal{kind: diagram.RightOf, names: []string{strings.TrimSpace(posText[len("right of"):])}}
	case hasKeywordPrefix(posText, "over"):
		rest := strings.TrimSpace(posText[len("over"):])
		var names []string
		for _, n := range strings.Split(rest, ",") {
			n = strings.TrimSpace(n)
			if n != "" {
				names = append(names, n)
			}
		}
		h = rawHorizontal{kind: diagram.Over, names: names}
	default:
		return parsedLine{}, trierr.NewParseError(pos, "'left of', 'right of', or 'over' in note position")
	}
	if len(h.names) == 0 || h.names[0] == "" {
		return parsedLine{}, trierr.NewParseError(pos, "participant name in note position")
	}
	return parsedLine{kind: kindNote, pos: pos, noteHorizontal: h, noteText: text}, nil
}

func hasKeywordPrefix(s, kw string) bool {
	if !strings.HasPrefix(s, kw) {
		return false
	}
	rest := s[len(kw):]
	return rest == "" || rest[0] == ' ' || rest[0] == '\t'
}

func parseMessageLine(line string, pos trierr.Pos) (parsedLine, error) {
	dashIdx := strings.IndexByte(line, '-')
	if dashIdx <= 0 {
		return parsedLine{}, trierr.NewParseError(pos, "message, note, or participant declaration")
	}
	sender := strings.TrimSpace(line[:dashIdx])
	rest := line[dashIdx:]

	var dotted bool
	switch {
	case strings.HasPrefix(rest, "-->"):
		dotted = true
		rest = rest[3:]
	case strings.HasPrefix(rest, "->"):
		dotted = false
		rest = rest[2:]
	default:
		return parsedLine{}, trierr.NewParseError(pos, "'->' or '-->' arrow")
	}

	var flag byte
	if len(rest) > 0 && (rest[0] == '+' || rest[0] == '-') {
		flag = rest[0]
		rest = rest[1:]
	}

	colon := strings.Index(rest, ":")
	if colon < 0 {
		return parsedLine{}, trierr.NewParseError(pos, "':' before message label")
	}
	receiver := strings.TrimSpace(rest[:colon])
	label := strings.TrimLeft(rest[colon+1:], " \t")

	if sender == "" || receiver == "" {
		return parsedLine{}, trierr.NewParseError(pos, "non-empty sender and receiver")
	}

	return parsedLine{
		kind:         kindMessage,
		pos:          pos,
		senderName:   sender,
		receiverName: receiver,
		label:        label,
		dotted:       dotted,
		activateFlag: flag,
	}, nil
}

// registerParticipants assigns ids in first-seen order across all lines,
// following explicit declarations and message sender/receiver mentions —
// note lines never register a new participant, only reference one.
func registerParticipants(lines []parsedLine) ([]diagram.Participant, map[string]diagram.ParticipantId) {
	ids := map[string]diagram.ParticipantId{}
	var participants []diagram.Participant
	register := func(name string) {
		if _, ok := ids[name]; ok {
			return
		}
		id := diagram.ParticipantId(len(participants))
		ids[name] = id
		participants = append(participants, diagram.Participant{ID: id, Name: name})
	}
	for _, l := range lines {
		switch l.kind {
		case kindParticipant:
			register(l.participantName)
		case kindMessage:
			register(l.senderName)
			register(l.receiverName)
		}
	}
	return participants, ids
}

func buildMessages(lines []parsedLine, ids map[string]diagram.ParticipantId) ([]diagram.Message, error) {
	var messages []diagram.Message
	for _, l := range lines {
		if l.kind != kindMessage {
			continue
		}
		from := ids[l.senderName]
		to := ids[l.receiverName]
		left, right, dir := from, to, diagram.ToRight
		if from > to {
			left, right, dir = to, from, diagram.ToLeft
		} else if from == to {
			dir = diagram.ToRight
		}
		arrow := diagram.ArrowSolid
		if l.dotted {
			arrow = diagram.ArrowDotted
		}
		id := diagram.MessageId(len(messages))
		messages = append(messages, diagram.Message{
			ID:        id,
			Left:      left,
			Right:     right,
			Label:     l.label,
			Arrow:     arrow,
			Direction: dir,
		})
	}
	return messages, nil
}

type openActivation struct {
	level     int
	messageID diagram.MessageId
}

// buildActivations resolves "+"/"-" flags into a per-participant stack.
// Because deactivation always pops the most recently pushed (most deeply
// nested) entry, activations are appended to the result in completion
// order, which is already innermost-first for any one nesting chain — no
// final reversal is applied. The finished list is then stably sorted by
// descending level, so activations from separate chains are also ordered
// innermost-first.
func buildActivations(lines []parsedLine, ids map[string]diagram.ParticipantId, participants []diagram.Participant) ([]diagram.Activation, error) {
	open := map[diagram.ParticipantId][]openActivation{}
	var activations []diagram.Activation

	msgIdx := 0
	for _, l := range lines {
		if l.kind != kindMessage {
			continue
		}
		id := diagram.MessageId(msgIdx)
		from := ids[l.senderName]
		to := ids[l.receiverName]
		switch l.activateFlag {
		case '+':
			stack := open[to]
			level := 1
			if n := len(stack); n > 0 {
				level = stack[n-1].level + 1
			}
			open[to] = append(stack, openActivation{level: level, messageID: id})
		case '-':
			stack := open[from]
			if len(stack) == 0 {
				return nil, trierr.NewUnmatchedDeactivation(l.pos, l.senderName)
			}
			top := stack[len(stack)-1]
			open[from] = stack[:len(stack)-1]
			activations = append(activations, diagram.Activation{
				Participant: from,
				From:        top.messageID,
				To:          id,
				Level:       top.level,
			})
		}
		msgIdx++
	}

	for _, p := range participants {
		if len(open[p.ID]) > 0 {
			return nil, trierr.NewUnclosedActivation(lastPosForMessageLine(lines), p.Name)
		}
	}
	sort.SliceStable(activations, func(i, j int) bool {
		return activations[i].Level > activations[j].Level
	})
	return activations, nil
}

func lastPosForMessageLine(lines []parsedLine) trierr.Pos {
	for i := len(lines) - 1; i >= 0; i-- {
		if lines[i].kind == kindMessage {
			return lines[i].pos
		}
	}
	return trierr.Pos{Line: 1, Column: 1}
}

func buildNotes(lines []parsedLine, ids map[string]diagram.ParticipantId) ([]diagram.Note, error) {
	var notes []diagram.Note
	lastMessage := diagram.MessageId(-1)
	lastNote := diagram.NoteId(-1)
	haveMessage := false
	haveNote := false
	msgIdx := 0

	for _, l := range lines {
		switch l.kind {
		case kindMessage:
			lastMessage = diagram.MessageId(msgIdx)
			haveMessage = true
			haveNote = false
			msgIdx++
		case kindNote:
			participantIDs := make([]diagram.ParticipantId, 0, len(l.noteHorizontal.names))
			for _, name := range l.noteHorizontal.names {
				id, ok := ids[name]
				if !ok {
					return nil, trierr.NewUnknownParticipant(l.pos, name)
				}
				participantIDs = append(participantIDs, id)
			}
			var vertical diagram.VerticalPosition
			switch {
			case haveNote:
				vertical = diagram.VerticalPosition{Kind: diagram.AfterNote, Note: lastNote}
			case haveMessage:
				vertical = diagram.VerticalPosition{Kind: diagram.AfterMessage, Message: lastMessage}
			default:
				vertical = diagram.VerticalPosition{Kind: diagram.First}
			}
			id := diagram.NoteId(len(notes))
			notes = append(notes, diagram.Note{
				ID:      id,
				Content: l.noteText,
				Horizontal: diagram.HorizontalPosition{
					Kind:         l.noteHorizontal.kind,
					Participants: participantIDs,
				},
				Vertical: vertical,
			})
			lastNote = id
			haveNote = true
			haveMessage = false
		}
	}
	return notes, nil
}
