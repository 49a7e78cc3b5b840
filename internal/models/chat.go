package models

import (
	"fmt"
	"math/rand"
	"strconv"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
)

const (
	SenderMatch = "match"
	SenderMe    = "me"
)

type Message struct {
	ID     string `json:"id"`
	Text   string `json:"text"`
	Sender string `json:"sender,omitempty"`
	System bool   `json:"system,omitempty"`
	Time   bool   `json:"time,omitempty"`
	Ts     int64  `json:"ts,omitempty"`
}

// UnmarshalJSON accepts both string ids and the numeric timestamp ids that
// older documents stored. Numeric ids come out as their decimal string.
func (m *Message) UnmarshalJSON(data []byte) error {
	type MessageAlias Message
	aux := struct {
		ID json.RawMessage `json:"id"`
		*MessageAlias
	}{MessageAlias: (*MessageAlias)(m)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	if len(aux.ID) == 0 || string(aux.ID) == "null" {
		m.ID = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(aux.ID, &s); err == nil {
		m.ID = s
		return nil
	}
	var n int64
	if err := json.Unmarshal(aux.ID, &n); err != nil {
		return err
	}
	m.ID = strconv.FormatInt(n, 10)
	return nil
}

type Preset struct {
	ID     string `json:"id"`
	Text   string `json:"text"`
	Sender string `json:"sender"`
}

// UnmarshalJSON accepts both the structured form and the legacy plain-string
// form ("Hey! 👋") that older documents stored. Legacy presets come out with
// empty ID and sender; Normalize fills them in.
func (p *Preset) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		p.ID = ""
		p.Text = s
		p.Sender = ""
		return nil
	}

	type presetAlias Preset
	var a presetAlias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*p = Preset(a)
	return nil
}

// Scenario is a named backup of one chat's message history, restorable later.
type Scenario struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Messages []*Message `json:"messages"`
}

type Chat struct {
	ID                 string      `json:"id"`
	Name               string      `json:"name"`
	AvatarColor        string      `json:"avatarColor"`
	AvatarImage        string      `json:"avatarImage,omitempty"`
	MatchMessage       string      `json:"matchMessage"`
	Status             string      `json:"status,omitempty"`
	StatusColor        string      `json:"statusColor,omitempty"`
	Dissolved          bool        `json:"dissolved,omitempty"`
	DissolutionMessage string      `json:"dissolutionMessage,omitempty"`
	Messages           []*Message  `json:"messages"`
	Presets            []*Preset   `json:"presets"`
	Scenarios          []*Scenario `json:"scenarios"`
}

func NewID() string {
	return uuid.NewString()
}

func NowMillis() int64 {
	return time.Now().UnixMilli()
}

// DefaultMatchMessage is what a chat announces when no custom text is set.
func DefaultMatchMessage(name string) string {
	return fmt.Sprintf("You matched with %s! 💖", name)
}

// SystemMessage builds the leading "matched" message for a chat.
func SystemMessage(text string) *Message {
	return &Message{
		ID:     NewID(),
		Text:   text,
		System: true,
		Ts:     NowMillis(),
	}
}

func NewChat(name string) *Chat {
	if name == "" {
		name = "New Match"
	}
	match := DefaultMatchMessage(name)
	return &Chat{
		ID:           NewID(),
		Name:         name,
		AvatarColor:  RandomGradient(),
		MatchMessage: match,
		Messages:     []*Message{SystemMessage(match)},
		Presets: []*Preset{
			{ID: NewID(), Text: "Hey! 👋", Sender: SenderMatch},
		},
		Scenarios: []*Scenario{},
	}
}

// RandomGradient returns a css two-color gradient string, same shape the
// browser client renders as an avatar background.
func RandomGradient() string {
	return fmt.Sprintf("linear-gradient(135deg, #%06x 0%%, #%06x 100%%)",
		rand.Intn(0xFFFFFF+1), rand.Intn(0xFFFFFF+1))
}

// FindChat returns the chat with the given id, or nil.
func FindChat(chats []*Chat, id string) *Chat {
	for _, c := range chats {
		if c.ID == id {
			return c
		}
	}
	return nil
}
