package chat

import (
	"fmt"
	"strings"

	"github.com/tayloree/fabric-chat/internal/catalog"
	"github.com/tayloree/fabric-chat/internal/match"
)

const (
	// Placeholder stands in for any absent card field.
	Placeholder = "—"
	// UnknownPattern is the card title for a fabric without a pattern name.
	UnknownPattern = "Unknown Pattern"

	GreetingText = "Hi! I'm your fabric assistant.\n" +
		"Ask me about a pattern name, manufacturer, or colorway.\n\n" +
		"Example: \"What is the Tweed Multi fabric?\""
	LoadFailureText = "I couldn't load the fabric dataset. " +
		"Make sure the dataset file exists (by default fabrics.json in the current folder) or point --dataset at it."
	NoMatchText = "I couldn't find a fabric that matches that.\n" +
		"Try using a pattern name like \"Tweed Multi\" or include the manufacturer name."
)

// Kind distinguishes plain text replies from fabric cards.
type Kind int

const (
	KindText Kind = iota
	KindCard
)

// Card is the structured payload for a matched fabric.
type Card struct {
	Title        string
	Manufacturer string
	Colorway     string
	FabricType   string
}

// Reply is one message from the assistant.
type Reply struct {
	Kind  Kind
	Text  string // KindText; newlines are line breaks
	Intro string // KindCard
	Card  Card   // KindCard
	Tier  match.Tier
}

// Matched reports whether the reply carries a fabric card.
func (r Reply) Matched() bool { return r.Kind == KindCard }

// TextReply builds a plain text reply.
func TextReply(text string) Reply {
	return Reply{Kind: KindText, Text: text}
}

// Describe formats a fabric as a card. The intro phrase changes when the
// question mentions orange; the card itself does not.
func Describe(f catalog.Fabric, question string) Reply {
	title := orDefault(f.Pattern(), UnknownPattern)

	intro := fmt.Sprintf("Here's what I found for %s", title)
	if strings.Contains(strings.ToLower(question), "orange") {
		intro = fmt.Sprintf("An orange option I like is %s", title)
	}

	return Reply{
		Kind:  KindCard,
		Intro: intro,
		Card: Card{
			Title:        title,
			Manufacturer: orDefault(f.Maker(), Placeholder),
			Colorway:     orDefault(f.Color(), Placeholder),
			FabricType:   orDefault(f.Type(), Placeholder),
		},
	}
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
