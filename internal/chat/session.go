// Package chat holds the conversation core: a session that owns the loaded
// catalog, answers questions through the resolver, and formats replies. It
// has no knowledge of how replies are drawn; see Renderer.
package chat

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/tayloree/fabric-chat/internal/catalog"
	"github.com/tayloree/fabric-chat/internal/match"
)

// DefaultThinkingDelay is the pause before each answer, shown as a typing
// indicator by interactive front ends.
const DefaultThinkingDelay = 500 * time.Millisecond

// Session is the state of one conversation. The catalog is set once at
// construction and only read afterwards, so a Session is safe for
// concurrent use.
type Session struct {
	catalog *catalog.Catalog
	loadErr error
	think   time.Duration
	logger  *slog.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithThinkingDelay sets the pause before each answer. Zero disables it.
func WithThinkingDelay(d time.Duration) Option {
	return func(s *Session) {
		if d < 0 {
			d = 0
		}
		s.think = d
	}
}

// WithLogger sets the session logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewSession starts a session from a load result. A failed load leaves the
// session with an empty catalog: every question then gets the no-match reply.
func NewSession(res catalog.Result, opts ...Option) *Session {
	s := &Session{
		think:  DefaultThinkingDelay,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}

	if res.Err != nil {
		s.loadErr = res.Err
		s.logger.Error("dataset load failed", "err", res.Err)
	} else {
		s.catalog = res.Catalog
		s.logger.Info("dataset loaded", "fabrics", res.Catalog.Len())
	}
	return s
}

// Catalog returns the session catalog, nil after a failed load.
func (s *Session) Catalog() *catalog.Catalog { return s.catalog }

// LoadErr returns the load failure, if any.
func (s *Session) LoadErr() error { return s.loadErr }

// Greeting is the first message of the conversation.
func (s *Session) Greeting() Reply {
	if s.loadErr != nil {
		return TextReply(LoadFailureText)
	}
	return TextReply(GreetingText)
}

// Respond answers one question after the thinking delay. Blank questions
// return ErrEmptyQuestion; cancelling ctx during the delay returns ctx.Err().
func (s *Session) Respond(ctx context.Context, question string) (Reply, error) {
	if strings.TrimSpace(question) == "" {
		return Reply{}, ErrEmptyQuestion
	}

	if s.think > 0 {
		timer := time.NewTimer(s.think)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return Reply{}, ctx.Err()
		case <-timer.C:
		}
	}

	m, ok := match.Find(question, s.catalog)
	if !ok {
		s.logger.Debug("no fabric matched", "question", question)
		return TextReply(NoMatchText), nil
	}

	s.logger.Debug("fabric matched", "question", question, "tier", m.Tier.String(), "index", m.Index)
	reply := Describe(m.Fabric, question)
	reply.Tier = m.Tier
	return reply, nil
}
