package services

import (
	"context"

	"github.com/yukikurage/diary-api/internal/identity"
	"github.com/yukikurage/diary-api/internal/models"
)

// AccessGuard applies the write policy at the call boundary. The acting user is
// always taken from the request context, never from request input.
type AccessGuard struct {
	shared *SharedService
	relay  *RelayService
}

// NewAccessGuard creates a new AccessGuard.
func NewAccessGuard(shared *SharedService, relay *RelayService) *AccessGuard {
	return &AccessGuard{
		shared: shared,
		relay:  relay,
	}
}

// Actor returns the authenticated identity carried by ctx.
func (g *AccessGuard) Actor(ctx context.Context) (identity.Identity, error) {
	id, ok := identity.FromContext(ctx)
	if !ok {
		return identity.Identity{}, ErrUnauthenticated
	}
	return id, nil
}

// AuthorizeJournal requires the actor to be a member of journalID. A missing
// journal is reported the same way so existence is not leaked.
func (g *AccessGuard) AuthorizeJournal(ctx context.Context, journalID uint64) (identity.Identity, error) {
	actor, err := g.Actor(ctx)
	if err != nil {
		return identity.Identity{}, err
	}

	ok, err := g.shared.IsMember(ctx, journalID, actor.UserID)
	if err != nil {
		return identity.Identity{}, err
	}
	if !ok {
		return identity.Identity{}, ErrNotAMember
	}
	return actor, nil
}

// AuthorizeTurn requires the actor to hold the current turn of storyID. This is
// an early check; AddEntry re-checks inside its transaction.
func (g *AccessGuard) AuthorizeTurn(ctx context.Context, storyID uint64) (identity.Identity, error) {
	actor, err := g.Actor(ctx)
	if err != nil {
		return identity.Identity{}, err
	}

	next, err := g.relay.WhoIsNext(ctx, storyID)
	if err != nil {
		return identity.Identity{}, err
	}
	if next != actor.UserID {
		return identity.Identity{}, ErrNotYourTurn
	}
	return actor, nil
}

// AuthorizeStoryRead lets anyone read a public story and participants read a private one.
func (g *AccessGuard) AuthorizeStoryRead(ctx context.Context, storyID uint64) (*models.RelayStory, error) {
	actor, err := g.Actor(ctx)
	if err != nil {
		return nil, err
	}

	story, err := g.relay.findStory(ctx, storyID)
	if err != nil {
		return nil, err
	}
	if story.IsPublic {
		return story, nil
	}

	ok, err := g.relay.IsParticipant(ctx, storyID, actor.UserID)
	if err != nil {
		return nil, err
	}
	if !ok {
		// Private stories are invisible to outsiders.
		return nil, ErrStoryNotFound
	}
	return story, nil
}

// AddSharedEntry is the guarded shared-journal write.
func (g *AccessGuard) AddSharedEntry(ctx context.Context, journalID uint64, content string) (*models.SharedEntry, error) {
	actor, err := g.AuthorizeJournal(ctx, journalID)
	if err != nil {
		return nil, err
	}
	return g.shared.AddEntry(ctx, journalID, actor.UserID, content)
}

// AddRelayEntry is the guarded relay write.
func (g *AccessGuard) AddRelayEntry(ctx context.Context, storyID uint64, content string) (*models.RelayEntry, error) {
	actor, err := g.AuthorizeTurn(ctx, storyID)
	if err != nil {
		return nil, err
	}
	return g.relay.AddEntry(ctx, storyID, actor.UserID, content)
}
