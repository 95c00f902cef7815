package access

import (
	"github.com/lucasmv/flashdeck/internal/errors"
	"github.com/lucasmv/flashdeck/internal/models"
)

// Action is what the actor wants to do with a resource.
type Action int

const (
	ActionView Action = iota
	ActionModify
)

// Policy decides whether a user may act on a resource. Services consult the
// policy before touching records so the access rules stay out of the study
// logic entirely.
type Policy interface {
	AuthorizeDeck(user *models.User, deck *models.Deck, action Action) error
	AuthorizeSession(user *models.User, session *models.Session) error
}

// OwnerPolicy implements the ownership/visibility rules: owners can do
// anything with their decks, public decks are viewable (and studyable) by
// anyone, sessions are private to the user who started them.
type OwnerPolicy struct{}

// New returns the default ownership policy.
func New() Policy {
	return OwnerPolicy{}
}

func (OwnerPolicy) AuthorizeDeck(user *models.User, deck *models.Deck, action Action) error {
	if user != nil && deck.OwnerID == user.ID {
		return nil
	}
	if action == ActionView && deck.IsPublic {
		return nil
	}
	return errors.NewForbiddenError("you do not have permission to access this deck")
}

func (OwnerPolicy) AuthorizeSession(user *models.User, session *models.Session) error {
	if user != nil && session.UserID == user.ID {
		return nil
	}
	return errors.NewForbiddenError("you do not have permission to access this session")
}
