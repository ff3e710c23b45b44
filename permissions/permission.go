// Package permissions holds the pure access-policy predicates evaluated over
// (actor, resource) pairs. Predicates have no side effects; callers translate
// a deny into failure.Forbidden.
package permissions

import (
	"context"

	"quickgig/shared/constant"
)

// Actor is the authenticated identity extracted from the request token.
type Actor struct {
	ID       string
	Email    string
	IsClient bool
	IsTasker bool
}

// ActorFromContext rebuilds the actor from the context values the auth
// middleware stored. The second return is false for unauthenticated contexts.
func ActorFromContext(ctx context.Context) (Actor, bool) {
	id, ok := ctx.Value(constant.ContextKeyUserID).(string)
	if !ok || id == constant.Empty {
		return Actor{}, false
	}

	email, _ := ctx.Value(constant.ContextKeyUserEmail).(string)
	isClient, _ := ctx.Value(constant.ContextKeyIsClient).(bool)
	isTasker, _ := ctx.Value(constant.ContextKeyIsTasker).(bool)

	return Actor{
		ID:       id,
		Email:    email,
		IsClient: isClient,
		IsTasker: isTasker,
	}, true
}

// CanReadSlot allows any authenticated actor to read availability.
func CanReadSlot(actor Actor) bool {
	return actor.ID != constant.Empty
}

// CanCreateSlots restricts slot creation (single and bulk) to taskers.
func CanCreateSlots(actor Actor) bool {
	return actor.IsTasker
}

// CanWriteSlot allows mutation and deletion of a slot only by its owner.
func CanWriteSlot(actor Actor, slotTaskerID string) bool {
	return actor.IsTasker && actor.ID == slotTaskerID
}

// CanCreateBooking restricts booking creation to clients.
func CanCreateBooking(actor Actor) bool {
	return actor.IsClient
}

// CanAccessBooking allows only the referenced client or tasker to read or
// mutate a booking.
func CanAccessBooking(actor Actor, clientID, taskerID string) bool {
	return actor.ID == clientID || actor.ID == taskerID
}
