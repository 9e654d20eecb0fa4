package store

import (
	"context"

	"brotech_admin/internal/session"
)

type Action string

const (
	ActionRead   Action = "read"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Access decides who may perform an action.
type Access int

const (
	Nobody Access = iota
	Anyone
	Operator
)

func (a Access) allows(ctx context.Context) bool {
	switch a {
	case Anyone:
		return true
	case Operator:
		return session.Authenticated(ctx)
	default:
		return false
	}
}

// Rules is the access policy of one collection.
type Rules struct {
	Read, Create, Update, Delete Access
	Guidance                     string
}

func (r Rules) check(ctx context.Context, collection string, action Action) error {
	var access Access
	switch action {
	case ActionRead:
		access = r.Read
	case ActionCreate:
		access = r.Create
	case ActionUpdate:
		access = r.Update
	case ActionDelete:
		access = r.Delete
	}
	if access.allows(ctx) {
		return nil
	}
	return &PermissionError{Collection: collection, Action: action, Guidance: r.Guidance}
}

var (
	contactRules = Rules{
		Read:   Operator,
		Create: Anyone,
		Update: Nobody,
		Delete: Operator,
		Guidance: "Contact messages are private: anyone may submit one, but only a signed-in operator can read or " +
			"delete them, and messages can never be edited. Sign in with an operator account (or ask an " +
			"administrator to create one) and try again.",
	}

	pricingPlanRules = Rules{
		Read:   Anyone,
		Create: Operator,
		Update: Operator,
		Delete: Operator,
		Guidance: "Pricing plans are public to read, but only a signed-in operator can create, update or delete them. " +
			"Sign in again and retry.",
	}

	blogPostRules = Rules{
		Read:   Anyone, // anonim okuma yayınlanmış yazılarla sınırlı
		Create: Operator,
		Update: Operator,
		Delete: Operator,
		Guidance: "Published blog posts are public, but drafts and all changes (including feature image uploads) " +
			"require a signed-in operator. Sign in again and retry.",
	}

	settingsRules = Rules{
		Read:   Anyone,
		Create: Operator,
		Update: Operator,
		Delete: Nobody,
		Guidance: "Site settings are public to read, but only a signed-in operator can save them. Sign in again and retry.",
	}
)
