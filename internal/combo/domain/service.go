package domain

import "context"

// Item is one option of a select box.
type Item struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

type Service interface {
	// Users lists one entry per user carrying the user's role id and name,
	// scoped to the caller's organization unless Super Admin.
	Users(ctx context.Context, search string) ([]Item, error)
	Roles(ctx context.Context, search string) ([]Item, error)
	Organizations(ctx context.Context, search string) ([]Item, error)
	Quotations(ctx context.Context, search string) ([]Item, error)
	Countries(ctx context.Context, search string) ([]Item, error)
}
