package messages

import (
	"context"

	"brotech_admin/internal/model"
)

// Fetcher loads a fresh snapshot of all messages.
type Fetcher func(ctx context.Context) ([]model.ContactMessage, error)

// View is one request's look at the messages screen: a snapshot plus the
// search, sort and page applied to it. A View is not shared between requests.
type View struct {
	all   []model.ContactMessage
	query string
	order SortOrder
	page  int
}

func NewView() *View {
	return &View{order: SortDesc, page: 1}
}

// Load fetches the snapshot. A context cancelled while fetching leaves the
// view empty, so a late result is never applied.
func (v *View) Load(ctx context.Context, fetch Fetcher) error {
	msgs, err := fetch(ctx)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	v.all = msgs
	v.page = ClampPage(v.page, TotalPages(len(Filter(v.all, v.query))))
	return nil
}

// SetQuery changes the search text and goes back to the first page.
func (v *View) SetQuery(q string) {
	v.query = q
	v.page = 1
}

func (v *View) SetOrder(o SortOrder) {
	v.order = o
}

// GoTo moves to page, clamped to the available pages.
func (v *View) GoTo(page int) {
	v.page = ClampPage(page, TotalPages(len(Filter(v.all, v.query))))
}

// Current returns the visible page.
func (v *View) Current() Page {
	return Run(v.all, v.query, v.order, v.page)
}

// Visible returns the filtered and sorted messages across all pages.
func (v *View) Visible() []model.ContactMessage {
	return Sort(Filter(v.all, v.query), v.order)
}
