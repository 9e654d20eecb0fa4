// Package messages implements the contact message list: filter, sort,
// paginate and CSV export over a fetched snapshot.
package messages

import (
	"slices"
	"strings"

	"brotech_admin/internal/model"
)

const PageSize = 10

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// ParseSortOrder defaults to newest first.
func ParseSortOrder(s string) SortOrder {
	if strings.EqualFold(strings.TrimSpace(s), string(SortAsc)) {
		return SortAsc
	}
	return SortDesc
}

// Filter keeps messages whose name, email, subject or body contains query,
// ignoring case. An empty query keeps everything.
func Filter(msgs []model.ContactMessage, query string) []model.ContactMessage {
	term := strings.ToLower(query)
	if term == "" {
		return msgs
	}

	out := make([]model.ContactMessage, 0, len(msgs))
	for _, m := range msgs {
		if matches(m, term) {
			out = append(out, m)
		}
	}
	return out
}

func matches(m model.ContactMessage, term string) bool {
	for _, f := range []string{m.Name, m.Email, m.Subject, m.Message} {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

// Sort returns a copy ordered by createdAt. Ties keep their input order.
func Sort(msgs []model.ContactMessage, order SortOrder) []model.ContactMessage {
	out := slices.Clone(msgs)
	slices.SortStableFunc(out, func(a, b model.ContactMessage) int {
		c := a.CreatedAt.Compare(b.CreatedAt)
		if order == SortDesc {
			return -c
		}
		return c
	})
	return out
}

// Page is one page of the filtered and sorted list.
type Page struct {
	Items      []model.ContactMessage `json:"items"`
	Page       int                    `json:"page"`
	TotalPages int                    `json:"totalPages"`
	Total      int                    `json:"total"`
	PageSize   int                    `json:"pageSize"`
}

// TotalPages is never less than 1, so an empty list is one empty page.
func TotalPages(count int) int {
	return max(1, (count+PageSize-1)/PageSize)
}

// ClampPage pulls page into [1, totalPages].
func ClampPage(page, totalPages int) int {
	return min(max(page, 1), max(totalPages, 1))
}

func Paginate(msgs []model.ContactMessage, page int) Page {
	total := TotalPages(len(msgs))
	page = ClampPage(page, total)

	start := (page - 1) * PageSize
	end := min(start+PageSize, len(msgs))
	items := []model.ContactMessage{}
	if start < end {
		items = msgs[start:end]
	}
	return Page{
		Items:      items,
		Page:       page,
		TotalPages: total,
		Total:      len(msgs),
		PageSize:   PageSize,
	}
}

// Run applies filter, sort and paginate in order.
func Run(msgs []model.ContactMessage, query string, order SortOrder, page int) Page {
	return Paginate(Sort(Filter(msgs, query), order), page)
}
