package view

import (
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"go-case-tracker/internal/authz"
	"go-case-tracker/internal/domain"
	"go-case-tracker/internal/store"
)

type ClientFilter struct {
	Type   domain.ClientType
	Search string // case-insensitive over name and email, plain substring over phone
}

func (f ClientFilter) match(c domain.Client) bool {
	if f.Type != "" && c.Type != f.Type {
		return false
	}
	if f.Search != "" {
		term := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(c.Name), term) &&
			!strings.Contains(strings.ToLower(c.Email), term) &&
			!strings.Contains(c.Phone, f.Search) {
			return false
		}
	}
	return true
}

type ClientView struct {
	List             []domain.Client // by name
	ActiveCaseCounts map[string]int  // client id -> cases not closed
}

// Clients needs clients:view; there is no per-record scoping. Names are
// ordered by a collator for the principal's language so accents sort with
// their base letters.
func Clients(snap store.Snapshot, principal *domain.User, f ClientFilter) ClientView {
	v := ClientView{ActiveCaseCounts: map[string]int{}}
	if !authz.New(principal).CanViewClients() {
		return v
	}
	for _, c := range snap.Clients {
		if f.match(c) {
			v.List = append(v.List, c)
		}
	}
	col := collate.New(collatorTag(principal), collate.IgnoreCase)
	slices.SortStableFunc(v.List, func(a, b domain.Client) int {
		return col.CompareString(a.Name, b.Name)
	})

	for _, c := range v.List {
		v.ActiveCaseCounts[c.ID] = 0
	}
	for _, c := range snap.Cases {
		if _, ok := v.ActiveCaseCounts[c.ClientID]; ok && c.IsOpen() {
			v.ActiveCaseCounts[c.ClientID]++
		}
	}
	return v
}

func collatorTag(principal *domain.User) language.Tag {
	if principal != nil && principal.Preferences.Language == domain.LanguageSpanish {
		return language.Spanish
	}
	return language.English
}

// ActiveCaseCount is the unscoped number of open cases for a client.
func ActiveCaseCount(snap store.Snapshot, clientID string) int {
	n := 0
	for _, c := range snap.Cases {
		if c.ClientID == clientID && c.IsOpen() {
			n++
		}
	}
	return n
}
