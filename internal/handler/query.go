package handler

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/oapi-codegen/runtime"
)

// queryBinder binds query parameters with oapi-codegen's form-style rules
// and collects every problem so a single 400 can list them all.
type queryBinder struct {
	q    url.Values
	errs []string
}

func newQueryBinder(q url.Values) *queryBinder {
	return &queryBinder{q: q}
}

// required binds name into dest, rejecting a missing or blank value.
func (b *queryBinder) required(name string, dest any) {
	if strings.TrimSpace(b.q.Get(name)) == "" {
		b.errs = append(b.errs, name+" is required")
		return
	}
	b.bind(name, true, dest)
}

// optional binds name into dest when present. dest keeps its value otherwise.
func (b *queryBinder) optional(name string, dest any) {
	if strings.TrimSpace(b.q.Get(name)) == "" {
		return
	}
	b.bind(name, true, dest)
}

// list binds a comma-separated value ("a,b,c") into a slice.
func (b *queryBinder) list(name string, dest any) {
	if strings.TrimSpace(b.q.Get(name)) == "" {
		return
	}
	b.bind(name, false, dest)
}

func (b *queryBinder) bind(name string, explode bool, dest any) {
	if err := runtime.BindQueryParameter("form", explode, false, name, b.q, dest); err != nil {
		b.errs = append(b.errs, fmt.Sprintf("invalid %s", name))
	}
}

// err reports the collected problems joined with "; ", or "" if none.
func (b *queryBinder) err() string {
	return strings.Join(b.errs, "; ")
}
