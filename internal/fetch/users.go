// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/melexis/jira-juggler/pkg/types"
)

// accountIDMinLen separates Cloud account IDs from legacy usernames in
// changelog entries. Cloud IDs look like "5b10ac8d82e05b22cc7d4ef5".
const accountIDMinLen = 24

// Resolver maps JIRA users to TaskJuggler allocation names, looking up
// account IDs through the Source and caching results across runs.
type Resolver struct {
	// ctx is stored because the convertor resolves names deep inside a
	// pure pipeline; a Resolver is built once per run.
	ctx   context.Context
	src   Source
	cache *UserCache
	mem   map[string]string
	warn  io.Writer
}

// NewResolver builds a resolver. cache may be nil to skip the persistent
// layer; warn may be nil to discard warnings.
func NewResolver(ctx context.Context, src Source, cache *UserCache, warn io.Writer) *Resolver {
	if warn == nil {
		warn = io.Discard
	}
	return &Resolver{
		ctx:   ctx,
		src:   src,
		cache: cache,
		mem:   make(map[string]string),
		warn:  warn,
	}
}

// Resolve returns the allocation name for a user record.
func (r *Resolver) Resolve(user types.User) string {
	return r.allocationName(user)
}

// ResolveID resolves a raw changelog value. Values long enough to be a
// Cloud account ID are looked up through the user API; legacy usernames
// are returned as-is.
func (r *Resolver) ResolveID(id string) string {
	if len(id) < accountIDMinLen {
		return id
	}
	if name, ok := r.mem[id]; ok {
		return name
	}
	if r.cache != nil {
		if name, err := r.cache.Get(id); err == nil && name != "" {
			r.mem[id] = name
			return name
		}
	}

	user, err := r.src.User(r.ctx, id)
	if err != nil {
		fmt.Fprintf(r.warn, "warning: could not resolve user %s: %v\n", id, err)
		r.mem[id] = id
		return id
	}
	name := r.allocationName(user)
	r.mem[id] = name
	if r.cache != nil {
		if err := r.cache.Put(id, name); err != nil {
			fmt.Fprintf(r.warn, "warning: could not cache user %s: %v\n", id, err)
		}
	}
	return name
}

// allocationName derives a TaskJuggler resource ID from a user record.
// The email local part comes first since it is stable and readable; the
// display name needs quoting and gets a warning because it rarely matches
// a declared resource.
func (r *Resolver) allocationName(user types.User) string {
	if user.EmailAddress != "" {
		if at := strings.IndexByte(user.EmailAddress, '@'); at > 0 {
			return user.EmailAddress[:at]
		}
		return user.EmailAddress
	}
	if user.Name != "" {
		return user.Name
	}
	if user.DisplayName != "" {
		fmt.Fprintf(r.warn, "warning: using display name %q as allocation; declare a matching resource in your project\n",
			user.DisplayName)
		return fmt.Sprintf("%q", user.DisplayName)
	}
	if user.AccountID != "" {
		return user.AccountID
	}
	return ""
}
