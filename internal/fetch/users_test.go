// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/melexis/jira-juggler/pkg/types"
)

// fakeSource serves canned users and counts API lookups.
type fakeSource struct {
	users   map[string]types.User
	lookups int
}

func (f *fakeSource) SearchPage(ctx context.Context, jql string, startAt, maxResults int) ([]types.Issue, error) {
	return nil, nil
}

func (f *fakeSource) LinkTypes(ctx context.Context) ([]types.LinkType, error) {
	return nil, nil
}

func (f *fakeSource) User(ctx context.Context, accountID string) (types.User, error) {
	f.lookups++
	user, ok := f.users[accountID]
	if !ok {
		return types.User{}, fmt.Errorf("user %s not found", accountID)
	}
	return user, nil
}

const testAccountID = "5b10ac8d82e05b22cc7d4ef5"

func TestResolveIDLooksUpAccountIDs(t *testing.T) {
	src := &fakeSource{users: map[string]types.User{
		testAccountID: {AccountID: testAccountID, EmailAddress: "alice@example.com"},
	}}
	r := NewResolver(context.Background(), src, nil, nil)

	if got := r.ResolveID(testAccountID); got != "alice" {
		t.Errorf("ResolveID = %q, want alice", got)
	}
	if got := r.ResolveID(testAccountID); got != "alice" {
		t.Errorf("second ResolveID = %q, want alice", got)
	}
	if src.lookups != 1 {
		t.Errorf("lookups = %d, want 1 (memoized)", src.lookups)
	}
}

func TestResolveIDPassesThroughUsernames(t *testing.T) {
	src := &fakeSource{}
	r := NewResolver(context.Background(), src, nil, nil)

	if got := r.ResolveID("jdoe"); got != "jdoe" {
		t.Errorf("ResolveID = %q, want jdoe", got)
	}
	if src.lookups != 0 {
		t.Errorf("lookups = %d, short usernames must not hit the API", src.lookups)
	}
}

func TestResolveIDLookupFailureWarnsAndFallsBack(t *testing.T) {
	var warnings bytes.Buffer
	src := &fakeSource{}
	r := NewResolver(context.Background(), src, nil, &warnings)

	if got := r.ResolveID(testAccountID); got != testAccountID {
		t.Errorf("ResolveID = %q, want the raw ID back", got)
	}
	if !strings.Contains(warnings.String(), "could not resolve user") {
		t.Errorf("missing warning, got %q", warnings.String())
	}
}

func TestResolveIDUsesPersistentCache(t *testing.T) {
	path := filepath.Join(t.TempDir(), "users.db")
	cache, err := OpenUserCache(path)
	if err != nil {
		t.Fatal(err)
	}
	defer cache.Close()
	if err := cache.Put(testAccountID, "alice"); err != nil {
		t.Fatal(err)
	}

	src := &fakeSource{}
	r := NewResolver(context.Background(), src, cache, nil)

	if got := r.ResolveID(testAccountID); got != "alice" {
		t.Errorf("ResolveID = %q, want the cached name", got)
	}
	if src.lookups != 0 {
		t.Errorf("lookups = %d, cached IDs must not hit the API", src.lookups)
	}
}

func TestAllocationName(t *testing.T) {
	tests := []struct {
		name string
		user types.User
		want string
	}{
		{
			name: "email local part",
			user: types.User{EmailAddress: "john.doe@example.com", DisplayName: "John Doe"},
			want: "john.doe",
		},
		{
			name: "server username",
			user: types.User{Name: "jdoe", DisplayName: "John Doe"},
			want: "jdoe",
		},
		{
			name: "display name gets quoted",
			user: types.User{DisplayName: "John Doe"},
			want: `"John Doe"`,
		},
		{
			name: "account id as last resort",
			user: types.User{AccountID: testAccountID},
			want: testAccountID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewResolver(context.Background(), &fakeSource{}, nil, nil)
			if got := r.Resolve(tt.user); got != tt.want {
				t.Errorf("Resolve = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAllocationNameDisplayNameWarns(t *testing.T) {
	var warnings bytes.Buffer
	r := NewResolver(context.Background(), &fakeSource{}, nil, &warnings)

	r.Resolve(types.User{DisplayName: "John Doe"})

	if !strings.Contains(warnings.String(), "declare a matching resource") {
		t.Errorf("missing warning, got %q", warnings.String())
	}
}
