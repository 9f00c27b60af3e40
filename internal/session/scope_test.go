package session

import (
	"context"
	"testing"
)

func TestScopes_BeginCancelsPrevious(t *testing.T) {
	scopes := NewScopes(context.Background())

	first := scopes.Begin()
	if err := first.Context().Err(); err != nil {
		t.Fatalf("fresh scope context err = %v, want nil", err)
	}

	second := scopes.Begin()
	if first.Context().Err() == nil {
		t.Fatalf("previous scope context should be cancelled by Begin")
	}
	if err := second.Context().Err(); err != nil {
		t.Fatalf("new scope context err = %v, want nil", err)
	}
}

func TestScopes_ParentCancelPropagates(t *testing.T) {
	parent, cancel := context.WithCancel(context.Background())
	scopes := NewScopes(parent)

	sc := scopes.Begin()
	cancel()
	if sc.Context().Err() == nil {
		t.Fatalf("scope context should be cancelled with parent")
	}
}

func TestScope_CommitRefusedAfterSupersede(t *testing.T) {
	scopes := NewScopes(context.Background())

	first := scopes.Begin()
	if !first.Current() {
		t.Fatalf("Current = false for fresh scope")
	}

	ran := false
	if !first.Commit(func() { ran = true }) {
		t.Fatalf("Commit refused for current scope")
	}
	if !ran {
		t.Fatalf("Commit did not run fn for current scope")
	}

	scopes.Begin()
	if first.Current() {
		t.Fatalf("Current = true for superseded scope")
	}
	ran = false
	if first.Commit(func() { ran = true }) {
		t.Fatalf("Commit accepted for superseded scope")
	}
	if ran {
		t.Fatalf("Commit ran fn for superseded scope")
	}
}
