package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/VishnuSankarIP/todo-client/internal/api"
	"github.com/VishnuSankarIP/todo-client/internal/model"
	"github.com/VishnuSankarIP/todo-client/internal/store"
	"github.com/VishnuSankarIP/todo-client/internal/testutil"
)

func newLoaded(t *testing.T, svc *testutil.FakeService) *store.TodoListStore {
	t.Helper()
	s := store.New(svc)
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	return s
}

func TestLoadReplacesItemsWholesale(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.Seed("A", "", model.StatusPending)
	svc.Seed("B", "b things", model.StatusCompleted)

	s := newLoaded(t, svc)

	items := s.Items()
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].Title != "A" || items[1].Title != "B" {
		t.Errorf("server order not preserved: %+v", items)
	}
}

func TestLoadFailureKeepsPreviousItems(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.Seed("A", "", model.StatusPending)

	s := newLoaded(t, svc)

	svc.ListErr = &api.Error{Kind: api.KindNetwork, Op: "fetch todos", Err: errors.New("boom")}
	if err := s.Load(context.Background()); err == nil {
		t.Fatal("expected load error")
	}
	if got := s.Len(); got != 1 {
		t.Errorf("items cleared on failed load: len=%d", got)
	}
}

func TestCreateAppendsServerRecord(t *testing.T) {
	svc := testutil.NewFakeService()
	s := newLoaded(t, svc)

	for i, title := range []string{"first", "second", "third"} {
		created, err := s.Create(context.Background(), title, "", model.StatusPending)
		if err != nil {
			t.Fatalf("create %q: %v", title, err)
		}
		if created.ID == "" {
			t.Fatal("created record has no server id")
		}
		items := s.Items()
		if len(items) != i+1 {
			t.Fatalf("expected %d items after create, got %d", i+1, len(items))
		}
		if last := items[len(items)-1]; last.ID != created.ID {
			t.Errorf("appended id %q does not match server id %q", last.ID, created.ID)
		}
	}
}

func TestCreateRejectedLeavesItemsUnchanged(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.Seed("A", "", model.StatusPending)
	s := newLoaded(t, svc)

	before := s.Items()

	// Empty title slipped past the form; the server rejects it.
	_, err := s.Create(context.Background(), "", "", model.StatusPending)
	if err == nil {
		t.Fatal("expected rejection for empty title")
	}
	if got := api.Message(err); got != "title required" {
		t.Errorf("expected server message verbatim, got %q", got)
	}

	after := s.Items()
	if len(after) != len(before) {
		t.Fatalf("items changed on failed create: %d -> %d", len(before), len(after))
	}
}

func TestUpdateReplacesInPlace(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.Seed("A", "", model.StatusPending)
	id := svc.Seed("B", "old", model.StatusPending)
	svc.Seed("C", "", model.StatusPending)
	s := newLoaded(t, svc)

	if _, err := s.Update(context.Background(), id, "B2", "new", model.StatusCompleted); err != nil {
		t.Fatalf("update: %v", err)
	}

	items := s.Items()
	if len(items) != 3 {
		t.Fatalf("update changed length: %d", len(items))
	}
	if items[0].Title != "A" || items[2].Title != "C" {
		t.Errorf("update disturbed other records: %+v", items)
	}
	got := items[1]
	if got.ID != id || got.Title != "B2" || got.Description != "new" || got.Status != model.StatusCompleted {
		t.Errorf("record not replaced in place: %+v", got)
	}
	if len(svc.UpdateCalls) != 1 {
		t.Fatalf("expected one update call, got %d", len(svc.UpdateCalls))
	}
	want := testutil.UpdateCall{ID: id, Title: "B2", Description: "new", Status: model.StatusCompleted}
	if svc.UpdateCalls[0] != want {
		t.Errorf("full field set not sent: %+v", svc.UpdateCalls[0])
	}
}

func TestUpdateFailureLeavesItemsUnchanged(t *testing.T) {
	svc := testutil.NewFakeService()
	id := svc.Seed("A", "keep", model.StatusPending)
	s := newLoaded(t, svc)

	svc.UpdateErr = &api.Error{Kind: api.KindNetwork, Op: "update todo", Err: errors.New("boom")}
	if _, err := s.Update(context.Background(), id, "changed", "changed", model.StatusCompleted); err == nil {
		t.Fatal("expected update error")
	}

	got, ok := s.Get(id)
	if !ok {
		t.Fatal("record vanished")
	}
	if got.Title != "A" || got.Description != "keep" || got.Status != model.StatusPending {
		t.Errorf("partial write on failed update: %+v", got)
	}
}

func TestDeleteRemovesExactlyOne(t *testing.T) {
	svc := testutil.NewFakeService()
	a := svc.Seed("A", "", model.StatusPending)
	b := svc.Seed("B", "", model.StatusPending)
	c := svc.Seed("C", "", model.StatusPending)
	s := newLoaded(t, svc)

	if err := s.Delete(context.Background(), b); err != nil {
		t.Fatalf("delete: %v", err)
	}

	items := s.Items()
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].ID != a || items[1].ID != c {
		t.Errorf("relative order disturbed: %+v", items)
	}
}

func TestDeleteLastItemEmptiesList(t *testing.T) {
	svc := testutil.NewFakeService()
	id := svc.Seed("A", "", model.StatusPending)
	s := newLoaded(t, svc)

	if err := s.Delete(context.Background(), id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if got := s.Len(); got != 0 {
		t.Errorf("expected empty list, got %d items", got)
	}
}

func TestDoubleDeleteSurfacesNotFound(t *testing.T) {
	svc := testutil.NewFakeService()
	id := svc.Seed("A", "", model.StatusPending)
	s := newLoaded(t, svc)

	if err := s.Delete(context.Background(), id); err != nil {
		t.Fatalf("first delete: %v", err)
	}
	err := s.Delete(context.Background(), id)
	if err == nil {
		t.Fatal("expected not-found on second delete")
	}
	if !api.IsNotFound(err) {
		t.Errorf("expected not-found rejection, got %v", err)
	}
	if got := s.Len(); got != 0 {
		t.Errorf("failed delete mutated items: len=%d", got)
	}
	// Both attempts went to the server; the store never short-circuits.
	if calls := svc.DeleteCalls; len(calls) != 2 || calls[0] != id || calls[1] != id {
		t.Errorf("delete calls = %v", calls)
	}
}

func TestDeleteFailureLeavesItemsUnchanged(t *testing.T) {
	svc := testutil.NewFakeService()
	id := svc.Seed("A", "", model.StatusPending)
	s := newLoaded(t, svc)

	svc.DeleteErr = &api.Error{Kind: api.KindNetwork, Op: "delete todo", Err: errors.New("boom")}
	if err := s.Delete(context.Background(), id); err == nil {
		t.Fatal("expected delete error")
	}
	if _, ok := s.Get(id); !ok {
		t.Error("record removed despite failed delete")
	}
}
