package kv

import "testing"

func TestMemStoreGetUpdate(t *testing.T) {
	s := NewMemStore()

	if _, ok, err := s.Get("a"); err != nil || ok {
		t.Fatalf("Get(missing) = _, %v, %v; want _, false, nil", ok, err)
	}

	if err := s.Update([]WriteOp{Put("a", []byte("1"))}); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	v, ok, err := s.Get("a")
	if err != nil || !ok || string(v) != "1" {
		t.Fatalf("Get(a) = %q, %v, %v; want 1, true, nil", v, ok, err)
	}

	if err := s.Update([]WriteOp{Del("a")}); err != nil {
		t.Fatalf("Update(del) error = %v", err)
	}
	if _, ok, _ := s.Get("a"); ok {
		t.Fatal("Get(a) = true after deleting a")
	}
}

func TestRollbackOfUndoesABatch(t *testing.T) {
	s := NewMemStore()
	if err := s.Update([]WriteOp{Put("a", []byte("1")), Put("b", []byte("2"))}); err != nil {
		t.Fatalf("seed Update() error = %v", err)
	}

	batch := []WriteOp{Put("a", []byte("9")), Del("b"), Put("c", []byte("3"))}
	rollback, err := s.RollbackOf(batch)
	if err != nil {
		t.Fatalf("RollbackOf() error = %v", err)
	}
	if err := s.Update(batch); err != nil {
		t.Fatalf("Update(batch) error = %v", err)
	}
	if err := s.Update(rollback); err != nil {
		t.Fatalf("Update(rollback) error = %v", err)
	}

	a, ok, _ := s.Get("a")
	if !ok || string(a) != "1" {
		t.Fatalf("a after rollback = %q, %v; want 1, true", a, ok)
	}
	if _, ok, _ := s.Get("b"); !ok {
		t.Fatal("b should exist again after rollback")
	}
	if _, ok, _ := s.Get("c"); ok {
		t.Fatal("c should not exist after rollback: it never existed before the batch")
	}
}

func TestMirrorShadowsBacking(t *testing.T) {
	backing := NewMemStore()
	if err := backing.Update([]WriteOp{Put("a", []byte("1"))}); err != nil {
		t.Fatalf("seed Update() error = %v", err)
	}

	mirror := NewMirror(backing)
	if err := mirror.Update([]WriteOp{Put("a", []byte("2")), Put("b", []byte("3"))}); err != nil {
		t.Fatalf("mirror Update() error = %v", err)
	}

	v, ok, _ := mirror.Get("a")
	if !ok || string(v) != "2" {
		t.Fatalf("mirror.Get(a) = %q, %v; want 2, true", v, ok)
	}

	bv, ok, _ := backing.Get("a")
	if !ok || string(bv) != "1" {
		t.Fatalf("backing.Get(a) = %q, %v; mirror writes leaked into backing store", bv, ok)
	}
	if _, ok, _ := backing.Get("b"); ok {
		t.Fatal("backing.Get(b) = true; mirror writes leaked into backing store")
	}
}

func TestMirrorToOpsIsSortedAndDeduped(t *testing.T) {
	mirror := NewMirror(NewMemStore())
	if err := mirror.Update([]WriteOp{Put("b", []byte("1")), Put("a", []byte("1")), Put("a", []byte("2"))}); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	ops := mirror.ToOps()
	if len(ops) != 2 {
		t.Fatalf("len(ToOps()) = %d; want 2", len(ops))
	}
	if ops[0].Key != "a" || ops[1].Key != "b" {
		t.Fatalf("ToOps() = %v; want sorted [a b]", ops)
	}
	if string(ops[0].Value) != "2" {
		t.Fatalf("ToOps()[0].Value = %q; want last write to win, 2", ops[0].Value)
	}
}

func TestEncodeDecodeOpsRoundTrip(t *testing.T) {
	ops := []WriteOp{Put("a", []byte("1")), Del("b")}
	raw := EncodeOps(ops)
	got, err := DecodeOps(raw)
	if err != nil {
		t.Fatalf("DecodeOps() error = %v", err)
	}
	if len(got) != 2 || got[0].Key != "a" || got[0].Remove || string(got[0].Value) != "1" {
		t.Fatalf("DecodeOps()[0] = %+v", got[0])
	}
	if got[1].Key != "b" || !got[1].Remove {
		t.Fatalf("DecodeOps()[1] = %+v", got[1])
	}
}
