package registry

import "testing"

func TestRegistry_SetGetGlobal(t *testing.T) {
	r := New()
	r.SetGlobal("k", 42)
	v, ok := r.GetGlobal("k")
	if !ok || v != 42 {
		t.Errorf("GetGlobal = %v, %v; want 42, true", v, ok)
	}
	if _, ok := r.GetGlobal("missing"); ok {
		t.Error("GetGlobal missing: want false")
	}
}

func TestRegistry_LockUnlock(t *testing.T) {
	r := New()
	if r.IsLocked("k") {
		t.Fatal("new key should not be locked")
	}
	r.Lock("k")
	if !r.IsLocked("k") {
		t.Error("Lock: want locked")
	}
	r.UnlockForTesting("k")
	if r.IsLocked("k") {
		t.Error("UnlockForTesting: want unlocked")
	}
}
