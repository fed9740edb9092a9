package backend

import (
	"slices"
	"testing"
)

// fakeBackend is a minimal Backend for registry tests.
type fakeBackend struct {
	Backend
	name string
}

func (f *fakeBackend) Name() string { return f.name }

func register(t *testing.T, name string) {
	t.Helper()
	Register(name, func() Backend { return &fakeBackend{name: name} })
	t.Cleanup(func() { Unregister(name) })
}

func TestRegisterAndGet(t *testing.T) {
	register(t, "test-fake")

	if !IsRegistered("test-fake") {
		t.Fatal("IsRegistered() = false after Register")
	}
	b := Get("test-fake")
	if b == nil {
		t.Fatal("Get() = nil for registered backend")
	}
	if got := b.Name(); got != "test-fake" {
		t.Errorf("Name() = %q, want %q", got, "test-fake")
	}
}

func TestGetUnknown(t *testing.T) {
	if b := Get("no-such-backend"); b != nil {
		t.Errorf("Get(unknown) = %v, want nil", b)
	}
	if IsRegistered("no-such-backend") {
		t.Error("IsRegistered(unknown) = true")
	}
}

func TestUnregister(t *testing.T) {
	Register("test-gone", func() Backend { return &fakeBackend{name: "test-gone"} })
	Unregister("test-gone")

	if IsRegistered("test-gone") {
		t.Error("IsRegistered() = true after Unregister")
	}
	if Get("test-gone") != nil {
		t.Error("Get() != nil after Unregister")
	}
}

func TestAvailable(t *testing.T) {
	register(t, "test-a")
	register(t, "test-b")

	names := Available()
	for _, want := range []string{"test-a", "test-b"} {
		if !slices.Contains(names, want) {
			t.Errorf("Available() = %v, missing %q", names, want)
		}
	}
}

func TestDefaultPriority(t *testing.T) {
	// With both priority names registered, wgpu wins.
	register(t, BackendWGPU)
	register(t, BackendHeadless)

	b := Default()
	if b == nil {
		t.Fatal("Default() = nil")
	}
	if got := b.Name(); got != BackendWGPU {
		t.Errorf("Default().Name() = %q, want %q", got, BackendWGPU)
	}

	// Without wgpu, headless is next.
	Unregister(BackendWGPU)
	b = Default()
	if b == nil {
		t.Fatal("Default() = nil with headless registered")
	}
	if got := b.Name(); got != BackendHeadless {
		t.Errorf("Default().Name() = %q, want %q", got, BackendHeadless)
	}
}

func TestDefaultFallsBackToAnyRegistered(t *testing.T) {
	// A backend outside the priority list is still returned when it is
	// the only one registered.
	register(t, "test-odd")

	b := Default()
	if b == nil {
		t.Fatal("Default() = nil with one backend registered")
	}
	if got := b.Name(); got != "test-odd" {
		t.Errorf("Default().Name() = %q, want %q", got, "test-odd")
	}
}

func TestDefaultFallbackIsDeterministic(t *testing.T) {
	// With no priority name registered, the lexicographically first
	// backend wins, regardless of registration order.
	register(t, "test-m")
	register(t, "test-a")

	for i := 0; i < 5; i++ {
		b := Default()
		if b == nil {
			t.Fatal("Default() = nil")
		}
		if got := b.Name(); got != "test-a" {
			t.Fatalf("Default().Name() = %q, want %q", got, "test-a")
		}
	}
}

func TestMustDefaultPanics(t *testing.T) {
	if len(Available()) > 0 {
		t.Skip("other backends registered in this process")
	}
	defer func() {
		if r := recover(); r == nil {
			t.Error("MustDefault() did not panic with empty registry")
		}
	}()
	MustDefault()
}
