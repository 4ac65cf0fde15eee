package runtime

import "testing"

type stubRuntime struct {
	name string
}

func (s *stubRuntime) Name() string {
	return s.name
}

func (s *stubRuntime) Setup(id string, config map[string]interface{}) (Handle, error) {
	return nil, nil
}

func TestRegistry(t *testing.T) {
	name := "stub-registry"

	if _, ok := Lookup(name); ok {
		t.Fatalf("%s registered before Register", name)
	}

	r := &stubRuntime{name: name}
	Register(r)
	t.Cleanup(func() { Deregister(name) })

	got, ok := Lookup(name)
	if !ok {
		t.Fatalf("%s not found after Register", name)
	}
	if got != r {
		t.Error("Lookup returned a different runtime")
	}

	Deregister(name)

	if _, ok := Lookup(name); ok {
		t.Error("runtime still registered after Deregister")
	}
}
