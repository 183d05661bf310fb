package identity

import "testing"

func TestFingerprintDeterministic(t *testing.T) {
	a := Fingerprint("AGreenFruit", "PEPE", "123456789")
	b := Fingerprint("AGreenFruit", "PEPE", "123456789")

	if a != b {
		t.Fatalf("same inputs produced different fingerprints: %q vs %q", a, b)
	}
	if len(a) != 16 {
		t.Fatalf("expected 16-char fingerprint, got %d chars: %q", len(a), a)
	}
}

func TestFingerprintDistinguishesInputs(t *testing.T) {
	base := Fingerprint("Foo", "123", "owner-1")

	cases := map[string]string{
		"different name":  Fingerprint("Bar", "123", "owner-1"),
		"different tag":   Fingerprint("Foo", "456", "owner-1"),
		"different owner": Fingerprint("Foo", "123", "owner-2"),
	}

	for label, got := range cases {
		if got == base {
			t.Errorf("%s collided with base fingerprint %q", label, base)
		}
	}
}

func TestFingerprintFieldBoundaries(t *testing.T) {
	// "ab"+"c" and "a"+"bc" must not hash the same.
	if Fingerprint("ab", "c") == Fingerprint("a", "bc") {
		t.Fatal("field boundaries are not part of the fingerprint")
	}
}

func TestPlayerFingerprintMatchesFields(t *testing.T) {
	if PlayerFingerprint("Foo", "123", "owner") != Fingerprint("Foo", "123", "owner") {
		t.Fatal("PlayerFingerprint diverged from Fingerprint over the same fields")
	}
}
