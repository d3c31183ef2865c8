package fingerprint

import (
	"net/http"
	"testing"
)

func TestTransport_GoProfile(t *testing.T) {
	rt, err := Transport(ProfileGo)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tr, ok := rt.(*http.Transport)
	if !ok {
		t.Fatal("expected *http.Transport for go profile")
	}
	if tr.DialTLSContext != nil {
		t.Error("go profile should not install a custom TLS dialer")
	}
}

func TestTransport_BrowserProfiles(t *testing.T) {
	for _, p := range []Profile{ProfileChrome, ProfileFirefox, ProfileSafari, ProfileRandom} {
		rt, err := Transport(p)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", p, err)
		}
		tr, ok := rt.(*http.Transport)
		if !ok {
			t.Fatalf("%s: expected *http.Transport", p)
		}
		if tr.DialTLSContext == nil {
			t.Errorf("%s: expected a uTLS dialer to be installed", p)
		}
	}
}

func TestTransport_UnknownProfile(t *testing.T) {
	if _, err := Transport(Profile("netscape")); err == nil {
		t.Fatal("expected error for unknown profile")
	}
}
