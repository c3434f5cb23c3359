package cli

import (
	"context"
	"errors"
	"testing"

	"memento/internal/client/api"
)

func TestReportError_ExpiredSessionTearsDown(t *testing.T) {
	out, restore := stubPrintln(t)
	defer restore()

	sess := &fakeSession{authenticated: true}
	jr := &fakeJournal{}
	a := newTestApp(sess, jr)

	a.reportError(context.Background(), &api.APIError{Status: 401, Detail: "Could not validate credentials"})

	if sess.logoutCalls != 1 {
		t.Fatalf("logout calls = %d", sess.logoutCalls)
	}
	if jr.clearCalls != 1 {
		t.Fatalf("clear calls = %d", jr.clearCalls)
	}
	if (*out)[0] != "Your session has expired, please log in again." {
		t.Fatalf("unexpected output: %v", *out)
	}
}

func TestReportError_AlreadyLoggedOutStillInformsUser(t *testing.T) {
	out, restore := stubPrintln(t)
	defer restore()

	sess := &fakeSession{}
	a := newTestApp(sess, &fakeJournal{})

	a.reportError(context.Background(), api.ErrUnauthorized)

	if sess.logoutCalls != 0 {
		t.Fatalf("logout must not run twice")
	}
	if (*out)[0] != "Your session has expired, please log in again." {
		t.Fatalf("unexpected output: %v", *out)
	}
}

func TestReportError_Unavailable(t *testing.T) {
	out, restore := stubPrintln(t)
	defer restore()

	a := newTestApp(&fakeSession{authenticated: true}, &fakeJournal{})
	a.reportError(context.Background(), api.ErrUnavailable)

	if (*out)[0] != "Server unavailable, try again later." {
		t.Fatalf("unexpected output: %v", *out)
	}
}

func TestReportError_GenericDetailSurfaces(t *testing.T) {
	out, restore := stubPrintln(t)
	defer restore()

	a := newTestApp(&fakeSession{authenticated: true}, &fakeJournal{})
	a.reportError(context.Background(), errors.New("Entry not found"))

	if (*out)[0] != "Error: Entry not found" {
		t.Fatalf("unexpected output: %v", *out)
	}
}

func TestOnAuthenticated_LoadsJournal(t *testing.T) {
	_, restore := stubPrintln(t)
	defer restore()

	jr := &fakeJournal{}
	a := newTestApp(&fakeSession{authenticated: true}, jr)
	a.onAuthenticated(context.Background())

	if jr.loadCalls != 1 {
		t.Fatalf("LoadAll calls = %d", jr.loadCalls)
	}
}
