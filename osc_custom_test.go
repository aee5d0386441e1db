package headlessterm

import (
	"encoding/base64"
	"testing"
)

func TestOSC9PlainMessageNotifies(t *testing.T) {
	var got *NotificationPayload
	term := New(WithNotification(notifyFunc(func(p *NotificationPayload) string {
		got = p
		return ""
	})), WithSize(24, 80))

	term.WriteString("\x1b]9;hello there\x07")

	if got == nil {
		t.Fatal("expected a notification")
	}
	if string(got.Data) != "hello there" {
		t.Fatalf("unexpected notification body: %q", got.Data)
	}
}

func TestOSC777Notify(t *testing.T) {
	var got *NotificationPayload
	term := New(WithNotification(notifyFunc(func(p *NotificationPayload) string {
		got = p
		return ""
	})), WithSize(24, 80))

	term.WriteString("\x1b]777;notify;myapp;message body\x07")

	if got == nil {
		t.Fatal("expected a notification")
	}
	if got.AppName != "myapp" || string(got.Data) != "message body" {
		t.Fatalf("unexpected notification: %+v", got)
	}
}

func TestCustomOSC1337SetUserVar(t *testing.T) {
	term := New(WithSize(24, 80))
	encoded := base64.StdEncoding.EncodeToString([]byte("bar"))

	term.WriteString("\x1b]1337;SetUserVar=foo=" + encoded + "\x07")

	if got := term.GetUserVar("foo"); got != "bar" {
		t.Fatalf("expected 'bar', got %q", got)
	}
}

func TestCustomOSCSplitAcrossWrites(t *testing.T) {
	term := New(WithSize(24, 80))

	term.WriteString("\x1b]9;4;1;")
	term.WriteString("75\x07")

	state, pct := term.Progress()
	if state != ProgressNormal || pct != 75 {
		t.Fatalf("expected normal/75 after a sequence split across writes, got %v/%d", state, pct)
	}
}

func TestCustomOSCDoesNotLeakIntoDecoder(t *testing.T) {
	term := New(WithSize(24, 80))

	term.WriteString("\x1b]9;4;1;10\x07hello")

	if c := term.Cell(0, 0); c.Char != 'h' {
		t.Fatalf("expected plain text after the custom OSC to reach the grid, got %q", c.Char)
	}
}

type notifyFunc func(*NotificationPayload) string

func (f notifyFunc) Notify(p *NotificationPayload) string { return f(p) }
