package event

import (
	"errors"
	"testing"
)

func TestApply(t *testing.T) {
	cases := []struct {
		from       Status
		action     Action
		want       Status
		wantPublic bool
		wantErr    bool
	}{
		{StatusEditing, ActionSubmit, StatusSubmitted, false, false},
		{StatusSubmitted, ActionAccept, StatusAccepted, false, false},
		{StatusSubmitted, ActionReject, StatusRejected, false, false},
		{StatusAccepted, ActionMakePublic, StatusAccepted, true, false},

		{StatusEditing, ActionAccept, StatusEditing, false, true},
		{StatusEditing, ActionMakePublic, StatusEditing, false, true},
		{StatusSubmitted, ActionSubmit, StatusSubmitted, false, true},
		{StatusAccepted, ActionReject, StatusAccepted, false, true},
		{StatusRejected, ActionSubmit, StatusRejected, false, true},
		{StatusRejected, ActionAccept, StatusRejected, false, true},
	}
	for _, tc := range cases {
		t.Run(string(tc.from)+"/"+string(tc.action), func(t *testing.T) {
			e := &Event{Status: tc.from}
			err := e.Apply(tc.action)
			if tc.wantErr != (err != nil) {
				t.Fatalf("err = %v, wantErr %v", err, tc.wantErr)
			}
			if tc.wantErr && !errors.Is(err, ErrInvalidTransition) {
				t.Fatalf("err = %v, want ErrInvalidTransition", err)
			}
			if e.Status != tc.want || e.ToPublic != tc.wantPublic {
				t.Fatalf("status=%s public=%v, want %s/%v", e.Status, e.ToPublic, tc.want, tc.wantPublic)
			}
			if e.Public() != tc.wantPublic {
				t.Fatalf("Public() = %v", e.Public())
			}
		})
	}
}

func TestParseAction(t *testing.T) {
	for _, s := range []string{"submit", "accept", "reject", "to-public"} {
		if _, ok := ParseAction(s); !ok {
			t.Fatalf("ParseAction(%q) rejected", s)
		}
	}
	if _, ok := ParseAction("publish"); ok {
		t.Fatal("ParseAction accepted an unknown action")
	}
}

func TestValidateDuration(t *testing.T) {
	start, end := int64(2000), int64(1000)
	if err := (&Event{DurationStart: &start, DurationEnd: &end}).ValidateDuration(); !errors.Is(err, ErrInvalidDuration) {
		t.Fatalf("err = %v", err)
	}
	if err := (&Event{DurationStart: &end, DurationEnd: &start}).ValidateDuration(); err != nil {
		t.Fatalf("err = %v", err)
	}
	if err := (&Event{DurationStart: &start}).ValidateDuration(); err != nil {
		t.Fatalf("open-ended: %v", err)
	}
}
