package prompt

import (
	"errors"
	"strings"
	"testing"

	"charm.land/bubbles/v2/textinput"
)

func newTextModel(value string, validate Validator) textInputModel {
	ti := textinput.New()
	ti.Focus()
	ti.SetValue(value)
	return textInputModel{textInput: ti, prompt: "New category:", validate: validate}
}

func TestTextInputModel_Enter(t *testing.T) {
	t.Parallel()

	errTaken := errors.New("already registered")
	taken := func(v string) error {
		if v == "게임" {
			return errTaken
		}
		return nil
	}

	tests := []struct {
		name     string
		value    string
		validate Validator
		wantErr  error
		done     bool
	}{
		{"blank is rejected", "", nil, ErrBlank, false},
		{"whitespace is rejected", "   ", nil, ErrBlank, false},
		{"value is accepted", "도구", nil, nil, true},
		{"validator rejects", " 게임 ", taken, errTaken, false},
		{"validator accepts", "도구", taken, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			updated, cmd := newTextModel(tt.value, tt.validate).Update(keyPress("enter"))
			um := updated.(textInputModel)

			if !errors.Is(um.err, tt.wantErr) {
				t.Errorf("err = %v, want %v", um.err, tt.wantErr)
			}
			if um.done != tt.done {
				t.Errorf("done = %v, want %v", um.done, tt.done)
			}
			if (cmd != nil) != tt.done {
				t.Errorf("cmd nil = %v, want nil = %v", cmd == nil, !tt.done)
			}
			if um.cancelled {
				t.Error("enter should never cancel")
			}
		})
	}
}

func TestTextInputModel_ErrorShownAndCleared(t *testing.T) {
	t.Parallel()

	updated, _ := newTextModel("", nil).Update(keyPress("enter"))
	m := updated.(textInputModel)
	if !strings.Contains(m.render(), ErrBlank.Error()) {
		t.Errorf("render() = %q, want inline error", m.render())
	}

	updated, _ = m.Update(keyPress("a"))
	m = updated.(textInputModel)
	if m.err != nil {
		t.Errorf("err after typing = %v, want nil", m.err)
	}
	if strings.Contains(m.render(), ErrBlank.Error()) {
		t.Errorf("render() after typing = %q, want error cleared", m.render())
	}
}

func TestTextInputModel_Cancel(t *testing.T) {
	t.Parallel()

	for _, key := range []string{"esc", "ctrl+c"} {
		updated, cmd := newTextModel("", nil).Update(keyPress(key))
		m := updated.(textInputModel)
		if !m.cancelled || !m.done || cmd == nil {
			t.Errorf("%s: cancelled=%v done=%v cmd nil=%v", key, m.cancelled, m.done, cmd == nil)
		}
		if m.render() != "" {
			t.Errorf("%s: render() = %q, want empty", key, m.render())
		}
	}
}
