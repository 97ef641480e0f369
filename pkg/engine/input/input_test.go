package input

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScript_ParsesCommands(t *testing.T) {
	s := NewScript(strings.NewReader("# warm up\n\ntap 30 30.5\nNEXT\nsnapshot\nquit\n"), nil)

	var intents []Intent
	for {
		raw, err := s.Next("")
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		assert.Equal(t, DeviceScript, raw.Device)
		intents = append(intents, Resolve(raw))
	}

	assert.Equal(t, []Intent{
		{Action: ActionPointerDown, X: 30, Y: 30.5},
		{Action: ActionConfirm},
		{Action: ActionSnapshot},
		{Action: ActionQuit},
	}, intents)
	assert.Equal(t, 6, s.Line())
}

func TestScript_Errors(t *testing.T) {
	tests := []struct {
		line string
		msg  string
	}{
		{"tap 1", "tap needs X and Y"},
		{"tap a b", "bad coordinates"},
		{"next now", "takes no arguments"},
		{"jump", "unknown command"},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			_, err := NewScript(strings.NewReader(tt.line+"\n"), nil).Next("")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
			assert.Contains(t, err.Error(), "line 1")
		})
	}
}

func TestScript_PromptsBeforeEachRead(t *testing.T) {
	var out bytes.Buffer
	s := NewScript(strings.NewReader("next\n"), &out)

	_, err := s.Next("> ")
	require.NoError(t, err)
	_, err = s.Next("> ")
	assert.Equal(t, io.EOF, err)
	assert.Equal(t, "> > ", out.String())
}

func TestMapToIntent_KeyboardCarriesNoCoordinates(t *testing.T) {
	in := MapToIntent(DebouncedInput{Device: DeviceKeyboard, Code: "enter", X: 5, Y: 5})
	assert.Equal(t, Intent{Action: ActionConfirm}, in)

	assert.Equal(t, ActionNone, MapToIntent(DebouncedInput{Code: "space"}).Action)
}

func TestGetBindingsByAction_Sorted(t *testing.T) {
	b := GetBindingsByAction()
	assert.Equal(t, []string{"enter", "next", "numpad_enter"}, b[ActionConfirm])
	assert.Equal(t, "Next", ActionName(ActionConfirm))
}
