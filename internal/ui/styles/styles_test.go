package styles

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Mulraeng/Vim-doc-editor/internal/engine/mode"
)

func TestModeStyle_Backgrounds(t *testing.T) {
	tests := []struct {
		mode mode.Mode
		want any
	}{
		{mode.Normal, ModeNormalColor},
		{mode.Insert, ModeInsertColor},
		{mode.Visual, ModeVisualColor},
		{mode.VisualLine, ModeVisualColor},
		{mode.Replace, ModeReplaceColor},
	}
	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			require.Equal(t, tt.want, ModeStyle(tt.mode).GetBackground())
		})
	}
}

func TestModeStyle_Padded(t *testing.T) {
	require.Equal(t, " NORMAL ", ModeStyle(mode.Normal).UnsetBackground().UnsetForeground().UnsetBold().Render("NORMAL"))
}
