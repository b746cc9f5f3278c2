package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetAndL(t *testing.T) {
	var buf bytes.Buffer
	Set(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	defer Set(nil)

	L("transcode").Debug("external codec", "encoding", "SHIFT_JIS")
	require.Contains(t, buf.String(), "component=transcode")
	require.Contains(t, buf.String(), "encoding=SHIFT_JIS")
}

func TestDefaultDiscards(t *testing.T) {
	Set(nil)
	require.NotPanics(t, func() {
		L("str").Debug("nothing to see")
	})
}
