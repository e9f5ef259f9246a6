// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package log

import (
	"bytes"
	"testing"
	"time"

	"github.com/apex/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomHandler(t *testing.T) {
	var buf bytes.Buffer
	h := &CustomHandler{Writer: &buf}

	e := &log.Entry{
		Level:     log.WarnLevel,
		Message:   "cache full",
		Timestamp: time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC),
		Fields:    log.Fields{"size": 10, "engine": "lru"},
	}
	require.NoError(t, h.HandleLog(e))
	assert.Equal(t, "2025-03-04 05:06:07 W cache full engine=lru size=10\n", buf.String())
}

func TestInitLoggerLevel(t *testing.T) {
	tests := []struct {
		env  string
		want log.Level
	}{
		{env: "", want: log.ErrorLevel},
		{env: "debug", want: log.DebugLevel},
		{env: "INFO", want: log.InfoLevel},
		{env: "bogus", want: log.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			t.Setenv("MEMOCTL_LOG", tt.env)
			InitLogger()

			l, ok := log.Log.(*log.Logger)
			require.True(t, ok)
			assert.Equal(t, tt.want, l.Level)
		})
	}
}
