/*
 * Copyright (c) 2026. AXIOM STUDIO AI Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package rdashcli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func testLogger(t *testing.T) (*Logger, string) {
	t.Helper()
	logPath := filepath.Join(t.TempDir(), "test.log")
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		t.Fatal(err)
	}
	return &Logger{path: logPath, file: f}, logPath
}

func TestLogger_Levels(t *testing.T) {
	l, logPath := testLogger(t)
	l.Debug("dbg")
	l.Info("test message %d", 42)
	l.Warn("warning: %s", "something")
	l.Error("error: %v", "bad thing")
	l.Close()

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatal(err)
	}
	content := string(data)
	for _, want := range []string{"[DEBUG]", "[INFO]", "[WARN]", "[ERROR]", "test message 42"} {
		if !strings.Contains(content, want) {
			t.Errorf("expected %q in log", want)
		}
	}
}

func TestLogger_Timestamp(t *testing.T) {
	l, logPath := testLogger(t)
	l.Info("ts test")
	l.Close()

	data, _ := os.ReadFile(logPath)
	content := string(data)
	if len(content) < 19 {
		t.Fatalf("log line too short: %q", content)
	}
	// Timestamp format: YYYY-MM-DD HH:MM:SS
	if content[4] != '-' || content[7] != '-' || content[10] != ' ' {
		t.Errorf("expected timestamp at start of log, got: %q", content[:20])
	}
}

func TestLogger_CloseIdempotent(t *testing.T) {
	l, _ := testLogger(t)
	l.Close()
	l.Close() // Second close should not panic.
	l.Info("should be no-op")
}

func TestLogger_NilFile(t *testing.T) {
	l := &Logger{} // no file
	// Should not panic.
	l.Info("no-op message")
	l.Close()
}

func TestLogger_Rotation(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "rotate.log")
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		t.Fatal(err)
	}
	l := &Logger{path: logPath, file: f}

	// Write enough data to exceed maxLogSize (1MB).
	msg := strings.Repeat("x", 1024)
	for i := 0; i < 1100; i++ {
		l.Info("%s", msg)
	}
	l.Close()

	info, err := os.Stat(logPath)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() > maxLogSize+100*1024 {
		t.Errorf("expected file size near maxLogSize after rotation, got %d", info.Size())
	}

	data, _ := os.ReadFile(logPath)
	if !strings.Contains(string(data), "Log rotated") {
		t.Error("expected rotation message in log")
	}
}
