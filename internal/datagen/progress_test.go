//-------------------------------------------------------------------------
//
// pgEdge Shop Stats
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package datagen

import (
	"bytes"
	"testing"
)

func TestLogProgress(t *testing.T) {
	p := NewLogProgress("sales", 100, 10)
	for i := 0; i < 25; i++ {
		p.Add(1)
	}
	p.Add(5)
	if p.Rows() != 30 {
		t.Errorf("Expected 30 rows, got %d", p.Rows())
	}
	p.Done()

	if NewLogProgress("x", 0, 0).progressInterval != 1 {
		t.Error("Expected interval to be clamped to 1")
	}
}

func TestBarProgress(t *testing.T) {
	var buf bytes.Buffer
	p := NewBarProgress("sales", 10, &buf)
	p.Add(4)
	p.Add(6)
	p.Done()

	if buf.Len() == 0 {
		t.Error("Expected progress bar output")
	}
}
