// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bbq_test

import (
	"errors"
	"fmt"
	"testing"

	"code.hybscloud.com/bbq"
)

func TestErrorClassification(t *testing.T) {
	if !bbq.IsWouldBlock(bbq.ErrWouldBlock) {
		t.Fatal("ErrWouldBlock not classified as would-block")
	}
	if !bbq.IsSemantic(bbq.ErrWouldBlock) {
		t.Fatal("ErrWouldBlock not classified as a control flow signal")
	}
	if !bbq.IsNonFailure(bbq.ErrWouldBlock) {
		t.Fatal("ErrWouldBlock classified as failure")
	}
	if !bbq.IsNonFailure(nil) {
		t.Fatal("nil classified as failure")
	}

	if !bbq.IsInterrupted(bbq.ErrInterrupted) {
		t.Fatal("ErrInterrupted not classified as interrupted")
	}
	wrapped := fmt.Errorf("submit: %w", bbq.ErrInterrupted)
	if !bbq.IsInterrupted(wrapped) {
		t.Fatal("wrapped ErrInterrupted not classified as interrupted")
	}

	if !bbq.IsClosed(bbq.ErrClosed) {
		t.Fatal("ErrClosed not classified as closed")
	}
	if bbq.IsClosed(bbq.ErrInterrupted) || bbq.IsInterrupted(bbq.ErrClosed) {
		t.Fatal("sentinel errors overlap")
	}
	if errors.Is(bbq.ErrInvalidInput, bbq.ErrClosed) {
		t.Fatal("sentinel errors overlap")
	}
}
