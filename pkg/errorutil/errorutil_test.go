package errorutil

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tidwall/gjson"
)

func TestExitCodeFromError(t *testing.T) {
	base := errors.New("boom")
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, CodeSuccess},
		{"plain error", base, CodeInternalErr},
		{"exit error", NewExitError(CodeInvalidUsage, base), CodeInvalidUsage},
		{"wrapped exit error", fmt.Errorf("outer: %w", NewRoutineError(CodeAssertionFailed, "words", base)), CodeAssertionFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCodeFromError(tt.err))
		})
	}
}

func TestExitErrorWithCode_Error(t *testing.T) {
	base := errors.New("boom")
	assert.Equal(t, "msg: boom", NewExitErrorWithMessage(CodeIOError, "msg", base).Error())
	assert.Equal(t, "boom", NewExitError(CodeIOError, base).Error())
	assert.Equal(t, "Exit with code: 72", (&ExitErrorWithCode{Code: CodeIOError}).Error())

	err := fmt.Errorf("ctx: %w", NewExitErrorWithMessage(CodeIOError, "msg", base))
	assert.ErrorIs(t, err, base)
	assert.Equal(t, base, RootError(err))
	assert.Equal(t, "msg", UserMessage(err))
	assert.True(t, HasExitCode(err))
	assert.False(t, HasExitCode(base))
}

func TestFormatErrorAndCode(t *testing.T) {
	s, code := FormatErrorAndCode(NewRoutineError(CodeInternalErr, "tomap", errors.New("duplicate key Y")))
	assert.Equal(t, CodeInternalErr, code)
	assert.Equal(t, "tomap", gjson.Get(s, "routine").String())
	assert.Equal(t, "duplicate key Y", gjson.Get(s, "error").String())

	s, code = FormatErrorAndCode(errors.New("raw"))
	assert.Equal(t, CodeInternalErr, code)
	assert.Equal(t, "未知错误", gjson.Get(s, "message").String())
}
