package pipeline

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode identifies which stage of a run failed.
type ErrorCode string

const (
	CodeFileNotFound        ErrorCode = "FILE_NOT_FOUND"
	CodeUnsupportedFormat   ErrorCode = "UNSUPPORTED_FORMAT"
	CodeTranscriptionFailed ErrorCode = "TRANSCRIPTION_FAILED"
	CodeDiarizationFailed   ErrorCode = "DIARIZATION_FAILED"
	CodeSummarizationFailed ErrorCode = "SUMMARIZATION_FAILED"
	CodeSaveFailed          ErrorCode = "SAVE_FAILED"
)

// Sentinels for errors.Is; only the code is compared.
var (
	ErrFileNotFound        = &Error{Code: CodeFileNotFound}
	ErrUnsupportedFormat   = &Error{Code: CodeUnsupportedFormat}
	ErrTranscriptionFailed = &Error{Code: CodeTranscriptionFailed}
	ErrDiarizationFailed   = &Error{Code: CodeDiarizationFailed}
	ErrSummarizationFailed = &Error{Code: CodeSummarizationFailed}
	ErrSaveFailed          = &Error{Code: CodeSaveFailed}
)

// Error is the user-facing failure of a run. Message is printed as is.
type Error struct {
	Code    ErrorCode
	Message string
	Path    string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// CodeOf returns the code of the first *Error in err's chain, or "".
func CodeOf(err error) ErrorCode {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Code
	}
	return ""
}

func newFileNotFound(path string, cause error) *Error {
	return &Error{
		Code:    CodeFileNotFound,
		Message: fmt.Sprintf("❌ 오류: 파일을 찾을 수 없습니다. 올바른 경로를 입력하세요. (%s)", path),
		Path:    path,
		Cause:   cause,
	}
}

func newUnsupportedFormat(path string, supported []string) *Error {
	return &Error{
		Code:    CodeUnsupportedFormat,
		Message: fmt.Sprintf("❌ 오류: 지원하지 않는 파일 형식입니다. (%s) 지원 형식: %s", path, strings.Join(supported, ", ")),
		Path:    path,
	}
}

func newTranscriptionFailed(path string, cause error) *Error {
	return &Error{Code: CodeTranscriptionFailed, Message: "❌ 오류: Whisper 변환 중 오류가 발생했습니다", Path: path, Cause: cause}
}

func newDiarizationFailed(path string, cause error) *Error {
	return &Error{Code: CodeDiarizationFailed, Message: "❌ 오류: 화자 분리 중 오류가 발생했습니다", Path: path, Cause: cause}
}

func newSummarizationFailed(path string, cause error) *Error {
	return &Error{Code: CodeSummarizationFailed, Message: "❌ 오류: 요약 생성 중 오류가 발생했습니다", Path: path, Cause: cause}
}

func newSaveFailed(path string, cause error) *Error {
	return &Error{Code: CodeSaveFailed, Message: "❌ 오류: 파일 저장 중 오류가 발생했습니다", Path: path, Cause: cause}
}
