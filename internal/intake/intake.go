// Package intake 负责把关进入会话存储的简历文件
package intake

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"resume-analyzer-go/internal/constants"
	"resume-analyzer-go/internal/logger"
	"resume-analyzer-go/internal/session"
	"resume-analyzer-go/internal/types"
)

// ErrFileTooLarge 文件超出5MB上限
var ErrFileTooLarge = errors.New(constants.MsgFileTooLarge)

// ErrUnsupportedType 扩展名不在允许列表内
// 正常流程里文件选择器已经过滤掉该类文件，这里只是兜底
var ErrUnsupportedType = errors.New("Unsupported file type. Please upload a PDF or DOCX file.")

// allowedExtensions 允许的简历文件扩展名（小写）
var allowedExtensions = map[string]bool{
	".pdf":  true,
	".docx": true,
}

// AllowedExtension 判断文件名的扩展名是否被接受
func AllowedExtension(filename string) bool {
	return allowedExtensions[strings.ToLower(filepath.Ext(filename))]
}

// Accept 校验一个用户选择的文件并写入会话存储
//
// 校验顺序：先扩展名，再字节大小。任一校验失败时不碰存储，
// 之前接受的文件（如果有）保持原样，并通过LastError暴露给用户。
// 校验通过时清除既往错误、替换当前文件并把流程推进到第二步。
func Accept(store *session.Store, filename string, size int64, reader io.Reader) error {
	if !AllowedExtension(filename) {
		store.SetLastError(ErrUnsupportedType.Error())
		return ErrUnsupportedType
	}

	if size > constants.MaxResumeFileSize {
		logger.Warn().
			Str("filename", filename).
			Int64("size", size).
			Int("limit", constants.MaxResumeFileSize).
			Msg("简历文件超出大小上限，已拒绝")
		store.SetLastError(ErrFileTooLarge.Error())
		return ErrFileTooLarge
	}

	content, err := io.ReadAll(reader)
	if err != nil {
		return fmt.Errorf("读取上传文件内容失败: %w", err)
	}
	// 声明的大小与实际读到的内容可能不一致，以实际内容为准再查一次上限
	if int64(len(content)) > constants.MaxResumeFileSize {
		store.SetLastError(ErrFileTooLarge.Error())
		return ErrFileTooLarge
	}

	store.SetLastError("")
	store.SetCurrentFile(&types.UploadedDocument{
		Name:    filename,
		Size:    int64(len(content)),
		Content: content,
	})
	store.SetActiveStep(constants.StepDescribe)

	logger.Info().
		Str("filename", filename).
		Int("size", len(content)).
		Msg("简历文件已接受")
	return nil
}

// Remove 清除当前文件并回到第一步（移除文件操作）
func Remove(store *session.Store) {
	store.SetCurrentFile(nil)
	store.SetActiveStep(constants.StepUpload)
}
