package ledger

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound 引用的记录不存在或不属于当前用户
	ErrNotFound = errors.New("not found")
	// ErrConflict 操作会破坏月度收支一致性，或与已有数据冲突
	ErrConflict = errors.New("conflict")
	// ErrInvalidRole 角色取值不合法
	ErrInvalidRole = errors.New("role must be 'user' or 'admin'")
)

// NotFoundError 记录不存在
type NotFoundError struct {
	Entity string
	ID     any
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with id '%v' was not found.", e.Entity, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ConflictError 校验拒绝，Message 面向调用方展示
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

func notFound(entity string, id any) error {
	return &NotFoundError{Entity: entity, ID: id}
}

func conflictf(format string, args ...any) error {
	return &ConflictError{Message: fmt.Sprintf(format, args...)}
}
