package services

import "errors"

var (
	ErrPromptNotFound = errors.New("prompt not found")
	ErrNoLatestCommit = errors.New("prompt has no latest commit")
)
