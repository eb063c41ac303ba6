package prompt

import (
	"github.com/Viper373/prompt-shelf/internal/models"
	"github.com/Viper373/prompt-shelf/internal/services"
)

type CreatePromptRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

type CreateVersionRequest struct {
	Version string `json:"version" binding:"required,max=32"`
}

type CommitRequest struct {
	Version  string `json:"version" binding:"required"`
	Desp     string `json:"desp"`
	Content  string `json:"content" binding:"required"`
	AsLatest bool   `json:"as_latest"`
}

type CommitResponse struct {
	CommitID string `json:"commit_id"`
}

type RollbackRequest struct {
	Version  string `json:"version" binding:"required"`
	CommitID string `json:"commit_id" binding:"required"`
}

type DiffRequest struct {
	LeftVersion  string `json:"left_version" binding:"required"`
	LeftCommit   string `json:"left_commit" binding:"required"`
	RightVersion string `json:"right_version" binding:"required"`
	RightCommit  string `json:"right_commit" binding:"required"`
}

type DiffResponse struct {
	Lines []services.DiffLine `json:"lines"`
}

type LatestResponse struct {
	Version string              `json:"version"`
	Commit  models.PromptCommit `json:"commit"`
	Content string              `json:"content"`
}

type ContentResponse struct {
	Content string `json:"content"`
}
