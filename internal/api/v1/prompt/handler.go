package prompt

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Viper373/prompt-shelf/internal/models"
	"github.com/Viper373/prompt-shelf/internal/services"
	"github.com/Viper373/prompt-shelf/internal/utils"
)

func currentUser(c *gin.Context) models.User {
	return c.MustGet("user").(models.User)
}

func promptID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "Invalid prompt id"))
		return 0, false
	}
	return uint(id), true
}

// errStatus maps service errors onto HTTP statuses. Missing things are client
// errors; anything else (blob I/O, malformed documents, DB failures) is
// internal.
func errStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrPromptNotFound),
		errors.Is(err, services.ErrNoLatestCommit),
		errors.Is(err, models.ErrVersionNotFound),
		errors.Is(err, models.ErrCommitNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrVersionExists):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func abortWith(c *gin.Context, err error) {
	status := errStatus(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "Internal error"
	}
	c.JSON(status, utils.NewErrorResponse(status, msg))
}

// CreatePrompt creates an empty prompt document plus its pointer record.
func CreatePrompt(c *gin.Context) {
	var req CreatePromptRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	rec, err := services.CreatePrompt(currentUser(c), req.Name)
	if err != nil {
		abortWith(c, err)
		return
	}

	c.JSON(http.StatusOK, utils.NewSuccessResponse("Prompt created successfully", rec))
}

// QueryPrompts lists every prompt of the caller with document metadata.
func QueryPrompts(c *gin.Context) {
	overviews, err := services.QueryPrompts(currentUser(c))
	if err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Query prompts finished", overviews))
}

// QueryPrompt returns a single prompt with document metadata.
func QueryPrompt(c *gin.Context) {
	id, ok := promptID(c)
	if !ok {
		return
	}
	overview, err := services.QueryPrompt(currentUser(c), id)
	if err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Query prompt finished", overview))
}

// CreateVersion adds a named version to the prompt.
func CreateVersion(c *gin.Context) {
	id, ok := promptID(c)
	if !ok {
		return
	}
	var req CreateVersionRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	if err := services.CreateVersion(currentUser(c), id, req.Version); err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Version created successfully", nil))
}

// ListVersions returns version names in creation order.
func ListVersions(c *gin.Context) {
	id, ok := promptID(c)
	if !ok {
		return
	}
	versions, err := services.ListVersions(currentUser(c), id)
	if err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Query versions finished", versions))
}

// ListCommits returns commit ids of one version in creation order.
func ListCommits(c *gin.Context) {
	id, ok := promptID(c)
	if !ok {
		return
	}
	commits, err := services.ListCommits(currentUser(c), id, c.Param("version"))
	if err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Query commits finished", commits))
}

// CreateCommit appends a commit to a version, optionally marking it latest.
func CreateCommit(c *gin.Context) {
	id, ok := promptID(c)
	if !ok {
		return
	}
	var req CommitRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	commitID, err := services.Commit(currentUser(c), id, req.Version, req.Desp, req.Content, req.AsLatest)
	if err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Commit created successfully", CommitResponse{CommitID: commitID}))
}

// Latest returns the current cursor commit with its content.
func Latest(c *gin.Context) {
	id, ok := promptID(c)
	if !ok {
		return
	}
	version, com, content, err := services.Latest(currentUser(c), id)
	if err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Query latest finished", LatestResponse{
		Version: version,
		Commit:  com,
		Content: content,
	}))
}

// GetContent returns the raw text of one commit, addressed by query params.
func GetContent(c *gin.Context) {
	id, ok := promptID(c)
	if !ok {
		return
	}
	version := c.Query("version")
	commitID := c.Query("commit_id")
	if version == "" || commitID == "" {
		c.JSON(http.StatusBadRequest, utils.NewErrorResponse(http.StatusBadRequest, "version and commit_id are required"))
		return
	}

	content, err := services.Content(currentUser(c), id, version, commitID)
	if err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Query content finished", ContentResponse{Content: content}))
}

// Rollback moves the latest pointer to an existing commit.
func Rollback(c *gin.Context) {
	id, ok := promptID(c)
	if !ok {
		return
	}
	var req RollbackRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	if err := services.Rollback(currentUser(c), id, req.Version, req.CommitID); err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Rollback finished", nil))
}

// Revert moves the latest pointer one commit back within its version.
func Revert(c *gin.Context) {
	id, ok := promptID(c)
	if !ok {
		return
	}
	if err := services.Revert(currentUser(c), id); err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Revert finished", nil))
}

// Diff compares two commits of the same prompt line by line.
func Diff(c *gin.Context) {
	id, ok := promptID(c)
	if !ok {
		return
	}
	var req DiffRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	lines, err := services.DiffCommits(currentUser(c), id,
		req.LeftVersion, req.LeftCommit, req.RightVersion, req.RightCommit)
	if err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Diff finished", DiffResponse{Lines: lines}))
}

// DeletePrompt removes the document, blobs, cache entry and pointer record.
func DeletePrompt(c *gin.Context) {
	id, ok := promptID(c)
	if !ok {
		return
	}
	if err := services.DeletePrompt(currentUser(c), id); err != nil {
		abortWith(c, err)
		return
	}
	c.JSON(http.StatusOK, utils.NewSuccessResponse("Prompt deleted successfully", nil))
}
