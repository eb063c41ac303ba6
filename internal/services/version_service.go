package services

import (
	"errors"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/Viper373/prompt-shelf/internal/database"
	"github.com/Viper373/prompt-shelf/internal/models"
	"github.com/Viper373/prompt-shelf/internal/storage"
	"github.com/Viper373/prompt-shelf/pkg/logger"
)

// ContentStore is the blob/document store all prompt operations go through.
// Set once at startup via InitContentStore.
var ContentStore *storage.Store

func InitContentStore(dataDir string) {
	ContentStore = storage.New(dataDir)
}

// maxConcurrentLoads bounds the fan-out when hydrating many documents.
const maxConcurrentLoads = 8

// promptLocks serializes load-mutate-save sequences per prompt so that two
// concurrent commits against the same document cannot overwrite each other's
// saves.
var promptLocks sync.Map

func lockPrompt(fileKey string) func() {
	v, _ := promptLocks.LoadOrStore(fileKey, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// PromptOverview pairs a pointer record with its hydrated document.
type PromptOverview struct {
	Record   models.PromptRecord    `json:"record"`
	Document *models.PromptDocument `json:"document"`
}

func findRecord(userID, promptID uint) (*models.PromptRecord, error) {
	var rec models.PromptRecord
	err := database.DB.Where("id = ? AND user_id = ?", promptID, userID).First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPromptNotFound
		}
		return nil, err
	}
	return &rec, nil
}

func loadDocument(userID uint, fileKey string) (*models.PromptDocument, error) {
	return GetDocument(userID, fileKey, func() (*models.PromptDocument, error) {
		data, err := ContentStore.ReadDocument(fileKey)
		if err != nil {
			return nil, err
		}
		return models.ParsePromptDocument(data)
	})
}

func saveDocument(userID uint, doc *models.PromptDocument) error {
	data, err := doc.Marshal()
	if err != nil {
		return err
	}
	if err := ContentStore.WriteDocument(doc.ID, data); err != nil {
		return err
	}
	CacheDocument(userID, doc)
	return nil
}

// setPointer partially updates the record's latest_version/latest_commit.
func setPointer(recordID uint, version, commitID string) error {
	return database.DB.Model(&models.PromptRecord{}).Where("id = ?", recordID).
		Updates(map[string]interface{}{
			"latest_version": version,
			"latest_commit":  commitID,
		}).Error
}

// CreatePrompt creates an empty document plus its pointer record.
func CreatePrompt(user models.User, name string) (*models.PromptRecord, error) {
	doc := models.NewPromptDocument(name)
	if err := saveDocument(user.ID, doc); err != nil {
		return nil, err
	}

	rec := &models.PromptRecord{
		FileKey: doc.ID,
		UserID:  user.ID,
	}
	if err := database.DB.Create(rec).Error; err != nil {
		return nil, err
	}
	return rec, nil
}

// CreateVersion appends an empty node to the prompt's document.
func CreateVersion(user models.User, promptID uint, version string) error {
	rec, err := findRecord(user.ID, promptID)
	if err != nil {
		return err
	}
	unlock := lockPrompt(rec.FileKey)
	defer unlock()

	doc, err := loadDocument(user.ID, rec.FileKey)
	if err != nil {
		return err
	}
	if err := doc.CreateVersion(version); err != nil {
		return err
	}
	return saveDocument(user.ID, doc)
}

// Commit appends a commit to a version. The cursor only moves when asLatest
// is set; committing without it records history without changing what is
// current.
func Commit(user models.User, promptID uint, version, desp, content string, asLatest bool) (string, error) {
	rec, err := findRecord(user.ID, promptID)
	if err != nil {
		return "", err
	}
	unlock := lockPrompt(rec.FileKey)
	defer unlock()

	doc, err := loadDocument(user.ID, rec.FileKey)
	if err != nil {
		return "", err
	}

	com := models.NewPromptCommit(user.Username, desp)
	if err := doc.Commit(ContentStore, version, com, content); err != nil {
		return "", err
	}
	if err := saveDocument(user.ID, doc); err != nil {
		return "", err
	}

	if asLatest {
		if err := setPointer(rec.ID, version, com.CommitID); err != nil {
			return "", err
		}
	}
	return com.CommitID, nil
}

// Rollback moves the cursor to an explicitly named commit, which must exist.
// No new commit is created.
func Rollback(user models.User, promptID uint, version, commitID string) error {
	rec, err := findRecord(user.ID, promptID)
	if err != nil {
		return err
	}
	unlock := lockPrompt(rec.FileKey)
	defer unlock()

	doc, err := loadDocument(user.ID, rec.FileKey)
	if err != nil {
		return err
	}
	if _, err := doc.GetCommit(version, commitID); err != nil {
		return err
	}
	return setPointer(rec.ID, version, commitID)
}

// Revert moves the cursor one step back within its version. Fails when the
// current commit is already the first of its version.
func Revert(user models.User, promptID uint) error {
	rec, err := findRecord(user.ID, promptID)
	if err != nil {
		return err
	}
	unlock := lockPrompt(rec.FileKey)
	defer unlock()

	if rec.LatestVersion == "" || rec.LatestCommit == "" {
		return ErrNoLatestCommit
	}
	doc, err := loadDocument(user.ID, rec.FileKey)
	if err != nil {
		return err
	}
	prev, err := doc.PrevCommit(rec.LatestVersion, rec.LatestCommit)
	if err != nil {
		return err
	}
	return setPointer(rec.ID, rec.LatestVersion, prev)
}

// Latest returns the cursor's version, commit metadata and content.
func Latest(user models.User, promptID uint) (string, models.PromptCommit, string, error) {
	rec, err := findRecord(user.ID, promptID)
	if err != nil {
		return "", models.PromptCommit{}, "", err
	}
	if rec.LatestVersion == "" || rec.LatestCommit == "" {
		return "", models.PromptCommit{}, "", ErrNoLatestCommit
	}

	doc, err := loadDocument(user.ID, rec.FileKey)
	if err != nil {
		return "", models.PromptCommit{}, "", err
	}
	com, err := doc.GetCommit(rec.LatestVersion, rec.LatestCommit)
	if err != nil {
		return "", models.PromptCommit{}, "", err
	}
	content, err := doc.Content(ContentStore, rec.LatestVersion, rec.LatestCommit)
	if err != nil {
		return "", models.PromptCommit{}, "", err
	}
	return rec.LatestVersion, com, content, nil
}

// Content returns the raw text of one commit.
func Content(user models.User, promptID uint, version, commitID string) (string, error) {
	rec, err := findRecord(user.ID, promptID)
	if err != nil {
		return "", err
	}
	doc, err := loadDocument(user.ID, rec.FileKey)
	if err != nil {
		return "", err
	}
	return doc.Content(ContentStore, version, commitID)
}

// DiffCommits produces a line diff between two commits of the same prompt.
func DiffCommits(user models.User, promptID uint, leftVersion, leftCommit, rightVersion, rightCommit string) ([]DiffLine, error) {
	rec, err := findRecord(user.ID, promptID)
	if err != nil {
		return nil, err
	}
	doc, err := loadDocument(user.ID, rec.FileKey)
	if err != nil {
		return nil, err
	}
	left, err := doc.Content(ContentStore, leftVersion, leftCommit)
	if err != nil {
		return nil, err
	}
	right, err := doc.Content(ContentStore, rightVersion, rightCommit)
	if err != nil {
		return nil, err
	}
	return DiffLines(left, right), nil
}

// ListVersions returns version names in creation order.
func ListVersions(user models.User, promptID uint) ([]string, error) {
	rec, err := findRecord(user.ID, promptID)
	if err != nil {
		return nil, err
	}
	doc, err := loadDocument(user.ID, rec.FileKey)
	if err != nil {
		return nil, err
	}
	return doc.ListVersions(), nil
}

// ListCommits returns commit ids of one version in creation order.
func ListCommits(user models.User, promptID uint, version string) ([]string, error) {
	rec, err := findRecord(user.ID, promptID)
	if err != nil {
		return nil, err
	}
	doc, err := loadDocument(user.ID, rec.FileKey)
	if err != nil {
		return nil, err
	}
	return doc.ListCommits(version)
}

// QueryPrompt returns one prompt with its hydrated document.
func QueryPrompt(user models.User, promptID uint) (*PromptOverview, error) {
	rec, err := findRecord(user.ID, promptID)
	if err != nil {
		return nil, err
	}
	doc, err := loadDocument(user.ID, rec.FileKey)
	if err != nil {
		return nil, err
	}
	return &PromptOverview{Record: *rec, Document: doc}, nil
}

// QueryPrompts returns every prompt of the user. Documents are hydrated with
// bounded concurrency; one that fails to load is dropped from the result with
// a logged error instead of failing the whole listing.
func QueryPrompts(user models.User) ([]PromptOverview, error) {
	var records []models.PromptRecord
	if err := database.DB.Where("user_id = ?", user.ID).Find(&records).Error; err != nil {
		return nil, err
	}

	var mu sync.Mutex
	overviews := make([]PromptOverview, 0, len(records))

	var g errgroup.Group
	g.SetLimit(maxConcurrentLoads)
	for _, rec := range records {
		rec := rec
		g.Go(func() error {
			doc, err := loadDocument(user.ID, rec.FileKey)
			if err != nil {
				logger.Log.Error("failed to load prompt document",
					zap.String("file_key", rec.FileKey), zap.Error(err))
				return nil
			}
			mu.Lock()
			overviews = append(overviews, PromptOverview{Record: rec, Document: doc})
			mu.Unlock()
			return nil
		})
	}
	g.Wait()
	return overviews, nil
}

// DeletePrompt removes the document, its blobs and the pointer record as one
// logical unit. Blob and cache deletion are best-effort: the pointer record
// is the access path, so it goes last and its deletion is what matters.
func DeletePrompt(user models.User, promptID uint) error {
	rec, err := findRecord(user.ID, promptID)
	if err != nil {
		return err
	}
	unlock := lockPrompt(rec.FileKey)
	defer unlock()

	if err := ContentStore.DeletePrompt(rec.FileKey); err != nil {
		logger.Log.Error("failed to delete prompt files",
			zap.String("file_key", rec.FileKey), zap.Error(err))
	}
	DropDocumentCache(user.ID, rec.FileKey)

	return database.DB.Delete(&models.PromptRecord{}, rec.ID).Error
}
