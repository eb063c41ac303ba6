package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	ErrVersionExists   = errors.New("version already exists")
	ErrVersionNotFound = errors.New("version not found")
	ErrCommitNotFound  = errors.New("commit not found")
)

// BlobStore is the content storage the document writes commit blobs through.
type BlobStore interface {
	WriteBlob(promptID, version, commitID string, content []byte) error
	ReadBlob(promptID, version, commitID string) ([]byte, error)
}

// PromptCommit is one immutable snapshot of content inside a version. Commits
// are never edited or removed once appended.
type PromptCommit struct {
	Author    string    `json:"author"`
	CommitID  string    `json:"commit_id"`
	CreatedAt time.Time `json:"created_at"`
	Desp      string    `json:"desp"`
}

func NewPromptCommit(author, desp string) PromptCommit {
	return PromptCommit{
		Author:    author,
		Desp:      desp,
		CommitID:  uuid.New().String(),
		CreatedAt: time.Now().UTC(),
	}
}

// PromptNode is a named line of commits. Commits keep insertion order; that
// order, not the timestamps, defines which commit precedes which.
type PromptNode struct {
	Version   string         `json:"version"`
	Commits   []PromptCommit `json:"commits"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// PromptDocument is the in-memory version graph of one prompt. It is
// persisted as a single JSON file; every durable mutation requires a full
// re-save through the content store.
type PromptDocument struct {
	Name  string       `json:"name"`
	ID    string       `json:"id"`
	Nodes []PromptNode `json:"nodes"`
}

func NewPromptDocument(name string) *PromptDocument {
	return &PromptDocument{
		Name:  name,
		ID:    uuid.New().String(),
		Nodes: []PromptNode{},
	}
}

func ParsePromptDocument(data []byte) (*PromptDocument, error) {
	var doc PromptDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("malformed prompt document: %w", err)
	}
	return &doc, nil
}

func (d *PromptDocument) Marshal() ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

func (d *PromptDocument) node(version string) *PromptNode {
	for i := range d.Nodes {
		if d.Nodes[i].Version == version {
			return &d.Nodes[i]
		}
	}
	return nil
}

// CreateVersion appends an empty node. Other nodes are untouched.
func (d *PromptDocument) CreateVersion(version string) error {
	if d.node(version) != nil {
		return fmt.Errorf("version %q: %w", version, ErrVersionExists)
	}
	d.Nodes = append(d.Nodes, PromptNode{
		Version:   version,
		Commits:   []PromptCommit{},
		UpdatedAt: time.Now().UTC(),
	})
	return nil
}

// Commit writes content to the blob store first, then appends the commit to
// the node. An orphaned blob with no metadata entry is harmless; a metadata
// entry without a blob is corruption, so the blob must be durable before the
// commit list changes.
func (d *PromptDocument) Commit(store BlobStore, version string, com PromptCommit, content string) error {
	node := d.node(version)
	if node == nil {
		return fmt.Errorf("version %q: %w", version, ErrVersionNotFound)
	}
	if err := store.WriteBlob(d.ID, version, com.CommitID, []byte(content)); err != nil {
		return err
	}
	node.Commits = append(node.Commits, com)
	node.UpdatedAt = time.Now().UTC()
	return nil
}

// GetCommit returns a copy of the commit's metadata.
func (d *PromptDocument) GetCommit(version, commitID string) (PromptCommit, error) {
	node := d.node(version)
	if node == nil {
		return PromptCommit{}, fmt.Errorf("version %q: %w", version, ErrVersionNotFound)
	}
	for _, c := range node.Commits {
		if c.CommitID == commitID {
			return c, nil
		}
	}
	return PromptCommit{}, fmt.Errorf("commit %q: %w", commitID, ErrCommitNotFound)
}

// Content reads the blob for one commit.
func (d *PromptDocument) Content(store BlobStore, version, commitID string) (string, error) {
	if _, err := d.GetCommit(version, commitID); err != nil {
		return "", err
	}
	data, err := store.ReadBlob(d.ID, version, commitID)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// PrevCommit returns the commit id immediately preceding commitID in the
// node's insertion order. The first commit has no predecessor.
func (d *PromptDocument) PrevCommit(version, commitID string) (string, error) {
	node := d.node(version)
	if node == nil {
		return "", fmt.Errorf("version %q: %w", version, ErrVersionNotFound)
	}
	for i, c := range node.Commits {
		if c.CommitID == commitID {
			if i == 0 {
				return "", fmt.Errorf("commit %q has no previous commit: %w", commitID, ErrCommitNotFound)
			}
			return node.Commits[i-1].CommitID, nil
		}
	}
	return "", fmt.Errorf("commit %q: %w", commitID, ErrCommitNotFound)
}

// ListVersions returns version names in insertion order.
func (d *PromptDocument) ListVersions() []string {
	versions := make([]string, 0, len(d.Nodes))
	for _, n := range d.Nodes {
		versions = append(versions, n.Version)
	}
	return versions
}

// ListCommits returns commit ids for one version in insertion order.
func (d *PromptDocument) ListCommits(version string) ([]string, error) {
	node := d.node(version)
	if node == nil {
		return nil, fmt.Errorf("version %q: %w", version, ErrVersionNotFound)
	}
	ids := make([]string, 0, len(node.Commits))
	for _, c := range node.Commits {
		ids = append(ids, c.CommitID)
	}
	return ids, nil
}
