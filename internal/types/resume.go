package types

import (
	"time"

	"github.com/google/uuid"
)

// BlockType classifies a resume block.
type BlockType string

// Resume block types.
const (
	BlockSummary    BlockType = "summary"
	BlockExperience BlockType = "experience"
	BlockProject    BlockType = "project"
	BlockEducation  BlockType = "education"
	BlockSkill      BlockType = "skill"
)

// ResumeBlock is one reusable piece of resume content.
type ResumeBlock struct {
	ID      string    `json:"id" validate:"required"`
	Type    BlockType `json:"type" validate:"required,oneof=summary experience project education skill"`
	Content string    `json:"content"`
	Tags    []string  `json:"tags,omitempty"`
}

// Resume is an ordered sequence of blocks owned by a single user.
// Block order is display order.
type Resume struct {
	ID        uuid.UUID     `json:"id"`
	OwnerID   uuid.UUID     `json:"owner_id"`
	Name      string        `json:"name"`
	Blocks    []ResumeBlock `json:"blocks"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// Text joins block contents with sep.
func (r *Resume) Text(sep string) string {
	if r == nil {
		return ""
	}
	return BlocksText(r.Blocks, sep)
}

// BlocksText joins the contents of blocks with sep.
func BlocksText(blocks []ResumeBlock, sep string) string {
	n := 0
	for _, b := range blocks {
		n += len(b.Content) + len(sep)
	}
	buf := make([]byte, 0, n)
	for i, b := range blocks {
		if i > 0 {
			buf = append(buf, sep...)
		}
		buf = append(buf, b.Content...)
	}
	return string(buf)
}

// TailoredResume is a resume derived from another resume's blocks.
type TailoredResume struct {
	Name   string        `json:"name"`
	Blocks []ResumeBlock `json:"blocks"`
}

// ResumeUpdate carries the mutable fields of a resume. Nil fields are left unchanged.
type ResumeUpdate struct {
	Name   *string        `json:"name,omitempty"`
	Blocks *[]ResumeBlock `json:"blocks,omitempty" validate:"omitempty,dive"`
}
