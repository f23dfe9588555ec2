package exporter

import (
	anytypedomain "github.com/sleroq/anytype-to-markdown/internal/domain/anytype"
	"github.com/sleroq/anytype-to-markdown/internal/infra/exportfs"
)

const unnamedFile = "unnamed_file"

// AttachmentResolver turns a file block into Markdown and remembers what has
// to be copied once all notes are written.
type AttachmentResolver interface {
	ResolveAttachment(f anytypedomain.FileBlock) string
}

type attachmentRegistry struct {
	pending map[string]string
}

func newAttachmentRegistry() *attachmentRegistry {
	return &attachmentRegistry{pending: make(map[string]string)}
}

func (r *attachmentRegistry) ResolveAttachment(f anytypedomain.FileBlock) string {
	name := f.Name
	if name == "" {
		name = unnamedFile
	}
	if f.Hash == "" {
		return "[" + name + "](file_not_found)"
	}
	r.pending[f.Hash] = name
	return "![" + name + "](attachments/" + exportfs.AttachmentFileName(f.Hash, name) + ")"
}

// Pending returns hash -> file name for every registered attachment.
func (r *attachmentRegistry) Pending() map[string]string {
	return r.pending
}
