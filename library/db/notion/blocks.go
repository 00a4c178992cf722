package notion

// Block is one content block of a page. Only the payload matching Type is
// populated; unsupported types keep all payloads nil and are skipped by
// the markdown converter.
type Block struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	HasChildren bool   `json:"has_children"`

	Paragraph        *TextBlock     `json:"paragraph,omitempty"`
	Heading1         *TextBlock     `json:"heading_1,omitempty"`
	Heading2         *TextBlock     `json:"heading_2,omitempty"`
	Heading3         *TextBlock     `json:"heading_3,omitempty"`
	BulletedListItem *TextBlock     `json:"bulleted_list_item,omitempty"`
	NumberedListItem *TextBlock     `json:"numbered_list_item,omitempty"`
	Quote            *TextBlock     `json:"quote,omitempty"`
	ToDo             *ToDoBlock     `json:"to_do,omitempty"`
	Code             *CodeBlock     `json:"code,omitempty"`
	Image            *FileBlock     `json:"image,omitempty"`
	Bookmark         *BookmarkBlock `json:"bookmark,omitempty"`
}

// TextBlock payload of the plain rich-text block types.
type TextBlock struct {
	RichText []RichText `json:"rich_text"`
}

// ToDoBlock payload of a to_do block.
type ToDoBlock struct {
	RichText []RichText `json:"rich_text"`
	Checked  bool       `json:"checked"`
}

// CodeBlock payload of a code block.
type CodeBlock struct {
	RichText []RichText `json:"rich_text"`
	Language string     `json:"language"`
}

// FileBlock payload of file-backed blocks like image.
type FileBlock struct {
	External *FileRef   `json:"external,omitempty"`
	File     *FileRef   `json:"file,omitempty"`
	Caption  []RichText `json:"caption,omitempty"`
}

// FileRef resolved file location.
type FileRef struct {
	URL string `json:"url"`
}

// URLString returns the block's file URL regardless of hosting.
func (f *FileBlock) URLString() string {
	switch {
	case f == nil:
		return ""
	case f.External != nil:
		return f.External.URL
	case f.File != nil:
		return f.File.URL
	default:
		return ""
	}
}

// BookmarkBlock payload of a bookmark block.
type BookmarkBlock struct {
	URL     string     `json:"url"`
	Caption []RichText `json:"caption,omitempty"`
}
