package anytype

const (
	SbTypePage           = "Page"
	SbTypeRelation       = "STRelation"
	SbTypeRelationOption = "STRelationOption"
)

// LayoutStyleDiv marks a block that only groups its children.
const LayoutStyleDiv = "Div"

type SnapshotFile struct {
	SbType   string `json:"sbType"`
	Snapshot struct {
		Data *SnapshotData `json:"data"`
	} `json:"snapshot"`
}

type SnapshotData struct {
	Blocks        []Block        `json:"blocks"`
	Details       map[string]any `json:"details"`
	RelationLinks []RelationLink `json:"relationLinks"`
}

type RelationLink struct {
	Key    string `json:"key"`
	Format any    `json:"format"`
}

type Block struct {
	ID         string         `json:"id"`
	ChildrenID []string       `json:"childrenIds"`
	Fields     map[string]any `json:"fields"`

	Text    *TextBlock    `json:"text"`
	File    *FileBlock    `json:"file"`
	Layout  *LayoutBlock  `json:"layout"`
	Columns []TableColumn `json:"columns"`
	Rows    []TableRow    `json:"rows"`
}

type TextBlock struct {
	Text    string     `json:"text"`
	Style   string     `json:"style"`
	Checked bool       `json:"checked"`
	Marks   *TextMarks `json:"marks"`
}

type TextMarks struct {
	Marks []TextMark `json:"marks"`
}

type TextMark struct {
	Range TextMarkRange `json:"range"`
	Type  string        `json:"type"`
	Param string        `json:"param"`
}

type TextMarkRange struct {
	From int `json:"from"`
	To   int `json:"to"`
}

type FileBlock struct {
	Name           string `json:"name"`
	Hash           string `json:"hash"`
	Type           string `json:"type"`
	TargetObjectID string `json:"targetObjectId"`
}

type LayoutBlock struct {
	Style string `json:"style"`
}

type TableColumn struct {
	Name any `json:"name"`
}

type TableRow struct {
	Cells []TableCell `json:"cells"`
}

type TableCell struct {
	Content any `json:"content"`
}

// TextContent returns the block's raw text, or "" when it has no text payload.
func (b Block) TextContent() string {
	if b.Text == nil {
		return ""
	}
	return b.Text.Text
}

// MarkList returns the marks attached to the block's text.
func (b Block) MarkList() []TextMark {
	if b.Text == nil || b.Text.Marks == nil {
		return nil
	}
	return b.Text.Marks.Marks
}

// IsOrganizational reports whether the block contributes no content of its own.
func (b Block) IsOrganizational() bool {
	if b.Layout != nil && b.Layout.Style == LayoutStyleDiv {
		return true
	}
	return b.TextContent() == "" && b.File == nil && len(b.Columns) == 0
}

type RelationDef struct {
	ID     string
	Key    string
	Name   string
	Format int
}

// RelationFormatUnset is used when a relation snapshot carries no relationFormat.
const RelationFormatUnset = -1

// IsFreeText reports whether values of the relation are plain text rather than
// references to options or objects.
func (r RelationDef) IsFreeText() bool {
	return r.Format == 0
}

type RelationOption struct {
	ID   string
	Name string
}

// Document is one Page snapshot. RelationLinks is nil when the snapshot has no
// relationLinks field, and empty when the field is an empty list.
type Document struct {
	ID            string
	Title         string
	SourcePath    string
	Details       map[string]any
	RelationLinks []RelationLink
	Blocks        []Block
}

// Corpus is every snapshot read from one export, with lookup indexes built once.
type Corpus struct {
	Documents []Document
	Relations map[string]RelationDef
	Options   map[string]RelationOption
	Snapshots int
}
