package ipc

// IR types as serialized between plugins and the host.

// Corpus represents a complete text collection such as a treebank.
type Corpus struct {
	ID           string            `json:"id"`
	Version      string            `json:"version"`
	ModuleType   string            `json:"module_type"`
	Language     string            `json:"language,omitempty"`
	Title        string            `json:"title,omitempty"`
	SourceFormat string            `json:"source_format,omitempty"`
	Documents    []*Document       `json:"documents,omitempty"`
	SourceHash   string            `json:"source_hash,omitempty"`
	LossClass    string            `json:"loss_class,omitempty"`
	Attributes   map[string]string `json:"attributes,omitempty"`
}

// Document represents a single document within a corpus, one per file.
type Document struct {
	ID            string            `json:"id"`
	Title         string            `json:"title,omitempty"`
	Order         int               `json:"order"`
	ContentBlocks []*ContentBlock   `json:"content_blocks,omitempty"`
	Attributes    map[string]string `json:"attributes,omitempty"`
}

// ContentBlock represents a unit of content with stand-off markup. For
// CoNLL-U each sentence is one block.
type ContentBlock struct {
	ID         string                 `json:"id"`
	Sequence   int                    `json:"sequence"`
	Text       string                 `json:"text"`
	Tokens     []*Token               `json:"tokens,omitempty"`
	Hash       string                 `json:"hash,omitempty"`
	Attributes map[string]interface{} `json:"attributes,omitempty"`
}

// Token represents a tokenized word or morpheme. StartPos and EndPos are
// rune offsets into the block text.
type Token struct {
	ID         string            `json:"id"`
	Type       string            `json:"type"`
	Text       string            `json:"text"`
	StartPos   int               `json:"start_pos"`
	EndPos     int               `json:"end_pos"`
	Attributes map[string]string `json:"attributes,omitempty"`
}
