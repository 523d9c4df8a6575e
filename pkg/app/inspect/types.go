package inspect

import "time"

// Request represents a file inspection request
type Request struct {
	Path string

	// What to report besides the file summary
	ShowBlocks  bool
	ShowStrings bool

	// Block filters
	TypeFilter  string
	NamePattern string
}

// Response represents inspection results
type Response struct {
	File     FileInfo      `json:"file" yaml:"file"`
	Blocks   []BlockResult `json:"blocks,omitempty" yaml:"blocks,omitempty"`
	Strings  []string      `json:"strings,omitempty" yaml:"strings,omitempty"`
	LoadTime time.Duration `json:"load_time" yaml:"load_time"`
}

// FileInfo summarizes a loaded file
type FileInfo struct {
	Path          string      `json:"path" yaml:"path"`
	Size          int64       `json:"size" yaml:"size"`
	Version       string      `json:"version" yaml:"version"`
	User          uint32      `json:"user" yaml:"user"`
	Stream        uint32      `json:"stream" yaml:"stream"`
	Game          string      `json:"game,omitempty" yaml:"game,omitempty"`
	Author        string      `json:"author,omitempty" yaml:"author,omitempty"`
	NumBlocks     uint32      `json:"num_blocks" yaml:"num_blocks"`
	NumStrings    uint32      `json:"num_strings" yaml:"num_strings"`
	UnknownBlocks int         `json:"unknown_blocks" yaml:"unknown_blocks"`
	Root          *BlockRef   `json:"root,omitempty" yaml:"root,omitempty"`
	TypeCounts    []TypeCount `json:"type_counts" yaml:"type_counts"`
}

// BlockRef identifies a block by index, type and name
type BlockRef struct {
	Index uint32 `json:"index" yaml:"index"`
	Type  string `json:"type" yaml:"type"`
	Name  string `json:"name,omitempty" yaml:"name,omitempty"`
}

// TypeCount is the number of blocks of one type
type TypeCount struct {
	Type  string `json:"type" yaml:"type"`
	Count int    `json:"count" yaml:"count"`
}

// BlockResult describes one block
type BlockResult struct {
	BlockRef `yaml:",inline"`
	Size     uint32   `json:"size,omitempty" yaml:"size,omitempty"`
	Children []uint32 `json:"children,omitempty" yaml:"children,omitempty"`
	Unknown  bool     `json:"unknown,omitempty" yaml:"unknown,omitempty"`
}
