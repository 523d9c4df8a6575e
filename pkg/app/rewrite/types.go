package rewrite

// Mode selects what a rewrite does to the file
type Mode string

const (
	// ModeRoundTrip loads and saves a file and compares the bytes.
	ModeRoundTrip Mode = "roundtrip"

	// ModePrune deletes every block nothing references.
	ModePrune Mode = "prune"

	// ModeCreate writes a new file holding only a root node.
	ModeCreate Mode = "create"
)

// Request represents a rewrite request
type Request struct {
	Mode       Mode
	InputPath  string
	OutputPath string
	SortBlocks bool

	// Game picks the version of created files
	Game string
}

// Response represents rewrite results
type Response struct {
	Mode         Mode   `json:"mode" yaml:"mode"`
	InputPath    string `json:"input_path,omitempty" yaml:"input_path,omitempty"`
	OutputPath   string `json:"output_path,omitempty" yaml:"output_path,omitempty"`
	Version      string `json:"version" yaml:"version"`
	BlocksBefore uint32 `json:"blocks_before" yaml:"blocks_before"`
	BlocksAfter  uint32 `json:"blocks_after" yaml:"blocks_after"`
	BytesIn      int    `json:"bytes_in" yaml:"bytes_in"`
	BytesOut     int    `json:"bytes_out" yaml:"bytes_out"`

	// Round trip results
	Identical bool `json:"identical" yaml:"identical"`
	FirstDiff int  `json:"first_diff" yaml:"first_diff"`
}

// Deleted returns the number of blocks the rewrite removed.
func (r *Response) Deleted() int {
	return int(r.BlocksBefore) - int(r.BlocksAfter)
}
