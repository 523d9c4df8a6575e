package rewrite

import (
	"bytes"
	"fmt"
	"os"

	"github.com/deploymenttheory/go-nif/pkg/app"
	"github.com/deploymenttheory/go-nif/pkg/nif"
	"github.com/deploymenttheory/go-nif/pkg/nif/version"
)

// Handle processes a rewrite request. A round trip that changes the bytes is
// reported through Response.Identical, not as an error.
func Handle(ctx *app.Context, req *Request) (*Response, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	switch req.Mode {
	case ModeCreate:
		return handleCreate(ctx, req)
	case ModePrune:
		return handlePrune(ctx, req)
	default:
		return handleRoundTrip(ctx, req)
	}
}

func handleRoundTrip(ctx *app.Context, req *Request) (*Response, error) {
	in, f, err := load(ctx, req.InputPath)
	if err != nil {
		return nil, err
	}

	response := newResponse(req, f, in)
	out, err := save(f, req.SortBlocks)
	if err != nil {
		return nil, err
	}
	response.BytesOut = len(out)
	response.BlocksAfter = f.Header().NumBlocks()
	response.FirstDiff = firstDiff(in, out)
	response.Identical = response.FirstDiff < 0

	if response.Identical {
		ctx.Log("Saved bytes match the input")
	} else {
		ctx.Log(fmt.Sprintf("Saved bytes differ from offset %d", response.FirstDiff))
	}

	if req.OutputPath != "" {
		if err := write(ctx, req.OutputPath, out); err != nil {
			return nil, err
		}
	}
	return response, nil
}

func handlePrune(ctx *app.Context, req *Request) (*Response, error) {
	in, f, err := load(ctx, req.InputPath)
	if err != nil {
		return nil, err
	}

	response := newResponse(req, f, in)
	deleted := f.DeleteUnreferencedBlocks()
	ctx.Log(fmt.Sprintf("Deleted %d unreferenced blocks", deleted))

	out, err := save(f, req.SortBlocks)
	if err != nil {
		return nil, err
	}
	response.BytesOut = len(out)
	response.BlocksAfter = f.Header().NumBlocks()
	response.FirstDiff = -1
	return response, write(ctx, req.OutputPath, out)
}

func handleCreate(ctx *app.Context, req *Request) (*Response, error) {
	v, err := version.ForGame(req.Game)
	if err != nil {
		return nil, app.NewError(app.ErrCodeInvalidInput, "invalid game", err)
	}
	f := nif.Create(v)
	ctx.Log(fmt.Sprintf("Creating %s file %s", req.Game, req.OutputPath))

	out, err := save(f, req.SortBlocks)
	if err != nil {
		return nil, err
	}
	response := newResponse(req, f, nil)
	response.BytesOut = len(out)
	response.BlocksAfter = f.Header().NumBlocks()
	response.FirstDiff = -1
	return response, write(ctx, req.OutputPath, out)
}

func newResponse(req *Request, f *nif.File, in []byte) *Response {
	return &Response{
		Mode:         req.Mode,
		InputPath:    req.InputPath,
		OutputPath:   req.OutputPath,
		Version:      f.Version().String(),
		BlocksBefore: f.Header().NumBlocks(),
		BytesIn:      len(in),
	}
}

func load(ctx *app.Context, path string) ([]byte, *nif.File, error) {
	ctx.Log(fmt.Sprintf("Loading %s", path))
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, app.NewError(app.ErrCodeFileAccess, "cannot read input file", err)
	}
	f, err := nif.Load(bytes.NewReader(data))
	if err != nil {
		return nil, nil, app.NewError(app.ErrCodeLoad,
			fmt.Sprintf("cannot load file (%s)", nif.StatusOf(err)), err)
	}
	return data, f, nil
}

func save(f *nif.File, sortBlocks bool) ([]byte, error) {
	var buf bytes.Buffer
	if err := f.SaveWithOptions(&buf, nif.SaveOptions{SortBlocks: sortBlocks}); err != nil {
		return nil, app.NewError(app.ErrCodeSave, "cannot save file", err)
	}
	return buf.Bytes(), nil
}

// write stores data at path unless ctx was cancelled first.
func write(ctx *app.Context, path string, data []byte) error {
	if err := ctx.Context.Err(); err != nil {
		return app.NewError(app.ErrCodeSave, "cancelled before writing", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return app.NewError(app.ErrCodeFileAccess, "cannot write output file", err)
	}
	return nil
}

// firstDiff returns the first offset at which a and b differ, or -1.
func firstDiff(a, b []byte) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	if len(a) != len(b) {
		return n
	}
	return -1
}
