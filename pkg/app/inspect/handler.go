package inspect

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/deploymenttheory/go-nif/pkg/app"
	"github.com/deploymenttheory/go-nif/pkg/nif"
	"github.com/deploymenttheory/go-nif/pkg/nif/blocks"
	"github.com/deploymenttheory/go-nif/pkg/nif/object"
)

// Handle processes an inspection request
func Handle(ctx *app.Context, req *Request) (*Response, error) {
	startTime := time.Now()

	if err := req.Validate(); err != nil {
		return nil, err
	}

	ctx.Log(fmt.Sprintf("Loading %s", req.Path))
	f, err := nif.LoadFile(req.Path)
	if err != nil {
		return nil, app.NewError(app.ErrCodeLoad,
			fmt.Sprintf("cannot load file (%s)", nif.StatusOf(err)), err)
	}

	response := Describe(f, req)
	response.LoadTime = time.Since(startTime)
	if info, err := os.Stat(req.Path); err == nil {
		response.File.Size = info.Size()
	}

	ctx.Log(fmt.Sprintf("Loaded %d blocks in %v", response.File.NumBlocks, response.LoadTime))
	return response, nil
}

// Describe builds the response for an already loaded file.
func Describe(f *nif.File, req *Request) *Response {
	hdr := f.Header()
	v := f.Version()

	info := FileInfo{
		Path:       req.Path,
		Version:    v.String(),
		User:       v.User(),
		Stream:     v.Stream(),
		Game:       v.Game(),
		Author:     hdr.ExportInfo.Author,
		NumBlocks:  hdr.NumBlocks(),
		NumStrings: hdr.NumStrings(),
	}

	counts := make(map[string]int)
	for _, b := range f.Blocks() {
		counts[b.BlockName()]++
		if _, ok := b.(*blocks.NiUnknown); ok {
			info.UnknownBlocks++
		}
	}
	for name, n := range counts {
		info.TypeCounts = append(info.TypeCounts, TypeCount{Type: name, Count: n})
	}
	sort.Slice(info.TypeCounts, func(i, j int) bool {
		if info.TypeCounts[i].Count != info.TypeCounts[j].Count {
			return info.TypeCounts[i].Count > info.TypeCounts[j].Count
		}
		return info.TypeCounts[i].Type < info.TypeCounts[j].Type
	})

	if root := f.RootID(); root != object.NPOS && root < hdr.NumBlocks() {
		ref := blockRef(root, hdr.Block(root))
		info.Root = &ref
	}

	response := &Response{File: info}
	if req.ShowBlocks {
		response.Blocks = describeBlocks(f, req)
	}
	if req.ShowStrings {
		response.Strings = append([]string{}, hdr.Strings()...)
	}
	return response
}

func describeBlocks(f *nif.File, req *Request) []BlockResult {
	hdr := f.Header()
	var results []BlockResult
	for i, b := range f.Blocks() {
		id := uint32(i)
		ref := blockRef(id, b)
		if req.TypeFilter != "" && ref.Type != req.TypeFilter {
			continue
		}
		if req.NamePattern != "" {
			if matched, _ := filepath.Match(req.NamePattern, ref.Name); !matched {
				continue
			}
		}

		result := BlockResult{BlockRef: ref}
		if hdr.HasBlockSizes() {
			result.Size = hdr.BlockSize(id)
		}
		for _, r := range b.ChildRefs(nil) {
			if !r.IsEmpty() {
				result.Children = append(result.Children, r.Index())
			}
		}
		_, result.Unknown = b.(*blocks.NiUnknown)
		results = append(results, result)
	}
	return results
}

func blockRef(id uint32, b object.NiObject) BlockRef {
	ref := BlockRef{Index: id, Type: b.BlockName()}
	if net, ok := b.(blocks.ObjectNET); ok {
		ref.Name = net.AsObjectNET().Name.Get()
	}
	return ref
}
