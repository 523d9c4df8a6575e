package inspect

import (
	"path/filepath"

	"github.com/deploymenttheory/go-nif/pkg/app"
)

// Validate validates an inspection request
func (r *Request) Validate() error {
	if err := app.ValidateInputFile(r.Path); err != nil {
		return err
	}

	// filepath.Match only reports malformed patterns
	if r.NamePattern != "" {
		if _, err := filepath.Match(r.NamePattern, ""); err != nil {
			return app.NewError(app.ErrCodeInvalidInput, "invalid name pattern", err)
		}
	}

	if (r.TypeFilter != "" || r.NamePattern != "") && !r.ShowBlocks {
		return app.NewError(app.ErrCodeInvalidInput, "block filters require the block listing", nil)
	}

	return nil
}
