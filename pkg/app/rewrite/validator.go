package rewrite

import (
	"fmt"

	"github.com/deploymenttheory/go-nif/pkg/app"
	"github.com/deploymenttheory/go-nif/pkg/nif/version"
)

// Validate validates a rewrite request
func (r *Request) Validate() error {
	switch r.Mode {
	case ModeRoundTrip:
		return app.ValidateInputFile(r.InputPath)
	case ModePrune:
		if err := app.ValidateInputFile(r.InputPath); err != nil {
			return err
		}
		if r.OutputPath == "" {
			return app.NewError(app.ErrCodeInvalidInput, "output path is required", nil)
		}
	case ModeCreate:
		if r.OutputPath == "" {
			return app.NewError(app.ErrCodeInvalidInput, "output path is required", nil)
		}
		if _, err := version.ForGame(r.Game); err != nil {
			return app.NewError(app.ErrCodeInvalidInput, "invalid game", err)
		}
	default:
		return app.NewError(app.ErrCodeInvalidInput, fmt.Sprintf("unknown mode %q", r.Mode), nil)
	}
	return nil
}
