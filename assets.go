package md2epub

import (
	"errors"

	"github.com/alnah/go-md2epub/internal/assets"
)

// Built-in stylesheet names.
const (
	// DefaultStyle is the base stylesheet every book starts from.
	DefaultStyle = assets.DefaultStyleName

	// VerticalStyle is the overlay appended in vertical writing mode.
	VerticalStyle = assets.VerticalStyleName
)

// AssetLoader supplies stylesheets and chapter templates by bare name,
// no extension. NewAssetLoader builds the stock implementation;
// anything that can produce CSS and XHTML strings can stand in, an
// object store or database included. A lookup miss returns
// ErrStyleNotFound or ErrTemplateNotFound.
type AssetLoader interface {
	LoadStyle(name string) (string, error)
	LoadTemplate(name string) (string, error)
}

// NewAssetLoader builds the stock loader. With an empty basePath it
// serves the embedded assets only; with a directory it reads
// styles/{name}.css and templates/{name}.xhtml from there first and
// falls back to the embedded set on misses. A basePath that is not a
// readable directory fails with ErrInvalidAssetPath.
func NewAssetLoader(basePath string) (AssetLoader, error) {
	resolver, err := assets.NewAssetResolver(basePath)
	if err != nil {
		return nil, toPublicError(err)
	}
	return &resolverAdapter{resolver: resolver}, nil
}

// resolverAdapter rewraps the internal resolver's errors so callers
// only ever see this package's sentinels.
type resolverAdapter struct {
	resolver *assets.AssetResolver
}

func (a *resolverAdapter) LoadStyle(name string) (string, error) {
	css, err := a.resolver.LoadStyle(name)
	if err != nil {
		return "", toPublicError(err)
	}
	return css, nil
}

func (a *resolverAdapter) LoadTemplate(name string) (string, error) {
	tmpl, err := a.resolver.LoadTemplate(name)
	if err != nil {
		return "", toPublicError(err)
	}
	return tmpl, nil
}

// toPublicError maps internal asset sentinels onto the exported ones.
// Errors carrying no internal sentinel, a user-supplied loader's own
// failures for instance, pass through untouched.
func toPublicError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, assets.ErrStyleNotFound):
		return &assetError{public: ErrStyleNotFound, cause: err}
	case errors.Is(err, assets.ErrTemplateNotFound):
		return &assetError{public: ErrTemplateNotFound, cause: err}
	case errors.Is(err, assets.ErrInvalidBasePath),
		errors.Is(err, assets.ErrPathTraversal):
		return &assetError{public: ErrInvalidAssetPath, cause: err}
	case errors.Is(err, assets.ErrInvalidAssetName):
		// A name that cannot exist is a miss
		return &assetError{public: ErrStyleNotFound, cause: err}
	default:
		return err
	}
}

// assetError keeps the cause's message but matches only the public
// sentinel under errors.Is. Internal sentinels live in internal/
// packages and must not become part of the API surface.
type assetError struct {
	public error
	cause  error
}

func (e *assetError) Error() string { return e.cause.Error() }

func (e *assetError) Unwrap() error { return e.public }
