package md2html

import "errors"

// Sentinel errors for library operations.
var (
	ErrUnknownEngine         = errors.New("unknown engine")
	ErrUnknownHighlightStyle = errors.New("unknown highlight style")
	ErrHTMLConversion        = errors.New("HTML conversion failed")
	ErrDocumentRender        = errors.New("document rendering failed")
	ErrPDFGeneration         = errors.New("PDF generation failed")
	ErrBrowserConnect        = errors.New("failed to connect to browser")
	ErrPageCreate            = errors.New("failed to create browser page")
	ErrPageLoad              = errors.New("failed to load page")

	// Page settings validation errors.
	ErrInvalidPageSize    = errors.New("invalid page size")
	ErrInvalidOrientation = errors.New("invalid orientation")
	ErrInvalidMargin      = errors.New("invalid margin")

	// TOC validation errors.
	ErrInvalidTOCDepth = errors.New("invalid TOC depth")

	// Asset loading errors.
	ErrStyleNotFound    = errors.New("style not found")
	ErrTemplateNotFound = errors.New("template not found")
	ErrInvalidAssetPath = errors.New("invalid asset path")

	// Pool errors.
	ErrPoolClosed = errors.New("converter pool closed")
)
