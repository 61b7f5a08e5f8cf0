package window

// WindowBuilderOption is a functional option for configuring a preview window.
type WindowBuilderOption func(w *previewWindow)

// WithTitle sets the window title displayed in the title bar.
//
// Parameters:
//   - title: the window title text
//
// Returns:
//   - WindowBuilderOption: the option to apply
func WithTitle(title string) WindowBuilderOption {
	return func(w *previewWindow) {
		w.title = title
	}
}

// WithSize sets the initial window size.
//
// Parameters:
//   - width: initial width in pixels
//   - height: initial height in pixels
//
// Returns:
//   - WindowBuilderOption: the option to apply
func WithSize(width, height int) WindowBuilderOption {
	return func(w *previewWindow) {
		w.width = width
		w.height = height
	}
}
