package assets

// Names of the built-in stylesheets. DefaultStyleName is the base sheet
// every book gets unless told otherwise; VerticalStyleName layers vertical
// writing mode on top of it.
const (
	DefaultStyleName  = "default"
	VerticalStyleName = "vertical"
)
