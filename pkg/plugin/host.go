package plugin

// Pane is one open document view in the host
type Pane struct {
	ID string
	// Document is the vault-relative path of the open document,
	// empty when the pane shows no file
	Document string
}

// Title is what gets rendered above a pane's document title
type Title struct {
	Path     string
	FontSize string
}

// Host is the application the add-on runs inside
type Host interface {
	// Panes lists every open pane
	Panes() []Pane
	// ShowTitle renders title above the pane's document title
	ShowTitle(pane Pane, title Title)
	// ClearTitle removes anything ShowTitle added to the pane
	ClearTitle(pane Pane)
}
