package models

// AppType classifies the active application into a broad category.
type AppType string

const (
	AppTypeIDE           AppType = "ide"
	AppTypeBrowser       AppType = "browser"
	AppTypeTerminal      AppType = "terminal"
	AppTypeOffice        AppType = "office"
	AppTypeCommunication AppType = "communication"
	AppTypeDesign        AppType = "design"
	AppTypeMedia         AppType = "media"
	AppTypeFileManager   AppType = "file-manager"
	AppTypeOther         AppType = "other"
)

// ApplicationContext describes the application that currently owns the
// foreground window. Two contexts are considered the same activity when
// both AppName and WindowTitle match.
type ApplicationContext struct {
	AppName     string      `json:"app_name"`
	PID         int         `json:"pid"`
	WindowTitle string      `json:"window_title"`
	Type        AppType     `json:"type"`
	Metadata    AppMetadata `json:"metadata,omitempty"`
}

// SameActivity reports whether both contexts refer to the same app and
// window title.
func (a *ApplicationContext) SameActivity(other *ApplicationContext) bool {
	if a == nil || other == nil {
		return a == other
	}
	return a.AppName == other.AppName && a.WindowTitle == other.WindowTitle
}

// AppMetadata is a closed union of app-type-specific metadata. Exactly the
// fields relevant to the detected app type are carried; unmatched title
// patterns simply leave fields empty.
type AppMetadata interface {
	appMetadata()
}

// IDEMetadata is metadata extracted from an editor/IDE window title.
type IDEMetadata struct {
	File     string `json:"file,omitempty"`
	Language string `json:"language,omitempty"`
	Project  string `json:"project,omitempty"`
}

// BrowserMetadata is metadata extracted from a browser window title.
type BrowserMetadata struct {
	URL       string `json:"url,omitempty"`
	PageTitle string `json:"page_title,omitempty"`
}

// TerminalMetadata is metadata extracted from a terminal window title.
type TerminalMetadata struct {
	Directory   string `json:"directory,omitempty"`
	LastCommand string `json:"last_command,omitempty"`
}

func (IDEMetadata) appMetadata()      {}
func (BrowserMetadata) appMetadata()  {}
func (TerminalMetadata) appMetadata() {}
