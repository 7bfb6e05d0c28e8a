package port

import "context"

// PageSession is one attached remote browser page. Implementations own the
// underlying transport; Close must always be called, and must end the remote
// session even when earlier calls failed.
type PageSession interface {
	// Navigate loads the given URL and waits for the page to settle.
	Navigate(ctx context.Context, url string) error
	// Content returns the full serialized HTML of the current page.
	Content(ctx context.Context) (string, error)
	// Count returns how many elements the CSS selector matches.
	Count(ctx context.Context, selector string) (int, error)
	// Fill types value into the element matched by selector.
	Fill(ctx context.Context, selector, value string) error
	// SelectOption chooses the option matching value in a select element.
	SelectOption(ctx context.Context, selector, value string) error
	// Check sets a checkbox or radio element to checked.
	Check(ctx context.Context, selector string) error
	// Screenshot captures the full page as PNG bytes.
	Screenshot(ctx context.Context) ([]byte, error)
	// Close detaches from the page and ends the remote session.
	Close(ctx context.Context) error

	// SessionID identifies the remote session for audit trails.
	SessionID() string
	// ViewerURL is a human-watchable live view of the session, if the
	// provider exposes one. Empty when unavailable.
	ViewerURL() string
}

// BrowserProvider provisions remote browser sessions.
type BrowserProvider interface {
	NewSession(ctx context.Context) (PageSession, error)
}
